package models

import "testing"

func TestIsValidRepairTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{RepairStatusWaiting, RepairStatusInProgress, true},
		{RepairStatusInProgress, RepairStatusCompleted, true},
		{RepairStatusCompleted, RepairStatusDelivered, true},

		// Back and forth while working
		{RepairStatusInProgress, RepairStatusWaiting, true},
		{RepairStatusCompleted, RepairStatusInProgress, true},

		// Invalid transitions
		{RepairStatusWaiting, RepairStatusCompleted, false},
		{RepairStatusWaiting, RepairStatusDelivered, false},
		{RepairStatusInProgress, RepairStatusDelivered, false},
		{RepairStatusDelivered, RepairStatusWaiting, false},
		{RepairStatusDelivered, RepairStatusCompleted, false},
		{RepairStatusWaiting, RepairStatusWaiting, false},
		{"nonexistent", RepairStatusInProgress, false},
		{RepairStatusWaiting, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidRepairTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidRepairTransition(%s, %s) = %v, expected %v", tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestClientSnapshot(t *testing.T) {
	email := "ana@example.test"
	amount := 120.5
	c := &Client{
		Name:                 "Ana",
		Phone:                "555-0101",
		Email:                &email,
		CarMake:              "Volvo",
		CarModel:             "V60",
		IssueDescription:     "brakes squeal",
		RepairStatus:         RepairStatusWaiting,
		PaymentStatus:        PaymentStatusPartial,
		PartialPaymentAmount: &amount,
	}

	snap := c.Snapshot()
	if snap["name"] != "Ana" || snap["repairStatus"] != RepairStatusWaiting {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap["email"] != email {
		t.Errorf("expected email %q, got %v", email, snap["email"])
	}
	if snap["partialPaymentAmount"] != amount {
		t.Errorf("expected amount %v, got %v", amount, snap["partialPaymentAmount"])
	}
	if _, ok := snap["notes"]; ok {
		t.Error("unset optional field must be absent from snapshot")
	}

	var nilClient *Client
	if nilClient.Snapshot() != nil {
		t.Error("nil client snapshot must be nil")
	}
}
