package audit

import (
	"testing"

	"github.com/garagedesk/backend/internal/models"
)

func TestDetectChanges(t *testing.T) {
	tracked := []string{"name", "phone", "repairStatus"}

	tests := []struct {
		name     string
		old      map[string]any
		new      map[string]any
		expected []models.Change
	}{
		{
			name:     "no changes",
			old:      map[string]any{"name": "Ana", "phone": "555-0101", "repairStatus": "waiting"},
			new:      map[string]any{"name": "Ana", "phone": "555-0101", "repairStatus": "waiting"},
			expected: nil,
		},
		{
			name: "single change",
			old:  map[string]any{"name": "Ana", "repairStatus": "waiting"},
			new:  map[string]any{"name": "Ana", "repairStatus": "in_progress"},
			expected: []models.Change{
				{Field: "repairStatus", OldValue: "waiting", NewValue: "in_progress"},
			},
		},
		{
			name: "order follows tracked list, not map order",
			old:  map[string]any{"repairStatus": "waiting", "phone": "555-0101", "name": "Ana"},
			new:  map[string]any{"repairStatus": "in_progress", "phone": "555-0202", "name": "Bea"},
			expected: []models.Change{
				{Field: "name", OldValue: "Ana", NewValue: "Bea"},
				{Field: "phone", OldValue: "555-0101", NewValue: "555-0202"},
				{Field: "repairStatus", OldValue: "waiting", NewValue: "in_progress"},
			},
		},
		{
			name: "newly set field has nil old value",
			old:  map[string]any{"name": "Ana"},
			new:  map[string]any{"name": "Ana", "phone": "555-0101"},
			expected: []models.Change{
				{Field: "phone", OldValue: nil, NewValue: "555-0101"},
			},
		},
		{
			name: "unset field has nil new value",
			old:  map[string]any{"name": "Ana", "phone": "555-0101"},
			new:  map[string]any{"name": "Ana"},
			expected: []models.Change{
				{Field: "phone", OldValue: "555-0101", NewValue: nil},
			},
		},
		{
			name:     "untracked fields are ignored",
			old:      map[string]any{"name": "Ana", "secret": "a"},
			new:      map[string]any{"name": "Ana", "secret": "b"},
			expected: nil,
		},
		{
			name:     "nil old snapshot yields no deltas",
			old:      nil,
			new:      map[string]any{"name": "Ana"},
			expected: nil,
		},
		{
			name:     "nil new snapshot yields no deltas",
			old:      map[string]any{"name": "Ana"},
			new:      nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectChanges(tt.old, tt.new, tracked)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d changes, got %d: %+v", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("change %d: expected %+v, got %+v", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestDetectChangesWholeValue(t *testing.T) {
	// A nested value that differs is reported as one whole-value change.
	old := map[string]any{"notes": map[string]any{"a": 1}}
	new := map[string]any{"notes": map[string]any{"a": 2}}

	got := DetectChanges(old, new, []string{"notes"})
	if len(got) != 1 {
		t.Fatalf("expected 1 change, got %d", len(got))
	}
	if got[0].Field != "notes" {
		t.Errorf("expected field notes, got %s", got[0].Field)
	}
}

func TestDetectChangesPaymentFields(t *testing.T) {
	old := map[string]any{
		"name":          "Ana",
		"paymentStatus": "unpaid",
		"paymentMethod": nil,
	}
	new := map[string]any{
		"name":          "Bea", // not payment-tracked, must be ignored
		"paymentStatus": "partial",
		"paymentMethod": "card",
	}

	got := DetectChanges(old, new, PaymentTrackedFields)
	if len(got) != 2 {
		t.Fatalf("expected 2 changes, got %d: %+v", len(got), got)
	}
	if got[0].Field != "paymentStatus" || got[1].Field != "paymentMethod" {
		t.Errorf("unexpected fields: %s, %s", got[0].Field, got[1].Field)
	}
}

func TestChangedFieldNames(t *testing.T) {
	changes := []models.Change{
		{Field: "name"},
		{Field: "phone"},
	}
	names := ChangedFieldNames(changes)
	if len(names) != 2 || names[0] != "name" || names[1] != "phone" {
		t.Errorf("unexpected names: %v", names)
	}
	if got := ChangedFieldNames(nil); len(got) != 0 {
		t.Errorf("expected empty names for nil changes, got %v", got)
	}
}
