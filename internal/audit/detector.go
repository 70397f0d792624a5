// Package audit holds the pure pieces of the change-tracking subsystem:
// the request actor value and the snapshot diff.
package audit

import (
	"reflect"

	"github.com/garagedesk/backend/internal/models"
)

// ClientTrackedFields is the allow-list of client fields considered for
// change detection on a generic update.
var ClientTrackedFields = []string{
	"name",
	"phone",
	"email",
	"carMake",
	"carModel",
	"carYear",
	"licensePlate",
	"issueDescription",
	"preExistingIssues",
	"estimatedDuration",
	"deliveryDate",
	"notes",
	"repairStatus",
	"paymentStatus",
	"partialPaymentAmount",
}

// PaymentTrackedFields is the narrower allow-list used for payment_update
// events.
var PaymentTrackedFields = []string{
	"paymentStatus",
	"partialPaymentAmount",
	"paymentMethod",
	"paymentDate",
	"paymentReference",
}

// InvoiceTrackedFields covers the audited invoice fields.
var InvoiceTrackedFields = []string{
	"number",
	"subtotal",
	"taxRate",
	"total",
	"status",
	"notes",
}

// AppointmentTrackedFields covers the audited appointment fields.
var AppointmentTrackedFields = []string{
	"scheduledAt",
	"service",
	"status",
	"notes",
}

// UserTrackedFields covers the audited staff-account fields.
var UserTrackedFields = []string{
	"email",
	"firstName",
	"lastName",
	"role",
	"active",
}

// DetectChanges compares two flat snapshots of the same entity and emits one
// delta per tracked field whose value differs. Output order follows the
// tracked-field list. Values are compared as whole values; a nested value
// that changed internally yields a single delta, never a deeper diff. A nil
// snapshot on either side yields no deltas: with only one side there is
// nothing to compare.
func DetectChanges(oldSnap, newSnap map[string]any, tracked []string) []models.Change {
	if oldSnap == nil || newSnap == nil {
		return nil
	}
	var changes []models.Change
	for _, field := range tracked {
		oldVal := oldSnap[field]
		newVal := newSnap[field]
		if !reflect.DeepEqual(oldVal, newVal) {
			changes = append(changes, models.Change{
				Field:    field,
				OldValue: oldVal,
				NewValue: newVal,
			})
		}
	}
	return changes
}

// ChangedFieldNames projects a delta list onto the field names, preserving
// order. Used for the changedFields metadata on update entries.
func ChangedFieldNames(changes []models.Change) []string {
	names := make([]string, 0, len(changes))
	for _, c := range changes {
		names = append(names, c.Field)
	}
	return names
}
