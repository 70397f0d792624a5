package rbac

// Role constants
const (
	RoleAdmin        = "admin"
	RoleMechanic     = "mechanic"
	RoleReceptionist = "receptionist"
)

// Permission constants
const (
	PermManageClients      = "manage_clients"
	PermUpdateRepairStatus = "update_repair_status"
	PermRecordPayments     = "record_payments"
	PermManageInvoices     = "manage_invoices"
	PermManageAppointments = "manage_appointments"
	PermManageUsers        = "manage_users"
	PermViewAuditLogs      = "view_audit_logs"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	RoleAdmin: {
		PermManageClients, PermUpdateRepairStatus, PermRecordPayments,
		PermManageInvoices, PermManageAppointments, PermManageUsers,
		PermViewAuditLogs,
	},
	RoleMechanic: {
		PermUpdateRepairStatus,
	},
	RoleReceptionist: {
		PermManageClients, PermRecordPayments, PermManageInvoices,
		PermManageAppointments,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

func IsValidRole(role string) bool {
	_, ok := RolePermissions[role]
	return ok
}
