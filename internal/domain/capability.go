package domain

// Operation capabilities per role. Handlers consult these before calling a
// service; the stock service re-checks CanUseMaterial itself because the
// decrement must be refused even if a caller skips the guard.

func CanUseMaterial(r Role) bool { return r == RoleTechnician }

func CanCreateMaterial(r Role) bool { return r == RoleStorekeeper }

func CanSubmitRequest(r Role) bool { return r == RoleTechnician }

func CanManageRequests(r Role) bool { return r == RoleAdmin }

func CanCreateTask(r Role) bool { return r == RoleAdmin || r == RoleStorekeeper }

func CanManageVendors(r Role) bool { return r == RoleAdmin }

// CanEdit reports whether a role may write the named Material field.
// notes is Admin-only; everything else follows the operation checks above.
func CanEdit(r Role, field string) bool {
	if field == "notes" {
		return r == RoleAdmin
	}
	return true
}
