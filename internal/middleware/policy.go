package middleware

import "medidex/internal/models"

// Operation names an admin-surface action. Every role check in the API goes
// through the single table below; handlers never test roles inline.
type Operation string

const (
	OpOrdersRead      Operation = "orders:read"
	OpOrdersStatus    Operation = "orders:status"
	OpMedicinesWrite  Operation = "medicines:write"
	OpMedicinesDelete Operation = "medicines:delete"
	OpStaffManage     Operation = "staff:manage"
	OpNotifyTest      Operation = "notify:test"
)

var rolePolicy = map[Operation][]string{
	OpOrdersRead:      {models.RoleStaff, models.RoleManager, models.RoleAdmin},
	OpOrdersStatus:    {models.RoleStaff, models.RoleManager, models.RoleAdmin},
	OpMedicinesWrite:  {models.RoleManager, models.RoleAdmin},
	OpMedicinesDelete: {models.RoleAdmin},
	OpStaffManage:     {models.RoleAdmin},
	OpNotifyTest:      {models.RoleAdmin},
}

// Allowed reports whether role may perform op. Unknown operations allow
// nobody.
func Allowed(op Operation, role string) bool {
	for _, r := range rolePolicy[op] {
		if r == role {
			return true
		}
	}
	return false
}
