package middleware

import (
	"testing"

	"medidex/internal/models"
)

func TestRolePolicy(t *testing.T) {
	cases := []struct {
		op   Operation
		role string
		want bool
	}{
		{OpOrdersRead, models.RoleStaff, true},
		{OpOrdersRead, models.RoleManager, true},
		{OpOrdersRead, models.RoleAdmin, true},
		{OpOrdersStatus, models.RoleStaff, true},
		{OpMedicinesWrite, models.RoleStaff, false},
		{OpMedicinesWrite, models.RoleManager, true},
		{OpMedicinesWrite, models.RoleAdmin, true},
		{OpMedicinesDelete, models.RoleManager, false},
		{OpMedicinesDelete, models.RoleAdmin, true},
		{OpStaffManage, models.RoleStaff, false},
		{OpStaffManage, models.RoleManager, false},
		{OpStaffManage, models.RoleAdmin, true},
		{OpNotifyTest, models.RoleManager, false},
		{OpNotifyTest, models.RoleAdmin, true},
	}

	for _, tc := range cases {
		if got := Allowed(tc.op, tc.role); got != tc.want {
			t.Errorf("Allowed(%s, %s) = %v, want %v", tc.op, tc.role, got, tc.want)
		}
	}
}

func TestPolicyDeniesUnknowns(t *testing.T) {
	if Allowed(Operation("orders:purge"), models.RoleAdmin) {
		t.Error("unknown operations must allow nobody")
	}
	if Allowed(OpOrdersRead, "SUPERUSER") {
		t.Error("unknown roles must be denied")
	}
	if Allowed(OpOrdersRead, "") {
		t.Error("empty role must be denied")
	}
}
