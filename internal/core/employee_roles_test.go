package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"herbaldesk/internal/core"
)

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, core.RoleAdmin, core.NormalizeRole(core.RoleAdmin))
	assert.Equal(t, core.RoleManager, core.NormalizeRole(core.RoleManager))
	// Legacy staff accounts read back as managers.
	assert.Equal(t, core.RoleManager, core.NormalizeRole(core.RoleStaff))
}

func TestDefaultPermissions_Admin(t *testing.T) {
	p := core.DefaultPermissions(core.RoleAdmin)
	assert.Equal(t, core.Permissions{
		CanCreateOrders:   true,
		CanUpdateOrders:   true,
		CanViewProducts:   true,
		CanUpdateProducts: true,
		CanManageOffers:   true,
		CanViewReports:    true,
	}, p)
}

func TestDefaultPermissions_Manager(t *testing.T) {
	p := core.DefaultPermissions(core.RoleManager)
	assert.Equal(t, core.Permissions{
		CanCreateOrders: true,
		CanUpdateOrders: true,
		CanViewProducts: true,
		CanViewReports:  true,
	}, p)
}

func TestDefaultPermissions_UnknownRoleGetsNothing(t *testing.T) {
	assert.Equal(t, core.Permissions{}, core.DefaultPermissions(core.Role("intern")))
}

func TestValidExpenseCategory(t *testing.T) {
	for _, c := range core.ExpenseCategories {
		assert.True(t, core.ValidExpenseCategory(c), c)
	}
	assert.False(t, core.ValidExpenseCategory("Bribes"))
	assert.False(t, core.ValidExpenseCategory("rent")) // labels are case sensitive
}
