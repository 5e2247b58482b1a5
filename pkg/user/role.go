package user

import "slices"

// Role is a capability tag attached to a profile. Access decisions
// check role membership explicitly instead of matching on free-form
// strings.
type Role string

const (
	RoleAdmin                 Role = "admin"
	RoleManager               Role = "manager"
	RoleFieldOfficer          Role = "field_officer"
	RoleHRManager             Role = "hr_manager"
	RoleOfficeManager         Role = "office_manager"
	RoleFinanceManager        Role = "finance_manager"
	RoleFarmer                Role = "farmer"
	RoleInvestor              Role = "investor"
	RoleFarmStaff             Role = "farm_staff"
	RoleAgricExtensionOfficer Role = "agric_extension_officer"
	RoleSuperAdmin            Role = "super_admin"
)

// Valid reports whether the role is a known capability tag.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleFieldOfficer, RoleHRManager,
		RoleOfficeManager, RoleFinanceManager, RoleFarmer, RoleInvestor,
		RoleFarmStaff, RoleAgricExtensionOfficer, RoleSuperAdmin:
		return true
	}
	return false
}

// RoleSet is a profile's set of capability tags.
type RoleSet []Role

// Has reports whether the set contains the given role.
func (s RoleSet) Has(role Role) bool {
	return slices.Contains(s, role)
}

// Add returns the set with the role included, without duplicates.
func (s RoleSet) Add(role Role) RoleSet {
	if s.Has(role) {
		return s
	}
	return append(s, role)
}
