package models

// Admin is the administrator account.
type Admin struct {
	User
	AdminID     string `json:"admin_id"`
	AccessLevel string `json:"access_level"`
}

// RoleType implements Account.
func (a *Admin) RoleType() RoleType { return RoleAdmin }
