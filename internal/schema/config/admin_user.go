package config

import (
	"github.com/hashicorp/go-multierror"
	"github.com/rmorlok/authdbinit/internal/schema/common"
)

const (
	DefaultAdminDatabase = "auth_db"
	DefaultAdminUsername = "mongoadmin"
	DefaultAdminRole     = "readWrite"
)

// AdminUser is the principal created by the bootstrap. Username and password are resolved once at start-up.
type AdminUser struct {
	Database string              `json:"database,omitempty" yaml:"database,omitempty"`
	Username *common.StringValue `json:"username,omitempty" yaml:"username,omitempty"`
	Password *common.StringValue `json:"password" yaml:"password"`
	Roles    []RoleBinding       `json:"roles,omitempty" yaml:"roles,omitempty"`
}

// RoleBinding scopes a role to a database. An empty database binds to the admin user's database.
type RoleBinding struct {
	Role     string `json:"role" yaml:"role"`
	Database string `json:"database,omitempty" yaml:"database,omitempty"`
}

func (a *AdminUser) GetDatabase() string {
	if a == nil || a.Database == "" {
		return DefaultAdminDatabase
	}
	return a.Database
}

func (a *AdminUser) GetUsername() *common.StringValue {
	if a == nil || a.Username == nil {
		return common.NewStringValueDirect(DefaultAdminUsername)
	}
	return a.Username
}

func (a *AdminUser) GetRoles() []RoleBinding {
	if a == nil || len(a.Roles) == 0 {
		return []RoleBinding{{Role: DefaultAdminRole, Database: a.GetDatabase()}}
	}

	roles := make([]RoleBinding, 0, len(a.Roles))
	for _, r := range a.Roles {
		if r.Database == "" {
			r.Database = a.GetDatabase()
		}
		roles = append(roles, r)
	}

	return roles
}

func (a *AdminUser) Validate(vc *common.ValidationContext) error {
	result := &multierror.Error{}

	if a.Password == nil {
		result = multierror.Append(result, vc.NewErrorForField("password", "password must be specified"))
	}

	for i, r := range a.Roles {
		if r.Role == "" {
			result = multierror.Append(result, vc.PushField("roles").PushIndex(i).NewErrorForField("role", "role must be specified"))
		}
	}

	return result.ErrorOrNil()
}
