package domain

// UserRole represents the role of an authenticated user
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleDesigner UserRole = "designer"
	RoleClient   UserRole = "client"
)

// IsValid reports whether the role is one of the known roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDesigner, RoleClient:
		return true
	}
	return false
}

// User is an identity that can act on the studio data.
// (Username, Email, Role) identifies a user across logins.
type User struct {
	BaseModel
	Username string   `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_identity,priority:1" json:"username"`
	Email    string   `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_identity,priority:2" json:"email"`
	Role     UserRole `gorm:"type:varchar(20);not null;uniqueIndex:uq_users_identity,priority:3" json:"role"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
