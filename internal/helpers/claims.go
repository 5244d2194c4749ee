package helpers

import "slices"

var staffRoles = []string{"staff", "owner", "admin"}

// EnhancedClaims are the token claims merged with the caller's profile.
type EnhancedClaims struct {
	*CustomClaims
	Role        string `json:"role"`
	UserID      string `json:"id"`
	Email       string `json:"email,omitempty"`
	Fullname    string `json:"full_name,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	CreatedAt   string `json:"created_at,omitempty"`
}

func (ec *EnhancedClaims) IsAdmin() bool {
	return ec.Role == "admin"
}

func (ec *EnhancedClaims) IsOwner() bool {
	return ec.Role == "owner" || ec.IsAdmin()
}

// IsStaff is true for anyone allowed into the owner console.
func (ec *EnhancedClaims) IsStaff() bool {
	return slices.Contains(staffRoles, ec.Role)
}

func (ec *EnhancedClaims) HasRole(roles ...string) bool {
	return slices.Contains(roles, ec.GetSafeRole())
}

func (ec *EnhancedClaims) IsSelf(userID string) bool {
	return ec.UserID == userID
}

func (ec *EnhancedClaims) GetSafeRole() string {
	if ec.Role == "" {
		return "guest"
	}
	return ec.Role
}
