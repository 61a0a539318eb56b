package model

// User is a stored credential record. The role is fixed at signup; session
// roles are always derived from this record, never from the request.
type User struct {
	PasswordHash string `json:"password_hash"`
	Role         string `json:"role"`
}

// Roles.
const (
	RoleFarmer   = "farmer"
	RoleBusiness = "business"
	RoleNGO      = "ngo"
	RoleBuyer    = "buyer"
)

// ValidRole reports whether role is part of the fixed vocabulary.
func ValidRole(role string) bool {
	switch role {
	case RoleFarmer, RoleBusiness, RoleNGO, RoleBuyer:
		return true
	}
	return false
}

// RestrictedViewer reports whether role only gets the read-only marketplace
// view, without delete or buy affordances.
func RestrictedViewer(role string) bool {
	return role == RoleNGO || role == RoleBuyer
}

// Seller reports whether role lists goods and receives purchase
// notifications.
func Seller(role string) bool {
	return role == RoleFarmer || role == RoleBusiness
}
