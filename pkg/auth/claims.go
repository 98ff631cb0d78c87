package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims carried by financing requests.
type Claims struct {
	jwt.RegisteredClaims
	UserID string   `json:"user_id"`
	FarmID int64    `json:"farm_id"`
	Roles  []string `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Role constants. The authority role marks the single process allowed to
// submit mutating requests; viewers hold read-only mirrors.
const (
	RoleAuthority = "authority"
	RoleViewer    = "viewer"
	RoleAdmin     = "admin"
)
