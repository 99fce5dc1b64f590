package models

import "github.com/golang-jwt/jwt/v5"

// StaffRole controls what a bearer may do on the board.
type StaffRole string

const (
	RoleViewer StaffRole = "viewer"
	RoleEditor StaffRole = "editor"
)

// StaffClaims is the JWT payload accepted by the API.
type StaffClaims struct {
	Name string    `json:"name"`
	Role StaffRole `json:"role"`
	jwt.RegisteredClaims
}
