package model

// Role is the authorization role carried in an access token.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// TokenClaims is the decoded identity pair carried by an access token.
type TokenClaims struct {
	Nickname string
	Role     Role
}

// TokenManager generates and validates access tokens.
type TokenManager interface {
	Generate(claims TokenClaims) (string, error)
	Parse(token string) (TokenClaims, error)
}
