package model

// TokensPair : access and refresh tokens issued together at login
// swagger:model
type TokensPair struct {
	// Access token (JWT, 1 hour)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	AccessToken string `json:"accessToken"`

	// Refresh token (JWT, 7 days)
	// example: eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9...
	RefreshToken string `json:"refreshToken"`
}
