package security

import (
	"net/http"
	"time"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	cookiePath = "/api"
)

// NewTokenCookie : cookie carrying a token for maxAge. Every token cookie shares the same attributes.
func NewTokenCookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     cookiePath,
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	}
}

// ExpiredTokenCookie : instructs the browser to drop the named cookie (Max-Age=0 on the wire)
func ExpiredTokenCookie(name string) *http.Cookie {
	cookie := NewTokenCookie(name, "", 0)
	cookie.MaxAge = -1
	return cookie
}

func cookieValue(r *http.Request, name string) string {
	cookie, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
