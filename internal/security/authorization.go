package security

import (
	"net/http"
	"slices"
)

type AuthType string

const (
	AuthSimple AuthType = "Simple"
	AuthUser   AuthType = "User"
	AuthAdmin  AuthType = "Admin"
	AuthGroup  AuthType = "Group"
)

const roleAdmin = "Admin"

const (
	CauseAuthorized         = "Authorized"
	CauseUnauthorized       = "Unauthorized"
	CauseMissingInformation = "Token is missing information"
	CauseMismatchedUsers    = "Mismatched users"
	CauseLoginAgain         = "Perform login again"
	CauseUsernameMismatch   = "The username of the cookie and that one you provide don't match"
	CauseNotAdmin           = "The user must be an Admin"
	CauseEmailNotInGroup    = "The email of the token doesn't match"
	CauseInvalidAuthType    = "You must specify a valid authType"
)

const RefreshedTokenMessage = "Access token has been refreshed. Remember to copy the new one in the headers of subsequent calls"

// AuthRequest : policy a handler needs satisfied.
// Username is read only by AuthUser, Emails only by AuthGroup.
type AuthRequest struct {
	AuthType AuthType
	Username string
	Emails   []string
}

func Simple() AuthRequest {
	return AuthRequest{AuthType: AuthSimple}
}

func User(username string) AuthRequest {
	return AuthRequest{AuthType: AuthUser, Username: username}
}

func Admin() AuthRequest {
	return AuthRequest{AuthType: AuthAdmin}
}

func Group(emails []string) AuthRequest {
	return AuthRequest{AuthType: AuthGroup, Emails: emails}
}

type AuthResult struct {
	Flag  bool   `json:"flag"`
	Cause string `json:"cause"`
}

// Decision is what VerifyAuth returns. Cookie is non-nil when the access token was
// silently re-minted; writing it to the response is up to the caller.
type Decision struct {
	AuthResult
	Claims                *Claims
	Cookie                *http.Cookie
	RefreshedTokenMessage string
}

func deny(cause string) Decision {
	return Decision{AuthResult: AuthResult{Flag: false, Cause: cause}}
}

type Authorizer struct {
	codec *TokenCodec
}

func NewAuthorizer(codec *TokenCodec) *Authorizer {
	return &Authorizer{codec: codec}
}

// VerifyRequest runs VerifyAuth on the accessToken/refreshToken cookies of r.
func (a *Authorizer) VerifyRequest(r *http.Request, req AuthRequest) Decision {
	return a.VerifyAuth(cookieValue(r, AccessTokenCookie), cookieValue(r, RefreshTokenCookie), req)
}

// VerifyAuth decides whether the token pair satisfies req. It never panics and keeps no
// state between calls.
func (a *Authorizer) VerifyAuth(accessToken, refreshToken string, req AuthRequest) Decision {
	if accessToken == "" || refreshToken == "" {
		return deny(CauseUnauthorized)
	}

	access := a.codec.Verify(accessToken)
	refresh := a.codec.Verify(refreshToken)

	if access.Status == TokenInvalid {
		return deny(access.Reason)
	}
	if refresh.Status == TokenInvalid {
		return deny(refresh.Reason)
	}

	if access.Status == TokenExpired {
		return a.refreshAccess(refresh, req)
	}

	if refresh.Status == TokenExpired {
		return deny(CauseLoginAgain)
	}

	if !access.Claims.Complete() || !refresh.Claims.Complete() {
		return deny(CauseMissingInformation)
	}
	if !access.Claims.SameIdentity(refresh.Claims) {
		return deny(CauseMismatchedUsers)
	}

	decision := checkMode(access.Claims, req)
	decision.Claims = access.Claims
	return decision
}

func (a *Authorizer) refreshAccess(refresh Verification, req AuthRequest) Decision {
	if refresh.Status == TokenExpired {
		return deny(CauseLoginAgain)
	}

	newAccessToken, err := a.codec.IssueAccess(*refresh.Claims)
	if err != nil {
		return deny(err.Error())
	}

	decision := checkMode(refresh.Claims, req)
	decision.Claims = refresh.Claims
	decision.Cookie = NewTokenCookie(AccessTokenCookie, newAccessToken, a.codec.AccessTTL())
	decision.RefreshedTokenMessage = RefreshedTokenMessage
	return decision
}

func checkMode(claims *Claims, req AuthRequest) Decision {
	switch req.AuthType {
	case AuthSimple:
	case AuthUser:
		if claims.Username != req.Username {
			return deny(CauseUsernameMismatch)
		}
	case AuthAdmin:
		if claims.Role != roleAdmin {
			return deny(CauseNotAdmin)
		}
	case AuthGroup:
		if !slices.Contains(req.Emails, claims.Email) {
			return deny(CauseEmailNotInGroup)
		}
	default:
		return deny(CauseInvalidAuthType)
	}
	return Decision{AuthResult: AuthResult{Flag: true, Cause: CauseAuthorized}}
}
