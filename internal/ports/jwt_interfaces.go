package ports

import (
	"net/http"
	"time"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/security"
)

type TokenIssuer interface {
	IssueAccess(claims security.Claims) (string, error)
	IssueRefresh(claims security.Claims) (string, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type Authorizer interface {
	VerifyRequest(r *http.Request, req security.AuthRequest) security.Decision
}
