package handler

import (
	"net/http"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model/requestresponse"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/ports"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/security"
)

type AuthenticationHandler struct {
	ports.AuthenticationService
	authorizer ports.Authorizer
	tokens     ports.TokenIssuer
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	authorizer ports.Authorizer,
	tokens ports.TokenIssuer,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService,
		authorizer,
		tokens,
	}
}

// Register godoc
// @Summary Register a user
// @Description Creates a Regular account. No tokens are issued.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "New account"
// @Success 200 {object} requestresponse.Envelope{data=requestresponse.MessageData}
// @Failure 400 {object} requestresponse.ErrorResponse "e.g. you are already registered"
// @Failure 429 {object} requestresponse.ErrorResponse
// @Router /api/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, model.RoleRegular)
}

// RegisterAdmin godoc
// @Summary Register an administrator
// @Description Creates an Admin account. No tokens are issued.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "New account"
// @Success 200 {object} requestresponse.Envelope{data=requestresponse.MessageData}
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 429 {object} requestresponse.ErrorResponse
// @Router /api/admin [post]
func (h *AuthenticationHandler) RegisterAdmin(w http.ResponseWriter, r *http.Request) {
	h.register(w, r, model.RoleAdmin)
}

func (h *AuthenticationHandler) register(w http.ResponseWriter, r *http.Request, role string) {
	var req requestresponse.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	if err := h.AuthenticationService.Register(r.Context(), req.Username, req.Email, req.Password, role); err != nil {
		writeServiceError(w, err)
		return
	}

	writeData(w, security.Decision{}, requestresponse.MessageData{Message: "user added successfully"})
}

// Login godoc
// @Summary Log in
// @Description Issues an access token (1 hour) and a refresh token (7 days), both also set as cookies.
// @Description Any earlier session of the same user is replaced.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Credentials"
// @Success 200 {object} requestresponse.Envelope{data=model.TokensPair}
// @Failure 400 {object} requestresponse.ErrorResponse "e.g. wrong credentials"
// @Failure 429 {object} requestresponse.ErrorResponse
// @Router /api/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return
	}

	tokens, err := h.AuthenticationService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	http.SetCookie(w, security.NewTokenCookie(security.AccessTokenCookie, tokens.AccessToken, h.tokens.AccessTTL()))
	http.SetCookie(w, security.NewTokenCookie(security.RefreshTokenCookie, tokens.RefreshToken, h.tokens.RefreshTTL()))

	writeData(w, security.Decision{}, tokens)
}

// Logout godoc
// @Summary Log out
// @Description Ends the session owning the refresh token cookie and expires both token cookies.
// @Tags Authentication
// @Produce json
// @Success 200 {object} requestresponse.Envelope{data=requestresponse.MessageData}
// @Failure 400 {object} requestresponse.ErrorResponse "e.g. user not found"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/logout [get]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := authorize(w, r, h.authorizer, security.Simple()); !ok {
		return
	}

	var refreshToken string
	if cookie, err := r.Cookie(security.RefreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}

	if err := h.AuthenticationService.Logout(r.Context(), refreshToken); err != nil {
		writeServiceError(w, err)
		return
	}

	http.SetCookie(w, security.ExpiredTokenCookie(security.AccessTokenCookie))
	http.SetCookie(w, security.ExpiredTokenCookie(security.RefreshTokenCookie))

	writeData(w, security.Decision{}, requestresponse.MessageData{Message: "user logged out"})
}
