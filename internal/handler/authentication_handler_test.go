package handler_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/handler"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/model"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/security"
	"github.com/Polito-Software-Engineering-2-Group-10/ezwallet-sub000/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthenticationHandler(t *testing.T) (*handler.AuthenticationHandler, *MockAuthenticationService, *security.TokenCodec) {
	codec := newTestCodec(t)
	svc := new(MockAuthenticationService)
	return handler.NewAuthenticationHandler(svc, security.NewAuthorizer(codec), codec), svc, codec
}

func TestRegister_Success(t *testing.T) {
	h, svc, _ := newAuthenticationHandler(t)
	svc.On("Register", mock.Anything, "mario", "mario@ezwallet.com", "pw", model.RoleRegular).Return(nil)

	rec := httptest.NewRecorder()
	h.Register(rec, newRequest(http.MethodPost, "/api/register",
		`{"username":"mario","email":"mario@ezwallet.com","password":"pw"}`, "", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.JSONEq(t, `{"message":"user added successfully"}`, string(env.Data))
	assert.Empty(t, rec.Result().Cookies())
	svc.AssertExpectations(t)
}

func TestRegisterAdmin_UsesAdminRole(t *testing.T) {
	h, svc, _ := newAuthenticationHandler(t)
	svc.On("Register", mock.Anything, "admin", "admin@ezwallet.com", "pw", model.RoleAdmin).Return(nil)

	rec := httptest.NewRecorder()
	h.RegisterAdmin(rec, newRequest(http.MethodPost, "/api/admin",
		`{"username":"admin","email":"admin@ezwallet.com","password":"pw"}`, "", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestRegister_AlreadyRegistered(t *testing.T) {
	h, svc, _ := newAuthenticationHandler(t)
	svc.On("Register", mock.Anything, "mario", "mario@ezwallet.com", "pw", model.RoleRegular).
		Return(service.ErrAlreadyRegistered)

	rec := httptest.NewRecorder()
	h.Register(rec, newRequest(http.MethodPost, "/api/register",
		`{"username":"mario","email":"mario@ezwallet.com","password":"pw"}`, "", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "you are already registered", decodeEnvelope(t, rec).Error)
}

func TestRegister_MalformedBody(t *testing.T) {
	h, svc, _ := newAuthenticationHandler(t)

	rec := httptest.NewRecorder()
	h.Register(rec, newRequest(http.MethodPost, "/api/register", `{"username":`, "", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decodeEnvelope(t, rec).Error)
	svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_SetsBothCookies(t *testing.T) {
	h, svc, _ := newAuthenticationHandler(t)
	pair := &model.TokensPair{AccessToken: "access-jwt", RefreshToken: "refresh-jwt"}
	svc.On("Login", mock.Anything, "mario@ezwallet.com", "pw").Return(pair, nil)

	rec := httptest.NewRecorder()
	h.Login(rec, newRequest(http.MethodPost, "/api/login", `{"email":"mario@ezwallet.com","password":"pw"}`, "", ""))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data model.TokensPair `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, *pair, body.Data)

	access := findCookie(rec, security.AccessTokenCookie)
	require.NotNil(t, access)
	assert.Equal(t, "access-jwt", access.Value)
	assert.Equal(t, 3600, access.MaxAge)
	assert.True(t, access.HttpOnly)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteNoneMode, access.SameSite)
	assert.Equal(t, "/api", access.Path)

	refresh := findCookie(rec, security.RefreshTokenCookie)
	require.NotNil(t, refresh)
	assert.Equal(t, "refresh-jwt", refresh.Value)
	assert.Equal(t, 7*24*3600, refresh.MaxAge)
}

func TestLogin_WrongPassword(t *testing.T) {
	h, svc, _ := newAuthenticationHandler(t)
	svc.On("Login", mock.Anything, "mario@ezwallet.com", "nope").Return(nil, service.ErrWrongCredentials)

	rec := httptest.NewRecorder()
	h.Login(rec, newRequest(http.MethodPost, "/api/login", `{"email":"mario@ezwallet.com","password":"nope"}`, "", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"wrong credentials"}`, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogin_PersistenceErrorMessage(t *testing.T) {
	h, svc, _ := newAuthenticationHandler(t)
	svc.On("Login", mock.Anything, "mario@ezwallet.com", "pw").
		Return(nil, fmt.Errorf("[AuthService] saving refresh token: %w", errors.New("pq: connection reset by peer")))

	rec := httptest.NewRecorder()
	h.Login(rec, newRequest(http.MethodPost, "/api/login", `{"email":"mario@ezwallet.com","password":"pw"}`, "", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"pq: connection reset by peer"}`, rec.Body.String())
}

func TestLogout_Success(t *testing.T) {
	h, svc, codec := newAuthenticationHandler(t)
	access, refresh := session(t, codec, mario)
	svc.On("Logout", mock.Anything, refresh).Return(nil)

	rec := httptest.NewRecorder()
	h.Logout(rec, newRequest(http.MethodGet, "/api/logout", "", access, refresh))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"user logged out"}`, string(decodeEnvelope(t, rec).Data))

	for _, name := range []string{security.AccessTokenCookie, security.RefreshTokenCookie} {
		c := findCookie(rec, name)
		require.NotNil(t, c, name)
		assert.Empty(t, c.Value)
		assert.Negative(t, c.MaxAge)
	}
	svc.AssertExpectations(t)
}

func TestLogout_UnknownRefreshToken(t *testing.T) {
	h, svc, codec := newAuthenticationHandler(t)
	access, refresh := session(t, codec, mario)
	svc.On("Logout", mock.Anything, refresh).Return(service.ErrUserNotFound)

	rec := httptest.NewRecorder()
	h.Logout(rec, newRequest(http.MethodGet, "/api/logout", "", access, refresh))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"user not found"}`, rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogout_WithoutCookies(t *testing.T) {
	h, svc, _ := newAuthenticationHandler(t)

	rec := httptest.NewRecorder()
	h.Logout(rec, newRequest(http.MethodGet, "/api/logout", "", "", ""))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, security.CauseUnauthorized, decodeEnvelope(t, rec).Error)
	svc.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}

func TestLogout_ExpiredAccessIsRefreshedFirst(t *testing.T) {
	h, svc, codec := newAuthenticationHandler(t)
	_, refresh := session(t, codec, mario)
	svc.On("Logout", mock.Anything, refresh).Return(nil)

	rec := httptest.NewRecorder()
	h.Logout(rec, newRequest(http.MethodGet, "/api/logout", "", expiredToken(t, mario), refresh))

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertCalled(t, "Logout", mock.Anything, refresh)
}
