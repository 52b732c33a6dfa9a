package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lhsyard/app"
	"lhsyard/config"
	"lhsyard/session"
	"lhsyard/sheet"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Bangkok")
	require.NoError(t, err)

	store := sheet.NewMemoryStore()
	store.Seed("AppUser", [][]string{{"user_id"}, {"1001"}, {"1002"}})

	return &app.App{
		Store:    store,
		Sessions: session.NewManager(),
		Log:      zap.NewNop().Sugar(),
		Loc:      loc,
		Cfg: func() config.Config {
			return config.Config{UserWorksheet: "AppUser", DataWorksheet: "AppData"}
		},
	}
}

func TestLoginSucceedsForKnownUser(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"userId":"1001"}`))
	rr := httptest.NewRecorder()
	LoginHandler(a)(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Welcome, User 1001!")

	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies)
	s, ok := a.Sessions.Get(cookies[0].Value)
	require.True(t, ok)
	assert.True(t, s.Authenticated)
	assert.Equal(t, "1001", s.ActingUser)
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"userId":"9999"}`))
	rr := httptest.NewRecorder()
	LoginHandler(a)(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "User ID not found")
}

func TestSessionPersistsAcrossInteractions(t *testing.T) {
	a := newTestApp(t)
	s := a.Sessions.Create("1001")

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: s.Token})
		rr := httptest.NewRecorder()
		SessionHandler(a)(rr, req)
		assert.Contains(t, rr.Body.String(), `"authenticated":true`)
	}
}

func TestLogoutResetsSession(t *testing.T) {
	a := newTestApp(t)
	s := a.Sessions.Create("1001")

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: s.Token})
	rr := httptest.NewRecorder()
	LogoutHandler(a)(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	_, ok := a.Sessions.Get(s.Token)
	assert.False(t, ok)
}
