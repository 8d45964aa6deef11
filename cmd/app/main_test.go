package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"CareBowAPI/internal/middleware"
	"CareBowAPI/internal/model"

	"github.com/labstack/echo/v4"
)

type stubSessionStore struct {
	users    map[int64]*model.Auth
	profiles map[int64]bool
}

func (s *stubSessionStore) GetUserByID(_ context.Context, id int64) (*model.Auth, error) {
	return s.users[id], nil
}

func (s *stubSessionStore) HasProfile(_ context.Context, id int64, _ string) (bool, error) {
	return s.profiles[id], nil
}

// newAPI builds an echo instance with session resolution over the stub
// store, returning the app and its /care-link group for route wiring.
func newAPI(store middleware.SessionStore) (*echo.Echo, *echo.Group) {
	e := echo.New()
	api := e.Group("/care-link")
	api.Use(middleware.WithIdentity(middleware.NewResolver(store)))
	return e, api
}

func bearerRequest(method, target string, body any, token string) *http.Request {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func tokenFor(t *testing.T, u *model.Auth) string {
	t.Helper()
	tok, err := middleware.GenerateToken(u.AuthID, u.Email, u.Role, 1)
	if err != nil {
		t.Fatal(err)
	}
	return tok
}
