package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vestbyenif/volunteer-api/internal/config"
	"github.com/vestbyenif/volunteer-api/internal/utils"
)

func testAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()
	hash, err := utils.HashPassword("correct horse", 4)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return NewAuthHandler(config.Config{
		JWTSecret:     "test-secret",
		AccessTTLMin:  15,
		AdminEmail:    "admin@example.org",
		AdminPassHash: hash,
	})
}

func doLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Login(e.NewContext(req, rec)); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	return rec
}

func TestLogin(t *testing.T) {
	h := testAuthHandler(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"email":"admin@example.org","password":"correct horse"}`, http.StatusOK},
		{"email case insensitive", `{"email":"Admin@Example.org","password":"correct horse"}`, http.StatusOK},
		{"wrong password", `{"email":"admin@example.org","password":"battery staple"}`, http.StatusUnauthorized},
		{"wrong email", `{"email":"other@example.org","password":"correct horse"}`, http.StatusUnauthorized},
		{"missing password", `{"email":"admin@example.org"}`, http.StatusBadRequest},
		{"empty body", `{}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doLogin(t, h, tc.body)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tc.want, rec.Body.String())
			}
			if tc.want == http.StatusOK && !strings.Contains(rec.Body.String(), `"token"`) {
				t.Fatalf("success response carries no token: %s", rec.Body.String())
			}
		})
	}
}
