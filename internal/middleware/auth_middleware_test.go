package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/neuraview/internal/config"
	"github.com/fadilmartias/neuraview/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthApp(t *testing.T) (*fiber.App, *service.AuthService) {
	t.Helper()
	auth := service.NewAuthService(&config.AuthConfig{JWTSecret: "middleware-secret", TokenTTL: time.Hour})

	app := fiber.New()
	app.Use(Authenticate(auth))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		id, _ := Session(c).UserID()
		return c.SendString(id)
	})
	app.Get("/private", RequireUser(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app, auth
}

func get(t *testing.T, app *fiber.App, path, authorization string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAuthenticate(t *testing.T) {
	app, auth := newAuthApp(t)
	token, err := auth.GenerateToken("42")
	require.NoError(t, err)

	tests := []struct {
		name          string
		authorization string
		want          string
	}{
		{name: "valid token", authorization: "Bearer " + token, want: "42"},
		{name: "lowercase scheme", authorization: "bearer " + token, want: "42"},
		{name: "no header", authorization: "", want: ""},
		{name: "garbage token", authorization: "Bearer nope", want: ""},
		{name: "wrong scheme", authorization: "Basic " + token, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, app, "/whoami", tt.authorization)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.want, body)
		})
	}
}

func TestRequireUser(t *testing.T) {
	app, auth := newAuthApp(t)
	token, err := auth.GenerateToken("42")
	require.NoError(t, err)

	status, _ := get(t, app, "/private", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := get(t, app, "/private", "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)
}
