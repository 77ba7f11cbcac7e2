package auth_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/peoplehub/hr-service/internal/auth"
	"github.com/peoplehub/hr-service/internal/config"
	"github.com/peoplehub/hr-service/internal/domain"
	apperrors "github.com/peoplehub/hr-service/pkg/util"
)

func newGateApp(t *testing.T, extra ...fiber.Handler) (*fiber.App, *auth.TokenManager) {
	t.Helper()
	tm := auth.NewTokenManager(config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60})
	mw := auth.NewAuthMiddleware(tm)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})

	chain := append([]fiber.Handler{mw.Handle}, extra...)
	chain = append(chain, func(c *fiber.Ctx) error {
		identity, _ := auth.IdentityFromContext(c)
		return c.JSON(fiber.Map{"username": identity.Username, "role": string(identity.Role)})
	})
	app.Get("/protected", chain...)
	return app, tm
}

func doRequest(t *testing.T, app *fiber.App, authorization string) (*http.Response, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]string
	require.NoError(t, json.Unmarshal(body, &parsed))
	return resp, parsed
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	app, _ := newGateApp(t)
	resp, body := doRequest(t, app, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "UNAUTHENTICATED", body["code"])
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	app, _ := newGateApp(t)
	resp, body := doRequest(t, app, "Token abc")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "UNAUTHENTICATED", body["code"])
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	app, _ := newGateApp(t)
	resp, body := doRequest(t, app, "Bearer not.a.token")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "UNAUTHENTICATED", body["code"])
}

func TestAuthMiddleware_ValidTokenBindsIdentity(t *testing.T) {
	app, tm := newGateApp(t)
	token, _, err := tm.Generate(domain.Identity{Username: "alice", Role: domain.RoleStandard})
	require.NoError(t, err)

	resp, body := doRequest(t, app, "Bearer "+token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "alice", body["username"])
	require.Equal(t, "standard", body["role"])
}

func TestRequireRole_MismatchIsForbidden(t *testing.T) {
	app, tm := newGateApp(t, auth.RequireRole(domain.RoleAdmin))
	token, _, err := tm.Generate(domain.Identity{Username: "alice", Role: domain.RoleStandard})
	require.NoError(t, err)

	resp, body := doRequest(t, app, "Bearer "+token)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	require.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireRole_MatchPasses(t *testing.T) {
	app, tm := newGateApp(t, auth.RequireRole(domain.RoleAdmin))
	token, _, err := tm.Generate(domain.Identity{Username: "root", Role: domain.RoleAdmin})
	require.NoError(t, err)

	resp, body := doRequest(t, app, "Bearer "+token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "root", body["username"])
}

func TestRequireRole_WithoutBoundIdentityIsUnauthenticated(t *testing.T) {
	// role gate reached without the auth middleware having run
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"code": de.Code})
		},
	})
	app.Get("/gated", auth.RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/gated", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
