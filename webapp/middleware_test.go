package webapp

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkrogh/go-accounts"
)

func testPrincipal(role accounts.Role) accounts.Principal {
	claims := &accounts.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-id"},
		Username:         "user1",
		UserRole:         role.String(),
		RoleID:           role.ID(),
	}
	return accounts.PrincipalFromClaims(claims)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	tokens, err := accounts.NewTokenService(accounts.Config{SecretKey: "middleware-test-secret"}, nil)
	require.NoError(t, err)

	return &Server{
		app:      fiber.New(),
		sessions: session.New(),
		tokens:   tokens,
		logger:   NewZerologAdapter(nopLogger()),
	}
}

// newPolicyApp mounts RequirePolicy behind a middleware that injects a fixed
// principal, skipping session resolution.
func newPolicyApp(t *testing.T, s *Server, policy accounts.Policy, principal accounts.Principal) *fiber.App {
	t.Helper()

	app := fiber.New()
	app.Get("/guarded",
		func(c *fiber.Ctx) error {
			c.Locals(principalLocalsKey, principal)
			return c.Next()
		},
		s.RequirePolicy(policy),
		func(c *fiber.Ctx) error {
			return c.SendString("ok")
		},
	)
	return app
}

func TestRequirePolicy(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		policy     accounts.Policy
		principal  accounts.Principal
		wantStatus int
	}{
		{"anonymous redirected", accounts.PolicyAdminOnly, accounts.AnonymousPrincipal(), fiber.StatusFound},
		{"user forbidden", accounts.PolicyAdminOnly, testPrincipal(accounts.RoleUser), fiber.StatusForbidden},
		{"admin allowed", accounts.PolicyAdminOnly, testPrincipal(accounts.RoleAdmin), fiber.StatusOK},
		{"dev forbidden on admin only", accounts.PolicyAdminOnly, testPrincipal(accounts.RoleDev), fiber.StatusForbidden},
		{"admin allowed on admin or dev", accounts.PolicyAdminOrDev, testPrincipal(accounts.RoleAdmin), fiber.StatusOK},
		{"dev allowed on admin or dev", accounts.PolicyAdminOrDev, testPrincipal(accounts.RoleDev), fiber.StatusOK},
		{"user forbidden on dev only", accounts.PolicyDevOnly, testPrincipal(accounts.RoleUser), fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newPolicyApp(t, s, tt.policy, tt.principal)

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/guarded", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantStatus == fiber.StatusFound {
				assert.Equal(t, "/login", resp.Header.Get("Location"))
			}
		})
	}
}

func TestCurrentPrincipalDefaultsToAnonymous(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		principal := CurrentPrincipal(c)
		assert.False(t, principal.IsAuthenticated())
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

// ResolvePrincipal against the real session store: a stored token resolves to
// an authenticated principal on the next request carrying the same cookie.
func TestResolvePrincipalSessionRoundTrip(t *testing.T) {
	s := newTestServer(t)

	app := fiber.New()
	app.Use(s.ResolvePrincipal)
	app.Post("/grant", func(c *fiber.Ctx) error {
		token, err := s.tokens.Issue(&accounts.User{
			Username: "sessionuser",
			Email:    "sessionuser@example.com",
			RoleID:   accounts.RoleAdmin.ID(),
			IsActive: true,
		})
		if err != nil {
			return err
		}
		resolver := accounts.NewSessionResolver(s.sessionStore(c), s.tokens)
		return resolver.StoreToken(c.Context(), token)
	})
	app.Get("/whoami", func(c *fiber.Ctx) error {
		principal := CurrentPrincipal(c)
		if !principal.IsAuthenticated() {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(principal.Username + " " + principal.Role.String())
	})

	// No session cookie yet: anonymous.
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/grant", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies, "session middleware must set a cookie")

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "sessionuser Admin", string(body))
}

// The principal is also reachable through the request context for code below
// the fiber layer.
func TestResolvePrincipalSetsUserContext(t *testing.T) {
	s := newTestServer(t)

	app := fiber.New()
	app.Use(s.ResolvePrincipal)
	app.Get("/", func(c *fiber.Ctx) error {
		principal, ok := accounts.PrincipalFromContext(c.UserContext())
		assert.True(t, ok)
		assert.False(t, principal.IsAuthenticated())
		return c.SendStatus(fiber.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
