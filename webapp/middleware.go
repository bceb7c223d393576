package webapp

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mkrogh/go-accounts"
)

// ResolvePrincipal resolves the current principal from session storage and
// stashes it on the request. It never rejects; requests without a valid
// token proceed as anonymous.
func (s *Server) ResolvePrincipal(c *fiber.Ctx) error {
	resolver := accounts.NewSessionResolver(s.sessionStore(c), s.tokens).
		WithLogger(s.logger)

	principal := resolver.CurrentPrincipal(c.Context())
	c.Locals(principalLocalsKey, principal)
	c.SetUserContext(accounts.WithPrincipal(c.UserContext(), principal))

	return c.Next()
}

// CurrentPrincipal returns the principal resolved for this request,
// anonymous when resolution has not run.
func CurrentPrincipal(c *fiber.Ctx) accounts.Principal {
	if principal, ok := c.Locals(principalLocalsKey).(accounts.Principal); ok {
		return principal
	}
	return accounts.AnonymousPrincipal()
}

// RequirePolicy guards a route behind a named role policy. Unauthenticated
// requests are redirected to the login page; authenticated principals
// outside the policy's role set get 403.
func (s *Server) RequirePolicy(policy accounts.Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal := CurrentPrincipal(c)

		if !principal.IsAuthenticated() {
			return c.Redirect("/login", fiber.StatusFound)
		}

		if !policy.Allows(principal) {
			s.logger.Warn("policy rejected principal",
				"policy", policy.Name,
				"user_id", principal.ID,
				"role", string(principal.Role),
			)
			return fiber.ErrForbidden
		}

		return c.Next()
	}
}
