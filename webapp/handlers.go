package webapp

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"

	"github.com/mkrogh/go-accounts"
)

// Home renders the landing page with the resolved principal.
func (s *Server) Home(c *fiber.Ctx) error {
	principal := CurrentPrincipal(c)
	return c.Render("home", fiber.Map{
		"principal":     principal,
		"authenticated": principal.IsAuthenticated(),
	})
}

func (s *Server) LoginShow(c *fiber.Ctx) error {
	if CurrentPrincipal(c).IsAuthenticated() {
		return c.Redirect("/", fiber.StatusFound)
	}
	return c.Render("login", fiber.Map{})
}

// LoginPost authenticates the submitted credentials, issues a token, and
// stores it in session storage under the token key. The failure message is
// the same whether the user is missing or the password is wrong.
func (s *Server) LoginPost(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := s.users.Authenticate(c.Context(), username, password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
				"error":    "Invalid username or password",
				"username": username,
			})
		}
		s.logger.Error("login lookup failed", "error", err)
		return fiber.ErrInternalServerError
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		s.logger.Error("token issue failed", "user_id", user.ID.String(), "error", err)
		return fiber.ErrInternalServerError
	}

	resolver := accounts.NewSessionResolver(s.sessionStore(c), s.tokens).
		WithLogger(s.logger)
	if err := resolver.StoreToken(c.Context(), token); err != nil {
		s.logger.Error("failed to store session token", "error", err)
		return fiber.ErrInternalServerError
	}

	s.logger.Info("login succeeded", "user_id", user.ID.String(), "role", string(user.Role()))
	return c.Redirect("/", fiber.StatusFound)
}

func (s *Server) Logout(c *fiber.Ctx) error {
	if err := s.sessionStore(c).destroy(); err != nil {
		s.logger.Warn("failed to destroy session", "error", err)
	}
	return c.Redirect("/login", fiber.StatusFound)
}

func (s *Server) RegisterShow(c *fiber.Ctx) error {
	return c.Render("register", fiber.Map{})
}

// RegisterPost creates an account. New accounts start non-active with the
// User role; activation is a separate administrative step.
func (s *Server) RegisterPost(c *fiber.Ctx) error {
	record := &accounts.User{
		Username:  c.FormValue("username"),
		Email:     c.FormValue("email"),
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
	}

	if _, err := s.users.Create(c.Context(), record, c.FormValue("password")); err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) && richErr.Category == errors.CategoryValidation {
			return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{
				"error":    richErr.Message,
				"username": record.Username,
				"email":    record.Email,
			})
		}
		s.logger.Error("user creation failed", "error", err)
		return fiber.ErrInternalServerError
	}

	return c.Redirect("/login", fiber.StatusFound)
}

// UsersIndex lists every account. Guarded by the AdminOnly policy.
func (s *Server) UsersIndex(c *fiber.Ctx) error {
	records, err := s.users.List(c.Context())
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return fiber.ErrInternalServerError
	}

	return c.Render("users", fiber.Map{
		"principal": CurrentPrincipal(c),
		"users":     records,
	})
}

// Diagnostics shows the current token claims. Guarded by AdminOrDev.
func (s *Server) Diagnostics(c *fiber.Ctx) error {
	principal := CurrentPrincipal(c)
	return c.Render("diagnostics", fiber.Map{
		"principal": principal,
	})
}
