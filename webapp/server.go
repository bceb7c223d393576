// Package webapp wires the accounts authentication core into a
// server-rendered fiber application: login and logout handlers, a principal
// resolution middleware, policy-guarded pages, and the session storage the
// resolver reads tokens from.
package webapp

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/django/v3"

	"github.com/mkrogh/go-accounts"
)

const principalLocalsKey = "principal"

// Server is the HTTP surface of the account management app.
type Server struct {
	app      *fiber.App
	sessions *session.Store
	users    accounts.Users
	tokens   accounts.TokenService
	logger   accounts.Logger
}

type ServerOptions struct {
	// ViewsDir is the directory holding the django templates. Defaults to
	// "./views".
	ViewsDir string
	Logger   accounts.Logger
}

// NewServer builds the fiber app with its view engine, session store, and
// routes.
func NewServer(users accounts.Users, tokens accounts.TokenService, opts ServerOptions) *Server {
	viewsDir := opts.ViewsDir
	if viewsDir == "" {
		viewsDir = "./views"
	}

	logger := opts.Logger
	if logger == nil {
		logger = NewZerologAdapter(nopLogger())
	}

	engine := django.New(viewsDir, ".html")

	app := fiber.New(fiber.Config{
		Views: engine,
	})

	s := &Server{
		app:      app,
		sessions: session.New(),
		users:    users,
		tokens:   tokens,
		logger:   logger,
	}

	s.routes()
	return s
}

// App exposes the underlying fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves until the listener fails or the app is shut down.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) routes() {
	s.app.Use(s.ResolvePrincipal)

	s.app.Get("/", s.Home)
	s.app.Get("/login", s.LoginShow)
	s.app.Post("/login", s.LoginPost)
	s.app.Get("/logout", s.Logout)
	s.app.Get("/register", s.RegisterShow)
	s.app.Post("/register", s.RegisterPost)

	s.app.Get("/users", s.RequirePolicy(accounts.PolicyAdminOnly), s.UsersIndex)
	s.app.Get("/diagnostics", s.RequirePolicy(accounts.PolicyAdminOrDev), s.Diagnostics)
}

func (s *Server) sessionStore(c *fiber.Ctx) fiberSessionStore {
	return fiberSessionStore{store: s.sessions, c: c}
}
