package webapp

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/mkrogh/go-accounts"
)

// fiberSessionStore adapts the per-request fiber session to the
// accounts.SessionStore capability. One value is scoped to one request; the
// underlying session is scoped to the browser session cookie.
type fiberSessionStore struct {
	store *session.Store
	c     *fiber.Ctx
}

var _ accounts.SessionStore = fiberSessionStore{}

func (s fiberSessionStore) Get(_ context.Context, key string) (string, bool, error) {
	sess, err := s.store.Get(s.c)
	if err != nil {
		return "", false, err
	}

	raw := sess.Get(key)
	if raw == nil {
		return "", false, nil
	}

	value, ok := raw.(string)
	if !ok || value == "" {
		return "", false, nil
	}

	return value, true, nil
}

func (s fiberSessionStore) Set(_ context.Context, key, value string) error {
	sess, err := s.store.Get(s.c)
	if err != nil {
		return err
	}

	sess.Set(key, value)
	return sess.Save()
}

func (s fiberSessionStore) destroy() error {
	sess, err := s.store.Get(s.c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}
