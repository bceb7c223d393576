package accounts

import "context"

// SessionTokenKey is the fixed key the serialized token is stored under in
// session-scoped storage.
const SessionTokenKey = "token"

// SessionStore is the scoped key-value storage capability handed to the
// resolver. Implementations are per-session; this package never implements
// the storage itself.
type SessionStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// SessionResolver recovers the current principal from a previously stored
// token. It never fails outward: any storage or validation failure degrades
// to the anonymous principal.
type SessionResolver struct {
	storage SessionStore
	tokens  TokenService
	logger  Logger
}

// NewSessionResolver returns a resolver bound to the given storage scope.
func NewSessionResolver(storage SessionStore, tokens TokenService) *SessionResolver {
	return &SessionResolver{
		storage: storage,
		tokens:  tokens,
		logger:  defLogger{},
	}
}

func (r *SessionResolver) WithLogger(logger Logger) *SessionResolver {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// CurrentPrincipal reads the stored token and validates it. The result is
// always a fully defined Principal; it is anonymous when the token is
// absent, unreadable, or invalid.
func (r *SessionResolver) CurrentPrincipal(ctx context.Context) Principal {
	if r.storage == nil || r.tokens == nil {
		return AnonymousPrincipal()
	}

	raw, ok, err := r.storage.Get(ctx, SessionTokenKey)
	if err != nil {
		r.logger.Debug("session storage read failed", "error", err)
		return AnonymousPrincipal()
	}
	if !ok || raw == "" {
		return AnonymousPrincipal()
	}

	claims, err := r.tokens.Validate(raw)
	if err != nil {
		r.logger.Debug("stored session token rejected", "error", err)
		return AnonymousPrincipal()
	}

	return PrincipalFromClaims(claims)
}

// StoreToken persists an issued token under SessionTokenKey for later
// resolution.
func (r *SessionResolver) StoreToken(ctx context.Context, token string) error {
	return r.storage.Set(ctx, SessionTokenKey, token)
}
