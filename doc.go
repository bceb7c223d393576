// Package accounts implements the authentication core for a server-rendered
// account management application: password hashing with a creation-time
// policy, signed session tokens (HS256 JWT), role resolution from stored role
// codes, a bun-backed user store, and the session resolver that turns a token
// held in per-session storage into the current principal.
//
// Request flow:
//   - Users.Authenticate verifies credentials against the stored bcrypt hash
//     and refreshes last_login best-effort.
//   - TokenService.Issue signs a time-bounded token carrying the identity
//     claims; the caller persists it in session-scoped storage under
//     SessionTokenKey.
//   - On later requests SessionResolver.CurrentPrincipal reads the stored
//     token, validates it, and yields the Principal consumed by the named
//     role policies (AdminOnly, DevOnly, AdminOrDev). Every failure along
//     that path degrades to the anonymous principal.
//
// Token validation failures never surface as errors past the resolver, and
// credential failures are indistinguishable between a missing user and a
// wrong password.
package accounts
