package auth

import "context"

type contextKey string

// SessionKey carries the authenticated session through a request context.
const SessionKey contextKey = "session"

// Session is the identity resolved from a verified bearer token. It is the
// only authentication state handlers see; nothing identity-related lives in
// process globals.
type Session struct {
	UserID string
	Email  string
	Name   string
}

// ContextWithSession returns a context carrying the given session.
func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, SessionKey, s)
}

// SessionFromContext retrieves the session from context, or nil if the
// request was not authenticated.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(SessionKey).(*Session)
	return s
}
