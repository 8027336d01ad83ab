package domain

import "context"

type contextKey string

const (
	authTokenKey contextKey = "authToken"
	sessionKey   contextKey = "session"
)

// ContextWithAuthToken stores the caller's bearer token for pass-through
// to the remote banking API. The portal never issues or refreshes tokens.
func ContextWithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, authTokenKey, token)
}

// AuthTokenFromContext returns the bearer token carried by the context,
// or "" when the request is unauthenticated
func AuthTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(authTokenKey).(string)
	return token
}

// ContextWithSession attaches the authenticated session to the context
func ContextWithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// SessionFromContext returns the session carried by the context
func SessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionKey).(Session)
	return session, ok
}
