package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dgrijalva/jwt-go"
	"github.com/quanggiap2004/corebanking-portal/internal/domain"
	"github.com/quanggiap2004/corebanking-portal/internal/logger"
	"github.com/shopspring/decimal"
)

// SessionClaims are the portal-relevant claims inside the bank-issued
// session token
type SessionClaims struct {
	UserID           int64   `json:"userId"`
	Username         string  `json:"username"`
	TransactionLimit float64 `json:"transactionLimit,omitempty"`
	jwt.StandardClaims
}

// Auth verifies the bearer token on every request, attaches the session
// and the raw token to the request context, and rejects anything it
// cannot verify. The raw token is kept only for pass-through to the
// banking API.
func Auth(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, http.StatusUnauthorized, "Authorization token required")
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == "" || tokenString == header {
				writeError(w, http.StatusUnauthorized, "Authorization token required")
				return
			}

			claims := &SessionClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				logger.Info("auth middleware rejected token", logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			session := domain.Session{
				UserID:   claims.UserID,
				Username: claims.Username,
			}
			if claims.TransactionLimit > 0 {
				limit := decimal.NewFromFloat(claims.TransactionLimit)
				session.TransactionLimit = &limit
			}

			ctx := domain.ContextWithSession(r.Context(), session)
			ctx = domain.ContextWithAuthToken(ctx, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
