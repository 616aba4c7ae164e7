package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mcoot/shellgame-go/internal/api/apierr"
	"github.com/mcoot/shellgame-go/internal/model"
)

// Authorizer checks a presented owner token against a game
type Authorizer interface {
	Authorize(ctx context.Context, gameID model.GameID, token string) error
}

// GameOwner creates middleware that requires the game's owner token.
// The game ID is read from the {id} route variable.
func GameOwner(authorizer Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			id := model.GameID(mux.Vars(r)["id"])
			if err := authorizer.Authorize(r.Context(), id, token); err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the bearer token from the request
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	return ""
}
