package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gotodo/apiserver/types"
)

type contextKey string

const contextUserKey contextKey = "user"

// userFromContext returns the authenticated user injected by the auth
// middleware. Handlers behind RequireAuth can rely on it being set.
func userFromContext(ctx context.Context) (types.User, error) {
	user, ok := ctx.Value(contextUserKey).(types.User)
	if !ok || user.ID < 1 {
		return types.User{}, errors.New("missing authenticated user")
	}
	return user, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
