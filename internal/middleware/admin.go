package middleware

import (
	"context"
	"net/http"
	"strings"
)

// HomeRoute es a donde se redirige a quien no puede ver rutas admin.
const HomeRoute = "/"

// AdminList es la allow-list de ids de administradores.
// Viene de configuración (ADMIN_USER_IDS) para no redeployar por un cambio de rol.
type AdminList map[string]struct{}

func NewAdminList(ids ...string) AdminList {
	out := AdminList{}
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out[id] = struct{}{}
		}
	}
	return out
}

// Allows compara el id exacto (sin normalizar mayúsculas).
func (a AdminList) Allows(userID string) bool {
	if userID == "" {
		return false
	}
	_, ok := a[userID]
	return ok
}

// IsAdmin indica si el usuario de la sesión está en la allow-list.
func (a AdminList) IsAdmin(ctx context.Context) bool {
	uid, ok := UserID(ctx)
	return ok && a.Allows(uid)
}

// RequireAdmin se evalúa una vez por request: sin sesión o con un id fuera de
// la allow-list redirige a "/"; con match exacto deja pasar.
func RequireAdmin(admins AdminList) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !admins.IsAdmin(r.Context()) {
				http.Redirect(w, r, HomeRoute, http.StatusTemporaryRedirect)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
