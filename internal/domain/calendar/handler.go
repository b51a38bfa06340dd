package calendar

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-care-portal/internal/middleware"
	"pet-care-portal/internal/platform/httpclient"
	"pet-care-portal/internal/platform/logger"
	"pet-care-portal/internal/platform/respond"
)

// EventsPath es la ruta que consume el panel admin.
const EventsPath = "/api/google/events"

// DataKey es la key del envelope de EventsPath.
const DataKey = "agendas"

// RegisterRoutes monta la ruta de agendas. Responde siempre con envelope,
// también para 401/403, así el panel muestra el mensaje tal cual.
func RegisterRoutes(r chi.Router, svc *Service, admins middleware.AdminList, log logger.Logger) {
	r.Get(EventsPath, eventsHandler(svc, admins, log))
}

// eventsHandler godoc
// @Summary Agendas de Google Calendar (admin)
// @Description Consulta todas las agendas configuradas en paralelo; si una falla, falla todo. Respuesta `{success, agendas | error}`.
// @Tags calendar
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param Authorization header string false "Bearer token en producción"
// @Param from query string false "Inicio (RFC3339 o YYYY-MM-DD). Por defecto hoy"
// @Param to query string false "Fin (RFC3339 o YYYY-MM-DD). Por defecto from + 30 días"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/google/events [get]
func eventsHandler(svc *Service, admins middleware.AdminList, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := middleware.UserID(r.Context())
		if !ok {
			fail(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !admins.Allows(uid) {
			fail(w, http.StatusForbidden, "forbidden")
			return
		}

		rng, err := parseRange(r, svc.DefaultRange())
		if err != nil {
			fail(w, http.StatusBadRequest, err.Error())
			return
		}

		agendas, err := svc.Agendas(r.Context(), rng)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidRange):
				fail(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, ErrNoCalendars):
				fail(w, http.StatusServiceUnavailable, err.Error())
			default:
				log.Error("calendar fetch failed", map[string]any{"error": err})
				fail(w, http.StatusBadGateway, err.Error())
			}
			return
		}

		respond.JSON(w, http.StatusOK, httpclient.Succeed(agendas).Encode(DataKey))
	}
}

func fail(w http.ResponseWriter, status int, msg string) {
	respond.JSON(w, status, httpclient.Fail[[]Agenda](msg).Encode(DataKey))
}

func parseRange(r *http.Request, def Range) (Range, error) {
	rng := def
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		t, err := parseTime(v)
		if err != nil {
			return Range{}, errors.New("from must be RFC3339 or YYYY-MM-DD")
		}
		rng.From = t
		rng.To = t.Add(DefaultWindow)
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		t, err := parseTime(v)
		if err != nil {
			return Range{}, errors.New("to must be RFC3339 or YYYY-MM-DD")
		}
		rng.To = t
	}
	return rng, nil
}

func parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}
