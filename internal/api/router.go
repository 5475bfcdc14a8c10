package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Verdict/internal/catalog"
	"github.com/MikeSquared-Agency/Verdict/internal/events"
	"github.com/MikeSquared-Agency/Verdict/internal/rooms"
	"github.com/MikeSquared-Agency/Verdict/internal/scoring"
	"github.com/MikeSquared-Agency/Verdict/internal/store"
	"github.com/MikeSquared-Agency/Verdict/internal/verdict"
)

func NewRouter(s store.Store, rs *rooms.Store, vs *verdict.Service, source catalog.Client, ev events.Client, analyzer *scoring.Analyzer, historyLimit int, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	vehicles := NewVehiclesHandler(s)
	roomsH := NewRoomsHandler(rs, vs, source, ev)
	compare := NewCompareHandler(s, analyzer, historyLimit)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(OwnerIDMiddleware)

		r.Get("/vehicles", vehicles.List)
		r.Get("/vehicles/{id}", vehicles.Get)
		r.Get("/vehicles/{id}/similar", vehicles.Similar)

		r.Get("/rooms", roomsH.List)
		r.Get("/rooms/{room}", roomsH.Get)
		r.Post("/rooms/{room}/vehicles", roomsH.AddVehicle)
		r.Delete("/rooms/{room}/vehicles/{id}", roomsH.RemoveVehicle)
		r.Delete("/rooms/{room}", roomsH.Clear)
		r.Get("/rooms/{room}/verdict", roomsH.Verdict)

		r.Post("/compare/verdict", compare.Verdict)
		r.Get("/compare/history/{owner}", compare.History)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(adminToken))
			r.Post("/vehicles", vehicles.Create)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
