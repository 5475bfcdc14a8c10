package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Verdict/internal/store"
	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
)

type VehiclesHandler struct {
	store store.Store
}

func NewVehiclesHandler(s store.Store) *VehiclesHandler {
	return &VehiclesHandler{store: s}
}

func (h *VehiclesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var v vehicle.Vehicle
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if v.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name required"})
		return
	}

	if err := h.store.CreateVehicle(r.Context(), &v); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *VehiclesHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := store.VehicleFilter{
		Name:     r.URL.Query().Get("name"),
		Brand:    r.URL.Query().Get("brand"),
		Category: r.URL.Query().Get("category"),
	}
	if ids := r.URL.Query().Get("ids"); ids != "" {
		filter.IDs = strings.Split(ids, ",")
	}
	if v := r.URL.Query().Get("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &f
		}
	}
	if v := r.URL.Query().Get("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &f
		}
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	vehicles, err := h.store.ListVehicles(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if vehicles == nil {
		vehicles = []vehicle.Vehicle{}
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *VehiclesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	v, err := h.store.GetVehicle(r.Context(), id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if v == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *VehiclesHandler) Similar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	similar, err := h.store.GetSimilarVehicles(r.Context(), id, 3)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if similar == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		return
	}
	writeJSON(w, http.StatusOK, similar)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
