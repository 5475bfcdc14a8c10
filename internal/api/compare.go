package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Verdict/internal/scoring"
	"github.com/MikeSquared-Agency/Verdict/internal/store"
	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
)

type CompareHandler struct {
	store        store.Store
	analyzer     *scoring.Analyzer
	historyLimit int
}

func NewCompareHandler(s store.Store, analyzer *scoring.Analyzer, historyLimit int) *CompareHandler {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &CompareHandler{store: s, analyzer: analyzer, historyLimit: historyLimit}
}

type verdictRequest struct {
	Vehicles []vehicle.Vehicle `json:"vehicles"`
}

type verdictResponse struct {
	Verdict  string                   `json:"verdict"`
	WinnerID string                   `json:"winner_id"`
	Winners  scoring.AttributeWinners `json:"winners"`
	Scores   []scoring.VehicleScore   `json:"scores"`
}

// Verdict is the server-authoritative compute path. The submitted snapshot
// is refreshed against the catalog so the verdict reflects current data;
// ids the catalog no longer knows keep their submitted values.
func (h *CompareHandler) Verdict(w http.ResponseWriter, r *http.Request) {
	var req verdictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if len(req.Vehicles) < 2 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "need at least two vehicles"})
		return
	}

	list := req.Vehicles
	if latest, err := h.store.GetVehiclesByIDs(r.Context(), vehicle.IDs(list)); err == nil && len(latest) > 0 {
		byID := make(map[string]vehicle.Vehicle, len(latest))
		for _, v := range latest {
			byID[v.ID] = v
		}
		merged := make([]vehicle.Vehicle, len(list))
		for i, v := range list {
			if fresh, ok := byID[v.ID]; ok {
				merged[i] = fresh
			} else {
				merged[i] = v
			}
		}
		list = merged
	}

	analysis := h.analyzer.AnalyzeRoom(list)
	writeJSON(w, http.StatusOK, verdictResponse{
		Verdict:  scoring.ServerVerdict(analysis.WinnerName, analysis.WinnerBrand),
		WinnerID: analysis.WinnerID,
		Winners:  analysis.Winners,
		Scores:   analysis.Scores,
	})
}

func (h *CompareHandler) History(w http.ResponseWriter, r *http.Request) {
	owner := chi.URLParam(r, "owner")
	sessions, err := h.store.ListCompareSessions(r.Context(), owner, h.historyLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if sessions == nil {
		sessions = []*store.CompareSession{}
	}
	writeJSON(w, http.StatusOK, sessions)
}
