package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Verdict/internal/catalog"
	"github.com/MikeSquared-Agency/Verdict/internal/events"
	"github.com/MikeSquared-Agency/Verdict/internal/rooms"
	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
	"github.com/MikeSquared-Agency/Verdict/internal/verdict"
)

type RoomsHandler struct {
	rooms    *rooms.Store
	verdicts *verdict.Service
	source   catalog.Client
	events   events.Client
}

func NewRoomsHandler(rs *rooms.Store, vs *verdict.Service, source catalog.Client, ev events.Client) *RoomsHandler {
	return &RoomsHandler{rooms: rs, verdicts: vs, source: source, events: ev}
}

type roomSnapshot struct {
	RoomID   int               `json:"room_id"`
	Vehicles []vehicle.Vehicle `json:"vehicles"`
	Count    int               `json:"count"`
}

func (h *RoomsHandler) List(w http.ResponseWriter, r *http.Request) {
	var snapshots []roomSnapshot
	for _, room := range h.rooms.RoomIDs() {
		list, _ := h.rooms.Room(room)
		snapshots = append(snapshots, roomSnapshot{RoomID: room, Vehicles: list, Count: len(list)})
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func (h *RoomsHandler) Get(w http.ResponseWriter, r *http.Request) {
	room, ok := h.roomParam(w, r)
	if !ok {
		return
	}
	list, _ := h.rooms.Room(room)
	writeJSON(w, http.StatusOK, roomSnapshot{RoomID: room, Vehicles: list, Count: len(list)})
}

type addVehicleRequest struct {
	VehicleID string `json:"vehicle_id"`
}

func (h *RoomsHandler) AddVehicle(w http.ResponseWriter, r *http.Request) {
	room, ok := h.roomParam(w, r)
	if !ok {
		return
	}
	var req addVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if req.VehicleID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "vehicle_id required"})
		return
	}

	v, err := h.source.GetVehicle(r.Context(), req.VehicleID)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	if v == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "vehicle not found"})
		return
	}

	h.rooms.AddVehicle(room, *v)
	h.publishUpdated(room)

	list, _ := h.rooms.Room(room)
	writeJSON(w, http.StatusOK, roomSnapshot{RoomID: room, Vehicles: list, Count: len(list)})
}

func (h *RoomsHandler) RemoveVehicle(w http.ResponseWriter, r *http.Request) {
	room, ok := h.roomParam(w, r)
	if !ok {
		return
	}
	h.rooms.RemoveVehicle(room, chi.URLParam(r, "id"))
	h.publishUpdated(room)

	list, _ := h.rooms.Room(room)
	writeJSON(w, http.StatusOK, roomSnapshot{RoomID: room, Vehicles: list, Count: len(list)})
}

func (h *RoomsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	room, ok := h.roomParam(w, r)
	if !ok {
		return
	}
	h.rooms.ClearRoom(room)
	if h.events != nil {
		_ = h.events.Publish(events.SubjectRoomCleared(room), events.RoomClearedEvent{RoomID: room})
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *RoomsHandler) Verdict(w http.ResponseWriter, r *http.Request) {
	room, ok := h.roomParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.verdicts.Result(room))
}

func (h *RoomsHandler) roomParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	room, err := strconv.Atoi(chi.URLParam(r, "room"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid room id"})
		return 0, false
	}
	if !h.rooms.Has(room) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "room not found"})
		return 0, false
	}
	return room, true
}

func (h *RoomsHandler) publishUpdated(room int) {
	if h.events == nil {
		return
	}
	list, _ := h.rooms.Room(room)
	_ = h.events.Publish(events.SubjectRoomUpdated(room), events.RoomUpdatedEvent{
		RoomID:     room,
		VehicleIDs: vehicle.IDs(list),
		Count:      len(list),
	})
}
