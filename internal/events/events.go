package events

import "time"

type RoomUpdatedEvent struct {
	RoomID     int      `json:"room_id"`
	VehicleIDs []string `json:"vehicle_ids"`
	Count      int      `json:"count"`
}

type RoomClearedEvent struct {
	RoomID int `json:"room_id"`
}

type VerdictResolvedEvent struct {
	RoomID     int       `json:"room_id"`
	WinnerID   string    `json:"winner_id,omitempty"`
	Verdict    string    `json:"verdict"`
	Source     string    `json:"source"` // "remote" or "local"
	ComputedAt time.Time `json:"computed_at"`
}

type SessionRecordedEvent struct {
	SessionID string `json:"session_id"`
	RoomID    int    `json:"room_id"`
	OwnerID   string `json:"owner_id"`
}
