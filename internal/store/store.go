package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
)

// CompareSession is an immutable historical record of one verdict
// computation: the room, the vehicle snapshot it ran over and the outcome.
// Sessions are written once and never mutated.
type CompareSession struct {
	ID        uuid.UUID         `json:"id"`
	RoomID    int               `json:"room_id"`
	OwnerID   string            `json:"owner_id"`
	WinnerID  string            `json:"winner_id,omitempty"`
	Verdict   string            `json:"verdict"`
	Vehicles  []vehicle.Vehicle `json:"vehicles"`
	CreatedAt time.Time         `json:"created_at"`
}

// VehicleFilter narrows catalog listings.
type VehicleFilter struct {
	IDs      []string
	Name     string
	Brand    string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Limit    int
	Offset   int
}

type Store interface {
	CreateVehicle(ctx context.Context, v *vehicle.Vehicle) error
	GetVehicle(ctx context.Context, id string) (*vehicle.Vehicle, error)
	GetVehiclesByIDs(ctx context.Context, ids []string) ([]vehicle.Vehicle, error)
	ListVehicles(ctx context.Context, filter VehicleFilter) ([]vehicle.Vehicle, error)
	GetSimilarVehicles(ctx context.Context, id string, limit int) ([]vehicle.Vehicle, error)

	CreateCompareSession(ctx context.Context, session *CompareSession) error
	ListCompareSessions(ctx context.Context, ownerID string, limit int) ([]*CompareSession, error)

	Close() error
}
