package catalog

import (
	"context"

	"github.com/MikeSquared-Agency/Verdict/internal/store"
	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
)

// StoreSource serves vehicle lookups from the local catalog store. Used when
// no upstream catalog service is configured.
type StoreSource struct {
	store store.Store
}

func NewStoreSource(s store.Store) *StoreSource {
	return &StoreSource{store: s}
}

func (s *StoreSource) GetVehicle(ctx context.Context, id string) (*vehicle.Vehicle, error) {
	return s.store.GetVehicle(ctx, id)
}

func (s *StoreSource) GetVehicles(ctx context.Context, ids []string) ([]vehicle.Vehicle, error) {
	return s.store.GetVehiclesByIDs(ctx, ids)
}
