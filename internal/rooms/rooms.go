package rooms

import (
	"log/slog"
	"sort"
	"sync"

	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
)

// DefaultPoolSize is the number of comparison rooms when none is configured.
const DefaultPoolSize = 5

// ChangeFunc is invoked after every mutation with the room id and a copy of
// the room's post-mutation vehicle list.
type ChangeFunc func(room int, vehicles []vehicle.Vehicle)

// Store owns the fixed pool of comparison rooms. Rooms are numbered 1..N and
// live for the whole process; clearing a room empties its list but keeps the
// slot. Every mutation is copy-on-write — the mutated room gets a fresh slice
// and the top-level map is rebuilt — so snapshots taken before and after a
// change never alias, and the full map is reserialized to durable state.
type Store struct {
	mu       sync.RWMutex
	rooms    map[int][]vehicle.Vehicle
	state    StateStore
	onChange ChangeFunc
	logger   *slog.Logger
}

// NewStore initializes the room pool, restoring any previously persisted
// state. A missing or unreadable state blob starts all rooms empty.
func NewStore(poolSize int, state StateStore, logger *slog.Logger) *Store {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	roomMap := make(map[int][]vehicle.Vehicle, poolSize)
	for i := 1; i <= poolSize; i++ {
		roomMap[i] = nil
	}
	if state != nil {
		saved, err := state.Load()
		if err != nil {
			logger.Warn("failed to load room state, starting empty", "error", err)
		} else {
			for room, list := range saved {
				if _, ok := roomMap[room]; ok && len(list) > 0 {
					roomMap[room] = list
				}
			}
		}
	}
	return &Store{rooms: roomMap, state: state, logger: logger}
}

// OnChange registers the mutation subscriber. Must be called before the
// store is shared.
func (s *Store) OnChange(fn ChangeFunc) {
	s.onChange = fn
}

// Has reports whether the room id belongs to the pool.
func (s *Store) Has(room int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[room]
	return ok
}

// Room returns a copy of the room's vehicle list.
func (s *Store) Room(room int) ([]vehicle.Vehicle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list, ok := s.rooms[room]
	if !ok {
		return nil, false
	}
	return copyList(list), true
}

// Snapshot returns a copy of the full room map.
func (s *Store) Snapshot() map[int][]vehicle.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int][]vehicle.Vehicle, len(s.rooms))
	for room, list := range s.rooms {
		out[room] = copyList(list)
	}
	return out
}

// RoomIDs returns the pool's room ids in ascending order.
func (s *Store) RoomIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.rooms))
	for room := range s.rooms {
		ids = append(ids, room)
	}
	sort.Ints(ids)
	return ids
}

// AddVehicle appends the vehicle to the room. Missing ids, unknown rooms and
// ids already present are silent no-ops.
func (s *Store) AddVehicle(room int, v vehicle.Vehicle) {
	if v.ID == "" {
		return
	}
	s.mu.Lock()
	list, ok := s.rooms[room]
	if !ok {
		s.mu.Unlock()
		return
	}
	for _, existing := range list {
		if existing.ID == v.ID {
			s.mu.Unlock()
			return
		}
	}
	next := make([]vehicle.Vehicle, 0, len(list)+1)
	next = append(next, list...)
	next = append(next, v)
	s.commit(room, next)
}

// RemoveVehicle drops the vehicle with the given id. Unknown rooms and
// absent ids are silent no-ops.
func (s *Store) RemoveVehicle(room int, id string) {
	s.mu.Lock()
	list, ok := s.rooms[room]
	if !ok {
		s.mu.Unlock()
		return
	}
	found := false
	next := make([]vehicle.Vehicle, 0, len(list))
	for _, v := range list {
		if v.ID == id {
			found = true
			continue
		}
		next = append(next, v)
	}
	if !found {
		s.mu.Unlock()
		return
	}
	s.commit(room, next)
}

// ClearRoom empties the room's list. The slot itself persists.
func (s *Store) ClearRoom(room int) {
	s.mu.Lock()
	if _, ok := s.rooms[room]; !ok {
		s.mu.Unlock()
		return
	}
	s.commit(room, nil)
}

// commit swaps in the new list under a rebuilt top-level map, persists the
// whole store and notifies the subscriber. Called with the lock held;
// releases it before the callback runs.
func (s *Store) commit(room int, next []vehicle.Vehicle) {
	updated := make(map[int][]vehicle.Vehicle, len(s.rooms))
	for k, v := range s.rooms {
		updated[k] = v
	}
	updated[room] = next
	s.rooms = updated

	if s.state != nil {
		if err := s.state.Save(updated); err != nil {
			s.logger.Warn("failed to persist room state", "room", room, "error", err)
		}
	}

	notify := s.onChange
	snapshot := copyList(next)
	s.mu.Unlock()

	if notify != nil {
		notify(room, snapshot)
	}
}

func copyList(list []vehicle.Vehicle) []vehicle.Vehicle {
	if len(list) == 0 {
		return []vehicle.Vehicle{}
	}
	out := make([]vehicle.Vehicle, len(list))
	copy(out, list)
	return out
}
