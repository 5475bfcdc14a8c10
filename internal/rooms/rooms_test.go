package rooms

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testVehicle(id string) vehicle.Vehicle {
	return vehicle.Vehicle{ID: id, Name: "Vehicle " + id, Price: vehicle.Number(100000)}
}

func TestAddVehicleIdempotent(t *testing.T) {
	s := NewStore(5, nil, discardLogger())

	s.AddVehicle(1, testVehicle("a"))
	s.AddVehicle(1, testVehicle("a"))

	list, ok := s.Room(1)
	if !ok {
		t.Fatal("room 1 missing")
	}
	if len(list) != 1 {
		t.Errorf("expected 1 vehicle after duplicate add, got %d", len(list))
	}
}

func TestAddVehicleWithoutID(t *testing.T) {
	s := NewStore(5, nil, discardLogger())

	s.AddVehicle(1, vehicle.Vehicle{Name: "no id"})

	list, _ := s.Room(1)
	if len(list) != 0 {
		t.Errorf("expected empty room, got %d vehicles", len(list))
	}
}

func TestAddVehicleUnknownRoom(t *testing.T) {
	s := NewStore(5, nil, discardLogger())

	s.AddVehicle(9, testVehicle("a"))

	if s.Has(9) {
		t.Error("room 9 should not exist")
	}
}

func TestRemoveVehicleMissingIsNoOp(t *testing.T) {
	s := NewStore(5, nil, discardLogger())
	s.AddVehicle(1, testVehicle("a"))

	var fired int
	s.OnChange(func(room int, vehicles []vehicle.Vehicle) { fired++ })
	s.RemoveVehicle(1, "nope")

	list, _ := s.Room(1)
	if len(list) != 1 || list[0].ID != "a" {
		t.Errorf("room changed by no-op remove: %+v", list)
	}
	if fired != 0 {
		t.Errorf("no-op remove should not notify, fired %d times", fired)
	}
}

func TestRemoveVehicle(t *testing.T) {
	s := NewStore(5, nil, discardLogger())
	s.AddVehicle(2, testVehicle("a"))
	s.AddVehicle(2, testVehicle("b"))

	s.RemoveVehicle(2, "a")

	list, _ := s.Room(2)
	if len(list) != 1 || list[0].ID != "b" {
		t.Errorf("unexpected room contents: %+v", list)
	}
}

func TestClearRoomKeepsSlot(t *testing.T) {
	s := NewStore(5, nil, discardLogger())
	s.AddVehicle(3, testVehicle("a"))

	s.ClearRoom(3)

	list, ok := s.Room(3)
	if !ok {
		t.Fatal("cleared room slot should persist")
	}
	if len(list) != 0 {
		t.Errorf("expected empty room, got %d vehicles", len(list))
	}
}

func TestOnChangeReceivesCopy(t *testing.T) {
	s := NewStore(5, nil, discardLogger())

	var seen []vehicle.Vehicle
	s.OnChange(func(room int, vehicles []vehicle.Vehicle) { seen = vehicles })

	s.AddVehicle(1, testVehicle("a"))
	if len(seen) != 1 {
		t.Fatalf("expected callback with 1 vehicle, got %d", len(seen))
	}
	seen[0].ID = "mutated"

	list, _ := s.Room(1)
	if list[0].ID != "a" {
		t.Error("callback slice aliases store internals")
	}
}

func TestRoomReturnsCopy(t *testing.T) {
	s := NewStore(5, nil, discardLogger())
	s.AddVehicle(1, testVehicle("a"))

	list, _ := s.Room(1)
	list[0].ID = "mutated"

	fresh, _ := s.Room(1)
	if fresh[0].ID != "a" {
		t.Error("Room returned an aliased slice")
	}
}

func TestSnapshotIdentityChangesPerMutation(t *testing.T) {
	s := NewStore(5, nil, discardLogger())
	s.AddVehicle(1, testVehicle("a"))

	before, _ := s.Room(1)
	s.AddVehicle(1, testVehicle("b"))
	after, _ := s.Room(1)

	if len(before) != 1 || len(after) != 2 {
		t.Fatalf("snapshots should be independent: before=%d after=%d", len(before), len(after))
	}
}

func TestPersistAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	state := NewFileState(path)

	s := NewStore(5, state, discardLogger())
	s.AddVehicle(1, testVehicle("a"))
	s.AddVehicle(1, testVehicle("b"))
	s.AddVehicle(4, testVehicle("c"))

	restored := NewStore(5, NewFileState(path), discardLogger())
	list, _ := restored.Room(1)
	if len(list) != 2 {
		t.Errorf("room 1 restored with %d vehicles, want 2", len(list))
	}
	list, _ = restored.Room(4)
	if len(list) != 1 || list[0].ID != "c" {
		t.Errorf("room 4 restored wrong: %+v", list)
	}
}

func TestClearRoomPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	s := NewStore(5, NewFileState(path), discardLogger())
	s.AddVehicle(1, testVehicle("a"))
	s.ClearRoom(1)

	saved, err := NewFileState(path).Load()
	if err != nil {
		t.Fatalf("load state: %v", err)
	}
	if len(saved[1]) != 0 {
		t.Errorf("persisted room 1 should be empty, got %d", len(saved[1]))
	}
}

func TestLoadMissingStateStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.json")
	s := NewStore(5, NewFileState(path), discardLogger())

	for _, room := range s.RoomIDs() {
		if list, _ := s.Room(room); len(list) != 0 {
			t.Errorf("room %d not empty", room)
		}
	}
	if len(s.RoomIDs()) != 5 {
		t.Errorf("expected 5 rooms, got %d", len(s.RoomIDs()))
	}
}

func TestLoadCorruptStateStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rooms.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(5, NewFileState(path), discardLogger())
	for _, room := range s.RoomIDs() {
		if list, _ := s.Room(room); len(list) != 0 {
			t.Errorf("room %d not empty after corrupt load", room)
		}
	}
}
