package verdict

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Verdict/internal/events"
	"github.com/MikeSquared-Agency/Verdict/internal/scoring"
	"github.com/MikeSquared-Agency/Verdict/internal/store"
	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
)

// State of a room's verdict computation.
type State string

const (
	StateIdle             State = "idle"
	StatePending          State = "pending"
	StateResolved         State = "resolved"
	StateFallbackResolved State = "fallback_resolved"
)

const (
	SourceRemote = "remote"
	SourceLocal  = "local"
)

var errNoRemote = errors.New("no remote verdict endpoint configured")

// Result is the cached comparison outcome for one room.
type Result struct {
	RoomID     int                      `json:"room_id"`
	State      State                    `json:"state"`
	Verdict    string                   `json:"verdict,omitempty"`
	WinnerID   string                   `json:"winner_id,omitempty"`
	Winners    scoring.AttributeWinners `json:"winners"`
	Scores     []scoring.VehicleScore   `json:"scores,omitempty"`
	Source     string                   `json:"source,omitempty"`
	ComputedAt time.Time                `json:"computed_at"`
}

// SessionWriter persists compare sessions. Satisfied by store.Store.
type SessionWriter interface {
	CreateCompareSession(ctx context.Context, session *store.CompareSession) error
}

// Service drives the per-room verdict state machine:
// Idle → Pending → {Resolved, FallbackResolved}. It asks the remote endpoint
// first and falls back to the local analyzer on any failure, so a verdict is
// always produced even under total backend loss.
//
// A resolved result is cached by room id and not recomputed while the room
// keeps two or more vehicles; the cache is dropped (re-arming the room) only
// when the count falls below two. A mutation during an in-flight computation
// does not cancel it — whichever result lands last is displayed.
type Service struct {
	remote   RemoteClient
	analyzer *scoring.Analyzer
	sessions SessionWriter
	events   events.Client
	owner    string
	logger   *slog.Logger

	mu      sync.Mutex
	results map[int]*Result
	pending map[int]bool

	wg sync.WaitGroup
}

func NewService(remote RemoteClient, analyzer *scoring.Analyzer, sessions SessionWriter, ev events.Client, owner string, logger *slog.Logger) *Service {
	if owner == "" {
		owner = "guest"
	}
	return &Service{
		remote:   remote,
		analyzer: analyzer,
		sessions: sessions,
		events:   ev,
		owner:    owner,
		logger:   logger,
		results:  make(map[int]*Result),
		pending:  make(map[int]bool),
	}
}

// RoomChanged reacts to a room store mutation. Rooms with fewer than two
// vehicles drop their cached result and go back to Idle; rooms with a cached
// result keep it; everything else transitions to Pending and computes.
func (s *Service) RoomChanged(ctx context.Context, room int, vehicles []vehicle.Vehicle) {
	s.mu.Lock()
	if len(vehicles) < 2 {
		delete(s.results, room)
		s.mu.Unlock()
		return
	}
	if _, cached := s.results[room]; cached {
		s.mu.Unlock()
		return
	}
	if s.pending[room] {
		s.mu.Unlock()
		return
	}
	s.pending[room] = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.compute(ctx, room, vehicles)
	}()
}

// Result returns the room's current comparison state. Always non-nil.
func (s *Service) Result(room int) *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.results[room]; ok {
		cp := *r
		return &cp
	}
	if s.pending[room] {
		return &Result{RoomID: room, State: StatePending}
	}
	return &Result{RoomID: room, State: StateIdle}
}

// Close waits for in-flight computations and session writes to finish.
func (s *Service) Close() {
	s.wg.Wait()
}

func (s *Service) compute(ctx context.Context, room int, vehicles []vehicle.Vehicle) {
	result := &Result{RoomID: room, ComputedAt: time.Now().UTC()}
	local := s.analyzer.AnalyzeRoom(vehicles)
	result.Winners = local.Winners

	remote, err := s.computeRemote(ctx, vehicles)
	if err == nil {
		result.State = StateResolved
		result.Source = SourceRemote
		result.Verdict = remote.Verdict
		result.WinnerID = remote.WinnerID
		result.Scores = remote.Scores
		if len(result.Scores) == 0 {
			result.Scores = local.Scores
		}
		verdictComputations.WithLabelValues(SourceRemote).Inc()
		s.persistSession(room, vehicles, result)
	} else {
		if !errors.Is(err, errNoRemote) {
			s.logger.Warn("remote verdict failed, using local scoring", "room", room, "error", err)
		}
		result.State = StateFallbackResolved
		result.Source = SourceLocal
		result.Verdict = local.Verdict
		result.WinnerID = local.WinnerID
		result.Scores = local.Scores
		verdictComputations.WithLabelValues(SourceLocal).Inc()
	}

	s.mu.Lock()
	s.results[room] = result
	delete(s.pending, room)
	s.mu.Unlock()

	s.publish(room, result)
}

func (s *Service) computeRemote(ctx context.Context, vehicles []vehicle.Vehicle) (*RemoteVerdict, error) {
	if s.remote == nil {
		return nil, errNoRemote
	}
	return s.remote.ComputeVerdict(ctx, vehicles)
}

// persistSession writes the compare session in the background. Failures are
// counted and logged; they never affect the resolved result.
func (s *Service) persistSession(room int, vehicles []vehicle.Vehicle, result *Result) {
	if s.sessions == nil {
		return
	}
	session := &store.CompareSession{
		ID:       uuid.New(),
		RoomID:   room,
		OwnerID:  s.owner,
		WinnerID: result.WinnerID,
		Verdict:  result.Verdict,
		Vehicles: vehicles,
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.sessions.CreateCompareSession(ctx, session); err != nil {
			sessionPersistFailures.Inc()
			s.logger.Warn("failed to persist compare session", "room", room, "error", err)
			return
		}
		if s.events != nil {
			_ = s.events.Publish(events.SubjectSessionRecorded(session.ID.String()), events.SessionRecordedEvent{
				SessionID: session.ID.String(),
				RoomID:    room,
				OwnerID:   s.owner,
			})
		}
	}()
}

func (s *Service) publish(room int, result *Result) {
	if s.events == nil {
		return
	}
	subject := events.SubjectVerdictResolved(room)
	if result.State == StateFallbackResolved {
		subject = events.SubjectVerdictFallback(room)
	}
	_ = s.events.Publish(subject, events.VerdictResolvedEvent{
		RoomID:     room,
		WinnerID:   result.WinnerID,
		Verdict:    result.Verdict,
		Source:     result.Source,
		ComputedAt: result.ComputedAt,
	})
}
