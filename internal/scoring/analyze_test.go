package scoring

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()
	if err := w.Validate(); err != nil {
		t.Errorf("default weights invalid: %v", err)
	}
	if math.Abs(w.Sum()-1.0) > 0.001 {
		t.Errorf("default weights sum to %f, expected 1.0", w.Sum())
	}
}

func TestWeightSetValidate(t *testing.T) {
	bad := WeightSet{Mileage: 0.5, Performance: 0.3, PriceAdvantage: 0.3}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for weights summing to 1.1")
	}
	negative := WeightSet{Mileage: 1.2, Performance: 0.0, PriceAdvantage: -0.2}
	if err := negative.Validate(); err == nil {
		t.Error("expected error for negative weight")
	}
}

func TestAnalyzeRoomTwoVehicles(t *testing.T) {
	a := NewAnalyzer(DefaultWeights())
	vehicles := []vehicle.Vehicle{
		{ID: "a", Name: "Alpha", Brand: "Acme", Price: vehicle.Number(500000), Mileage: vehicle.Number(18), PerformanceScore: vehicle.Number(70)},
		{ID: "b", Name: "Beta", Brand: "Bolt", Price: vehicle.Number(800000), Mileage: vehicle.Number(15), PerformanceScore: vehicle.Number(95)},
	}

	got := a.AnalyzeRoom(vehicles)

	if got.Winners.CheapestID != "a" {
		t.Errorf("cheapest = %q, want a", got.Winners.CheapestID)
	}
	if got.Winners.BestMileageID != "a" {
		t.Errorf("best mileage = %q, want a", got.Winners.BestMileageID)
	}
	if got.Winners.BestPerformanceID != "b" {
		t.Errorf("best performance = %q, want b", got.Winners.BestPerformanceID)
	}

	// a: 1*0.4 + (70/95)*0.4 + 1*0.2 ≈ 0.8947
	// b: (15/18)*0.4 + 1*0.4 + (500000/800000)*0.2 ≈ 0.8583
	if math.Abs(got.Scores[0].Total-0.8947) > 0.001 {
		t.Errorf("score a = %f, want ≈0.8947", got.Scores[0].Total)
	}
	if math.Abs(got.Scores[1].Total-0.8583) > 0.001 {
		t.Errorf("score b = %f, want ≈0.8583", got.Scores[1].Total)
	}
	if got.WinnerID != "a" {
		t.Errorf("winner = %q, want a", got.WinnerID)
	}
	if !strings.Contains(got.Verdict, "Alpha") {
		t.Errorf("verdict should name the winner, got %q", got.Verdict)
	}
}

func TestAnalyzeRoomDeterministic(t *testing.T) {
	a := NewAnalyzer(DefaultWeights())
	vehicles := []vehicle.Vehicle{
		{ID: "a", Name: "Alpha", Price: vehicle.Number(400000), Mileage: vehicle.Number(20), PerformanceScore: vehicle.Number(60)},
		{ID: "b", Name: "Beta", Price: vehicle.Number(600000), Mileage: vehicle.Number(25), PerformanceScore: vehicle.Number(80)},
		{ID: "c", Name: "Gamma", Price: vehicle.Number(350000), Mileage: vehicle.Number(22), PerformanceScore: vehicle.Number(55)},
	}

	first := a.AnalyzeRoom(vehicles)
	for i := 0; i < 10; i++ {
		if got := a.AnalyzeRoom(vehicles); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d diverged: %+v vs %+v", i, got, first)
		}
	}
}

func TestAnalyzeRoomMissingPrice(t *testing.T) {
	a := NewAnalyzer(DefaultWeights())
	vehicles := []vehicle.Vehicle{
		{ID: "a", Name: "Alpha", Price: vehicle.None(), Mileage: vehicle.Number(18), PerformanceScore: vehicle.Number(70)},
		{ID: "b", Name: "Beta", Price: vehicle.Number(800000), Mileage: vehicle.Number(15), PerformanceScore: vehicle.Number(95)},
	}

	got := a.AnalyzeRoom(vehicles)

	if got.Winners.CheapestID != "b" {
		t.Errorf("cheapest = %q, want b (a has no price)", got.Winners.CheapestID)
	}
	if got.Scores[0].PriceAdvantage != 0 {
		t.Errorf("price advantage for a = %f, want 0", got.Scores[0].PriceAdvantage)
	}
	// a still gets a composite score from the other two components
	want := 1.0*0.4 + (70.0/95.0)*0.4
	if math.Abs(got.Scores[0].Total-want) > 0.0001 {
		t.Errorf("score a = %f, want %f", got.Scores[0].Total, want)
	}
}

func TestAnalyzeRoomNoValidAttributes(t *testing.T) {
	a := NewAnalyzer(DefaultWeights())
	vehicles := []vehicle.Vehicle{
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "Beta"},
	}

	got := a.AnalyzeRoom(vehicles)

	if got.Winners.CheapestID != "" || got.Winners.BestMileageID != "" || got.Winners.BestPerformanceID != "" {
		t.Errorf("expected no per-attribute winners, got %+v", got.Winners)
	}
	// All totals are zero; first vehicle wins the tie.
	if got.WinnerID != "a" {
		t.Errorf("winner = %q, want a", got.WinnerID)
	}
}

func TestAnalyzeRoomTieFirstWins(t *testing.T) {
	a := NewAnalyzer(DefaultWeights())
	vehicles := []vehicle.Vehicle{
		{ID: "x", Name: "X", Price: vehicle.Number(100), Mileage: vehicle.Number(10), PerformanceScore: vehicle.Number(50)},
		{ID: "y", Name: "Y", Price: vehicle.Number(100), Mileage: vehicle.Number(10), PerformanceScore: vehicle.Number(50)},
	}

	got := a.AnalyzeRoom(vehicles)
	if got.WinnerID != "x" {
		t.Errorf("winner = %q, want first vehicle x", got.WinnerID)
	}
	if got.Winners.CheapestID != "x" || got.Winners.BestMileageID != "x" || got.Winners.BestPerformanceID != "x" {
		t.Errorf("attribute ties should go to the first vehicle, got %+v", got.Winners)
	}
}

func TestAnalyzeRoomNormalizedBounds(t *testing.T) {
	a := NewAnalyzer(DefaultWeights())
	vehicles := []vehicle.Vehicle{
		{ID: "a", Price: vehicle.Number(300000), Mileage: vehicle.Number(12), PerformanceScore: vehicle.Number(40)},
		{ID: "b", Price: vehicle.Number(450000), Mileage: vehicle.Number(19), PerformanceScore: vehicle.Number(88)},
		{ID: "c", Price: vehicle.Number(900000), Mileage: vehicle.Number(8), PerformanceScore: vehicle.Number(99)},
	}

	for _, s := range a.AnalyzeRoom(vehicles).Scores {
		if s.Mileage < 0 || s.Mileage > 1 {
			t.Errorf("mileage component out of [0,1]: %f", s.Mileage)
		}
		if s.Performance < 0 || s.Performance > 1 {
			t.Errorf("performance component out of [0,1]: %f", s.Performance)
		}
	}
}

func TestAnalyzeRoomEmpty(t *testing.T) {
	a := NewAnalyzer(DefaultWeights())
	got := a.AnalyzeRoom(nil)
	if got.WinnerID != "" || len(got.Scores) != 0 {
		t.Errorf("expected empty analysis, got %+v", got)
	}
}
