package scoring

import (
	"fmt"

	"github.com/MikeSquared-Agency/Verdict/internal/vehicle"
)

// VehicleScore captures one vehicle's normalized component scores and its
// weighted total.
type VehicleScore struct {
	ID             string  `json:"id"`
	Name           string  `json:"name,omitempty"`
	Mileage        float64 `json:"mileage"`
	Performance    float64 `json:"performance"`
	PriceAdvantage float64 `json:"price_advantage"`
	Total          float64 `json:"total"`
}

// AttributeWinners names the best vehicle per attribute. An empty id means
// no vehicle in the room had a usable value for that attribute.
type AttributeWinners struct {
	CheapestID        string `json:"cheapest_id,omitempty"`
	BestMileageID     string `json:"best_mileage_id,omitempty"`
	BestPerformanceID string `json:"best_performance_id,omitempty"`
}

// Analysis is the complete comparison output for one room's vehicle list.
type Analysis struct {
	Winners     AttributeWinners `json:"winners"`
	Scores      []VehicleScore   `json:"scores"`
	WinnerID    string           `json:"winner_id,omitempty"`
	WinnerName  string           `json:"winner_name,omitempty"`
	WinnerBrand string           `json:"winner_brand,omitempty"`
	Verdict     string           `json:"verdict,omitempty"`
}

// Analyzer ranks a room's vehicles by a weighted blend of mileage,
// performance and price advantage. It is used both by the authoritative
// compute endpoint and as the client-side fallback, so the formula must stay
// identical on both paths.
type Analyzer struct {
	weights WeightSet
}

// NewAnalyzer creates an Analyzer with the given weights.
func NewAnalyzer(weights WeightSet) *Analyzer {
	return &Analyzer{weights: weights}
}

// AnalyzeRoom scores every vehicle and picks per-attribute and overall
// winners. Malformed or missing attribute values contribute zero; they never
// abort the analysis. Ties go to the first vehicle in list order.
//
// Components: mileage and performance are normalized against the room maximum
// and land in [0,1]. Price advantage is minPrice/ownPrice, which can exceed 1
// when one vehicle's price is far below the rest; that asymmetry is inherited
// from the formula's origin and kept so both compute paths agree.
func (a *Analyzer) AnalyzeRoom(vehicles []vehicle.Vehicle) Analysis {
	var (
		winners              AttributeWinners
		minPrice             float64
		maxMileage, maxPerf  float64
		havePrice, haveMiles bool
		havePerf             bool
	)
	for _, v := range vehicles {
		if p, ok := v.Price.Float(); ok {
			if !havePrice || p < minPrice {
				minPrice = p
				winners.CheapestID = v.ID
				havePrice = true
			}
		}
		if m, ok := v.Mileage.Float(); ok {
			if !haveMiles || m > maxMileage {
				maxMileage = m
				winners.BestMileageID = v.ID
				haveMiles = true
			}
		}
		if p, ok := v.PerformanceScore.Float(); ok {
			if !havePerf || p > maxPerf {
				maxPerf = p
				winners.BestPerformanceID = v.ID
				havePerf = true
			}
		}
	}

	scores := make([]VehicleScore, 0, len(vehicles))
	winnerIdx := -1
	var best float64
	for i, v := range vehicles {
		s := VehicleScore{ID: v.ID, Name: v.Name}
		if m, ok := v.Mileage.Float(); ok && maxMileage > 0 {
			s.Mileage = m / maxMileage
		}
		if p, ok := v.PerformanceScore.Float(); ok && maxPerf > 0 {
			s.Performance = p / maxPerf
		}
		if p, ok := v.Price.Float(); ok && p > 0 && havePrice {
			s.PriceAdvantage = minPrice / p
		}
		s.Total = s.Mileage*a.weights.Mileage +
			s.Performance*a.weights.Performance +
			s.PriceAdvantage*a.weights.PriceAdvantage
		scores = append(scores, s)

		if winnerIdx < 0 || s.Total > best {
			winnerIdx = i
			best = s.Total
		}
	}

	out := Analysis{Winners: winners, Scores: scores}
	if winnerIdx >= 0 {
		w := vehicles[winnerIdx]
		out.WinnerID = w.ID
		out.WinnerName = w.Name
		out.WinnerBrand = w.Brand
		out.Verdict = LocalVerdict(w.Name)
	}
	return out
}

// LocalVerdict renders the fallback verdict sentence.
func LocalVerdict(name string) string {
	return fmt.Sprintf("%s offers the best overall balance of price, mileage, and performance.", name)
}

// ServerVerdict renders the authoritative verdict sentence, which also names
// the winner's brand.
func ServerVerdict(name, brand string) string {
	return fmt.Sprintf("Overall, %s from %s emerges as the most balanced choice, offering impressive performance and efficiency for its price segment.", name, brand)
}
