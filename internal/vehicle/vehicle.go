package vehicle

// Vehicle is the normalized record shared by the room store and the
// comparison engine. Upstream catalog data is inconsistent: price, mileage
// and performance may be missing or arrive as free-form strings, so those
// fields use the tolerant Metric type instead of plain floats.
type Vehicle struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Brand            string `json:"brand,omitempty"`
	Category         string `json:"category,omitempty"` // "car" or "bike"
	Price            Metric `json:"price"`
	Mileage          Metric `json:"mileage"`
	PerformanceScore Metric `json:"performance_score"`
	Transmission     string `json:"transmission,omitempty"`
	ImageURL         string `json:"image,omitempty"`
}

// IDs returns the ids of the given vehicles, skipping empty ones.
func IDs(vehicles []Vehicle) []string {
	ids := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		if v.ID != "" {
			ids = append(ids, v.ID)
		}
	}
	return ids
}
