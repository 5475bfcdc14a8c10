package vehicle

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Metric is a numeric attribute that tolerates dirty upstream data. Decoding
// never fails: JSON numbers, numeric strings (including trailing units such
// as "18 kmpl") and nulls all decode; anything that does not start with a
// finite number becomes absent.
type Metric struct {
	value float64
	valid bool
}

// Number returns a present Metric. NaN and infinities are treated as absent.
func Number(v float64) Metric {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Metric{}
	}
	return Metric{value: v, valid: true}
}

// None returns an absent Metric.
func None() Metric { return Metric{} }

// Float returns the value and whether it is present.
func (m Metric) Float() (float64, bool) { return m.value, m.valid }

// Valid reports whether a value is present.
func (m Metric) Valid() bool { return m.valid }

// Or returns the value, or def when absent.
func (m Metric) Or(def float64) float64 {
	if m.valid {
		return m.value
	}
	return def
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.value)
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*m = Metric{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*m = Metric{}
			return nil
		}
		s = strings.TrimSpace(str)
	}
	*m = parseLeading(s)
	return nil
}

// parseLeading extracts the longest numeric prefix, matching how lenient
// string-to-number coercion behaves in the data sources feeding the catalog.
func parseLeading(s string) Metric {
	end := 0
	seenDigit := false
loop:
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			end = i + 1
		case (r == '-' || r == '+') && i == 0:
			end = i + 1
		case r == '.' && !strings.ContainsRune(s[:i], '.'):
			end = i + 1
		case (r == 'e' || r == 'E') && seenDigit && !strings.ContainsAny(s[:i], "eE"):
			end = i + 1
		case (r == '-' || r == '+') && i > 0 && (s[i-1] == 'e' || s[i-1] == 'E'):
			end = i + 1
		default:
			break loop
		}
	}
	if !seenDigit {
		return Metric{}
	}
	f, err := strconv.ParseFloat(strings.TrimRight(s[:end], "eE+-."), 64)
	if err != nil {
		return Metric{}
	}
	return Number(f)
}
