package domain

// SamplePoint is one surveyed location with its raw attributes.
// Values are immutable once loaded; all scoring works on derived
// slices, never in place.
type SamplePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`

	FloodFreq string  `json:"ffreq"`   // flood-frequency class: "1", "2", "3"
	LandUse   string  `json:"landuse"` // land-use code, e.g. "Ah", "W", "DEN"
	Lead      float64 `json:"lead"`    // ppm
	Cadmium   float64 `json:"cadmium"` // ppm
	Elev      float64 `json:"elev"`    // m above local river datum
}

// Factor names accepted in weight maps and CLI weight overrides.
const (
	FactorFlood   = "flood"
	FactorLandUse = "landuse"
	FactorLead    = "lead"
	FactorCadmium = "cadmium"
	FactorElev    = "elev"
)

// FactorNames lists the factors in combination order.
var FactorNames = []string{FactorFlood, FactorLandUse, FactorLead, FactorCadmium, FactorElev}
