package domain

// Microclimate categories.
const (
	ClimateHotDryDesert     = "hot-dry-desert"
	ClimateHotHumidTropical = "hot-humid-tropical"
	ClimateTemperateHumid   = "temperate-humid"
	ClimateCoolTemperate    = "cool-temperate"
	ClimateColdDryArid      = "cold-dry-arid"
	ClimatePolarAlpine      = "polar-alpine"
	ClimateModerate         = "moderate"
)

// ClimateReading is an averaged weather sample for a location.
type ClimateReading struct {
	TempC           float64 `json:"temp_c"`
	HumidityPercent float64 `json:"humidity_percent"`
	RainfallMM      float64 `json:"rainfall_mm"`
}

// CategorizeMicroclimate maps a reading to a coarse category. Rules are
// checked in order and the first match wins, so a freezing but dry reading is
// cold-dry-arid rather than polar-alpine.
func CategorizeMicroclimate(r ClimateReading) string {
	t, h, rain := r.TempC, r.HumidityPercent, r.RainfallMM
	switch {
	case t > 28 && h < 40:
		return ClimateHotDryDesert
	case t > 25 && h >= 70 && rain > 1000:
		return ClimateHotHumidTropical
	case t >= 15 && t <= 25 && h >= 60 && rain > 700:
		return ClimateTemperateHumid
	case t >= 10 && t < 15 && rain > 500:
		return ClimateCoolTemperate
	case t < 10 && rain < 300:
		return ClimateColdDryArid
	case t < 0:
		return ClimatePolarAlpine
	default:
		return ClimateModerate
	}
}
