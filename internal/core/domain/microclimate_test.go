package domain_test

import (
	"testing"

	"github.com/samirrijal/carbontrack/internal/core/domain"
)

func TestCategorizeMicroclimate(t *testing.T) {
	cases := []struct {
		name string
		in   domain.ClimateReading
		want string
	}{
		{"desert", domain.ClimateReading{TempC: 29, HumidityPercent: 30, RainfallMM: 100}, domain.ClimateHotDryDesert},
		{"tropical", domain.ClimateReading{TempC: 26, HumidityPercent: 80, RainfallMM: 1200}, domain.ClimateHotHumidTropical},
		{"temperate", domain.ClimateReading{TempC: 18, HumidityPercent: 65, RainfallMM: 800}, domain.ClimateTemperateHumid},
		{"cool", domain.ClimateReading{TempC: 12, HumidityPercent: 50, RainfallMM: 600}, domain.ClimateCoolTemperate},
		{"arid", domain.ClimateReading{TempC: 5, HumidityPercent: 20, RainfallMM: 150}, domain.ClimateColdDryArid},
		{"freezing but dry stays arid", domain.ClimateReading{TempC: -5, HumidityPercent: 20, RainfallMM: 100}, domain.ClimateColdDryArid},
		{"polar", domain.ClimateReading{TempC: -5, HumidityPercent: 20, RainfallMM: 400}, domain.ClimatePolarAlpine},
		{"moderate", domain.ClimateReading{TempC: 22, HumidityPercent: 55, RainfallMM: 600}, domain.ClimateModerate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.CategorizeMicroclimate(tc.in); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestCarbonRange_Contains(t *testing.T) {
	cases := []struct {
		r    domain.CarbonRange
		v    float64
		want bool
	}{
		{domain.CarbonLow, 0, true},
		{domain.CarbonLow, 9.99, true},
		{domain.CarbonLow, 10, false},
		{domain.CarbonMedium, 10, true},
		{domain.CarbonMedium, 29.9, true},
		{domain.CarbonMedium, 30, false},
		{domain.CarbonHigh, 30, true},
		{domain.CarbonHigh, 85, true},
		{domain.CarbonAll, 1000, true},
		{domain.CarbonRange("bogus"), 5, true},
	}
	for _, tc := range cases {
		if got := tc.r.Contains(tc.v); got != tc.want {
			t.Errorf("%s.Contains(%v) = %v, want %v", tc.r, tc.v, got, tc.want)
		}
	}
}

func TestWaterNeed_Rank(t *testing.T) {
	if !(domain.WaterLow.Rank() < domain.WaterMedium.Rank() && domain.WaterMedium.Rank() < domain.WaterHigh.Rank()) {
		t.Error("expected low < medium < high")
	}
	if domain.WaterNeed("all").Valid() {
		t.Error("expected all to be invalid as a level")
	}
}

func TestBounds_Intersects(t *testing.T) {
	a := domain.Bounds{MinLat: 0, MinLon: 0, MaxLat: 1, MaxLon: 1}
	b := domain.Bounds{MinLat: 0.5, MinLon: 0.5, MaxLat: 2, MaxLon: 2}
	c := domain.Bounds{MinLat: 3, MinLon: 3, MaxLat: 4, MaxLon: 4}
	if !a.Intersects(b) || !b.Intersects(a) {
		t.Error("expected overlapping boxes to intersect")
	}
	if a.Intersects(c) {
		t.Error("expected disjoint boxes not to intersect")
	}
}
