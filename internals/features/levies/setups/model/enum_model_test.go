package model

import "testing"

func TestFrequencyDayCounts(t *testing.T) {
	tests := []struct {
		freq PaymentFrequency
		days int
	}{
		{FrequencyDaily, 1},
		{FrequencyWeekly, 7},
		{FrequencyBiweekly, 14},
		{FrequencyMonthly, 30},
		{FrequencyQuarterly, 90},
		{FrequencyHalfYearly, 182},
		{FrequencyYearly, 365},
		{PaymentFrequency("fortnightly"), 0},
	}
	for _, tt := range tests {
		if got := tt.freq.DayCount(); got != tt.days {
			t.Errorf("%s.DayCount() = %d, want %d", tt.freq, got, tt.days)
		}
	}
}

func TestEnumValidity(t *testing.T) {
	if !OccupancyKiosk.Valid() || OccupancyType("stall").Valid() {
		t.Error("occupancy validity mismatch")
	}
	if !FrequencyDaily.Valid() || PaymentFrequency("hourly").Valid() {
		t.Error("frequency validity mismatch")
	}
}
