package dto

import (
	"testing"

	"github.com/google/uuid"

	m "sabimarket_backend/internals/features/levies/setups/model"
)

func currentSetup() *m.LevySetupModel {
	chairmanID := uuid.New()
	return &m.LevySetupModel{
		LevySetupID:            uuid.New(),
		LevySetupChairmanID:    &chairmanID,
		LevySetupMarketID:      uuid.New(),
		LevySetupOccupancyType: m.OccupancyKiosk,
		LevySetupFrequency:     m.FrequencyWeekly,
		LevySetupAmountKobo:    100_000,
		LevySetupIsActive:      true,
	}
}

func TestRequiresNewVersion(t *testing.T) {
	cur := currentSetup()
	newAmount := int64(150_000)
	sameAmount := cur.LevySetupAmountKobo
	newFreq := m.FrequencyMonthly
	sameFreq := cur.LevySetupFrequency

	tests := []struct {
		name string
		req  UpdateLevySetupRequest
		want bool
	}{
		{"empty patch", UpdateLevySetupRequest{}, false},
		{"same amount", UpdateLevySetupRequest{LevySetupAmountKobo: &sameAmount}, false},
		{"same frequency", UpdateLevySetupRequest{LevySetupFrequency: &sameFreq}, false},
		{"new amount", UpdateLevySetupRequest{LevySetupAmountKobo: &newAmount}, true},
		{"new frequency", UpdateLevySetupRequest{LevySetupFrequency: &newFreq}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.RequiresNewVersion(cur); got != tt.want {
				t.Errorf("RequiresNewVersion = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextVersionInheritsAndPatches(t *testing.T) {
	cur := currentSetup()
	newAmount := int64(150_000)
	req := UpdateLevySetupRequest{LevySetupAmountKobo: &newAmount}

	next := req.NextVersion(cur)
	if next.LevySetupID != uuid.Nil {
		t.Error("next version must be a fresh row, not reuse the current id")
	}
	if next.LevySetupAmountKobo != newAmount {
		t.Errorf("amount = %d, want %d", next.LevySetupAmountKobo, newAmount)
	}
	if next.LevySetupFrequency != cur.LevySetupFrequency {
		t.Error("unpatched frequency must carry over")
	}
	if next.LevySetupMarketID != cur.LevySetupMarketID || next.LevySetupOccupancyType != cur.LevySetupOccupancyType {
		t.Error("tuple identity must carry over")
	}
	if !next.LevySetupIsActive {
		t.Error("next version must be active")
	}
	// The original row is untouched by building the next version.
	if cur.LevySetupAmountKobo != 100_000 {
		t.Error("current row mutated")
	}
}

func TestSetupResponseIsAlwaysSetupRecord(t *testing.T) {
	resp := FromModel(*currentSetup())
	if !resp.IsSetupRecord {
		t.Error("setup responses must carry is_setup_record=true")
	}
}
