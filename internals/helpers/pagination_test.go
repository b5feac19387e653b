package helper

import "testing"

func TestNormalizePaging(t *testing.T) {
	tests := []struct {
		name           string
		page, perPage  int
		defPP, maxPP   int
		wantPage       int
		wantPerPage    int
		wantOffset     int
	}{
		{"defaults", 0, 0, 20, 100, 1, 20, 0},
		{"negative page", -3, 10, 20, 100, 1, 10, 0},
		{"capped per_page", 2, 500, 20, 100, 2, 100, 100},
		{"no cap", 2, 500, 20, 0, 2, 500, 500},
		{"normal", 3, 25, 20, 100, 3, 25, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePaging(tt.page, tt.perPage, tt.defPP, tt.maxPP)
			if got.Page != tt.wantPage || got.PerPage != tt.wantPerPage || got.Offset != tt.wantOffset {
				t.Errorf("NormalizePaging = %+v, want page=%d perPage=%d offset=%d",
					got, tt.wantPage, tt.wantPerPage, tt.wantOffset)
			}
			if got.Limit != got.PerPage {
				t.Errorf("Limit = %d, want %d", got.Limit, got.PerPage)
			}
		})
	}
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages)
	}
	if !p.HasNext || !p.HasPrev {
		t.Errorf("HasNext=%v HasPrev=%v, want true/true", p.HasNext, p.HasPrev)
	}

	empty := BuildPaginationFromPage(0, 1, 20)
	if empty.TotalPages != 1 {
		t.Errorf("empty TotalPages = %d, want 1", empty.TotalPages)
	}
	if empty.HasNext || empty.HasPrev {
		t.Error("empty result should have no next/prev")
	}
}
