package repository

import "testing"

func TestPageRequestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		in       PageRequest
		wantPage int
		wantSize int
	}{
		{"zero value", PageRequest{}, 1, 10},
		{"negative page", PageRequest{Page: -3, PageSize: 20}, 1, 20},
		{"oversized limit clamped", PageRequest{Page: 2, PageSize: 500}, 2, 100},
		{"in range untouched", PageRequest{Page: 4, PageSize: 25}, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if got.Page != tt.wantPage || got.PageSize != tt.wantSize {
				t.Errorf("Normalize() = %+v, want page %d size %d", got, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	if got := (PageRequest{Page: 1, PageSize: 10}).Offset(); got != 0 {
		t.Errorf("first page offset = %d, want 0", got)
	}
	if got := (PageRequest{Page: 3, PageSize: 25}).Offset(); got != 50 {
		t.Errorf("third page offset = %d, want 50", got)
	}
}

func TestNewPageResult(t *testing.T) {
	req := PageRequest{Page: 1, PageSize: 10}

	res := NewPageResult([]int{1, 2, 3}, req, 25)
	if !res.HasMore {
		t.Error("HasMore = false with 25 total and 10 served")
	}

	last := NewPageResult([]int{1, 2, 3}, PageRequest{Page: 3, PageSize: 10}, 23)
	if last.HasMore {
		t.Error("HasMore = true on the final page")
	}

	empty := NewPageResult[int](nil, req, 0)
	if empty.Items == nil {
		t.Error("nil items not normalized to an empty slice")
	}
	if empty.HasMore {
		t.Error("HasMore = true for an empty result")
	}
}
