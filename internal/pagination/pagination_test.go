package pagination

import "testing"

func TestPageRequest_Defaults(t *testing.T) {
	tests := []struct {
		name         string
		in           PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"zero_values", PageRequest{}, 1, DefaultPageSize},
		{"explicit", PageRequest{Page: 3, PageSize: 5}, 3, 5},
		{"oversized", PageRequest{Page: 1, PageSize: 500}, 1, MaxPageSize},
		{"negative", PageRequest{Page: -2, PageSize: -1}, 1, DefaultPageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.in
			req.Defaults()
			if req.Page != tt.wantPage || req.PageSize != tt.wantPageSize {
				t.Errorf("expected %d/%d, got %d/%d", tt.wantPage, tt.wantPageSize, req.Page, req.PageSize)
			}
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	req := PageRequest{Page: 3, PageSize: 20}
	if got := req.Offset(); got != 40 {
		t.Errorf("expected offset 40, got %d", got)
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[string](nil, 2, 20, 41)
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}
	if resp.Data == nil || len(resp.Data) != 0 {
		t.Errorf("expected empty non-nil data, got %v", resp.Data)
	}

	empty := NewPageResponse([]int{}, 1, 0, 0)
	if empty.TotalPages != 0 {
		t.Errorf("expected 0 pages for zero page size, got %d", empty.TotalPages)
	}
}
