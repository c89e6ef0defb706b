// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		name  string
		total int
		size  int
		want  int
	}{
		{"exact pages", 40, 20, 2},
		{"partial last page", 41, 20, 3},
		{"single item", 1, 20, 1},
		{"empty", 0, 20, 0},
		{"zero size", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PageCount(tt.total, tt.size); got != tt.want {
				t.Errorf("PageCount(%d, %d) = %d, want %d",
					tt.total, tt.size, got, tt.want)
			}
		})
	}
}

func TestJSONErrorWritesAppErrorStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, NotFoundError("product"))

	if rec.Code != 404 {
		t.Errorf("status = %d, want 404", rec.Code)
	}

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body.Success {
		t.Error("success must be false on errors")
	}
	if body.Error.Code != "NOT_FOUND" {
		t.Errorf("code = %q, want NOT_FOUND", body.Error.Code)
	}
	if body.Error.Message != "product not found" {
		t.Errorf("message = %q", body.Error.Message)
	}
}

func TestPaginatedMeta(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, []string{"a", "b"}, 2, 2, 5)

	var body struct {
		Meta struct {
			Page  int `json:"page"`
			Size  int `json:"size"`
			Total int `json:"total"`
			Pages int `json:"pages"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid body: %v", err)
	}
	if body.Meta.Pages != 3 {
		t.Errorf("pages = %d, want 3", body.Meta.Pages)
	}
	if body.Meta.Total != 5 || body.Meta.Page != 2 || body.Meta.Size != 2 {
		t.Errorf("meta = %+v", body.Meta)
	}
}
