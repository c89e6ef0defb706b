// AngelaMos | 2026
// dto_test.go

package product

import (
	"errors"
	"testing"

	"github.com/purpleshop/api/internal/core"
)

func floatPtr(v float64) *float64 { return &v }

func TestSearchParamsNormalize(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		size     int
		wantPage int
		wantSize int
	}{
		{"defaults applied", 0, 0, 1, 20},
		{"negative page clamps", -3, 50, 1, 50},
		{"oversized page size clamps", 2, 500, 2, 100},
		{"in range untouched", 4, 25, 4, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := SearchParams{Page: tt.page, PageSize: tt.size}
			p.Normalize(20, 100)
			if p.Page != tt.wantPage || p.PageSize != tt.wantSize {
				t.Errorf("Normalize: got page=%d size=%d, want page=%d size=%d",
					p.Page, p.PageSize, tt.wantPage, tt.wantSize)
			}
		})
	}
}

func TestSearchParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  SearchParams
		wantErr bool
	}{
		{"empty is valid", SearchParams{}, false},
		{
			"price band in order",
			SearchParams{MinPrice: floatPtr(10), MaxPrice: floatPtr(20)},
			false,
		},
		{
			"inverted price band",
			SearchParams{MinPrice: floatPtr(20), MaxPrice: floatPtr(10)},
			true,
		},
		{
			"equal bounds allowed",
			SearchParams{MinPrice: floatPtr(15), MaxPrice: floatPtr(15)},
			false,
		},
		{"negative min price", SearchParams{MinPrice: floatPtr(-1)}, true},
		{"negative max price", SearchParams{MaxPrice: floatPtr(-1)}, true},
		{"zero radius", SearchParams{RadiusKM: floatPtr(0)}, true},
		{"negative radius", SearchParams{RadiusKM: floatPtr(-5)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, core.ErrInvalidInput) {
				t.Errorf("Validate() error should wrap ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSearchParamsHasGeoFilter(t *testing.T) {
	lat, lon, radius := floatPtr(40.4), floatPtr(-3.7), floatPtr(10)

	tests := []struct {
		name   string
		params SearchParams
		want   bool
	}{
		{"all three present", SearchParams{Latitude: lat, Longitude: lon, RadiusKM: radius}, true},
		{"missing radius", SearchParams{Latitude: lat, Longitude: lon}, false},
		{"missing longitude", SearchParams{Latitude: lat, RadiusKM: radius}, false},
		{"missing latitude", SearchParams{Longitude: lon, RadiusKM: radius}, false},
		{"none", SearchParams{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.params.HasGeoFilter(); got != tt.want {
				t.Errorf("HasGeoFilter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStringListCodec(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		raw := encodeStringList([]string{"a", "b"})
		if raw == nil {
			t.Fatal("encodeStringList returned nil for non-empty list")
		}
		got := decodeStringList(raw)
		if len(got) != 2 || got[0] != "a" || got[1] != "b" {
			t.Errorf("round trip = %v, want [a b]", got)
		}
	})

	t.Run("empty encodes to nil", func(t *testing.T) {
		if encodeStringList(nil) != nil {
			t.Error("encodeStringList(nil) should be nil")
		}
		if encodeStringList([]string{}) != nil {
			t.Error("encodeStringList(empty) should be nil")
		}
	})

	t.Run("nil decodes to empty list", func(t *testing.T) {
		if got := decodeStringList(nil); got == nil || len(got) != 0 {
			t.Errorf("decodeStringList(nil) = %v, want []", got)
		}
	})

	t.Run("malformed decodes to empty list", func(t *testing.T) {
		bad := "{not json"
		if got := decodeStringList(&bad); len(got) != 0 {
			t.Errorf("decodeStringList(malformed) = %v, want []", got)
		}
	})
}
