// AngelaMos | 2026
// repository_test.go

package product

import (
	"fmt"
	"strings"
	"testing"
)

func TestBuildSearchWhereBaseline(t *testing.T) {
	where, args, next := buildSearchWhere(SearchParams{})

	if where != "status = $1" {
		t.Errorf("baseline where = %q, want status filter only", where)
	}
	if len(args) != 1 || args[0] != StatusActive {
		t.Errorf("baseline args = %v, want [active]", args)
	}
	if next != 2 {
		t.Errorf("next placeholder = %d, want 2", next)
	}
}

func TestBuildSearchWhereTextSearch(t *testing.T) {
	where, args, _ := buildSearchWhere(SearchParams{Search: "bike"})

	want := "(title ILIKE $2 OR description ILIKE $2 OR tags ILIKE $2)"
	if !strings.Contains(where, want) {
		t.Errorf("where = %q, missing %q", where, want)
	}
	if len(args) != 2 || args[1] != "%bike%" {
		t.Errorf("args = %v, want search pattern %%bike%%", args)
	}
}

func TestBuildSearchWhereEscapesLikeMetacharacters(t *testing.T) {
	_, args, _ := buildSearchWhere(SearchParams{Search: "50%_off"})

	got, ok := args[1].(string)
	if !ok {
		t.Fatalf("search arg is %T, want string", args[1])
	}
	if got != `%50\%\_off%` {
		t.Errorf("search pattern = %q, want escaped metacharacters", got)
	}
}

func TestBuildSearchWhereAllFilters(t *testing.T) {
	params := SearchParams{
		Search:      "lamp",
		Category:    "furniture",
		Subcategory: "lighting",
		Location:    "madrid",
		MinPrice:    floatPtr(5),
		MaxPrice:    floatPtr(50),
		Condition:   ConditionGood,
		ProductType: TypeSecondHand,
		SellerID:    "seller-1",
	}

	where, args, next := buildSearchWhere(params)

	for _, clause := range []string{
		"status = $1",
		"category = $3",
		"subcategory = $4",
		"location ILIKE $5",
		"price >= $6",
		"price <= $7",
		"condition = $8",
		"product_type = $9",
		"seller_id = $10",
	} {
		if !strings.Contains(where, clause) {
			t.Errorf("where = %q, missing %q", where, clause)
		}
	}

	if len(args) != 10 {
		t.Errorf("args len = %d, want 10", len(args))
	}
	if next != 11 {
		t.Errorf("next placeholder = %d, want 11", next)
	}
	if parts := strings.Split(where, " AND "); len(parts) != 10 {
		t.Errorf("clause count = %d, want 10", len(parts))
	}
}

func TestBuildSearchWhereGeoBounds(t *testing.T) {
	lat, lon, radius := 40.0, -3.0, 111.0

	where, args, _ := buildSearchWhere(SearchParams{
		Latitude:  &lat,
		Longitude: &lon,
		RadiusKM:  &radius,
	})

	if !strings.Contains(where, "latitude BETWEEN $2 AND $3") {
		t.Errorf("where = %q, missing latitude bounds", where)
	}
	if !strings.Contains(where, "longitude BETWEEN $4 AND $5") {
		t.Errorf("where = %q, missing longitude bounds", where)
	}

	// 111 km is one degree, so the box spans one degree each way.
	wantBounds := []float64{39.0, 41.0, -4.0, -2.0}
	for i, want := range wantBounds {
		got, ok := args[i+1].(float64)
		if !ok {
			t.Fatalf("arg %d is %T, want float64", i+1, args[i+1])
		}
		if diff := got - want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("bound %d = %v, want %v", i, got, want)
		}
	}
}

func TestBuildSearchWherePartialGeoIgnored(t *testing.T) {
	lat := 40.0

	where, args, _ := buildSearchWhere(SearchParams{Latitude: &lat})

	if strings.Contains(where, "latitude") {
		t.Errorf("where = %q, partial geo input must be ignored", where)
	}
	if len(args) != 1 {
		t.Errorf("args = %v, want baseline only", args)
	}
}

func TestBuildSearchWherePlaceholdersMatchArgs(t *testing.T) {
	params := SearchParams{
		Search:   "chair",
		Category: "furniture",
		MinPrice: floatPtr(1),
	}

	where, args, next := buildSearchWhere(params)

	// Every arg must have its placeholder in the clause and the next
	// index must continue the sequence.
	for i := 1; i <= len(args); i++ {
		if !strings.Contains(where, fmt.Sprintf("$%d", i)) {
			t.Errorf("where = %q, missing placeholder $%d", where, i)
		}
	}
	if next != len(args)+1 {
		t.Errorf("next = %d, want %d", next, len(args)+1)
	}
}
