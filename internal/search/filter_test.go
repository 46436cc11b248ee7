package search

import (
	"strings"
	"testing"

	"github.com/capacitymarket/capacity-checker/internal/postcode"
)

// mapRecord is a minimal Record for matcher tests.
type mapRecord map[Field]string

func (m mapRecord) FieldValue(f Field) string { return m[f] }

func TestBuildLocationFilter(t *testing.T) {
	f := BuildLocationFilter("London", nil)
	if f == nil {
		t.Fatal("expected non-nil filter")
	}
	if len(f.Any) != 3 {
		t.Fatalf("expected 3 conditions, got %d", len(f.Any))
	}
	if f.Any[0].Field != FieldLocation || f.Any[0].Op != OpContains || f.Any[0].Value != "London" {
		t.Errorf("unexpected location condition: %+v", f.Any[0])
	}
	if f.Any[1].Field != FieldCounty || f.Any[1].Op != OpContains {
		t.Errorf("unexpected county condition: %+v", f.Any[1])
	}
	if f.Any[2].Field != FieldOutwardCode || f.Any[2].Op != OpEquals || f.Any[2].Value != "LONDON" {
		t.Errorf("unexpected outward code condition: %+v", f.Any[2])
	}
}

func TestBuildLocationFilter_EmptyQuery(t *testing.T) {
	for _, query := range []string{"", "   ", "\t\n"} {
		if f := BuildLocationFilter(query, nil); f != nil {
			t.Errorf("BuildLocationFilter(%q) = %+v, want nil", query, f)
		}
	}
}

func TestBuildLocationFilter_TrimsQuery(t *testing.T) {
	f := BuildLocationFilter("  Leeds  ", nil)
	if f == nil {
		t.Fatal("expected non-nil filter")
	}
	if f.Any[0].Value != "Leeds" {
		t.Errorf("expected trimmed value, got %q", f.Any[0].Value)
	}
	if f.Any[2].Value != "LEEDS" {
		t.Errorf("expected uppercased outward code value, got %q", f.Any[2].Value)
	}
}

func TestFilterSQL(t *testing.T) {
	f := BuildLocationFilter("London", nil)

	clause, args := f.SQL()
	want := "(LOWER(location) LIKE ? OR LOWER(county) LIKE ? OR LOWER(outward_code) = ?)"
	if clause != want {
		t.Errorf("SQL clause = %q, want %q", clause, want)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %d", len(args))
	}
	if args[0] != "%london%" || args[1] != "%london%" || args[2] != "london" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestFilterSQL_Nil(t *testing.T) {
	var f *Filter
	clause, args := f.SQL()
	if clause != "" || args != nil {
		t.Errorf("nil filter SQL = (%q, %v), want empty", clause, args)
	}
}

func TestFilterSQL_UnknownFieldSkipped(t *testing.T) {
	f := &Filter{Any: []Condition{{Field: Field("company_name; DROP TABLE"), Op: OpContains, Value: "x"}}}
	clause, args := f.SQL()
	if clause != "" || args != nil {
		t.Errorf("unknown field compiled to (%q, %v), want empty", clause, args)
	}
}

func TestFilterMatches(t *testing.T) {
	f := BuildLocationFilter("London", nil)

	tests := []struct {
		name   string
		record mapRecord
		want   bool
	}{
		{"location contains any case", mapRecord{FieldLocation: "East LONDON substation"}, true},
		{"county contains", mapRecord{FieldCounty: "Greater London"}, true},
		{"outward code exact", mapRecord{FieldOutwardCode: "LONDON"}, true},
		{"outward code case-insensitive", mapRecord{FieldOutwardCode: "london"}, true},
		{"no match", mapRecord{FieldLocation: "Leeds", FieldCounty: "West Yorkshire", FieldOutwardCode: "LS1"}, false},
		{"outward code partial does not match", mapRecord{FieldOutwardCode: "LONDONX"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Matches(tt.record); got != tt.want {
				t.Errorf("Matches(%v) = %v, want %v", tt.record, got, tt.want)
			}
		})
	}
}

func TestFilterMatches_Nil(t *testing.T) {
	var f *Filter
	if !f.Matches(mapRecord{}) {
		t.Error("nil filter should match everything")
	}
}

func TestExpandLocationFilter(t *testing.T) {
	dir, err := postcode.Load()
	if err != nil {
		t.Fatalf("postcode.Load() error: %v", err)
	}

	f := ExpandLocationFilter("Nottingham", dir, nil)
	if f == nil {
		t.Fatal("expected non-nil filter")
	}
	if len(f.Any) <= 3 {
		t.Fatalf("expected expanded conditions beyond base 3, got %d", len(f.Any))
	}

	if !f.Matches(mapRecord{FieldOutwardCode: "NG1"}) {
		t.Error("expanded filter should match directory outcode NG1")
	}

	clause, args := f.SQL()
	if !strings.Contains(clause, "LOWER(outward_code) = ?") {
		t.Errorf("expected outward code clauses in SQL, got %q", clause)
	}
	if len(args) != len(f.Any) {
		t.Errorf("expected %d args, got %d", len(f.Any), len(args))
	}
}

func TestExpandLocationFilter_NilDirectory(t *testing.T) {
	f := ExpandLocationFilter("London", nil, nil)
	if f == nil || len(f.Any) != 3 {
		t.Fatalf("expected plain 3-condition filter, got %+v", f)
	}
}

func TestExpandLocationFilter_EmptyQuery(t *testing.T) {
	dir, err := postcode.Load()
	if err != nil {
		t.Fatalf("postcode.Load() error: %v", err)
	}
	if f := ExpandLocationFilter("  ", dir, nil); f != nil {
		t.Errorf("expected nil filter for blank query, got %+v", f)
	}
}
