package webui

import (
	"strings"
	"testing"
)

func TestGetItem(t *testing.T) {
	m := map[string]any{"a": 1, "b": "two", "nil": nil}

	if got := GetItem(m, "a"); got != 1 {
		t.Errorf("GetItem(a) = %v, want 1", got)
	}
	if got := GetItem(m, "b"); got != "two" {
		t.Errorf("GetItem(b) = %v, want two", got)
	}
	if got := GetItem(m, "missing"); got != "" {
		t.Errorf("GetItem(missing) = %v, want empty string", got)
	}
	if got := GetItem(m, "nil"); got != "" {
		t.Errorf("GetItem(nil value) = %v, want empty string", got)
	}
	if got := GetItem(nil, "a"); got != "" {
		t.Errorf("GetItem on nil map = %v, want empty string", got)
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name  string
		value string
		arg   string
		want  string
	}{
		{"hyphen to underscore", "hello-world", "-,_", "hello_world"},
		{"word substitution", "a cat sat", "cat,dog", "a dog sat"},
		{"malformed arg no comma", "a-b-c", "x", "a-b-c"},
		{"malformed arg too many commas", "a-b-c", "a,b,c", "a-b-c"},
		{"empty new string", "a-b", "-,", "ab"},
		{"no occurrences", "hello", "x,y", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Replace(tt.value, tt.arg); got != tt.want {
				t.Errorf("Replace(%q, %q) = %q, want %q", tt.value, tt.arg, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World!", "hello-world"},
		{"  Multiple   Spaces  ", "multiple-spaces"},
		{"Already-Slugged", "already-slugged"},
		{"Trent & Mersey (Unit 2)", "trent-mersey-unit-2"},
		{"Café Électrique", "cafe-electrique"},
		{"___", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestURLSafe(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World!", "hello_world"},
		{"Thames Power Ltd", "thames_power_ltd"},
		{"mixed-case Value", "mixed_case_value"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := URLSafe(tt.in); got != tt.want {
			t.Errorf("URLSafe(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSlugifyForURL(t *testing.T) {
	if got := SlugifyForURL("Hello World"); got != "hello-world" {
		t.Errorf("SlugifyForURL = %q", got)
	}
	if got := SlugifyForURL("!!!"); got != "unknown" {
		t.Errorf("SlugifyForURL on empty slug = %q, want unknown", got)
	}
}

func TestFromURLParam(t *testing.T) {
	if got := FromURLParam("thames_power_ltd"); got != "thames power ltd" {
		t.Errorf("FromURLParam = %q", got)
	}
}

func TestReplaceUnderscores(t *testing.T) {
	if got := ReplaceUnderscores("delivery_year"); got != "delivery year" {
		t.Errorf("ReplaceUnderscores = %q", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Thames Power", "thamespower"},
		{"  A  B\tC ", "abc"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJsonify(t *testing.T) {
	got := string(Jsonify(map[string]any{"key": "value"}))
	if !strings.Contains(got, "key") || !strings.Contains(got, "value") {
		t.Errorf("Jsonify output missing content: %q", got)
	}

	if got := string(Jsonify(make(chan int))); got != "(error converting to JSON)" {
		t.Errorf("Jsonify on unmarshalable value = %q", got)
	}
}

func TestRenderer(t *testing.T) {
	r, err := NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error: %v", err)
	}

	var buf strings.Builder
	page := SearchPage{
		Query:   "London",
		Total:   1,
		Elapsed: "12ms",
		Results: []SearchResult{{
			ID: "cmp-001", CompanyName: "Thames Power Ltd", CMUID: "CMU-001",
			Location: "Battersea", County: "Greater London",
		}},
	}
	if err := r.Render(&buf, "search.html", page); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	html := buf.String()
	if !strings.Contains(html, "Thames Power Ltd") {
		t.Error("expected company name in output")
	}
	if !strings.Contains(html, `id="thames_power_ltd"`) {
		t.Error("expected url_safe anchor id in output")
	}
}
