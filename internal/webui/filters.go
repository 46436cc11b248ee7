package webui

import (
	"encoding/json"
	"html/template"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidRegex  = regexp.MustCompile(`[^\w\s-]`)
	slugCollapseRegex = regexp.MustCompile(`[-\s]+`)
)

// GetItem looks a key up in a map for template use, returning "" when the
// key is absent so templates never render a nil.
func GetItem(m map[string]any, key string) any {
	if m == nil {
		return ""
	}
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	return v
}

// Replace substitutes one substring for another. The argument carries both
// strings as "old,new"; anything else leaves the value untouched.
func Replace(value, arg string) string {
	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		return value
	}
	return strings.ReplaceAll(value, parts[0], parts[1])
}

// Slugify converts a string to a URL slug: ASCII-fold, lowercase, strip
// everything but word characters, whitespace, and hyphens, then collapse
// runs of whitespace and hyphens to a single hyphen.
func Slugify(value string) string {
	decomposed := norm.NFKD.String(value)
	var b strings.Builder
	for _, r := range decomposed {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	s := strings.ToLower(b.String())
	s = slugInvalidRegex.ReplaceAllString(s, "")
	s = slugCollapseRegex.ReplaceAllString(s, "-")
	return strings.Trim(s, "-_")
}

// URLSafe makes a display string safe for use as a URL path segment:
// slugified, with hyphens swapped for underscores.
func URLSafe(value string) string {
	return strings.ReplaceAll(Slugify(value), "-", "_")
}

// SlugifyForURL slugifies a value, falling back to "unknown" for values
// with nothing slug-worthy in them.
func SlugifyForURL(value string) string {
	if s := Slugify(value); s != "" {
		return s
	}
	return "unknown"
}

// FromURLParam reverses URLSafe enough for lookups: underscores become
// spaces. The original casing and punctuation are not recoverable.
func FromURLParam(value string) string {
	return strings.ReplaceAll(value, "_", " ")
}

// ReplaceUnderscores swaps underscores for spaces for display.
func ReplaceUnderscores(value string) string {
	return strings.ReplaceAll(value, "_", " ")
}

// Normalize lowercases a string and removes all whitespace, for loose
// identifier comparison.
func Normalize(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(value)), "")
}

// Jsonify renders a value as indented JSON for <pre> blocks. Marshal
// failures render a placeholder rather than breaking the page.
func Jsonify(v any) template.HTML {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return template.HTML("(error converting to JSON)") //nolint:gosec // fixed literal
	}
	return template.HTML(template.HTMLEscapeString(string(b))) //nolint:gosec // escaped above
}

// URLEncode percent-encodes a string for use inside a URL.
func URLEncode(value string) string {
	return url.QueryEscape(value)
}

// FuncMap returns the template function map exposing the filters above.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"get_item":            GetItem,
		"replace":             Replace,
		"url_safe":            URLSafe,
		"slugify":             Slugify,
		"slugify_for_url":     SlugifyForURL,
		"replace_underscores": ReplaceUnderscores,
		"normalize":           Normalize,
		"jsonify":             Jsonify,
		"urlencode":           URLEncode,
	}
}
