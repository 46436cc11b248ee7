package postcode

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed data/postcodes.json
var defaultData []byte

// Directory maps UK place names, counties, and postal outward codes to each
// other. Lookups are case-insensitive and degrade to empty results rather
// than errors - callers treat the directory as best-effort enrichment.
type Directory struct {
	locations     map[string][]string // place name -> outward codes
	counties      map[string][]string // county name -> outward codes
	outcodeCounty map[string]string   // outward code -> county name
}

// directoryFile is the on-disk JSON shape.
type directoryFile struct {
	Locations map[string]struct {
		Outcodes []string `json:"outcodes"`
	} `json:"locations"`
	Counties        map[string][]string `json:"counties"`
	OutcodeToCounty map[string]string   `json:"outcode_to_county"`
}

// Load returns the directory built from the embedded dataset.
func Load() (*Directory, error) {
	return parse(defaultData)
}

// LoadFile returns a directory built from a JSON file on disk, for
// deployments that maintain their own mapping data.
func LoadFile(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading postcode directory: %w", err)
	}
	return parse(data)
}

// parse builds the lookup maps with normalised keys.
func parse(data []byte) (*Directory, error) {
	var f directoryFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing postcode directory: %w", err)
	}

	d := &Directory{
		locations:     make(map[string][]string, len(f.Locations)),
		counties:      make(map[string][]string, len(f.Counties)),
		outcodeCounty: make(map[string]string, len(f.OutcodeToCounty)),
	}
	for name, entry := range f.Locations {
		d.locations[strings.ToLower(strings.TrimSpace(name))] = upperAll(entry.Outcodes)
	}
	for name, outcodes := range f.Counties {
		d.counties[strings.ToLower(strings.TrimSpace(name))] = upperAll(outcodes)
	}
	for outcode, county := range f.OutcodeToCounty {
		d.outcodeCounty[strings.ToUpper(strings.TrimSpace(outcode))] = county
	}

	return d, nil
}

// upperAll uppercases a slice of outward codes.
func upperAll(codes []string) []string {
	out := make([]string, len(codes))
	for i, c := range codes {
		out[i] = strings.ToUpper(strings.TrimSpace(c))
	}
	return out
}

// OutwardCode extracts the outward code from a full or partial postcode:
// the segment before the first space, uppercased. An empty input yields "".
func OutwardCode(postcode string) string {
	trimmed := strings.TrimSpace(postcode)
	if trimmed == "" {
		return ""
	}
	if i := strings.IndexByte(trimmed, ' '); i >= 0 {
		trimmed = trimmed[:i]
	}
	return strings.ToUpper(trimmed)
}

// OutcodesForLocation returns the outward codes associated with a place
// name. Direct place matches win; otherwise county names are tried with a
// substring match in either direction (so "yorkshire" finds "north
// yorkshire"). Returns nil when nothing matches.
func (d *Directory) OutcodesForLocation(name string) []string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil
	}

	if outcodes, ok := d.locations[normalized]; ok {
		return outcodes
	}

	for county, outcodes := range d.counties {
		if strings.Contains(county, normalized) || strings.Contains(normalized, county) {
			return outcodes
		}
	}

	return nil
}

// CountyForPostcode returns the county associated with a postcode's outward
// code, or "" when unknown.
func (d *Directory) CountyForPostcode(postcode string) string {
	outcode := OutwardCode(postcode)
	if outcode == "" {
		return ""
	}
	return d.outcodeCounty[outcode]
}

// Len returns the number of place names in the directory.
func (d *Directory) Len() int {
	return len(d.locations)
}
