package search

import (
	"strings"

	"github.com/capacitymarket/capacity-checker/internal/infrastructure/logging"
	"github.com/capacitymarket/capacity-checker/internal/postcode"
)

// ExpandLocationFilter builds the standard location filter and widens it
// with the outward codes the postcode directory associates with the query,
// so "Nottingham" also matches components recorded only by postcode. A nil
// directory degrades to the plain filter.
func ExpandLocationFilter(query string, dir *postcode.Directory, log *logging.Logger) *Filter {
	f := BuildLocationFilter(query, log)
	if f == nil || dir == nil {
		return f
	}

	outcodes := dir.OutcodesForLocation(query)
	if len(outcodes) == 0 {
		return f
	}

	seen := map[string]bool{strings.ToUpper(strings.TrimSpace(query)): true}
	for _, oc := range outcodes {
		if seen[oc] {
			continue
		}
		seen[oc] = true
		f.Any = append(f.Any, Condition{Field: FieldOutwardCode, Op: OpEquals, Value: oc})
	}

	if log != nil {
		log.Debug("expanded location filter with directory outcodes",
			"query", query,
			"outcodes", len(outcodes),
		)
	}

	return f
}
