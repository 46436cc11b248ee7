package component

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	maxIdentifierLength = 100
	maxTextLength       = 500
	maxDataKeys         = 100
	outwardCodePattern  = `^[A-Z]{1,2}[0-9][A-Z0-9]?$`
)

var outwardCodeRegex = regexp.MustCompile(outwardCodePattern)

// Validate checks a component before it is written to storage.
func Validate(c *Component) error {
	if c == nil {
		return fmt.Errorf("%w: component is nil", ErrInvalidComponent)
	}
	if strings.TrimSpace(c.CMUID) == "" {
		return fmt.Errorf("%w: cmu_id cannot be empty", ErrInvalidComponent)
	}
	if len(c.CMUID) > maxIdentifierLength {
		return fmt.Errorf("%w: cmu_id exceeds %d characters", ErrInvalidComponent, maxIdentifierLength)
	}
	if len(c.ComponentID) > maxIdentifierLength {
		return fmt.Errorf("%w: component_id exceeds %d characters", ErrInvalidComponent, maxIdentifierLength)
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"location", c.Location},
		{"county", c.County},
		{"description", c.Description},
		{"technology", c.Technology},
		{"company_name", c.CompanyName},
		{"auction_name", c.AuctionName},
	} {
		if len(field.value) > maxTextLength {
			return fmt.Errorf("%w: %s exceeds %d characters", ErrInvalidComponent, field.name, maxTextLength)
		}
	}
	if c.OutwardCode != "" && !outwardCodeRegex.MatchString(c.OutwardCode) {
		return fmt.Errorf("%w: outward_code %q is not a valid outward code", ErrInvalidComponent, c.OutwardCode)
	}
	if c.DeratedCapacityMW != nil && *c.DeratedCapacityMW < 0 {
		return fmt.Errorf("%w: derated_capacity_mw cannot be negative", ErrInvalidComponent)
	}
	if len(c.AdditionalData) > maxDataKeys {
		return fmt.Errorf("%w: additional_data exceeds max keys (%d)", ErrInvalidComponent, maxDataKeys)
	}
	return nil
}

// NormalizeOutwardCode uppercases and trims an outward code, returning ""
// when the result does not look like one.
func NormalizeOutwardCode(code string) string {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" || !outwardCodeRegex.MatchString(normalized) {
		return ""
	}
	return normalized
}
