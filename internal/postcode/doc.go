// Package postcode provides a UK postcode directory for location-aware
// search: place-name to outward code mapping, county lookup, and outward
// code extraction. The default dataset ships embedded in the binary.
package postcode
