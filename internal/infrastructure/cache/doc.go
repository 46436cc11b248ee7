// Package cache provides the process-local result cache.
//
// The cache is bounded (default 1000 entries) with a default TTL
// (300 seconds); both limits come from configuration. Values are opaque
// byte slices - callers serialize what they store. Key() produces
// backend-safe keys by hashing identifiers that contain spaces or
// punctuation.
package cache
