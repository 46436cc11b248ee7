// The capacity-checker binary serves the UK capacity market component
// search service and its operational subcommands.
package main

import (
	_ "github.com/capacitymarket/capacity-checker/migrations"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

func main() {
	Execute()
}
