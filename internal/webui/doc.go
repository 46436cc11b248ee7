// Package webui renders the HTML search pages and provides the template
// filters they depend on: map access, string substitution, slugs, and
// URL-safe parameter encoding.
package webui
