// Package diagfmt turns engine output into host-facing records and renders
// them for the CLI.
//
// Record is the shape handed to hosts: a snake_case kind, a character range
// and an optional trimmed fix. TokenRecord is the matching shape for tokens.
// Pretty, WriteJSON and Sarif render records for terminals and tools.
package diagfmt
