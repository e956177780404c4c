// Package data embeds a small sample data directory so wellwise can run
// without --data.
package data

import "embed"

// FS holds the sample data files at its root.
//
//go:embed *.csv *.json *.yaml
var FS embed.FS
