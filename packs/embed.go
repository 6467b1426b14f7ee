// Package packs embeds the default classifier pattern packs shipped with
// the binary.
package packs

import (
	"embed"
)

// PackFiles embeds all YAML pattern pack files from the config subdirectory
//
//go:embed all:config
var PackFiles embed.FS
