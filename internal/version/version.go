// Package version holds build-time metadata injected via -ldflags.
package version

import (
	"runtime"
	"time"
)

var (
	Version   = "dev"                           // ex: v1.0.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2026-08-30T10:00:00Z
	GoVersion = runtime.Version()               // go version
)
