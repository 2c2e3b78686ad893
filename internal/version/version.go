// Package version carries the build identity reported by the control API.
package version

import (
	"runtime"
	"time"
)

// Overridden with -ldflags at release builds; the defaults identify a
// local dev build of parleyd.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = time.Now().Format(time.RFC3339)
	GoVersion = runtime.Version()
)
