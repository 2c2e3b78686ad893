package deps

import (
	"time"

	"github.com/parley-im/parley/internal/bookmarks"
	"github.com/parley-im/parley/internal/logger"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	Bookmarks *bookmarks.Manager // the running bookmark engine
}
