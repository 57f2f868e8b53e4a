package deps

import (
	"time"

	"github.com/anhdng/songngu/internal/backup"
	"github.com/anhdng/songngu/internal/content"
	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/images"
	"github.com/anhdng/songngu/internal/logger"
	"github.com/anhdng/songngu/internal/store"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	KV              store.KV        // raw storage port, used by readiness checks
	Content         *content.Store  // typed content sections
	Backups         *backup.Manager // export/import/backup pipeline
	Images          *images.Store   // uploaded images
	TriggerBackup   func() error    // out-of-band backup trigger (nil when the scheduler is off)
	DefaultLanguage domain.Language // locale used when a request does not pick one
	CORSOrigins     []string        // allowed origins for browser clients
}
