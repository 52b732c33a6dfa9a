package app

import (
	"time"

	"go.uber.org/zap"

	"lhsyard/config"
	"lhsyard/intentlog"
	"lhsyard/model"
	"lhsyard/queue"
	"lhsyard/session"
	"lhsyard/sheet"
)

// App bundles what every handler needs. It plays the role the shared
// *sqlx.DB plays elsewhere: one value threaded through the route table.
type App struct {
	Store    sheet.Store
	Sessions *session.Manager
	Queue    *queue.Allocator
	Intents  *intentlog.Log
	Log      *zap.SugaredLogger
	Loc      *time.Location

	// Cfg returns the current config; it re-reads the shared value so
	// hot-reloaded changes reach handlers without restart.
	Cfg func() config.Config

	// Clock overrides wall-clock time in tests.
	Clock func() time.Time
}

// Now is the current time in the yard's timezone.
func (a *App) Now() time.Time {
	if a.Clock != nil {
		return a.Clock()
	}
	return time.Now().In(a.Loc)
}

// Timestamp formats Now the way the sheet stores times.
func (a *App) Timestamp() string {
	return a.Now().Format(model.TimeLayout)
}
