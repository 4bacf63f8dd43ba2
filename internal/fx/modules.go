package fx

import (
	"go.uber.org/fx"

	"github.com/lojf/festival/internal/bot"
	"github.com/lojf/festival/internal/config"
	"github.com/lojf/festival/internal/db"
	"github.com/lojf/festival/internal/events"
	"github.com/lojf/festival/internal/export"
	"github.com/lojf/festival/internal/guard"
	"github.com/lojf/festival/internal/handlers"
	"github.com/lojf/festival/internal/logger"
	"github.com/lojf/festival/internal/services"
	"github.com/lojf/festival/internal/web"
)

// ProvideHooks returns the hook set shared by services and the notifier.
func ProvideHooks(n *bot.Notifier) *events.Hooks {
	h := &events.Hooks{}
	n.Subscribe(h)
	return h
}

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(logger.New),
	fx.Provide(db.New),
	// notifications
	fx.Provide(bot.New),
	fx.Provide(ProvideHooks),
	// svc
	fx.Provide(services.NewCatalog),
	fx.Provide(services.NewRegistrations),
	fx.Provide(services.NewDuplicates),
	fx.Provide(services.NewReviews),
	fx.Provide(services.NewAttendance),
	fx.Provide(services.NewExports),
	// infra
	fx.Provide(guard.New),
	fx.Provide(export.NewSheets),
	fx.Provide(fx.Annotate(handlers.NewHeaderSessions, fx.As(new(handlers.Sessions)))),
	// http
	fx.Provide(handlers.New),
	fx.Provide(web.Router),
)
