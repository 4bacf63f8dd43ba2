package handlers

import (
	"net/http"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/lojf/festival/internal/config"
	"github.com/lojf/festival/internal/export"
	"github.com/lojf/festival/internal/guard"
	"github.com/lojf/festival/internal/services"
)

// Deps is filled by fx; tests build it by hand.
type Deps struct {
	fx.In

	Config   *config.Config
	Logger   zerolog.Logger
	Catalog  *services.Catalog
	Regs     *services.Registrations
	Dups     *services.Duplicates
	Reviews  *services.Reviews
	Att      *services.Attendance
	Exports  *services.Exports
	Sheets   *export.Sheets // nil when the Sheets export is not configured
	Guard    guard.Guard
	Sessions Sessions
}

type Handlers struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Catalog  *services.Catalog
	Regs     *services.Registrations
	Dups     *services.Duplicates
	Reviews  *services.Reviews
	Att      *services.Attendance
	Exports  *services.Exports
	Sheets   *export.Sheets
	Guard    guard.Guard
	Sessions Sessions
	Auth     *AdminAuth
}

func New(d Deps) *Handlers {
	return &Handlers{
		Config:   d.Config,
		Logger:   d.Logger,
		Catalog:  d.Catalog,
		Regs:     d.Regs,
		Dups:     d.Dups,
		Reviews:  d.Reviews,
		Att:      d.Att,
		Exports:  d.Exports,
		Sheets:   d.Sheets,
		Guard:    d.Guard,
		Sessions: d.Sessions,
		Auth:     NewAdminAuth(d.Config.AdminPassword),
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
