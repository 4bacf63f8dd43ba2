package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lojf/festival/internal/models"
)

// Catalog is the events and teams lookup the registration core depends on.
type Catalog struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewCatalog(db *gorm.DB, logger zerolog.Logger) *Catalog {
	return &Catalog{db: db, logger: logger}
}

type EventInput struct {
	Title            string
	StageType        string
	OpenRegistration bool
}

func (c *Catalog) CreateEvent(ctx context.Context, in EventInput) (*models.Event, error) {
	title := NormTitle(in.Title)
	if title == "" {
		return nil, validationError("title", "event title is required")
	}
	stage, ok := NormStage(in.StageType)
	if !ok {
		return nil, validationError("stageType", "stage type must be ON_STAGE or OFF_STAGE")
	}

	var existing int64
	if err := c.db.WithContext(ctx).Model(&models.Event{}).Where("lower(title) = lower(?)", title).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	if existing > 0 {
		return nil, validationError("title", "an event with this title already exists")
	}

	ev := models.Event{Title: title, StageType: stage, OpenRegistration: in.OpenRegistration}
	if err := c.db.WithContext(ctx).Create(&ev).Error; err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	c.logger.Info().Uint("event_id", ev.ID).Str("title", title).Str("stage", stage).Msg("event created")
	return &ev, nil
}

func (c *Catalog) ListEvents(ctx context.Context) ([]models.Event, error) {
	var out []models.Event
	if err := c.db.WithContext(ctx).Order("stage_type asc, title asc").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return out, nil
}

// EventByTitle matches titles without regard to letter case.
func (c *Catalog) EventByTitle(ctx context.Context, title string) (*models.Event, error) {
	title = NormTitle(title)
	var ev models.Event
	if err := c.db.WithContext(ctx).Where("lower(title) = lower(?)", title).First(&ev).Error; err != nil {
		return nil, storeErr(err, "event", title)
	}
	return &ev, nil
}

// SetRegistrationOpen flips the gate and returns the persisted event. Callers
// apply the new state locally only after this returns without error.
func (c *Catalog) SetRegistrationOpen(ctx context.Context, eventID uint, open bool) (*models.Event, error) {
	var ev models.Event
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ev, eventID).Error; err != nil {
			return storeErr(err, "event", eventID)
		}
		ev.OpenRegistration = open
		return tx.Model(&ev).Update("open_registration", open).Error
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info().Uint("event_id", eventID).Bool("open", open).Msg("registration gate changed")
	return &ev, nil
}

type TeamInput struct {
	TeamID   string
	TeamName string
	Shift    string
}

func (c *Catalog) CreateTeam(ctx context.Context, in TeamInput) (*models.Team, error) {
	id := NormTeamID(in.TeamID)
	name := NormText(in.TeamName)
	if id == "" {
		return nil, validationError("teamId", "team id is required")
	}
	if name == "" {
		return nil, validationError("teamName", "team name is required")
	}
	switch in.Shift {
	case "Shift I", "Shift II":
	default:
		return nil, validationError("shift", "shift must be Shift I or Shift II")
	}

	team := models.Team{TeamID: id, TeamName: name, Shift: in.Shift}
	if err := c.db.WithContext(ctx).Create(&team).Error; err != nil {
		return nil, fmt.Errorf("create team %s: %w", id, err)
	}
	return &team, nil
}

func (c *Catalog) Team(ctx context.Context, teamID string) (*models.Team, error) {
	id := NormTeamID(teamID)
	var team models.Team
	if err := c.db.WithContext(ctx).Where("team_id = ?", id).First(&team).Error; err != nil {
		return nil, storeErr(err, "team", id)
	}
	return &team, nil
}
