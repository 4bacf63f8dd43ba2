package services

import (
	"context"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lojf/festival/internal/models"
)

const codeAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// Registrations holds off-stage and on-stage registration records.
type Registrations struct {
	db      *gorm.DB
	catalog *Catalog
	logger  zerolog.Logger
}

func NewRegistrations(db *gorm.DB, catalog *Catalog, logger zerolog.Logger) *Registrations {
	return &Registrations{db: db, catalog: catalog, logger: logger}
}

type OffStageInput struct {
	TeamID    string
	TeamName  string
	EventName string
	SongTitle string
	Tune      string

	// RegistrationID is the id from a prior lookup; 0 means look it up here.
	RegistrationID uint
}

type Contestant struct {
	ContestantName string
	DNo            string
}

type OnStageInput struct {
	TeamID      string
	TeamName    string
	EventName   string
	Contestants []Contestant
}

// Listing is a read-only projection over both registration kinds.
type Listing struct {
	OffStage []models.OffStageRegistration
	OnStage  []models.OnStageRegistration
}

// SubmitOffStage creates the team's record for the event or updates the one it
// already has. Lookup and write are separate round trips; two racing first
// submissions can both insert.
func (s *Registrations) SubmitOffStage(ctx context.Context, in OffStageInput) (*models.OffStageRegistration, error) {
	teamID := NormTeamID(in.TeamID)
	eventName := NormTitle(in.EventName)
	song := NormText(in.SongTitle)
	switch {
	case teamID == "":
		return nil, validationError("teamId", "team id is required")
	case eventName == "":
		return nil, validationError("eventName", "event name is required")
	case song == "":
		return nil, validationError("songTitle", "song title is required")
	}

	ev, err := s.openEvent(ctx, eventName, models.StageOff)
	if err != nil {
		return nil, err
	}

	reg, err := s.existingOffStage(ctx, teamID, ev.Title, in.RegistrationID)
	if err != nil {
		return nil, err
	}

	if reg == nil {
		code, err := newCode("OFF-")
		if err != nil {
			return nil, err
		}
		reg = &models.OffStageRegistration{
			Code:             code,
			TeamID:           teamID,
			TeamName:         NormText(in.TeamName),
			EventName:        ev.Title,
			SongTitle:        song,
			Tune:             NormText(in.Tune),
			Status:           models.ReviewPending,
			Remark:           "",
			RegistrationDate: time.Now(),
		}
		if err := s.db.WithContext(ctx).Create(reg).Error; err != nil {
			return nil, fmt.Errorf("create off-stage registration: %w", err)
		}
		s.logger.Info().Str("team_id", teamID).Str("event", ev.Title).Uint("id", reg.ID).Msg("off-stage registration created")
		return reg, nil
	}

	// Status is left alone on edit; only a review decision changes it.
	reg.SongTitle = song
	reg.Tune = NormText(in.Tune)
	if name := NormText(in.TeamName); name != "" {
		reg.TeamName = name
	}
	if reg.Status == models.ReviewCorrection {
		now := time.Now()
		reg.ResubmittedAt = &now
	}
	if err := s.db.WithContext(ctx).Save(reg).Error; err != nil {
		return nil, fmt.Errorf("update off-stage registration %d: %w", reg.ID, err)
	}
	s.logger.Info().Str("team_id", teamID).Str("event", ev.Title).Uint("id", reg.ID).Str("status", reg.Status).Msg("off-stage registration updated")
	return reg, nil
}

func (s *Registrations) existingOffStage(ctx context.Context, teamID, eventName string, id uint) (*models.OffStageRegistration, error) {
	if id != 0 {
		var reg models.OffStageRegistration
		if err := s.db.WithContext(ctx).First(&reg, id).Error; err != nil {
			return nil, storeErr(err, "off-stage registration", id)
		}
		if reg.TeamID != teamID || reg.EventName != eventName {
			return nil, validationError("registrationId", "registration belongs to a different team or event")
		}
		return &reg, nil
	}

	var found []models.OffStageRegistration
	if err := s.db.WithContext(ctx).
		Where("team_id = ? AND event_name = ?", teamID, eventName).
		Order("id asc").
		Limit(1).
		Find(&found).Error; err != nil {
		return nil, fmt.Errorf("lookup off-stage registration: %w", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// SubmitOnStage always inserts. Double submissions are reconciled later by
// Duplicates, never merged here.
func (s *Registrations) SubmitOnStage(ctx context.Context, in OnStageInput) (*models.OnStageRegistration, error) {
	teamID := NormTeamID(in.TeamID)
	eventName := NormTitle(in.EventName)
	switch {
	case teamID == "":
		return nil, validationError("teamId", "team id is required")
	case eventName == "":
		return nil, validationError("eventName", "event name is required")
	case len(in.Contestants) == 0:
		return nil, validationError("contestants", "at least one contestant is required")
	}

	contestants := make([]models.OnStageContestant, 0, len(in.Contestants))
	for i, c := range in.Contestants {
		name, dno := NormText(c.ContestantName), NormDNo(c.DNo)
		if name == "" || dno == "" {
			return nil, validationError(fmt.Sprintf("contestants[%d]", i), "contestant name and dNo are required")
		}
		contestants = append(contestants, models.OnStageContestant{Position: i, ContestantName: name, DNo: dno})
	}

	ev, err := s.openEvent(ctx, eventName, models.StageOn)
	if err != nil {
		return nil, err
	}

	code, err := newCode("ON-")
	if err != nil {
		return nil, err
	}
	reg := &models.OnStageRegistration{
		Code:        code,
		TeamID:      teamID,
		TeamName:    NormText(in.TeamName),
		EventName:   ev.Title,
		Contestants: contestants,
	}
	// Create writes the record and its contestants in one transaction.
	if err := s.db.WithContext(ctx).Create(reg).Error; err != nil {
		return nil, fmt.Errorf("create on-stage registration: %w", err)
	}
	s.logger.Info().
		Str("team_id", teamID).
		Str("event", ev.Title).
		Uint("id", reg.ID).
		Int("contestants", len(contestants)).
		Msg("on-stage registration created")
	return reg, nil
}

func (s *Registrations) openEvent(ctx context.Context, title, stage string) (*models.Event, error) {
	ev, err := s.catalog.EventByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if ev.StageType != stage {
		return nil, validationError("eventName", fmt.Sprintf("%s is not an %s event", ev.Title, stage))
	}
	if !ev.OpenRegistration {
		return nil, &Error{
			Code:     CodeNotOpen,
			Message:  fmt.Sprintf("registration for %s is closed", ev.Title),
			Metadata: map[string]string{"record": ev.Title},
		}
	}
	return ev, nil
}

func (s *Registrations) GetOffStage(ctx context.Context, id uint) (*models.OffStageRegistration, error) {
	var reg models.OffStageRegistration
	if err := s.db.WithContext(ctx).First(&reg, id).Error; err != nil {
		return nil, storeErr(err, "off-stage registration", id)
	}
	return &reg, nil
}

func (s *Registrations) GetOnStage(ctx context.Context, id uint) (*models.OnStageRegistration, error) {
	var reg models.OnStageRegistration
	if err := s.withContestants(ctx).First(&reg, id).Error; err != nil {
		return nil, storeErr(err, "on-stage registration", id)
	}
	return &reg, nil
}

func (s *Registrations) ListByTeam(ctx context.Context, teamID string) (*Listing, error) {
	return s.list(ctx, "team_id = ?", NormTeamID(teamID))
}

func (s *Registrations) ListByEvent(ctx context.Context, eventName string) (*Listing, error) {
	return s.list(ctx, "event_name = ?", NormTitle(eventName))
}

// ListForCoordinator returns registrations for the coordinator's assigned
// event titles only.
func (s *Registrations) ListForCoordinator(ctx context.Context, titles []string) (*Listing, error) {
	norm := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = NormTitle(t); t != "" {
			norm = append(norm, t)
		}
	}
	if len(norm) == 0 {
		return &Listing{}, nil
	}
	return s.list(ctx, "event_name IN ?", norm)
}

func (s *Registrations) list(ctx context.Context, where string, arg any) (*Listing, error) {
	var out Listing
	if err := s.db.WithContext(ctx).Where(where, arg).
		Order("event_name asc, id asc").
		Find(&out.OffStage).Error; err != nil {
		return nil, fmt.Errorf("list off-stage registrations: %w", err)
	}
	if err := s.withContestants(ctx).Where(where, arg).
		Order("event_name asc, id asc").
		Find(&out.OnStage).Error; err != nil {
		return nil, fmt.Errorf("list on-stage registrations: %w", err)
	}
	return &out, nil
}

func (s *Registrations) withContestants(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Contestants", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	})
}

func newCode(prefix string) (string, error) {
	id, err := gonanoid.Generate(codeAlphabet, 8)
	if err != nil {
		return "", fmt.Errorf("generate registration code: %w", err)
	}
	return prefix + id, nil
}
