package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lojf/festival/internal/events"
	"github.com/lojf/festival/internal/models"
)

// Reviews tracks coordinator decisions on off-stage registrations.
//
//	pending ──► approved ──► correction
//	   └──────► correction ◄─┘  (re-settable)
//
// Decide never moves a record back to pending, and a team's resubmission
// does not either.
type Reviews struct {
	db     *gorm.DB
	hooks  *events.Hooks
	logger zerolog.Logger
}

func NewReviews(db *gorm.DB, hooks *events.Hooks, logger zerolog.Logger) *Reviews {
	return &Reviews{db: db, hooks: hooks, logger: logger}
}

// Decide writes status and remark together, even when neither changed.
func (r *Reviews) Decide(ctx context.Context, registrationID uint, status, remark string) (*models.OffStageRegistration, error) {
	next, ok := NormDecision(status)
	if !ok {
		return nil, validationError("status", "status must be approved or correction")
	}
	remark = NormText(remark)

	var reg models.OffStageRegistration
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reg, registrationID).Error; err != nil {
			return storeErr(err, "off-stage registration", registrationID)
		}
		if err := tx.Model(&reg).Updates(map[string]any{
			"status": next,
			"remark": remark,
		}).Error; err != nil {
			return fmt.Errorf("update review of %d: %w", registrationID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	reg.Status = next
	reg.Remark = remark

	if next == models.ReviewCorrection && remark == "" {
		r.logger.Warn().Uint("id", reg.ID).Str("team_id", reg.TeamID).Msg("correction requested without a remark")
	}
	r.logger.Info().
		Uint("id", reg.ID).
		Str("team_id", reg.TeamID).
		Str("event", reg.EventName).
		Str("status", next).
		Msg("review decided")

	r.hooks.FireReviewDecided(reg)
	return &reg, nil
}
