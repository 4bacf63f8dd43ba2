package events

import "github.com/lojf/festival/internal/models"

// Hooks are called after the corresponding write has committed. Nil hooks
// are skipped.
type Hooks struct {
	// ReviewDecided fires after a coordinator sets approved/correction.
	ReviewDecided func(reg models.OffStageRegistration)
	// Malpractice fires after a contestant is marked MALPRACTICE.
	Malpractice func(rec models.AttendanceRecord)
}

// FireReviewDecided is safe on a nil *Hooks.
func (h *Hooks) FireReviewDecided(reg models.OffStageRegistration) {
	if h != nil && h.ReviewDecided != nil {
		h.ReviewDecided(reg)
	}
}

// FireMalpractice is safe on a nil *Hooks.
func (h *Hooks) FireMalpractice(rec models.AttendanceRecord) {
	if h != nil && h.Malpractice != nil {
		h.Malpractice(rec)
	}
}
