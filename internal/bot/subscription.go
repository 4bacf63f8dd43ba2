package bot

import (
	"github.com/lojf/festival/internal/events"
	"github.com/lojf/festival/internal/models"
)

// Subscribe routes review decisions and malpractice marks to the ops chat.
// Sends run in the background so a slow Telegram API never holds a request.
func (n *Notifier) Subscribe(h *events.Hooks) {
	if !n.Enabled() {
		return
	}
	h.ReviewDecided = func(reg models.OffStageRegistration) {
		go n.post("review", FormatReviewDecided(reg))
	}
	h.Malpractice = func(rec models.AttendanceRecord) {
		go n.post("malpractice", FormatMalpractice(rec, n.baseURL))
	}
}

func (n *Notifier) post(kind, text string) {
	if err := n.SendMessage(text); err != nil {
		n.log.Warn().Err(err).Str("kind", kind).Msg("ops notification failed")
	}
}
