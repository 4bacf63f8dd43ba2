package bot

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/lojf/festival/internal/models"
)

func FormatReviewDecided(reg models.OffStageRegistration) string {
	var b strings.Builder
	switch reg.Status {
	case models.ReviewApproved:
		b.WriteString("✅ <b>Approved</b>\n")
	default:
		b.WriteString("✏️ <b>Correction requested</b>\n")
	}
	fmt.Fprintf(&b, "%s · %s\n", esc(reg.EventName), esc(teamLabel(reg.TeamID, reg.TeamName)))
	fmt.Fprintf(&b, "Song: %s\n", esc(reg.SongTitle))
	if reg.Remark != "" {
		fmt.Fprintf(&b, "Remark: <i>%s</i>\n", esc(reg.Remark))
	}
	fmt.Fprintf(&b, "Code: <code>%s</code>", esc(reg.Code))
	return b.String()
}

// FormatMalpractice links the contestant pass when a public base URL is known.
func FormatMalpractice(rec models.AttendanceRecord, baseURL string) string {
	var b strings.Builder
	b.WriteString("🚨 <b>Malpractice</b>\n")
	fmt.Fprintf(&b, "%s · <code>%s</code>\n", esc(rec.EventName), esc(rec.DNo))
	if rec.LotNumber != "" {
		fmt.Fprintf(&b, "Lot: %s\n", esc(rec.LotNumber))
	}
	fmt.Fprintf(&b, "Details: %s", esc(rec.MalpracticeDetails))
	if rec.MarkedBy != "" {
		fmt.Fprintf(&b, "\nMarked by: %s", esc(rec.MarkedBy))
	}
	if baseURL != "" {
		fmt.Fprintf(&b, "\n%s", esc(PassURL(baseURL, rec.EventName, rec.DNo)))
	}
	return b.String()
}

// PassURL is the admin URL of a contestant's QR pass.
func PassURL(baseURL, eventName, dNo string) string {
	return strings.TrimRight(baseURL, "/") + "/admin/pass/" + url.PathEscape(dNo) + ".png?event=" + url.QueryEscape(eventName)
}

func teamLabel(id, name string) string {
	if name == "" || name == id {
		return id
	}
	return name + " (" + id + ")"
}

func esc(s string) string { return html.EscapeString(s) }
