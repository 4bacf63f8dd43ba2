package services

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lojf/festival/internal/models"
)

// Everything entering the core passes through these helpers once, so stores
// and the duplicate detector only ever see canonical values.

// NormTitle trims an event title. Titles keep their display casing.
func NormTitle(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormTeamID trims and upper-cases a team id ("25ica02 " -> "25ICA02").
func NormTeamID(s string) string {
	return upper(strings.TrimSpace(s))
}

// NormDNo trims and upper-cases a contestant's dNo.
func NormDNo(s string) string {
	return upper(strings.TrimSpace(s))
}

// NormText trims free text (song titles, remarks, names).
func NormText(s string) string {
	return strings.TrimSpace(s)
}

// NormStage maps loose stage spellings onto ON_STAGE / OFF_STAGE.
func NormStage(s string) (string, bool) {
	k := upper(strings.TrimSpace(s))
	k = strings.NewReplacer("-", "_", " ", "_").Replace(k)
	switch k {
	case models.StageOn, "ONSTAGE":
		return models.StageOn, true
	case models.StageOff, "OFFSTAGE":
		return models.StageOff, true
	}
	return "", false
}

// NormAttendance canonicalizes an attendance status.
func NormAttendance(s string) (string, bool) {
	switch k := upper(strings.TrimSpace(s)); k {
	case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceMalpractice:
		return k, true
	}
	return "", false
}

// NormDecision canonicalizes a coordinator decision; pending is not a decision.
func NormDecision(s string) (string, bool) {
	switch k := lower(strings.TrimSpace(s)); k {
	case models.ReviewApproved, models.ReviewCorrection:
		return k, true
	}
	return "", false
}

// Casers are stateful, so each call gets its own.
func lower(s string) string { return cases.Lower(language.Und).String(s) }
func upper(s string) string { return cases.Upper(language.Und).String(s) }
