package models

import "time"

// Shift: "Shift I" | "Shift II"
type Team struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	TeamID            string `gorm:"column:team_id;uniqueIndex;not null"` // e.g. 25ICA02
	TeamName          string
	Shift             string
	IsPasswordChanged bool
	MembersCreated    MembersCreated `gorm:"embedded;embeddedPrefix:members_"`
}

type MembersCreated struct {
	Faculty bool
	Student bool
}

const (
	StageOn  = "ON_STAGE"
	StageOff = "OFF_STAGE"
)

type Event struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Title            string `gorm:"uniqueIndex;not null"` // registrations reference events by title
	StageType        string // ON_STAGE | OFF_STAGE
	OpenRegistration bool
}

const (
	ReviewPending    = "pending"
	ReviewApproved   = "approved"
	ReviewCorrection = "correction"
)

// One live record per (team_id, event_name), kept by upsert rather than a
// unique index; see services.Registrations.SubmitOffStage.
type OffStageRegistration struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Code      string `gorm:"uniqueIndex"`
	TeamID    string `gorm:"column:team_id"`
	TeamName  string
	EventName string
	SongTitle string
	Tune      string

	Status           string // pending | approved | correction
	Remark           string
	RegistrationDate time.Time
	ResubmittedAt    *time.Time // set when the team edits a record under correction
}

type OnStageRegistration struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Code      string `gorm:"uniqueIndex"`
	TeamID    string `gorm:"column:team_id"`
	TeamName  string
	EventName string

	Contestants []OnStageContestant `gorm:"foreignKey:RegistrationID"`
}

type OnStageContestant struct {
	ID             uint `gorm:"primaryKey"`
	RegistrationID uint
	Position       int

	ContestantName string
	DNo            string `gorm:"column:d_no"`
}

const (
	AttendancePresent     = "PRESENT"
	AttendanceAbsent      = "ABSENT"
	AttendanceMalpractice = "MALPRACTICE"
	AttendanceUnmarked    = "UNMARKED" // never stored
)

// AttendanceRecord is a snapshot: re-marking overwrites, there is no history.
type AttendanceRecord struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	EventName string `gorm:"uniqueIndex:idx_attendance_event_dno"`
	DNo       string `gorm:"column:d_no;uniqueIndex:idx_attendance_event_dno"`

	Status             string // PRESENT | ABSENT | MALPRACTICE
	MalpracticeDetails string
	LotNumber          string
	MarkedBy           string
}
