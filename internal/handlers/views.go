package handlers

import (
	"time"

	"github.com/lojf/festival/internal/models"
	"github.com/lojf/festival/internal/services"
)

type eventView struct {
	ID               uint   `json:"id"`
	Title            string `json:"title"`
	StageType        string `json:"stageType"`
	OpenRegistration bool   `json:"openRegistration"`
}

func toEvent(e models.Event) eventView {
	return eventView{ID: e.ID, Title: e.Title, StageType: e.StageType, OpenRegistration: e.OpenRegistration}
}

type teamView struct {
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	Shift    string `json:"shift"`
}

type offStageView struct {
	ID               uint       `json:"id"`
	Code             string     `json:"code"`
	TeamID           string     `json:"teamId"`
	TeamName         string     `json:"teamName"`
	EventName        string     `json:"eventName"`
	SongTitle        string     `json:"songTitle"`
	Tune             string     `json:"tune"`
	Status           string     `json:"status"`
	Remark           string     `json:"remark"`
	RegistrationDate time.Time  `json:"registrationDate"`
	ResubmittedAt    *time.Time `json:"resubmittedAt,omitempty"`
}

func toOffStage(r models.OffStageRegistration) offStageView {
	return offStageView{
		ID:               r.ID,
		Code:             r.Code,
		TeamID:           r.TeamID,
		TeamName:         r.TeamName,
		EventName:        r.EventName,
		SongTitle:        r.SongTitle,
		Tune:             r.Tune,
		Status:           r.Status,
		Remark:           r.Remark,
		RegistrationDate: r.RegistrationDate,
		ResubmittedAt:    r.ResubmittedAt,
	}
}

type contestantView struct {
	ContestantName string `json:"contestantName"`
	DNo            string `json:"dNo"`
}

type onStageView struct {
	ID          uint             `json:"id"`
	Code        string           `json:"code"`
	TeamID      string           `json:"teamId"`
	TeamName    string           `json:"teamName"`
	EventName   string           `json:"eventName"`
	Contestants []contestantView `json:"contestants"`
	CreatedAt   time.Time        `json:"createdAt"`
}

func toOnStage(r models.OnStageRegistration) onStageView {
	cs := make([]contestantView, len(r.Contestants))
	for i, c := range r.Contestants {
		cs[i] = contestantView{ContestantName: c.ContestantName, DNo: c.DNo}
	}
	return onStageView{
		ID:          r.ID,
		Code:        r.Code,
		TeamID:      r.TeamID,
		TeamName:    r.TeamName,
		EventName:   r.EventName,
		Contestants: cs,
		CreatedAt:   r.CreatedAt,
	}
}

type listingView struct {
	OffStage []offStageView `json:"offStage"`
	OnStage  []onStageView  `json:"onStage"`
}

func toListing(l *services.Listing) listingView {
	out := listingView{
		OffStage: make([]offStageView, 0, len(l.OffStage)),
		OnStage:  make([]onStageView, 0, len(l.OnStage)),
	}
	for _, r := range l.OffStage {
		out.OffStage = append(out.OffStage, toOffStage(r))
	}
	for _, r := range l.OnStage {
		out.OnStage = append(out.OnStage, toOnStage(r))
	}
	return out
}

type attendanceView struct {
	EventName          string    `json:"eventName"`
	DNo                string    `json:"dNo"`
	Status             string    `json:"status"`
	MalpracticeDetails string    `json:"malpracticeDetails,omitempty"`
	LotNumber          string    `json:"lotNumber,omitempty"`
	MarkedBy           string    `json:"markedBy,omitempty"`
	MarkedAt           time.Time `json:"markedAt"`
}

func toAttendance(r models.AttendanceRecord) attendanceView {
	return attendanceView{
		EventName:          r.EventName,
		DNo:                r.DNo,
		Status:             r.Status,
		MalpracticeDetails: r.MalpracticeDetails,
		LotNumber:          r.LotNumber,
		MarkedBy:           r.MarkedBy,
		MarkedAt:           r.UpdatedAt,
	}
}

type markView struct {
	Status             string `json:"status"`
	MalpracticeDetails string `json:"malpracticeDetails,omitempty"`
}
