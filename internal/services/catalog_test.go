package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lojf/festival/internal/models"
)

func TestCreateEvent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ev, err := env.catalog.CreateEvent(ctx, EventInput{Title: "  Group  Dance ", StageType: "on-stage"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ev.Title != "Group Dance" || ev.StageType != models.StageOn || ev.OpenRegistration {
		t.Errorf("unexpected event: %+v", ev)
	}

	if _, err := env.catalog.CreateEvent(ctx, EventInput{Title: "Group Dance", StageType: "ON_STAGE"}); !errors.Is(err, ErrValidation) {
		t.Errorf("duplicate title: want ErrValidation, got %v", err)
	}
	if _, err := env.catalog.CreateEvent(ctx, EventInput{Title: "group DANCE", StageType: "ON_STAGE"}); !errors.Is(err, ErrValidation) {
		t.Errorf("duplicate title in another case: want ErrValidation, got %v", err)
	}
	if _, err := env.catalog.CreateEvent(ctx, EventInput{Title: "Mime", StageType: "backstage"}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad stage: want ErrValidation, got %v", err)
	}
	if _, err := env.catalog.CreateEvent(ctx, EventInput{Title: " ", StageType: "ON_STAGE"}); !errors.Is(err, ErrValidation) {
		t.Errorf("empty title: want ErrValidation, got %v", err)
	}
}

func TestEventByTitle_IgnoresCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.event(t, "Group Dance", models.StageOn, true)

	for _, title := range []string{"Group Dance", "group dance", " GROUP  dance "} {
		ev, err := env.catalog.EventByTitle(ctx, title)
		if err != nil {
			t.Fatalf("%q: %v", title, err)
		}
		if ev.Title != "Group Dance" {
			t.Errorf("%q resolved to %q", title, ev.Title)
		}
	}
	if _, err := env.catalog.EventByTitle(ctx, "Group Dances"); !errors.Is(err, ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestSetRegistrationOpen(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ev := env.event(t, "Light Music", models.StageOff, false)

	got, err := env.catalog.SetRegistrationOpen(ctx, ev.ID, true)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !got.OpenRegistration {
		t.Error("returned event should be open")
	}
	stored, err := env.catalog.EventByTitle(ctx, "Light Music")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !stored.OpenRegistration {
		t.Error("stored event should be open")
	}

	if _, err := env.catalog.SetRegistrationOpen(ctx, 9999, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown event: want ErrNotFound, got %v", err)
	}
}

func TestCreateTeam(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	team, err := env.catalog.CreateTeam(ctx, TeamInput{TeamID: "25ica02", TeamName: "Commerce A", Shift: "Shift I"})
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	if team.TeamID != "25ICA02" {
		t.Errorf("team id not normalized: %q", team.TeamID)
	}
	got, err := env.catalog.Team(ctx, " 25ICA02")
	if err != nil || got.TeamName != "Commerce A" {
		t.Fatalf("lookup: %+v %v", got, err)
	}
	if _, err := env.catalog.Team(ctx, "NOPE"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown team: want ErrNotFound, got %v", err)
	}
	if _, err := env.catalog.CreateTeam(ctx, TeamInput{TeamID: "X1", TeamName: "X", Shift: "Shift III"}); !errors.Is(err, ErrValidation) {
		t.Errorf("bad shift: want ErrValidation, got %v", err)
	}
}
