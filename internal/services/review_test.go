package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lojf/festival/internal/models"
)

func submitSong(t *testing.T, env *testEnv, team, song string) *models.OffStageRegistration {
	t.Helper()
	reg, err := env.regs.SubmitOffStage(context.Background(), OffStageInput{
		TeamID: team, TeamName: "Team " + team, EventName: "Light Music", SongTitle: song,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return reg
}

func TestDecide_CorrectionThenResubmit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.event(t, "Light Music", models.StageOff, true)
	reg := submitSong(t, env, "25ICA02", "Old Song")

	got, err := env.reviews.Decide(ctx, reg.ID, "correction", "  wrong song  ")
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if got.Status != models.ReviewCorrection || got.Remark != "wrong song" {
		t.Fatalf("after decide: %q/%q", got.Status, got.Remark)
	}

	again := submitSong(t, env, "25ICA02", "New Song")
	if again.ID != reg.ID {
		t.Fatalf("resubmission created a new record")
	}
	stored, err := env.regs.GetOffStage(ctx, reg.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != models.ReviewCorrection || stored.Remark != "wrong song" {
		t.Errorf("resubmission must not change review state: %q/%q", stored.Status, stored.Remark)
	}
	if stored.SongTitle != "New Song" {
		t.Errorf("song not updated: %q", stored.SongTitle)
	}
	if stored.ResubmittedAt == nil {
		t.Error("resubmission time should be recorded for records under correction")
	}
}

func TestDecide_Transitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.event(t, "Light Music", models.StageOff, true)
	reg := submitSong(t, env, "T1", "Song")

	if _, err := env.reviews.Decide(ctx, reg.ID, "APPROVED", ""); err != nil {
		t.Fatalf("approve: %v", err)
	}
	got, err := env.reviews.Decide(ctx, reg.ID, "approved", "looks good")
	if err != nil {
		t.Fatalf("approve again: %v", err)
	}
	if got.Status != models.ReviewApproved || got.Remark != "looks good" {
		t.Errorf("idempotent approve should still write the remark: %+v", got)
	}

	if _, err := env.reviews.Decide(ctx, reg.ID, "correction", "tune missing"); err != nil {
		t.Fatalf("approved to correction: %v", err)
	}
	stored, _ := env.regs.GetOffStage(ctx, reg.ID)
	if stored.Status != models.ReviewCorrection || stored.Remark != "tune missing" {
		t.Errorf("stored: %q/%q", stored.Status, stored.Remark)
	}
	if stored.ResubmittedAt != nil {
		t.Error("decisions must not touch the resubmission time")
	}

	// The remark is overwritten even when empty.
	if _, err := env.reviews.Decide(ctx, reg.ID, "approved", ""); err != nil {
		t.Fatalf("correction to approved: %v", err)
	}
	stored, _ = env.regs.GetOffStage(ctx, reg.ID)
	if stored.Status != models.ReviewApproved || stored.Remark != "" {
		t.Errorf("stored: %q/%q", stored.Status, stored.Remark)
	}
}

func TestDecide_Rejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.event(t, "Light Music", models.StageOff, true)
	reg := submitSong(t, env, "T1", "Song")

	for _, status := range []string{"pending", "rejected", ""} {
		if _, err := env.reviews.Decide(ctx, reg.ID, status, ""); !errors.Is(err, ErrValidation) {
			t.Errorf("status %q: want ErrValidation, got %v", status, err)
		}
	}
	if _, err := env.reviews.Decide(ctx, 4242, "approved", ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id: want ErrNotFound, got %v", err)
	}
	stored, _ := env.regs.GetOffStage(ctx, reg.ID)
	if stored.Status != models.ReviewPending {
		t.Errorf("rejected decisions changed status to %q", stored.Status)
	}
}

func TestDecide_FiresHook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.event(t, "Light Music", models.StageOff, true)
	reg := submitSong(t, env, "T1", "Song")

	var seen []models.OffStageRegistration
	env.hooks.ReviewDecided = func(r models.OffStageRegistration) { seen = append(seen, r) }

	if _, err := env.reviews.Decide(ctx, reg.ID, "correction", "fix tune"); err != nil {
		t.Fatalf("decide: %v", err)
	}
	if len(seen) != 1 || seen[0].Status != models.ReviewCorrection || seen[0].Remark != "fix tune" || seen[0].TeamID != "T1" {
		t.Errorf("hook saw %+v", seen)
	}

	if _, err := env.reviews.Decide(ctx, reg.ID, "bogus", ""); err == nil {
		t.Fatal("expected error")
	}
	if len(seen) != 1 {
		t.Error("hook fired for a rejected decision")
	}
}
