package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/lojf/festival/internal/models"
)

// Signature is the dedup identity of an on-stage registration: the event name
// plus the unordered set of contestant dNos, case-insensitive.
//
//	Signature("Group Dance", []string{"24UCC002", "24ucc001"}) == "group dance::24ucc001|24ucc002"
func Signature(eventName string, dNos []string) string {
	keys := make([]string, len(dNos))
	for i, d := range dNos {
		keys[i] = lower(strings.TrimSpace(d))
	}
	sort.Strings(keys)
	return lower(NormTitle(eventName)) + "::" + strings.Join(keys, "|")
}

func signatureOf(reg models.OnStageRegistration) string {
	dNos := make([]string, len(reg.Contestants))
	for i, c := range reg.Contestants {
		dNos[i] = c.DNo
	}
	return Signature(reg.EventName, dNos)
}

type DuplicateGroup struct {
	Signature string
	IDs       []uint
}

// GroupDuplicates returns only the signatures shared by two or more rows,
// ordered by signature with ids ascending.
func GroupDuplicates(rows []models.OnStageRegistration) []DuplicateGroup {
	bySig := map[string][]uint{}
	for _, r := range rows {
		sig := signatureOf(r)
		bySig[sig] = append(bySig[sig], r.ID)
	}

	out := make([]DuplicateGroup, 0)
	for sig, ids := range bySig {
		if len(ids) < 2 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out = append(out, DuplicateGroup{Signature: sig, IDs: ids})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Signature < out[j].Signature })
	return out
}

// Duplicates finds and removes surplus on-stage submissions. It only
// identifies candidates; which copy survives is the operator's call.
type Duplicates struct {
	db     *gorm.DB
	logger zerolog.Logger
}

func NewDuplicates(db *gorm.DB, logger zerolog.Logger) *Duplicates {
	return &Duplicates{db: db, logger: logger}
}

func (d *Duplicates) ListDuplicates(ctx context.Context, teamID string) ([]DuplicateGroup, error) {
	rows, err := teamOnStage(d.db.WithContext(ctx), NormTeamID(teamID))
	if err != nil {
		return nil, err
	}
	return GroupDuplicates(rows), nil
}

// IsDeletable reports whether another registration of the same team shares
// the row's signature.
func (d *Duplicates) IsDeletable(ctx context.Context, id uint) (bool, error) {
	return deletable(d.db.WithContext(ctx), id)
}

// Delete removes a registration only while it is part of a duplicate group.
// The check and the delete share one transaction, so deleting both members
// of a pair concurrently leaves one behind.
func (d *Duplicates) Delete(ctx context.Context, id uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := deletable(tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return &Error{
				Code:     CodeNotDuplicate,
				Message:  "only duplicate registrations can be deleted",
				Metadata: map[string]string{"record": fmt.Sprint(id)},
			}
		}
		if err := tx.Where("registration_id = ?", id).Delete(&models.OnStageContestant{}).Error; err != nil {
			return fmt.Errorf("delete contestants of %d: %w", id, err)
		}
		if err := tx.Delete(&models.OnStageRegistration{}, id).Error; err != nil {
			return fmt.Errorf("delete on-stage registration %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		d.logger.Warn().Err(err).Uint("id", id).Msg("duplicate delete rejected")
		return err
	}
	d.logger.Info().Uint("id", id).Msg("duplicate on-stage registration deleted")
	return nil
}

func deletable(db *gorm.DB, id uint) (bool, error) {
	var reg models.OnStageRegistration
	if err := db.First(&reg, id).Error; err != nil {
		return false, storeErr(err, "on-stage registration", id)
	}
	rows, err := teamOnStage(db, reg.TeamID)
	if err != nil {
		return false, err
	}
	for _, g := range GroupDuplicates(rows) {
		for _, member := range g.IDs {
			if member == id {
				return true, nil
			}
		}
	}
	return false, nil
}

func teamOnStage(db *gorm.DB, teamID string) ([]models.OnStageRegistration, error) {
	var rows []models.OnStageRegistration
	if err := db.Preload("Contestants").
		Where("team_id = ?", teamID).
		Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load on-stage registrations for %s: %w", teamID, err)
	}
	return rows, nil
}
