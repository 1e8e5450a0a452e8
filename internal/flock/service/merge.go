package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/flock/internal/flock/domain"
	"github.com/aussiebroadwan/flock/internal/flock/store"
	"github.com/aussiebroadwan/flock/pkg/slogx"
)

type MergeRequest struct {
	SourceID string `json:"sourceId" validate:"required"`
	TargetID string `json:"targetId" validate:"required"`
}

// MergeResult is the surviving person and what moved over.
type MergeResult struct {
	Person domain.PersonDetail `json:"person"`
	Report domain.MergeReport  `json:"report"`
}

// Merge folds source into target. Target keeps its own values and takes
// source's wherever it has none; every row owned by source moves across
// unless target already has the equivalent; source is then deleted.
func (s *PeopleService) Merge(ctx context.Context, req MergeRequest) (MergeResult, error) {
	log := slogx.FromContext(ctx)

	// 1. Authorize
	a, err := authorize(ctx, domain.PermPeopleMerge)
	if err != nil {
		return MergeResult{}, err
	}

	// 2. Validate
	if err := check(req); err != nil {
		return MergeResult{}, err
	}
	if req.SourceID == req.TargetID {
		return MergeResult{}, invalid("targetId", "must differ from sourceId")
	}
	source, err := parseID(req.SourceID)
	if err != nil {
		return MergeResult{}, err
	}
	target, err := parseID(req.TargetID)
	if err != nil {
		return MergeResult{}, err
	}

	// 3. Everything below commits or rolls back together
	var out MergeResult
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		src, err := tx.People().Get(ctx, a.scope, source)
		if err != nil {
			return notFound(err)
		}
		dst, err := tx.People().Get(ctx, a.scope, target)
		if err != nil {
			return notFound(err)
		}

		merged := fillMissing(dst, src)
		merged.UpdatedAt = s.now()
		if err := tx.People().Update(ctx, a.scope, merged); err != nil {
			return err
		}

		report, err := tx.People().Reassign(ctx, a.scope, source, target)
		if err != nil {
			return err
		}

		if err := s.audit(ctx, tx, a, domain.AuditMerged, domain.EntityPerson, target, map[string]any{
			"sourceId": source,
			"source":   src,
			"old":      dst,
			"new":      merged,
			"report":   report,
		}); err != nil {
			return err
		}

		detail, err := tx.People().Detail(ctx, a.scope, target)
		if err != nil {
			return err
		}
		out = MergeResult{Person: detail, Report: report}
		return nil
	})
	if err != nil {
		return MergeResult{}, err
	}

	log.Info("people merged",
		slog.String("source_id", source),
		slog.String("target_id", target),
	)
	return out, nil
}

// fillMissing returns dst with its empty fields taken from src.
func fillMissing(dst, src domain.Person) domain.Person {
	pick := func(d *string, s string) {
		if *d == "" {
			*d = s
		}
	}
	pick(&dst.PreferredName, src.PreferredName)
	pick(&dst.Email, src.Email)
	pick(&dst.Phone, src.Phone)
	pick(&dst.BirthDate, src.BirthDate)
	pick(&dst.Gender, src.Gender)
	return dst
}
