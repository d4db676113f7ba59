package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"bookmarket-backend/internal/shared"
)

// Recalculator is satisfied by *service.AverageCostRecalculator.
type Recalculator interface {
	Recalculate(ctx context.Context, contributorID uuid.UUID) (decimal.Decimal, error)
}

type ContributorIDLister interface {
	ListIDs(ctx context.Context) ([]uuid.UUID, error)
}

// ReconcileAverageCostHandler sửa average_cost bị lệch do ghi đồng thời
// (recompute sau mỗi thao tác là last-write-wins)
type ReconcileAverageCostHandler struct {
	recalculator Recalculator
	contributors ContributorIDLister
}

func NewReconcileAverageCostHandler(recalculator Recalculator, contributors ContributorIDLister) *ReconcileAverageCostHandler {
	return &ReconcileAverageCostHandler{recalculator: recalculator, contributors: contributors}
}

func (h *ReconcileAverageCostHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload shared.ReconcileAverageCostPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			log.Error().Err(err).Msg("Failed to unmarshal ReconcileAverageCost payload")
			return fmt.Errorf("unmarshal payload: %w: %w", err, asynq.SkipRetry)
		}
	}

	// 1. Một contributor cụ thể, hoặc toàn bộ
	var ids []uuid.UUID
	if payload.ContributorID != nil {
		ids = []uuid.UUID{*payload.ContributorID}
	} else {
		all, err := h.contributors.ListIDs(ctx)
		if err != nil {
			return fmt.Errorf("list contributors: %w", err)
		}
		ids = all
	}

	// 2. Recompute từng contributor, lỗi của một contributor không dừng cả job
	var errs []error
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := h.recalculator.Recalculate(ctx, id); err != nil {
			log.Warn().Err(err).Str("contributor_id", id.String()).Msg("Failed to reconcile average cost")
			errs = append(errs, err)
		}
	}

	log.Info().
		Int("contributors", len(ids)).
		Int("failed", len(errs)).
		Msg("Average cost reconciliation finished")
	return errors.Join(errs...)
}
