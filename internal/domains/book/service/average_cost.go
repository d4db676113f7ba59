package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ten = decimal.NewFromInt(10)

type PriceAggregator interface {
	AveragePrice(ctx context.Context, contributorID uuid.UUID) (decimal.Decimal, int64, error)
}

type CostWriter interface {
	UpdateAverageCost(ctx context.Context, contributorID uuid.UUID, cost decimal.Decimal) error
}

// AverageCostRecalculator giữ contributors.average_cost đồng bộ với giá sách:
// ceil(mean(price) / 10) * 10, hoặc 0 khi contributor không còn sách.
type AverageCostRecalculator struct {
	books        PriceAggregator
	contributors CostWriter
}

func NewAverageCostRecalculator(books PriceAggregator, contributors CostWriter) *AverageCostRecalculator {
	return &AverageCostRecalculator{books: books, contributors: contributors}
}

// RoundUpToTen rounds mean up to the next multiple of ten.
func RoundUpToTen(mean decimal.Decimal) decimal.Decimal {
	return mean.Div(ten).Ceil().Mul(ten)
}

// Recalculate reads the aggregate and writes the contributor's average cost.
func (r *AverageCostRecalculator) Recalculate(ctx context.Context, contributorID uuid.UUID) (decimal.Decimal, error) {
	mean, count, err := r.books.AveragePrice(ctx, contributorID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("aggregate prices of contributor %s: %w", contributorID, err)
	}

	cost := decimal.Zero
	if count > 0 {
		cost = RoundUpToTen(mean)
	}

	if err := r.contributors.UpdateAverageCost(ctx, contributorID, cost); err != nil {
		return decimal.Zero, fmt.Errorf("write average cost of contributor %s: %w", contributorID, err)
	}
	return cost, nil
}

// RecalculateBestEffort runs after a book mutation has already succeeded;
// failures are only logged.
func (r *AverageCostRecalculator) RecalculateBestEffort(ctx context.Context, contributorID uuid.UUID) {
	cost, err := r.Recalculate(ctx, contributorID)
	if err != nil {
		log.Error().Err(err).Str("contributor_id", contributorID.String()).Msg("average cost recalculation failed")
		return
	}
	log.Debug().
		Str("contributor_id", contributorID.String()).
		Str("average_cost", cost.String()).
		Msg("average cost recalculated")
}
