package lending

import (
	"context"
	"fmt"

	"github.com/lendledger/backend/internal/domain/lending"
)

// ScheduleCache caches computed amortization schedules. Get returns
// (nil, nil) on a miss. Cache failures are treated as misses by
// callers; the schedule is always recomputable.
type ScheduleCache interface {
	Get(ctx context.Context, key string) ([]lending.ScheduleRow, error)
	Set(ctx context.Context, key string, rows []lending.ScheduleRow) error
	Delete(ctx context.Context, key string) error
}

// ScheduleCacheKey derives the cache key from the loan's identity and
// the terms the schedule depends on.
func ScheduleCacheKey(loan *lending.Loan) string {
	return fmt.Sprintf("schedule:%s:%s:%s:%d", loan.ID, loan.Principal, loan.AnnualRatePct, loan.TermMonths)
}

// NoOpScheduleCache never caches. Used when no cache backend is configured.
type NoOpScheduleCache struct{}

// Get always misses
func (NoOpScheduleCache) Get(context.Context, string) ([]lending.ScheduleRow, error) {
	return nil, nil
}

// Set discards the rows
func (NoOpScheduleCache) Set(context.Context, string, []lending.ScheduleRow) error {
	return nil
}

// Delete does nothing
func (NoOpScheduleCache) Delete(context.Context, string) error {
	return nil
}

var _ ScheduleCache = (*NoOpScheduleCache)(nil)
