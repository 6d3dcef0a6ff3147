package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/calmstack/taskdeck/internal/domain"
	"github.com/calmstack/taskdeck/internal/store"
)

// Resolver computes the due set: occurrences whose reminder time has passed
// and for which no delivery record exists yet.
type Resolver struct {
	ledger store.DeliveryLedger
}

// NewResolver creates a Resolver backed by the given delivery ledger.
func NewResolver(ledger store.DeliveryLedger) *Resolver {
	return &Resolver{ledger: ledger}
}

// Resolve extracts occurrences from every incomplete task and returns those
// with ReminderTime <= now that have no matching delivery record.
//
// There is no lower bound on how late an occurrence may be: a reminder the
// engine never managed to deliver stays due until it is delivered, however
// old it gets. The ledger existence check is advisory: the narrow race
// between check and commit inside a single serialized pass is tolerated
// because the eventual ledger write is an upsert.
func (r *Resolver) Resolve(ctx context.Context, now time.Time, tasks []domain.Task) ([]domain.ReminderOccurrence, error) {
	cutoff := now.Unix()

	var due []domain.ReminderOccurrence
	for _, task := range tasks {
		for _, occ := range Extract(task) {
			if occ.ReminderTime > cutoff {
				continue
			}

			delivered, err := r.ledger.Exists(ctx, occ.TaskID, occ.ReminderTime)
			if err != nil {
				return nil, fmt.Errorf("failed to check delivery ledger: %w", err)
			}
			if delivered {
				continue
			}

			due = append(due, occ)
		}
	}

	return due, nil
}
