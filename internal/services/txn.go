package services

import (
	"context"

	"github.com/pcosta/flashdeck/internal/logger"
)

// optimisticTxn is a two-phase commit with explicit rollback: the local change
// is applied immediately so the UI feels instantaneous, the remote write is
// attempted, and the local change is reverted only on a confirmed remote
// rejection.
type optimisticTxn struct {
	name          string
	applyLocal    func()
	attemptRemote func(ctx context.Context) error
	rollbackLocal func()
}

func (t optimisticTxn) run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("services")

	t.applyLocal()
	if err := t.attemptRemote(ctx); err != nil {
		log.Warn("%s rejected remotely, rolling back local change: %v", t.name, err)
		t.rollbackLocal()
		return err
	}
	return nil
}
