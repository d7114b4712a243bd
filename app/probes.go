package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/onsenswap/onsenswap/app/health"
	pairtypes "github.com/onsenswap/onsenswap/x/pair/types"
)

var _ health.Source = (*OnsenApp)(nil)

// Height returns the current block.
func (app *OnsenApp) Height() uint64 {
	return app.Clock.Height()
}

// HealthProbes checks that the database answers and the ledger decodes.
func (app *OnsenApp) HealthProbes() map[string]health.Probe {
	return map[string]health.Probe{
		"database": app.probeDatabase,
		"ledger":   app.probeLedger,
	}
}

// DetailedProbes adds the pair invariants.
func (app *OnsenApp) DetailedProbes() map[string]health.Probe {
	return map[string]health.Probe{
		"invariants": app.probeInvariants,
	}
}

func (app *OnsenApp) probeDatabase(context.Context) health.ComponentHealth {
	start := time.Now()
	initialized, err := app.Initialized()
	if err != nil {
		return unhealthy(fmt.Sprintf("database query failed: %v", err))
	}
	if !initialized {
		return health.ComponentHealth{
			Status:    health.StatusDegraded,
			Message:   "genesis not imported",
			Timestamp: time.Now(),
		}
	}
	return health.ComponentHealth{
		Status:    health.StatusHealthy,
		Timestamp: time.Now(),
		Metrics:   map[string]interface{}{"query_time_ms": time.Since(start).Milliseconds()},
	}
}

func (app *OnsenApp) probeLedger(ctx context.Context) health.ComponentHealth {
	var ledger pairtypes.Ledger
	err := app.Query(ctx, func(ctx context.Context) error {
		var err error
		ledger, err = app.PairKeeper.GetLedger(ctx)
		return err
	})
	switch {
	case errors.Is(err, pairtypes.ErrPoolNotFound):
		return health.ComponentHealth{
			Status:    health.StatusDegraded,
			Message:   "pool not constructed",
			Timestamp: time.Now(),
		}
	case err != nil:
		return unhealthy(err.Error())
	}

	return health.ComponentHealth{
		Status:    health.StatusHealthy,
		Timestamp: time.Now(),
		Metrics: map[string]interface{}{
			"reserve0":          ledger.Reserve0.String(),
			"reserve1":          ledger.Reserve1.String(),
			"last_update_block": ledger.LastUpdateBlock,
			"recent_swaps":      len(app.Journal.Recent(0)),
		},
	}
}

func (app *OnsenApp) probeInvariants(ctx context.Context) health.ComponentHealth {
	msg, broken := app.CheckInvariants(ctx)
	if broken {
		return unhealthy(msg)
	}
	return health.ComponentHealth{Status: health.StatusHealthy, Timestamp: time.Now()}
}

func unhealthy(msg string) health.ComponentHealth {
	return health.ComponentHealth{Status: health.StatusUnhealthy, Message: msg, Timestamp: time.Now()}
}
