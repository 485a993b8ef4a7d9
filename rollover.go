package main

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// rollover plans tomorrow for every user who tracked intake today. Users are
// processed concurrently, at most workers at a time. A failure for one user
// is logged and does not stop the others.
func (p *planner) rollover(ctx context.Context, workers int) (int, error) {
	date := p.today(0)
	userIDs, err := p.store.usersLoggedOn(ctx, date)
	if err != nil {
		return 0, fmt.Errorf("list users logged on %s: %w", date, err)
	}

	var planned atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for _, id := range userIDs {
		id := id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := p.planTomorrow(gctx, id); err != nil {
				p.log.Warn("rollover failed for user", zap.Int("user_id", id), zap.Error(err))
				return nil
			}
			planned.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(planned.Load()), err
	}
	return int(planned.Load()), nil
}

// startRollover schedules the nightly rollover in the plan zone. The caller
// owns the returned scheduler and must Stop it.
func startRollover(p *planner, schedule string, workers int) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(planZone))
	_, err := c.AddFunc(schedule, func() {
		n, err := p.rollover(context.Background(), workers)
		if err != nil {
			p.log.Error("rollover aborted", zap.Int("planned", n), zap.Error(err))
			return
		}
		p.log.Info("rollover complete", zap.Int("planned", n))
	})
	if err != nil {
		return nil, fmt.Errorf("invalid rollover schedule %q: %w", schedule, err)
	}
	c.Start()
	return c, nil
}
