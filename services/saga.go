package services

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

const compensationTimeout = 10 * time.Second

// detachedContext keeps ctx's values but not its cancellation, so cleanup still
// runs after the client has gone away.
func detachedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
}

type compensation struct {
	name   string
	action func(ctx context.Context) error
}

// saga records an undo action after each completed step and replays them
// newest first when a later step fails.
type saga struct {
	name          string
	compensations []compensation
}

func newSaga(name string) *saga {
	return &saga{name: name}
}

func (s *saga) onRollback(name string, action func(ctx context.Context) error) {
	s.compensations = append(s.compensations, compensation{name: name, action: action})
}

func (s *saga) compensate(ctx context.Context, cause error) {
	ctx, cancel := detachedContext(ctx)
	defer cancel()

	log.Warnw("saga failed, compensating", "saga", s.name, "cause", cause, "steps", len(s.compensations))
	for i := len(s.compensations) - 1; i >= 0; i-- {
		c := s.compensations[i]
		if err := c.action(ctx); err != nil {
			log.Errorw("compensation failed", "saga", s.name, "step", c.name, "error", err)
		}
	}
	s.compensations = nil
}
