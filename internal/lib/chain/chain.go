// Package chain runs a fixed sequence of dependent steps over shared state.
//
// Each step reads what earlier steps left in the state and adds its own
// result. The first failing step ends the run; later steps never execute.
package chain

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Step is one named unit of work in a chain.
type Step[S any] struct {
	Name string
	Run  func(ctx context.Context, state *S) error
}

// Run executes steps in order against state and returns the first error.
//
// Step timing is logged at debug level through the logger carried by ctx.
// A cancelled context stops the chain before the next step starts.
func Run[S any](ctx context.Context, state *S, steps ...Step[S]) error {
	logger := zerolog.Ctx(ctx)

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		err := step.Run(ctx, state)
		duration := time.Since(start)

		if err != nil {
			logger.Debug().
				Str("step", step.Name).
				Dur("duration", duration).
				Err(err).
				Msg("chain step failed")
			return err
		}

		logger.Debug().
			Str("step", step.Name).
			Dur("duration", duration).
			Msg("chain step completed")
	}

	return nil
}
