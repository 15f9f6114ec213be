package dao

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

const undoTimeout = 10 * time.Second

// saga records the completed steps of a multi-document write so a later
// failure can undo them in reverse order
type saga struct {
	name  string
	steps []string
	undo  []func(ctx context.Context) error
}

func newSaga(name string) *saga {
	return &saga{name: name}
}

func (s *saga) done(step string, undo func(ctx context.Context) error) {
	s.steps = append(s.steps, step)
	s.undo = append(s.undo, undo)
}

// abort runs the recorded compensations and returns cause. Compensations get
// their own context since the request one may already be canceled.
func (s *saga) abort(cause error) error {
	ctx, cancel := context.WithTimeout(context.Background(), undoTimeout)
	defer cancel()

	for i := len(s.undo) - 1; i >= 0; i-- {
		if err := s.undo[i](ctx); err != nil {
			log.Error().Err(err).Str("saga", s.name).Str("step", s.steps[i]).Msg("compensation failed")
			continue
		}
		log.Warn().Str("saga", s.name).Str("step", s.steps[i]).Msg("compensated")
	}
	return cause
}
