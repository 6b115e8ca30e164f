package revocation

import (
	"context"
	"log/slog"
	"time"

	"github.com/pribylovaa/pokedex-api/internal/pkg/log"
)

// RunJanitor периодически вызывает Sweep, пока ctx не отменён.
// Блокирует вызывающего; period <= 0 — сразу возвращает управление.
func (s *Store) RunJanitor(ctx context.Context, period time.Duration) {
	const op = "revocation.janitor.RunJanitor"

	if period <= 0 {
		return
	}

	lg := log.From(ctx)

	t := time.NewTicker(period)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if removed := s.Sweep(); removed > 0 {
				lg.Debug("revocation_sweep",
					slog.String("op", op),
					slog.Int("removed", removed),
					slog.Int("left", s.Len()),
				)
			}
		}
	}
}
