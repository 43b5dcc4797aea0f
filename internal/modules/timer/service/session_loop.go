package service

import (
	"context"
	"time"

	"pomo/internal/modules/timer/domain"
)

// RunLoop blocks until the session completes or cancellation is requested.
// Each tick reads the clock, polls cancelCheck, and reports the remaining
// seconds through onTick. Cancellation is cooperative: it takes effect on
// the next tick, never interrupting an in-flight write. All durability
// happens through the state machine's stores; the loop owns no state beyond
// the session it was handed.
func (s *TimerService) RunLoop(ctx context.Context, session domain.ActiveSession, cancelCheck func() bool, onTick func(remainingSecs uint64)) (domain.Outcome, error) {
	for {
		nowUnix := s.clock.Now().Unix()

		if ctx.Err() != nil || (cancelCheck != nil && cancelCheck()) {
			if onTick != nil {
				onTick(session.RemainingAt(nowUnix))
			}
			if err := s.logs.MarkCanceled(ctx, session.LogPath, nowUnix); err != nil {
				return "", err
			}
			if err := s.state.Remove(ctx); err != nil {
				return "", err
			}
			return domain.OutcomeCanceled, nil
		}

		if session.IsCompleteAt(nowUnix) {
			if _, err := s.finalize(ctx, &session, nowUnix); err != nil {
				return "", err
			}
			if onTick != nil {
				onTick(0)
			}
			if err := s.state.Remove(ctx); err != nil {
				return "", err
			}
			return domain.OutcomeCompleted, nil
		}

		if onTick != nil {
			onTick(session.RemainingAt(nowUnix))
		}
		s.clock.Sleep(time.Second)
	}
}
