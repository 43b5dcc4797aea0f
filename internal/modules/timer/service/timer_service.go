package service

import (
	"context"
	"errors"
	"time"

	"pomo/internal/modules/timer/domain"
	timerout "pomo/internal/modules/timer/port/out"
	"pomo/internal/platform/clock"
	apperrors "pomo/internal/platform/errors"
)

// TimerService is the session lifecycle state machine. All decisions derive
// from wall-clock time passed in explicitly; durability goes through the two
// injected stores and nowhere else.
type TimerService struct {
	clock clock.Clock
	state timerout.StateStore
	logs  timerout.LogStore
}

func NewTimerService(clk clock.Clock, state timerout.StateStore, logs timerout.LogStore) *TimerService {
	return &TimerService{clock: clk, state: state, logs: logs}
}

func (s *TimerService) Start(ctx context.Context, now time.Time, minutes uint64, note string, force bool) (domain.ActiveSession, error) {
	if minutes == 0 {
		return domain.ActiveSession{}, apperrors.ErrInvalidDuration
	}
	nowUnix := now.Unix()

	existing, err := s.state.Load(ctx)
	switch {
	case err == nil:
		// An already-expired session gets its completion logged before
		// anything else happens to it.
		if _, err := s.finalize(ctx, &existing, nowUnix); err != nil {
			return domain.ActiveSession{}, err
		}
		stillRunning := nowUnix < existing.EndUnix
		if stillRunning && !force {
			return domain.ActiveSession{}, &apperrors.ActiveSessionRunningError{RemainingSecs: existing.RemainingAt(nowUnix)}
		}
		if stillRunning && force {
			// The old log is canceled at the new start's now; its state
			// record is about to be overwritten below.
			if err := s.logs.MarkCanceled(ctx, existing.LogPath, nowUnix); err != nil {
				return domain.ActiveSession{}, err
			}
		}
	case errors.Is(err, apperrors.ErrNoActiveSession):
	default:
		return domain.ActiveSession{}, err
	}

	endUnix := nowUnix + int64(minutes)*60
	logPath, err := s.logs.ResolvePath(ctx, note, nowUnix)
	if err != nil {
		return domain.ActiveSession{}, err
	}
	// If log initialization fails the new session must not be saved;
	// a state record pointing at a missing log is never valid.
	if err := s.logs.Initialize(ctx, logPath, minutes, note, nowUnix, endUnix); err != nil {
		return domain.ActiveSession{}, err
	}
	session := domain.ActiveSession{
		StartUnix: nowUnix,
		EndUnix:   endUnix,
		Minutes:   minutes,
		Note:      note,
		LogPath:   logPath,
	}
	if err := s.state.Save(ctx, session); err != nil {
		return domain.ActiveSession{}, err
	}
	return session, nil
}

func (s *TimerService) Status(ctx context.Context, now time.Time) (domain.Status, error) {
	session, err := s.state.Load(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActiveSession) {
			return domain.Status{Kind: domain.StatusNone}, nil
		}
		return domain.Status{}, err
	}
	nowUnix := now.Unix()
	if nowUnix < session.EndUnix {
		return domain.Status{
			Kind:          domain.StatusRunning,
			ElapsedSecs:   session.ElapsedAt(nowUnix),
			RemainingSecs: session.RemainingAt(nowUnix),
		}, nil
	}
	justLogged, err := s.finalize(ctx, &session, nowUnix)
	if err != nil {
		return domain.Status{}, err
	}
	return domain.Status{
		Kind:       domain.StatusCompleted,
		OverSecs:   uint64(nowUnix - session.EndUnix),
		JustLogged: justLogged,
	}, nil
}

// Stop ends the active session. A session whose natural end has already
// passed is finalized as completed, not canceled; the state record is
// removed either way. No persisted session is a no-op success.
func (s *TimerService) Stop(ctx context.Context) error {
	session, err := s.state.Load(ctx)
	if err != nil && !errors.Is(err, apperrors.ErrNoActiveSession) {
		return err
	}
	if err == nil {
		nowUnix := s.clock.Now().Unix()
		if session.IsCompleteAt(nowUnix) {
			if _, err := s.finalize(ctx, &session, nowUnix); err != nil {
				return err
			}
		} else {
			if err := s.logs.MarkCanceled(ctx, session.LogPath, nowUnix); err != nil {
				return err
			}
		}
	}
	return s.state.Remove(ctx)
}

// finalize is the single choke point that records a completed session's log
// exactly once, no matter how many times status is polled or start observes
// the expired session. Returns whether it performed the write.
func (s *TimerService) finalize(ctx context.Context, session *domain.ActiveSession, nowUnix int64) (bool, error) {
	if session.CompletedLogged {
		return false, nil
	}
	if !session.IsCompleteAt(nowUnix) {
		return false, nil
	}
	if err := s.logs.MarkCompleted(ctx, session.LogPath, nowUnix); err != nil {
		return false, err
	}
	session.CompletedLogged = true
	if err := s.state.Save(ctx, *session); err != nil {
		return false, err
	}
	return true, nil
}
