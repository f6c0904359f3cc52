package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/pkg"
)

type GameUseCase interface {
	GetOrCreateSession(ctx context.Context, sessionID string) (string, *entity.GameHistory, error)

	PlayMove(ctx context.Context, sessionID string, cell int) (*entity.GameHistory, error)
	JumpTo(ctx context.Context, sessionID string, move int) (*entity.GameHistory, error)
	Reset(ctx context.Context, sessionID string) (*entity.GameHistory, error)
}

type sessionRepo interface {
	Save(ctx context.Context, id string, history *entity.GameHistory) error
	GetByID(ctx context.Context, id string) (*entity.GameHistory, error)
}

type gameUseCase struct {
	logger      *slog.Logger
	sessionRepo sessionRepo

	// one transition at a time, as with a single serial UI event loop
	mu sync.Mutex
}

func NewGameUseCase(logger *slog.Logger, sessionRepo sessionRepo) GameUseCase {
	return &gameUseCase{
		logger:      logger.With("component", "game"),
		sessionRepo: sessionRepo,
	}
}

// GetOrCreateSession - returns the game behind sessionID, or a fresh game under a new id when there is none.
func (that *gameUseCase) GetOrCreateSession(ctx context.Context, sessionID string) (string, *entity.GameHistory, error) {
	log := that.logger.With("method", "GetOrCreateSession")

	that.mu.Lock()
	defer that.mu.Unlock()

	if pkg.IsSessionID(sessionID) {
		history, err := that.sessionRepo.GetByID(ctx, sessionID)
		if err == nil {
			return sessionID, history, nil
		}

		if !errors.Is(err, apperror.ErrSessionNotFound) && !errors.Is(err, apperror.ErrCorruptedHistory) {
			return "", nil, fmt.Errorf("failed to get session: %w", err)
		}

		log.Info("session is gone, starting a new one", "session", sessionID, "reason", err)
	}

	sessionID = pkg.GenerateNewSessionID()
	history := entity.NewGameHistory()

	if err := that.sessionRepo.Save(ctx, sessionID, history); err != nil {
		return "", nil, fmt.Errorf("could not create session: %w", err)
	}

	log.Info("session created", "session", sessionID)

	return sessionID, history, nil
}

func (that *gameUseCase) PlayMove(ctx context.Context, sessionID string, cell int) (*entity.GameHistory, error) {
	log := that.logger.With("method", "PlayMove", "session", sessionID, "cell", cell)

	history, err := that.apply(ctx, sessionID, func(history *entity.GameHistory) {
		moves := history.MoveCount()
		current := history.CurrentMove()

		history.PlayMove(cell)

		if history.CurrentMove() == current && history.MoveCount() == moves {
			log.Debug("move ignored")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to play move: %w", err)
	}

	return history, nil
}

func (that *gameUseCase) JumpTo(ctx context.Context, sessionID string, move int) (*entity.GameHistory, error) {
	history, err := that.apply(ctx, sessionID, func(history *entity.GameHistory) {
		history.JumpTo(move)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to jump to move %d: %w", move, err)
	}

	return history, nil
}

func (that *gameUseCase) Reset(ctx context.Context, sessionID string) (*entity.GameHistory, error) {
	history, err := that.apply(ctx, sessionID, func(history *entity.GameHistory) {
		history.Reset()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reset game: %w", err)
	}

	return history, nil
}

// apply - loads the session, runs exactly one transition on it and stores the result.
func (that *gameUseCase) apply(ctx context.Context, sessionID string, transition func(*entity.GameHistory)) (*entity.GameHistory, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	history, err := that.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	transition(history)

	if err = that.sessionRepo.Save(ctx, sessionID, history); err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	return history, nil
}
