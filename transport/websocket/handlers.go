package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/view"
)

const (
	actionConnect   = "connect"
	actionGameTurn  = "game:turn"
	actionGameJump  = "game:jump"
	actionGameReset = "game:reset"
	actionError     = "error"
)

// handleConnect - binds the connection to a session, the payload's one taking precedence over the cookie.
func (that *Server) handleConnect(ctx context.Context, conn *connection, msg *Message) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return conn.sendErrorResponse(msg.Action, "invalid payload")
	}

	requested := conn.sessionID
	if payloadReq.Session != "" {
		requested = payloadReq.Session
	}

	sessionID, history, err := that.gameUseCase.GetOrCreateSession(ctx, requested)
	if err != nil {
		log.Error("failed to get or create session", "error", err)
		return conn.sendErrorResponse(msg.Action, "failed to create a new session")
	}

	conn.sessionID = sessionID

	log.Info("successfully connected session", "session", sessionID)

	return that.sendState(conn, msg.Action, history)
}

func (that *Server) handleGameTurn(ctx context.Context, conn *connection, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return conn.sendErrorResponse(msg.Action, "invalid payload")
	}

	if payloadReq.Cell == nil {
		return conn.sendErrorResponse(msg.Action, "Cell is required")
	}

	return that.apply(ctx, conn, msg.Action, func(sessionID string) (*entity.GameHistory, error) {
		return that.gameUseCase.PlayMove(ctx, sessionID, *payloadReq.Cell)
	})
}

func (that *Server) handleGameJump(ctx context.Context, conn *connection, msg *Message) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return conn.sendErrorResponse(msg.Action, "invalid payload")
	}

	if payloadReq.Move == nil {
		return conn.sendErrorResponse(msg.Action, "Move is required")
	}

	return that.apply(ctx, conn, msg.Action, func(sessionID string) (*entity.GameHistory, error) {
		return that.gameUseCase.JumpTo(ctx, sessionID, *payloadReq.Move)
	})
}

func (that *Server) handleGameReset(ctx context.Context, conn *connection, msg *Message) error {
	return that.apply(ctx, conn, msg.Action, func(sessionID string) (*entity.GameHistory, error) {
		return that.gameUseCase.Reset(ctx, sessionID)
	})
}

// apply - makes sure the connection has a session, runs act on it and answers with the new state.
func (that *Server) apply(ctx context.Context, conn *connection, action string, act func(sessionID string) (*entity.GameHistory, error)) error {
	log := that.logger.With("method", "apply", "action", action)

	sessionID, _, err := that.gameUseCase.GetOrCreateSession(ctx, conn.sessionID)
	if err != nil {
		log.Error("failed to get or create session", "error", err)
		return conn.sendErrorResponse(action, "failed to get the session")
	}
	conn.sessionID = sessionID

	history, err := act(sessionID)
	if err != nil {
		log.Error("failed to apply action", "session", sessionID, "error", err)
		return conn.sendErrorResponse(action, "failed to apply action")
	}

	return that.sendState(conn, action, history)
}

func (that *Server) sendState(conn *connection, action string, history *entity.GameHistory) error {
	state := view.Build(history)

	if err := conn.sendMessage(action, Payload{Session: conn.sessionID, State: &state}); err != nil {
		return fmt.Errorf("failed to send state: %w", err)
	}

	return nil
}
