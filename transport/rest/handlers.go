package rest

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/view"
)

const sessionCookie = "user_session"

//go:embed templates/page.html
var templates embed.FS

type gameUseCase interface {
	GetOrCreateSession(ctx context.Context, sessionID string) (string, *entity.GameHistory, error)

	PlayMove(ctx context.Context, sessionID string, cell int) (*entity.GameHistory, error)
	JumpTo(ctx context.Context, sessionID string, move int) (*entity.GameHistory, error)
	Reset(ctx context.Context, sessionID string) (*entity.GameHistory, error)
}

type Handlers struct {
	logger     *slog.Logger
	game       gameUseCase
	page       *template.Template
	sessionTTL time.Duration
}

func NewHandlers(logger *slog.Logger, game gameUseCase, sessionTTL time.Duration) *Handlers {
	return &Handlers{
		logger:     logger.With("component", "rest"),
		game:       game,
		page:       template.Must(template.ParseFS(templates, "templates/page.html")),
		sessionTTL: sessionTTL,
	}
}

// Page - renders the board, the status line and the move list.
func (that *Handlers) Page(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "Page")

	_, history, err := that.session(w, r)
	if err != nil {
		log.Error("failed to get session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err = that.page.Execute(w, view.Build(history)); err != nil {
		log.Error("failed to render page", "error", err)
	}
}

func (that *Handlers) PlayForm(w http.ResponseWriter, r *http.Request) {
	that.form(w, r, "PlayForm", that.playMove)
}

func (that *Handlers) JumpForm(w http.ResponseWriter, r *http.Request) {
	that.form(w, r, "JumpForm", that.jumpTo)
}

func (that *Handlers) ResetForm(w http.ResponseWriter, r *http.Request) {
	that.form(w, r, "ResetForm", that.reset)
}

// State - returns the current view as JSON.
func (that *Handlers) State(w http.ResponseWriter, r *http.Request) {
	_, history, err := that.session(w, r)
	if err != nil {
		that.logger.Error("failed to get session", "method", "State", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, view.Build(history))
}

func (that *Handlers) Play(w http.ResponseWriter, r *http.Request) {
	that.api(w, r, "Play", that.playMove)
}

func (that *Handlers) Jump(w http.ResponseWriter, r *http.Request) {
	that.api(w, r, "Jump", that.jumpTo)
}

func (that *Handlers) Reset(w http.ResponseWriter, r *http.Request) {
	that.api(w, r, "Reset", that.reset)
}

type action func(r *http.Request, sessionID string) (*entity.GameHistory, error)

func (that *Handlers) playMove(r *http.Request, sessionID string) (*entity.GameHistory, error) {
	cell, err := strconv.Atoi(r.PathValue("cell"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidCell, r.PathValue("cell"))
	}

	return that.game.PlayMove(r.Context(), sessionID, cell)
}

func (that *Handlers) jumpTo(r *http.Request, sessionID string) (*entity.GameHistory, error) {
	move, err := strconv.Atoi(r.PathValue("move"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMove, r.PathValue("move"))
	}

	return that.game.JumpTo(r.Context(), sessionID, move)
}

func (that *Handlers) reset(r *http.Request, sessionID string) (*entity.GameHistory, error) {
	return that.game.Reset(r.Context(), sessionID)
}

// form - runs act for the browser page and sends it back to the board.
func (that *Handlers) form(w http.ResponseWriter, r *http.Request, method string, act action) {
	log := that.logger.With("method", method)

	sessionID, _, err := that.session(w, r)
	if err != nil {
		log.Error("failed to get session", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if _, err = act(r, sessionID); err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to handle action", "error", err)
		}
		http.Error(w, http.StatusText(status), status)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *Handlers) api(w http.ResponseWriter, r *http.Request, method string, act action) {
	log := that.logger.With("method", method)

	sessionID, _, err := that.session(w, r)
	if err != nil {
		log.Error("failed to get session", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	history, err := act(r, sessionID)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			log.Error("failed to handle action", "error", err)
			writeError(w, status, "Internal Server Error")
			return
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, view.Build(history))
}

// session - resolves the visitor's game from the cookie, issuing a new cookie when the game is new.
func (that *Handlers) session(w http.ResponseWriter, r *http.Request) (string, *entity.GameHistory, error) {
	var sessionID string
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		sessionID = cookie.Value
	}

	resolvedID, history, err := that.game.GetOrCreateSession(r.Context(), sessionID)
	if err != nil {
		return "", nil, fmt.Errorf("failed to get or create session: %w", err)
	}

	if resolvedID != sessionID {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    resolvedID,
			Path:     "/",
			Expires:  time.Now().Add(that.sessionTTL),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return resolvedID, history, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrInvalidMove):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
