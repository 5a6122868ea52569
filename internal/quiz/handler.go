package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"quizkit/internal/leaderboard"
	"quizkit/internal/question"
	httperrors "quizkit/pkg/http/errors"
	ws "quizkit/pkg/http/ws"
)

var upgrader = websocket.Upgrader{
	// Local single-user tool; origin checks add nothing here.
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// HandlerOptions carries session tuning from config.
type HandlerOptions struct {
	QuestionDuration time.Duration
	FeedbackDuration time.Duration
	TickInterval     time.Duration
}

// Handler owns the WebSocket boundary. Each connection is one browser tab
// and runs exactly one session over the shared question sequence.
type Handler struct {
	questions []question.Question
	lb        *leaderboard.Service
	hub       *ws.Hub
	opts      HandlerOptions
	logger    zerolog.Logger
}

// NewHandler creates the quiz WebSocket handler.
func NewHandler(questions []question.Question, lb *leaderboard.Service, hub *ws.Hub, opts HandlerOptions, logger zerolog.Logger) *Handler {
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	return &Handler{
		questions: questions,
		lb:        lb,
		hub:       hub,
		opts:      opts,
		logger:    logger.With().Str("component", "quiz_ws").Logger(),
	}
}

// HandleWebSocket upgrades the request and runs a dedicated session until
// the client goes away.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	clientID := uuid.New()
	wsConn := ws.NewConnection(conn, h.logger)
	h.hub.Register(clientID, wsConn)
	go wsConn.WritePump()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	var sess *Session
	sess, err = NewSession(h.questions, Options{
		QuestionDuration: h.opts.QuestionDuration,
		FeedbackDuration: h.opts.FeedbackDuration,
		Saver:            h.lb,
		OnAdvance:        func() { h.pushState(wsConn, sess) },
		Logger:           h.logger,
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("session start failed")
		h.sendError(wsConn, httperrors.ErrCodeInternalError, "could not start session")
		h.hub.Unregister(clientID)
		return
	}

	// The countdown clock is the only non-user driver of state; push a
	// snapshot after every tick so the client timer stays honest.
	go RunClock(ctx, sess, h.opts.TickInterval, func() {
		h.pushState(wsConn, sess)
	})

	h.pushState(wsConn, sess)

	wsConn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(ctx, wsConn, sess, msg)
	})

	h.hub.Unregister(clientID)
}

func (h *Handler) handleMessage(ctx context.Context, conn *ws.Connection, sess *Session, msg ws.Message) error {
	switch msg.Type {
	case ws.TypeSubmitAnswer:
		var req ws.SubmitAnswerPayload
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return h.sendError(conn, httperrors.ErrCodeInvalidPayload, "Invalid submit_answer payload")
		}
		if err := sess.SubmitAnswer(req.OptionIndex); err != nil {
			return h.sendError(conn, httperrors.ErrCodeInvalidInput, err.Error())
		}
		h.pushState(conn, sess)
		return nil

	case ws.TypeRestart:
		sess.Restart()
		h.pushState(conn, sess)
		return nil

	case ws.TypeSaveScore:
		var req ws.SaveScorePayload
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return h.sendError(conn, httperrors.ErrCodeInvalidPayload, "Invalid save_score payload")
		}
		if err := sess.RequestSave(ctx, req.PlayerName); err != nil {
			code := httperrors.ErrCodeSaveFailed
			if errors.Is(err, ErrInvalidInput) {
				code = httperrors.ErrCodeInvalidInput
			} else if errors.Is(err, leaderboard.ErrUnavailable) {
				code = httperrors.ErrCodePersistenceUnavailable
			}
			return h.sendError(conn, code, err.Error())
		}
		h.broadcastLeaderboard(ctx)
		return nil

	case ws.TypeRequestState:
		h.pushState(conn, sess)
		return nil

	default:
		return h.sendError(conn, httperrors.ErrCodeUnknownMessageType, "Unknown message type: "+msg.Type)
	}
}

// pushState sends the current snapshot. The correct option index is only
// revealed while feedback is showing or on the completion review.
func (h *Handler) pushState(conn *ws.Connection, sess *Session) {
	snap := sess.Snapshot()

	payload := ws.StatePayload{
		CurrentIndex:     snap.CurrentIndex,
		TotalQuestions:   snap.TotalQuestions,
		Score:            snap.Score,
		RemainingSeconds: snap.RemainingSeconds,
		FeedbackActive:   snap.FeedbackActive,
		Complete:         snap.Complete,
		Question: &ws.QuestionPayload{
			ID:       snap.Question.ID,
			Prompt:   snap.Question.Prompt,
			Options:  snap.Question.Options,
			Category: snap.Question.Category,
		},
		Percent: snap.Percent,
	}
	if snap.FeedbackActive || snap.Complete {
		correct := snap.Question.CorrectOption
		payload.RevealedOption = &correct
		payload.Answers = snap.Answers
	}

	msg := ws.Message{Type: ws.TypeState}
	msg.Payload, _ = json.Marshal(payload)
	if err := conn.Send(msg); err != nil {
		h.logger.Debug().Err(err).Msg("state push dropped")
	}
}

func (h *Handler) broadcastLeaderboard(ctx context.Context) {
	entries := h.lb.ReadAll(ctx)
	payload := ws.LeaderboardUpdatePayload{Top: leaderboard.WireEntries(entries)}

	msg := ws.Message{Type: ws.TypeLeaderboardUpdate}
	msg.Payload, _ = json.Marshal(payload)
	h.hub.Broadcast(msg)
}

func (h *Handler) sendError(conn *ws.Connection, code, message string) error {
	errPayload := ws.ErrorPayload{
		Code:    code,
		Message: message,
	}
	msg := ws.Message{Type: ws.TypeError}
	msg.Payload, _ = json.Marshal(errPayload)
	return conn.Send(msg)
}
