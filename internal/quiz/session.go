package quiz

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"quizkit/internal/leaderboard"
	"quizkit/internal/question"
)

// Defaults mirror the quiz rules: 30s per question, a 2s feedback pause
// after every answer or timeout.
const (
	DefaultQuestionDuration = 30 * time.Second
	DefaultFeedbackDuration = 2 * time.Second
)

const maxPlayerNameLen = 32

// Answer slot sentinels. A timed-out question is recorded distinctly from a
// wrong pick so per-question review can tell the two apart; both score zero.
const (
	AnswerPending  = -1
	AnswerTimedOut = -2
)

// ErrInvalidInput flags caller mistakes: an empty question set, an
// out-of-range option index, or a bad player name on save. These are
// rejected at the boundary and never leave the session inconsistent.
var ErrInvalidInput = errors.New("invalid input")

// ScoreSaver persists a finished session's result. Implemented by the
// leaderboard service.
type ScoreSaver interface {
	Append(ctx context.Context, entry leaderboard.Entry) error
}

// Options configures a session's collaborators; zero values get production
// defaults.
type Options struct {
	QuestionDuration time.Duration
	FeedbackDuration time.Duration
	Scheduler        Scheduler
	Saver            ScoreSaver
	// OnAdvance is called (without the session lock held) after a feedback
	// expiry moves the session forward, so a transport can push fresh state.
	OnAdvance func()
	Now       func() time.Time
	Logger    zerolog.Logger
}

// Session is the quiz state machine for a single player: question
// progression, countdown, scoring, the feedback window, and completion.
// All methods are safe to call from the tick loop, timer callbacks, and the
// intent handler; a mutex serializes them.
type Session struct {
	mu        sync.Mutex
	questions []question.Question
	current   int
	score     int
	answers   []int
	remaining int
	feedback  bool
	complete  bool

	// epoch invalidates feedback expiries scheduled before a restart.
	epoch        uint64
	cancelExpiry CancelFunc

	questionSecs int
	feedbackDur  time.Duration
	sched        Scheduler
	saver        ScoreSaver
	onAdvance    func()
	now          func() time.Time
	logger       zerolog.Logger
}

// NewSession starts a session over a fixed, already-validated question
// sequence. Fails with ErrInvalidInput on an empty set.
func NewSession(questions []question.Question, opts Options) (*Session, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: empty question set", ErrInvalidInput)
	}

	qd := opts.QuestionDuration
	if qd <= 0 {
		qd = DefaultQuestionDuration
	}
	fd := opts.FeedbackDuration
	if fd <= 0 {
		fd = DefaultFeedbackDuration
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = TimerScheduler{}
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Session{
		questions:    questions,
		questionSecs: int(qd / time.Second),
		feedbackDur:  fd,
		sched:        sched,
		saver:        opts.Saver,
		onAdvance:    opts.OnAdvance,
		now:          now,
		logger:       opts.Logger.With().Str("component", "session").Logger(),
	}
	s.reset()
	sessionsStarted.Inc()
	return s, nil
}

// reset re-initializes the run. Callers hold s.mu (or own the session
// exclusively, as in NewSession).
func (s *Session) reset() {
	s.current = 0
	s.score = 0
	s.answers = make([]int, len(s.questions))
	for i := range s.answers {
		s.answers[i] = AnswerPending
	}
	s.remaining = s.questionSecs
	s.feedback = false
	s.complete = false
}

// OnTick consumes one second of wall clock. The clock keeps firing while the
// feedback pause or the completion screen is up; those ticks are ignored.
func (s *Session) OnTick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.complete || s.feedback {
		return
	}
	if s.remaining <= 1 {
		// Timed out: scored like a wrong answer, recorded distinctly.
		s.answers[s.current] = AnswerTimedOut
		answersTotal.WithLabelValues("timeout").Inc()
		s.openFeedback()
		return
	}
	s.remaining--
}

// SubmitAnswer records the player's pick for the current question. Late or
// duplicate submissions during feedback (or after completion) are dropped
// silently; the UI has already disabled input in those states.
func (s *Session) SubmitAnswer(optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.feedback || s.complete {
		return nil
	}

	q := s.questions[s.current]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return fmt.Errorf("%w: option %d out of range for question %d", ErrInvalidInput, optionIndex, q.ID)
	}

	s.answers[s.current] = optionIndex
	if optionIndex == q.CorrectOption {
		s.score++
		answersTotal.WithLabelValues("correct").Inc()
	} else {
		answersTotal.WithLabelValues("wrong").Inc()
	}
	s.openFeedback()
	return nil
}

// openFeedback opens the pause window and schedules its one-shot expiry,
// stamped with the current epoch. Callers hold s.mu.
func (s *Session) openFeedback() {
	s.feedback = true
	epoch := s.epoch
	s.cancelExpiry = s.sched.Schedule(s.feedbackDur, func() {
		s.advance(epoch)
	})
}

// advance closes the feedback window and moves to the next question, or
// completes the session on the last one. An expiry scheduled before a
// restart carries a stale epoch and is dropped; cancellation alone cannot
// close the window where the timer has already fired.
func (s *Session) advance(epoch uint64) {
	s.mu.Lock()

	if epoch != s.epoch {
		s.logger.Debug().Uint64("epoch", epoch).Msg("stale feedback expiry dropped")
		s.mu.Unlock()
		return
	}
	if !s.feedback || s.complete {
		s.mu.Unlock()
		return
	}

	s.feedback = false
	s.cancelExpiry = nil
	if s.current == len(s.questions)-1 {
		// Index stays on the last question for final review.
		s.complete = true
	} else {
		s.current++
		s.remaining = s.questionSecs
	}

	cb := s.onAdvance
	s.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// Restart abandons the current run and starts over with the same questions
// in the same order. Valid at any point, including mid-feedback: the epoch
// bump invalidates any pending expiry.
func (s *Session) Restart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.epoch++
	if s.cancelExpiry != nil {
		s.cancelExpiry()
		s.cancelExpiry = nil
	}
	s.reset()
	sessionsStarted.Inc()
}

// RequestSave persists the finished run under playerName. Storage trouble is
// returned to the caller to report once; the session itself is untouched
// either way.
func (s *Session) RequestSave(ctx context.Context, playerName string) error {
	playerName = strings.TrimSpace(playerName)
	if playerName == "" || len(playerName) > maxPlayerNameLen {
		return fmt.Errorf("%w: player name must be 1-%d characters", ErrInvalidInput, maxPlayerNameLen)
	}

	s.mu.Lock()
	if !s.complete {
		s.mu.Unlock()
		return fmt.Errorf("%w: session not complete", ErrInvalidInput)
	}
	entry := leaderboard.Entry{
		PlayerName:     playerName,
		Score:          s.score,
		TotalQuestions: len(s.questions),
		RecordedAt:     s.now().UTC(),
	}
	s.mu.Unlock()

	if s.saver == nil {
		return errors.New("no score store configured")
	}
	if err := s.saver.Append(ctx, entry); err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	scoresSaved.Inc()
	return nil
}

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	CurrentIndex     int
	TotalQuestions   int
	Score            int
	RemainingSeconds int
	FeedbackActive   bool
	Complete         bool
	// Question is the current question (the last one once Complete, for
	// final review). Includes the correct option; transports decide when
	// to reveal it.
	Question question.Question
	// Answers holds one slot per question: an option index, AnswerPending,
	// or AnswerTimedOut.
	Answers []int
	// Percent is the rounded final percentage, meaningful once Complete.
	Percent int
}

// Snapshot returns a consistent copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make([]int, len(s.answers))
	copy(answers, s.answers)

	snap := Snapshot{
		CurrentIndex:     s.current,
		TotalQuestions:   len(s.questions),
		Score:            s.score,
		RemainingSeconds: s.remaining,
		FeedbackActive:   s.feedback,
		Complete:         s.complete,
		Question:         s.questions[s.current],
		Answers:          answers,
	}
	if s.complete {
		snap.Percent = int(math.Round(100 * float64(s.score) / float64(len(s.questions))))
	}
	return snap
}
