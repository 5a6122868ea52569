package ws

import "encoding/json"

// MessageType constants for the quiz WebSocket protocol.
const (
	// Client -> Server
	TypeSubmitAnswer = "submit_answer"
	TypeRestart      = "restart"
	TypeSaveScore    = "save_score"
	TypeRequestState = "request_state"

	// Server -> Client
	TypeState             = "state"
	TypeLeaderboardUpdate = "leaderboard_update"
	TypeError             = "error"
)

// Message wraps all WebSocket payloads with a type tag.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client Messages (incoming)

type SubmitAnswerPayload struct {
	OptionIndex int `json:"option_index"`
}

type SaveScorePayload struct {
	PlayerName string `json:"player_name"`
}

// Server Messages (outgoing)

// StatePayload is the full session snapshot pushed after every transition
// and on every countdown tick.
type StatePayload struct {
	CurrentIndex     int              `json:"current_index"`
	TotalQuestions   int              `json:"total_questions"`
	Score            int              `json:"score"`
	RemainingSeconds int              `json:"remaining_seconds"`
	FeedbackActive   bool             `json:"feedback_active"`
	Complete         bool             `json:"complete"`
	Question         *QuestionPayload `json:"question,omitempty"`
	// RevealedOption carries the correct option index, set only while the
	// feedback window is open or the session is complete.
	RevealedOption *int  `json:"revealed_option,omitempty"`
	Answers        []int `json:"answers,omitempty"`
	Percent        int   `json:"percent"`
}

// QuestionPayload is the client-visible slice of a question; the correct
// option index is withheld until feedback.
type QuestionPayload struct {
	ID       int      `json:"id"`
	Prompt   string   `json:"prompt"`
	Options  []string `json:"options"`
	Category string   `json:"category"`
}

type LeaderboardUpdatePayload struct {
	Top []LeaderboardEntry `json:"top"`
}

type LeaderboardEntry struct {
	Rank           int    `json:"rank"`
	PlayerName     string `json:"player_name"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	RecordedAt     string `json:"recorded_at"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
