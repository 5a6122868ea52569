package question

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// A set needs at least two options per question to be answerable.
const minOptions = 2

// LoadFile reads an ordered question set from a JSON file and validates it.
// The returned slice is the fixed sequence a session runs through.
func LoadFile(path string) ([]Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question file: %w", err)
	}
	qs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("question file %s: %w", path, err)
	}
	return qs, nil
}

// Parse decodes and validates a JSON array of questions.
func Parse(data []byte) ([]Question, error) {
	var qs []Question
	if err := json.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if err := Validate(qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// Validate checks the set invariants: non-empty, unique ids, enough options,
// and a correct-option index that points into the options.
func Validate(qs []Question) error {
	if len(qs) == 0 {
		return errors.New("question set is empty")
	}
	seen := make(map[int]struct{}, len(qs))
	for i, q := range qs {
		if strings.TrimSpace(q.Prompt) == "" {
			return fmt.Errorf("question %d: empty prompt", i)
		}
		if len(q.Options) < minOptions {
			return fmt.Errorf("question %d: need at least %d options, got %d", i, minOptions, len(q.Options))
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return fmt.Errorf("question %d: correct option %d out of range", i, q.CorrectOption)
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("question %d: duplicate id %d", i, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}
