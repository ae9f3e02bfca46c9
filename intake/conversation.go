package intake

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownQuestion is returned for a key outside the question set.
	ErrUnknownQuestion = errors.New("unknown question key")
	// ErrOutOfOrder is returned when a question is answered out of sequence.
	ErrOutOfOrder = errors.New("question answered out of order")
	// ErrComplete is returned when an answer arrives after the last question.
	ErrComplete = errors.New("intake conversation is already complete")
)

// Progress is the position of one candidate in the conversation.
type Progress struct {
	Greeting          string    `json:"greeting"`
	Answered          int       `json:"answered"`
	Total             int       `json:"total"`
	Next              *Question `json:"next"`
	Complete          bool      `json:"complete"`
	CompletionMessage string    `json:"completionMessage,omitempty"`
}

// ProgressFor builds the conversation state from the ordered keys already answered.
func ProgressFor(firstName string, answeredKeys []string) Progress {
	p := Progress{
		Greeting: Greeting(firstName),
		Answered: len(answeredKeys),
		Total:    len(questions),
	}
	if p.Answered >= len(questions) {
		p.Answered = len(questions)
		p.Complete = true
		p.CompletionMessage = CompletionMessage
		return p
	}
	next := questions[p.Answered]
	p.Next = &next
	return p
}

// Expect checks that key is the next question after answered responses and
// returns the canonical question for it.
func Expect(answered int, key string) (Question, error) {
	q, idx, ok := Lookup(key)
	if !ok {
		return Question{}, fmt.Errorf("%w: %q", ErrUnknownQuestion, key)
	}
	if answered >= len(questions) {
		return Question{}, ErrComplete
	}
	if idx != answered {
		return Question{}, fmt.Errorf("%w: expected %q, got %q", ErrOutOfOrder, questions[answered].Key, key)
	}
	return q, nil
}
