package model

import (
	"github.com/google/uuid"
)

// QuestionOption is one selectable choice, stored as jsonb:
// [{"key": "A", "text": "42"}, ...]
type QuestionOption struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// Question is a bank question. Immutable once created.
// CorrectOptionKey is never serialized to clients.
type Question struct {
	ID               uuid.UUID        `json:"id"`
	Category         string           `json:"category"`
	Difficulty       int              `json:"difficulty"`
	Content          string           `json:"content"`
	Options          []QuestionOption `json:"options"`
	CorrectOptionKey string           `json:"-"`
}

// QuestionForStudent is the public projection of a question: id, content
// and options only.
type QuestionForStudent struct {
	ID      uuid.UUID        `json:"id"`
	Content string           `json:"content"`
	Options []QuestionOption `json:"options"`
}

// ForStudent strips a question down to its public projection.
func (q Question) ForStudent() QuestionForStudent {
	return QuestionForStudent{
		ID:      q.ID,
		Content: q.Content,
		Options: q.Options,
	}
}
