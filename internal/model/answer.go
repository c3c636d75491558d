package model

import "github.com/google/uuid"

// ExamAnswer is an immutable log entry recording one answer a student
// submitted for one question. Created in bulk during submit.
type ExamAnswer struct {
	ID                uuid.UUID `json:"id"`
	SubmissionID      uuid.UUID `json:"submission_id"`
	QuestionID        uuid.UUID `json:"question_id"`
	SelectedOptionKey string    `json:"selected_option_key"`
	IsCorrect         bool      `json:"is_correct"`
}
