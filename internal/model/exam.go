package model

import (
	"time"

	"github.com/google/uuid"
)

// StartExamRequest is the payload for a student starting (or resuming)
// an exam.
type StartExamRequest struct {
	AccessCode string `json:"access_code" binding:"required,min=4,max=12"`
	Email      string `json:"email" binding:"required,email"`
}

// ExamStartResponse is the exam paper handed to the student. Questions
// carry no correct keys; the client derives remaining time from
// SubmissionStartTime and DurationMinutes.
type ExamStartResponse struct {
	ClassroomID         uuid.UUID            `json:"classroom_id"`
	Title               string               `json:"title"`
	DurationMinutes     int                  `json:"duration_minutes"`
	SubmissionID        uuid.UUID            `json:"submission_id"`
	SubmissionStartTime time.Time            `json:"submission_start_time"`
	Questions           []QuestionForStudent `json:"questions"`
}

// SubmittedAnswer is one (question, selected key) pair in a submit call.
type SubmittedAnswer struct {
	QuestionID  uuid.UUID `json:"question_id" binding:"required"`
	SelectedKey string    `json:"selected_key" binding:"required,max=10"`
}

// SubmitExamRequest is the payload for finishing an exam.
type SubmitExamRequest struct {
	SubmissionID uuid.UUID         `json:"submission_id" binding:"required"`
	Answers      []SubmittedAnswer `json:"answers" binding:"required,dive"`
}

// ScoreResponse is the final score returned to the student.
type ScoreResponse struct {
	Score          int              `json:"score"`
	TotalQuestions int              `json:"total_questions"`
	Status         SubmissionStatus `json:"status"`
}

// AnswerDetail joins an answer row with its question for teacher reporting.
type AnswerDetail struct {
	QuestionID      uuid.UUID `json:"question_id"`
	QuestionContent string    `json:"question_content"`
	SelectedKey     string    `json:"selected_key"`
	CorrectKey      string    `json:"correct_key"`
	IsCorrect       bool      `json:"is_correct"`
}

// StudentResult is one student's aggregated outcome for a classroom.
type StudentResult struct {
	StudentName    string         `json:"student_name"`
	StudentEmail   string         `json:"student_email"`
	Score          int            `json:"score"`
	TotalQuestions int            `json:"total_questions"`
	Answers        []AnswerDetail `json:"answers"`
}
