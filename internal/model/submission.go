package model

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionStatus enumerates exam submission states.
type SubmissionStatus string

const (
	SubmissionStatusPending    SubmissionStatus = "PENDING"
	SubmissionStatusInProgress SubmissionStatus = "IN_PROGRESS"
	SubmissionStatusCompleted  SubmissionStatus = "COMPLETED"
)

// ExamSubmission is one student's attempt record for one classroom.
// At most one submission exists per (classroom, student) pair, enforced
// by a unique constraint at the storage layer.
type ExamSubmission struct {
	ID          uuid.UUID        `json:"id"`
	ClassroomID uuid.UUID        `json:"classroom_id"`
	StudentID   int              `json:"student_id"`
	StartTime   time.Time        `json:"start_time"`
	SubmitTime  *time.Time       `json:"submit_time,omitempty"`
	TotalScore  int              `json:"total_score"`
	Status      SubmissionStatus `json:"status"`
}
