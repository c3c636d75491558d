package model

import (
	"time"

	"github.com/google/uuid"
)

// Classroom represents one exam instance assembled by a teacher.
// Its question set is frozen at creation time; students join with
// the access code while is_active is true.
type Classroom struct {
	ID              uuid.UUID `json:"id"`
	TeacherID       int       `json:"teacher_id"`
	Title           string    `json:"title"`
	AccessCode      string    `json:"access_code"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateClassroomRequest is the payload for assembling a new classroom.
// CategoryCounts maps a question-bank category to the number of questions
// to draw from it, e.g. {"Algebra": 10}.
type CreateClassroomRequest struct {
	Title           string         `json:"title" binding:"required,min=3,max=255"`
	DurationMinutes int            `json:"duration_minutes" binding:"required,min=1,max=480"`
	CategoryCounts  map[string]int `json:"category_counts" binding:"required,min=1"`
}

// ClassroomResponse is the teacher-facing projection of a classroom.
type ClassroomResponse struct {
	ID              uuid.UUID `json:"id"`
	TeacherID       int       `json:"teacher_id"`
	Title           string    `json:"title"`
	AccessCode      string    `json:"access_code"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	StudentCount    int       `json:"student_count"`
}

// RegisterStudentRequest adds an existing student to a classroom roster.
type RegisterStudentRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ClassroomPayload is the Redis-cached student-facing question set for a
// classroom. Correct keys are stripped before caching so the cache can
// never leak them.
type ClassroomPayload struct {
	ClassroomID uuid.UUID            `json:"classroom_id"`
	Title       string               `json:"title"`
	Duration    int                  `json:"duration_minutes"`
	Questions   []QuestionForStudent `json:"questions"`
}
