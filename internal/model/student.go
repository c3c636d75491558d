package model

import "time"

// Student represents a registered student. Student records must exist
// before the student can join any classroom.
type Student struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateStudentRequest is the payload for registering a student record.
type CreateStudentRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required,min=2,max=100"`
}
