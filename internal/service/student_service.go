package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/istadem2077/turanmath-backend/internal/model"
	"github.com/istadem2077/turanmath-backend/internal/repository"
)

// StudentService manages the student registry. Student records must exist
// before a student can be placed on a classroom roster.
type StudentService struct {
	studentStore StudentStore
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentStore StudentStore) *StudentService {
	return &StudentService{studentStore: studentStore}
}

// Create registers a new student record.
func (s *StudentService) Create(ctx context.Context, req *model.CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		Email:    strings.ToLower(req.Email),
		FullName: req.FullName,
	}

	if err := s.studentStore.Create(ctx, student); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create student: %w", err)
	}
	return student, nil
}
