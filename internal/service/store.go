package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/istadem2077/turanmath-backend/internal/model"
)

// Storage is an external collaborator to the services in this package; the
// interfaces below define exactly what each service consumes. The pgx
// repositories in internal/repository satisfy them, and the tests substitute
// in-memory fakes. Not-found conditions surface as repository.ErrNotFound,
// uniqueness conflicts as repository.ErrDuplicate.

// ClassroomStore provides classroom lookups and roster management.
type ClassroomStore interface {
	GetByAccessCode(ctx context.Context, code string) (*model.Classroom, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Classroom, error)
	Create(ctx context.Context, c *model.Classroom, questionIDs []uuid.UUID) error
	ListByTeacher(ctx context.Context, teacherID int) ([]model.Classroom, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	AddStudent(ctx context.Context, classroomID uuid.UUID, studentID int) error
	IsStudentRegistered(ctx context.Context, classroomID uuid.UUID, studentID int) (bool, error)
	CountStudents(ctx context.Context, classroomID uuid.UUID) (int, error)
}

// StudentStore provides student record lookups and creation.
type StudentStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	GetByID(ctx context.Context, id int) (*model.Student, error)
	Create(ctx context.Context, s *model.Student) error
}

// TeacherStore provides teacher account lookups and creation.
type TeacherStore interface {
	GetByEmail(ctx context.Context, email string) (*model.Teacher, error)
	GetByID(ctx context.Context, id int) (*model.Teacher, error)
	Create(ctx context.Context, t *model.Teacher) error
}

// QuestionStore provides question-bank access.
type QuestionStore interface {
	ListByClassroom(ctx context.Context, classroomID uuid.UUID) ([]model.Question, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Question, error)
	SampleByCategory(ctx context.Context, category string, n int) ([]model.Question, error)
	ListCategories(ctx context.Context) (map[string]int, error)
}

// SubmissionStore provides exam submission access. Create must be atomic
// with respect to the (classroom, student) uniqueness constraint.
// CompleteWithAnswers must commit the completion and the answer log
// together or not at all.
type SubmissionStore interface {
	GetByClassroomAndStudent(ctx context.Context, classroomID uuid.UUID, studentID int) (*model.ExamSubmission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.ExamSubmission, error)
	Create(ctx context.Context, s *model.ExamSubmission) error
	CompleteWithAnswers(ctx context.Context, id uuid.UUID, score int, submitTime time.Time, answers []model.ExamAnswer) error
	ListByClassroom(ctx context.Context, classroomID uuid.UUID) ([]model.ExamSubmission, error)
}

// AnswerStore provides answer log reads.
type AnswerStore interface {
	ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]model.ExamAnswer, error)
}
