package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/istadem2077/turanmath-backend/internal/model"
)

// ClassroomRepository handles classroom data access, including the frozen
// question membership and the student roster.
type ClassroomRepository struct {
	pool *pgxpool.Pool
}

// NewClassroomRepository creates a new ClassroomRepository.
func NewClassroomRepository(pool *pgxpool.Pool) *ClassroomRepository {
	return &ClassroomRepository{pool: pool}
}

const classroomColumns = `id, teacher_id, title, access_code, duration_minutes, is_active, created_at, updated_at`

func scanClassroom(row pgx.Row) (*model.Classroom, error) {
	c := &model.Classroom{}
	err := row.Scan(&c.ID, &c.TeacherID, &c.Title, &c.AccessCode, &c.DurationMinutes, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// GetByAccessCode retrieves a classroom by its unique access code.
func (r *ClassroomRepository) GetByAccessCode(ctx context.Context, code string) (*model.Classroom, error) {
	return scanClassroom(r.pool.QueryRow(ctx,
		`SELECT `+classroomColumns+` FROM classrooms WHERE access_code = $1`, code))
}

// GetByID retrieves a classroom by id.
func (r *ClassroomRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Classroom, error) {
	return scanClassroom(r.pool.QueryRow(ctx,
		`SELECT `+classroomColumns+` FROM classrooms WHERE id = $1`, id))
}

// Create inserts a classroom together with its question membership rows in
// one transaction. The question set is frozen from this point on.
func (r *ClassroomRepository) Create(ctx context.Context, c *model.Classroom, questionIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO classrooms (teacher_id, title, access_code, duration_minutes, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		c.TeacherID, c.Title, c.AccessCode, c.DurationMinutes, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert classroom: %w", err)
	}

	for _, qid := range questionIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO classroom_questions (classroom_id, question_id) VALUES ($1, $2)`,
			c.ID, qid,
		); err != nil {
			return fmt.Errorf("insert classroom question: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ListByTeacher retrieves all classrooms owned by a teacher, newest first.
func (r *ClassroomRepository) ListByTeacher(ctx context.Context, teacherID int) ([]model.Classroom, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+classroomColumns+` FROM classrooms
		 WHERE teacher_id = $1
		 ORDER BY created_at DESC`, teacherID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classrooms []model.Classroom
	for rows.Next() {
		var c model.Classroom
		if err := rows.Scan(&c.ID, &c.TeacherID, &c.Title, &c.AccessCode, &c.DurationMinutes, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classrooms = append(classrooms, c)
	}
	return classrooms, rows.Err()
}

// SetActive flips the active flag, opening or closing the exam window.
func (r *ClassroomRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE classrooms SET is_active = $1, updated_at = NOW() WHERE id = $2`, active, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddStudent registers a student on the classroom roster. Adding the same
// student twice is a no-op.
func (r *ClassroomRepository) AddStudent(ctx context.Context, classroomID uuid.UUID, studentID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO classroom_students (classroom_id, student_id)
		 VALUES ($1, $2)
		 ON CONFLICT (classroom_id, student_id) DO NOTHING`,
		classroomID, studentID)
	return err
}

// IsStudentRegistered reports whether the student is on the classroom roster.
func (r *ClassroomRepository) IsStudentRegistered(ctx context.Context, classroomID uuid.UUID, studentID int) (bool, error) {
	var registered bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM classroom_students
			WHERE classroom_id = $1 AND student_id = $2
		 )`, classroomID, studentID,
	).Scan(&registered)
	return registered, err
}

// CountStudents returns the roster size for a classroom.
func (r *ClassroomRepository) CountStudents(ctx context.Context, classroomID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM classroom_students WHERE classroom_id = $1`, classroomID,
	).Scan(&count)
	return count, err
}
