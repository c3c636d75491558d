package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/istadem2077/turanmath-backend/internal/model"
)

// SubmissionRepository handles exam submission data access.
type SubmissionRepository struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepository creates a new SubmissionRepository.
func NewSubmissionRepository(pool *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

const submissionColumns = `id, classroom_id, student_id, start_time, submit_time, total_score, status`

func scanSubmission(row pgx.Row) (*model.ExamSubmission, error) {
	s := &model.ExamSubmission{}
	err := row.Scan(&s.ID, &s.ClassroomID, &s.StudentID, &s.StartTime, &s.SubmitTime, &s.TotalScore, &s.Status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

// GetByClassroomAndStudent retrieves the submission for one (classroom,
// student) pair. The unique constraint guarantees at most one exists.
func (r *SubmissionRepository) GetByClassroomAndStudent(ctx context.Context, classroomID uuid.UUID, studentID int) (*model.ExamSubmission, error) {
	return scanSubmission(r.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM exam_submissions
		 WHERE classroom_id = $1 AND student_id = $2`, classroomID, studentID))
}

// GetByID retrieves a submission by id.
func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ExamSubmission, error) {
	return scanSubmission(r.pool.QueryRow(ctx,
		`SELECT `+submissionColumns+` FROM exam_submissions WHERE id = $1`, id))
}

// Create inserts a new IN_PROGRESS submission. On a concurrent insert for
// the same (classroom, student) pair the unique constraint wins and
// ErrDuplicate is returned; the caller re-reads the existing row.
func (r *SubmissionRepository) Create(ctx context.Context, s *model.ExamSubmission) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO exam_submissions (classroom_id, student_id, start_time, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (classroom_id, student_id) DO NOTHING
		 RETURNING id, start_time`,
		s.ClassroomID, s.StudentID, s.StartTime, model.SubmissionStatusInProgress,
	).Scan(&s.ID, &s.StartTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrDuplicate
		}
		return err
	}
	s.Status = model.SubmissionStatusInProgress
	return nil
}

// CompleteWithAnswers marks a submission COMPLETED with its final score and
// submit time and inserts its answer log, all in one transaction. Either the
// completion and every answer row commit together or none do.
func (r *SubmissionRepository) CompleteWithAnswers(ctx context.Context, id uuid.UUID, score int, submitTime time.Time, answers []model.ExamAnswer) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE exam_submissions
		 SET status = $1, total_score = $2, submit_time = $3
		 WHERE id = $4`,
		model.SubmissionStatusCompleted, score, submitTime, id)
	if err != nil {
		return fmt.Errorf("complete submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if len(answers) > 0 {
		batch := &pgx.Batch{}
		for _, a := range answers {
			batch.Queue(
				`INSERT INTO exam_answers (submission_id, question_id, selected_option_key, is_correct)
				 VALUES ($1, $2, $3, $4)`,
				a.SubmissionID, a.QuestionID, a.SelectedOptionKey, a.IsCorrect)
		}

		br := tx.SendBatch(ctx, batch)
		for range answers {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("insert answer: %w", err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("close batch: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ListByClassroom retrieves all submissions for a classroom, regardless of
// status, ordered by start time.
func (r *SubmissionRepository) ListByClassroom(ctx context.Context, classroomID uuid.UUID) ([]model.ExamSubmission, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+submissionColumns+` FROM exam_submissions
		 WHERE classroom_id = $1
		 ORDER BY start_time`, classroomID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var submissions []model.ExamSubmission
	for rows.Next() {
		var s model.ExamSubmission
		if err := rows.Scan(&s.ID, &s.ClassroomID, &s.StudentID, &s.StartTime, &s.SubmitTime, &s.TotalScore, &s.Status); err != nil {
			return nil, err
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}
