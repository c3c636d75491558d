package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/istadem2077/turanmath-backend/internal/model"
)

// AnswerRepository handles exam answer log data access.
type AnswerRepository struct {
	pool *pgxpool.Pool
}

// NewAnswerRepository creates a new AnswerRepository.
func NewAnswerRepository(pool *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{pool: pool}
}

// ListBySubmission retrieves the answer log of one submission. Answer rows
// are written by SubmissionRepository.CompleteWithAnswers, inside the same
// transaction that completes the submission.
func (r *AnswerRepository) ListBySubmission(ctx context.Context, submissionID uuid.UUID) ([]model.ExamAnswer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, submission_id, question_id, selected_option_key, is_correct
		 FROM exam_answers
		 WHERE submission_id = $1`, submissionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var answers []model.ExamAnswer
	for rows.Next() {
		var a model.ExamAnswer
		if err := rows.Scan(&a.ID, &a.SubmissionID, &a.QuestionID, &a.SelectedOptionKey, &a.IsCorrect); err != nil {
			return nil, err
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
