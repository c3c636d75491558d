package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/istadem2077/turanmath-backend/internal/model"
)

// QuestionRepository handles question-bank data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const questionColumns = `id, category, difficulty, content, options, correct_option_key`

// ListByClassroom retrieves the frozen question set of a classroom.
func (r *QuestionRepository) ListByClassroom(ctx context.Context, classroomID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.category, q.difficulty, q.content, q.options, q.correct_option_key
		 FROM questions q
		 JOIN classroom_questions cq ON cq.question_id = q.id
		 WHERE cq.classroom_id = $1`, classroomID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Category, &q.Difficulty, &q.Content, &q.Options, &q.CorrectOptionKey); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetByIDs retrieves the given questions as an id-keyed map. Unknown ids
// are simply absent from the result.
func (r *QuestionRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Question, error) {
	questions := make(map[uuid.UUID]model.Question, len(ids))
	if len(ids) == 0 {
		return questions, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions WHERE id = ANY($1)`, ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Category, &q.Difficulty, &q.Content, &q.Options, &q.CorrectOptionKey); err != nil {
			return nil, err
		}
		questions[q.ID] = q
	}
	return questions, rows.Err()
}

// SampleByCategory draws up to n random questions from one bank category.
func (r *QuestionRepository) SampleByCategory(ctx context.Context, category string, n int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+questionColumns+` FROM questions
		 WHERE category = $1
		 ORDER BY random()
		 LIMIT $2`, category, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.Category, &q.Difficulty, &q.Content, &q.Options, &q.CorrectOptionKey); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ListCategories returns the distinct bank categories with their sizes.
func (r *QuestionRepository) ListCategories(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT category, COUNT(*) FROM questions GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make(map[string]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		categories[category] = count
	}
	return categories, rows.Err()
}

// CreateBulk inserts bank questions in one transaction. Used by the seeder.
func (r *QuestionRepository) CreateBulk(ctx context.Context, questions []model.Question) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range questions {
		q := &questions[i]
		err := tx.QueryRow(ctx,
			`INSERT INTO questions (category, difficulty, content, options, correct_option_key)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			q.Category, q.Difficulty, q.Content, q.Options, q.CorrectOptionKey,
		).Scan(&q.ID)
		if err != nil {
			return fmt.Errorf("insert question %d: %w", i, err)
		}
	}

	return tx.Commit(ctx)
}
