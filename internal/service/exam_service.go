package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/istadem2077/turanmath-backend/internal/config"
	"github.com/istadem2077/turanmath-backend/internal/model"
	"github.com/istadem2077/turanmath-backend/internal/repository"
)

// Domain Errors
var (
	ErrInvalidAccessCode    = errors.New("invalid access code")
	ErrExamNotActive        = errors.New("exam is not currently active")
	ErrStudentNotRegistered = errors.New("student not registered")
	ErrNotClassroomMember   = errors.New("not registered for this classroom")
	ErrExamCompleted        = errors.New("exam already completed")
	ErrSubmissionNotFound   = errors.New("submission not found")
	ErrAlreadySubmitted     = errors.New("exam already submitted")
	ErrTimeLimitExceeded    = errors.New("time limit exceeded")
)

// submitGracePeriod is the fixed allowance added to the nominal exam
// duration before a submit is rejected as late.
const submitGracePeriod = 2 * time.Minute

// SubmissionCompletedEvent is published on the classroom monitor channel
// when a student finishes their exam.
type SubmissionCompletedEvent struct {
	ClassroomID    uuid.UUID `json:"classroom_id"`
	SubmissionID   uuid.UUID `json:"submission_id"`
	StudentID      int       `json:"student_id"`
	StudentName    string    `json:"student_name,omitempty"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	SubmitTime     time.Time `json:"submit_time"`
}

// ExamService owns the exam session lifecycle: starting or resuming a
// session, scoring submitted answers against the server-held key, and
// aggregating per-student results for teachers.
type ExamService struct {
	classroomStore  ClassroomStore
	studentStore    StudentStore
	questionStore   QuestionStore
	submissionStore SubmissionStore
	answerStore     AnswerStore
	rdb             *redis.Client
	log             zerolog.Logger
}

// NewExamService creates a new ExamService. rdb may be nil, in which case
// the payload cache and monitor publishing are disabled.
func NewExamService(
	classroomStore ClassroomStore,
	studentStore StudentStore,
	questionStore QuestionStore,
	submissionStore SubmissionStore,
	answerStore AnswerStore,
	rdb *redis.Client,
	log zerolog.Logger,
) *ExamService {
	return &ExamService{
		classroomStore:  classroomStore,
		studentStore:    studentStore,
		questionStore:   questionStore,
		submissionStore: submissionStore,
		answerStore:     answerStore,
		rdb:             rdb,
		log:             log.With().Str("component", "exam_service").Logger(),
	}
}

// StartExam starts or resumes an exam session for the student identified
// by email against the classroom identified by accessCode.
//
// A second call for the same student reuses the existing submission: the
// timer is not reset. Question order is shuffled fresh on every call and
// never persisted, so a resumed session may see a different order; answers
// are keyed by question id, not position.
func (s *ExamService) StartExam(ctx context.Context, accessCode, email string) (*model.ExamStartResponse, error) {
	classroom, err := s.classroomStore.GetByAccessCode(ctx, accessCode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidAccessCode
		}
		return nil, fmt.Errorf("get classroom: %w", err)
	}

	if !classroom.IsActive {
		return nil, ErrExamNotActive
	}

	student, err := s.studentStore.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrStudentNotRegistered
		}
		return nil, fmt.Errorf("get student: %w", err)
	}

	registered, err := s.classroomStore.IsStudentRegistered(ctx, classroom.ID, student.ID)
	if err != nil {
		return nil, fmt.Errorf("check registration: %w", err)
	}
	if !registered {
		return nil, ErrNotClassroomMember
	}

	submission, err := s.resolveSubmission(ctx, classroom.ID, student.ID)
	if err != nil {
		return nil, err
	}

	if submission.Status == model.SubmissionStatusCompleted {
		return nil, ErrExamCompleted
	}

	questions, err := s.studentQuestions(ctx, classroom)
	if err != nil {
		return nil, err
	}

	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	return &model.ExamStartResponse{
		ClassroomID:         classroom.ID,
		Title:               classroom.Title,
		DurationMinutes:     classroom.DurationMinutes,
		SubmissionID:        submission.ID,
		SubmissionStartTime: submission.StartTime,
		Questions:           questions,
	}, nil
}

// resolveSubmission finds the student's submission for the classroom or
// creates one IN_PROGRESS. Two concurrent first calls race on the unique
// (classroom_id, student_id) constraint; the loser re-reads the winner's row.
func (s *ExamService) resolveSubmission(ctx context.Context, classroomID uuid.UUID, studentID int) (*model.ExamSubmission, error) {
	submission, err := s.submissionStore.GetByClassroomAndStudent(ctx, classroomID, studentID)
	if err == nil {
		return submission, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("get submission: %w", err)
	}

	submission = &model.ExamSubmission{
		ClassroomID: classroomID,
		StudentID:   studentID,
		StartTime:   time.Now(),
		Status:      model.SubmissionStatusInProgress,
	}

	if err := s.submissionStore.Create(ctx, submission); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			existing, fetchErr := s.submissionStore.GetByClassroomAndStudent(ctx, classroomID, studentID)
			if fetchErr != nil {
				return nil, fmt.Errorf("concurrent start detected, re-read failed: %w", fetchErr)
			}
			return existing, nil
		}
		return nil, fmt.Errorf("create submission: %w", err)
	}

	return submission, nil
}

// SubmitExam validates and scores the submitted answers, then persists the
// answer log and the COMPLETED submission atomically: a failed completion
// leaves no answer rows behind.
//
// Answers for questions outside the classroom's set are silently discarded.
// Multiple answers for the same question are de-duplicated last-write-wins,
// so at most one answer row is recorded per question.
func (s *ExamService) SubmitExam(ctx context.Context, req *model.SubmitExamRequest) (*model.ScoreResponse, error) {
	submission, err := s.submissionStore.GetByID(ctx, req.SubmissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}

	if submission.Status == model.SubmissionStatusCompleted {
		return nil, ErrAlreadySubmitted
	}

	classroom, err := s.classroomStore.GetByID(ctx, submission.ClassroomID)
	if err != nil {
		return nil, fmt.Errorf("get classroom: %w", err)
	}

	timeLimit := submission.StartTime.
		Add(time.Duration(classroom.DurationMinutes) * time.Minute).
		Add(submitGracePeriod)
	if time.Now().After(timeLimit) {
		return nil, ErrTimeLimitExceeded
	}

	// The classroom's question set is the whitelist: answers for anything
	// outside it cannot contribute to the score or the answer log.
	classQuestions, err := s.questionStore.ListByClassroom(ctx, submission.ClassroomID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	whitelist := make(map[uuid.UUID]model.Question, len(classQuestions))
	for _, q := range classQuestions {
		whitelist[q.ID] = q
	}

	// De-duplicate answers per question id, last write wins, preserving
	// first-seen order for the persisted log.
	order := make([]uuid.UUID, 0, len(req.Answers))
	selected := make(map[uuid.UUID]string, len(req.Answers))
	for _, a := range req.Answers {
		if _, ok := whitelist[a.QuestionID]; !ok {
			continue
		}
		if _, seen := selected[a.QuestionID]; !seen {
			order = append(order, a.QuestionID)
		}
		selected[a.QuestionID] = a.SelectedKey
	}

	totalScore := 0
	answerLog := make([]model.ExamAnswer, 0, len(order))

	for _, qid := range order {
		question := whitelist[qid]
		correct := isCorrectKey(question.CorrectOptionKey, selected[qid])
		if correct {
			totalScore++
		}
		answerLog = append(answerLog, model.ExamAnswer{
			SubmissionID:      submission.ID,
			QuestionID:        qid,
			SelectedOptionKey: selected[qid],
			IsCorrect:         correct,
		})
	}

	submitTime := time.Now()
	if err := s.submissionStore.CompleteWithAnswers(ctx, submission.ID, totalScore, submitTime, answerLog); err != nil {
		return nil, fmt.Errorf("complete submission: %w", err)
	}

	s.publishCompletion(ctx, submission, totalScore, len(whitelist), submitTime)

	return &model.ScoreResponse{
		Score:          totalScore,
		TotalQuestions: len(whitelist),
		Status:         model.SubmissionStatusCompleted,
	}, nil
}

// isCorrectKey compares an option key against the correct one. Keys are
// compared after trimming whitespace, case-insensitively.
func isCorrectKey(correctKey, selectedKey string) bool {
	return strings.EqualFold(strings.TrimSpace(correctKey), strings.TrimSpace(selectedKey))
}

// GetClassroomResults joins every submission of the classroom with its
// answer log for teacher-facing reporting. Submissions are included
// regardless of status: a student who started but never submitted appears
// with score 0 and an empty answer list.
func (s *ExamService) GetClassroomResults(ctx context.Context, classroomID uuid.UUID) ([]model.StudentResult, error) {
	submissions, err := s.submissionStore.ListByClassroom(ctx, classroomID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	classQuestions, err := s.questionStore.ListByClassroom(ctx, classroomID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	totalQuestions := len(classQuestions)

	results := make([]model.StudentResult, 0, len(submissions))

	for _, submission := range submissions {
		answers, err := s.answerStore.ListBySubmission(ctx, submission.ID)
		if err != nil {
			return nil, fmt.Errorf("list answers: %w", err)
		}

		questionIDs := make([]uuid.UUID, 0, len(answers))
		for _, a := range answers {
			questionIDs = append(questionIDs, a.QuestionID)
		}
		questions, err := s.questionStore.GetByIDs(ctx, questionIDs)
		if err != nil {
			return nil, fmt.Errorf("get questions: %w", err)
		}

		details := make([]model.AnswerDetail, 0, len(answers))
		for _, a := range answers {
			question, ok := questions[a.QuestionID]
			if !ok {
				continue
			}
			details = append(details, model.AnswerDetail{
				QuestionID:      a.QuestionID,
				QuestionContent: question.Content,
				SelectedKey:     a.SelectedOptionKey,
				CorrectKey:      question.CorrectOptionKey,
				IsCorrect:       a.IsCorrect,
			})
		}

		student, err := s.studentStore.GetByID(ctx, submission.StudentID)
		if err != nil {
			return nil, fmt.Errorf("get student: %w", err)
		}

		results = append(results, model.StudentResult{
			StudentName:    student.FullName,
			StudentEmail:   student.Email,
			Score:          submission.TotalScore,
			TotalQuestions: totalQuestions,
			Answers:        details,
		})
	}

	return results, nil
}

// studentQuestions returns the classroom's public question projections,
// preferring the Redis payload cache and self-healing it on a miss.
func (s *ExamService) studentQuestions(ctx context.Context, classroom *model.Classroom) ([]model.QuestionForStudent, error) {
	key := config.CacheKey.ClassroomPayloadKey(classroom.ID.String())

	if s.rdb != nil {
		raw, err := s.rdb.Get(ctx, key).Result()
		if err == nil {
			var payload model.ClassroomPayload
			if jsonErr := json.Unmarshal([]byte(raw), &payload); jsonErr == nil {
				return payload.Questions, nil
			}
			s.log.Warn().Str("classroom_id", classroom.ID.String()).Msg("Corrupt payload cache, rebuilding")
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("Payload cache read failed, falling back to database")
		}
	}

	questions, err := s.questionStore.ListByClassroom(ctx, classroom.ID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	payload := buildClassroomPayload(classroom, questions)

	if s.rdb != nil {
		if raw, err := json.Marshal(payload); err == nil {
			if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
				s.log.Warn().Err(err).Msg("Payload cache self-heal failed")
			}
		}
	}

	return payload.Questions, nil
}

// publishCompletion sends a completion event to the classroom monitor
// channel. Failures are logged, never surfaced: monitoring is best-effort.
func (s *ExamService) publishCompletion(ctx context.Context, submission *model.ExamSubmission, score, totalQuestions int, submitTime time.Time) {
	if s.rdb == nil {
		return
	}

	event := SubmissionCompletedEvent{
		ClassroomID:    submission.ClassroomID,
		SubmissionID:   submission.ID,
		StudentID:      submission.StudentID,
		Score:          score,
		TotalQuestions: totalQuestions,
		SubmitTime:     submitTime,
	}
	if student, err := s.studentStore.GetByID(ctx, submission.StudentID); err == nil {
		event.StudentName = student.FullName
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return
	}

	channel := config.CacheKey.ClassroomMonitorChannel(submission.ClassroomID.String())
	if err := s.rdb.Publish(ctx, channel, raw).Err(); err != nil {
		s.log.Warn().Err(err).Str("channel", channel).Msg("Monitor publish failed")
	}
}
