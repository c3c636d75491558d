package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/istadem2077/turanmath-backend/internal/config"
	"github.com/istadem2077/turanmath-backend/internal/model"
	"github.com/istadem2077/turanmath-backend/internal/repository"
)

var (
	ErrTeacherNotFound   = errors.New("teacher not found")
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrNotClassroomOwner = errors.New("not the owner of this classroom")
	ErrStudentNotFound   = errors.New("student not found")
	ErrBankShortage      = errors.New("not enough questions in bank for category")
)

// accessCodeAttempts bounds the generate-and-retry loop for access codes.
const accessCodeAttempts = 10

// ClassroomService assembles classrooms from the question bank and manages
// their lifecycle (activation window, roster, payload cache).
type ClassroomService struct {
	classroomStore ClassroomStore
	questionStore  QuestionStore
	teacherStore   TeacherStore
	studentStore   StudentStore
	rdb            *redis.Client
	log            zerolog.Logger
}

// NewClassroomService creates a new ClassroomService. rdb may be nil, in
// which case payload cache warming is skipped.
func NewClassroomService(
	classroomStore ClassroomStore,
	questionStore QuestionStore,
	teacherStore TeacherStore,
	studentStore StudentStore,
	rdb *redis.Client,
	log zerolog.Logger,
) *ClassroomService {
	return &ClassroomService{
		classroomStore: classroomStore,
		questionStore:  questionStore,
		teacherStore:   teacherStore,
		studentStore:   studentStore,
		rdb:            rdb,
		log:            log.With().Str("component", "classroom_service").Logger(),
	}
}

// Create assembles a new active classroom for the teacher: draws the
// requested number of random questions per bank category, generates a
// unique access code and freezes the question set.
func (s *ClassroomService) Create(ctx context.Context, teacherID int, req *model.CreateClassroomRequest) (*model.Classroom, error) {
	if _, err := s.teacherStore.GetByID(ctx, teacherID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTeacherNotFound
		}
		return nil, fmt.Errorf("get teacher: %w", err)
	}

	var master []model.Question
	for category, count := range req.CategoryCounts {
		sampled, err := s.questionStore.SampleByCategory(ctx, category, count)
		if err != nil {
			return nil, fmt.Errorf("sample category %q: %w", category, err)
		}
		if len(sampled) < count {
			return nil, fmt.Errorf("%w: %s", ErrBankShortage, category)
		}
		master = append(master, sampled...)
	}

	code, err := s.generateAccessCode(ctx)
	if err != nil {
		return nil, err
	}

	classroom := &model.Classroom{
		TeacherID:       teacherID,
		Title:           req.Title,
		AccessCode:      code,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}

	questionIDs := make([]uuid.UUID, len(master))
	for i, q := range master {
		questionIDs[i] = q.ID
	}

	if err := s.classroomStore.Create(ctx, classroom, questionIDs); err != nil {
		return nil, fmt.Errorf("create classroom: %w", err)
	}

	s.warmPayloadCache(ctx, classroom, master)

	s.log.Info().
		Str("classroom_id", classroom.ID.String()).
		Str("access_code", classroom.AccessCode).
		Int("questions", len(master)).
		Msg("Classroom created")

	return classroom, nil
}

// generateAccessCode draws short upper-case codes until one is free.
// Uniqueness is ultimately enforced by the access_code constraint.
func (s *ClassroomService) generateAccessCode(ctx context.Context) (string, error) {
	for i := 0; i < accessCodeAttempts; i++ {
		code := strings.ToUpper(uuid.New().String()[:6])

		_, err := s.classroomStore.GetByAccessCode(ctx, code)
		if errors.Is(err, repository.ErrNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("check access code: %w", err)
		}
	}
	return "", errors.New("could not generate a unique access code")
}

// ListByTeacher returns the teacher's classrooms with roster sizes.
func (s *ClassroomService) ListByTeacher(ctx context.Context, teacherID int) ([]model.ClassroomResponse, error) {
	classrooms, err := s.classroomStore.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}

	responses := make([]model.ClassroomResponse, 0, len(classrooms))
	for _, c := range classrooms {
		count, err := s.classroomStore.CountStudents(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("count students: %w", err)
		}
		responses = append(responses, model.ClassroomResponse{
			ID:              c.ID,
			TeacherID:       c.TeacherID,
			Title:           c.Title,
			AccessCode:      c.AccessCode,
			DurationMinutes: c.DurationMinutes,
			IsActive:        c.IsActive,
			StudentCount:    count,
		})
	}
	return responses, nil
}

// SetActive opens or closes the classroom's exam window. Only the owning
// teacher may do this. Closing evicts the payload cache; opening re-warms it.
func (s *ClassroomService) SetActive(ctx context.Context, classroomID uuid.UUID, teacherID int, active bool) error {
	classroom, err := s.ownedClassroom(ctx, classroomID, teacherID)
	if err != nil {
		return err
	}

	if err := s.classroomStore.SetActive(ctx, classroom.ID, active); err != nil {
		return fmt.Errorf("set active: %w", err)
	}

	if active {
		questions, err := s.questionStore.ListByClassroom(ctx, classroom.ID)
		if err != nil {
			return fmt.Errorf("list questions: %w", err)
		}
		s.warmPayloadCache(ctx, classroom, questions)
	} else if s.rdb != nil {
		key := config.CacheKey.ClassroomPayloadKey(classroom.ID.String())
		if err := s.rdb.Del(ctx, key).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Payload cache eviction failed")
		}
	}

	s.log.Info().
		Str("classroom_id", classroom.ID.String()).
		Bool("active", active).
		Msg("Classroom window changed")

	return nil
}

// RegisterStudent puts an existing student on the classroom roster.
func (s *ClassroomService) RegisterStudent(ctx context.Context, classroomID uuid.UUID, teacherID int, email string) error {
	classroom, err := s.ownedClassroom(ctx, classroomID, teacherID)
	if err != nil {
		return err
	}

	student, err := s.studentStore.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("get student: %w", err)
	}

	if err := s.classroomStore.AddStudent(ctx, classroom.ID, student.ID); err != nil {
		return fmt.Errorf("add student: %w", err)
	}
	return nil
}

// VerifyOwner checks that the classroom exists and belongs to the teacher.
func (s *ClassroomService) VerifyOwner(ctx context.Context, classroomID uuid.UUID, teacherID int) error {
	_, err := s.ownedClassroom(ctx, classroomID, teacherID)
	return err
}

// ListCategories returns the question-bank categories and their sizes.
func (s *ClassroomService) ListCategories(ctx context.Context) (map[string]int, error) {
	return s.questionStore.ListCategories(ctx)
}

func (s *ClassroomService) ownedClassroom(ctx context.Context, classroomID uuid.UUID, teacherID int) (*model.Classroom, error) {
	classroom, err := s.classroomStore.GetByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassroomNotFound
		}
		return nil, fmt.Errorf("get classroom: %w", err)
	}
	if classroom.TeacherID != teacherID {
		return nil, ErrNotClassroomOwner
	}
	return classroom, nil
}

// warmPayloadCache stores the student-facing payload in Redis so StartExam
// can skip the question join. Best-effort: StartExam self-heals on a miss.
func (s *ClassroomService) warmPayloadCache(ctx context.Context, classroom *model.Classroom, questions []model.Question) {
	if s.rdb == nil {
		return
	}

	payload := buildClassroomPayload(classroom, questions)
	raw, err := json.Marshal(payload)
	if err != nil {
		return
	}

	key := config.CacheKey.ClassroomPayloadKey(classroom.ID.String())
	if err := s.rdb.Set(ctx, key, raw, 0).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Payload cache warm failed")
	}
}

// buildClassroomPayload projects a classroom's questions into the
// student-facing payload, with correct keys stripped.
func buildClassroomPayload(classroom *model.Classroom, questions []model.Question) model.ClassroomPayload {
	public := make([]model.QuestionForStudent, len(questions))
	for i, q := range questions {
		public[i] = q.ForStudent()
	}
	return model.ClassroomPayload{
		ClassroomID: classroom.ID,
		Title:       classroom.Title,
		Duration:    classroom.DurationMinutes,
		Questions:   public,
	}
}
