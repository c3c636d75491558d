package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/istadem2077/turanmath-backend/internal/model"
	"github.com/istadem2077/turanmath-backend/internal/repository"
)

// In-memory store fakes. They mirror the repository semantics the services
// rely on: repository.ErrNotFound for missing rows, repository.ErrDuplicate
// for uniqueness conflicts.

type fakeClassroomStore struct {
	mu          sync.Mutex
	classrooms  map[uuid.UUID]*model.Classroom
	roster      map[uuid.UUID]map[int]bool
	questionIDs map[uuid.UUID][]uuid.UUID
}

func newFakeClassroomStore() *fakeClassroomStore {
	return &fakeClassroomStore{
		classrooms:  make(map[uuid.UUID]*model.Classroom),
		roster:      make(map[uuid.UUID]map[int]bool),
		questionIDs: make(map[uuid.UUID][]uuid.UUID),
	}
}

func (f *fakeClassroomStore) put(c *model.Classroom) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	f.classrooms[c.ID] = c
}

func (f *fakeClassroomStore) GetByAccessCode(_ context.Context, code string) (*model.Classroom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.classrooms {
		if c.AccessCode == code {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeClassroomStore) GetByID(_ context.Context, id uuid.UUID) (*model.Classroom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.classrooms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeClassroomStore) Create(_ context.Context, c *model.Classroom, questionIDs []uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	copied := *c
	f.classrooms[c.ID] = &copied
	f.questionIDs[c.ID] = questionIDs
	return nil
}

func (f *fakeClassroomStore) ListByTeacher(_ context.Context, teacherID int) ([]model.Classroom, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Classroom
	for _, c := range f.classrooms {
		if c.TeacherID == teacherID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeClassroomStore) SetActive(_ context.Context, id uuid.UUID, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.classrooms[id]
	if !ok {
		return repository.ErrNotFound
	}
	c.IsActive = active
	return nil
}

func (f *fakeClassroomStore) AddStudent(_ context.Context, classroomID uuid.UUID, studentID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.roster[classroomID] == nil {
		f.roster[classroomID] = make(map[int]bool)
	}
	f.roster[classroomID][studentID] = true
	return nil
}

func (f *fakeClassroomStore) IsStudentRegistered(_ context.Context, classroomID uuid.UUID, studentID int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.roster[classroomID][studentID], nil
}

func (f *fakeClassroomStore) CountStudents(_ context.Context, classroomID uuid.UUID) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.roster[classroomID]), nil
}

type fakeStudentStore struct {
	mu       sync.Mutex
	nextID   int
	students map[int]*model.Student
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{students: make(map[int]*model.Student)}
}

func (f *fakeStudentStore) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.students {
		if s.Email == strings.ToLower(email) {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int) (*model.Student, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.students[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStudentStore) Create(_ context.Context, s *model.Student) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.students {
		if existing.Email == s.Email {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	s.ID = f.nextID
	s.CreatedAt = time.Now()
	copied := *s
	f.students[s.ID] = &copied
	return nil
}

type fakeTeacherStore struct {
	mu       sync.Mutex
	nextID   int
	teachers map[int]*model.Teacher
}

func newFakeTeacherStore() *fakeTeacherStore {
	return &fakeTeacherStore{teachers: make(map[int]*model.Teacher)}
}

func (f *fakeTeacherStore) GetByEmail(_ context.Context, email string) (*model.Teacher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.teachers {
		if t.Email == strings.ToLower(email) {
			copied := *t
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTeacherStore) GetByID(_ context.Context, id int) (*model.Teacher, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.teachers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTeacherStore) Create(_ context.Context, t *model.Teacher) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.teachers {
		if existing.Email == t.Email {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	t.ID = f.nextID
	t.CreatedAt = time.Now()
	copied := *t
	f.teachers[t.ID] = &copied
	return nil
}

type fakeQuestionStore struct {
	mu          sync.Mutex
	byClassroom map[uuid.UUID][]model.Question
	bank        map[string][]model.Question
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{
		byClassroom: make(map[uuid.UUID][]model.Question),
		bank:        make(map[string][]model.Question),
	}
}

func (f *fakeQuestionStore) ListByClassroom(_ context.Context, classroomID uuid.UUID) ([]model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Question(nil), f.byClassroom[classroomID]...), nil
}

func (f *fakeQuestionStore) GetByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make(map[uuid.UUID]model.Question)
	for _, questions := range f.byClassroom {
		for _, q := range questions {
			if want[q.ID] {
				out[q.ID] = q
			}
		}
	}
	for _, questions := range f.bank {
		for _, q := range questions {
			if want[q.ID] {
				out[q.ID] = q
			}
		}
	}
	return out, nil
}

func (f *fakeQuestionStore) SampleByCategory(_ context.Context, category string, n int) ([]model.Question, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	questions := f.bank[category]
	if len(questions) < n {
		return append([]model.Question(nil), questions...), nil
	}
	return append([]model.Question(nil), questions[:n]...), nil
}

func (f *fakeQuestionStore) ListCategories(_ context.Context) (map[string]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]int, len(f.bank))
	for category, questions := range f.bank {
		out[category] = len(questions)
	}
	return out, nil
}

type fakeSubmissionStore struct {
	mu          sync.Mutex
	submissions map[uuid.UUID]*model.ExamSubmission
	// answers receives the answer log together with the completion,
	// mirroring the repository's single-transaction contract.
	answers *fakeAnswerStore
}

func newFakeSubmissionStore(answers *fakeAnswerStore) *fakeSubmissionStore {
	return &fakeSubmissionStore{
		submissions: make(map[uuid.UUID]*model.ExamSubmission),
		answers:     answers,
	}
}

func (f *fakeSubmissionStore) put(s *model.ExamSubmission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.submissions[s.ID] = s
}

func (f *fakeSubmissionStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submissions)
}

func (f *fakeSubmissionStore) GetByClassroomAndStudent(_ context.Context, classroomID uuid.UUID, studentID int) (*model.ExamSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.submissions {
		if s.ClassroomID == classroomID && s.StudentID == studentID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSubmissionStore) GetByID(_ context.Context, id uuid.UUID) (*model.ExamSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.submissions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSubmissionStore) Create(_ context.Context, s *model.ExamSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.submissions {
		if existing.ClassroomID == s.ClassroomID && existing.StudentID == s.StudentID {
			return repository.ErrDuplicate
		}
	}
	s.ID = uuid.New()
	copied := *s
	f.submissions[s.ID] = &copied
	return nil
}

func (f *fakeSubmissionStore) CompleteWithAnswers(_ context.Context, id uuid.UUID, score int, submitTime time.Time, answers []model.ExamAnswer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.submissions[id]
	if !ok {
		return repository.ErrNotFound
	}
	if f.answers != nil {
		f.answers.add(answers)
	}
	s.TotalScore = score
	s.SubmitTime = &submitTime
	s.Status = model.SubmissionStatusCompleted
	return nil
}

func (f *fakeSubmissionStore) ListByClassroom(_ context.Context, classroomID uuid.UUID) ([]model.ExamSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ExamSubmission
	for _, s := range f.submissions {
		if s.ClassroomID == classroomID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeAnswerStore struct {
	mu      sync.Mutex
	answers map[uuid.UUID][]model.ExamAnswer
}

func newFakeAnswerStore() *fakeAnswerStore {
	return &fakeAnswerStore{answers: make(map[uuid.UUID][]model.ExamAnswer)}
}

func (f *fakeAnswerStore) add(answers []model.ExamAnswer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range answers {
		a.ID = uuid.New()
		f.answers[a.SubmissionID] = append(f.answers[a.SubmissionID], a)
	}
}

func (f *fakeAnswerStore) ListBySubmission(_ context.Context, submissionID uuid.UUID) ([]model.ExamAnswer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.ExamAnswer(nil), f.answers[submissionID]...), nil
}
