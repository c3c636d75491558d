package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/istadem2077/turanmath-backend/internal/model"
)

type classroomFixture struct {
	classrooms *fakeClassroomStore
	questions  *fakeQuestionStore
	teachers   *fakeTeacherStore
	students   *fakeStudentStore
	service    *ClassroomService

	teacher *model.Teacher
}

func newClassroomFixture(t *testing.T) *classroomFixture {
	t.Helper()
	ctx := context.Background()

	f := &classroomFixture{
		classrooms: newFakeClassroomStore(),
		questions:  newFakeQuestionStore(),
		teachers:   newFakeTeacherStore(),
		students:   newFakeStudentStore(),
	}
	f.service = NewClassroomService(f.classrooms, f.questions, f.teachers, f.students, nil, zerolog.Nop())

	f.teacher = &model.Teacher{Email: "teacher@example.com", FullName: "Grace Hopper"}
	if err := f.teachers.Create(ctx, f.teacher); err != nil {
		t.Fatalf("create teacher: %v", err)
	}

	for i := 0; i < 5; i++ {
		f.questions.bank["algebra"] = append(f.questions.bank["algebra"], model.Question{
			ID:               uuid.New(),
			Category:         "algebra",
			Content:          "algebra question",
			Options:          []model.QuestionOption{{Key: "A"}, {Key: "B"}},
			CorrectOptionKey: "A",
		})
	}
	for i := 0; i < 2; i++ {
		f.questions.bank["geometry"] = append(f.questions.bank["geometry"], model.Question{
			ID:               uuid.New(),
			Category:         "geometry",
			Content:          "geometry question",
			Options:          []model.QuestionOption{{Key: "A"}, {Key: "B"}},
			CorrectOptionKey: "B",
		})
	}

	return f
}

func TestCreateClassroom(t *testing.T) {
	f := newClassroomFixture(t)
	ctx := context.Background()

	classroom, err := f.service.Create(ctx, f.teacher.ID, &model.CreateClassroomRequest{
		Title:           "Midterm",
		DurationMinutes: 45,
		CategoryCounts:  map[string]int{"algebra": 3, "geometry": 2},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !classroom.IsActive {
		t.Error("new classroom should be active")
	}
	if len(classroom.AccessCode) != 6 {
		t.Errorf("access code %q, want 6 characters", classroom.AccessCode)
	}
	if classroom.AccessCode != strings.ToUpper(classroom.AccessCode) {
		t.Errorf("access code %q is not upper-case", classroom.AccessCode)
	}

	frozen := f.classrooms.questionIDs[classroom.ID]
	if len(frozen) != 5 {
		t.Errorf("frozen question set = %d, want 5", len(frozen))
	}
}

func TestCreateClassroomBankShortage(t *testing.T) {
	f := newClassroomFixture(t)

	_, err := f.service.Create(context.Background(), f.teacher.ID, &model.CreateClassroomRequest{
		Title:           "Midterm",
		DurationMinutes: 45,
		CategoryCounts:  map[string]int{"geometry": 3}, // only 2 in the bank
	})
	if !errors.Is(err, ErrBankShortage) {
		t.Errorf("err = %v, want ErrBankShortage", err)
	}
}

func TestCreateClassroomUnknownTeacher(t *testing.T) {
	f := newClassroomFixture(t)

	_, err := f.service.Create(context.Background(), 999, &model.CreateClassroomRequest{
		Title:           "Midterm",
		DurationMinutes: 45,
		CategoryCounts:  map[string]int{"algebra": 1},
	})
	if !errors.Is(err, ErrTeacherNotFound) {
		t.Errorf("err = %v, want ErrTeacherNotFound", err)
	}
}

func TestSetActiveOwnership(t *testing.T) {
	f := newClassroomFixture(t)
	ctx := context.Background()

	classroom := &model.Classroom{TeacherID: f.teacher.ID, Title: "Quiz", AccessCode: "QUIZ01", DurationMinutes: 10, IsActive: true}
	f.classrooms.put(classroom)

	if err := f.service.SetActive(ctx, classroom.ID, f.teacher.ID, false); err != nil {
		t.Fatalf("SetActive as owner: %v", err)
	}
	stored, _ := f.classrooms.GetByID(ctx, classroom.ID)
	if stored.IsActive {
		t.Error("classroom still active after close")
	}

	if err := f.service.SetActive(ctx, classroom.ID, 999, true); !errors.Is(err, ErrNotClassroomOwner) {
		t.Errorf("foreign teacher: err = %v, want ErrNotClassroomOwner", err)
	}
	if err := f.service.SetActive(ctx, uuid.New(), f.teacher.ID, true); !errors.Is(err, ErrClassroomNotFound) {
		t.Errorf("unknown classroom: err = %v, want ErrClassroomNotFound", err)
	}
}

func TestRegisterStudent(t *testing.T) {
	f := newClassroomFixture(t)
	ctx := context.Background()

	classroom := &model.Classroom{TeacherID: f.teacher.ID, Title: "Quiz", AccessCode: "QUIZ01", DurationMinutes: 10, IsActive: true}
	f.classrooms.put(classroom)

	student := &model.Student{Email: "ada@example.com", FullName: "Ada"}
	if err := f.students.Create(ctx, student); err != nil {
		t.Fatalf("create student: %v", err)
	}

	if err := f.service.RegisterStudent(ctx, classroom.ID, f.teacher.ID, "Ada@Example.com"); err != nil {
		t.Fatalf("RegisterStudent: %v", err)
	}
	registered, _ := f.classrooms.IsStudentRegistered(ctx, classroom.ID, student.ID)
	if !registered {
		t.Error("student not on the roster after RegisterStudent")
	}

	if err := f.service.RegisterStudent(ctx, classroom.ID, f.teacher.ID, "ghost@example.com"); !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("unknown student: err = %v, want ErrStudentNotFound", err)
	}
}

func TestListByTeacherIncludesRosterSize(t *testing.T) {
	f := newClassroomFixture(t)
	ctx := context.Background()

	classroom := &model.Classroom{TeacherID: f.teacher.ID, Title: "Quiz", AccessCode: "QUIZ01", DurationMinutes: 10, IsActive: true}
	f.classrooms.put(classroom)
	f.classrooms.AddStudent(ctx, classroom.ID, 1)
	f.classrooms.AddStudent(ctx, classroom.ID, 2)

	list, err := f.service.ListByTeacher(ctx, f.teacher.ID)
	if err != nil {
		t.Fatalf("ListByTeacher: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("classrooms = %d, want 1", len(list))
	}
	if list[0].StudentCount != 2 {
		t.Errorf("student count = %d, want 2", list[0].StudentCount)
	}
}
