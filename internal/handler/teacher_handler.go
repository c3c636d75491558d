package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/istadem2077/turanmath-backend/internal/middleware"
	"github.com/istadem2077/turanmath-backend/internal/model"
	"github.com/istadem2077/turanmath-backend/internal/response"
	"github.com/istadem2077/turanmath-backend/internal/service"
	"github.com/istadem2077/turanmath-backend/internal/validator"
)

// TeacherHandler handles the teacher-facing classroom endpoints.
type TeacherHandler struct {
	classroomService *service.ClassroomService
	examService      *service.ExamService
	studentService   *service.StudentService
}

// NewTeacherHandler creates a new TeacherHandler.
func NewTeacherHandler(
	classroomService *service.ClassroomService,
	examService *service.ExamService,
	studentService *service.StudentService,
) *TeacherHandler {
	return &TeacherHandler{
		classroomService: classroomService,
		examService:      examService,
		studentService:   studentService,
	}
}

// CreateClassroom godoc
// POST /api/v1/teacher/classrooms
func (h *TeacherHandler) CreateClassroom(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CreateClassroomRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	classroom, err := h.classroomService.Create(c.Request.Context(), claims.TeacherID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTeacherNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrBankShortage):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrBankShortage)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"classroom": classroom})
}

// ListClassrooms godoc
// GET /api/v1/teacher/classrooms
func (h *TeacherHandler) ListClassrooms(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	classrooms, err := h.classroomService.ListByTeacher(c.Request.Context(), claims.TeacherID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"classrooms": classrooms})
}

// GetClassroomResults godoc
// GET /api/v1/teacher/classrooms/:classroom_id/results
// Returns one entry per submission, regardless of status.
func (h *TeacherHandler) GetClassroomResults(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	classroomID, err := uuid.Parse(c.Param("classroom_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.verifyOwner(c, classroomID, claims.TeacherID); err != nil {
		return
	}

	results, err := h.examService.GetClassroomResults(c.Request.Context(), classroomID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// ActivateClassroom godoc
// POST /api/v1/teacher/classrooms/:classroom_id/activate
func (h *TeacherHandler) ActivateClassroom(c *gin.Context) {
	h.setActive(c, true)
}

// EndClassroom godoc
// POST /api/v1/teacher/classrooms/:classroom_id/end
// Closes the exam window; subsequent Start calls are rejected.
func (h *TeacherHandler) EndClassroom(c *gin.Context) {
	h.setActive(c, false)
}

func (h *TeacherHandler) setActive(c *gin.Context, active bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	classroomID, err := uuid.Parse(c.Param("classroom_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.classroomService.SetActive(c.Request.Context(), classroomID, claims.TeacherID, active); err != nil {
		failClassroomError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"is_active": active})
}

// RegisterStudent godoc
// POST /api/v1/teacher/classrooms/:classroom_id/students
// Adds an existing student to the classroom roster.
func (h *TeacherHandler) RegisterStudent(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	classroomID, err := uuid.Parse(c.Param("classroom_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.RegisterStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.classroomService.RegisterStudent(c.Request.Context(), classroomID, claims.TeacherID, req.Email); err != nil {
		failClassroomError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"registered": true})
}

// CreateStudent godoc
// POST /api/v1/teacher/students
// Creates a student record so the student can be placed on rosters.
func (h *TeacherHandler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	student, err := h.studentService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.Fail(c, http.StatusConflict, response.ErrEmailTaken)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"student": student})
}

// ListCategories godoc
// GET /api/v1/teacher/question-bank/categories
func (h *TeacherHandler) ListCategories(c *gin.Context) {
	categories, err := h.classroomService.ListCategories(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

func (h *TeacherHandler) verifyOwner(c *gin.Context, classroomID uuid.UUID, teacherID int) error {
	err := h.classroomService.VerifyOwner(c.Request.Context(), classroomID, teacherID)
	if err != nil {
		failClassroomError(c, err)
	}
	return err
}

// failClassroomError maps classroom service errors to response codes.
func failClassroomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassroomNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, service.ErrNotClassroomOwner):
		response.Fail(c, http.StatusForbidden, response.ErrNotClassroomOwner)
	case errors.Is(err, service.ErrStudentNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
