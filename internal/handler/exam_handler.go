package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/istadem2077/turanmath-backend/internal/model"
	"github.com/istadem2077/turanmath-backend/internal/response"
	"github.com/istadem2077/turanmath-backend/internal/service"
	"github.com/istadem2077/turanmath-backend/internal/validator"
)

// ExamHandler handles the student-facing exam endpoints.
type ExamHandler struct {
	examService *service.ExamService
}

// NewExamHandler creates a new ExamHandler.
func NewExamHandler(examService *service.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

// StartExam godoc
// POST /api/v1/exam/start
// Starts or resumes an exam session. Idempotent per (classroom, student):
// a repeat call returns the same submission with its original start time.
func (h *ExamHandler) StartExam(c *gin.Context) {
	var req model.StartExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	payload, err := h.examService.StartExam(c.Request.Context(), req.AccessCode, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidAccessCode):
			response.Fail(c, http.StatusNotFound, response.ErrInvalidAccessCode)
		case errors.Is(err, service.ErrExamNotActive):
			response.Fail(c, http.StatusForbidden, response.ErrExamNotActive)
		case errors.Is(err, service.ErrStudentNotRegistered):
			response.Fail(c, http.StatusNotFound, response.ErrNotRegistered)
		case errors.Is(err, service.ErrNotClassroomMember):
			response.Fail(c, http.StatusForbidden, response.ErrNotRegistered)
		case errors.Is(err, service.ErrExamCompleted):
			response.Fail(c, http.StatusConflict, response.ErrAlreadyCompleted)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, payload)
}

// SubmitExam godoc
// POST /api/v1/exam/submit
// Scores the submitted answers and completes the submission. Not
// idempotent: a second call is rejected with a conflict.
func (h *ExamHandler) SubmitExam(c *gin.Context) {
	var req model.SubmitExamRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	score, err := h.examService.SubmitExam(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		case errors.Is(err, service.ErrAlreadySubmitted):
			response.Fail(c, http.StatusConflict, response.ErrAlreadySubmitted)
		case errors.Is(err, service.ErrTimeLimitExceeded):
			response.Fail(c, http.StatusConflict, response.ErrTimeLimitExceeded)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, score)
}
