package controller

import (
	"errors"
	"linguacert_backend/internal/service"
	"linguacert_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	Exams     *service.ExamService
	Questions *service.QuestionService
}

func NewExamController(exams *service.ExamService, questions *service.QuestionService) *ExamController {
	return &ExamController{Exams: exams, Questions: questions}
}

// GetQuestions 获取考试题目
// @Summary Draw the question set for a step
// @Description Returns a random sample of questions across the step's two levels. Correct answers are never included.
// @Tags exam
// @Produce json
// @Param step query int true "Step (1-3)"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/exam/questions [get]
func (ctl *ExamController) GetQuestions(c *gin.Context) {
	step, err := strconv.Atoi(c.Query("step"))
	if err != nil {
		util.BadRequest(c, util.ErrInvalidStep.Error())
		return
	}

	questions, err := ctl.Questions.SampleForStep(step)
	if err != nil {
		if errors.Is(err, util.ErrInvalidStep) {
			util.BadRequest(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"questions": questions})
}

// Submit 提交考试答卷
// @Summary Submit exam answers
// @Description Scores the submission, applies the certification policy, stores the result and renders the certificate when one is earned.
// @Tags exam
// @Accept json
// @Produce json
// @Param body body service.SubmitRequest true "Submission"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/exam/submit [post]
func (ctl *ExamController) Submit(c *gin.Context) {
	var req service.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid payload")
		return
	}
	if req.Name == "" || req.Step == 0 || req.Answers == nil {
		util.BadRequest(c, "name, step and answers are required")
		return
	}

	// 已登录用户的提交归属其账号
	if claims := util.GetUserFromContext(c); claims != nil && req.UserID == nil {
		uid := strconv.FormatUint(uint64(claims.UserID), 10)
		req.UserID = &uid
	}

	resp, err := ctl.Exams.Submit(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, util.ErrRetakeNotAllowed) {
			util.Forbidden(c, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, resp)
}

// LatestResult 查询最新成绩
// @Summary Latest result for a user and step
// @Tags exam
// @Produce json
// @Param userId query string true "User id"
// @Param step query int true "Step (1-3)"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/exam/latest-result [get]
func (ctl *ExamController) LatestResult(c *gin.Context) {
	userID := c.Query("userId")
	step, err := strconv.Atoi(c.Query("step"))
	if userID == "" || err != nil {
		util.BadRequest(c, "userId and step are required")
		return
	}

	result, err := ctl.Exams.LatestResult(userID, step)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"result": result})
}

// UserExams 用户考试历史
// @Summary All exam attempts for a user
// @Tags exam
// @Produce json
// @Param userId path string true "User id"
// @Success 200 {object} util.Response
// @Router /api/exam/user-exams/{userId} [get]
func (ctl *ExamController) UserExams(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		util.BadRequest(c, "userId is required")
		return
	}

	exams, err := ctl.Exams.UserExams(c.Request.Context(), userID)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"exams": exams})
}
