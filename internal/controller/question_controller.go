package controller

import (
	"errors"
	"linguacert_backend/internal/service"
	"linguacert_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	Service *service.QuestionService
}

func NewQuestionController(svc *service.QuestionService) *QuestionController {
	return &QuestionController{Service: svc}
}

func questionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidStep),
		errors.Is(err, util.ErrInvalidOptions),
		errors.Is(err, util.ErrInvalidCorrectIdx),
		errors.Is(err, util.ErrQuestionLimit):
		util.BadRequest(c, err.Error())
	case errors.Is(err, util.ErrQuestionNotFound):
		util.NotFound(c)
	default:
		util.LogInternalError(c, err)
	}
}

// Create 创建题目
// @Summary Create a question
// @Tags admin
// @Accept json
// @Produce json
// @Param body body service.QuestionRequest true "Question"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/questions [post]
func (ctl *QuestionController) Create(c *gin.Context) {
	var req service.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid payload")
		return
	}

	q, err := ctl.Service.Create(req)
	if err != nil {
		questionError(c, err)
		return
	}

	util.Created(c, q)
}

// Update 更新题目
// @Summary Update a question
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Question id"
// @Param body body service.QuestionRequest true "Question"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/questions/{id} [put]
func (ctl *QuestionController) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid question id")
		return
	}

	var req service.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "invalid payload")
		return
	}

	q, err := ctl.Service.Update(uint(id), req)
	if err != nil {
		questionError(c, err)
		return
	}

	util.Success(c, q)
}

// Delete 删除题目
// @Summary Delete a question
// @Tags admin
// @Produce json
// @Param id path int true "Question id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/questions/{id} [delete]
func (ctl *QuestionController) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid question id")
		return
	}

	if err := ctl.Service.Delete(uint(id)); err != nil {
		questionError(c, err)
		return
	}

	util.Success(c, gin.H{"deleted": id})
}

// List 按步骤与级别列出题目
// @Summary List questions for a step and level
// @Tags admin
// @Produce json
// @Param step query int true "Step (1-3)"
// @Param level query string true "Level"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/questions [get]
func (ctl *QuestionController) List(c *gin.Context) {
	step, err := strconv.Atoi(c.Query("step"))
	level := c.Query("level")
	if err != nil || level == "" {
		util.BadRequest(c, "step and level are required")
		return
	}

	qs, err := ctl.Service.List(step, level)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"questions": qs})
}

// Count 题库容量
// @Summary Question count for a step and level
// @Tags admin
// @Produce json
// @Param step query int true "Step (1-3)"
// @Param level query string true "Level"
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/questions/count [get]
func (ctl *QuestionController) Count(c *gin.Context) {
	step, err := strconv.Atoi(c.Query("step"))
	level := c.Query("level")
	if err != nil || level == "" {
		util.BadRequest(c, "step and level are required")
		return
	}

	count, err := ctl.Service.Count(step, level)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"count": count, "limit": service.MaxQuestionsPerStepLevel})
}
