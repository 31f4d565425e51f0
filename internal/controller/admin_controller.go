package controller

import (
	"context"
	"errors"
	"linguacert_backend/internal/model"
	"linguacert_backend/internal/service"
	"linguacert_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// VisitTracker records site visits and lists them for the back office.
type VisitTracker interface {
	Track(ctx context.Context, ip string) (*model.Visit, error)
	List() ([]model.Visit, error)
}

type AdminController struct {
	Admin  *service.AdminService
	Visits VisitTracker
	Exams  *service.ExamService
}

func NewAdminController(admin *service.AdminService, visits VisitTracker, exams *service.ExamService) *AdminController {
	return &AdminController{Admin: admin, Visits: visits, Exams: exams}
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 管理员登录
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param body body adminLoginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/admin/login [post]
func (ctl *AdminController) Login(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "email and password are required")
		return
	}

	token, err := ctl.Admin.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Error(c, 401, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"token": token})
}

// ListVisits 访问记录
// @Summary List recorded visits
// @Tags admin
// @Produce json
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/visits [get]
func (ctl *AdminController) ListVisits(c *gin.Context) {
	visits, err := ctl.Visits.List()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"visits": visits})
}

// UserCount 注册用户数
// @Summary Registered user count
// @Tags admin
// @Produce json
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/users/count [get]
func (ctl *AdminController) UserCount(c *gin.Context) {
	count, err := ctl.Admin.UserCount()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"count": count})
}

// ListResults 全部考试结果
// @Summary All exam results
// @Tags admin
// @Produce json
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/results [get]
func (ctl *AdminController) ListResults(c *gin.Context) {
	results, err := ctl.Exams.AllResults(c.Request.Context())
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"results": results})
}

// ListSchedules 预约列表
// @Summary List consultation bookings
// @Tags admin
// @Produce json
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/admin/schedules [get]
func (ctl *AdminController) ListSchedules(c *gin.Context) {
	schedules, err := ctl.Admin.ListSchedules()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"schedules": schedules})
}

// CreateSchedule 创建预约
// @Summary Book a consultation
// @Tags public
// @Accept json
// @Produce json
// @Param body body service.ScheduleRequest true "Booking"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/schedule [post]
func (ctl *AdminController) CreateSchedule(c *gin.Context) {
	var req service.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "date, time, email, phone and meetingPlatform are required")
		return
	}

	schedule, err := ctl.Admin.CreateSchedule(req)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Created(c, schedule)
}

type trackVisitRequest struct {
	IP string `json:"ip" binding:"required"`
}

// TrackVisit 记录访问
// @Summary Record a site visit
// @Tags public
// @Accept json
// @Produce json
// @Param body body trackVisitRequest true "Visitor IP"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/track-visit [post]
func (ctl *AdminController) TrackVisit(c *gin.Context) {
	var req trackVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "ip is required")
		return
	}

	visit, err := ctl.Visits.Track(c.Request.Context(), req.IP)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"visit": visit})
}
