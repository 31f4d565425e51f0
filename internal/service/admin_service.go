package service

import (
	"errors"
	"linguacert_backend/internal/config"
	"linguacert_backend/internal/model"
	"linguacert_backend/internal/repository"
	"linguacert_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AdminService backs the back-office endpoints. Admin accounts are separate
// from exam takers and authenticate with a short-lived admin token.
type AdminService struct {
	Admins    *repository.AdminRepository
	Users     *repository.UserRepository
	Schedules *repository.ScheduleRepository
	JWT       *config.JWTConfig
}

func NewAdminService(admins *repository.AdminRepository, users *repository.UserRepository,
	schedules *repository.ScheduleRepository, jwtCfg *config.JWTConfig) *AdminService {
	return &AdminService{Admins: admins, Users: users, Schedules: schedules, JWT: jwtCfg}
}

func (s *AdminService) Login(email, password string) (string, error) {
	admin, err := s.Admins.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", util.ErrInvalidCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	return util.GenerateJWT(admin.ID, admin.Email, util.TokenAdmin, s.JWT.Secret, s.JWT.AdminExpire)
}

func (s *AdminService) UserCount() (int64, error) {
	return s.Users.Count()
}

type ScheduleRequest struct {
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Phone           string `json:"phone" binding:"required"`
	Description     string `json:"description"`
	MeetingPlatform string `json:"meetingPlatform" binding:"required"`
}

func (s *AdminService) CreateSchedule(req ScheduleRequest) (*model.Schedule, error) {
	schedule := &model.Schedule{
		Date:            req.Date,
		Time:            req.Time,
		Email:           req.Email,
		Phone:           req.Phone,
		Description:     req.Description,
		MeetingPlatform: req.MeetingPlatform,
	}
	if err := s.Schedules.Create(schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

func (s *AdminService) ListSchedules() ([]model.Schedule, error) {
	return s.Schedules.FindAll()
}
