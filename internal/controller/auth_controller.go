package controller

import (
	"errors"
	"linguacert_backend/internal/service"
	"linguacert_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

func authError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrEmailVerified),
		errors.Is(err, util.ErrCodeInvalid),
		errors.Is(err, util.ErrCodeExpired):
		util.BadRequest(c, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials),
		errors.Is(err, util.ErrInvalidToken):
		util.Error(c, 401, err.Error())
	case errors.Is(err, util.ErrEmailNotVerified),
		errors.Is(err, util.ErrRegistrationNeeded):
		util.Forbidden(c, err.Error())
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(c)
	default:
		util.LogInternalError(c, err)
	}
}

type emailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type emailCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6"`
}

// SendVerificationCode 发送邮箱验证码
// @Summary Send an email verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body emailRequest true "Email"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/auth/send-verification-code [post]
func (ctl *AuthController) SendVerificationCode(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "a valid email is required")
		return
	}

	if err := ctl.Service.SendVerificationCode(c.Request.Context(), req.Email); err != nil {
		authError(c, err)
		return
	}

	util.Success(c, gin.H{"sent": true})
}

// VerifyEmail 校验邮箱验证码
// @Summary Confirm an email with the mailed code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body emailCodeRequest true "Email and code"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/auth/confirm-code [post]
func (ctl *AuthController) VerifyEmail(c *gin.Context) {
	var req emailCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "email and 6-digit code are required")
		return
	}

	if err := ctl.Service.VerifyEmail(c.Request.Context(), req.Email, req.Code); err != nil {
		authError(c, err)
		return
	}

	util.Success(c, gin.H{"verified": true})
}

// Register 完成注册
// @Summary Complete registration for a verified email
// @Tags auth
// @Accept json
// @Produce json
// @Param body body service.RegisterRequest true "Profile and password"
// @Success 201 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/auth/register [post]
func (ctl *AuthController) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "name, email and a password of at least 8 characters are required")
		return
	}

	user, err := ctl.Service.Register(c.Request.Context(), req)
	if err != nil {
		authError(c, err)
		return
	}

	util.Created(c, user)
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login 密码校验并发送一次性登录码
// @Summary Log in with email and password
// @Description On success a one-time code is mailed; tokens are issued by verify-otp.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/auth/login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "email and password are required")
		return
	}

	if err := ctl.Service.Login(c.Request.Context(), req.Email, req.Password); err != nil {
		authError(c, err)
		return
	}

	util.Success(c, gin.H{"otpSent": true})
}

// VerifyOTP 校验一次性登录码并签发令牌
// @Summary Exchange the mailed one-time code for tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param body body emailCodeRequest true "Email and code"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/auth/verify-otp [post]
func (ctl *AuthController) VerifyOTP(c *gin.Context) {
	var req emailCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "email and 6-digit code are required")
		return
	}

	tokens, user, err := ctl.Service.VerifyOTP(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		authError(c, err)
		return
	}

	util.Success(c, gin.H{"tokens": tokens, "user": user})
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Refresh 轮换令牌
// @Summary Rotate the token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param body body refreshRequest true "Refresh token"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/auth/refresh-token [post]
func (ctl *AuthController) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "refreshToken is required")
		return
	}

	tokens, err := ctl.Service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		authError(c, err)
		return
	}

	util.Success(c, gin.H{"tokens": tokens})
}

// Logout 退出登录
// @Summary Revoke the stored refresh token
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/auth/logout [post]
func (ctl *AuthController) Logout(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	if err := ctl.Service.Logout(c.Request.Context(), claims.UserID); err != nil {
		authError(c, err)
		return
	}

	util.Success(c, gin.H{"loggedOut": true})
}

// ForgotPassword 发送重置密码验证码
// @Summary Send a password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body emailRequest true "Email"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/auth/forgot-password [post]
func (ctl *AuthController) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "a valid email is required")
		return
	}

	if err := ctl.Service.SendResetCode(c.Request.Context(), req.Email); err != nil {
		authError(c, err)
		return
	}

	util.Success(c, gin.H{"sent": true})
}

// VerifyResetCode 校验重置密码验证码
// @Summary Check a password reset code without consuming it
// @Tags auth
// @Accept json
// @Produce json
// @Param body body emailCodeRequest true "Email and code"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/auth/verify-reset-code [post]
func (ctl *AuthController) VerifyResetCode(c *gin.Context) {
	var req emailCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "email and 6-digit code are required")
		return
	}

	if err := ctl.Service.VerifyResetCode(c.Request.Context(), req.Email, req.Code); err != nil {
		authError(c, err)
		return
	}

	util.Success(c, gin.H{"valid": true})
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ResetPassword 重置密码
// @Summary Reset the password with the mailed code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body resetPasswordRequest true "Email, code and new password"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/auth/reset-password-with-code [post]
func (ctl *AuthController) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "email, 6-digit code and a new password of at least 8 characters are required")
		return
	}

	if err := ctl.Service.ResetPassword(c.Request.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		authError(c, err)
		return
	}

	util.Success(c, gin.H{"reset": true})
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangePassword 修改密码
// @Summary Change the password while signed in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body changePasswordRequest true "Old and new password"
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Security BearerAuth
// @Router /api/auth/reset-password [post]
func (ctl *AuthController) ChangePassword(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "oldPassword and a newPassword of at least 8 characters are required")
		return
	}

	if err := ctl.Service.ChangePassword(c.Request.Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		authError(c, err)
		return
	}

	util.Success(c, gin.H{"changed": true})
}

// Me 当前用户信息
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Success 200 {object} util.Response
// @Security BearerAuth
// @Router /api/auth/me [get]
func (ctl *AuthController) Me(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	user, err := ctl.Service.GetUser(claims.UserID)
	if err != nil {
		authError(c, err)
		return
	}

	util.Success(c, user)
}
