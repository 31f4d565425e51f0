package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"linguacert_backend/internal/config"
	"linguacert_backend/internal/model"
	"linguacert_backend/internal/util"
	"math/big"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CodeTTL is how long email verification, login OTP and password reset codes
// stay valid.
const CodeTTL = 10 * time.Minute

const (
	codePrefixVerify = "verify:"
	codePrefixOTP    = "otp:"
	codePrefixReset  = "reset:"
)

type UserStore interface {
	Create(user *model.User) error
	FindByEmail(email string) (*model.User, error)
	FindByID(id uint) (*model.User, error)
	Update(user *model.User) error
}

type MailSender interface {
	SendVerificationCode(to, code string) error
	SendLoginOTP(to, code string) error
	SendResetCode(to, code string) error
}

// AuthService implements the two-phase signup (verify email, then register)
// and the OTP login flow. All codes live in the code store under a prefixed
// key per purpose, so a verification code can never pass as a login OTP.
type AuthService struct {
	Users UserStore
	Codes CodeStore
	Mail  MailSender
	JWT   *config.JWTConfig
}

func NewAuthService(users UserStore, codes CodeStore, mail MailSender, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{Users: users, Codes: codes, Mail: mail, JWT: jwtCfg}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SendVerificationCode starts signup. A bare user row is created on first
// contact so the email owns its slot before registration completes.
func (s *AuthService) SendVerificationCode(ctx context.Context, email string) error {
	user, err := s.Users.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if user != nil && user.EmailVerified {
		return util.ErrEmailVerified
	}
	if user == nil {
		if err := s.Users.Create(&model.User{Email: email}); err != nil {
			return err
		}
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.Codes.Set(ctx, codePrefixVerify+email, code, CodeTTL); err != nil {
		return err
	}
	return s.Mail.SendVerificationCode(email, code)
}

func (s *AuthService) checkCode(ctx context.Context, key, code string) error {
	stored, err := s.Codes.Get(ctx, key)
	if err != nil {
		return err
	}
	if stored == "" {
		return util.ErrCodeExpired
	}
	if stored != code {
		return util.ErrCodeInvalid
	}
	return s.Codes.Del(ctx, key)
}

func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	if err := s.checkCode(ctx, codePrefixVerify+email, code); err != nil {
		return err
	}

	user, err := s.Users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	user.EmailVerified = true
	return s.Users.Update(user)
}

type RegisterRequest struct {
	Name     string     `json:"name" binding:"required"`
	Email    string     `json:"email" binding:"required,email"`
	Password string     `json:"password" binding:"required,min=8"`
	Country  string     `json:"country"`
	DOB      *time.Time `json:"dob"`
}

// Register fills in the account created during email verification. It only
// succeeds after the email is verified.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	user, err := s.Users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEmailNotVerified
		}
		return nil, err
	}
	if !user.EmailVerified {
		return nil, util.ErrEmailNotVerified
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user.Name = req.Name
	user.Password = string(hash)
	user.Country = req.Country
	user.DOB = req.DOB
	if err := s.Users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the password and mails a one-time code. No tokens are issued
// until the code comes back through VerifyOTP.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	user, err := s.Users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrInvalidCredentials
		}
		return err
	}
	if user.Password == "" {
		return util.ErrRegistrationNeeded
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return util.ErrInvalidCredentials
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.Codes.Set(ctx, codePrefixOTP+email, code, CodeTTL); err != nil {
		return err
	}
	return s.Mail.SendLoginOTP(email, code)
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s *AuthService) issueTokens(user *model.User) (*TokenPair, error) {
	access, err := util.GenerateJWT(user.ID, user.Email, util.TokenAccess, s.JWT.Secret, s.JWT.AccessExpire)
	if err != nil {
		return nil, err
	}
	refresh, err := util.GenerateJWT(user.ID, user.Email, util.TokenRefresh, s.JWT.Secret, s.JWT.RefreshExpire)
	if err != nil {
		return nil, err
	}

	// 保存刷新令牌, 旧令牌随之失效
	user.RefreshToken = refresh
	if err := s.Users.Update(user); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyOTP completes login and issues the token pair.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (*TokenPair, *model.User, error) {
	if err := s.checkCode(ctx, codePrefixOTP+email, code); err != nil {
		return nil, nil, err
	}

	user, err := s.Users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrUserNotFound
		}
		return nil, nil, err
	}

	tokens, err := s.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return tokens, user, nil
}

// Refresh rotates the token pair. The presented token must be a refresh
// token and must match the one stored on the account.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := util.ParseJWT(refreshToken, s.JWT.Secret)
	if err != nil {
		return nil, util.ErrInvalidToken
	}
	if claims.TokenType != util.TokenRefresh {
		return nil, util.ErrInvalidToken
	}

	user, err := s.Users.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidToken
		}
		return nil, err
	}
	if user.RefreshToken != refreshToken {
		return nil, util.ErrInvalidToken
	}

	return s.issueTokens(user)
}

// Logout drops the stored refresh token so the pair cannot be rotated again.
func (s *AuthService) Logout(ctx context.Context, userID uint) error {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	user.RefreshToken = ""
	return s.Users.Update(user)
}

// SendResetCode mails a password reset code to an existing account.
func (s *AuthService) SendResetCode(ctx context.Context, email string) error {
	if _, err := s.Users.FindByEmail(email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	if err := s.Codes.Set(ctx, codePrefixReset+email, code, CodeTTL); err != nil {
		return err
	}
	return s.Mail.SendResetCode(email, code)
}

// VerifyResetCode checks a reset code without consuming it, so the client
// can gate its password form before the final submit.
func (s *AuthService) VerifyResetCode(ctx context.Context, email, code string) error {
	stored, err := s.Codes.Get(ctx, codePrefixReset+email)
	if err != nil {
		return err
	}
	if stored == "" {
		return util.ErrCodeExpired
	}
	if stored != code {
		return util.ErrCodeInvalid
	}
	return nil
}

// ResetPassword swaps the password after code verification and revokes any
// outstanding refresh token.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if err := s.checkCode(ctx, codePrefixReset+email, code); err != nil {
		return err
	}

	user, err := s.Users.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	user.RefreshToken = ""
	return s.Users.Update(user)
}

// ChangePassword is the authenticated variant: the old password stands in
// for the mailed code.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return util.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	user.RefreshToken = ""
	return s.Users.Update(user)
}

// GetUser returns a user profile for display.
func (s *AuthService) GetUser(id uint) (*model.User, error) {
	user, err := s.Users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
