package service

import (
	"context"
	"linguacert_backend/internal/config"
	"linguacert_backend/internal/model"
	"linguacert_backend/internal/util"
	"testing"
	"time"

	"gorm.io/gorm"
)

type fakeUserStore struct {
	byEmail map[string]*model.User
	nextID  uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*model.User), nextID: 1}
}

func (f *fakeUserStore) Create(user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserStore) FindByEmail(email string) (*model.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) FindByID(id uint) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserStore) Update(user *model.User) error {
	f.byEmail[user.Email] = user
	return nil
}

type fakeCodeStore struct {
	codes map[string]string
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: make(map[string]string)}
}

func (f *fakeCodeStore) Set(ctx context.Context, key, code string, ttl time.Duration) error {
	f.codes[key] = code
	return nil
}

func (f *fakeCodeStore) Get(ctx context.Context, key string) (string, error) {
	return f.codes[key], nil
}

func (f *fakeCodeStore) Del(ctx context.Context, key string) error {
	delete(f.codes, key)
	return nil
}

type fakeMailer struct {
	verification map[string]string
	otp          map[string]string
	reset        map[string]string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		verification: make(map[string]string),
		otp:          make(map[string]string),
		reset:        make(map[string]string),
	}
}

func (f *fakeMailer) SendVerificationCode(to, code string) error {
	f.verification[to] = code
	return nil
}

func (f *fakeMailer) SendLoginOTP(to, code string) error {
	f.otp[to] = code
	return nil
}

func (f *fakeMailer) SendResetCode(to, code string) error {
	f.reset[to] = code
	return nil
}

func newAuthService() (*AuthService, *fakeUserStore, *fakeMailer) {
	users := newFakeUserStore()
	mail := newFakeMailer()
	jwtCfg := &config.JWTConfig{
		Secret:        "test-secret",
		AccessExpire:  15 * time.Minute,
		RefreshExpire: 7 * 24 * time.Hour,
		AdminExpire:   time.Hour,
	}
	return NewAuthService(users, newFakeCodeStore(), mail, jwtCfg), users, mail
}

const testEmail = "ada@example.com"

func signUp(t *testing.T, svc *AuthService, mail *fakeMailer) *model.User {
	t.Helper()
	ctx := context.Background()

	if err := svc.SendVerificationCode(ctx, testEmail); err != nil {
		t.Fatalf("SendVerificationCode: %v", err)
	}
	if err := svc.VerifyEmail(ctx, testEmail, mail.verification[testEmail]); err != nil {
		t.Fatalf("VerifyEmail: %v", err)
	}
	user, err := svc.Register(ctx, RegisterRequest{
		Name:     "Ada",
		Email:    testEmail,
		Password: "correct-horse",
		Country:  "UK",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return user
}

func TestSignupFlow(t *testing.T) {
	svc, users, mail := newAuthService()

	user := signUp(t, svc, mail)
	if !user.EmailVerified {
		t.Error("user not marked verified")
	}
	if user.Password == "correct-horse" {
		t.Error("password stored in plaintext")
	}
	if len(users.byEmail) != 1 {
		t.Errorf("users = %d, want 1", len(users.byEmail))
	}
}

func TestSendVerificationCodeRejectsVerifiedEmail(t *testing.T) {
	svc, _, mail := newAuthService()
	signUp(t, svc, mail)

	if err := svc.SendVerificationCode(context.Background(), testEmail); err != util.ErrEmailVerified {
		t.Errorf("err = %v, want ErrEmailVerified", err)
	}
}

func TestVerifyEmailWrongCode(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	if err := svc.SendVerificationCode(ctx, testEmail); err != nil {
		t.Fatalf("SendVerificationCode: %v", err)
	}
	if err := svc.VerifyEmail(ctx, testEmail, "000000"); err != util.ErrCodeInvalid && err != nil {
		// a random collision with 000000 is possible but vanishingly unlikely
		t.Errorf("err = %v, want ErrCodeInvalid", err)
	}
}

func TestVerifyEmailExpiredCode(t *testing.T) {
	svc, _, _ := newAuthService()

	if err := svc.VerifyEmail(context.Background(), testEmail, "123456"); err != util.ErrCodeExpired {
		t.Errorf("err = %v, want ErrCodeExpired", err)
	}
}

func TestRegisterBeforeVerification(t *testing.T) {
	svc, _, _ := newAuthService()

	_, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Ada",
		Email:    testEmail,
		Password: "correct-horse",
	})
	if err != util.ErrEmailNotVerified {
		t.Errorf("err = %v, want ErrEmailNotVerified", err)
	}
}

func TestLoginFlow(t *testing.T) {
	svc, _, mail := newAuthService()
	signUp(t, svc, mail)
	ctx := context.Background()

	if err := svc.Login(ctx, testEmail, "wrong"); err != util.ErrInvalidCredentials {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}

	if err := svc.Login(ctx, testEmail, "correct-horse"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	otp := mail.otp[testEmail]
	if len(otp) != 6 {
		t.Fatalf("otp = %q, want 6 digits", otp)
	}

	tokens, user, err := svc.VerifyOTP(ctx, testEmail, otp)
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("empty token pair")
	}
	if user.RefreshToken != tokens.RefreshToken {
		t.Error("refresh token not stored on the account")
	}

	claims, err := util.ParseJWT(tokens.AccessToken, "test-secret")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.TokenType != util.TokenAccess || claims.Email != testEmail {
		t.Errorf("claims = %+v", claims)
	}

	// a used OTP cannot be replayed
	if _, _, err := svc.VerifyOTP(ctx, testEmail, otp); err != util.ErrCodeExpired {
		t.Errorf("replayed OTP err = %v, want ErrCodeExpired", err)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _, mail := newAuthService()
	signUp(t, svc, mail)
	ctx := context.Background()

	if err := svc.Login(ctx, testEmail, "correct-horse"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	tokens, _, err := svc.VerifyOTP(ctx, testEmail, mail.otp[testEmail])
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}

	if _, err := svc.Refresh(ctx, tokens.AccessToken); err != util.ErrInvalidToken {
		t.Errorf("refresh with access token err = %v, want ErrInvalidToken", err)
	}

	rotated, err := svc.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if rotated.AccessToken == "" {
		t.Error("rotation yielded no access token")
	}
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _, mail := newAuthService()
	user := signUp(t, svc, mail)
	ctx := context.Background()

	if err := svc.Login(ctx, testEmail, "correct-horse"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	tokens, _, err := svc.VerifyOTP(ctx, testEmail, mail.otp[testEmail])
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}

	if err := svc.Logout(ctx, user.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Refresh(ctx, tokens.RefreshToken); err != util.ErrInvalidToken {
		t.Errorf("refresh after logout err = %v, want ErrInvalidToken", err)
	}
}

func TestResetPasswordFlow(t *testing.T) {
	svc, _, mail := newAuthService()
	signUp(t, svc, mail)
	ctx := context.Background()

	if err := svc.SendResetCode(ctx, "nobody@example.com"); err != util.ErrUserNotFound {
		t.Fatalf("unknown email err = %v, want ErrUserNotFound", err)
	}

	if err := svc.SendResetCode(ctx, testEmail); err != nil {
		t.Fatalf("SendResetCode: %v", err)
	}
	if err := svc.ResetPassword(ctx, testEmail, mail.reset[testEmail], "new-password-1"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if err := svc.Login(ctx, testEmail, "correct-horse"); err != util.ErrInvalidCredentials {
		t.Errorf("old password still accepted: %v", err)
	}
	if err := svc.Login(ctx, testEmail, "new-password-1"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestVerifyResetCodeDoesNotConsume(t *testing.T) {
	svc, _, mail := newAuthService()
	signUp(t, svc, mail)
	ctx := context.Background()

	if err := svc.SendResetCode(ctx, testEmail); err != nil {
		t.Fatalf("SendResetCode: %v", err)
	}
	code := mail.reset[testEmail]

	if err := svc.VerifyResetCode(ctx, testEmail, "999999"); err != util.ErrCodeInvalid && err != nil {
		t.Errorf("wrong code err = %v, want ErrCodeInvalid", err)
	}
	if err := svc.VerifyResetCode(ctx, testEmail, code); err != nil {
		t.Fatalf("VerifyResetCode: %v", err)
	}
	// the check must not burn the code
	if err := svc.ResetPassword(ctx, testEmail, code, "new-password-1"); err != nil {
		t.Fatalf("ResetPassword after check: %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, mail := newAuthService()
	user := signUp(t, svc, mail)
	ctx := context.Background()

	if err := svc.ChangePassword(ctx, user.ID, "wrong", "new-password-1"); err != util.ErrInvalidCredentials {
		t.Fatalf("wrong old password err = %v, want ErrInvalidCredentials", err)
	}
	if err := svc.ChangePassword(ctx, user.ID, "correct-horse", "new-password-1"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if err := svc.Login(ctx, testEmail, "new-password-1"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestLoginBeforeRegistration(t *testing.T) {
	svc, _, _ := newAuthService()
	ctx := context.Background()

	// email verified but registration never completed
	if err := svc.SendVerificationCode(ctx, testEmail); err != nil {
		t.Fatalf("SendVerificationCode: %v", err)
	}

	if err := svc.Login(ctx, testEmail, "anything"); err != util.ErrRegistrationNeeded {
		t.Errorf("err = %v, want ErrRegistrationNeeded", err)
	}
}
