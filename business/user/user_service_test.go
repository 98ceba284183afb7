package user

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"fashionTrends/domain"
	"fashionTrends/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

const testVerificationKey = "0123456789abcdef"

type fakeUserRepo struct {
	users  map[uint]domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]domain.User), nextID: 1}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUserNotFound
}

func (r *fakeUserRepo) UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsVerified = isVerified
	r.users[id] = u
	return nil
}

type fakeNotifRepo struct {
	sentTo   []string
	messages []string
}

func (r *fakeNotifRepo) SendEmail(toName, toEmail, subject, message string) error {
	r.sentTo = append(r.sentTo, toEmail)
	r.messages = append(r.messages, message)
	return nil
}

type fakeTokenRepo struct {
	sessions map[string]string // token -> userID
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{sessions: make(map[string]string)}
}

func (r *fakeTokenRepo) StoreSession(ctx context.Context, userID, role, token, ipAddress, userAgent string, ttl time.Duration) error {
	r.sessions[token] = userID
	return nil
}

func (r *fakeTokenRepo) ValidateToken(ctx context.Context, token string) (string, error) {
	userID, ok := r.sessions[token]
	if !ok {
		return "", errors.New("session not found or expired")
	}
	return userID, nil
}

func (r *fakeTokenRepo) DeleteSession(ctx context.Context, userID, token string) error {
	delete(r.sessions, token)
	return nil
}

func newTestUserService() (*userService, *fakeUserRepo, *fakeNotifRepo, *fakeTokenRepo) {
	utils.InitJWT("test-secret")

	userRepo := newFakeUserRepo()
	notifRepo := &fakeNotifRepo{}
	tokenRepo := newFakeTokenRepo()

	svc := NewUserService(userRepo, validator.New(), notifRepo, tokenRepo, testVerificationKey, "http://localhost:8080")

	return svc, userRepo, notifRepo, tokenRepo
}

func TestRegister(t *testing.T) {
	svc, userRepo, notifRepo, _ := newTestUserService()

	got, err := svc.Register(context.Background(), &domain.User{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Role != RoleCustomer {
		t.Errorf("role = %q, want %q", got.Role, RoleCustomer)
	}
	if got.IsVerified {
		t.Error("new user should not be verified")
	}
	if got.Password != "" {
		t.Error("password leaked in response")
	}

	stored := userRepo.users[got.ID]
	if stored.Password == "secret123" {
		t.Error("password stored in plain text")
	}
	if !utils.CheckPassword("secret123", stored.Password) {
		t.Error("stored hash does not verify against the original password")
	}

	if len(notifRepo.sentTo) != 1 || notifRepo.sentTo[0] != "alice@example.com" {
		t.Errorf("verification email recipients = %v", notifRepo.sentTo)
	}
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	if _, err := svc.Register(context.Background(), &domain.User{
		Username: "alice", Email: "not-an-email", Password: "secret123",
	}); err == nil {
		t.Error("invalid email accepted")
	}

	if _, err := svc.Register(context.Background(), &domain.User{
		Username: "alice", Email: "alice@example.com", Password: "tiny",
	}); err == nil {
		t.Error("short password accepted")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	if _, err := svc.Register(context.Background(), &domain.User{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Register(context.Background(), &domain.User{
		Username: "alice", Email: "other@example.com", Password: "secret123",
	}); !errors.Is(err, domain.ErrUsernameExists) {
		t.Errorf("duplicate username error = %v, want ErrUsernameExists", err)
	}

	if _, err := svc.Register(context.Background(), &domain.User{
		Username: "bob", Email: "alice@example.com", Password: "secret123",
	}); !errors.Is(err, domain.ErrEmailExists) {
		t.Errorf("duplicate email error = %v, want ErrEmailExists", err)
	}
}

func verificationCodeFor(t *testing.T, email string, expAt int64) string {
	t.Helper()

	code := fmt.Sprintf("%v|%v", email, expAt)
	encrypted, err := goshortcute.AESCBCEncrypt([]byte(code), []byte(testVerificationKey))
	if err != nil {
		t.Fatalf("failed to build verification code: %v", err)
	}

	return goshortcute.StringtoBase64Encode(encrypted)
}

func TestVerifyEmail(t *testing.T) {
	svc, userRepo, _, _ := newTestUserService()

	registered, err := svc.Register(context.Background(), &domain.User{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	code := verificationCodeFor(t, "alice@example.com", time.Now().Add(5*time.Minute).Unix())
	if err := svc.VerifyEmail(context.Background(), code); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !userRepo.users[registered.ID].IsVerified {
		t.Error("user not marked verified")
	}

	// Re-verifying an already verified account is rejected.
	if err := svc.VerifyEmail(context.Background(), code); err == nil {
		t.Error("second verification accepted")
	}
}

func TestVerifyEmailExpiredCode(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	if _, err := svc.Register(context.Background(), &domain.User{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	code := verificationCodeFor(t, "alice@example.com", time.Now().Add(-time.Minute).Unix())
	if err := svc.VerifyEmail(context.Background(), code); err == nil {
		t.Error("expired code accepted")
	}
}

func TestVerifyEmailGarbageCode(t *testing.T) {
	svc, _, _, _ := newTestUserService()

	if err := svc.VerifyEmail(context.Background(), "not-a-real-code"); err == nil {
		t.Error("garbage code accepted")
	}
}

func TestLogin(t *testing.T) {
	svc, userRepo, _, tokenRepo := newTestUserService()

	registered, err := svc.Register(context.Background(), &domain.User{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Unverified accounts cannot log in.
	if _, _, err := svc.Login(context.Background(), "alice", "secret123", "127.0.0.1", "test"); err == nil {
		t.Error("unverified user logged in")
	}

	if err := userRepo.UpdateEmailVerification(context.Background(), registered.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, loggedIn, err := svc.Login(context.Background(), "alice", "secret123", "127.0.0.1", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Error("empty token")
	}
	if loggedIn.Password != "" {
		t.Error("password leaked in login response")
	}

	userID, err := svc.ValidateTokenFromRedis(context.Background(), token)
	if err != nil {
		t.Fatalf("session not stored: %v", err)
	}
	if userID != fmt.Sprint(registered.ID) {
		t.Errorf("session user = %q, want %q", userID, fmt.Sprint(registered.ID))
	}

	if err := svc.Logout(context.Background(), registered.ID, token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tokenRepo.ValidateToken(context.Background(), token); err == nil {
		t.Error("session survived logout")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, userRepo, _, _ := newTestUserService()

	registered, err := svc.Register(context.Background(), &domain.User{
		Username: "alice", Email: "alice@example.com", Password: "secret123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := userRepo.UpdateEmailVerification(context.Background(), registered.ID, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), "alice", "wrong", "127.0.0.1", "test"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(context.Background(), "nobody", "secret123", "127.0.0.1", "test"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}
