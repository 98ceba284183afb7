package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fashionTrends/domain"
	"fashionTrends/pkg/logger"
	"fashionTrends/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByUsername(ctx context.Context, username string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) error
}

// TokenRepository is the Redis-backed session store.
type TokenRepository interface {
	StoreSession(ctx context.Context, userID, role, token, ipAddress, userAgent string, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteSession(ctx context.Context, userID, token string) error
}

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"

	sessionTTL          = 30 * 24 * time.Hour
	verificationCodeTTL = 5 // minutes

	SubjectRegisterAccount   = "Activate Your Account!"
	EmailBodyRegisterAccount = `Hello %v, activate your account by opening the link below</br></br>%v</br>note: the link is only valid for %v minutes`
)

type userService struct {
	userRepo                UserRepository
	validate                *validator.Validate
	notifRepo               NotificationRepository
	tokenRepo               TokenRepository
	appEmailVerificationKey string
	appDeploymentUrl        string
}

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	tokenRepo TokenRepository,
	appEmailVerificationKey string,
	appDeploymentUrl string,
) *userService {
	return &userService{
		userRepo:                userRepo,
		validate:                validate,
		notifRepo:               notifRepo,
		tokenRepo:               tokenRepo,
		appEmailVerificationKey: appEmailVerificationKey,
		appDeploymentUrl:        appDeploymentUrl,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("Invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}

	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("Invalid user password", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	if existing, err := s.userRepo.FindByUsername(ctx, user.Username); err == nil && existing.ID > 0 {
		return domain.User{}, domain.ErrUsernameExists
	}

	if existing, err := s.userRepo.FindByEmail(ctx, user.Email); err == nil && existing.ID > 0 {
		return domain.User{}, domain.ErrEmailExists
	}

	passwordHash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("Failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		Username:   user.Username,
		Email:      user.Email,
		Password:   passwordHash,
		IsVerified: false,
		Role:       RoleCustomer,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("Failed to create new user", err)
		return domain.User{}, err
	}

	expAt := time.Now().Add(time.Minute * verificationCodeTTL).Unix()

	verificationCode := fmt.Sprintf("%v|%v", newUser.Email, expAt)
	verificationCodeEncrypt, err := goshortcute.AESCBCEncrypt([]byte(verificationCode), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Error("Failed to encrypt verification code", err)
		return domain.User{}, errors.New("failed to build verification link")
	}
	strEncode := goshortcute.StringtoBase64Encode(verificationCodeEncrypt)
	activationLink := s.appDeploymentUrl + "/api/v1/users/email-verification/" + strEncode

	err = s.notifRepo.SendEmail(newUser.Username, newUser.Email, SubjectRegisterAccount,
		fmt.Sprintf(EmailBodyRegisterAccount, newUser.Username, activationLink, verificationCodeTTL))
	if err != nil {
		logger.Warn("Failed to send verification email", err)
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) VerifyEmail(ctx context.Context, verificationCodeEncrypt string) error {
	strDecode := goshortcute.StringtoBase64Decode(verificationCodeEncrypt)
	verificationCodeDecrypt, err := goshortcute.AESCBCDecrypt([]byte(strDecode), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Error("Verifying email error", err)
		return errors.New("invalid or expired url")
	}

	verificationCode := strings.Split(verificationCodeDecrypt, "|")
	if len(verificationCode) != 2 {
		return errors.New("invalid or expired url")
	}

	email := verificationCode[0]

	ts, err := strconv.ParseInt(verificationCode[1], 10, 64)
	if err != nil {
		return errors.New("invalid or expired url")
	}
	if time.Now().After(time.Unix(ts, 0)) {
		return errors.New("invalid or expired url")
	}

	getUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("Verifying email error", err)
		return errors.New("failed to get user by email")
	}

	if getUser.IsVerified {
		return errors.New("invalid or expired url")
	}

	return s.userRepo.UpdateEmailVerification(ctx, getUser.ID, true)
}

func (s *userService) Login(ctx context.Context, username, password, ipAddress, userAgent string) (string, domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		logger.Error("Invalid user credentials", err)
		return "", domain.User{}, domain.ErrInvalidCredentials
	}

	if ok := utils.CheckPassword(password, user.Password); !ok {
		return "", domain.User{}, domain.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return "", domain.User{}, errors.New("email address has not been verified")
	}

	userIdStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIdStr, user.Role)
	if err != nil {
		logger.Error("Failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	if err := s.tokenRepo.StoreSession(ctx, userIdStr, user.Role, token, ipAddress, userAgent, sessionTTL); err != nil {
		logger.Error("Failed to store session", err)
		return "", domain.User{}, errors.New("failed to create session")
	}

	user.Password = ""
	return token, user, nil
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	userIdStr := strconv.FormatUint(uint64(userID), 10)

	return s.tokenRepo.DeleteSession(ctx, userIdStr, token)
}

// ValidateTokenFromRedis is consumed by the auth middleware to reject tokens
// whose session has been invalidated.
func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	return s.tokenRepo.ValidateToken(ctx, token)
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}
