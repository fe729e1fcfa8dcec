package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hypenest/internal/auth"
	"hypenest/internal/cache"
	apperrors "hypenest/internal/errors"
	"hypenest/internal/mailer"
	"hypenest/internal/model"
	"hypenest/internal/repository"
)

const (
	bcryptCost      = 10
	otpTTL          = 10 * time.Minute
	otpMin          = 100000
	otpSpan         = 900000
	accountCacheTTL = 5 * time.Minute

	otpSubject = "Your Hypenest verification code"
)

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	Role      string
	BrandName string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token string
	Role  model.Role
	Name  string
}

// AuthService handles registration, email verification and login.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.Account, error)
	VerifyOTP(ctx context.Context, email, code string) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Me(ctx context.Context, accountID uuid.UUID) (*model.AccountView, error)
}

type authService struct {
	accountRepo repository.AccountRepository
	otpRepo     repository.OTPRepository
	profileRepo repository.ProfileRepository
	jwtService  *auth.JWTService
	mail        mailer.Sender
	mailFrom    string
	cache       *cache.Client
	log         *slog.Logger
	now         func() time.Time
}

// Deps groups the process-scoped handles the service needs.
type Deps struct {
	Accounts repository.AccountRepository
	OTPs     repository.OTPRepository
	Profiles repository.ProfileRepository
	JWT      *auth.JWTService
	Mail     mailer.Sender
	MailFrom string
	Cache    *cache.Client
	Log      *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(d Deps) AuthService {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &authService{
		accountRepo: d.Accounts,
		otpRepo:     d.OTPs,
		profileRepo: d.Profiles,
		jwtService:  d.JWT,
		mail:        d.Mail,
		mailFrom:    d.MailFrom,
		cache:       d.Cache,
		log:         log,
		now:         time.Now,
	}
}

// Register creates an unverified account, its role profile and a fresh OTP,
// then emails the code. Nothing is rolled back when the email fails.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.Account, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, apperrors.ErrMissingFields
	}

	// Advisory only; the unique index on email is what actually holds.
	existing, err := s.accountRepo.FindByEmail(ctx, in.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check account existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: string(hashedPassword),
		Name:         in.Name,
		Role:         model.ParseRole(in.Role),
		IsVerified:   false,
	}

	profile, err := s.createProfile(ctx, account.Role, in)
	if err != nil {
		return nil, err
	}
	account.LinkProfile(profile)

	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	otp, err := s.issueOTP(ctx, account.ID)
	if err != nil {
		return nil, err
	}

	if err := s.mail.Send(ctx, otpMessage(s.mailFrom, account.Email, otp.Code)); err != nil {
		return nil, fmt.Errorf("send otp email: %w", err)
	}

	s.log.InfoContext(ctx, "account registered", "account_id", account.ID, "role", account.Role)
	return account, nil
}

func (s *authService) createProfile(ctx context.Context, role model.Role, in RegisterInput) (model.ProfileRef, error) {
	switch role {
	case model.RoleBrand:
		name := in.BrandName
		if name == "" {
			name = in.Name
		}
		brand := &model.Brand{Name: name}
		if err := s.profileRepo.CreateBrand(ctx, brand); err != nil {
			return model.ProfileRef{}, fmt.Errorf("create brand: %w", err)
		}
		return model.BrandRef(brand.ID), nil
	case model.RoleCreator:
		creator := &model.Creator{DisplayName: in.Name}
		if err := s.profileRepo.CreateCreator(ctx, creator); err != nil {
			return model.ProfileRef{}, fmt.Errorf("create creator: %w", err)
		}
		return model.CreatorRef(creator.ID), nil
	default:
		return model.ProfileRef{}, nil
	}
}

func (s *authService) issueOTP(ctx context.Context, accountID uuid.UUID) (*model.OTP, error) {
	code, err := generateOTPCode()
	if err != nil {
		return nil, fmt.Errorf("generate otp: %w", err)
	}
	now := s.now()
	otp := &model.OTP{
		AccountID: accountID,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(otpTTL),
	}
	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return nil, fmt.Errorf("create otp: %w", err)
	}
	return otp, nil
}

// generateOTPCode draws uniformly from [100000, 999999].
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpSpan))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", otpMin+n.Int64()), nil
}

func otpMessage(from, to, code string) mailer.Message {
	return mailer.Message{
		From:    from,
		To:      to,
		Subject: otpSubject,
		Text:    fmt.Sprintf("Your OTP is %s. It expires in 10 minutes.", code),
		HTML:    fmt.Sprintf("<p>Your OTP is <b>%s</b>. It expires in 10 minutes.</p>", code),
	}
}

// VerifyOTP marks the account verified when code matches its newest OTP with
// that code and the OTP has not expired.
func (s *authService) VerifyOTP(ctx context.Context, email, code string) error {
	if email == "" || code == "" {
		return apperrors.ErrMissingFields
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return fmt.Errorf("find account: %w", err)
	}

	otp, err := s.otpRepo.FindLatest(ctx, account.ID, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrInvalidCode
		}
		return fmt.Errorf("find otp: %w", err)
	}
	if otp.Expired(s.now()) {
		return apperrors.ErrExpiredCode
	}

	if err := s.accountRepo.MarkVerified(ctx, account.ID); err != nil {
		return fmt.Errorf("mark verified: %w", err)
	}
	s.cache.Delete(ctx, accountCacheKey(account.ID))

	s.log.InfoContext(ctx, "email verified", "account_id", account.ID)
	return nil
}

// Login checks credentials of a verified account and issues a signed token.
// Unknown email and wrong password fail identically.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperrors.ErrMissingFields
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if !account.IsVerified {
		return nil, apperrors.ErrNotVerified
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(account.ID, account.Role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResult{Token: token, Role: account.Role, Name: account.Name}, nil
}

func accountCacheKey(id uuid.UUID) string {
	return "account:" + id.String()
}

// Me returns the account behind a token subject, served from cache when warm.
func (s *authService) Me(ctx context.Context, accountID uuid.UUID) (*model.AccountView, error) {
	key := accountCacheKey(accountID)
	var cached model.AccountView
	if s.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	view := account.View()
	if err := s.cache.SetJSON(ctx, key, view, accountCacheTTL); err != nil {
		s.log.DebugContext(ctx, "cache account", "account_id", accountID, "error", err)
	}
	return &view, nil
}
