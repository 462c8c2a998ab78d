package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"candy-shop/internal/domain"
	"candy-shop/internal/dto"
	"candy-shop/internal/model"
	"candy-shop/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNoSession          = errors.New("no active session")
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AccountResponse, error)
	Login(ctx context.Context, email, password string) (string, error)
	ChangePassword(ctx context.Context, userID, newPassword string) error
	EnsureStaff(ctx context.Context, name, email, password, position string) error
}

type userServiceImpl struct {
	accountRepo repository.AccountRepository
	sessions    *SessionRegistry
	jwtSecret   []byte
	tokenTTL    time.Duration
}

func NewUserService(
	accountRepo repository.AccountRepository,
	sessions *SessionRegistry,
	jwtSecret []byte,
	tokenTTL time.Duration,
) UserService {
	return &userServiceImpl{
		accountRepo: accountRepo,
		sessions:    sessions,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AccountResponse, error) {
	user, err := domain.NewUser(uuid.NewString(), req.Name, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.FindByEmail(ctx, user.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, fmt.Errorf("look up account by email: %w", err)
	}

	account := &model.Account{
		ID:             user.ID,
		Name:           user.Name,
		Email:          user.Email,
		PasswordSalt:   user.Credential.SaltHex,
		PasswordDigest: user.Credential.DigestHex,
		Status:         user.Status,
		Role:           domain.RoleShopper,
		CreatedAt:      user.CreatedAt,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("store account in db: %w", err)
	}

	s.sessions.put(user)

	return &dto.AccountResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Status:    user.Status,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Login verifies the credential against the stored salted hash and mints a
// bearer token for the account. The last-login stamp is written only on
// success.
func (s *userServiceImpl) Login(ctx context.Context, email, password string) (string, error) {
	normalized, err := domain.NormalizeEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	account, err := s.accountRepo.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	// Reuse the hydrated aggregate when one exists so a cart built earlier in
	// the session survives a re-login.
	user, ok := s.sessions.get(account.ID)
	if !ok {
		user = hydrateUser(account)
	}

	if !user.Login(email, password) {
		return "", ErrInvalidCredentials
	}

	if err := s.accountRepo.StampLastLogin(ctx, account.ID, *user.LastLoginAt); err != nil {
		return "", fmt.Errorf("stamp last login: %w", err)
	}
	s.sessions.put(user)

	return s.mintToken(account.ID, account.Role)
}

// EnsureStaff creates the staff account on first boot; later boots find the
// existing row and leave it alone.
func (s *userServiceImpl) EnsureStaff(ctx context.Context, name, email, password, position string) error {
	staff, err := domain.NewStaff(uuid.NewString(), name, email, password, position)
	if err != nil {
		return err
	}

	if _, err := s.accountRepo.FindByEmail(ctx, staff.Email); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return fmt.Errorf("look up account by email: %w", err)
	}

	account := &model.Account{
		ID:             staff.ID,
		Name:           staff.Name,
		Email:          staff.Email,
		PasswordSalt:   staff.Credential.SaltHex,
		PasswordDigest: staff.Credential.DigestHex,
		Status:         staff.Status,
		Role:           domain.RoleStaff,
		CreatedAt:      staff.CreatedAt,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return fmt.Errorf("store staff account in db: %w", err)
	}

	s.sessions.put(staff.User)
	return nil
}

func (s *userServiceImpl) ChangePassword(ctx context.Context, userID, newPassword string) error {
	user, ok := s.sessions.get(userID)
	if !ok {
		account, err := s.accountRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		user = hydrateUser(account)
		s.sessions.put(user)
	}

	if err := user.SetPassword(newPassword); err != nil {
		return err
	}

	return s.accountRepo.UpdateCredential(ctx, userID, user.Credential.SaltHex, user.Credential.DigestHex)
}

func (s *userServiceImpl) mintToken(accountID, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  accountID,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func hydrateUser(account *model.Account) *domain.User {
	return &domain.User{
		Person: domain.Person{
			ID:        account.ID,
			Name:      account.Name,
			Email:     account.Email,
			Status:    account.Status,
			CreatedAt: account.CreatedAt,
		},
		Credential: domain.Credential{
			SaltHex:   account.PasswordSalt,
			DigestHex: account.PasswordDigest,
		},
		LastLoginAt: account.LastLoginAt,
	}
}
