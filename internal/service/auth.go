// Package service implements the business logic for authentication and BBS
// record management on top of the repository layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"bbs-manager/internal/models"
	"bbs-manager/internal/notify"
	"bbs-manager/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrInvalidInput is returned when required fields are missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned for any login failure. Unknown email
	// and wrong password are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const minPasswordLen = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// dummyHash is compared against when the email is unknown so that both login
// failure paths pay the bcrypt cost. It is the hash of an unused string.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// notifyTimeout bounds the fire-and-forget admin notification.
const notifyTimeout = 10 * time.Second

// UserContext identifies the authenticated caller of a protected operation.
type UserContext struct {
	UserID uint
	Name   string
	Role   string
}

// RegisterInput carries the registration form fields. Phone, Address and DOB
// are optional and unvalidated.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	DOB      string
}

// AuthService registers and authenticates users.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
}

type authService struct {
	users    repository.UserRepository
	notifier notify.Notifier
	log      *zap.Logger
}

func NewAuthService(users repository.UserRepository, notifier notify.Notifier, log *zap.Logger) AuthService {
	return &authService{users: users, notifier: notifier, log: log}
}

// Register validates the input, stores the user with a bcrypt password hash
// and kicks off the best-effort admin notification. Email uniqueness is
// enforced by the database, so concurrent registrations cannot both succeed.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, fmt.Errorf("%w: malformed email address", ErrInvalidInput)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         models.DefaultRole,
		Phone:        in.Phone,
		Address:      in.Address,
		DOB:          in.DOB,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.notifyRegistration(user)

	return user, nil
}

// Authenticate verifies the email/password pair. Both failure modes return
// the same error value and run a bcrypt comparison.
func (s *authService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// notifyRegistration informs the admin without blocking or failing the
// registration. Runs detached from the request context.
func (s *authService) notifyRegistration(user *models.User) {
	ev := notify.RegistrationEvent{
		EventID:   uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		At:        time.Now(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := s.notifier.RegistrationCompleted(ctx, ev); err != nil {
			s.log.Warn("admin notification failed",
				zap.String("event_id", ev.EventID),
				zap.Uint("user_id", ev.UserID),
				zap.Error(err),
			)
		}
	}()
}
