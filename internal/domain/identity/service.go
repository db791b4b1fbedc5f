package identity

import (
	"context"
	"errors"
	"strings"

	"baby-tracker-go/internal/domain/apperr"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/google/uuid"
)

type Service struct {
	repo      Repository
	passwords *Passwords
	tokens    *Tokens
}

func NewService(repo Repository, passwords *Passwords, tokens *Tokens) *Service {
	return &Service{repo: repo, passwords: passwords, tokens: tokens}
}

func (in SignupInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
		validation.Field(&in.Password,
			validation.Required,
			validation.Length(minPasswordLength, 0).Error("must be at least 6 characters"),
			validation.By(passwordBytes),
		),
		validation.Field(&in.Name, validation.Required, validation.Length(1, 100)),
	)
}

func passwordBytes(value interface{}) error {
	password, _ := value.(string)
	if len(password) > maxPasswordBytes {
		return errors.New("must be at most 72 bytes")
	}
	return nil
}

func (s *Service) Signup(ctx context.Context, input SignupInput) (*Session, error) {
	input.Email = normalizeEmail(input.Email)
	input.Name = strings.TrimSpace(input.Name)
	if err := input.Validate(); err != nil {
		return nil, apperr.Invalid(err)
	}

	_, err := s.repo.GetUserByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.passwords.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := User{
		ID:           uuid.NewString(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
	}
	if err := s.repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	return s.session(user)
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		s.passwords.Burn(input.Password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := s.passwords.Verify(user.PasswordHash, input.Password); err != nil {
		return nil, err
	}

	return s.session(*user)
}

// Authenticate turns a bearer token into the caller's principal.
func (s *Service) Authenticate(_ context.Context, token string) (Principal, error) {
	return s.tokens.Parse(token)
}

func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetUserByID(ctx, userID)
}

func (s *Service) session(user User) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
