package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"baby-tracker-go/internal/domain/apperr"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byID    map[string]*User
	byEmail map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*User),
		byEmail: make(map[string]string),
	}
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, userID string) (*User, error) {
	user, ok := r.byID[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return r.byID[id], nil
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *User) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return ErrEmailTaken
	}
	user.CreatedAt = time.Now().UTC()
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user.ID
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeUserRepo) {
	t.Helper()
	passwords, err := NewPasswords(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("passwords: %v", err)
	}
	tokens, err := NewTokens("test-secret", 30*24*time.Hour)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	repo := newFakeUserRepo()
	return NewService(repo, passwords, tokens), repo
}

func TestSignupSuccess(t *testing.T) {
	svc, repo := newTestService(t)

	session, err := svc.Signup(context.Background(), SignupInput{
		Email:    "  Ana@Example.COM ",
		Password: "secret1",
		Name:     " Ana ",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if session.User.Email != "ana@example.com" {
		t.Fatalf("expected lower-cased email, got %q", session.User.Email)
	}
	if session.User.Name != "Ana" {
		t.Fatalf("expected trimmed name, got %q", session.User.Name)
	}
	if session.Token == "" {
		t.Fatalf("expected token")
	}
	stored := repo.byID[session.User.ID]
	if stored == nil || stored.PasswordHash == "secret1" || stored.PasswordHash == "" {
		t.Fatalf("expected hashed password stored, got %+v", stored)
	}
}

func TestSignupDuplicateEmailCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Email: "dad@example.com", Password: "secret1", Name: "Dad"}); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := svc.Signup(ctx, SignupInput{Email: "DAD@example.com", Password: "secret2", Name: "Other"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("expected conflict kind, got %q", apperr.KindOf(err))
	}
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newTestService(t)

	cases := []struct {
		name  string
		input SignupInput
		field string
	}{
		{"short password", SignupInput{Email: "a@example.com", Password: "12345", Name: "A"}, "password"},
		{"bad email", SignupInput{Email: "not-an-email", Password: "123456", Name: "A"}, "email"},
		{"missing name", SignupInput{Email: "a@example.com", Password: "123456", Name: "   "}, "name"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tc.input)
			if apperr.KindOf(err) != apperr.KindInvalidInput {
				t.Fatalf("expected invalid_input, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Fatalf("expected error mentioning %s, got %q", tc.field, err.Error())
			}
		})
	}
}

func TestSignupAcceptsSixCharacterPassword(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Signup(context.Background(), SignupInput{Email: "b@example.com", Password: "123456", Name: "B"}); err != nil {
		t.Fatalf("expected six characters to be accepted, got %v", err)
	}
}

func TestLoginGenericFailure(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, SignupInput{Email: "mom@example.com", Password: "secret1", Name: "Mom"}); err != nil {
		t.Fatalf("signup: %v", err)
	}

	_, unknownErr := svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	_, wrongErr := svc.Login(ctx, LoginInput{Email: "mom@example.com", Password: "wrong-password"})

	if !errors.Is(unknownErr, ErrInvalidCredentials) || !errors.Is(wrongErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v / %v", unknownErr, wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Fatalf("expected identical messages, got %q / %q", unknownErr.Error(), wrongErr.Error())
	}
}

func TestLoginSuccessAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, SignupInput{Email: "mom@example.com", Password: "secret1", Name: "Mom"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	session, err := svc.Login(ctx, LoginInput{Email: "MOM@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("expected login success, got %v", err)
	}

	principal, err := svc.Authenticate(ctx, session.Token)
	if err != nil {
		t.Fatalf("expected token to verify, got %v", err)
	}
	if principal.ID != created.User.ID || principal.Email != "mom@example.com" || principal.Name != "Mom" {
		t.Fatalf("unexpected principal %+v", principal)
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Login(context.Background(), LoginInput{Email: "", Password: ""})
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestMe(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.Signup(ctx, SignupInput{Email: "me@example.com", Password: "secret1", Name: "Me"})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	user, err := svc.Me(ctx, session.User.ID)
	if err != nil || user.Email != "me@example.com" {
		t.Fatalf("expected user, got %+v err=%v", user, err)
	}
	if _, err := svc.Me(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSignupRejectsOverlongPassword(t *testing.T) {
	svc, repo := newTestService(t)

	_, err := svc.Signup(context.Background(), SignupInput{
		Email:    "long@example.com",
		Password: strings.Repeat("a", maxPasswordBytes+1),
		Name:     "Long",
	})
	if apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Fatalf("expected invalid_input, got %v (kind %s)", err, apperr.KindOf(err))
	}
	if !strings.Contains(err.Error(), "password") {
		t.Fatalf("expected error mentioning password, got %q", err.Error())
	}
	if _, ok := repo.byEmail["long@example.com"]; ok {
		t.Fatalf("expected no user stored")
	}

	// 25 three-byte runes exceed the limit.
	_, err = svc.Signup(context.Background(), SignupInput{
		Email:    "runes@example.com",
		Password: strings.Repeat("€", 25),
		Name:     "Runes",
	})
	if apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Fatalf("expected invalid_input for multi-byte password, got %v", err)
	}

	if _, err := svc.Signup(context.Background(), SignupInput{
		Email:    "edge@example.com",
		Password: strings.Repeat("a", maxPasswordBytes),
		Name:     "Edge",
	}); err != nil {
		t.Fatalf("expected %d bytes to be accepted, got %v", maxPasswordBytes, err)
	}
}

func TestPasswordsHashTooLongIsInvalidInput(t *testing.T) {
	passwords, err := NewPasswords(bcrypt.MinCost)
	if err != nil {
		t.Fatalf("passwords: %v", err)
	}
	_, err = passwords.Hash(strings.Repeat("a", maxPasswordBytes+1))
	if apperr.KindOf(err) != apperr.KindInvalidInput {
		t.Fatalf("expected invalid_input, got %v", err)
	}
	if !errors.Is(err, bcrypt.ErrPasswordTooLong) {
		t.Fatalf("expected wrapped bcrypt error, got %v", err)
	}
}
