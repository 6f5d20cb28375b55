package auth

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"jobify/internal/domain/user"
	"jobify/internal/pkg/jwt"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrPasswordMismatch  = errors.New("passwords do not match")
	ErrWeakPassword      = errors.New("password too weak")
	ErrUserExists        = errors.New("user already exists")
	ErrInvalidCredential = errors.New("invalid email or password")
	ErrWrongPassword     = errors.New("incorrect current password")
	ErrNotFound          = errors.New("user not found")
	ErrInternal          = errors.New("internal error")
)

type RegisterInput struct {
	Name            string
	Email           string
	Username        string
	Password        string
	PasswordConfirm string
}

type LoginInput struct {
	Email    string
	Password string
}

type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	PasswordConfirm string
}

type Usecase interface {
	Register(ctx context.Context, in RegisterInput) (user.User, string, error)
	Login(ctx context.Context, in LoginInput) (user.User, string, error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, in ChangePasswordInput) error
}

type Service struct {
	users  user.Repository
	tokens jwt.Service
}

func NewService(users user.Repository, tokens jwt.Service) *Service {
	return &Service{users: users, tokens: tokens}
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, string, error) {
	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	username := strings.TrimSpace(in.Username)

	if name == "" || email == "" || username == "" || in.Password == "" || in.PasswordConfirm == "" {
		return user.User{}, "", ErrInvalidInput
	}
	if len(name) < 3 || len(username) < 4 || !strings.Contains(email, "@") {
		return user.User{}, "", ErrInvalidInput
	}
	if in.Password != in.PasswordConfirm {
		return user.User{}, "", ErrPasswordMismatch
	}
	if !isStrongPassword(in.Password) {
		return user.User{}, "", ErrWeakPassword
	}

	// The confirmation field is discarded here; only the hash persists.
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 12)
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	u := user.User{
		Name:      name,
		Email:     email,
		Username:  username,
		Password:  string(hash),
		Role:      user.RoleUser,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.users.Insert(ctx, u)
	if err != nil {
		if errors.Is(err, user.ErrDuplicate) {
			return user.User{}, "", ErrUserExists
		}
		return user.User{}, "", ErrInternal
	}

	token, err := s.tokens.Generate(created.ID.Hex())
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	return created.Sanitized(), token, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, string, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, "", ErrInvalidInput
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, "", ErrInvalidCredential
		}
		return user.User{}, "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.Password)); err != nil {
		return user.User{}, "", ErrInvalidCredential
	}

	token, err := s.tokens.Generate(u.ID.Hex())
	if err != nil {
		return user.User{}, "", ErrInternal
	}

	return u.Sanitized(), token, nil
}

func (s *Service) ChangePassword(ctx context.Context, userID primitive.ObjectID, in ChangePasswordInput) error {
	if in.CurrentPassword == "" || in.NewPassword == "" || in.PasswordConfirm == "" {
		return ErrInvalidInput
	}
	if in.NewPassword != in.PasswordConfirm {
		return ErrPasswordMismatch
	}
	if !isStrongPassword(in.NewPassword) {
		return ErrWeakPassword
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(in.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), 12)
	if err != nil {
		return ErrInternal
	}

	if _, err := s.users.UpdateByID(ctx, userID, bson.M{"password": string(hash)}); err != nil {
		return ErrInternal
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isStrongPassword requires 8+ characters with at least one uppercase,
// lowercase, digit and symbol each.
func isStrongPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
