package auth

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"jobify/internal/domain/user"
	"jobify/internal/pkg/jwt"
)

type mockUserRepo struct {
	byEmail   map[string]user.User
	byID      map[primitive.ObjectID]user.User
	insertErr error
	inserted  *user.User
	updated   bson.M
}

func (m *mockUserRepo) Insert(_ context.Context, u user.User) (user.User, error) {
	if m.insertErr != nil {
		return user.User{}, m.insertErr
	}
	u.ID = primitive.NewObjectID()
	m.inserted = &u
	return u, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) Find(context.Context, bson.M, *options.FindOptions) ([]user.User, error) {
	return nil, nil
}

func (m *mockUserRepo) UpdateByID(_ context.Context, id primitive.ObjectID, set bson.M) (user.User, error) {
	m.updated = set
	return m.byID[id], nil
}

func (m *mockUserRepo) DeleteByID(context.Context, primitive.ObjectID) error { return nil }

type stubTokens struct {
	token string
	err   error
}

func (s stubTokens) Generate(string) (string, error) { return s.token, s.err }
func (s stubTokens) Validate(string) (jwt.Claims, error) {
	return jwt.Claims{}, errors.New("not implemented")
}

const strongPassword = "Sup3r-Secret!"

func validRegister() RegisterInput {
	return RegisterInput{
		Name:            "Jane Doe",
		Email:           "Jane@Example.com",
		Username:        "janedoe",
		Password:        strongPassword,
		PasswordConfirm: strongPassword,
	}
}

func TestRegister_Success(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewService(repo, stubTokens{token: "tok"})

	u, token, err := svc.Register(context.Background(), validRegister())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token != "tok" {
		t.Fatalf("unexpected token: %q", token)
	}
	if u.Email != "jane@example.com" {
		t.Fatalf("expected lowercased email, got %q", u.Email)
	}
	if u.Password != "" {
		t.Fatalf("sanitized user must not carry the password hash")
	}
	if u.Role != user.RoleUser {
		t.Fatalf("expected default role %q, got %q", user.RoleUser, u.Role)
	}
	if repo.inserted == nil || repo.inserted.Password == strongPassword {
		t.Fatalf("stored password must be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.inserted.Password), []byte(strongPassword)); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RegisterInput)
		want   error
	}{
		{"missing name", func(in *RegisterInput) { in.Name = "" }, ErrInvalidInput},
		{"short name", func(in *RegisterInput) { in.Name = "Jo" }, ErrInvalidInput},
		{"short username", func(in *RegisterInput) { in.Username = "jd" }, ErrInvalidInput},
		{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, ErrInvalidInput},
		{"mismatch", func(in *RegisterInput) { in.PasswordConfirm = "Other-Pass1!" }, ErrPasswordMismatch},
		{"weak short", func(in *RegisterInput) { in.Password, in.PasswordConfirm = "Ab1!", "Ab1!" }, ErrWeakPassword},
		{"weak no symbol", func(in *RegisterInput) { in.Password, in.PasswordConfirm = "Abcdefg1", "Abcdefg1" }, ErrWeakPassword},
		{"weak no upper", func(in *RegisterInput) { in.Password, in.PasswordConfirm = "abcdefg1!", "abcdefg1!" }, ErrWeakPassword},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegister()
			tc.mutate(&in)
			if _, _, err := NewService(&mockUserRepo{}, stubTokens{token: "tok"}).Register(context.Background(), in); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	svc := NewService(&mockUserRepo{insertErr: user.ErrDuplicate}, stubTokens{token: "tok"})
	if _, _, err := svc.Register(context.Background(), validRegister()); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(strongPassword), bcrypt.MinCost)
	stored := user.User{
		ID:       primitive.NewObjectID(),
		Email:    "jane@example.com",
		Password: string(hash),
		Role:     user.RoleUser,
	}
	repo := &mockUserRepo{byEmail: map[string]user.User{stored.Email: stored}}
	svc := NewService(repo, stubTokens{token: "tok"})

	u, token, err := svc.Login(context.Background(), LoginInput{Email: " Jane@Example.com ", Password: strongPassword})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token != "tok" || u.Password != "" {
		t.Fatalf("unexpected login result: token=%q password=%q", token, u.Password)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(strongPassword), bcrypt.MinCost)
	repo := &mockUserRepo{byEmail: map[string]user.User{
		"jane@example.com": {Email: "jane@example.com", Password: string(hash)},
	}}
	svc := NewService(repo, stubTokens{token: "tok"})

	if _, _, err := svc.Login(context.Background(), LoginInput{Email: "jane@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(&mockUserRepo{}, stubTokens{token: "tok"})
	if _, _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@example.com", Password: "x"}); !errors.Is(err, ErrInvalidCredential) {
		t.Fatalf("expected ErrInvalidCredential, got %v", err)
	}
}

func TestChangePassword_Success(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(strongPassword), bcrypt.MinCost)
	id := primitive.NewObjectID()
	repo := &mockUserRepo{byID: map[primitive.ObjectID]user.User{
		id: {ID: id, Password: string(hash)},
	}}
	svc := NewService(repo, stubTokens{token: "tok"})

	err := svc.ChangePassword(context.Background(), id, ChangePasswordInput{
		CurrentPassword: strongPassword,
		NewPassword:     "N3w-Secret-Pass!",
		PasswordConfirm: "N3w-Secret-Pass!",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	newHash, _ := repo.updated["password"].(string)
	if newHash == "" {
		t.Fatalf("expected a password update, got %v", repo.updated)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(newHash), []byte("N3w-Secret-Pass!")); err != nil {
		t.Fatalf("stored hash does not match new password: %v", err)
	}
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte(strongPassword), bcrypt.MinCost)
	id := primitive.NewObjectID()
	repo := &mockUserRepo{byID: map[primitive.ObjectID]user.User{
		id: {ID: id, Password: string(hash)},
	}}
	svc := NewService(repo, stubTokens{token: "tok"})

	err := svc.ChangePassword(context.Background(), id, ChangePasswordInput{
		CurrentPassword: "wrong",
		NewPassword:     "N3w-Secret-Pass!",
		PasswordConfirm: "N3w-Secret-Pass!",
	})
	if !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected ErrWrongPassword, got %v", err)
	}
	if err := svc.ChangePassword(context.Background(), id, ChangePasswordInput{
		CurrentPassword: strongPassword,
		NewPassword:     "N3w-Secret-Pass!",
		PasswordConfirm: "mismatch",
	}); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	// Stale token: the account behind the id is gone.
	if err := svc.ChangePassword(context.Background(), primitive.NewObjectID(), ChangePasswordInput{
		CurrentPassword: strongPassword,
		NewPassword:     "N3w-Secret-Pass!",
		PasswordConfirm: "N3w-Secret-Pass!",
	}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIsStrongPassword(t *testing.T) {
	cases := map[string]bool{
		strongPassword: true,
		"Abcdef1!":     true,
		"short1A!":     true,
		"Ab1!":         false,
		"abcdefg1!":    false,
		"ABCDEFG1!":    false,
		"Abcdefgh!":    false,
		"Abcdefg1":     false,
	}
	for pw, want := range cases {
		if got := isStrongPassword(pw); got != want {
			t.Fatalf("isStrongPassword(%q) = %v, want %v", pw, got, want)
		}
	}
}
