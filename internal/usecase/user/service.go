package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobify/internal/domain/preference"
	"jobify/internal/domain/savedjob"
	"jobify/internal/domain/user"
	"jobify/internal/pkg/query"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrPasswordUpdate = errors.New("password updates not allowed here")
	ErrNotFound       = errors.New("user not found")
	ErrDuplicate      = errors.New("user already exists")
	ErrInternal       = errors.New("internal error")
)

// Fields an update may touch. Role and premium entitlement changes stay
// admin-only.
var selfUpdatableFields = map[string]bool{
	"name":           true,
	"email":          true,
	"username":       true,
	"profilePicture": true,
}

var adminUpdatableFields = map[string]bool{
	"name":            true,
	"email":           true,
	"username":        true,
	"profilePicture":  true,
	"role":            true,
	"premiumServices": true,
}

type Usecase interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (user.User, error)
	UpdateSelf(ctx context.Context, id primitive.ObjectID, fields map[string]any) (user.User, error)
	UpdateByAdmin(ctx context.Context, id primitive.ObjectID, fields map[string]any) (user.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, params map[string]string) ([]user.User, error)
	SetProfilePicture(ctx context.Context, id primitive.ObjectID, path string) (user.User, error)

	Preferences(ctx context.Context, userID primitive.ObjectID) (preference.Preferences, error)
	UpdatePreferences(ctx context.Context, p preference.Preferences) (preference.Preferences, error)

	SaveJob(ctx context.Context, userID, jobID primitive.ObjectID) (savedjob.SavedJob, error)
	SavedJobs(ctx context.Context, userID primitive.ObjectID) ([]savedjob.SavedJob, error)
	UnsaveJob(ctx context.Context, userID, jobID primitive.ObjectID) error
}

type Service struct {
	users       user.Repository
	preferences preference.Repository
	saved       savedjob.Repository
}

func NewService(users user.Repository, preferences preference.Repository, saved savedjob.Repository) *Service {
	return &Service{users: users, preferences: preferences, saved: saved}
}

func (s *Service) GetByID(ctx context.Context, id primitive.ObjectID) (user.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return u.Sanitized(), nil
}

func (s *Service) UpdateSelf(ctx context.Context, id primitive.ObjectID, fields map[string]any) (user.User, error) {
	return s.update(ctx, id, fields, selfUpdatableFields)
}

func (s *Service) UpdateByAdmin(ctx context.Context, id primitive.ObjectID, fields map[string]any) (user.User, error) {
	return s.update(ctx, id, fields, adminUpdatableFields)
}

func (s *Service) update(ctx context.Context, id primitive.ObjectID, fields map[string]any, allowed map[string]bool) (user.User, error) {
	if _, ok := fields["password"]; ok {
		return user.User{}, ErrPasswordUpdate
	}
	if _, ok := fields["passwordConfirm"]; ok {
		return user.User{}, ErrPasswordUpdate
	}

	set := bson.M{}
	for k, v := range fields {
		if !allowed[k] {
			continue
		}
		if k == "role" {
			raw, _ := v.(string)
			role, ok := user.ParseRole(raw)
			if !ok {
				return user.User{}, ErrInvalidInput
			}
			set[k] = role
			continue
		}
		set[k] = v
	}
	if len(set) == 0 {
		return user.User{}, ErrInvalidInput
	}

	updated, err := s.users.UpdateByID(ctx, id, set)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			return user.User{}, ErrNotFound
		case errors.Is(err, user.ErrDuplicate):
			return user.User{}, ErrDuplicate
		}
		return user.User{}, ErrInternal
	}
	return updated.Sanitized(), nil
}

func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.users.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

func (s *Service) List(ctx context.Context, params map[string]string) ([]user.User, error) {
	filter, opts := query.NewBuilder(params).WithDateField("createdAt").Build()

	users, err := s.users.Find(ctx, filter, opts)
	if err != nil {
		return nil, ErrInternal
	}
	out := make([]user.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitized())
	}
	return out, nil
}

func (s *Service) SetProfilePicture(ctx context.Context, id primitive.ObjectID, path string) (user.User, error) {
	if path == "" {
		return user.User{}, ErrInvalidInput
	}
	return s.update(ctx, id, map[string]any{"profilePicture": path}, selfUpdatableFields)
}

func (s *Service) Preferences(ctx context.Context, userID primitive.ObjectID) (preference.Preferences, error) {
	p, err := s.preferences.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, preference.ErrNotFound) {
			return preference.Default(userID), nil
		}
		return preference.Preferences{}, ErrInternal
	}
	return p, nil
}

func (s *Service) UpdatePreferences(ctx context.Context, p preference.Preferences) (preference.Preferences, error) {
	if p.User.IsZero() {
		return preference.Preferences{}, ErrInvalidInput
	}
	if p.JobAlerts.Frequency == "" {
		p.JobAlerts.Frequency = preference.FrequencyWeekly
	}
	if _, ok := preference.ParseFrequency(string(p.JobAlerts.Frequency)); !ok {
		return preference.Preferences{}, ErrInvalidInput
	}
	p.UpdatedAt = time.Now().UTC()

	out, err := s.preferences.Upsert(ctx, p)
	if err != nil {
		return preference.Preferences{}, ErrInternal
	}
	return out, nil
}

func (s *Service) SaveJob(ctx context.Context, userID, jobID primitive.ObjectID) (savedjob.SavedJob, error) {
	if userID.IsZero() || jobID.IsZero() {
		return savedjob.SavedJob{}, ErrInvalidInput
	}
	saved, err := s.saved.Insert(ctx, savedjob.SavedJob{
		User:    userID,
		Job:     jobID,
		SavedAt: time.Now().UTC(),
	})
	if err != nil {
		return savedjob.SavedJob{}, ErrInternal
	}
	return saved, nil
}

func (s *Service) SavedJobs(ctx context.Context, userID primitive.ObjectID) ([]savedjob.SavedJob, error) {
	saved, err := s.saved.FindByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	return saved, nil
}

func (s *Service) UnsaveJob(ctx context.Context, userID, jobID primitive.ObjectID) error {
	err := s.saved.Delete(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, savedjob.ErrNotFound) {
			return ErrNotFound
		}
		return ErrInternal
	}
	return nil
}
