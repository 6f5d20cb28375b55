package sponsor

import (
	"context"
	"errors"
	"strings"

	"jobify/internal/domain/sponsor"
)

var (
	ErrNameRequired = errors.New("sponsor name required")
	ErrLogoRequired = errors.New("sponsor logo required")
	ErrInternal     = errors.New("internal error")
)

type Usecase interface {
	Create(ctx context.Context, name, logoPath string) (sponsor.Sponsor, error)
	List(ctx context.Context) ([]sponsor.Sponsor, error)
}

type Service struct {
	sponsors sponsor.Repository
}

func NewService(sponsors sponsor.Repository) *Service {
	return &Service{sponsors: sponsors}
}

func (s *Service) Create(ctx context.Context, name, logoPath string) (sponsor.Sponsor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return sponsor.Sponsor{}, ErrNameRequired
	}
	if strings.TrimSpace(logoPath) == "" {
		return sponsor.Sponsor{}, ErrLogoRequired
	}

	created, err := s.sponsors.Insert(ctx, sponsor.Sponsor{Name: name, Logo: logoPath})
	if err != nil {
		return sponsor.Sponsor{}, ErrInternal
	}
	return created, nil
}

func (s *Service) List(ctx context.Context) ([]sponsor.Sponsor, error) {
	sponsors, err := s.sponsors.FindAll(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return sponsors, nil
}
