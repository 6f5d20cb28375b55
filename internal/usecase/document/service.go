package document

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobify/internal/domain/document"
)

var (
	ErrInvalidType = errors.New("invalid document type")
	ErrInvalidFile = errors.New("no valid file or file URL provided")
	ErrInternal    = errors.New("internal error")
)

type UploadInput struct {
	UserID  primitive.ObjectID
	Type    string
	FileURL string
}

type Usecase interface {
	Upload(ctx context.Context, in UploadInput) (document.Document, error)
}

type Service struct {
	documents document.Repository
}

func NewService(documents document.Repository) *Service {
	return &Service{documents: documents}
}

func (s *Service) Upload(ctx context.Context, in UploadInput) (document.Document, error) {
	typ, ok := document.ParseType(strings.TrimSpace(in.Type))
	if !ok {
		return document.Document{}, ErrInvalidType
	}
	if !document.ValidFileURL(in.FileURL) {
		return document.Document{}, ErrInvalidFile
	}

	d, err := s.documents.Insert(ctx, document.Document{
		User:       in.UserID,
		Type:       typ,
		FileURL:    strings.TrimSpace(in.FileURL),
		UploadedAt: time.Now().UTC(),
	})
	if err != nil {
		return document.Document{}, ErrInternal
	}
	return d, nil
}
