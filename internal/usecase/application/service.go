package application

import (
	"context"
	"errors"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"jobify/internal/domain/application"
	"jobify/internal/domain/document"
	"jobify/internal/domain/job"
)

var (
	ErrResumeRequired = errors.New("resume required")
	ErrJobNotFound    = errors.New("job not found")
	ErrInternal       = errors.New("internal error")
)

type ApplyInput struct {
	UserID      primitive.ObjectID
	JobID       primitive.ObjectID
	CoverLetter string

	// Paths already persisted by the upload store.
	ResumePath      string
	CoverLetterPath string
}

type Usecase interface {
	Apply(ctx context.Context, in ApplyInput) (application.Application, error)
}

// FileRemover deletes a stored upload during compensation.
type FileRemover interface {
	Remove(rel string) error
}

type Service struct {
	apps      application.Repository
	documents document.Repository
	jobs      job.Repository
	files     FileRemover
	logger    *log.Logger
}

func NewService(apps application.Repository, documents document.Repository, jobs job.Repository, files FileRemover, logger *log.Logger) *Service {
	return &Service{apps: apps, documents: documents, jobs: jobs, files: files, logger: logger}
}

// Apply writes the uploaded documents first and the application second.
// The store gives no cross-document transaction, so a failed second
// step compensates by deleting the documents it just created instead of
// leaving them orphaned.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (application.Application, error) {
	if in.ResumePath == "" {
		return application.Application{}, ErrResumeRequired
	}

	if _, err := s.jobs.FindByID(ctx, in.JobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}

	now := time.Now().UTC()

	var created []document.Document
	compensate := func() {
		for _, d := range created {
			if err := s.documents.DeleteByID(ctx, d.ID); err != nil {
				s.logf("[Apply] compensation failed for document %s: %v", d.ID.Hex(), err)
			}
			if s.files != nil {
				_ = s.files.Remove(d.FileURL)
			}
		}
	}

	resume, err := s.documents.Insert(ctx, document.Document{
		User:       in.UserID,
		Type:       document.TypeCV,
		FileURL:    in.ResumePath,
		UploadedAt: now,
	})
	if err != nil {
		return application.Application{}, ErrInternal
	}
	created = append(created, resume)

	var coverLetterID *primitive.ObjectID
	if in.CoverLetterPath != "" {
		cl, err := s.documents.Insert(ctx, document.Document{
			User:       in.UserID,
			Type:       document.TypeCoverLetter,
			FileURL:    in.CoverLetterPath,
			UploadedAt: now,
		})
		if err != nil {
			compensate()
			return application.Application{}, ErrInternal
		}
		created = append(created, cl)
		coverLetterID = &cl.ID
	}

	app, err := s.apps.Insert(ctx, application.Application{
		User:                in.UserID,
		Job:                 in.JobID,
		CoverLetter:         in.CoverLetter,
		Resume:              resume.ID,
		AdditionalDocuments: coverLetterID,
		Status:              application.StatusApplied,
		CreatedAt:           now,
		UpdatedAt:           now,
	})
	if err != nil {
		compensate()
		return application.Application{}, ErrInternal
	}

	return app, nil
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
