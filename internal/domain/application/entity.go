package application

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("application not found")

type Status string

const (
	StatusApplied     Status = "applied"
	StatusReviewed    Status = "reviewed"
	StatusInterviewed Status = "interviewed"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusApplied, StatusReviewed, StatusInterviewed, StatusAccepted, StatusRejected:
		return Status(s), true
	}
	return "", false
}

type Application struct {
	ID                  primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	User                primitive.ObjectID  `bson:"user" json:"user"`
	Job                 primitive.ObjectID  `bson:"job" json:"job"`
	CoverLetter         string              `bson:"coverLetter,omitempty" json:"coverLetter,omitempty"`
	Resume              primitive.ObjectID  `bson:"resume" json:"resume"`
	AdditionalDocuments *primitive.ObjectID `bson:"additionalDocuments,omitempty" json:"additionalDocuments,omitempty"`
	Status              Status              `bson:"status" json:"status"`
	CreatedAt           time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time           `bson:"updatedAt" json:"updatedAt"`
}

type Repository interface {
	Insert(ctx context.Context, a Application) (Application, error)
	Find(ctx context.Context, filter bson.M) ([]Application, error)
	FindByJobIDs(ctx context.Context, jobIDs []primitive.ObjectID) ([]Application, error)
}
