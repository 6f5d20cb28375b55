package savedjob

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("saved job not found")

type SavedJob struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User    primitive.ObjectID `bson:"user" json:"user"`
	Job     primitive.ObjectID `bson:"job" json:"job"`
	SavedAt time.Time          `bson:"savedAt" json:"savedAt"`
}

type Repository interface {
	Insert(ctx context.Context, s SavedJob) (SavedJob, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]SavedJob, error)
	Delete(ctx context.Context, userID, jobID primitive.ObjectID) error
}
