package job

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Insert(ctx context.Context, j Job) (Job, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (Job, error)
	Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Job, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (Job, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	CountByCreator(ctx context.Context, createdBy primitive.ObjectID) (int64, error)
	Categories(ctx context.Context) ([]CategoryCount, error)
}
