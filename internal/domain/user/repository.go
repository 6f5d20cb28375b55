package user

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository interface {
	Insert(ctx context.Context, u User) (User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]User, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (User, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}
