package sponsor

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("sponsor not found")

type Sponsor struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
	Logo string             `bson:"logo" json:"logo"`
}

type Repository interface {
	Insert(ctx context.Context, s Sponsor) (Sponsor, error)
	FindAll(ctx context.Context) ([]Sponsor, error)
}
