package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"jobify/internal/database"
	"jobify/internal/domain/sponsor"
)

type MongoSponsorRepository struct {
	coll *mongo.Collection
}

func NewMongoSponsorRepository(db *database.Mongo) *MongoSponsorRepository {
	return &MongoSponsorRepository{coll: db.Collection(database.CollSponsors)}
}

func (r *MongoSponsorRepository) Insert(ctx context.Context, s sponsor.Sponsor) (sponsor.Sponsor, error) {
	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return sponsor.Sponsor{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = id
	}
	return s, nil
}

func (r *MongoSponsorRepository) FindAll(ctx context.Context) ([]sponsor.Sponsor, error) {
	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	sponsors := []sponsor.Sponsor{}
	if err := cur.All(ctx, &sponsors); err != nil {
		return nil, err
	}
	return sponsors, nil
}
