package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"jobify/internal/database"
	"jobify/internal/domain/application"
)

type MongoApplicationRepository struct {
	coll *mongo.Collection
}

func NewMongoApplicationRepository(db *database.Mongo) *MongoApplicationRepository {
	return &MongoApplicationRepository{coll: db.Collection(database.CollApplications)}
}

func (r *MongoApplicationRepository) Insert(ctx context.Context, a application.Application) (application.Application, error) {
	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return application.Application{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = id
	}
	return a, nil
}

func (r *MongoApplicationRepository) Find(ctx context.Context, filter bson.M) ([]application.Application, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	apps := []application.Application{}
	if err := cur.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *MongoApplicationRepository) FindByJobIDs(ctx context.Context, jobIDs []primitive.ObjectID) ([]application.Application, error) {
	if len(jobIDs) == 0 {
		return []application.Application{}, nil
	}
	return r.Find(ctx, bson.M{"job": bson.M{"$in": jobIDs}})
}
