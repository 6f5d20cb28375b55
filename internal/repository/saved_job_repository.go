package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"jobify/internal/database"
	"jobify/internal/domain/savedjob"
)

type MongoSavedJobRepository struct {
	coll *mongo.Collection
}

func NewMongoSavedJobRepository(db *database.Mongo) *MongoSavedJobRepository {
	return &MongoSavedJobRepository{coll: db.Collection(database.CollSavedJobs)}
}

func (r *MongoSavedJobRepository) Insert(ctx context.Context, s savedjob.SavedJob) (savedjob.SavedJob, error) {
	res, err := r.coll.InsertOne(ctx, s)
	if err != nil {
		return savedjob.SavedJob{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = id
	}
	return s, nil
}

func (r *MongoSavedJobRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]savedjob.SavedJob, error) {
	cur, err := r.coll.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	saved := []savedjob.SavedJob{}
	if err := cur.All(ctx, &saved); err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *MongoSavedJobRepository) Delete(ctx context.Context, userID, jobID primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"user": userID, "job": jobID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return savedjob.ErrNotFound
	}
	return nil
}
