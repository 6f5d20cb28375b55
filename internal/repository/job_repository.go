package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jobify/internal/database"
	"jobify/internal/domain/job"
)

type MongoJobRepository struct {
	coll *mongo.Collection
}

func NewMongoJobRepository(db *database.Mongo) *MongoJobRepository {
	return &MongoJobRepository{coll: db.Collection(database.CollJobs)}
}

func (r *MongoJobRepository) Insert(ctx context.Context, j job.Job) (job.Job, error) {
	res, err := r.coll.InsertOne(ctx, j)
	if err != nil {
		return job.Job{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		j.ID = id
	}
	return j, nil
}

func (r *MongoJobRepository) FindByID(ctx context.Context, id primitive.ObjectID) (job.Job, error) {
	var j job.Job
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&j)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *MongoJobRepository) Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]job.Job, error) {
	if filter == nil {
		filter = bson.M{}
	}
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	jobs := []job.Job{}
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *MongoJobRepository) UpdateByID(ctx context.Context, id primitive.ObjectID, set bson.M) (job.Job, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var j job.Job
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&j)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

func (r *MongoJobRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *MongoJobRepository) CountByCreator(ctx context.Context, createdBy primitive.ObjectID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"createdBy": createdBy})
}

func (r *MongoJobRepository) Categories(ctx context.Context) ([]job.CategoryCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "totalJob", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []job.CategoryCount{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
