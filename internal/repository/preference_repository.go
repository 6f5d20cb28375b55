package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"jobify/internal/database"
	"jobify/internal/domain/preference"
)

type MongoPreferenceRepository struct {
	coll *mongo.Collection
}

func NewMongoPreferenceRepository(db *database.Mongo) *MongoPreferenceRepository {
	return &MongoPreferenceRepository{coll: db.Collection(database.CollPreferences)}
}

func (r *MongoPreferenceRepository) Upsert(ctx context.Context, p preference.Preferences) (preference.Preferences, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	set := bson.M{
		"user":      p.User,
		"jobAlerts": p.JobAlerts,
		"updatedAt": p.UpdatedAt,
	}
	if p.PreferredJobTypes != nil {
		set["preferredJobTypes"] = p.PreferredJobTypes
	}

	var out preference.Preferences
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"user": p.User}, bson.M{"$set": set}, opts).Decode(&out)
	if err != nil {
		return preference.Preferences{}, err
	}
	return out, nil
}

func (r *MongoPreferenceRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (preference.Preferences, error) {
	var p preference.Preferences
	err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return preference.Preferences{}, preference.ErrNotFound
		}
		return preference.Preferences{}, err
	}
	return p, nil
}
