package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"jobify/internal/database"
	"jobify/internal/domain/document"
)

type MongoDocumentRepository struct {
	coll *mongo.Collection
}

func NewMongoDocumentRepository(db *database.Mongo) *MongoDocumentRepository {
	return &MongoDocumentRepository{coll: db.Collection(database.CollDocuments)}
}

func (r *MongoDocumentRepository) Insert(ctx context.Context, d document.Document) (document.Document, error) {
	res, err := r.coll.InsertOne(ctx, d)
	if err != nil {
		return document.Document{}, err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		d.ID = id
	}
	return d, nil
}

func (r *MongoDocumentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (document.Document, error) {
	var d document.Document
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return document.Document{}, document.ErrNotFound
		}
		return document.Document{}, err
	}
	return d, nil
}

func (r *MongoDocumentRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return document.ErrNotFound
	}
	return nil
}
