package auth

import (
	"context"
	"photodoc-service/internal/app/contracts"
	"photodoc-service/internal/app/models"
	"photodoc-service/internal/pkg/constvars"
	"photodoc-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserMongoRepository struct {
	Collection *mongo.Collection
}

func NewUserMongoRepository(client *mongo.Client, dbName string) contracts.CredentialRepository {
	return &UserMongoRepository{
		Collection: client.Database(dbName).Collection(constvars.MongoCollectionUsers),
	}
}

func (r *UserMongoRepository) FindHashByUsername(ctx context.Context, username string) (string, error) {
	var user models.User
	err := r.Collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", exceptions.ErrMongoDBFindDocument(err)
	}
	return user.PasswordHash, nil
}

func (r *UserMongoRepository) StoreHash(ctx context.Context, username, hash string) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"passwordHash": hash,
			"updatedAt":    now,
		},
		"$setOnInsert": bson.M{
			"username":  username,
			"createdAt": now,
		},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"username": username}, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpsertDocument(err)
	}
	return nil
}
