package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/AnshRaj112/userorders-backend/internal/models"
)

const UsersCollection = "users"

var (
	withoutPassword = bson.M{"password": 0}
	summaryFields   = bson.M{"_id": 0, "username": 1, "fullName": 1, "age": 1, "email": 1, "address": 1}
)

// MongoUserStore persists users as one document each, orders embedded.
type MongoUserStore struct {
	col *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{col: db.Collection(UsersCollection)}
}

// EnsureUserIndexes creates the unique userId index.
// Called on startup from main after Mongo has connected.
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetName("idx_user_id").SetUnique(true),
	})
	return err
}

func (s *MongoUserStore) Insert(ctx context.Context, user *models.User) error {
	res, err := s.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.Join(ErrDuplicateUserID, err)
		}
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (s *MongoUserStore) List(ctx context.Context) ([]models.UserSummary, error) {
	cur, err := s.col.Find(ctx, bson.M{}, options.Find().SetProjection(summaryFields))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.UserSummary{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *MongoUserStore) FindByUserID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"userId": userID}, options.FindOne().SetProjection(withoutPassword)).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Normalize()
	return &user, nil
}

func (s *MongoUserStore) Update(ctx context.Context, userID string, patch models.UserPatch, now time.Time) (*models.User, error) {
	if patch.IsEmpty() {
		return s.FindByUserID(ctx, userID)
	}

	set := patch.SetFields()
	set["updatedAt"] = now

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	var user models.User
	err := s.col.FindOneAndUpdate(ctx, bson.M{"userId": userID}, bson.M{"$set": set}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Normalize()
	return &user, nil
}

func (s *MongoUserStore) Delete(ctx context.Context, userID string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *MongoUserStore) AppendOrder(ctx context.Context, userID string, order models.Order, now time.Time) error {
	update := bson.M{
		"$push": bson.M{"orders": order},
		"$set":  bson.M{"updatedAt": now},
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"userId": userID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *MongoUserStore) Ping(ctx context.Context) error {
	return s.col.Database().Client().Ping(ctx, readpref.Primary())
}
