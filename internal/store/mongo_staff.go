package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medidex/internal/models"
)

// MongoStaff implements StaffStore on the staff collection.
type MongoStaff struct {
	db *mongo.Database
}

func NewMongoStaff(db *mongo.Database) *MongoStaff {
	return &MongoStaff{db: db}
}

var _ StaffStore = (*MongoStaff)(nil)

func (s *MongoStaff) Insert(ctx context.Context, a *models.StaffAccount) error {
	res, err := s.db.Collection("staff").InsertOne(ctx, a)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = id
	}
	return nil
}

func (s *MongoStaff) Get(ctx context.Context, id string) (*models.StaffAccount, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var acct models.StaffAccount
	err = s.db.Collection("staff").FindOne(ctx, bson.M{"_id": objectID}).Decode(&acct)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (s *MongoStaff) GetByEmail(ctx context.Context, email string) (*models.StaffAccount, error) {
	var acct models.StaffAccount
	err := s.db.Collection("staff").FindOne(ctx, bson.M{"email": email}).Decode(&acct)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acct, nil
}

func (s *MongoStaff) List(ctx context.Context) ([]models.StaffAccount, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.db.Collection("staff").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	accounts := make([]models.StaffAccount, 0)
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *MongoStaff) Update(ctx context.Context, a *models.StaffAccount) error {
	res, err := s.db.Collection("staff").ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStaff) Count(ctx context.Context) (int64, error) {
	return s.db.Collection("staff").CountDocuments(ctx, bson.M{})
}
