package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"medidex/internal/models"
)

// MongoMedicines implements MedicineStore on the medicines collection.
type MongoMedicines struct {
	db *mongo.Database
}

func NewMongoMedicines(db *mongo.Database) *MongoMedicines {
	return &MongoMedicines{db: db}
}

var _ MedicineStore = (*MongoMedicines)(nil)

func (s *MongoMedicines) Insert(ctx context.Context, m *models.Medicine) error {
	res, err := s.db.Collection("medicines").InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = id
	}
	return nil
}

func (s *MongoMedicines) Get(ctx context.Context, id string) (*models.Medicine, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var med models.Medicine
	err = s.db.Collection("medicines").FindOne(ctx, bson.M{"_id": objectID}).Decode(&med)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &med, nil
}

func (s *MongoMedicines) List(ctx context.Context) ([]models.Medicine, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := s.db.Collection("medicines").Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	medicines := make([]models.Medicine, 0)
	if err := cursor.All(ctx, &medicines); err != nil {
		return nil, err
	}
	return medicines, nil
}

func (s *MongoMedicines) Update(ctx context.Context, m *models.Medicine) error {
	res, err := s.db.Collection("medicines").ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoMedicines) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.db.Collection("medicines").DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
