package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Medicine is a catalog entry managed from the admin inventory panel.
type Medicine struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	InStock     bool               `bson:"inStock" json:"inStock"`
	StockCount  int                `bson:"stockCount" json:"stockCount"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
