package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status wire values. Any status may follow any other; values outside
// this set are rejected.
const (
	StatusReceived       = "RECEIVED"
	StatusProcessing     = "PROCESSING"
	StatusOutForDelivery = "OUT_FOR_DELIVERY"
	StatusCompleted      = "COMPLETED"
	StatusCancelled      = "CANCELLED"
)

// ValidStatus reports whether s is one of the five order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusReceived, StatusProcessing, StatusOutForDelivery, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// OrderItem is one catalog line within an order. Name and price are
// snapshots taken at order time so later catalog edits do not rewrite
// historical orders.
type OrderItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// MapLocation is an optional delivery coordinate pair.
type MapLocation struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// Order defines the persisted order document. Total is always the
// server-computed sum of its items.
type Order struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                 string             `bson:"name" json:"name"`
	Phone                string             `bson:"phone" json:"phone"`
	Location             string             `bson:"location" json:"location"`
	CNIC                 string             `bson:"cnic,omitempty" json:"cnic,omitempty"`
	DoctorRecommended    bool               `bson:"doctorRecommended" json:"doctorRecommended"`
	PrescriptionFile     string             `bson:"prescriptionFile,omitempty" json:"prescriptionFile,omitempty"`
	PrescriptionFileName string             `bson:"prescriptionFileName,omitempty" json:"prescriptionFileName,omitempty"`
	MapLocation          *MapLocation       `bson:"mapLocation,omitempty" json:"mapLocation,omitempty"`
	Items                []OrderItem        `bson:"items" json:"items"`
	Total                float64            `bson:"total" json:"total"`
	Status               string             `bson:"status" json:"status"`
	AssignedTo           string             `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}
