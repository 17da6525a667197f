package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Product struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name" binding:"required"`
	Description    string             `bson:"description" json:"description" binding:"required"`
	Price          float64            `bson:"price" json:"price" binding:"required,gt=0"`
	Image          string             `bson:"image" json:"image" binding:"required"`
	Images         []string           `bson:"images,omitempty" json:"images,omitempty"`
	Category       string             `bson:"category" json:"category" binding:"required,oneof=tractors harvesters tillers seeders sprayers"`
	Colors         []string           `bson:"colors,omitempty" json:"colors,omitempty"`
	Specifications []string           `bson:"specifications,omitempty" json:"specifications,omitempty"`
	Stock          int                `bson:"stock" json:"stock" binding:"min=0"`
	Rating         float64            `bson:"rating" json:"rating"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ProductSnapshot is the subset of product fields frozen into an order line
// at checkout time.
type ProductSnapshot struct {
	ID    string  `bson:"id" json:"id"`
	Name  string  `bson:"name" json:"name"`
	Price float64 `bson:"price" json:"price"`
	Image string  `bson:"image" json:"image"`
}
