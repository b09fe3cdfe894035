package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Care holds the free-form care instructions attached to a plant.
type Care struct {
	Water      string `bson:"water,omitempty" json:"water,omitempty"`
	Light      string `bson:"light,omitempty" json:"light,omitempty"`
	Difficulty string `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
}

// Plant is the catalog's single entity. Images holds either durable
// object-storage URLs or self-contained data URIs; it is never empty
// once a record has been created.
type Plant struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	Category      string             `bson:"category" json:"category"`
	Rating        float64            `bson:"rating" json:"rating"`
	StockQuantity int                `bson:"stockQuantity" json:"stockQuantity"`
	Popular       bool               `bson:"popular" json:"popular"`
	Care          Care               `bson:"care" json:"care"`
	Images        []string           `bson:"images" json:"images"`
	Date          time.Time          `bson:"date" json:"date"`
}

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
	Date     time.Time          `bson:"date" json:"date"`
}
