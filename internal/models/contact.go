// Package models defines the documents stored in the portfolio database.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactMessage is a visitor submission from the contact form, stored in MongoDB.
// Documents are created once and never updated.
type ContactMessage struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Message     string             `bson:"message" json:"message"`
	Fingerprint string             `bson:"fingerprint" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
