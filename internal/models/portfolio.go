package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a portfolio entry. JSON names follow the frontend's expectations.
type Project struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id" yaml:"-"`
	Title        string             `bson:"title" json:"title" yaml:"title"`
	Description  string             `bson:"description" json:"description" yaml:"description"`
	Details      string             `bson:"details,omitempty" json:"details,omitempty" yaml:"details"`
	Features     string             `bson:"features,omitempty" json:"features,omitempty" yaml:"features"`
	Year         string             `bson:"year" json:"year" yaml:"year"`
	Category     string             `bson:"category" json:"category" yaml:"category"`
	Featured     bool               `bson:"featured" json:"featured" yaml:"featured"`
	Technologies []string           `bson:"technologies" json:"technologies" yaml:"technologies"`
	ImageURL     string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty" yaml:"image_url"`
	Link         string             `bson:"link,omitempty" json:"link,omitempty" yaml:"link"`
	GitHub       string             `bson:"github,omitempty" json:"github,omitempty" yaml:"github"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt" yaml:"-"`
}

// Skill is a named competency with an optional proficiency level and category.
type Skill struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id" yaml:"-"`
	Name      string             `bson:"name" json:"name" yaml:"name"`
	Level     string             `bson:"level,omitempty" json:"level,omitempty" yaml:"level"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty" yaml:"category"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt" yaml:"-"`
}
