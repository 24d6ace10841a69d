package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Book is a single posted book stored in MongoDB.
type Book struct {
	ID       primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title    string             `json:"title" bson:"title"`
	Author   string             `json:"author" bson:"author"`
	Link     string             `json:"link" bson:"link"`
	PostedBy string             `json:"posted_by" bson:"post_by"`
}

// CreateBookRequest is the JSON body for POST /api/books.
type CreateBookRequest struct {
	Title  string `json:"title" validate:"required"`
	Author string `json:"author" validate:"required"`
	Link   string `json:"link"`
}

// BookPatch is the JSON body for PUT /api/books/{id}. Nil fields are
// left untouched.
type BookPatch struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Link   *string `json:"link"`
}
