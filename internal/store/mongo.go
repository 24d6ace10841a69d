package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/libroshare/backend/internal/auth"
	"github.com/libroshare/backend/internal/models"
)

// MongoStore handles user and book document CRUD in MongoDB.
type MongoStore struct {
	users *mongo.Collection
	books *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		users: db.Collection("users"),
		books: db.Collection("books"),
	}
}

// EnsureIndexes creates the unique email index backing the
// one-account-per-email invariant.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("mongo ensure indexes: %w", err)
	}
	return nil
}

// ── users ────────────────────────────────────────────────

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	res, err := s.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return auth.ErrEmailTaken
		}
		return fmt.Errorf("mongo insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find user by email: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Not a valid document id, so no document can match.
		return nil, nil
	}
	var user models.User
	err = s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find user by id: %w", err)
	}
	return &user, nil
}

func (s *MongoStore) UpdateUser(ctx context.Context, id string, user *models.User) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	_, err = s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"username":   user.Username,
		"password":   user.Password,
		"bookshelf":  user.Bookshelf,
		"publishies": user.Publishies,
	}})
	if err != nil {
		return fmt.Errorf("mongo update user: %w", err)
	}
	return nil
}

func (s *MongoStore) DeleteUser(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	if _, err := s.users.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("mongo delete user: %w", err)
	}
	return nil
}

// ── books ────────────────────────────────────────────────

func (s *MongoStore) InsertBook(ctx context.Context, book *models.Book) (string, error) {
	res, err := s.books.InsertOne(ctx, book)
	if err != nil {
		return "", fmt.Errorf("mongo insert book: %w", err)
	}
	oid := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

func (s *MongoStore) GetBookByID(ctx context.Context, id string) (*models.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var book models.Book
	err = s.books.FindOne(ctx, bson.M{"_id": oid}).Decode(&book)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find book: %w", err)
	}
	return &book, nil
}

func (s *MongoStore) ListBooks(ctx context.Context) ([]models.Book, error) {
	cur, err := s.books.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("mongo list books: %w", err)
	}
	defer cur.Close(ctx)

	var list []models.Book
	if err := cur.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("mongo list books: %w", err)
	}
	return list, nil
}

func (s *MongoStore) UpdateBook(ctx context.Context, id string, book *models.Book) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	_, err = s.books.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":   book.Title,
		"author":  book.Author,
		"link":    book.Link,
		"post_by": book.PostedBy,
	}})
	if err != nil {
		return fmt.Errorf("mongo update book: %w", err)
	}
	return nil
}

func (s *MongoStore) DeleteBook(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid id: %w", err)
	}
	if _, err := s.books.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("mongo delete book: %w", err)
	}
	return nil
}
