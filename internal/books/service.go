package books

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/libroshare/backend/internal/auth"
	"github.com/libroshare/backend/internal/models"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrNotOwner     = errors.New("book belongs to another user")
)

// BookStore defines the interface for book persistence. Lookups return
// (nil, nil) when no document matches.
type BookStore interface {
	InsertBook(ctx context.Context, book *models.Book) (string, error)
	GetBookByID(ctx context.Context, id string) (*models.Book, error)
	ListBooks(ctx context.Context) ([]models.Book, error)
	UpdateBook(ctx context.Context, id string, book *models.Book) error
	DeleteBook(ctx context.Context, id string) error
}

// Service implements book CRUD. Reads are public; every mutation is
// token-gated, and update/delete additionally require the caller to be
// the poster.
type Service struct {
	books BookStore
	users auth.UserStore
	auth  *auth.Service
	log   zerolog.Logger
}

func NewService(books BookStore, users auth.UserStore, authSvc *auth.Service, log zerolog.Logger) *Service {
	return &Service{books: books, users: users, auth: authSvc, log: log}
}

// Create posts a new book stamped with the caller's username.
func (s *Service) Create(ctx context.Context, token, title, author, link string) (*models.Book, error) {
	userID, err := s.auth.Authenticate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup poster: %w", err)
	}
	if user == nil {
		return nil, auth.ErrUserNotFound
	}

	book := &models.Book{
		Title:    title,
		Author:   author,
		Link:     link,
		PostedBy: user.Username,
	}
	id, err := s.books.InsertBook(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", err)
	}

	created, err := s.books.GetBookByID(ctx, id)
	if err != nil || created == nil {
		return book, nil
	}
	s.log.Info().Str("book_id", id).Str("posted_by", user.Username).Msg("book posted")
	return created, nil
}

// Get returns a single book by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Book, error) {
	book, err := s.books.GetBookByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	return book, nil
}

// List returns all posted books.
func (s *Service) List(ctx context.Context) ([]models.Book, error) {
	return s.books.ListBooks(ctx)
}

// Update applies the non-nil fields of patch to a book the caller
// posted.
func (s *Service) Update(ctx context.Context, token, id string, patch models.BookPatch) error {
	book, err := s.owned(ctx, token, id)
	if err != nil {
		return err
	}

	if patch.Title != nil {
		book.Title = *patch.Title
	}
	if patch.Author != nil {
		book.Author = *patch.Author
	}
	if patch.Link != nil {
		book.Link = *patch.Link
	}

	if err := s.books.UpdateBook(ctx, id, book); err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	return nil
}

// Delete removes a book the caller posted.
func (s *Service) Delete(ctx context.Context, token, id string) error {
	if _, err := s.owned(ctx, token, id); err != nil {
		return err
	}
	if err := s.books.DeleteBook(ctx, id); err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	return nil
}

// owned authenticates the token and loads the book, requiring that the
// caller's username matches the poster.
func (s *Service) owned(ctx context.Context, token, id string) (*models.Book, error) {
	userID, err := s.auth.Authenticate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("lookup caller: %w", err)
	}
	if user == nil {
		return nil, auth.ErrUserNotFound
	}

	book, err := s.books.GetBookByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup book: %w", err)
	}
	if book == nil {
		return nil, ErrBookNotFound
	}
	if book.PostedBy != user.Username {
		return nil, ErrNotOwner
	}
	return book, nil
}
