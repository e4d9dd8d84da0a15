package notes

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("Note Not Found")
	ErrExists   = core.NewConflictError("Note already exists")
)

type (
	Repository interface {
		// CheckNoteUniqueness reports ErrExists if an identical note (same
		// subject, title and body) already exists.
		CheckNoteUniqueness(ctx context.Context, subjectID primitive.ObjectID, title, body string) error
		CreateNote(ctx context.Context, n Note) (Note, error)
		QueryNotesBySubject(ctx context.Context, subjectID primitive.ObjectID) ([]Note, error)
		GetNoteByID(ctx context.Context, id primitive.ObjectID) (Note, error)
		UpdateNote(ctx context.Context, n Note) (Note, error)
		DeleteNote(ctx context.Context, id primitive.ObjectID) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(ctx context.Context, subjectID primitive.ObjectID, title, body string) error {
	return svc.repo.CheckNoteUniqueness(ctx, subjectID, title, body)
}

func (svc *Service) Create(ctx context.Context, nn NewNote) (Note, error) {
	now := time.Now().UTC()
	n := Note{
		Subject:   nn.subjectID,
		Title:     nn.Title,
		Body:      nn.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateNote(ctx, n)
}

func (svc *Service) QueryBySubject(ctx context.Context, subjectID primitive.ObjectID) ([]Note, error) {
	return svc.repo.QueryNotesBySubject(ctx, subjectID)
}

func (svc *Service) GetByID(ctx context.Context, id primitive.ObjectID) (Note, error) {
	return svc.repo.GetNoteByID(ctx, id)
}

// Update rewrites the note's title and body only; its subject reference is
// kept from the stored record.
func (svc *Service) Update(ctx context.Context, orig Note, un UpdateNote) (Note, error) {
	n := orig
	n.Title = un.Title
	n.Body = un.Body
	n.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateNote(ctx, n)
}

func (svc *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	return svc.repo.DeleteNote(ctx, id)
}
