package dummydb

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core/notes"
)

type notesRepository struct {
	db *notesTable
}

var _ notes.Repository = (*notesRepository)(nil) // interface compliance check

func NewNotesRepository(db *DB) notes.Repository {
	return &notesRepository{db: db.notes}
}

func (repo *notesRepository) CheckNoteUniqueness(_ context.Context, subjectID primitive.ObjectID, title, body string) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, n := range repo.db.table {
		if n.Subject == subjectID && n.Title == title && n.Body == body {
			return notes.ErrExists
		}
	}
	return nil
}

func (repo *notesRepository) CreateNote(_ context.Context, n notes.Note) (notes.Note, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	n.ID = primitive.NewObjectID()
	repo.db.table[n.ID] = &n
	return n, nil
}

func (repo *notesRepository) QueryNotesBySubject(_ context.Context, subjectID primitive.ObjectID) ([]notes.Note, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	nts := make([]notes.Note, 0)
	for _, n := range repo.db.table {
		if n.Subject == subjectID {
			nts = append(nts, *n)
		}
	}
	sort.Slice(nts, func(i, j int) bool { return lessID(nts[i].ID, nts[j].ID) })
	return nts, nil
}

func (repo *notesRepository) GetNoteByID(_ context.Context, id primitive.ObjectID) (notes.Note, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if n, ok := repo.db.table[id]; ok {
		return *n, nil
	}
	return notes.Note{}, notes.ErrNotFound
}

func (repo *notesRepository) UpdateNote(_ context.Context, n notes.Note) (notes.Note, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[n.ID]; !ok {
		return notes.Note{}, notes.ErrNotFound
	}
	repo.db.table[n.ID] = &n
	return n, nil
}

func (repo *notesRepository) DeleteNote(_ context.Context, id primitive.ObjectID) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return notes.ErrNotFound
	}
	delete(repo.db.table, id)
	return nil
}
