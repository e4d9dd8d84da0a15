package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tshims/shule/core/notes"
)

type notesRepository struct {
	db   *DB
	coll *mongo.Collection
}

var _ notes.Repository = (*notesRepository)(nil) // interface compliance check

func NewNotesRepository(db *DB) notes.Repository {
	return &notesRepository{db: db, coll: db.db.Collection(notesCollection)}
}

func (repo *notesRepository) CheckNoteUniqueness(ctx context.Context, subjectID primitive.ObjectID, title, body string) error {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	n, err := repo.coll.CountDocuments(ctx, bson.M{"subject": subjectID, "title": title, "body": body})
	if err != nil {
		return err
	}
	if n > 0 {
		return notes.ErrExists
	}
	return nil
}

func (repo *notesRepository) CreateNote(ctx context.Context, n notes.Note) (notes.Note, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.InsertOne(ctx, n)
	if err != nil {
		return notes.Note{}, err
	}
	n.ID = res.InsertedID.(primitive.ObjectID)
	return n, nil
}

func (repo *notesRepository) QueryNotesBySubject(ctx context.Context, subjectID primitive.ObjectID) ([]notes.Note, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	cur, err := repo.coll.Find(ctx, bson.M{"subject": subjectID})
	if err != nil {
		return nil, err
	}
	nts := make([]notes.Note, 0)
	if err = cur.All(ctx, &nts); err != nil {
		return nil, err
	}
	return nts, nil
}

func (repo *notesRepository) GetNoteByID(ctx context.Context, id primitive.ObjectID) (notes.Note, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	var n notes.Note
	if err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&n); err != nil {
		if err == mongo.ErrNoDocuments {
			return notes.Note{}, notes.ErrNotFound
		}
		return notes.Note{}, err
	}
	return n, nil
}

func (repo *notesRepository) UpdateNote(ctx context.Context, n notes.Note) (notes.Note, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": n.ID}, n)
	if err != nil {
		return notes.Note{}, err
	}
	if res.MatchedCount == 0 {
		return notes.Note{}, notes.ErrNotFound
	}
	return n, nil
}

func (repo *notesRepository) DeleteNote(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return notes.ErrNotFound
	}
	return nil
}
