package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tshims/shule/core/student"
)

type studentRepository struct {
	db   *DB
	coll *mongo.Collection
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db, coll: db.db.Collection(studentsCollection)}
}

func (repo *studentRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.InsertOne(ctx, s)
	if err != nil {
		return student.Student{}, err
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return s, nil
}

func (repo *studentRepository) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	cur, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	students := make([]student.Student, 0)
	if err = cur.All(ctx, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *studentRepository) GetStudentByID(ctx context.Context, id primitive.ObjectID) (student.Student, error) {
	return repo.get(ctx, bson.M{"_id": id})
}

// GetStudentByUsername returns the first match; student usernames are not
// unique in storage.
func (repo *studentRepository) GetStudentByUsername(ctx context.Context, username string) (student.Student, error) {
	return repo.get(ctx, bson.M{"username": username})
}

func (repo *studentRepository) get(ctx context.Context, filter bson.M) (student.Student, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	var s student.Student
	if err := repo.coll.FindOne(ctx, filter).Decode(&s); err != nil {
		if err == mongo.ErrNoDocuments {
			return student.Student{}, student.ErrNotFound
		}
		return student.Student{}, err
	}
	return s, nil
}

func (repo *studentRepository) UpdateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": s.ID}, s)
	if err != nil {
		return student.Student{}, err
	}
	if res.MatchedCount == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return s, nil
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return student.ErrNotFound
	}
	return nil
}
