package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tshims/shule/core/teacher"
)

type teacherRepository struct {
	db   *DB
	coll *mongo.Collection
}

var _ teacher.Repository = (*teacherRepository)(nil) // interface compliance check

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db, coll: db.db.Collection(teachersCollection)}
}

func (repo *teacherRepository) CheckUsernameUniqueness(ctx context.Context, username string, excludedTeachers ...teacher.Teacher) error {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	filter := bson.M{"username": username}
	if len(excludedTeachers) > 0 {
		ids := make([]primitive.ObjectID, 0, len(excludedTeachers))
		for _, t := range excludedTeachers {
			ids = append(ids, t.ID)
		}
		filter["_id"] = bson.M{"$nin": ids}
	}

	n, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return err
	}
	if n > 0 {
		return teacher.ErrUsernameExists
	}
	return nil
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, t teacher.Teacher) (teacher.Teacher, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.InsertOne(ctx, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return teacher.Teacher{}, teacher.ErrUsernameExists
		}
		return teacher.Teacher{}, err
	}
	t.ID = res.InsertedID.(primitive.ObjectID)
	return t, nil
}

func (repo *teacherRepository) QueryAllTeachers(ctx context.Context) ([]teacher.Teacher, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	cur, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	teachers := make([]teacher.Teacher, 0)
	if err = cur.All(ctx, &teachers); err != nil {
		return nil, err
	}
	return teachers, nil
}

func (repo *teacherRepository) GetTeacherByID(ctx context.Context, id primitive.ObjectID) (teacher.Teacher, error) {
	return repo.get(ctx, bson.M{"_id": id})
}

func (repo *teacherRepository) GetTeacherByUsername(ctx context.Context, username string) (teacher.Teacher, error) {
	return repo.get(ctx, bson.M{"username": username})
}

func (repo *teacherRepository) get(ctx context.Context, filter bson.M) (teacher.Teacher, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	var t teacher.Teacher
	if err := repo.coll.FindOne(ctx, filter).Decode(&t); err != nil {
		if err == mongo.ErrNoDocuments {
			return teacher.Teacher{}, teacher.ErrNotFound
		}
		return teacher.Teacher{}, err
	}
	return t, nil
}

func (repo *teacherRepository) UpdateTeacher(ctx context.Context, t teacher.Teacher) (teacher.Teacher, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return teacher.Teacher{}, teacher.ErrUsernameExists
		}
		return teacher.Teacher{}, err
	}
	if res.MatchedCount == 0 {
		return teacher.Teacher{}, teacher.ErrNotFound
	}
	return t, nil
}

func (repo *teacherRepository) DeleteTeacher(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return teacher.ErrNotFound
	}
	return nil
}
