package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tshims/shule/core/subject"
)

type subjectRepository struct {
	db   *DB
	coll *mongo.Collection
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *DB) subject.Repository {
	return &subjectRepository{db: db, coll: db.db.Collection(subjectsCollection)}
}

// CheckSubjectUniqueness matches the full composite key, enrollment array
// included. The array keeps this out of a unique index, so the check stays a
// separate read and the create below is not conditional.
func (repo *subjectRepository) CheckSubjectUniqueness(ctx context.Context, key subject.Subject) error {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	n, err := repo.coll.CountDocuments(ctx, bson.M{
		"department": key.Department,
		"subject":    key.Name,
		"students":   key.Students,
		"teacher":    key.Teacher,
	})
	if err != nil {
		return err
	}
	if n > 0 {
		return subject.ErrExists
	}
	return nil
}

func (repo *subjectRepository) CreateSubject(ctx context.Context, sub subject.Subject) (subject.Subject, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.InsertOne(ctx, sub)
	if err != nil {
		return subject.Subject{}, err
	}
	sub.ID = res.InsertedID.(primitive.ObjectID)
	return sub, nil
}

func (repo *subjectRepository) GetSubject(ctx context.Context, id primitive.ObjectID) (subject.Detail, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": id}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         teachersCollection,
			"localField":   "teacher",
			"foreignField": "_id",
			"as":           "teacher",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$teacher", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         studentsCollection,
			"localField":   "students",
			"foreignField": "_id",
			"as":           "students",
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"department":    1,
			"semester":      1,
			"year":          1,
			"subject":       1,
			"teacher._id":   1,
			"teacher.name":  1,
			"students._id":  1,
			"students.name": 1,
		}}},
	}

	cur, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return subject.Detail{}, err
	}
	details := make([]subject.Detail, 0, 1)
	if err = cur.All(ctx, &details); err != nil {
		return subject.Detail{}, err
	}
	if len(details) == 0 {
		return subject.Detail{}, subject.ErrNotFound
	}
	return details[0], nil
}

func (repo *subjectRepository) ListByTeacher(ctx context.Context, teacherID primitive.ObjectID) ([]subject.TeacherSubject, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	// the enrollment set stays server-side
	opts := options.Find().SetProjection(bson.M{"students": 0})
	cur, err := repo.coll.Find(ctx, bson.M{"teacher": teacherID}, opts)
	if err != nil {
		return nil, err
	}
	subjects := make([]subject.TeacherSubject, 0)
	if err = cur.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (repo *subjectRepository) ListForStudent(ctx context.Context, studentID primitive.ObjectID) ([]subject.StudentSubject, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         teachersCollection,
			"localField":   "teacher",
			"foreignField": "_id",
			"as":           "teacher",
		}}},
		bson.D{{Key: "$unwind", Value: "$teacher"}},
		bson.D{{Key: "$project", Value: bson.M{
			"students":     bson.M{"$in": bson.A{studentID, "$students"}},
			"semester":     1,
			"year":         1,
			"subject":      1,
			"teacher._id":  1,
			"teacher.name": 1,
		}}},
		bson.D{{Key: "$match", Value: bson.M{"students": true}}},
	}

	cur, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	subjects := make([]subject.StudentSubject, 0)
	if err = cur.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (repo *subjectRepository) Catalog(ctx context.Context, studentID primitive.ObjectID) ([]subject.CatalogSubject, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         teachersCollection,
			"localField":   "teacher",
			"foreignField": "_id",
			"as":           "teacher",
		}}},
		bson.D{{Key: "$unwind", Value: "$teacher"}},
		bson.D{{Key: "$project", Value: bson.M{
			"department":   1,
			"semester":     1,
			"year":         1,
			"subject":      1,
			"students":     1,
			"teacher.name": 1,
			"joined":       bson.M{"$in": bson.A{studentID, "$students"}},
		}}},
	}

	cur, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	subjects := make([]subject.CatalogSubject, 0)
	if err = cur.All(ctx, &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (repo *subjectRepository) ListStudents(ctx context.Context, subjectID primitive.ObjectID) ([]subject.EnrolledStudent, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": subjectID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         studentsCollection,
			"localField":   "students",
			"foreignField": "_id",
			"as":           "students",
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"students._id":  1,
			"students.name": 1,
		}}},
	}

	cur, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var rosters []struct {
		Students []subject.EnrolledStudent `bson:"students"`
	}
	if err = cur.All(ctx, &rosters); err != nil {
		return nil, err
	}
	if len(rosters) == 0 {
		return nil, subject.ErrNotFound
	}
	return rosters[0].Students, nil
}

func (repo *subjectRepository) ReplaceStudents(ctx context.Context, subjectID primitive.ObjectID, students []primitive.ObjectID) error {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.UpdateOne(ctx, bson.M{"_id": subjectID}, bson.M{"$set": bson.M{"students": students}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return subject.ErrNotFound
	}
	return nil
}

func (repo *subjectRepository) DeleteSubject(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return subject.ErrNotFound
	}
	return nil
}
