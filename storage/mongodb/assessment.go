package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tshims/shule/core/assessment"
)

type internalRepository struct {
	db   *DB
	coll *mongo.Collection
}

var _ assessment.Repository = (*internalRepository)(nil) // interface compliance check

func NewInternalRepository(db *DB) assessment.Repository {
	return &internalRepository{db: db, coll: db.db.Collection(internalsCollection)}
}

func (repo *internalRepository) CheckSubjectUniqueness(ctx context.Context, subjectID primitive.ObjectID, excludedRecords ...primitive.ObjectID) error {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	filter := bson.M{"subject": subjectID}
	if len(excludedRecords) > 0 {
		filter["_id"] = bson.M{"$nin": excludedRecords}
	}
	n, err := repo.coll.CountDocuments(ctx, filter)
	if err != nil {
		return err
	}
	if n > 0 {
		return assessment.ErrExists
	}
	return nil
}

func (repo *internalRepository) CreateInternal(ctx context.Context, in assessment.Internal) (assessment.Internal, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.InsertOne(ctx, in)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return assessment.Internal{}, assessment.ErrExists
		}
		return assessment.Internal{}, err
	}
	in.ID = res.InsertedID.(primitive.ObjectID)
	return in, nil
}

func (repo *internalRepository) GetInternalBySubject(ctx context.Context, subjectID primitive.ObjectID) (assessment.Internal, error) {
	return repo.get(ctx, bson.M{"subject": subjectID})
}

func (repo *internalRepository) GetInternalByID(ctx context.Context, id primitive.ObjectID) (assessment.Internal, error) {
	return repo.get(ctx, bson.M{"_id": id})
}

func (repo *internalRepository) get(ctx context.Context, filter bson.M) (assessment.Internal, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	var in assessment.Internal
	if err := repo.coll.FindOne(ctx, filter).Decode(&in); err != nil {
		if err == mongo.ErrNoDocuments {
			return assessment.Internal{}, assessment.ErrNotFound
		}
		return assessment.Internal{}, err
	}
	return in, nil
}

// FilterByStudent matches records holding a mark for the student, unwinds the
// marks array into one row per entry, re-matches to discard sibling marks
// unwound from the same record, then joins the subject name in. One round trip.
func (repo *internalRepository) FilterByStudent(ctx context.Context, studentID primitive.ObjectID) ([]assessment.StudentResult, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"marks.student": studentID}}},
		bson.D{{Key: "$unwind", Value: "$marks"}},
		bson.D{{Key: "$match", Value: bson.M{"marks.student": studentID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         subjectsCollection,
			"localField":   "subject",
			"foreignField": "_id",
			"as":           "subjectInfo",
		}}},
		bson.D{{Key: "$unwind", Value: "$subjectInfo"}},
		bson.D{{Key: "$project", Value: bson.M{
			"marks":   1,
			"subject": "$subjectInfo.subject",
		}}},
	}

	cur, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	results := make([]assessment.StudentResult, 0)
	if err = cur.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (repo *internalRepository) UpdateInternal(ctx context.Context, in assessment.Internal) (assessment.Internal, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": in.ID}, in)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return assessment.Internal{}, assessment.ErrExists
		}
		return assessment.Internal{}, err
	}
	if res.MatchedCount == 0 {
		return assessment.Internal{}, assessment.ErrNotFound
	}
	return in, nil
}

func (repo *internalRepository) DeleteInternal(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return assessment.ErrNotFound
	}
	return nil
}
