package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/tshims/shule/core/schedule"
)

type scheduleRepository struct {
	db   *DB
	coll *mongo.Collection
}

var _ schedule.Repository = (*scheduleRepository)(nil) // interface compliance check

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db, coll: db.db.Collection(timeSchedulesCollection)}
}

func (repo *scheduleRepository) CheckTeacherUniqueness(ctx context.Context, teacherID primitive.ObjectID) error {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	n, err := repo.coll.CountDocuments(ctx, bson.M{"teacher": teacherID})
	if err != nil {
		return err
	}
	if n > 0 {
		return schedule.ErrExists
	}
	return nil
}

func (repo *scheduleRepository) CreateTimeSchedule(ctx context.Context, ts schedule.TimeSchedule) (schedule.TimeSchedule, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.InsertOne(ctx, ts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return schedule.TimeSchedule{}, schedule.ErrExists
		}
		return schedule.TimeSchedule{}, err
	}
	ts.ID = res.InsertedID.(primitive.ObjectID)
	return ts, nil
}

func (repo *scheduleRepository) QueryAllTimeSchedules(ctx context.Context) ([]schedule.TimeSchedule, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	cur, err := repo.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	schedules := make([]schedule.TimeSchedule, 0)
	if err = cur.All(ctx, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (repo *scheduleRepository) GetTimeScheduleByTeacher(ctx context.Context, teacherID primitive.ObjectID) (schedule.TimeSchedule, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	var ts schedule.TimeSchedule
	if err := repo.coll.FindOne(ctx, bson.M{"teacher": teacherID}).Decode(&ts); err != nil {
		if err == mongo.ErrNoDocuments {
			return schedule.TimeSchedule{}, schedule.ErrNotFound
		}
		return schedule.TimeSchedule{}, err
	}
	return ts, nil
}

func (repo *scheduleRepository) UpdateTimeSchedule(ctx context.Context, ts schedule.TimeSchedule) (schedule.TimeSchedule, error) {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": ts.ID}, ts)
	if err != nil {
		return schedule.TimeSchedule{}, err
	}
	if res.MatchedCount == 0 {
		return schedule.TimeSchedule{}, schedule.ErrNotFound
	}
	return ts, nil
}

func (repo *scheduleRepository) DeleteTimeScheduleByTeacher(ctx context.Context, teacherID primitive.ObjectID) error {
	ctx, cancel := repo.db.opCtx(ctx)
	defer cancel()

	res, err := repo.coll.DeleteOne(ctx, bson.M{"teacher": teacherID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return schedule.ErrNotFound
	}
	return nil
}
