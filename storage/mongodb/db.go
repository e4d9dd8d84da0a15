package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tshims/shule/core"
)

// Collection names
const (
	teachersCollection      = "teachers"
	studentsCollection      = "students"
	subjectsCollection      = "subjects"
	internalsCollection     = "internals"
	notesCollection         = "notes"
	timeSchedulesCollection = "timeschedules"
)

// DB wraps the application database handle and the per-operation timeout
// applied to every repository call.
type DB struct {
	db      *mongo.Database
	timeout time.Duration
}

func Open(ctx context.Context, conf *core.Config) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Database.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connecting to database")
	}
	if err = ping(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, client *mongo.Client) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = client.Ping(ctx, readpref.Primary())
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func NewDB(client *mongo.Client, conf *core.Config) *DB {
	return &DB{
		db:      client.Database(conf.Database.Name),
		timeout: conf.Database.Timeout,
	}
}

func (db *DB) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, db.timeout)
}

// EnsureIndexes creates the unique indexes backing every conditional insert:
// an insert into an indexed collection fails atomically on a duplicate key
// instead of relying on a separate read-then-write check.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := db.opCtx(ctx)
	defer cancel()

	unique := func(field string) mongo.IndexModel {
		return mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
	}
	plain := func(field string) mongo.IndexModel {
		return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
	}

	for coll, models := range map[string][]mongo.IndexModel{
		teachersCollection:      {unique("username")},
		internalsCollection:     {unique("subject")},
		timeSchedulesCollection: {unique("teacher")},
		subjectsCollection:      {plain("teacher")},
		notesCollection:         {plain("subject")},
		studentsCollection:      {plain("username")},
	} {
		if _, err := db.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return errors.Wrapf(err, "creating %s indexes", coll)
		}
	}
	return nil
}
