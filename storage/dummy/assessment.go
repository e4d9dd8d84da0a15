package dummydb

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tshims/shule/core/assessment"
)

type internalRepository struct {
	db *DB
}

var _ assessment.Repository = (*internalRepository)(nil) // interface compliance check

func NewInternalRepository(db *DB) assessment.Repository {
	return &internalRepository{db: db}
}

func (repo *internalRepository) CheckSubjectUniqueness(_ context.Context, subjectID primitive.ObjectID, excludedRecords ...primitive.ObjectID) error {
	repo.db.internal.RLock()
	defer repo.db.internal.RUnlock()

	for _, in := range repo.db.internal.table {
		if in.Subject == subjectID && !contains(excludedRecords, in.ID) {
			return assessment.ErrExists
		}
	}
	return nil
}

func (repo *internalRepository) CreateInternal(ctx context.Context, in assessment.Internal) (assessment.Internal, error) {
	if err := repo.CheckSubjectUniqueness(ctx, in.Subject); err != nil {
		return assessment.Internal{}, err
	}

	repo.db.internal.Lock()
	defer repo.db.internal.Unlock()

	in.ID = primitive.NewObjectID()
	repo.db.internal.table[in.ID] = &in
	return in, nil
}

func (repo *internalRepository) GetInternalBySubject(_ context.Context, subjectID primitive.ObjectID) (assessment.Internal, error) {
	repo.db.internal.RLock()
	defer repo.db.internal.RUnlock()

	for _, in := range repo.db.internal.table {
		if in.Subject == subjectID {
			return *in, nil
		}
	}
	return assessment.Internal{}, assessment.ErrNotFound
}

func (repo *internalRepository) GetInternalByID(_ context.Context, id primitive.ObjectID) (assessment.Internal, error) {
	repo.db.internal.RLock()
	defer repo.db.internal.RUnlock()

	if in, ok := repo.db.internal.table[id]; ok {
		return *in, nil
	}
	return assessment.Internal{}, assessment.ErrNotFound
}

func (repo *internalRepository) FilterByStudent(_ context.Context, studentID primitive.ObjectID) ([]assessment.StudentResult, error) {
	repo.db.internal.RLock()
	defer repo.db.internal.RUnlock()

	results := make([]assessment.StudentResult, 0)
	for _, in := range repo.db.internal.table {
		for _, mark := range in.Marks {
			if mark.Student != studentID {
				continue
			}
			repo.db.subject.RLock()
			sub, ok := repo.db.subject.table[in.Subject]
			repo.db.subject.RUnlock()
			if !ok {
				continue // unwind on a missing subject drops the row
			}
			results = append(results, assessment.StudentResult{
				ID:      in.ID,
				Mark:    mark,
				Subject: sub.Name,
			})
		}
	}
	sort.Slice(results, func(i, j int) bool { return lessID(results[i].ID, results[j].ID) })
	return results, nil
}

func (repo *internalRepository) UpdateInternal(ctx context.Context, in assessment.Internal) (assessment.Internal, error) {
	if err := repo.CheckSubjectUniqueness(ctx, in.Subject, in.ID); err != nil {
		return assessment.Internal{}, err
	}

	repo.db.internal.Lock()
	defer repo.db.internal.Unlock()

	if _, ok := repo.db.internal.table[in.ID]; !ok {
		return assessment.Internal{}, assessment.ErrNotFound
	}
	repo.db.internal.table[in.ID] = &in
	return in, nil
}

func (repo *internalRepository) DeleteInternal(_ context.Context, id primitive.ObjectID) error {
	repo.db.internal.Lock()
	defer repo.db.internal.Unlock()

	if _, ok := repo.db.internal.table[id]; !ok {
		return assessment.ErrNotFound
	}
	delete(repo.db.internal.table, id)
	return nil
}
