package enrollment

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"gym-console/backend/internal/store"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) enrollments() *firestore.CollectionRef {
	return r.fs.Collection("enrollments")
}

// ListByGym returns a gym's enrollment records newest-first. The
// filter+sort combination needs a composite index; without one the
// scan strategy refetches unsorted and sorts client-side.
func (r *Repo) ListByGym(ctx context.Context, gymID string, limit int) ([]Enrollment, error) {
	if gymID == "" {
		return nil, fmt.Errorf("%w: gymId is required", ErrBadRequest)
	}

	indexed := func(ctx context.Context) ([]Enrollment, error) {
		q := r.enrollments().
			Where("gymId", "==", gymID).
			OrderBy("createdAt", firestore.Desc)
		if limit > 0 {
			q = q.Limit(limit)
		}
		return r.decodeAll(ctx, q)
	}
	scan := func(ctx context.Context) ([]Enrollment, error) {
		return r.decodeAll(ctx, r.enrollments().Where("gymId", "==", gymID))
	}
	less := func(a, b Enrollment) bool { return a.CreatedAt.After(b.CreatedAt) }

	return store.FetchSorted(ctx, indexed, scan, less, limit)
}

// FindCandidates returns the enrollment records for a user+gym,
// optionally filtered by status. Ordering is left to the caller
// (MostRecent); the equality-only query needs no composite index.
func (r *Repo) FindCandidates(ctx context.Context, userID, gymID, status string) ([]Enrollment, error) {
	q := r.enrollments().
		Where("userId", "==", userID).
		Where("gymId", "==", gymID)
	if status != "" {
		q = q.Where("status", "==", status)
	}
	return r.decodeAll(ctx, q)
}

// Doc exposes the document ref for transactional writes.
func (r *Repo) Doc(id string) *firestore.DocumentRef {
	return r.enrollments().Doc(id)
}

func (r *Repo) decodeAll(ctx context.Context, q firestore.Query) ([]Enrollment, error) {
	docs, err := store.CollectDocs(q.Documents(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]Enrollment, 0, len(docs))
	for _, doc := range docs {
		var e Enrollment
		if err := doc.DataTo(&e); err != nil {
			continue
		}
		e.ID = doc.Ref.ID
		out = append(out, e)
	}
	return out, nil
}
