package review

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"

	"gym-console/backend/internal/store"
)

var ErrBadRequest = errors.New("bad request")

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) reviews() *firestore.CollectionRef {
	return r.fs.Collection("gymReviews")
}

// ListByGym returns a gym's reviews newest-first.
func (r *Repo) ListByGym(ctx context.Context, gymID string, limit int) ([]Review, error) {
	if gymID == "" {
		return nil, fmt.Errorf("%w: gymId is required", ErrBadRequest)
	}

	indexed := func(ctx context.Context) ([]Review, error) {
		q := r.reviews().
			Where("gymId", "==", gymID).
			OrderBy("createdAt", firestore.Desc)
		if limit > 0 {
			q = q.Limit(limit)
		}
		return r.decodeAll(ctx, q)
	}
	scan := func(ctx context.Context) ([]Review, error) {
		return r.decodeAll(ctx, r.reviews().Where("gymId", "==", gymID))
	}
	less := func(a, b Review) bool { return a.CreatedAt.After(b.CreatedAt) }

	return store.FetchSorted(ctx, indexed, scan, less, limit)
}

func (r *Repo) decodeAll(ctx context.Context, q firestore.Query) ([]Review, error) {
	docs, err := store.CollectDocs(q.Documents(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]Review, 0, len(docs))
	for _, doc := range docs {
		var rev Review
		if err := doc.DataTo(&rev); err != nil {
			continue
		}
		rev.ID = doc.Ref.ID
		out = append(out, rev)
	}
	return out, nil
}
