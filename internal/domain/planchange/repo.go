package planchange

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

func (r *Repo) requests() *firestore.CollectionRef {
	return r.fs.Collection("planChangeRequests")
}

func (r *Repo) Get(ctx context.Context, id string) (*Request, error) {
	doc, err := r.requests().Doc(id).Get(ctx)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, fmt.Errorf("%w: plan change request %s", ErrNotFound, id)
		}
		return nil, err
	}
	var req Request
	if err := doc.DataTo(&req); err != nil {
		return nil, fmt.Errorf("failed to decode plan change request: %w", err)
	}
	req.ID = doc.Ref.ID
	return &req, nil
}

// ListByGym returns a gym's plan-change queue, pending-first then
// newest-first. The queue ordering has no matching server-side sort,
// so both strategies end in the same client-side comparator; the
// indexed path still asks the store for createdAt-desc to bound the
// scan when the index exists.
func (r *Repo) ListByGym(ctx context.Context, gymID string, limit int) ([]Request, error) {
	if gymID == "" {
		return nil, fmt.Errorf("%w: gymId is required", ErrBadRequest)
	}

	indexed := func(ctx context.Context) ([]Request, error) {
		q := r.requests().
			Where("gymId", "==", gymID).
			OrderBy("createdAt", firestore.Desc)
		out, err := r.decodeAll(ctx, q)
		if err != nil {
			return nil, err
		}
		return store.SortAndLimit(out, Less, limit), nil
	}
	scan := func(ctx context.Context) ([]Request, error) {
		return r.decodeAll(ctx, r.requests().Where("gymId", "==", gymID))
	}

	return store.FetchSorted(ctx, indexed, scan, Less, limit)
}

// Doc exposes the document ref for transactional writes.
func (r *Repo) Doc(id string) *firestore.DocumentRef {
	return r.requests().Doc(id)
}

func (r *Repo) decodeAll(ctx context.Context, q firestore.Query) ([]Request, error) {
	docs, err := store.CollectDocs(q.Documents(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]Request, 0, len(docs))
	for _, doc := range docs {
		var req Request
		if err := doc.DataTo(&req); err != nil {
			continue
		}
		req.ID = doc.Ref.ID
		out = append(out, req)
	}
	return out, nil
}
