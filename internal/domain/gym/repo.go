package gym

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"gym-console/backend/internal/store"
)

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) gyms() *firestore.CollectionRef {
	return r.fs.Collection("gyms")
}

func (r *Repo) Create(ctx context.Context, g Gym) (*Gym, error) {
	ref := r.gyms().NewDoc()
	g.ID = ref.ID
	if _, err := ref.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to create gym: %w", err)
	}
	return &g, nil
}

func (r *Repo) Get(ctx context.Context, gymID string) (*Gym, error) {
	doc, err := r.gyms().Doc(gymID).Get(ctx)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, fmt.Errorf("%w: gym %s", ErrNotFound, gymID)
		}
		return nil, err
	}
	var g Gym
	if err := doc.DataTo(&g); err != nil {
		return nil, fmt.Errorf("failed to decode gym: %w", err)
	}
	if g.ID == "" {
		g.ID = gymID
	}
	return &g, nil
}

// List returns all gyms newest-first. The sorted query needs no
// composite index on its own, but the fallback keeps the view alive on
// projects where one is still required (e.g. filtered variants).
func (r *Repo) List(ctx context.Context, limit int) ([]Gym, error) {
	indexed := func(ctx context.Context) ([]Gym, error) {
		q := r.gyms().OrderBy("createdAt", firestore.Desc)
		if limit > 0 {
			q = q.Limit(limit)
		}
		return r.decodeAll(ctx, q)
	}
	scan := func(ctx context.Context) ([]Gym, error) {
		return r.decodeAll(ctx, r.gyms().Query)
	}
	less := func(a, b Gym) bool { return a.CreatedAt.After(b.CreatedAt) }

	return store.FetchSorted(ctx, indexed, scan, less, limit)
}

// Update applies a partial merge to the gym document.
func (r *Repo) Update(ctx context.Context, gymID string, updates map[string]interface{}) error {
	updates["updatedAt"] = time.Now().UTC()
	if _, err := r.gyms().Doc(gymID).Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update gym: %w", err)
	}
	return nil
}

func (r *Repo) decodeAll(ctx context.Context, q firestore.Query) ([]Gym, error) {
	docs, err := store.CollectDocs(q.Documents(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]Gym, 0, len(docs))
	for _, doc := range docs {
		var g Gym
		if err := doc.DataTo(&g); err != nil {
			continue
		}
		if g.ID == "" {
			g.ID = doc.Ref.ID
		}
		out = append(out, g)
	}
	return out, nil
}
