package report

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

func (r *Repo) reports() *firestore.CollectionRef {
	return r.fs.Collection("gymReports")
}

func (r *Repo) Get(ctx context.Context, id string) (*Report, error) {
	doc, err := r.reports().Doc(id).Get(ctx)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, fmt.Errorf("%w: report %s", ErrNotFound, id)
		}
		return nil, err
	}
	var rep Report
	if err := doc.DataTo(&rep); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	rep.ID = doc.Ref.ID
	return &rep, nil
}

// ListByGym returns a gym's reports newest-first, with the usual
// missing-index fallback.
func (r *Repo) ListByGym(ctx context.Context, gymID string, limit int) ([]Report, error) {
	if gymID == "" {
		return nil, fmt.Errorf("%w: gymId is required", ErrBadRequest)
	}

	indexed := func(ctx context.Context) ([]Report, error) {
		q := r.reports().
			Where("gymId", "==", gymID).
			OrderBy("createdAt", firestore.Desc)
		if limit > 0 {
			q = q.Limit(limit)
		}
		return r.decodeAll(ctx, q)
	}
	scan := func(ctx context.Context) ([]Report, error) {
		return r.decodeAll(ctx, r.reports().Where("gymId", "==", gymID))
	}
	less := func(a, b Report) bool { return a.CreatedAt.After(b.CreatedAt) }

	return store.FetchSorted(ctx, indexed, scan, less, limit)
}

// ListAll returns every report across all gyms for the platform-level
// flagging view.
func (r *Repo) ListAll(ctx context.Context) ([]Report, error) {
	return r.decodeAll(ctx, r.reports().Query)
}

// UpdateStatus merges the adjudication fields onto the report.
func (r *Repo) UpdateStatus(ctx context.Context, id, status, reviewedBy, adminNotes string) error {
	updates := map[string]interface{}{
		"status":     status,
		"reviewedAt": time.Now().UTC(),
		"reviewedBy": reviewedBy,
	}
	if adminNotes != "" {
		updates["adminNotes"] = adminNotes
	}
	if _, err := r.reports().Doc(id).Set(ctx, updates, firestore.MergeAll); err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	return nil
}

// Delete removes the report document. Resolving a report deletes it
// outright rather than archiving it.
func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.reports().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	return nil
}

func (r *Repo) decodeAll(ctx context.Context, q firestore.Query) ([]Report, error) {
	docs, err := store.CollectDocs(q.Documents(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]Report, 0, len(docs))
	for _, doc := range docs {
		var rep Report
		if err := doc.DataTo(&rep); err != nil {
			continue
		}
		rep.ID = doc.Ref.ID
		out = append(out, rep)
	}
	return out, nil
}
