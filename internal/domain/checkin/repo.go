package checkin

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

func (r *Repo) active() *firestore.CollectionRef {
	return r.fs.Collection("activeCheckIns")
}

func (r *Repo) history() *firestore.CollectionRef {
	return r.fs.Collection("checkInHistory")
}

// ListActive returns members currently checked in at the gym, most
// recent check-in first.
func (r *Repo) ListActive(ctx context.Context, gymID string) ([]ActiveCheckIn, error) {
	if gymID == "" {
		return nil, fmt.Errorf("%w: gymId is required", ErrBadRequest)
	}

	indexed := func(ctx context.Context) ([]ActiveCheckIn, error) {
		q := r.active().
			Where("gymId", "==", gymID).
			OrderBy("checkedInAt", firestore.Desc)
		return r.decodeActive(ctx, q)
	}
	scan := func(ctx context.Context) ([]ActiveCheckIn, error) {
		return r.decodeActive(ctx, r.active().Where("gymId", "==", gymID))
	}
	less := func(a, b ActiveCheckIn) bool { return a.CheckedIn.After(b.CheckedIn) }

	return store.FetchSorted(ctx, indexed, scan, less, 0)
}

// ListHistory returns completed visits for the gym, newest first.
// Date filters to a single day key (YYYY-MM-DD) when non-empty.
func (r *Repo) ListHistory(ctx context.Context, gymID, date string, limit int) ([]HistoryEntry, error) {
	if gymID == "" {
		return nil, fmt.Errorf("%w: gymId is required", ErrBadRequest)
	}

	base := func() firestore.Query {
		q := r.history().Where("gymId", "==", gymID)
		if date != "" {
			q = q.Where("date", "==", date)
		}
		return q
	}

	indexed := func(ctx context.Context) ([]HistoryEntry, error) {
		q := base().OrderBy("checkedOutAt", firestore.Desc)
		if limit > 0 {
			q = q.Limit(limit)
		}
		return r.decodeHistory(ctx, q)
	}
	scan := func(ctx context.Context) ([]HistoryEntry, error) {
		return r.decodeHistory(ctx, base())
	}
	less := func(a, b HistoryEntry) bool { return a.CheckedOut.After(b.CheckedOut) }

	return store.FetchSorted(ctx, indexed, scan, less, limit)
}

func (r *Repo) decodeActive(ctx context.Context, q firestore.Query) ([]ActiveCheckIn, error) {
	docs, err := store.CollectDocs(q.Documents(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]ActiveCheckIn, 0, len(docs))
	for _, doc := range docs {
		var c ActiveCheckIn
		if err := doc.DataTo(&c); err != nil {
			continue
		}
		c.ID = doc.Ref.ID
		out = append(out, c)
	}
	return out, nil
}

func (r *Repo) decodeHistory(ctx context.Context, q firestore.Query) ([]HistoryEntry, error) {
	docs, err := store.CollectDocs(q.Documents(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]HistoryEntry, 0, len(docs))
	for _, doc := range docs {
		var h HistoryEntry
		if err := doc.DataTo(&h); err != nil {
			continue
		}
		h.ID = doc.Ref.ID
		out = append(out, h)
	}
	return out, nil
}
