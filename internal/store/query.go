package store

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Strategy runs one query variant and returns the decoded results.
type Strategy[T any] func(ctx context.Context) ([]T, error)

// FetchSorted runs the indexed (server-sorted) strategy first. When the
// store rejects it for want of a composite index, the scan strategy is
// run instead and the results are sorted client-side with the same
// comparator the index would have applied, so both paths produce
// identical ordering. The limit is applied after sorting. Any other
// error from the indexed path is returned as-is.
func FetchSorted[T any](ctx context.Context, indexed, scan Strategy[T], less func(a, b T) bool, limit int) ([]T, error) {
	out, err := indexed(ctx)
	if err == nil {
		return out, nil
	}
	if !IsMissingIndex(err) {
		return nil, err
	}

	out, err = scan(ctx)
	if err != nil {
		return nil, err
	}
	return SortAndLimit(out, less, limit), nil
}

// SortAndLimit stable-sorts items and truncates to limit (0 = no limit).
func SortAndLimit[T any](items []T, less func(a, b T) bool, limit int) []T {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}

// CollectDocs drains a document iterator.
func CollectDocs(it *firestore.DocumentIterator) ([]*firestore.DocumentSnapshot, error) {
	var out []*firestore.DocumentSnapshot
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

// IsMissingIndex reports whether err is the store refusing a
// filter+sort combination that has no composite index. This is the one
// recoverable condition in the query path.
func IsMissingIndex(err error) bool {
	return status.Code(err) == codes.FailedPrecondition
}

// IsNotFound reports whether err is a missing-document lookup.
func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// IsPermissionDenied reports whether err is a security-rule rejection.
func IsPermissionDenied(err error) bool {
	return status.Code(err) == codes.PermissionDenied
}
