package store

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func intsDesc(a, b int) bool { return a > b }

func fixed(items []int, err error) Strategy[int] {
	return func(context.Context) ([]int, error) { return items, err }
}

func TestFetchSortedIndexedPath(t *testing.T) {
	indexed := fixed([]int{9, 7, 3}, nil)
	scan := fixed(nil, errors.New("scan must not run"))

	got, err := FetchSorted(context.Background(), indexed, scan, intsDesc, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 7, 3}, got)
}

func TestFetchSortedFallsBackOnMissingIndex(t *testing.T) {
	missingIndex := status.Error(codes.FailedPrecondition, "The query requires an index.")
	indexed := fixed(nil, missingIndex)
	scan := fixed([]int{3, 9, 1, 7}, nil)

	got, err := FetchSorted(context.Background(), indexed, scan, intsDesc, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 7, 3, 1}, got)
}

func TestFetchSortedAppliesLimitAfterSorting(t *testing.T) {
	missingIndex := status.Error(codes.FailedPrecondition, "index required")
	scan := fixed([]int{3, 9, 1, 7}, nil)

	got, err := FetchSorted(context.Background(), fixed(nil, missingIndex), scan, intsDesc, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{9, 7}, got)
}

func TestFetchSortedPropagatesOtherErrors(t *testing.T) {
	denied := status.Error(codes.PermissionDenied, "no")
	scan := fixed([]int{1}, nil)

	_, err := FetchSorted(context.Background(), fixed(nil, denied), scan, intsDesc, 0)
	require.Error(t, err)
	assert.True(t, IsPermissionDenied(err))
}

func TestFetchSortedScanErrorSurfaces(t *testing.T) {
	missingIndex := status.Error(codes.FailedPrecondition, "index required")
	scanErr := errors.New("network down")

	_, err := FetchSorted(context.Background(), fixed(nil, missingIndex), fixed(nil, scanErr), intsDesc, 0)
	assert.ErrorIs(t, err, scanErr)
}

// Both strategies must hand callers the same ordering: the fallback's
// client-side sort has to match what the indexed query would return.
func TestFallbackOrderingMatchesIndexed(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("scan path equals pre-sorted indexed path", prop.ForAll(
		func(items []int, limit int) bool {
			ctx := context.Background()

			serverSorted := append([]int(nil), items...)
			sort.SliceStable(serverSorted, func(i, j int) bool { return intsDesc(serverSorted[i], serverSorted[j]) })
			if limit > 0 && len(serverSorted) > limit {
				serverSorted = serverSorted[:limit]
			}

			viaIndexed, err := FetchSorted(ctx, fixed(serverSorted, nil), nil, intsDesc, limit)
			if err != nil {
				return false
			}

			missingIndex := status.Error(codes.FailedPrecondition, "index required")
			viaScan, err := FetchSorted(ctx, fixed(nil, missingIndex), fixed(append([]int(nil), items...), nil), intsDesc, limit)
			if err != nil {
				return false
			}

			if len(viaIndexed) != len(viaScan) {
				return false
			}
			for i := range viaIndexed {
				if viaIndexed[i] != viaScan[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 50)),
		gen.IntRange(0, 10),
	))

	properties.TestingRun(t)
}

func TestErrorClassifiers(t *testing.T) {
	assert.True(t, IsMissingIndex(status.Error(codes.FailedPrecondition, "needs index")))
	assert.False(t, IsMissingIndex(status.Error(codes.NotFound, "missing")))
	assert.False(t, IsMissingIndex(errors.New("plain")))

	assert.True(t, IsNotFound(status.Error(codes.NotFound, "missing")))
	assert.False(t, IsNotFound(nil))

	assert.True(t, IsPermissionDenied(status.Error(codes.PermissionDenied, "no")))
	assert.False(t, IsPermissionDenied(status.Error(codes.FailedPrecondition, "needs index")))
}

func TestSortAndLimit(t *testing.T) {
	got := SortAndLimit([]int{2, 8, 5}, intsDesc, 0)
	assert.Equal(t, []int{8, 5, 2}, got)

	got = SortAndLimit([]int{2, 8, 5}, intsDesc, 2)
	assert.Equal(t, []int{8, 5}, got)

	assert.Empty(t, SortAndLimit([]int{}, intsDesc, 3))
}
