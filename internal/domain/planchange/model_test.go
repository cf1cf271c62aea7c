package planchange

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func reqAt(id, status string, day int) Request {
	return Request{
		ID:        id,
		Status:    status,
		CreatedAt: time.Date(2026, time.February, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestLessOrdersPendingFirstThenNewest(t *testing.T) {
	reqs := []Request{
		reqAt("approved-new", StatusApproved, 20),
		reqAt("pending-old", StatusPending, 1),
		reqAt("rejected", StatusRejected, 15),
		reqAt("pending-new", StatusPending, 10),
		reqAt("approved-old", StatusApproved, 5),
	}

	sort.SliceStable(reqs, func(i, j int) bool { return Less(reqs[i], reqs[j]) })

	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"pending-new", "pending-old", "approved-new", "rejected", "approved-old"}, ids)
}

func TestLessIsStrictWeakOrdering(t *testing.T) {
	a := reqAt("a", StatusPending, 5)
	b := reqAt("b", StatusApproved, 5)

	assert.True(t, Less(a, b))
	assert.False(t, Less(b, a))

	// Equal status and timestamp: neither precedes the other.
	c := reqAt("c", StatusPending, 5)
	assert.False(t, Less(a, c))
	assert.False(t, Less(c, a))
}
