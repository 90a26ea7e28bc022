package activation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTracker_ClaimComplete(t *testing.T) {
	tr := NewTracker()

	assert.True(t, tr.Claim(1), "first claim should succeed")
	assert.True(t, tr.Pending(1))
	assert.False(t, tr.Has(1))
	assert.False(t, tr.Claim(1), "pending index cannot be claimed twice")

	tr.Complete(1)
	assert.True(t, tr.Has(1))
	assert.False(t, tr.Pending(1))
	assert.False(t, tr.Claim(1), "fired index cannot be claimed again")
}

func TestTracker_FiredSorted(t *testing.T) {
	tr := NewTracker()
	for _, i := range []int{4, 0, 2} {
		tr.Claim(i)
		tr.Complete(i)
	}
	assert.Equal(t, []int{0, 2, 4}, tr.Fired())
	assert.Equal(t, 3, tr.Len())
}
