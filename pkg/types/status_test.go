package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMilestoneStatus(t *testing.T) {
	tests := []struct {
		in   string
		want MilestoneStatus
	}{
		{"InProgress", StatusInProgress},
		{"In Progress", StatusInProgress},
		{"in-progress", StatusInProgress},
		{"IN_PROGRESS", StatusInProgress},
		{"Completed", StatusCompleted},
		{" completed ", StatusCompleted},
		{"Pending", StatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMilestoneStatus(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown status", func(t *testing.T) {
		_, err := ParseMilestoneStatus("Abandoned")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStatus))
		assert.True(t, IsValidation(err))
	})
}
