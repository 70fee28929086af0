package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    RequestStatus
		to      RequestStatus
		allowed bool
	}{
		{"waiting to in progress", StatusWaiting, StatusInProgress, true},
		{"waiting to canceled", StatusWaiting, StatusCanceled, true},
		{"waiting to archived", StatusWaiting, StatusArchived, false},
		{"in progress to archived", StatusInProgress, StatusArchived, true},
		{"in progress to completed", StatusInProgress, StatusCompleted, true},
		{"in progress to canceled", StatusInProgress, StatusCanceled, false},
		{"in progress back to waiting", StatusInProgress, StatusWaiting, false},
		{"completed to archived", StatusCompleted, StatusArchived, true},
		{"archived is final", StatusArchived, StatusWaiting, false},
		{"canceled is final", StatusCanceled, StatusInProgress, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, StatusArchived.Terminal())
	assert.True(t, StatusCanceled.Terminal())
	assert.False(t, StatusWaiting.Terminal())
	assert.False(t, StatusInProgress.Terminal())
	assert.False(t, StatusCompleted.Terminal())
}
