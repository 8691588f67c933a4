package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.True(t, IsValidID(id))
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestIsValidID(t *testing.T) {
	assert.True(t, IsValidID("507f1f77bcf86cd799439011"))

	for _, id := range []string{
		"",
		"507f1f77bcf86cd79943901",   // короче 24 символов
		"507f1f77bcf86cd7994390111", // длиннее 24 символов
		"507F1F77BCF86CD799439011",  // верхний регистр
		"507f1f77bcf86cd79943901z",  // не hex
	} {
		assert.False(t, IsValidID(id), id)
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusInProgress, StatusCompleted, StatusIssue, StatusNotCompleted} {
		assert.True(t, s.IsValid())
	}

	assert.False(t, Status("done").IsValid())
	assert.False(t, Status("").IsValid())
	assert.False(t, Status("Completed").IsValid())
}

func TestCloseReasonIsValid(t *testing.T) {
	assert.True(t, ReasonCompleted.IsValid())
	assert.True(t, ReasonCancelled.IsValid())
	assert.False(t, CloseReason("abandoned").IsValid())
	assert.False(t, CloseReason("").IsValid())
}
