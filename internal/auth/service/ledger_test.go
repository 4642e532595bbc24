package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRefreshTokenLedger(t *testing.T) {
	ledger := NewRefreshTokenLedger()

	assert.False(t, ledger.Consumed("token-a"))

	ledger.MarkConsumed("token-a")
	assert.True(t, ledger.Consumed("token-a"))
	assert.False(t, ledger.Consumed("token-b"))

	// Marking twice stays consumed.
	ledger.MarkConsumed("token-a")
	assert.True(t, ledger.Consumed("token-a"))
}
