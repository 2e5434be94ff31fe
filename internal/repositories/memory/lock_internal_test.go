package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamisi/atm-backend/internal/apperrors"
	"github.com/hamisi/atm-backend/internal/core/domain"
)

// Holding an account's semaphore must bound every waiter to the lock
// timeout instead of blocking it forever.
func TestBoundedWaitTimesOut(t *testing.T) {
	l := NewLedger(50 * time.Millisecond)
	l.SeedAccount(domain.Account{
		AccountID:     "a",
		AccountNumber: "num-a",
		Balance:       decimal.NewFromInt(100),
	})

	a, ok := l.get("a")
	require.True(t, ok)
	a.sem <- struct{}{}
	defer func() { <-a.sem }()

	start := time.Now()
	_, err := l.Withdraw(context.Background(), "a", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperrors.ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

// A transfer that times out on its second lock must release the first one
// so later operations on that account still proceed.
func TestTransferReleasesHeldLockOnTimeout(t *testing.T) {
	l := NewLedger(50 * time.Millisecond)
	l.SeedAccount(domain.Account{AccountID: "a", AccountNumber: "num-a", Balance: decimal.NewFromInt(100)})
	l.SeedAccount(domain.Account{AccountID: "b", AccountNumber: "num-b", Balance: decimal.NewFromInt(100)})

	b, ok := l.get("b")
	require.True(t, ok)
	b.sem <- struct{}{}

	_, err := l.Transfer(context.Background(), "a", "b", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, apperrors.ErrTimeout)
	<-b.sem

	// "a" must not be left locked by the failed transfer.
	_, err = l.Withdraw(context.Background(), "a", decimal.NewFromInt(10))
	assert.NoError(t, err)
}

// A canceled context aborts the bounded wait even when the configured
// lock timeout is far longer.
func TestBoundedWaitHonorsContext(t *testing.T) {
	l := NewLedger(10 * time.Second)
	l.SeedAccount(domain.Account{
		AccountID:     "a",
		AccountNumber: "num-a",
		Balance:       decimal.NewFromInt(100),
	})

	a, ok := l.get("a")
	require.True(t, ok)
	a.sem <- struct{}{}
	defer func() { <-a.sem }()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := l.Withdraw(ctx, "a", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, apperrors.ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
}
