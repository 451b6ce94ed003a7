package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	mu         sync.Mutex
	items      []Item
	replaces   int
	clears     int
	replaceErr error
}

func (f *fakeRemote) Load(ctx context.Context) ([]Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Item(nil), f.items...), nil
}

func (f *fakeRemote) Replace(ctx context.Context, items []Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.replaces++
	f.items = append([]Item(nil), items...)
	return nil
}

func (f *fakeRemote) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	f.items = nil
	return nil
}

func (f *fakeRemote) snapshot() []Item {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Item(nil), f.items...)
}

func TestGuestSessionStaysLocal(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.AddItem(item("p1", 10)))
	require.NoError(t, s.SyncRemote(context.Background()))

	assert.False(t, s.LoggedIn())
	assert.Equal(t, 1, s.Count())
}

func TestLoginReplacesGuestCart(t *testing.T) {
	remote := &fakeRemote{items: []Item{
		{ProductID: "r1", Price: decimal.NewFromInt(4), Quantity: 3},
	}}

	s := NewSession()
	require.NoError(t, s.AddItem(item("guest", 50)))
	require.NoError(t, s.Login(context.Background(), remote))

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "r1", items[0].ProductID)
	assert.True(t, decimal.NewFromInt(12).Equal(s.Total()))
}

// slowLoadRemote blocks Load until released.
type slowLoadRemote struct {
	*fakeRemote
	loading chan struct{}
	release chan struct{}
}

func (r *slowLoadRemote) Load(ctx context.Context) ([]Item, error) {
	close(r.loading)
	<-r.release
	return r.fakeRemote.Load(ctx)
}

func TestMutationDuringLoadWins(t *testing.T) {
	remote := &slowLoadRemote{
		fakeRemote: &fakeRemote{items: []Item{item("stale", 7)}},
		loading:    make(chan struct{}),
		release:    make(chan struct{}),
	}

	s := NewSession()
	done := make(chan error, 1)
	go func() { done <- s.Login(context.Background(), remote) }()

	<-remote.loading
	require.NoError(t, s.AddItem(item("fresh", 5)))
	s.Wait()
	close(remote.release)
	require.NoError(t, <-done)

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "fresh", items[0].ProductID)

	pushed := remote.snapshot()
	require.Len(t, pushed, 1)
	assert.Equal(t, "fresh", pushed[0].ProductID)
}

func TestMutationsSyncToRemote(t *testing.T) {
	remote := &fakeRemote{}
	s := NewSession()
	require.NoError(t, s.Login(context.Background(), remote))

	for i := 0; i < 20; i++ {
		require.NoError(t, s.AddItem(item(fmt.Sprintf("p%d", i%5), int64(i%5+1))))
	}
	s.RemoveItem("p4")
	require.NoError(t, s.UpdateQuantity("p0", 7))
	s.Wait()

	assert.Equal(t, s.Items(), remote.snapshot())
}

func TestRemoveAbsentDoesNotSync(t *testing.T) {
	remote := &fakeRemote{}
	s := NewSession()
	require.NoError(t, s.Login(context.Background(), remote))

	s.RemoveItem("missing")
	s.Wait()
	assert.Zero(t, remote.replaces)
}

func TestUpdateQuantityZeroRejected(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.AddItem(item("p1", 10)))

	assert.ErrorIs(t, s.UpdateQuantity("p1", 0), ErrInvalidQuantity)
	assert.Equal(t, 1, s.Items()[0].Quantity)
}

func TestSyncFailureIsLoggedNotReturned(t *testing.T) {
	logger, hook := test.NewNullLogger()
	remote := &fakeRemote{replaceErr: errors.New("connection refused")}

	s := NewSession(WithLogger(logrus.NewEntry(logger)))
	require.NoError(t, s.Login(context.Background(), remote))
	require.NoError(t, s.AddItem(item("p1", 10)))
	s.Wait()

	assert.Equal(t, 1, s.Count())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "Failed to sync cart", hook.LastEntry().Message)
}

func TestResetKeepsRemote(t *testing.T) {
	remote := &fakeRemote{}
	s := NewSession()
	require.NoError(t, s.Login(context.Background(), remote))
	require.NoError(t, s.AddItem(item("p1", 10)))
	s.Wait()

	s.Reset()
	assert.Zero(t, s.Count())
	assert.Len(t, remote.snapshot(), 1)
}

func TestLogoutDropsRemoteAndLocal(t *testing.T) {
	remote := &fakeRemote{}
	s := NewSession()
	require.NoError(t, s.Login(context.Background(), remote))
	require.NoError(t, s.AddItem(item("p1", 10)))

	s.Logout()
	assert.False(t, s.LoggedIn())
	assert.Zero(t, s.Count())
	assert.Len(t, remote.snapshot(), 1)

	require.NoError(t, s.AddItem(item("p2", 1)))
	s.Wait()
	assert.Len(t, remote.snapshot(), 1)
}

func TestClearCartClearsBoth(t *testing.T) {
	remote := &fakeRemote{}
	s := NewSession()
	require.NoError(t, s.Login(context.Background(), remote))
	require.NoError(t, s.AddItem(item("p1", 10)))
	s.Wait()

	require.NoError(t, s.ClearCart(context.Background()))
	s.Wait()

	assert.Zero(t, s.Count())
	assert.Empty(t, remote.snapshot())
	assert.Equal(t, 1, remote.clears)
}
