package cart

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RemoteStore is the server-side copy of a logged-in user's cart. Replace is a
// full overwrite, not a merge.
type RemoteStore interface {
	Load(ctx context.Context) ([]Item, error)
	Replace(ctx context.Context, items []Item) error
	Clear(ctx context.Context) error
}

const defaultSyncTimeout = 10 * time.Second

// Session is the client-side cart state for one shopper. Guests have no
// remote store and every operation stays local. After Login, each mutation
// pushes the whole cart to the remote in the background; failures are logged
// and never returned to the caller.
type Session struct {
	mu     sync.Mutex
	cart   *Cart
	remote RemoteStore
	log    *logrus.Entry

	syncTimeout time.Duration
	pending     sync.WaitGroup

	// syncMu serialises background pushes. seq numbers snapshots so a push
	// that lost the race to a newer one is dropped instead of overwriting it.
	syncMu   sync.Mutex
	seq      uint64
	lastSent uint64
}

type SessionOption func(*Session)

func WithLogger(log *logrus.Entry) SessionOption {
	return func(s *Session) { s.log = log }
}

func WithSyncTimeout(d time.Duration) SessionOption {
	return func(s *Session) { s.syncTimeout = d }
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		cart:        New(),
		log:         logrus.WithField("component", "cart_session"),
		syncTimeout: defaultSyncTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) AddItem(item Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cart.Add(item); err != nil {
		return err
	}
	s.scheduleSyncLocked()
	return nil
}

// RemoveItem is a no-op when productID is not in the cart.
func (s *Session) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.cart.Count()
	s.cart.Remove(productID)
	if s.cart.Count() != before {
		s.scheduleSyncLocked()
	}
}

// UpdateQuantity rejects quantities below 1 and leaves the cart untouched.
func (s *Session) UpdateQuantity(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := s.cart.UpdateQuantity(productID, quantity)
	if err != nil {
		return err
	}
	if changed {
		s.scheduleSyncLocked()
	}
	return nil
}

// ClearCart empties the cart locally and, for a logged-in shopper, remotely.
// It is used after a successful checkout.
func (s *Session) ClearCart(ctx context.Context) error {
	s.mu.Lock()
	s.cart.Clear()
	remote := s.remote
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	if remote == nil {
		return nil
	}

	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	if err := remote.Clear(ctx); err != nil {
		return err
	}
	s.lastSent = seq
	return nil
}

// Reset drops local state only. The remote cart survives so the next login
// restores it.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// SyncRemote pushes the current items synchronously. Guests have nothing to
// push.
func (s *Session) SyncRemote(ctx context.Context) error {
	s.mu.Lock()
	remote := s.remote
	items := s.cart.Items()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	if remote == nil {
		return nil
	}
	return s.push(ctx, remote, items, seq)
}

// LoadRemote replaces local state with the remote cart, discarding anything
// collected while browsing as a guest. A local mutation made while the load
// is in flight is newer than the loaded snapshot and is kept instead.
func (s *Session) LoadRemote(ctx context.Context) error {
	s.mu.Lock()
	remote := s.remote
	startSeq := s.seq
	s.mu.Unlock()

	if remote == nil {
		return nil
	}

	items, err := remote.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seq != startSeq || s.remote != remote {
		s.log.Debug("Discarding remote cart superseded by a local change")
		return nil
	}
	s.cart.Replace(items)
	return nil
}

// Login attaches the remote store and loads its contents.
func (s *Session) Login(ctx context.Context, remote RemoteStore) error {
	s.mu.Lock()
	s.remote = remote
	s.mu.Unlock()
	return s.LoadRemote(ctx)
}

// Logout detaches the remote store and resets the local cart.
func (s *Session) Logout() {
	s.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.remote = nil
	s.cart.Clear()
}

func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

func (s *Session) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

func (s *Session) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Count()
}

func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remote != nil
}

// Wait blocks until all background pushes have finished.
func (s *Session) Wait() {
	s.pending.Wait()
}

// scheduleSyncLocked must be called with s.mu held.
func (s *Session) scheduleSyncLocked() {
	if s.remote == nil {
		return
	}

	remote := s.remote
	items := s.cart.Items()
	s.seq++
	seq := s.seq

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
		defer cancel()

		if err := s.push(ctx, remote, items, seq); err != nil {
			s.log.WithError(err).WithField("items", len(items)).Warn("Failed to sync cart")
		}
	}()
}

func (s *Session) push(ctx context.Context, remote RemoteStore, items []Item, seq uint64) error {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	if seq <= s.lastSent {
		return nil
	}
	if err := remote.Replace(ctx, items); err != nil {
		return err
	}
	s.lastSent = seq
	return nil
}
