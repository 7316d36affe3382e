package store

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"GameHub/models"
	"GameHub/services/events"
	"GameHub/services/kvstore"
)

// Sentinel errors surfaced to controllers. "Not found" outcomes are booleans,
// not errors; these cover invariant violations and storage problems.
var (
	ErrEmailTaken    = errors.New("store: email already registered")
	ErrUsernameTaken = errors.New("store: username already taken")
	ErrConflict      = kvstore.ErrConflict
)

/*
 * 'Store' is the single source of truth for the portal collections: users,
 * games, news and support tickets live in memory (indexed by id) and are
 * re-persisted as whole JSON blobs on every mutation. Per-user collections
 * (friends, requests, inboxes, toast history) are read-modify-written
 * directly against the key-value store.
 *
 * Every successful mutation publishes a DataChanged event on the bus.
 *
 * A single mutex serializes mutations; HTTP handlers race, unlike the
 * original single-threaded environment this design comes from. A second
 * process sharing the same backing store is detected through the per-key
 * version counters: each persist is a compare-and-swap against the last seen
 * version, retried once from the freshly loaded state before giving up with
 * ErrConflict.
 */
type Store struct {
	kv  kvstore.Store
	bus *events.Bus

	mu sync.Mutex

	users   []models.User
	games   []models.Game
	news    []models.NewsItem
	tickets []models.SupportTicket

	userIdx   map[string]int
	gameIdx   map[string]int
	newsIdx   map[string]int
	ticketIdx map[string]int

	// Last seen version per persisted key.
	versions map[string]uint64
}

// New loads the four collections from the key-value store and returns the
// entity store. Missing keys start as empty collections.
func New(kv kvstore.Store, bus *events.Bus) (*Store, error) {
	s := &Store{
		kv:       kv,
		bus:      bus,
		versions: make(map[string]uint64),
	}
	if err := s.loadAll(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadAll() error {
	if err := s.loadCollection(KeyUsers, &s.users); err != nil {
		return err
	}
	if err := s.loadCollection(KeyGames, &s.games); err != nil {
		return err
	}
	if err := s.loadCollection(KeyNews, &s.news); err != nil {
		return err
	}
	if err := s.loadCollection(KeySupportTickets, &s.tickets); err != nil {
		return err
	}
	s.reindex()
	return nil
}

func (s *Store) loadCollection(key string, into interface{}) error {
	if _, err := s.kv.Get(key, into); err != nil {
		return fmt.Errorf("error loading collection %s: %w", key, err)
	}
	version, err := s.kv.Version(key)
	if err != nil {
		return fmt.Errorf("error reading version of %s: %w", key, err)
	}
	s.versions[key] = version
	return nil
}

func (s *Store) reindex() {
	s.userIdx = make(map[string]int, len(s.users))
	for i, u := range s.users {
		s.userIdx[u.ID] = i
	}
	s.gameIdx = make(map[string]int, len(s.games))
	for i, g := range s.games {
		s.gameIdx[g.ID] = i
	}
	s.newsIdx = make(map[string]int, len(s.news))
	for i, n := range s.news {
		s.newsIdx[n.ID] = i
	}
	s.ticketIdx = make(map[string]int, len(s.tickets))
	for i, t := range s.tickets {
		s.ticketIdx[t.ID] = i
	}
}

// errNoChange aborts a commit without persisting; the mutation found nothing
// to do (typically an unknown id).
var errNoChange = errors.New("store: no change")

// persist writes the blob under key with a CAS on the last seen version. A
// conflict means another writer got in between; mutations go through commit,
// which reloads and replays instead of clobbering the other writer's blob.
// Must be called with s.mu held.
func (s *Store) persist(key string, value interface{}) error {
	next, err := s.kv.CompareAndSwap(key, value, s.versions[key])
	if err != nil {
		return fmt.Errorf("error persisting %s: %w", key, err)
	}
	s.versions[key] = next
	return nil
}

// commit runs apply against the in-memory collection and persists it under
// key. When another writer sharing the backing store got in between, the
// collection is reloaded and the mutation replayed onto the fresh state
// before one retry; a second conflict surfaces ErrConflict. apply must
// therefore be safe to run twice.
// Must be called with s.mu held.
func (s *Store) commit(key string, apply func() error) error {
	if err := apply(); err != nil {
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}
	err := s.persist(key, s.collection(key))
	if err == nil || !errors.Is(err, kvstore.ErrConflict) {
		return err
	}

	log.Printf("Concurrent write detected on %s, replaying mutation", key)
	if err := s.reloadCollection(key); err != nil {
		return err
	}
	if err := apply(); err != nil {
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}
	return s.persist(key, s.collection(key))
}

// collection must be called with s.mu held.
func (s *Store) collection(key string) interface{} {
	switch key {
	case KeyUsers:
		return s.users
	case KeyGames:
		return s.games
	case KeyNews:
		return s.news
	default:
		return s.tickets
	}
}

// reloadCollection drops the local copy of one collection and re-reads it
// from the backing store, adopting the store's version.
// Must be called with s.mu held.
func (s *Store) reloadCollection(key string) error {
	switch key {
	case KeyUsers:
		s.users = nil
		if err := s.loadCollection(KeyUsers, &s.users); err != nil {
			return err
		}
	case KeyGames:
		s.games = nil
		if err := s.loadCollection(KeyGames, &s.games); err != nil {
			return err
		}
	case KeyNews:
		s.news = nil
		if err := s.loadCollection(KeyNews, &s.news); err != nil {
			return err
		}
	default:
		s.tickets = nil
		if err := s.loadCollection(KeySupportTickets, &s.tickets); err != nil {
			return err
		}
	}
	s.reindex()
	return nil
}

// persistForce overwrites the blob regardless of concurrent writers. Only the
// admin wipe uses it; the wipe is authoritative.
// Must be called with s.mu held.
func (s *Store) persistForce(key string, value interface{}) error {
	version, err := s.kv.Version(key)
	if err != nil {
		return fmt.Errorf("error reading version of %s: %w", key, err)
	}
	next, err := s.kv.CompareAndSwap(key, value, version)
	if err != nil {
		return fmt.Errorf("error persisting %s: %w", key, err)
	}
	s.versions[key] = next
	return nil
}

// notify broadcasts the coarse invalidation signal. Called after every
// successful mutation.
func (s *Store) notify() {
	s.bus.Publish(events.DataChanged{Timestamp: time.Now()})
}

// ClearAll resets every collection, including the per-user keyed ones, and
// persists the empty state. Used by the admin wipe operation.
func (s *Store) ClearAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = nil
	s.games = nil
	s.news = nil
	s.tickets = nil
	s.reindex()

	if err := s.persistForce(KeyUsers, []models.User{}); err != nil {
		return err
	}
	if err := s.persistForce(KeyGames, []models.Game{}); err != nil {
		return err
	}
	if err := s.persistForce(KeyNews, []models.NewsItem{}); err != nil {
		return err
	}
	if err := s.persistForce(KeySupportTickets, []models.SupportTicket{}); err != nil {
		return err
	}

	// Per-user collections are keyed by convention; sweep them by prefix.
	for _, prefix := range []string{"friends_", "friend_requests_", "notificationHistory_", "userNotifications_"} {
		keys, err := s.kv.Keys(prefix)
		if err != nil {
			return fmt.Errorf("error listing %s keys: %w", prefix, err)
		}
		for _, key := range keys {
			if err := s.kv.Delete(key); err != nil {
				return err
			}
		}
	}
	if err := s.kv.Delete(KeyAdminNotifications); err != nil {
		return err
	}

	s.notify()
	return nil
}

// GetStats returns derived counters over the collections. No persisted state.
func (s *Store) GetStats() models.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.Stats{
		TotalUsers: len(s.users),
		TotalGames: len(s.games),
		TotalNews:  len(s.news),
	}
	for _, u := range s.users {
		if u.Status == models.UserStatusBlocked {
			stats.BlockedUsers++
		} else {
			stats.ActiveUsers++
		}
	}
	for _, t := range s.tickets {
		switch t.Status {
		case models.TicketStatusOpen:
			stats.OpenTickets++
		case models.TicketStatusInProgress:
			stats.InProgressTickets++
		case models.TicketStatusResolved:
			stats.ResolvedTickets++
		}
	}
	return stats
}
