package store_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"GameHub/models"
	"GameHub/services/events"
	"GameHub/services/kvstore"
	"GameHub/services/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	bus := events.NewBus(64)
	t.Cleanup(bus.Close)
	s, err := store.New(kvstore.NewMemoryStore(), bus)
	assert.NoError(t, err)
	return s
}

func TestAddUser(t *testing.T) {
	s := newTestStore(t)

	t.Run("assigns id and defaults", func(t *testing.T) {
		user, err := s.AddUser(models.User{
			Email:        "ana@example.com",
			PasswordHash: "hash",
			Username:     "ana",
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		assert.Equal(t, models.UserStatusActive, user.Status)
		assert.False(t, user.CreatedAt.IsZero())

		got, found := s.GetUserByID(user.ID)
		assert.True(t, found)
		assert.Equal(t, "ana@example.com", got.Email)
	})

	t.Run("rejects a duplicate email case-insensitively", func(t *testing.T) {
		_, err := s.AddUser(models.User{
			Email:    "ANA@example.com",
			Username: "ana2",
		})
		assert.ErrorIs(t, err, store.ErrEmailTaken)
	})

	t.Run("rejects a duplicate username", func(t *testing.T) {
		_, err := s.AddUser(models.User{
			Email:    "other@example.com",
			Username: "Ana",
		})
		assert.ErrorIs(t, err, store.ErrUsernameTaken)
	})
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	user, err := s.AddUser(models.User{Email: "bob@example.com", Username: "bob"})
	assert.NoError(t, err)

	t.Run("merges only set fields", func(t *testing.T) {
		desc := "hello"
		found, err := s.UpdateUser(user.ID, store.UserUpdate{Description: &desc})
		assert.NoError(t, err)
		assert.True(t, found)

		got, _ := s.GetUserByID(user.ID)
		assert.Equal(t, "hello", got.Description)
		assert.Equal(t, "bob", got.Username)
	})

	t.Run("unknown id reports not found without error", func(t *testing.T) {
		found, err := s.UpdateUser("nope", store.UserUpdate{})
		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestDeleteUser(t *testing.T) {
	s := newTestStore(t)
	user, err := s.AddUser(models.User{Email: "carol@example.com", Username: "carol"})
	assert.NoError(t, err)

	found, err := s.DeleteUser(user.ID)
	assert.NoError(t, err)
	assert.True(t, found)

	_, stillThere := s.GetUserByID(user.ID)
	assert.False(t, stillThere)

	found, err = s.DeleteUser(user.ID)
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestStoreReload(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	bus := events.NewBus(64)
	defer bus.Close()

	s, err := store.New(kv, bus)
	assert.NoError(t, err)
	user, err := s.AddUser(models.User{Email: "dora@example.com", Username: "dora"})
	assert.NoError(t, err)

	// A second store over the same backing data sees the persisted user.
	reloaded, err := store.New(kv, bus)
	assert.NoError(t, err)
	got, found := reloaded.GetUserByID(user.ID)
	assert.True(t, found)
	assert.Equal(t, "dora@example.com", got.Email)
}

func TestConcurrentWriteIsMerged(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	bus := events.NewBus(64)
	defer bus.Close()

	s, err := store.New(kv, bus)
	assert.NoError(t, err)

	// Another process sharing the backing store writes the collection behind
	// this store's back, bumping the version it last saw.
	other := models.User{
		ID:        "other-id",
		Email:     "other@example.com",
		Username:  "other",
		Status:    models.UserStatusActive,
		CreatedAt: time.Now(),
	}
	assert.NoError(t, kv.Set(store.KeyUsers, []models.User{other}))

	mine, err := s.AddUser(models.User{Email: "mine@example.com", Username: "mine"})
	assert.NoError(t, err)

	// The mutation was replayed onto the fresh state; neither record is lost.
	var persisted []models.User
	found, err := kv.Get(store.KeyUsers, &persisted)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, persisted, 2)

	emails := []string{persisted[0].Email, persisted[1].Email}
	assert.Contains(t, emails, "other@example.com")
	assert.Contains(t, emails, "mine@example.com")

	// The in-memory view adopted the other writer's record too.
	_, ok := s.GetUserByID("other-id")
	assert.True(t, ok)
	_, ok = s.GetUserByID(mine.ID)
	assert.True(t, ok)
}

func TestConcurrentWriteReplayRechecksUniqueness(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	bus := events.NewBus(64)
	defer bus.Close()

	s, err := store.New(kv, bus)
	assert.NoError(t, err)

	// The out-of-band writer registered the same email first.
	taken := models.User{
		ID:       "taken-id",
		Email:    "dup@example.com",
		Username: "first",
		Status:   models.UserStatusActive,
	}
	assert.NoError(t, kv.Set(store.KeyUsers, []models.User{taken}))

	_, err = s.AddUser(models.User{Email: "dup@example.com", Username: "second"})
	assert.ErrorIs(t, err, store.ErrEmailTaken)

	// The other writer's record survived untouched.
	var persisted []models.User
	_, err = kv.Get(store.KeyUsers, &persisted)
	assert.NoError(t, err)
	assert.Len(t, persisted, 1)
	assert.Equal(t, "first", persisted[0].Username)
}

func TestMutationPublishesDataChanged(t *testing.T) {
	bus := events.NewBus(64)
	defer bus.Close()

	received := make(chan events.DataChanged, 8)
	defer bus.Subscribe(func(ev events.DataChanged) { received <- ev }).Unsubscribe()

	s, err := store.New(kvstore.NewMemoryStore(), bus)
	assert.NoError(t, err)

	_, err = s.AddUser(models.User{Email: "eve@example.com", Username: "eve"})
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		return len(received) > 0
	}, 2*time.Second, 10*time.Millisecond, "expected a DataChanged event after AddUser")
}

func TestGetStats(t *testing.T) {
	s := newTestStore(t)

	blocked := models.UserStatusBlocked
	_, err := s.AddUser(models.User{Email: "a@example.com", Username: "a-user"})
	assert.NoError(t, err)
	badUser, err := s.AddUser(models.User{Email: "b@example.com", Username: "b-user"})
	assert.NoError(t, err)
	_, err = s.UpdateUser(badUser.ID, store.UserUpdate{Status: &blocked})
	assert.NoError(t, err)

	_, err = s.AddGame(models.Game{Title: "Chess"})
	assert.NoError(t, err)
	_, err = s.AddNews(models.NewsItem{Title: "Launch"})
	assert.NoError(t, err)

	ticket, err := s.AddTicket(models.SupportTicket{Email: "a@example.com", Subject: "Help", Message: "something broke"})
	assert.NoError(t, err)
	_, err = s.AddTicket(models.SupportTicket{Email: "b@example.com", Subject: "Help too", Message: "also broken"})
	assert.NoError(t, err)
	found, err := s.UpdateTicketStatus(ticket.ID, models.TicketStatusResolved)
	assert.NoError(t, err)
	assert.True(t, found)

	stats := s.GetStats()
	assert.Equal(t, 2, stats.TotalUsers)
	assert.Equal(t, 1, stats.ActiveUsers)
	assert.Equal(t, 1, stats.BlockedUsers)
	assert.Equal(t, 1, stats.TotalGames)
	assert.Equal(t, 1, stats.TotalNews)
	assert.Equal(t, 1, stats.OpenTickets)
	assert.Equal(t, 0, stats.InProgressTickets)
	assert.Equal(t, 1, stats.ResolvedTickets)
}

func TestClearAll(t *testing.T) {
	s := newTestStore(t)

	userA, err := s.AddUser(models.User{Email: "x@example.com", Username: "x-user"})
	assert.NoError(t, err)
	userB, err := s.AddUser(models.User{Email: "y@example.com", Username: "y-user"})
	assert.NoError(t, err)
	_, err = s.SendFriendRequest(userA.ID, userB.ID)
	assert.NoError(t, err)
	_, err = s.AddGame(models.Game{Title: "Chess"})
	assert.NoError(t, err)

	assert.NoError(t, s.ClearAll())

	assert.Empty(t, s.GetAllUsers())
	assert.Empty(t, s.GetAllGames())
	assert.Empty(t, s.GetAllNews())
	assert.Empty(t, s.GetAllTickets())

	requests, err := s.ListFriendRequests(userB.ID)
	assert.NoError(t, err)
	assert.Empty(t, requests)
}
