package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"GameHub/models"
	"GameHub/services/store"
)

func addUsers(t *testing.T, s *store.Store, names ...string) []models.User {
	t.Helper()
	users := make([]models.User, len(names))
	for i, name := range names {
		user, err := s.AddUser(models.User{
			Email:    name + "@example.com",
			Username: name,
		})
		assert.NoError(t, err)
		users[i] = user
	}
	return users
}

func TestSendFriendRequest(t *testing.T) {
	s := newTestStore(t)
	users := addUsers(t, s, "ana", "bob")
	ana, bob := users[0], users[1]

	t.Run("request lands on the recipient's list", func(t *testing.T) {
		request, err := s.SendFriendRequest(ana.ID, bob.ID)
		assert.NoError(t, err)
		assert.Equal(t, ana.ID, request.FromID)

		received, err := s.ListFriendRequests(bob.ID)
		assert.NoError(t, err)
		assert.Len(t, received, 1)

		sent, err := s.ListSentFriendRequests(ana.ID)
		assert.NoError(t, err)
		assert.Len(t, sent, 1)
	})

	t.Run("self-request is rejected", func(t *testing.T) {
		_, err := s.SendFriendRequest(ana.ID, ana.ID)
		assert.ErrorIs(t, err, store.ErrSelfFriend)
	})

	t.Run("duplicate is rejected", func(t *testing.T) {
		_, err := s.SendFriendRequest(ana.ID, bob.ID)
		assert.ErrorIs(t, err, store.ErrRequestExists)
	})

	t.Run("reverse-direction pending request is rejected too", func(t *testing.T) {
		_, err := s.SendFriendRequest(bob.ID, ana.ID)
		assert.ErrorIs(t, err, store.ErrRequestExists)
	})
}

func TestAcceptFriendRequest(t *testing.T) {
	s := newTestStore(t)
	users := addUsers(t, s, "ana", "bob")
	ana, bob := users[0], users[1]

	request, err := s.SendFriendRequest(ana.ID, bob.ID)
	assert.NoError(t, err)

	found, err := s.AcceptFriendRequest(bob.ID, request.ID)
	assert.NoError(t, err)
	assert.True(t, found)

	t.Run("link is symmetric", func(t *testing.T) {
		anaFriends, err := s.ListFriends(ana.ID)
		assert.NoError(t, err)
		bobFriends, err2 := s.ListFriends(bob.ID)
		assert.NoError(t, err2)

		assert.Len(t, anaFriends, 1)
		assert.Len(t, bobFriends, 1)
		assert.Equal(t, bob.ID, anaFriends[0].FriendID)
		assert.Equal(t, ana.ID, bobFriends[0].FriendID)
	})

	t.Run("request is consumed", func(t *testing.T) {
		requests, err := s.ListFriendRequests(bob.ID)
		assert.NoError(t, err)
		assert.Empty(t, requests)
	})

	t.Run("a new request between friends is rejected", func(t *testing.T) {
		_, err := s.SendFriendRequest(ana.ID, bob.ID)
		assert.ErrorIs(t, err, store.ErrAlreadyFriends)
	})

	t.Run("unknown request id reports not found", func(t *testing.T) {
		found, err := s.AcceptFriendRequest(bob.ID, "nope")
		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestDeclineFriendRequest(t *testing.T) {
	s := newTestStore(t)
	users := addUsers(t, s, "ana", "bob")
	ana, bob := users[0], users[1]

	request, err := s.SendFriendRequest(ana.ID, bob.ID)
	assert.NoError(t, err)

	found, err := s.DeclineFriendRequest(bob.ID, request.ID)
	assert.NoError(t, err)
	assert.True(t, found)

	friends, err := s.ListFriends(bob.ID)
	assert.NoError(t, err)
	assert.Empty(t, friends)

	// Declining clears the way for a fresh request.
	_, err = s.SendFriendRequest(ana.ID, bob.ID)
	assert.NoError(t, err)
}

func TestRemoveFriend(t *testing.T) {
	s := newTestStore(t)
	users := addUsers(t, s, "ana", "bob")
	ana, bob := users[0], users[1]

	request, err := s.SendFriendRequest(ana.ID, bob.ID)
	assert.NoError(t, err)
	_, err = s.AcceptFriendRequest(bob.ID, request.ID)
	assert.NoError(t, err)

	found, err := s.RemoveFriend(ana.ID, bob.ID)
	assert.NoError(t, err)
	assert.True(t, found)

	t.Run("both lists are cleaned", func(t *testing.T) {
		anaFriends, err := s.ListFriends(ana.ID)
		assert.NoError(t, err)
		bobFriends, err2 := s.ListFriends(bob.ID)
		assert.NoError(t, err2)
		assert.Empty(t, anaFriends)
		assert.Empty(t, bobFriends)
	})

	t.Run("removing a non-friend reports not found", func(t *testing.T) {
		found, err := s.RemoveFriend(ana.ID, bob.ID)
		assert.NoError(t, err)
		assert.False(t, found)
	})
}
