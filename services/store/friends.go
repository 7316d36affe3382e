package store

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"GameHub/models"
)

var (
	ErrSelfFriend     = errors.New("store: cannot befriend yourself")
	ErrAlreadyFriends = errors.New("store: users are already friends")
	ErrRequestExists  = errors.New("store: friend request already pending")
)

// ListFriends returns the friend links of the given user.
func (s *Store) ListFriends(userID string) ([]models.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadFriends(userID)
}

// ListFriendRequests returns the pending requests addressed to the user.
func (s *Store) ListFriendRequests(userID string) ([]models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadRequests(userID)
}

// ListSentFriendRequests returns the pending requests the user has sent.
// Requests live on the recipient's list, so this walks the request keys;
// collection sizes are tiny by design.
func (s *Store) ListSentFriendRequests(userID string) ([]models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys, err := s.kv.Keys("friend_requests_")
	if err != nil {
		return nil, err
	}
	sent := []models.FriendRequest{}
	for _, key := range keys {
		var requests []models.FriendRequest
		if _, err := s.kv.Get(key, &requests); err != nil {
			return nil, err
		}
		for _, r := range requests {
			if r.FromID == userID {
				sent = append(sent, r)
			}
		}
	}
	return sent, nil
}

// AreFriends reports whether the two users share a friend link.
func (s *Store) AreFriends(userID, otherID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.areFriendsLocked(userID, otherID)
}

// SendFriendRequest records a pending request on the recipient's list after
// checking it is not a self-request, a duplicate, or between friends.
func (s *Store) SendFriendRequest(fromID, toID string) (models.FriendRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fromID == toID {
		return models.FriendRequest{}, ErrSelfFriend
	}
	friends, err := s.areFriendsLocked(fromID, toID)
	if err != nil {
		return models.FriendRequest{}, err
	}
	if friends {
		return models.FriendRequest{}, ErrAlreadyFriends
	}

	// A pending request in either direction blocks a new one.
	incoming, err := s.loadRequests(toID)
	if err != nil {
		return models.FriendRequest{}, err
	}
	for _, r := range incoming {
		if r.FromID == fromID {
			return models.FriendRequest{}, ErrRequestExists
		}
	}
	reverse, err := s.loadRequests(fromID)
	if err != nil {
		return models.FriendRequest{}, err
	}
	for _, r := range reverse {
		if r.FromID == toID {
			return models.FriendRequest{}, ErrRequestExists
		}
	}

	request := models.FriendRequest{
		ID:        uuid.NewString(),
		FromID:    fromID,
		ToID:      toID,
		CreatedAt: time.Now(),
	}
	incoming = append(incoming, request)
	if err := s.persistKeyed(FormatFriendRequestsKey(toID), incoming); err != nil {
		return request, err
	}
	s.notify()
	return request, nil
}

// AcceptFriendRequest removes the pending request and writes the symmetric
// friend link onto both users' lists. Returns false when the request id is
// not on the user's list.
func (s *Store) AcceptFriendRequest(userID, requestID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests, err := s.loadRequests(userID)
	if err != nil {
		return false, err
	}
	found := -1
	for i, r := range requests {
		if r.ID == requestID {
			found = i
			break
		}
	}
	if found < 0 {
		return false, nil
	}
	request := requests[found]
	requests = append(requests[:found], requests[found+1:]...)

	now := time.Now()
	mine, err := s.loadFriends(userID)
	if err != nil {
		return true, err
	}
	theirs, err := s.loadFriends(request.FromID)
	if err != nil {
		return true, err
	}
	mine = append(mine, models.Friendship{FriendID: request.FromID, Since: now})
	theirs = append(theirs, models.Friendship{FriendID: userID, Since: now})

	if err := s.persistKeyed(FormatFriendRequestsKey(userID), requests); err != nil {
		return true, err
	}
	if err := s.persistKeyed(FormatFriendsKey(userID), mine); err != nil {
		return true, err
	}
	if err := s.persistKeyed(FormatFriendsKey(request.FromID), theirs); err != nil {
		return true, err
	}
	s.notify()
	return true, nil
}

// DeclineFriendRequest drops the pending request. Returns false when the
// request id is not on the user's list.
func (s *Store) DeclineFriendRequest(userID, requestID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests, err := s.loadRequests(userID)
	if err != nil {
		return false, err
	}
	for i, r := range requests {
		if r.ID == requestID {
			requests = append(requests[:i], requests[i+1:]...)
			if err := s.persistKeyed(FormatFriendRequestsKey(userID), requests); err != nil {
				return true, err
			}
			s.notify()
			return true, nil
		}
	}
	return false, nil
}

// RemoveFriend deletes the link from both users' lists. Returns false when
// the users are not friends.
func (s *Store) RemoveFriend(userID, friendID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mine, err := s.loadFriends(userID)
	if err != nil {
		return false, err
	}
	removed := false
	for i, f := range mine {
		if f.FriendID == friendID {
			mine = append(mine[:i], mine[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		return false, nil
	}

	theirs, err := s.loadFriends(friendID)
	if err != nil {
		return true, err
	}
	for i, f := range theirs {
		if f.FriendID == userID {
			theirs = append(theirs[:i], theirs[i+1:]...)
			break
		}
	}

	if err := s.persistKeyed(FormatFriendsKey(userID), mine); err != nil {
		return true, err
	}
	if err := s.persistKeyed(FormatFriendsKey(friendID), theirs); err != nil {
		return true, err
	}
	s.notify()
	return true, nil
}

// loadFriends must be called with s.mu held.
func (s *Store) loadFriends(userID string) ([]models.Friendship, error) {
	friends := []models.Friendship{}
	if _, err := s.kv.Get(FormatFriendsKey(userID), &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

// loadRequests must be called with s.mu held.
func (s *Store) loadRequests(userID string) ([]models.FriendRequest, error) {
	requests := []models.FriendRequest{}
	if _, err := s.kv.Get(FormatFriendRequestsKey(userID), &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// areFriendsLocked must be called with s.mu held.
func (s *Store) areFriendsLocked(userID, otherID string) (bool, error) {
	friends, err := s.loadFriends(userID)
	if err != nil {
		return false, err
	}
	for _, f := range friends {
		if strings.EqualFold(f.FriendID, otherID) {
			return true, nil
		}
	}
	return false, nil
}
