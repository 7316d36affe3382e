package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"GameHub/models"
	"GameHub/services/notifications"
	"GameHub/services/store"
)

// ListFriends godoc
// @Summary Get a list of the user's friends
// @Description Returns each friend's public info plus the link date
// @Tags friends
// @Produce json
// @Success 200 {array} object{id=string,username=string,avatar=string,since=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/friends [get]
// @Security ApiKeyAuth
func ListFriends(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}

		friendships, err := s.ListFriends(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching friendships"})
			return
		}

		simplifiedFriends := make([]gin.H, 0, len(friendships))
		for _, friendship := range friendships {
			friend, found := s.GetUserByID(friendship.FriendID)
			if !found {
				continue
			}
			simplifiedFriends = append(simplifiedFriends, gin.H{
				"id":       friend.ID,
				"username": friend.Username,
				"avatar":   friend.Avatar,
				"since":    friendship.Since,
			})
		}
		c.JSON(http.StatusOK, simplifiedFriends)
	}
}

// GetAllFriendshipRequests godoc
// @Summary Get pending friend requests
// @Description Returns received and sent pending requests with sender/recipient public info
// @Tags friends
// @Produce json
// @Success 200 {object} object{received=array,sent=array}
// @Failure 500 {object} object{error=string}
// @Router /auth/friendship_requests [get]
// @Security ApiKeyAuth
func GetAllFriendshipRequests(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}

		received, err := s.ListFriendRequests(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving received friendship requests"})
			return
		}
		sent, err := s.ListSentFriendRequests(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving sent friendship requests"})
			return
		}

		receivedInfo := make([]gin.H, 0, len(received))
		for _, request := range received {
			sender, found := s.GetUserByID(request.FromID)
			if !found {
				continue
			}
			receivedInfo = append(receivedInfo, gin.H{
				"request_id": request.ID,
				"username":   sender.Username,
				"avatar":     sender.Avatar,
				"created_at": request.CreatedAt,
			})
		}
		sentInfo := make([]gin.H, 0, len(sent))
		for _, request := range sent {
			recipient, found := s.GetUserByID(request.ToID)
			if !found {
				continue
			}
			sentInfo = append(sentInfo, gin.H{
				"request_id": request.ID,
				"username":   recipient.Username,
				"avatar":     recipient.Avatar,
				"created_at": request.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{"received": receivedInfo, "sent": sentInfo})
	}
}

// SendFriendRequest godoc
// @Summary Send a friend request
// @Description Sends a friend request to another user
// @Tags friends
// @Accept json
// @Produce json
// @Param body body object{user_id=string} true "Recipient user id"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/sendFriendRequest [post]
// @Security ApiKeyAuth
func SendFriendRequest(s *store.Store, toasts *notifications.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}

		var req struct {
			UserID string `json:"user_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.UserID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Recipient user id is required"})
			return
		}

		recipient, found := s.GetUserByID(req.UserID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receiver user not found"})
			return
		}

		_, err := s.SendFriendRequest(user.ID, recipient.ID)
		switch {
		case errors.Is(err, store.ErrSelfFriend):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot send a friend request to yourself"})
			return
		case errors.Is(err, store.ErrAlreadyFriends):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You are already friends"})
			return
		case errors.Is(err, store.ErrRequestExists):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Friend request already sent"})
			return
		case err != nil:
			log.Printf("Error sending friend request: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending friend request"})
			return
		}

		toasts.Show(recipient.ID, models.ToastInfo, user.Username+" sent you a friend request", notifications.ShowOptions{})
		c.JSON(http.StatusOK, gin.H{"message": "Friend request sent successfully"})
	}
}

// AcceptFriendRequest godoc
// @Summary Accept a friend request
// @Description Creates the symmetric friend link and removes the request
// @Tags friends
// @Produce json
// @Param request_id path string true "Request id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/friendship_requests/{request_id}/accept [post]
// @Security ApiKeyAuth
func AcceptFriendRequest(s *store.Store, toasts *notifications.Center) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}

		found, err := s.AcceptFriendRequest(user.ID, c.Param("request_id"))
		if err != nil {
			log.Printf("Error accepting friend request: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error accepting friend request"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
			return
		}

		toasts.Show(user.ID, models.ToastSuccess, "Friend request accepted", notifications.ShowOptions{})
		c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
	}
}

// DeclineFriendRequest godoc
// @Summary Decline a friend request
// @Tags friends
// @Produce json
// @Param request_id path string true "Request id"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Router /auth/friendship_requests/{request_id} [delete]
// @Security ApiKeyAuth
func DeclineFriendRequest(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}

		found, err := s.DeclineFriendRequest(user.ID, c.Param("request_id"))
		if err != nil {
			log.Printf("Error declining friend request: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error declining friend request"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Friend request not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Friend request declined"})
	}
}

// DeleteFriend godoc
// @Summary Remove a friend
// @Description Removes the friend link from both users' lists
// @Tags friends
// @Produce json
// @Param friend_id path string true "Friend user id"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/friends/{friend_id} [delete]
// @Security ApiKeyAuth
func DeleteFriend(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := authedUser(c, s)
		if !ok {
			return
		}

		found, err := s.RemoveFriend(user.ID, c.Param("friend_id"))
		if err != nil {
			log.Printf("Error removing friend: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting friend"})
			return
		}
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Friendship does not exist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Friend removed successfully"})
	}
}
