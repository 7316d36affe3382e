package store

/**
 * This file contains utility functions to format the keys under which the
 * portal collections are persisted. It avoids having to call
 * "fmt.Sprintf(...)" with the same format spec every time, potentially
 * confusing the key format.
 */

import "fmt"

// Fixed keys for the four main collections.
const (
	KeyUsers          = "users"
	KeyGames          = "games"
	KeyNews           = "news"
	KeySupportTickets = "supportTickets"

	KeyAdminNotifications = "adminNotifications"
	KeySiteSettings       = "siteSettings"
	KeySecurityLogs       = "securityLogs"
)

func FormatFriendsKey(userID string) string {
	return fmt.Sprintf("friends_%s", userID)
}

func FormatFriendRequestsKey(userID string) string {
	return fmt.Sprintf("friend_requests_%s", userID)
}

func FormatNotificationHistoryKey(userID string) string {
	return fmt.Sprintf("notificationHistory_%s", userID)
}

func FormatUserNotificationsKey(email string) string {
	return fmt.Sprintf("userNotifications_%s", email)
}
