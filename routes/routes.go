package routes

import (
	"GameHub/controllers"
	"GameHub/middleware"
	"GameHub/services/dialogs"
	"GameHub/services/notifications"
	"GameHub/services/store"
	utils "GameHub/utils"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, s *store.Store, toasts *notifications.Center, dialogCoord *dialogs.Coordinator) {
	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/allusers", controllers.GetAllUsers(s))

	api.GET("/users/:id", controllers.GetUserPublicInfo(s))

	api.POST("/login", controllers.Login(s, toasts))

	api.POST("/signup", controllers.SignUp(s, toasts))

	api.GET("/games", controllers.ListGames(s))

	api.GET("/games/search", controllers.SearchGames(s))

	api.GET("/games/:id", controllers.GetGame(s))

	api.GET("/news", controllers.ListNews(s))

	api.GET("/news/:id", controllers.GetNews(s))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout(dialogCoord))

		authentication.GET("/me", controllers.GetCurrentUser(s))

		authentication.PATCH("/update", controllers.UpdateUserInfo(s, toasts))

		authentication.PATCH("/password", controllers.ChangePassword(s, toasts))

		authentication.PATCH("/avatar", controllers.UpdateAvatar(s, toasts))

		authentication.GET("/friends", controllers.ListFriends(s))

		authentication.DELETE("/friends/:friend_id", controllers.DeleteFriend(s))

		authentication.GET("/friendship_requests", controllers.GetAllFriendshipRequests(s))

		authentication.POST("/sendFriendRequest", controllers.SendFriendRequest(s, toasts))

		authentication.POST("/friendship_requests/:request_id/accept", controllers.AcceptFriendRequest(s, toasts))

		authentication.DELETE("/friendship_requests/:request_id", controllers.DeclineFriendRequest(s))

		authentication.POST("/support", controllers.SubmitTicket(s, toasts))

		authentication.GET("/support", controllers.ListMyTickets(s))

		authentication.GET("/support/:id", controllers.GetTicket(s))

		authentication.POST("/support/:id/responses", controllers.RespondTicket(s, toasts))

		authentication.GET("/inbox", controllers.ListInbox(s))

		authentication.POST("/inbox/:id/read", controllers.MarkInboxRead(s))

		authentication.GET("/toasts", controllers.ListToasts(s, toasts))

		authentication.POST("/toasts", controllers.ShowToast(s, toasts))

		authentication.DELETE("/toasts/:id", controllers.DismissToast(s, toasts))

		authentication.GET("/toasts/history", controllers.ToastHistory(s, toasts))

		authentication.DELETE("/toasts/history", controllers.ClearToastHistory(s, toasts))

		authentication.POST("/dialogs/confirm", controllers.OpenConfirmation(dialogCoord))

		authentication.POST("/dialogs/alert", controllers.OpenAlert(dialogCoord))

		authentication.POST("/dialogs/:id/resolve", controllers.ResolveDialog(dialogCoord))

		authentication.GET("/dialogs/active", controllers.GetActiveDialog(dialogCoord))

		authentication.DELETE("/dialogs", controllers.CloseDialogs(dialogCoord))

		admin := authentication.Group("/admin")
		{
			admin.GET("/stats", controllers.GetStats(s))

			admin.POST("/clear", controllers.ClearAllData(s))

			admin.GET("/settings", controllers.GetSiteSettings(s))

			admin.PUT("/settings", controllers.UpdateSiteSettings(s))

			admin.GET("/security-logs", controllers.SecurityLogs(s))

			admin.GET("/inbox", controllers.ListAdminInbox(s))

			admin.GET("/support", controllers.ListAllTickets(s))

			admin.POST("/support/:id/resolve", controllers.ResolveTicket(s))

			admin.PATCH("/users/:id/status", controllers.SetUserStatus(s))

			admin.DELETE("/users/:id", controllers.DeleteUser(s))

			admin.POST("/games", controllers.AddGame(s))

			admin.PATCH("/games/:id", controllers.UpdateGame(s))

			admin.DELETE("/games/:id", controllers.DeleteGame(s))

			admin.POST("/news", controllers.AddNews(s))

			admin.PATCH("/news/:id", controllers.UpdateNews(s))

			admin.DELETE("/news/:id", controllers.DeleteNews(s))
		}
	}
}
