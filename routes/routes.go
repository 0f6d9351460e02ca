package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/open-nie/events-backend/controllers"
	"github.com/open-nie/events-backend/middleware"
)

func SetupRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.GET("/verify-token", middleware.AuthMiddleware(), controllers.VerifyToken)
	}

	users := router.Group("/api/users")
	users.Use(middleware.AuthMiddleware())
	{
		users.GET("/me", controllers.GetProfile)
		users.PUT("/me", controllers.UpdateProfile)
	}

	events := router.Group("/api/events")
	{
		events.GET("/", controllers.GetEvents)
		events.GET("/:id", controllers.GetEvent)
		events.GET("/:id/feedback", controllers.GetEventFeedback)
	}

	registrations := router.Group("/api/registrations")
	registrations.Use(middleware.AuthMiddleware())
	{
		registrations.POST("/", controllers.RegisterForEvent)
		registrations.GET("/my-registrations", controllers.MyRegistrations)
		registrations.POST("/checkin", controllers.SelfCheckIn)
		registrations.DELETE("/:id", controllers.CancelRegistration)
	}

	router.POST("/api/scan-qr", middleware.AuthMiddleware(), middleware.OrganiserOnly(), controllers.ScanQR)

	organiser := router.Group("/api/organiser")
	organiser.Use(middleware.AuthMiddleware(), middleware.OrganiserOnly())
	{
		organiser.POST("/create-event", controllers.CreateEvent)
		organiser.PUT("/update-event/:id", controllers.UpdateEvent)
		organiser.DELETE("/delete-event/:id", controllers.DeleteEvent)
		organiser.GET("/manage-events", controllers.ManageEvents)
		organiser.GET("/event/:id/participants", controllers.GetParticipants)
	}

	notifications := router.Group("/api/notifications")
	notifications.Use(middleware.AuthMiddleware())
	{
		notifications.GET("/", controllers.GetNotifications)
		notifications.PUT("/:id/read", controllers.MarkNotificationRead)
	}

	votes := router.Group("/api/votes")
	votes.Use(middleware.AuthMiddleware())
	{
		votes.POST("/propose", middleware.OrganiserOnly(), controllers.ProposeEvent)
		votes.GET("/proposed", controllers.GetProposedEvents)
		votes.POST("/vote", middleware.StudentOnly(), controllers.CastVote)
	}

	router.POST("/api/feedback", middleware.AuthMiddleware(), middleware.StudentOnly(), controllers.SubmitFeedback)
}
