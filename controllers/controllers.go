package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/open-nie/events-backend/apierr"
	"github.com/open-nie/events-backend/config"
	"github.com/open-nie/events-backend/database"
	"github.com/open-nie/events-backend/logger"
	"github.com/open-nie/events-backend/services"
)

var (
	cfg        config.Config
	log        *logger.Logger
	notifier   *services.Notifier
	regService *services.RegistrationService
	checkinSvc *services.CheckinService
)

// Init wires the controllers to the shared database handle. Must be called
// after database.Connect and before any route is served.
func Init(c config.Config, baseLog *logger.Logger) {
	cfg = c
	log = baseLog.With("component", "controllers")
	notifier = services.NewNotifier(database.DB, baseLog)
	regService = services.NewRegistrationService(database.DB, baseLog, notifier)
	checkinSvc = services.NewCheckinService(database.DB, baseLog)
}

// abortWithError maps a service error onto the HTTP response.
func abortWithError(c *gin.Context, err error) {
	apiErr := apierr.From(err)
	if apiErr.Status >= 500 {
		log.Error("request failed", "path", c.FullPath(), "error", apiErr.Err)
	}
	c.JSON(apiErr.Status, gin.H{"error": apiErr.Error(), "code": apiErr.Code})
}
