package router

import (
	"github.com/bigredconnect/sessiond/internal/handlers"

	"github.com/labstack/echo/v4"
)

func SetupGuardRoutes(app *echo.Echo, guardHandler *handlers.GuardHandler) {
	api := app.Group("/api/session")

	api.GET("", guardHandler.GetSession)               // Read-only snapshot + next decision
	api.POST("/activity", guardHandler.RecordActivity) // Interaction / visibility-restored touch
	api.POST("/bookings", guardHandler.UpdateBookings) // Refresh idle-suppression flag
	api.POST("/logout", guardHandler.ForceLogout)      // Forced-logout entry point
}
