package api

import (
	"log"
	stdhttp "net/http"

	intconfig "travelog/internal/config"
	h "travelog/internal/http/handlers"
	"travelog/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the Gin engine. The returned cleanup func stops the diary
// cache sweeper and must run on shutdown.
func NewRouter(env intconfig.Env) (*gin.Engine, func()) {
	cleanup := h.Init(env)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Public shared diaries
		api.GET("/shared/:token", h.GetSharedDiary)

		secured := api.Group("")
		secured.Use(middleware.RequireAuth(h.JWTSecret()))

		// Users
		users := secured.Group("/users")
		users.GET("", h.GetUsers)
		users.GET("/:id", h.GetUserByID)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", middleware.RequireRoles("admin"), h.DeleteUser)

		// Trips
		trips := secured.Group("/trips")
		trips.GET("", h.GetTrips)
		trips.POST("", h.CreateTrip)
		trips.GET("/:id", h.GetTrip)
		trips.PUT("/:id", h.UpdateTrip)
		trips.DELETE("/:id", h.DeleteTrip)

		// Members
		trips.GET("/:id/members", h.GetTripMembers)
		trips.POST("/:id/members", h.AddTripMember)
		trips.DELETE("/:id/members/:userId", h.RemoveTripMember)

		// Steps (waypoints)
		trips.GET("/:id/steps", h.GetTripSteps)
		trips.POST("/:id/steps", h.CreateTripStep)
		trips.PUT("/:id/steps/:stepId", h.UpdateTripStep)
		trips.DELETE("/:id/steps/:stepId", h.DeleteTripStep)

		// Recorded route
		trips.GET("/:id/route", h.GetTripRoute)
		trips.POST("/:id/route", h.AppendTripRoute)
		trips.DELETE("/:id/route", h.ClearTripRoute)

		// Expenses
		trips.GET("/:id/expenses", h.GetTripExpenses)
		trips.POST("/:id/expenses", h.CreateTripExpense)
		trips.GET("/:id/expenses/summary", h.GetTripExpenseSummary)
		trips.GET("/:id/expenses/settlement", h.GetTripSettlement)
		trips.PUT("/:id/expenses/:expenseId", h.UpdateTripExpense)
		trips.DELETE("/:id/expenses/:expenseId", h.DeleteTripExpense)

		// Photos
		trips.GET("/:id/photos", h.GetTripPhotos)
		trips.POST("/:id/photos", h.CreateTripPhoto)
		trips.PUT("/:id/photos/:photoId", h.UpdateTripPhoto)
		trips.DELETE("/:id/photos/:photoId", h.DeleteTripPhoto)

		// Design platform account
		secured.POST("/design/connect", h.ConnectDesignAccount)

		// Diary
		trips.GET("/:id/diary.pdf", h.GetTripDiaryPDF)
		trips.POST("/:id/diary/design", h.ExportTripDesign)
		trips.GET("/:id/share", h.GetShareLink)
		trips.POST("/:id/share", h.RotateShareLink)
	}

	return r, cleanup
}
