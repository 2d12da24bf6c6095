// server/internal/api/routes/routes.go
package routes

import (
	"phc-ops-api-server/config"
	"phc-ops-api-server/internal/api/handlers"
	"phc-ops-api-server/internal/api/middleware"
	"phc-ops-api-server/internal/socket"
	"phc-ops-api-server/internal/triage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the injected dependencies into the route tree.
func SetupRouter(
	cfg config.Config,
	db *gorm.DB,
	classifier triage.Classifier,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	// CORS for the frontline and admin web clients.
	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowCredentials = !corsConfig.AllowAllOrigins
	corsConfig.AddAllowHeaders("Authorization")
	router.Use(cors.New(corsConfig))

	// Handlers
	phcAuthHandler := &handlers.PHCAuthHandler{DB: db, Cfg: cfg}
	patientHandler := &handlers.PatientHandler{DB: db, Classifier: classifier}
	inventoryHandler := &handlers.InventoryHandler{DB: db, Hub: wsHub}
	workloadHandler := &handlers.WorkloadHandler{DB: db, Hub: wsHub}
	feedbackHandler := &handlers.FeedbackHandler{DB: db}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Welcome to the PHC Operations API!"})
	})

	apiV1 := router.Group("/api/v1")
	{
		// WebSocket route (token travels as a query parameter)
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		// === ROUTES WITHOUT AUTHENTICATION ===
		phc := apiV1.Group("/phc")
		{
			phc.POST("/sign-up", phcAuthHandler.SignUp)
			phc.POST("/sign-in", phcAuthHandler.SignIn)
		}

		// === PROTECTED ROUTES ===
		businessRoutes := apiV1.Group("/")
		businessRoutes.Use(middleware.Authenticate())
		businessRoutes.Use(middleware.Authorize("phc", "lga_admin"))
		{
			// Patient registration and triage
			patients := businessRoutes.Group("/patients")
			{
				patients.POST("/", patientHandler.RegisterPatient)
				patients.GET("/", patientHandler.GetAllPatients)
				patients.GET("/:id", patientHandler.GetPatientByID)
				patients.PUT("/:id", patientHandler.UpdatePatient)
				patients.POST("/triage/:id", patientHandler.TriagePatient)
			}

			// Inventory and restock management
			inv := businessRoutes.Group("/inventory")
			{
				inv.GET("/low-stock", inventoryHandler.GetLowStockItems)
				inv.POST("/auto-restock-check", inventoryHandler.AutoRestockCheck)
				inv.POST("/update-stock", inventoryHandler.UpdateStock)

				inv.GET("/items", inventoryHandler.GetItems)
				inv.POST("/items", inventoryHandler.AddItem)
				inv.PUT("/items/:id", inventoryHandler.UpdateItem)

				inv.POST("/restock-requests", inventoryHandler.CreateRestockRequest)
				inv.GET("/restock-requests", inventoryHandler.GetRestockRequests)

				// Approval and decline stay with the LGA admin
				lgaRoutes := inv.Group("/")
				lgaRoutes.Use(middleware.Authorize("lga_admin"))
				{
					lgaRoutes.PUT("/restock-requests/:id", inventoryHandler.UpdateRestockRequest)
				}
			}

			// Workload monitoring and forecasting
			wl := businessRoutes.Group("/workload")
			{
				wl.POST("/log", workloadHandler.RecordWorkload)
				wl.GET("/logs/:phc_id", workloadHandler.GetLogsByPHC)
				wl.POST("/forecast/:phc_id", workloadHandler.ForecastNextDay)
			}

			// Feedback and issue tracking
			fb := businessRoutes.Group("/feedback")
			{
				fb.POST("/", feedbackHandler.SubmitFeedback)
				fb.GET("/:phc_id", feedbackHandler.GetFeedbackByPHC)
				fb.PUT("/:id", feedbackHandler.UpdateFeedbackStatus)
			}
		}
	}

	return router
}
