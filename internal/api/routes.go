package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mkostiv/fitjournal/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	journalService service.JournalService,
	programService service.ProgramService,
	goalService service.GoalService,
	profileService service.ProfileService,
	metricsService service.MetricsService,
	backupService service.BackupService,
) {
	journalHandler := NewJournalHandler(journalService)
	programHandler := NewProgramHandler(programService)
	goalHandler := NewGoalHandler(goalService)
	profileHandler := NewProfileHandler(profileService)
	metricsHandler := NewMetricsHandler(metricsService)
	backupHandler := NewBackupHandler(backupService)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	apiV1.Use(RequestLogger())
	{
		// --- Journal Routes ---
		journalGroup := apiV1.Group("/journals")
		{
			journalGroup.GET("", journalHandler.ListJournals)
			journalGroup.GET("/:date", journalHandler.GetJournal)
			journalGroup.PUT("/:date", journalHandler.SaveJournal)
			journalGroup.PATCH("/:date", journalHandler.PatchJournal)
			journalGroup.DELETE("/:date", journalHandler.DeleteJournal)
		}

		// --- Program Routes ---
		programGroup := apiV1.Group("/programs")
		{
			programGroup.POST("", programHandler.CreateProgram)
			programGroup.GET("", programHandler.ListPrograms)
			programGroup.GET("/:id", programHandler.GetProgram)
			programGroup.PUT("/:id", programHandler.UpdateProgram)
			programGroup.DELETE("/:id", programHandler.DeleteProgram)
			programGroup.GET("/:id/next-day", programHandler.NextDay)
		}

		// --- Active Program Setting ---
		settingsGroup := apiV1.Group("/settings")
		{
			settingsGroup.GET("/active-program", programHandler.GetActiveProgram)
			settingsGroup.PUT("/active-program", programHandler.SetActiveProgram)
		}

		// --- Goal Routes ---
		goalGroup := apiV1.Group("/goals")
		{
			goalGroup.POST("", goalHandler.CreateGoal)
			goalGroup.GET("", goalHandler.ListGoals)
			goalGroup.GET("/progress", goalHandler.ListGoalProgress)
			goalGroup.GET("/:id", goalHandler.GetGoal)
			goalGroup.DELETE("/:id", goalHandler.DeleteGoal)
			goalGroup.GET("/:id/progress", goalHandler.GetGoalProgress)
			goalGroup.POST("/:id/reopen", goalHandler.ReopenGoal)
		}

		// --- Profile Routes ---
		apiV1.GET("/profile", profileHandler.GetProfile)
		apiV1.PUT("/profile", profileHandler.SaveProfile)

		// --- Metrics Routes ---
		metricsGroup := apiV1.Group("/metrics")
		{
			metricsGroup.GET("/:metric/series", metricsHandler.GetSeries)
			metricsGroup.GET("/:metric/latest", metricsHandler.GetLatest)
			metricsGroup.GET("/:metric/average", metricsHandler.GetAverage)
		}
		apiV1.GET("/exercises/:name/series", metricsHandler.GetExerciseSeries)

		// --- Backup & Sync Routes ---
		backupGroup := apiV1.Group("/backup")
		{
			backupGroup.GET("/export", backupHandler.Export)
			backupGroup.POST("/import", backupHandler.Import)
		}
		syncGroup := apiV1.Group("/sync")
		{
			syncGroup.POST("/push", backupHandler.PushSync)
			syncGroup.POST("/pull", backupHandler.PullSync)
		}
	}
}
