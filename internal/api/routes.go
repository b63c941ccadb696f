package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Stored résumé files, linked from the export spreadsheets
	router.GET("/uploads/:filename", handler.ServeUpload)

	// Candidate routes
	forms := router.Group("/forms")
	{
		forms.POST("", handler.CreateCandidate)
		forms.GET("", handler.ListCandidates)
		forms.GET("/download/export-excel", handler.ExportCandidates)
		forms.GET("/:id", handler.GetCandidate)
		forms.PUT("/:id", handler.UpdateCandidate)
		forms.DELETE("/:id", handler.DeleteCandidate)
		forms.GET("/:id/download", handler.DownloadResume)
		forms.GET("/:id/export-excel", handler.ExportCandidate)
		forms.POST("/:id/comments", handler.AddComment)
		forms.GET("/:id/comments", handler.GetComments)
	}

	// Account routes
	users := router.Group("/users")
	{
		users.POST("/register", handler.Register)
		users.POST("/login", handler.Login)
		users.POST("/forgot-password", handler.ForgotPassword)
		users.POST("/reset-password/:token", handler.ResetPassword)
	}

	// Admin routes
	admin := router.Group("/admin")
	{
		admin.GET("/stats", handler.Stats)

		admin.POST("/sub-admins", handler.CreateSubAdmin)
		admin.GET("/sub-admins", handler.ListSubAdmins)
		admin.GET("/sub-admins/:id", handler.GetSubAdmin)
		admin.PUT("/sub-admins/:id", handler.UpdateSubAdmin)
		admin.DELETE("/sub-admins/:id", handler.DeleteSubAdmin)

		admin.POST("/sub-users", handler.CreateSubUser)
		admin.GET("/sub-users", handler.ListSubUsers)
		admin.GET("/sub-users/:id", handler.GetSubUser)
		admin.PUT("/sub-users/:id", handler.UpdateSubUser)
		admin.DELETE("/sub-users/:id", handler.DeleteSubUser)

		admin.POST("/companies", handler.CreateCompany)
		admin.GET("/companies", handler.ListCompanies)
		admin.PUT("/companies/:id", handler.UpdateCompany)
		admin.DELETE("/companies/:id", handler.DeleteCompany)

		admin.POST("/cities", handler.CreateCity)
		admin.GET("/cities", handler.ListCities)
		admin.PUT("/cities/:id", handler.UpdateCity)
		admin.DELETE("/cities/:id", handler.DeleteCity)

		admin.GET("/states", handler.ListStates)
		admin.GET("/states/:state/cities", handler.ListStateCities)
	}
}
