package api

import (
	"net/http"

	"postflow/internal/api/middleware"
	"postflow/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/login", group.AuthHandler.Login)
			authGroup.POST("/guest", group.AuthHandler.GuestLogin)

			loggedGroup := authGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/logout", group.AuthHandler.Logout)
				loggedGroup.GET("/me", group.AuthHandler.Me)
			}
		}

		profileGroup := apiGroup.Group("/profile")
		profileGroup.Use(middleware.AuthMiddleware())
		{
			profileGroup.GET("", group.ProfileHandler.GetProfile)
			profileGroup.PUT("", group.ProfileHandler.SaveProfile)
		}

		postGroup := apiGroup.Group("/posts")
		postGroup.Use(middleware.AuthMiddleware())
		{
			postGroup.GET("", group.PostHandler.ListPosts)
			postGroup.GET("/calendar", group.PostHandler.Calendar)
			postGroup.GET("/analytics", group.PostHandler.AnalyticsSummary)
			postGroup.POST("/publish", group.PostHandler.Publish)
			postGroup.GET("/:post_id", group.PostHandler.GetPost)
			postGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
			postGroup.DELETE("/:post_id", group.PostHandler.DeletePost)
		}

		composerGroup := apiGroup.Group("/composer")
		composerGroup.Use(middleware.AuthMiddleware())
		{
			composerGroup.GET("/session", group.ComposerHandler.Session)
			composerGroup.POST("/configure", group.ComposerHandler.Configure)
			composerGroup.POST("/generate", group.ComposerHandler.Generate)
			composerGroup.PUT("/draft", group.ComposerHandler.EditDraft)
			composerGroup.PUT("/tab", group.ComposerHandler.SwitchTab)
			composerGroup.POST("/score", group.ComposerHandler.Score)
			composerGroup.POST("/save", group.ComposerHandler.SaveActive)
		}

		connectionGroup := apiGroup.Group("/connections")
		connectionGroup.Use(middleware.AuthMiddleware())
		{
			connectionGroup.GET("", group.ConnectionHandler.ListConnections)
			connectionGroup.PUT("/:platform", group.ConnectionHandler.SaveConnection)
			connectionGroup.DELETE("/:platform", group.ConnectionHandler.Disconnect)
			connectionGroup.POST("/:platform/verify", group.ConnectionHandler.Verify)
		}

		mediaGroup := apiGroup.Group("/media")
		mediaGroup.Use(middleware.AuthMiddleware())
		{
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}

		// WS 鉴权走查询参数，不套 AuthMiddleware
		apiGroup.GET("/ws/changes", group.WsHandler.Changes)
	}

	return r
}
