// Package router wires the HTTP surface: middleware chain, public
// endpoints and the authenticated API.
package router

import (
	"net/http"
	"time"

	"hvac-serwis-server/internal/config"
	"hvac-serwis-server/internal/handlers"
	"hvac-serwis-server/pkg/middleware"

	"github.com/gin-gonic/gin"
)

const maxRequestBody = 1 << 20 // 1 MiB; imports are the largest payload

// Router owns the gin engine and the handlers mounted on it.
type Router struct {
	engine *gin.Engine
}

// New builds the full route table.
func New(cfg *config.Config, auth *handlers.AuthHandler, clients *handlers.ClientHandler, smsHandler *handlers.SMSHandler) *Router {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.AuditLogMiddleware())
	engine.Use(middleware.SecurityHeadersMiddleware())
	engine.Use(middleware.CORSMiddleware())
	engine.Use(middleware.RequestSizeLimitMiddleware(maxRequestBody))

	engine.HandleMethodNotAllowed = true
	engine.GET("/health", handleHealth)
	engine.NoRoute(handleNotFound)
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	authGroup := engine.Group("/api/auth")
	{
		authGroup.POST("/login", auth.Login)
	}

	protected := engine.Group("/api")
	protected.Use(middleware.AuthMiddleware(cfg))
	{
		protected.GET("/clients", clients.List)
		protected.GET("/clients/:id", clients.Get)
		protected.GET("/clients/:id/sms-log", clients.SMSLog)
		protected.POST("/clients/import", clients.Import)

		protected.POST("/sms/open", smsHandler.Open)
		protected.POST("/sms/template", smsHandler.Template)
		protected.POST("/sms/reset", smsHandler.Reset)
		protected.PUT("/sms/message", smsHandler.SetMessage)
		protected.POST("/sms/send", smsHandler.Send)
		protected.POST("/sms/cancel", smsHandler.Cancel)
		protected.GET("/sms/session", smsHandler.Session)

		protected.GET("/notices", smsHandler.Notices)
	}

	return &Router{engine: engine}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"time":    time.Now().UTC(),
		"service": "hvac-serwis-server",
	})
}

func handleNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
}
