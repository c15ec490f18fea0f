package server

import (
	"fmt"
	"os"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	allowedOrigins := []string{"http://localhost:3000"}
	if s.Config.AccessControlAllowOrigin != "" {
		allowedOrigins = []string{s.Config.AccessControlAllowOrigin}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	store := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{Rate: time.Minute, Limit: 5})
	limitRate := limitRateForPasswordReset(store)

	apirouter := router.Group("/api/v1")
	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", limitRate, s.handleLogin())
	apirouter.GET("/google/login", s.HandleGoogleLogin())
	apirouter.GET("/auth/google/callback", s.HandleGoogleCallback())
	apirouter.POST("/password/forgot", limitRate, s.HandleForgotPassword())
	apirouter.POST("/password/reset/:token", s.ResetPassword())

	apirouter.GET("/gigs", s.handleGetAllGigs())
	apirouter.GET("/gigs/search", s.handleSearchGigs())
	apirouter.GET("/gigs/:id", s.handleGetGig())
	apirouter.GET("/suppliers", s.handleGetAllSuppliers())
	apirouter.GET("/suppliers/search", s.handleSearchSuppliers())
	apirouter.GET("/suppliers/:id", s.handleGetSupplier())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.PUT("/me", s.handleEditUserProfile())
	authorized.POST("/notifications/add-token", s.handleRegisterDeviceToken())
	authorized.PUT("/upload", s.handleUploadImage())

	authorized.POST("/gigs", s.handleCreateGig())
	authorized.GET("/gigs/mine", s.handleGetMyGigs())
	authorized.PUT("/gigs/:id", s.handleUpdateGig())
	authorized.DELETE("/gigs/:id", s.handleDeleteGig())

	authorized.POST("/suppliers", s.handleCreateSupplier())
	authorized.GET("/suppliers/mine", s.handleGetMySuppliers())
	authorized.PUT("/suppliers/:id", s.handleUpdateSupplier())
	authorized.DELETE("/suppliers/:id", s.handleDeleteSupplier())

	authorized.POST("/orders", s.handleCreateOrder())
	authorized.GET("/orders/client", s.handleGetClientOrders())
	authorized.GET("/orders/professional", s.handleGetProfessionalOrders())
	authorized.GET("/orders/:id", s.handleGetOrder())
	authorized.PATCH("/orders/:id/status", s.handleUpdateOrderStatus())
	authorized.PUT("/orders/:id/cancel", s.handleCancelOrder())
	authorized.POST("/orders/:id/feedback", s.handleAddOrderFeedback())
	authorized.POST("/orders/:id/initial-review", s.handleReviewOrder())

	authorized.POST("/appointments", s.handleBookAppointment())
	authorized.GET("/appointments/user", s.handleGetUserAppointments())
	authorized.GET("/appointments/:id", s.handleGetAppointment())
	authorized.PATCH("/appointments/status", s.handleUpdateAppointmentStatus())
	authorized.PATCH("/appointments/:id/cancel", s.handleCancelAppointment())
	authorized.PATCH("/appointments/meeting", s.handleProvideMeetingID())

	authorized.GET("/conversations", s.handleListConversations())
	authorized.POST("/conversations", s.handleCreateConversation())
	authorized.GET("/conversations/:id", s.handleGetConversation())
	authorized.PATCH("/conversations/:id", s.handleUpdateConversation())

	// Register the fixed path before the parameterized one.
	authorized.GET("/messages/unread-count", s.handleUnreadCount())
	authorized.GET("/messages/:conversationId", s.handleListMessages())
	authorized.POST("/messages", s.handleSendMessage())
	authorized.PATCH("/messages/:messageId/read", s.handleMarkMessageRead())
	authorized.DELETE("/messages/:messageId", s.handleDeleteMessage())

	apirouter.GET("/ws", s.handleWebSocket())
}
