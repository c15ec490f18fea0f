package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dresslink/dresslink/config"
	"github.com/dresslink/dresslink/db"
	"github.com/dresslink/dresslink/mailingservices"
	"github.com/dresslink/dresslink/services"
)

type Server struct {
	Config             *config.Config
	Mail               *mailingservices.Mailgun
	AuthRepository     db.AuthRepository
	AuthService        services.AuthService
	GigService         services.GigService
	SupplierService    services.SupplierService
	OrderService       services.OrderService
	AppointmentService services.AppointmentService
	ChatService        services.ChatService
	MediaService       services.MediaService
	Relay              *services.Relay
}

// Start runs the HTTP server until an interrupt arrives, then drains
// in-flight requests before exiting.
func (s *Server) Start() {
	port := s.Config.Port
	if port == 0 {
		port = 8080
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.setupRouter(),
	}

	go func() {
		log.Printf("Server started on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
