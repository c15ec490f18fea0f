package main

import (
	"log"

	"github.com/dresslink/dresslink/config"
	"github.com/dresslink/dresslink/db"
	"github.com/dresslink/dresslink/mailingservices"
	"github.com/dresslink/dresslink/server"
	"github.com/dresslink/dresslink/services"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	mailgunClient := &mailingservices.Mailgun{}
	mailgunClient.Init()

	gormDB := db.GetDB(conf)
	if err := db.SeedRoles(gormDB.DB); err != nil {
		log.Fatalf("error seeding roles: %v", err)
	}

	authRepo := db.NewAuthRepo(gormDB)
	gigRepo := db.NewGigRepo(gormDB)
	supplierRepo := db.NewSupplierRepo(gormDB)
	orderRepo := db.NewOrderRepo(gormDB)
	appointmentRepo := db.NewAppointmentRepo(gormDB)
	conversationRepo := db.NewConversationRepo(gormDB)
	messageRepo := db.NewMessageRepo(gormDB)

	relay := services.NewRelay()

	var push services.PushService
	if conf.GoogleApplicationCredentials != "" {
		push, err = services.NewFCMPushService(conf.GoogleApplicationCredentials, authRepo)
		if err != nil {
			log.Printf("push notifications disabled: %v", err)
			push = nil
		}
	}

	authService := services.NewAuthService(authRepo, conf)
	gigService := services.NewGigService(gigRepo, conf)
	supplierService := services.NewSupplierService(supplierRepo, conf)
	orderService := services.NewOrderService(orderRepo, gigRepo, conf)
	appointmentService := services.NewAppointmentService(appointmentRepo, gigRepo, conf)
	chatService := services.NewChatService(conversationRepo, messageRepo, authRepo, relay, push, conf)
	mediaService := services.NewMediaService(conf)

	s := &server.Server{
		Mail:               mailgunClient,
		Config:             conf,
		AuthRepository:     authRepo,
		AuthService:        authService,
		GigService:         gigService,
		SupplierService:    supplierService,
		OrderService:       orderService,
		AppointmentService: appointmentService,
		ChatService:        chatService,
		MediaService:       mediaService,
		Relay:              relay,
	}
	s.Start()
}
