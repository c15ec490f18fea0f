package services

import (
	"context"
	"fmt"
	"log"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/messaging"
	"google.golang.org/api/option"

	"github.com/dresslink/dresslink/db"
	"github.com/dresslink/dresslink/models"
)

// PushService sends a best-effort notification for a freshly persisted
// message. Failures are logged and swallowed: the push is a nudge, not a
// delivery mechanism.
type PushService interface {
	NotifyNewMessage(receiverID uint, message *models.Message) error
}

type fcmPushService struct {
	client   *messaging.Client
	authRepo db.AuthRepository
}

// NewFCMPushService initializes the Firebase messaging client from a
// credentials file. Returns an error when the credentials are absent so
// the caller can run without push.
func NewFCMPushService(credentialsFile string, authRepo db.AuthRepository) (PushService, error) {
	app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("error initializing Firebase app: %w", err)
	}
	client, err := app.Messaging(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting Messaging client: %w", err)
	}
	return &fcmPushService{client: client, authRepo: authRepo}, nil
}

func (s *fcmPushService) NotifyNewMessage(receiverID uint, message *models.Message) error {
	tokens, err := s.authRepo.FindDeviceTokens(receiverID)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("New message from %s %s", message.Sender.FirstName, message.Sender.LastName)
	for _, token := range tokens {
		_, err := s.client.Send(context.Background(), &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  message.Content,
			},
		})
		if err != nil {
			log.Printf("push to user %d failed: %v", receiverID, err)
		}
	}
	return nil
}
