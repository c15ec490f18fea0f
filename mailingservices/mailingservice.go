package mailingservices

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps the outbound mail client.
type Mailgun struct {
	Client *mailgun.MailgunImpl
}

func (m *Mailgun) Init() {
	domain := os.Getenv("MG_DOMAIN")
	apiKey := os.Getenv("MG_PUBLIC_API_KEY")
	m.Client = mailgun.NewMailgun(domain, apiKey)
}

// SendResetPassword mails the password reset link to the user.
func (m *Mailgun) SendResetPassword(userEmail, link string) (string, error) {
	sender := os.Getenv("EMAIL_FROM")
	subject := "Reset your DressLink password"
	body := fmt.Sprintf("Follow this link to reset your password: %s\n\nThe link expires in 30 minutes. If you did not request a reset, ignore this mail.", link)

	message := m.Client.NewMessage(sender, subject, body, userEmail)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, id, err := m.Client.Send(ctx, message)
	if err != nil {
		return "", err
	}
	return id, nil
}
