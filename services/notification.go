package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"fintrack-backend/config"
	"fintrack-backend/metrics"
	"fintrack-backend/models"
	"fintrack-backend/store"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"google.golang.org/api/option"
)

// DispatchResult reports how many participants were reached. Skipped
// covers unresolvable participants and delivery failures alike.
type DispatchResult struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
}

// NotificationDispatcher delivers best-effort notifications. Failures
// never propagate to the operation that triggered the dispatch.
type NotificationDispatcher interface {
	DispatchDebtCreated(ctx context.Context, expense *models.SplitExpense, debts []models.Debt) DispatchResult
}

// NotificationService sends email via SendGrid and push via FCM.
// Either channel degrades to a no-op when unconfigured.
type NotificationService struct {
	participants store.ParticipantStore
	messaging    *messaging.Client
}

func NewNotificationService(ctx context.Context, participants store.ParticipantStore) *NotificationService {
	ns := &NotificationService{participants: participants}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(config.AppConfig.FirebaseCredPath))
	if err != nil {
		slog.Warn("firebase not configured, push notifications disabled", "error", err)
		return ns
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		slog.Warn("firebase messaging unavailable, push notifications disabled", "error", err)
		return ns
	}
	ns.messaging = client
	return ns
}

// DispatchDebtCreated notifies each debtor of a freshly created split
// debt. One participant reached on any channel counts as sent.
func (ns *NotificationService) DispatchDebtCreated(ctx context.Context, expense *models.SplitExpense, debts []models.Debt) DispatchResult {
	var result DispatchResult

	for _, debt := range debts {
		p, err := ns.participants.Get(ctx, debt.Debtor)
		if err != nil {
			slog.Debug("participant not in directory, skipping notification", "participant", debt.Debtor)
			result.Skipped++
			continue
		}

		title := "New shared expense"
		body := fmt.Sprintf("You owe %.2f for \"%s\"", debt.Amount, expense.Description)

		delivered := false
		if ns.sendPush(ctx, p.FCMToken, title, body, map[string]string{
			"type":       "debt_created",
			"debt_id":    debt.ID.String(),
			"expense_id": expense.ID.String(),
		}) {
			delivered = true
		}
		if ns.sendEmail(p, fmt.Sprintf("%s: %s", config.AppConfig.AppName, expense.Description), debtEmailHTML(p.Name, expense.Description, debt.Amount)) {
			delivered = true
		}

		if delivered {
			result.Sent++
			metrics.NotificationsSent.Inc()
		} else {
			result.Skipped++
		}
	}

	return result
}

func (ns *NotificationService) sendPush(ctx context.Context, token, title, body string, data map[string]string) bool {
	if ns.messaging == nil || token == "" {
		return false
	}

	_, err := ns.messaging.Send(ctx, &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	if err != nil {
		slog.Warn("push notification failed", "error", err)
		return false
	}
	return true
}

func (ns *NotificationService) sendEmail(p *models.Participant, subject, htmlBody string) bool {
	if config.AppConfig.SendGridAPIKey == "" || p.Email == "" {
		return false
	}

	from := mail.NewEmail(config.AppConfig.AppName, config.AppConfig.SendGridFrom)
	to := mail.NewEmail(p.Name, p.Email)
	plain := strings.TrimSpace(subject)
	message := mail.NewSingleEmail(from, subject, to, plain, htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		slog.Warn("email notification failed", "to", p.Email, "error", err)
		return false
	}
	if resp.StatusCode >= 300 {
		slog.Warn("sendgrid rejected email", "to", p.Email, "status", resp.StatusCode)
		return false
	}
	return true
}

func debtEmailHTML(name, description string, amount float64) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">New Shared Expense</h2>
		<p>Hi <strong>%s</strong>,</p>
		<p>A new expense <strong>"%s"</strong> was added and your share is <strong>%.2f</strong>.</p>
		<p>Open the app to see the details or settle up.</p>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, name, description, amount, config.AppConfig.AppName)
}
