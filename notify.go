package main

import (
	"context"
	"fmt"
	"os"

	brevo "github.com/getbrevo/brevo-go/lib"
)

// Notifier sends a heads-up email before the watchdog reboots the
// modem, giving whoever is on the LAN a chance to kill the run.
type Notifier struct {
	client *brevo.APIClient
	from   string
	to     string
}

// notifierFromEnv returns nil unless BREVO_API_KEY, NOTIFY_FROM and
// NOTIFY_TO are all set; notification is strictly opt-in.
func notifierFromEnv() *Notifier {
	apiKey := os.Getenv("BREVO_API_KEY")
	from := os.Getenv("NOTIFY_FROM")
	to := os.Getenv("NOTIFY_TO")
	if apiKey == "" || from == "" || to == "" {
		return nil
	}

	cfg := brevo.NewConfiguration()
	cfg.AddDefaultHeader("api-key", apiKey)
	return newNotifier(cfg, from, to)
}

// newNotifier takes the API configuration directly so tests can point
// BasePath at a local server.
func newNotifier(cfg *brevo.Configuration, from, to string) *Notifier {
	return &Notifier{
		client: brevo.NewAPIClient(cfg),
		from:   from,
		to:     to,
	}
}

func (n *Notifier) Send(ctx context.Context, t ErrorTally, cfg Config) error {
	subject, body := rebootNotice(t, cfg)
	email := brevo.SendSmtpEmail{
		Sender: &brevo.SendSmtpEmailSender{
			Name:  "modem-watchdog",
			Email: n.from,
		},
		To: []brevo.SendSmtpEmailTo{
			{Email: n.to},
		},
		Subject:     subject,
		TextContent: body,
	}

	_, _, err := n.client.TransactionalEmailsApi.SendTransacEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("sending notification via Brevo: %v", err)
	}
	return nil
}

func rebootNotice(t ErrorTally, cfg Config) (subject, body string) {
	action := "Rebooting"
	if cfg.RestoreFactoryDefaults {
		action = "Rebooting and resetting"
	}
	suffix := ""
	if cfg.DryRun {
		suffix = " (dry run, no action will be taken)"
	}
	subject = fmt.Sprintf("%s modem at %s", action, cfg.ModemAddress)
	body = fmt.Sprintf("%s modem shortly: found %d correctable, %d uncorrectable errors%s.",
		action, t.Correctable, t.Uncorrectable, suffix)
	return subject, body
}
