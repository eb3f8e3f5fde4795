package utils

import (
	"context"
	"fmt"
	"html"

	"tincadia/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional email
type Mailer interface {
	Send(ctx context.Context, to, toName, subject, htmlBody string) error
}

type SendgridMailer struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func NewSendgridMailer(apiKey, from, fromName string) *SendgridMailer {
	return &SendgridMailer{client: sendgrid.NewSendClient(apiKey), from: from, fromName: fromName}
}

func (m *SendgridMailer) Send(ctx context.Context, to, toName, subject, htmlBody string) error {
	message := mail.NewSingleEmail(
		mail.NewEmail(m.fromName, m.from),
		subject,
		mail.NewEmail(toName, to),
		"",
		htmlBody,
	)
	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// LogMailer only logs; used when no SendGrid key is configured
type LogMailer struct {
	Log *logger.Logger
}

func (m LogMailer) Send(_ context.Context, to, _ string, subject, _ string) error {
	m.Log.Info("email not sent, no provider configured", "to", to, "subject", subject)
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F4F7FB; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; }
			.header { background-color: #1E3A8A; padding: 28px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 22px; }
			.content { padding: 36px 30px; color: #1F2937; line-height: 1.6; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #F59E0B; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; }
			.footer { background-color: #F4F7FB; padding: 18px; text-align: center; font-size: 12px; color: #6B7280; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>TINCADIA</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">&copy; Tincadia. Inclusión a través de la lengua de señas.</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// PurchaseConfirmationEmail renders the confirmation sent once a payment is verified as approved
func PurchaseConfirmationEmail(name, productLabel, reference, frontendURL string) (subject, body string) {
	if name == "" {
		name = "Hola"
	}
	subject = "Confirmación de tu compra en Tincadia"
	content := fmt.Sprintf(`
		<p>%s, tu pago fue aprobado.</p>
		<p>Ya tienes acceso a <strong>%s</strong>.</p>
		<p>Referencia: <code>%s</code></p>
		<a class="btn" href="%s">Ir a mis cursos</a>`,
		html.EscapeString(name), html.EscapeString(productLabel), html.EscapeString(reference), html.EscapeString(frontendURL))
	return subject, getEmailTemplate("¡Pago aprobado!", content)
}
