package mail

import (
	"fmt"
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"
)

// Mailer envía correos por SMTP con la configuración tomada del entorno.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailerFromEnv arma el mailer a partir de SMTP_HOST, SMTP_PORT,
// SMTP_USER, SMTP_PASSWORD y SMTP_FROM. Devuelve nil cuando falta el host:
// sin servidor configurado la aplicación funciona igual, solo sin correos.
func NewMailerFromEnv() *Mailer {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}

	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	user := os.Getenv("SMTP_USER")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}

	return &Mailer{
		dialer: gomail.NewDialer(host, port, user, os.Getenv("SMTP_PASSWORD")),
		from:   from,
	}
}

// Send envía un correo de texto plano.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("error al enviar el correo a %s: %v", to, err)
	}
	return nil
}
