package services

import (
	"log"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/internal/mail"
	"github.com/calvarezi/midinero/models"
)

const mailSubjectPrefix = "[MiDinero] "

// Notifier persiste notificaciones y despacha el correo asociado cuando
// corresponde. La deduplicación NO es responsabilidad suya: quien llama
// decide si la notificación debe emitirse.
type Notifier struct {
	mailer *mail.Mailer
}

// NewNotifier crea el notificador. El mailer puede ser nil: en ese caso las
// notificaciones se persisten igual y simplemente no se envían correos.
func NewNotifier(mailer *mail.Mailer) *Notifier {
	return &Notifier{mailer: mailer}
}

// Create persiste la notificación sin condiciones y, si sendEmail es true y
// el usuario tiene dirección de correo, intenta el envío. El fallo del correo
// se registra y se traga: la persistencia nunca depende del transporte.
func (n *Notifier) Create(db database.Executor, notification *models.Notification, sendEmail bool) error {
	if notification.Priority == "" {
		notification.Priority = models.PriorityMedium
	}
	if notification.Type == "" {
		notification.Type = models.NotificationSystem
	}

	if err := database.CreateNotification(db, notification); err != nil {
		return err
	}

	if sendEmail {
		n.DispatchEmail(db, notification)
	}
	return nil
}

// DispatchEmail envía el correo de una notificación ya persistida. Existe
// aparte de Create para los flujos transaccionales: ahí la notificación se
// persiste dentro de la transacción y el correo se despacha recién después
// del commit.
func (n *Notifier) DispatchEmail(db database.Executor, notification *models.Notification) {
	if n.mailer == nil {
		return
	}

	email, err := database.GetUserEmail(db, notification.UserID)
	if err != nil {
		log.Printf("no se pudo obtener el correo del usuario %d: %v", notification.UserID, err)
		return
	}
	// Sin dirección de correo no hay envío; no es un error.
	if email == "" {
		return
	}

	if err := n.mailer.Send(email, mailSubjectPrefix+notification.Title, notification.Message); err != nil {
		log.Printf("error al enviar el correo de la notificación %d: %v", notification.ID, err)
	}
}
