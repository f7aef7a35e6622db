package main

import (
	"log"
	"os"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/internal/mail"
	"github.com/calvarezi/midinero/internal/routes"
	"github.com/calvarezi/midinero/internal/services"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// ScheduleBudgetJobs programa las tareas recurrentes: la verificación diaria
// de presupuestos del mes y el recordatorio mensual. Ambas son idempotentes
// gracias a la deduplicación de alertas.
func ScheduleBudgetJobs(pool *pgxpool.Pool, notifier *services.Notifier) {
	c := cron.New()

	_, err := c.AddFunc("@daily", func() {
		if err := services.RecheckMonthlyBudgets(pool, notifier); err != nil {
			log.Printf("error en la verificación diaria de presupuestos: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("error al programar la verificación diaria: %v", err)
	}

	_, err = c.AddFunc("@monthly", func() {
		if err := services.SendMonthlyBudgetReminders(pool, notifier); err != nil {
			log.Printf("error al enviar los recordatorios mensuales: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("error al programar el recordatorio mensual: %v", err)
	}

	c.Start()
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("sin archivo .env, se usa el entorno del proceso: %v", err)
	}

	if err := database.RunMigrations(database.ConnString()); err != nil {
		log.Fatalf("error al aplicar las migraciones: %v", err)
	}

	pool, err := database.ConnectDB()
	if err != nil {
		log.Fatalf("error al conectar con la base de datos: %v", err)
	}
	defer pool.Close()

	mailer := mail.NewMailerFromEnv()
	if mailer == nil {
		log.Println("SMTP sin configurar, las notificaciones por correo quedan desactivadas")
	}
	notifier := services.NewNotifier(mailer)

	ScheduleBudgetJobs(pool, notifier)

	r := routes.SetupRouter(pool, notifier)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("error al iniciar el servidor: %v", err)
	}
}
