package utils

import (
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/calvarezi/midinero/internal/database"
	"github.com/calvarezi/midinero/internal/services"
	"github.com/calvarezi/midinero/models"
)

// Generadores de datos de prueba para desarrollo local. Cada generador usa
// las mismas funciones de inserción que la aplicación, así los datos pasan
// por las mismas validaciones.

func GenerateTestUsers(db database.Executor, numUsers int) []int {
	ids := make([]int, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user := &models.User{
			Email:    gofakeit.Email(),
			Password: gofakeit.Password(true, true, true, false, false, 8),
			Name:     gofakeit.Name(),
		}
		if err := database.RegisterUser(db, user); err != nil {
			log.Fatalf("error al generar usuario de prueba: %v", err)
		}
		ids = append(ids, user.ID)
	}
	return ids
}

func GenerateTestCategories(db database.Executor, userIDs []int, numCategories int) []int {
	ids := make([]int, 0, numCategories)
	for i := 0; i < numCategories; i++ {
		category := &models.Category{
			UserID: userIDs[rand.Intn(len(userIDs))],
			Name:   gofakeit.Word(),
			Type:   randomCategoryType(),
		}
		if err := database.CreateCategory(db, category); err != nil {
			log.Fatalf("error al generar categoría de prueba: %v", err)
		}
		ids = append(ids, category.ID)
	}
	return ids
}

func randomCategoryType() string {
	if rand.Intn(2) == 0 {
		return models.CategoryExpense
	}
	return models.CategoryIncome
}

func GenerateTestTransactions(db database.Executor, numTransactions int, categoryIDs []int) {
	for i := 0; i < numTransactions; i++ {
		categoryID := categoryIDs[rand.Intn(len(categoryIDs))]
		category, err := database.GetCategoryByID(db, categoryID)
		if err != nil {
			log.Fatalf("error al leer la categoría %d: %v", categoryID, err)
		}

		transaction := &models.Transaction{
			UserID:      category.UserID,
			CategoryID:  category.ID,
			Amount:      gofakeit.Price(1, 1000),
			Description: gofakeit.Sentence(5),
			Date:        time.Now().AddDate(0, 0, -rand.Intn(30)),
		}
		if err := database.CreateTransaction(db, transaction); err != nil {
			log.Fatalf("error al generar transacción de prueba: %v", err)
		}
	}
}

func GenerateTestBudgets(db database.Executor, numBudgets int, categoryIDs []int) {
	month := services.MonthOf(time.Now())
	for i := 0; i < numBudgets; i++ {
		categoryID := categoryIDs[rand.Intn(len(categoryIDs))]
		category, err := database.GetCategoryByID(db, categoryID)
		if err != nil {
			log.Fatalf("error al leer la categoría %d: %v", categoryID, err)
		}
		if !category.IsExpense() {
			continue
		}

		budget := &models.Budget{
			UserID:             category.UserID,
			CategoryID:         category.ID,
			Month:              month,
			LimitAmount:        gofakeit.Price(100, 2000),
			NotifyWhenExceeded: true,
		}
		// Las colisiones por la restricción de unicidad se ignoran.
		if err := database.CreateBudget(db, budget); err != nil {
			log.Printf("presupuesto de prueba omitido: %v", err)
		}
	}
}

func GenerateTestGoals(db database.Executor, userIDs []int, numGoals int) {
	month := services.MonthOf(time.Now())
	for i := 0; i < numGoals; i++ {
		goal := &models.FinancialGoal{
			UserID:       userIDs[rand.Intn(len(userIDs))],
			Name:         gofakeit.BuzzWord(),
			Month:        month,
			TargetAmount: gofakeit.Price(500, 5000),
		}
		if err := database.CreateGoal(db, goal); err != nil {
			log.Printf("meta de prueba omitida: %v", err)
		}
	}
}
