package services

import (
	"math"
	"sort"
	"time"

	"github.com/calvarezi/midinero/internal/database"
	"github.com/shopspring/decimal"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// Overview es el resumen financiero general del usuario.
type Overview struct {
	TotalIncome      float64        `json:"total_income"`
	TotalExpense     float64        `json:"total_expense"`
	Balance          float64        `json:"balance"`
	SavingsRate      float64        `json:"savings_rate"`
	AvgIncome        float64        `json:"avg_income"`
	AvgExpense       float64        `json:"avg_expense"`
	TransactionCount int            `json:"transaction_count"`
	IncomeCount      int            `json:"income_count"`
	ExpenseCount     int            `json:"expense_count"`
	MaxExpense       float64        `json:"max_expense"`
	MinExpense       float64        `json:"min_expense"`
	Period           AnalysisPeriod `json:"period"`
}

type AnalysisPeriod struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// GetOverview calcula el resumen general, opcionalmente acotado a un rango de
// fechas. La tasa de ahorro es balance/ingresos; 0 cuando no hay ingresos.
func GetOverview(db database.Executor, userID int, startDate, endDate *time.Time) (*Overview, error) {
	row, err := database.GetOverviewRow(db, userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	income := row.TotalIncome
	expense := row.TotalExpense
	balance := income.Sub(expense)

	savingsRate := 0.0
	if income.GreaterThan(decimal.Zero) {
		savingsRate = round2(toFloat(balance.Div(income).Mul(decimal.NewFromInt(100))))
	}

	period := AnalysisPeriod{}
	if startDate != nil {
		s := startDate.Format("2006-01-02")
		period.StartDate = &s
	}
	if endDate != nil {
		e := endDate.Format("2006-01-02")
		period.EndDate = &e
	}

	return &Overview{
		TotalIncome:      toFloat(income),
		TotalExpense:     toFloat(expense),
		Balance:          toFloat(balance),
		SavingsRate:      savingsRate,
		AvgIncome:        toFloat(row.AvgIncome),
		AvgExpense:       toFloat(row.AvgExpense),
		TransactionCount: row.TransactionCount,
		IncomeCount:      row.IncomeCount,
		ExpenseCount:     row.ExpenseCount,
		MaxExpense:       toFloat(row.MaxExpense),
		MinExpense:       toFloat(row.MinExpense),
		Period:           period,
	}, nil
}

// MonthlyTrend es un punto de la serie mensual de ingresos y gastos.
type MonthlyTrend struct {
	Month            string  `json:"month"`
	MonthName        string  `json:"month_name"`
	TotalIncome      float64 `json:"total_income"`
	TotalExpense     float64 `json:"total_expense"`
	Balance          float64 `json:"balance"`
	TransactionCount int     `json:"transaction_count"`
}

// GetMonthlyTrends devuelve la serie mensual de los últimos months meses.
func GetMonthlyTrends(db database.Executor, userID, months int) ([]MonthlyTrend, error) {
	since := time.Now().AddDate(0, 0, -months*30)
	rows, err := database.GetMonthlyTrendRows(db, userID, since)
	if err != nil {
		return nil, err
	}

	trends := make([]MonthlyTrend, 0, len(rows))
	for _, r := range rows {
		balance := r.TotalIncome.Sub(r.TotalExpense)
		trends = append(trends, MonthlyTrend{
			Month:            r.Month.Format("2006-01"),
			MonthName:        r.Month.Format("January 2006"),
			TotalIncome:      toFloat(r.TotalIncome),
			TotalExpense:     toFloat(r.TotalExpense),
			Balance:          toFloat(balance),
			TransactionCount: r.TransactionCount,
		})
	}
	return trends, nil
}

// CategoryBreakdown es la participación de una categoría sobre el total.
type CategoryBreakdown struct {
	CategoryID       int     `json:"category_id"`
	CategoryName     string  `json:"category_name"`
	CategoryType     string  `json:"category_type"`
	Total            float64 `json:"total"`
	Percentage       float64 `json:"percentage"`
	TransactionCount int     `json:"transaction_count"`
	Average          float64 `json:"average"`
}

// GetCategoryBreakdown agrupa las transacciones por categoría y calcula el
// porcentaje de cada una sobre el total del conjunto filtrado.
func GetCategoryBreakdown(db database.Executor, userID int, categoryType string, startDate, endDate *time.Time) ([]CategoryBreakdown, error) {
	rows, err := database.GetCategoryBreakdownRows(db, userID, categoryType, startDate, endDate)
	if err != nil {
		return nil, err
	}

	grandTotal := decimal.Zero
	for _, r := range rows {
		grandTotal = grandTotal.Add(r.Total)
	}

	breakdown := make([]CategoryBreakdown, 0, len(rows))
	for _, r := range rows {
		percentage := 0.0
		if grandTotal.GreaterThan(decimal.Zero) {
			percentage = round2(toFloat(r.Total.Div(grandTotal).Mul(decimal.NewFromInt(100))))
		}
		breakdown = append(breakdown, CategoryBreakdown{
			CategoryID:       r.CategoryID,
			CategoryName:     r.CategoryName,
			CategoryType:     r.CategoryType,
			Total:            toFloat(r.Total),
			Percentage:       percentage,
			TransactionCount: r.Count,
			Average:          toFloat(r.Average),
		})
	}
	return breakdown, nil
}

// DailyPattern es el gasto agregado de un día de la semana.
type DailyPattern struct {
	Day     string  `json:"day"`
	Total   float64 `json:"total"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
}

// SpendingPatterns resume los hábitos de gasto de un periodo.
type SpendingPatterns struct {
	DailyPattern         []DailyPattern `json:"daily_pattern"`
	MostFrequentCategory *string        `json:"most_frequent_category"`
	MostFrequentCount    int            `json:"most_frequent_count"`
	AverageDailySpending float64        `json:"average_daily_spending"`
	AnalysisPeriodDays   int            `json:"analysis_period_days"`
}

// GetSpendingPatterns analiza los gastos de los últimos days días: reparto
// por día de la semana, categoría más frecuente y gasto diario promedio.
func GetSpendingPatterns(db database.Executor, userID, days int) (*SpendingPatterns, error) {
	since := time.Now().AddDate(0, 0, -days)

	weekdayRows, err := database.GetWeekdaySpendingRows(db, userID, since)
	if err != nil {
		return nil, err
	}

	daily := make([]DailyPattern, 0, len(weekdayRows))
	totalExpenses := decimal.Zero
	for _, r := range weekdayRows {
		avg := 0.0
		if r.Count > 0 {
			avg = toFloat(r.Total.Div(decimal.NewFromInt(int64(r.Count))))
		}
		daily = append(daily, DailyPattern{
			Day:     time.Weekday(r.Weekday).String(),
			Total:   toFloat(r.Total),
			Count:   r.Count,
			Average: avg,
		})
		totalExpenses = totalExpenses.Add(r.Total)
	}

	topName, topCount, err := database.GetTopExpenseCategory(db, userID, since)
	if err != nil {
		return nil, err
	}

	patterns := &SpendingPatterns{
		DailyPattern:       daily,
		MostFrequentCount:  topCount,
		AnalysisPeriodDays: days,
	}
	if topName != "" {
		patterns.MostFrequentCategory = &topName
	}
	if days > 0 {
		patterns.AverageDailySpending = round2(toFloat(totalExpenses.Div(decimal.NewFromInt(int64(days)))))
	}
	return patterns, nil
}

// CategoryPrediction es el gasto previsto para una categoría el mes próximo.
type CategoryPrediction struct {
	CategoryID      int     `json:"category_id"`
	CategoryName    string  `json:"category_name"`
	PredictedAmount float64 `json:"predicted_amount"`
}

// ExpensePrediction es la proyección de gastos del próximo mes.
type ExpensePrediction struct {
	PredictedTotal      float64              `json:"predicted_total"`
	CategoryPredictions []CategoryPrediction `json:"category_predictions"`
	Trend               string               `json:"trend"`
	TrendPercentage     float64              `json:"trend_percentage"`
	Confidence          string               `json:"confidence"`
	BasedOnMonths       int                  `json:"based_on_months"`
}

// PredictMonthlyExpenses proyecta el gasto del próximo mes como el promedio
// mensual histórico por categoría, y clasifica la tendencia comparando el
// último trimestre contra el anterior. Variaciones dentro del ±5% se
// consideran estables.
func PredictMonthlyExpenses(db database.Executor, userID, monthsToAnalyze int) (*ExpensePrediction, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -monthsToAnalyze*30)

	rows, err := database.GetMonthlyCategoryExpenseRows(db, userID, since)
	if err != nil {
		return nil, err
	}

	type catTotals struct {
		name   string
		totals []decimal.Decimal
	}
	perCategory := map[int]*catTotals{}
	var order []int
	for _, r := range rows {
		c, ok := perCategory[r.CategoryID]
		if !ok {
			c = &catTotals{name: r.CategoryName}
			perCategory[r.CategoryID] = c
			order = append(order, r.CategoryID)
		}
		c.totals = append(c.totals, r.Total)
	}

	predictions := make([]CategoryPrediction, 0, len(order))
	totalPredicted := decimal.Zero
	for _, id := range order {
		c := perCategory[id]
		sum := decimal.Zero
		for _, t := range c.totals {
			sum = sum.Add(t)
		}
		avg := sum.Div(decimal.NewFromInt(int64(len(c.totals))))
		totalPredicted = totalPredicted.Add(avg)
		predictions = append(predictions, CategoryPrediction{
			CategoryID:      id,
			CategoryName:    c.name,
			PredictedAmount: toFloat(avg),
		})
	}
	sort.Slice(predictions, func(i, j int) bool {
		return predictions[i].PredictedAmount > predictions[j].PredictedAmount
	})

	recent, err := database.SumExpensesBetween(db, userID, now.AddDate(0, 0, -90), now)
	if err != nil {
		return nil, err
	}
	older, err := database.SumExpensesBetween(db, userID, now.AddDate(0, 0, -180), now.AddDate(0, 0, -90))
	if err != nil {
		return nil, err
	}

	trend := "stable"
	trendPercentage := 0.0
	if older.GreaterThan(decimal.Zero) {
		trendPercentage = toFloat(recent.Sub(older).Div(older).Mul(decimal.NewFromInt(100)))
		if trendPercentage > 5 {
			trend = "increasing"
		} else if trendPercentage < -5 {
			trend = "decreasing"
		}
	}

	return &ExpensePrediction{
		PredictedTotal:      toFloat(totalPredicted),
		CategoryPredictions: predictions,
		Trend:               trend,
		TrendPercentage:     round2(trendPercentage),
		Confidence:          "medium",
		BasedOnMonths:       monthsToAnalyze,
	}, nil
}

// BudgetStatus es la salud de un presupuesto individual.
type BudgetStatus struct {
	CategoryName string  `json:"category_name"`
	Limit        float64 `json:"limit"`
	Spent        float64 `json:"spent"`
	Remaining    float64 `json:"remaining"`
	Percentage   float64 `json:"percentage"`
	Status       string  `json:"status"`
}

// BudgetHealth es el estado agregado de los presupuestos de un mes.
type BudgetHealth struct {
	Month             string         `json:"month"`
	OverallStatus     string         `json:"overall_status"`
	OverallPercentage float64        `json:"overall_percentage"`
	TotalBudget       float64        `json:"total_budget"`
	TotalSpent        float64        `json:"total_spent"`
	TotalRemaining    float64        `json:"total_remaining"`
	Budgets           []BudgetStatus `json:"budgets"`
	HasBudgets        bool           `json:"has_budgets"`
}

// GetBudgetHealth evalúa los presupuestos del mes: cada uno se clasifica como
// healthy, warning (>= 80%) o exceeded (>= 100%), y el conjunto como healthy,
// warning o critical según el porcentaje global.
func GetBudgetHealth(db database.Executor, userID int, month time.Time) (*BudgetHealth, error) {
	month = MonthOf(month)

	budgets, err := database.GetBudgetsByMonth(db, userID, month)
	if err != nil {
		return nil, err
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	totalBudget := decimal.Zero
	totalSpent := decimal.Zero

	for _, b := range budgets {
		spent, err := database.SumCategoryExpenses(db, b.UserID, b.CategoryID, month)
		if err != nil {
			return nil, err
		}
		limit := decimal.NewFromFloat(b.LimitAmount)

		percentage := 0.0
		if limit.GreaterThan(decimal.Zero) {
			percentage = round2(toFloat(spent.Div(limit).Mul(decimal.NewFromInt(100))))
		}

		status := "healthy"
		if percentage >= 100 {
			status = "exceeded"
		} else if percentage >= 80 {
			status = "warning"
		}

		statuses = append(statuses, BudgetStatus{
			CategoryName: b.CategoryName,
			Limit:        b.LimitAmount,
			Spent:        toFloat(spent),
			Remaining:    toFloat(limit.Sub(spent)),
			Percentage:   percentage,
			Status:       status,
		})

		totalBudget = totalBudget.Add(limit)
		totalSpent = totalSpent.Add(spent)
	}

	overallStatus := "healthy"
	overallPercentage := 0.0
	if totalBudget.GreaterThan(decimal.Zero) {
		overallPercentage = round2(toFloat(totalSpent.Div(totalBudget).Mul(decimal.NewFromInt(100))))
		if overallPercentage >= 100 {
			overallStatus = "critical"
		} else if overallPercentage >= 80 {
			overallStatus = "warning"
		}
	}

	return &BudgetHealth{
		Month:             month.Format("2006-01"),
		OverallStatus:     overallStatus,
		OverallPercentage: overallPercentage,
		TotalBudget:       toFloat(totalBudget),
		TotalSpent:        toFloat(totalSpent),
		TotalRemaining:    toFloat(totalBudget.Sub(totalSpent)),
		Budgets:           statuses,
		HasBudgets:        len(statuses) > 0,
	}, nil
}
