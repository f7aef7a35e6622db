package models_test

import (
	"testing"

	"github.com/calvarezi/midinero/models"
	"github.com/stretchr/testify/assert"
)

func TestCanPurge(t *testing.T) {
	casos := []struct {
		nombre    string
		leida     bool
		archivada bool
		purgable  bool
	}{
		{"sin leer ni archivar", false, false, false},
		{"solo leída", true, false, false},
		{"solo archivada", false, true, false},
		{"leída y archivada", true, true, true},
	}

	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			n := &models.Notification{IsRead: c.leida, IsArchived: c.archivada}
			assert.Equal(t, c.purgable, n.CanPurge())
		})
	}
}

func TestValidNotificationType(t *testing.T) {
	validos := []string{
		models.NotificationHighExpense,
		models.NotificationGoalCompleted,
		models.NotificationBudgetExceeded,
		models.NotificationBudgetWarning,
		models.NotificationReminder,
		models.NotificationSystem,
	}
	for _, tipo := range validos {
		assert.True(t, models.ValidNotificationType(tipo), tipo)
	}

	assert.False(t, models.ValidNotificationType("PRESUPUESTO"))
	assert.False(t, models.ValidNotificationType(""))
	assert.False(t, models.ValidNotificationType("budget_exceeded"))
}
