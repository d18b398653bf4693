package models_test

import (
	"testing"

	"eczane-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, models.OrderStatus("pending").Valid())
	assert.True(t, models.OrderStatus("completed").Valid())
	assert.True(t, models.OrderStatus("cancelled").Valid())
	assert.False(t, models.OrderStatus("shipped").Valid())
	assert.False(t, models.OrderStatus("").Valid())
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from models.OrderStatus
		to   models.OrderStatus
		want bool
	}{
		{"bekleyen tamamlanır", models.OrderPending, models.OrderCompleted, true},
		{"tamamlanan iptal edilir", models.OrderCompleted, models.OrderCancelled, true},
		{"bekleyen iptal edilemez", models.OrderPending, models.OrderCancelled, false},
		{"tamamlanan beklemeye dönemez", models.OrderCompleted, models.OrderPending, false},
		{"iptal geri alınamaz", models.OrderCancelled, models.OrderCompleted, false},
		{"iptal beklemeye dönemez", models.OrderCancelled, models.OrderPending, false},
		{"aynı duruma geçiş yok", models.OrderPending, models.OrderPending, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, models.CanTransition(tt.from, tt.to))
		})
	}
}
