package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/repositories"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/services"
)

func seedOrder(t *testing.T, repo repositories.OrderRepository, id, userID, trackingStatus string) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:          id,
		UserID:      userID,
		TotalAmount: 270,
		FinalAmount: 270,
		Payment: models.Payment{
			Method: models.PaymentMethodCOD,
			Status: models.PaymentStatusPending,
		},
		Tracking: models.Tracking{
			Status:    trackingStatus,
			UpdatedAt: time.Now().Add(-time.Hour),
		},
		Status:    models.OrderStatusActive,
		CreatedAt: time.Now().AddDate(0, 0, -2),
	}
	assert.NoError(t, repo.Create(order))
	return order
}

func TestOrderListAndGetScopedToOwner(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	svc := services.NewOrderService(repo, "", nil)

	seedOrder(t, repo, "ord-1", "user-1", "Order Placed")
	seedOrder(t, repo, "ord-2", "user-2", "Order Placed")

	orders, err := svc.ListByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "ord-1", orders[0].ID)

	_, err = svc.GetByID("user-1", "ord-1")
	assert.NoError(t, err)

	// Another user's order reads as not found
	_, err = svc.GetByID("user-1", "ord-2")
	assert.Error(t, err)
}

func TestOrderTrack(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	svc := services.NewOrderService(repo, "", nil)
	seedOrder(t, repo, "ord-1", "user-1", "On The Road")

	view, err := svc.Track("user-1", "ord-1")
	assert.NoError(t, err)
	assert.Equal(t, "On The Road", view.Status)
	assert.InDelta(t, 2.0/3.0, view.Progress, 1e-9)
	assert.False(t, view.Delivered)

	// Unrecognized stored status renders as the initial stage
	seedOrder(t, repo, "ord-2", "user-1", "garbled")
	view, err = svc.Track("user-1", "ord-2")
	assert.NoError(t, err)
	assert.Equal(t, "Order Placed", view.Status)
	assert.Equal(t, 0.0, view.Progress)
}

func TestOrderCancel(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	publisher := &recordingPublisher{}
	svc := services.NewOrderService(repo, "", publisher)

	seedOrder(t, repo, "ord-1", "user-1", "Packaging")
	order, err := svc.Cancel("user-1", "ord-1")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)
	assert.Equal(t, 1, publisher.count("order.cancelled"))

	// Already cancelled
	_, err = svc.Cancel("user-1", "ord-1")
	assert.Error(t, err)

	// Delivered orders cannot be cancelled
	seedOrder(t, repo, "ord-2", "user-1", "Delivered")
	_, err = svc.Cancel("user-1", "ord-2")
	assert.Error(t, err)

	stored, _ := repo.GetByID("ord-2")
	assert.Equal(t, models.OrderStatusActive, stored.Status)
}

func TestOrderApplyTrackingUpdate(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	svc := services.NewOrderService(repo, "", nil)
	seedOrder(t, repo, "ord-1", "user-1", "Order Placed")

	order, err := svc.ApplyTrackingUpdate("ord-1", "Packaging")
	assert.NoError(t, err)
	assert.Equal(t, "Packaging", order.Tracking.Status)

	// Same-stage update is a legal no-op
	_, err = svc.ApplyTrackingUpdate("ord-1", "Packaging")
	assert.NoError(t, err)

	// Skipping ahead is rejected and the stored status holds
	_, err = svc.ApplyTrackingUpdate("ord-1", "Delivered")
	assert.Error(t, err)
	stored, _ := repo.GetByID("ord-1")
	assert.Equal(t, "Packaging", stored.Tracking.Status)

	// Rewinding is rejected
	_, err = svc.ApplyTrackingUpdate("ord-1", "Order Placed")
	assert.Error(t, err)

	// Unknown stage strings are rejected outright
	_, err = svc.ApplyTrackingUpdate("ord-1", "Teleported")
	assert.Error(t, err)
}

func TestCancelledOrderTakesNoTrackingProgress(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	svc := services.NewOrderService(repo, "", nil)
	seedOrder(t, repo, "ord-1", "user-1", "Packaging")

	_, err := svc.Cancel("user-1", "ord-1")
	assert.NoError(t, err)

	// A cancelled order never walks toward Delivered, even one step
	_, err = svc.ApplyTrackingUpdate("ord-1", "On The Road")
	assert.Error(t, err)

	// Not even a same-stage touch
	_, err = svc.ApplyTrackingUpdate("ord-1", "Packaging")
	assert.Error(t, err)

	stored, _ := repo.GetByID("ord-1")
	assert.Equal(t, "Packaging", stored.Tracking.Status)
	assert.Equal(t, models.OrderStatusCancelled, stored.Status)
}

func TestOrderImportLegacy(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	svc := services.NewOrderService(repo, "https://media.example.com", nil)

	imported, err := svc.ImportLegacy("user-1", []map[string]interface{}{
		{
			"order_id":     "legacy-1",
			"total_amount": 500.0,
			"items": []interface{}{
				map[string]interface{}{"name": "Shoes", "price": 500.0, "qty": 1.0},
			},
		},
		{"amount": 90.0}, // no id: dropped, not an error
		{"_id": "legacy-2", "final_amount": 120.0},
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, imported)

	orders, err := svc.ListByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 2)

	order, err := svc.GetByID("user-1", "legacy-1")
	assert.NoError(t, err)
	assert.Equal(t, 500.0, order.TotalAmount)
	assert.Equal(t, 500.0, order.FinalAmount)
	assert.Len(t, order.Products, 1)
	assert.Equal(t, "Shoes", order.Products[0].ProductName)
}
