package tracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
)

func TestOrderStageParseAndString(t *testing.T) {
	for _, name := range []string{"Order Placed", "Packaging", "On The Road", "Delivered"} {
		stage, ok := ParseOrderStage(name)
		assert.True(t, ok, "expected %q to parse", name)
		assert.Equal(t, name, stage.String())
	}

	// Unknown statuses fall back to the initial stage
	stage, ok := ParseOrderStage("Shipped")
	assert.False(t, ok)
	assert.Equal(t, StageOrderPlaced, stage)
}

func TestOrderStageTransitions(t *testing.T) {
	// Same stage is a legal no-op
	assert.True(t, CanTransition(StagePackaging, StagePackaging))

	// Single forward step is legal
	assert.True(t, CanTransition(StageOrderPlaced, StagePackaging))
	assert.True(t, CanTransition(StageOnTheRoad, StageDelivered))

	// Skipping and rewinding are not
	assert.False(t, CanTransition(StageOrderPlaced, StageOnTheRoad))
	assert.False(t, CanTransition(StageDelivered, StageOnTheRoad))
	assert.False(t, CanTransition(StageDelivered, StageOrderPlaced))
}

func TestOrderStageProgress(t *testing.T) {
	assert.Equal(t, 0.0, StageOrderPlaced.Progress())
	assert.InDelta(t, 1.0/3.0, StagePackaging.Progress(), 1e-9)
	assert.InDelta(t, 2.0/3.0, StageOnTheRoad.Progress(), 1e-9)
	assert.Equal(t, 1.0, StageDelivered.Progress())

	assert.False(t, StageOnTheRoad.IsTerminal())
	assert.True(t, StageDelivered.IsTerminal())
}

func TestCanCancel(t *testing.T) {
	active := &models.Order{
		Status:   models.OrderStatusActive,
		Tracking: models.Tracking{Status: "Packaging"},
	}
	assert.True(t, CanCancel(active))

	delivered := &models.Order{
		Status:   models.OrderStatusActive,
		Tracking: models.Tracking{Status: "Delivered"},
	}
	assert.False(t, CanCancel(delivered))

	cancelled := &models.Order{
		Status:   models.OrderStatusCancelled,
		Tracking: models.Tracking{Status: "Order Placed"},
	}
	assert.False(t, CanCancel(cancelled))

	// Unrecognized tracking reads as the initial stage, which is cancellable
	unknown := &models.Order{
		Status:   models.OrderStatusActive,
		Tracking: models.Tracking{Status: "mystery"},
	}
	assert.True(t, CanCancel(unknown))
}

func deliveredOrder(deliveredAt time.Time, returnDays string) *models.Order {
	return &models.Order{
		Status: models.OrderStatusActive,
		Products: []models.OrderItem{
			{ProductName: "Headphones", ReturnDays: returnDays},
		},
		Tracking:  models.Tracking{Status: "Delivered", UpdatedAt: deliveredAt},
		CreatedAt: deliveredAt.AddDate(0, 0, -4),
	}
}

func TestCanReturn(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Delivered 2 days ago with a 7-day window: eligible
	order := deliveredOrder(now.AddDate(0, 0, -2), "7")
	assert.True(t, CanReturn(order, nil, now))

	// Window expired
	expired := deliveredOrder(now.AddDate(0, 0, -10), "7")
	assert.False(t, CanReturn(expired, nil, now))

	// Non-returnable item
	nonReturnable := deliveredOrder(now.AddDate(0, 0, -1), "0")
	assert.False(t, CanReturn(nonReturnable, nil, now))

	// Not yet delivered
	inTransit := deliveredOrder(now.AddDate(0, 0, -1), "7")
	inTransit.Tracking.Status = "On The Road"
	assert.False(t, CanReturn(inTransit, nil, now))

	// A live return blocks a second one
	live := &models.ReturnRequest{Status: ReturnApproved.String()}
	assert.False(t, CanReturn(order, live, now))

	// A rejected return does not block
	rejected := &models.ReturnRequest{Status: ReturnRejected.String()}
	assert.True(t, CanReturn(order, rejected, now))
}

func TestCanReturnAgain(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	order := deliveredOrder(now.AddDate(0, 0, -2), "7")

	rejected := &models.ReturnRequest{Status: ReturnRejected.String()}
	assert.True(t, CanReturnAgain(order, rejected))

	// No prior request means Again does not apply
	assert.False(t, CanReturnAgain(order, nil))

	// A completed refund does not reopen eligibility
	completed := &models.ReturnRequest{Status: ReturnRefundCompleted.String()}
	assert.False(t, CanReturnAgain(order, completed))

	// Undelivered orders are never eligible
	order.Tracking.Status = "Packaging"
	assert.False(t, CanReturnAgain(order, rejected))
}

func TestReturnWindowUsesCreatedAtFallback(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	order := &models.Order{
		Status: models.OrderStatusActive,
		Products: []models.OrderItem{
			{ProductName: "Shoes", ReturnDays: "7"},
		},
		Tracking:  models.Tracking{Status: "Delivered"}, // no UpdatedAt stamped
		CreatedAt: now.AddDate(0, 0, -3),
	}
	assert.True(t, CanReturn(order, nil, now))

	order.CreatedAt = now.AddDate(0, 0, -30)
	assert.False(t, CanReturn(order, nil, now))
}
