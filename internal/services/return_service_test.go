package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/repositories"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/services"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/tracking"
)

func seedDeliveredOrder(t *testing.T, repo repositories.OrderRepository, id, userID string, deliveredAgoDays int, returnDays string) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:     id,
		UserID: userID,
		Products: []models.OrderItem{
			{ID: id + "-item", OrderID: id, ProductName: "Headphones", ProductPrice: 250, Quantity: 1, ReturnDays: returnDays},
		},
		TotalAmount: 270,
		FinalAmount: 270,
		Tracking: models.Tracking{
			Status:    "Delivered",
			UpdatedAt: time.Now().AddDate(0, 0, -deliveredAgoDays),
		},
		Status:    models.OrderStatusActive,
		CreatedAt: time.Now().AddDate(0, 0, -deliveredAgoDays-3),
	}
	assert.NoError(t, repo.Create(order))
	return order
}

func newReturnFixture() (*services.ReturnService, *repositories.MockReturnRepository, *repositories.MockOrderRepository, *recordingPublisher) {
	returnRepo := repositories.NewMockReturnRepository()
	orderRepo := repositories.NewMockOrderRepository()
	publisher := &recordingPublisher{}
	svc := services.NewReturnService(returnRepo, orderRepo, publisher)
	return svc, returnRepo, orderRepo, publisher
}

func TestReturnCreate(t *testing.T) {
	svc, _, orderRepo, publisher := newReturnFixture()
	seedDeliveredOrder(t, orderRepo, "ord-1", "user-1", 2, "7")

	request, err := svc.Create("user-1", "ord-1", models.ReturnReasonDamaged, "")
	assert.NoError(t, err)
	assert.Equal(t, models.ReturnReasonDamaged, request.Reason)
	assert.Equal(t, 270.0, request.RefundAmount, "refund is frozen from the order's final amount")
	assert.Equal(t, "REQUESTED", request.Status)
	assert.Equal(t, 1, publisher.count("return.requested"))

	// The product lines are snapshotted off the order
	assert.Len(t, request.Products, 1)
	assert.Equal(t, "Headphones", request.Products[0].ProductName)
	assert.Equal(t, 250.0, request.Products[0].ProductPrice)
	assert.Equal(t, request.ID, request.Products[0].ReturnID)
}

func TestReturnCreateReasonValidation(t *testing.T) {
	svc, _, orderRepo, _ := newReturnFixture()
	seedDeliveredOrder(t, orderRepo, "ord-1", "user-1", 2, "7")

	var valErr *services.ValidationError

	_, err := svc.Create("user-1", "ord-1", "because", "")
	assert.ErrorAs(t, err, &valErr)

	// "other" requires free text
	_, err = svc.Create("user-1", "ord-1", models.ReturnReasonOther, "   ")
	assert.ErrorAs(t, err, &valErr)

	request, err := svc.Create("user-1", "ord-1", models.ReturnReasonOther, "Arrived without the charger")
	assert.NoError(t, err)
	assert.Equal(t, "Arrived without the charger", request.Reason)
}

func TestReturnCreateEligibilityGating(t *testing.T) {
	svc, _, orderRepo, _ := newReturnFixture()

	// Not yet delivered
	undelivered := seedDeliveredOrder(t, orderRepo, "ord-1", "user-1", 2, "7")
	assert.NoError(t, orderRepo.UpdateTracking(undelivered.ID, "On The Road", time.Now()))
	_, err := svc.Create("user-1", "ord-1", models.ReturnReasonDamaged, "")
	assert.Error(t, err)

	// Window expired
	seedDeliveredOrder(t, orderRepo, "ord-2", "user-1", 30, "7")
	_, err = svc.Create("user-1", "ord-2", models.ReturnReasonDamaged, "")
	assert.Error(t, err)

	// Non-returnable item
	seedDeliveredOrder(t, orderRepo, "ord-3", "user-1", 1, "0")
	_, err = svc.Create("user-1", "ord-3", models.ReturnReasonDamaged, "")
	assert.Error(t, err)

	// Someone else's order
	seedDeliveredOrder(t, orderRepo, "ord-4", "user-2", 1, "7")
	_, err = svc.Create("user-1", "ord-4", models.ReturnReasonDamaged, "")
	assert.Error(t, err)
}

func TestReturnCreateBlocksSecondLiveRequest(t *testing.T) {
	svc, _, orderRepo, _ := newReturnFixture()
	seedDeliveredOrder(t, orderRepo, "ord-1", "user-1", 2, "7")

	_, err := svc.Create("user-1", "ord-1", models.ReturnReasonDamaged, "")
	assert.NoError(t, err)

	// A live request blocks another
	_, err = svc.Create("user-1", "ord-1", models.ReturnReasonSizeIssue, "")
	assert.Error(t, err)
}

func TestReturnRejectionReopensEligibility(t *testing.T) {
	svc, _, orderRepo, _ := newReturnFixture()
	seedDeliveredOrder(t, orderRepo, "ord-1", "user-1", 2, "7")

	first, err := svc.Create("user-1", "ord-1", models.ReturnReasonDamaged, "")
	assert.NoError(t, err)

	_, err = svc.ApplyStatusUpdate(first.ID, "REJECTED")
	assert.NoError(t, err)

	// Rejection permits exactly one more request
	second, err := svc.Create("user-1", "ord-1", models.ReturnReasonQualityIssue, "")
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestReturnStatusView(t *testing.T) {
	svc, _, orderRepo, _ := newReturnFixture()
	seedDeliveredOrder(t, orderRepo, "ord-1", "user-1", 2, "7")
	request, err := svc.Create("user-1", "ord-1", models.ReturnReasonDamaged, "")
	assert.NoError(t, err)

	view, err := svc.Status("user-1", request.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0.0, view.Progress)
	assert.False(t, view.Terminal)
	assert.False(t, view.Rejected)

	// Scoped to the owner
	_, err = svc.Status("user-2", request.ID)
	assert.Error(t, err)
}

func TestReturnApplyStatusUpdate(t *testing.T) {
	svc, _, orderRepo, _ := newReturnFixture()
	seedDeliveredOrder(t, orderRepo, "ord-1", "user-1", 2, "7")
	request, err := svc.Create("user-1", "ord-1", models.ReturnReasonDamaged, "")
	assert.NoError(t, err)

	// Forward, one step at a time
	updated, err := svc.ApplyStatusUpdate(request.ID, "APPROVED")
	assert.NoError(t, err)
	assert.Equal(t, tracking.ReturnApproved.String(), updated.Status)

	// Skipping is rejected
	_, err = svc.ApplyStatusUpdate(request.ID, "RECEIVED")
	assert.Error(t, err)

	// Rewinding is rejected
	_, err = svc.ApplyStatusUpdate(request.ID, "REQUESTED")
	assert.Error(t, err)

	// Rejection from a mid-chain stage is legal
	_, err = svc.ApplyStatusUpdate(request.ID, "REJECTED")
	assert.NoError(t, err)

	// Terminal stages accept nothing further
	_, err = svc.ApplyStatusUpdate(request.ID, "APPROVED")
	assert.Error(t, err)
}

func TestReturnListByUser(t *testing.T) {
	svc, _, orderRepo, _ := newReturnFixture()
	seedDeliveredOrder(t, orderRepo, "ord-1", "user-1", 2, "7")
	seedDeliveredOrder(t, orderRepo, "ord-2", "user-1", 2, "7")

	_, err := svc.Create("user-1", "ord-1", models.ReturnReasonDamaged, "")
	assert.NoError(t, err)
	_, err = svc.Create("user-1", "ord-2", models.ReturnReasonWrongItem, "")
	assert.NoError(t, err)

	requests, err := svc.ListByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, requests, 2)

	requests, err = svc.ListByUser("user-2")
	assert.NoError(t, err)
	assert.Empty(t, requests)
}
