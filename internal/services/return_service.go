package services

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/repositories"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/tracking"
	"github.com/rahu12-tech/pixelbazarfrontend/pkg/rabbitmq"
)

var returnReasons = map[string]bool{
	models.ReturnReasonDamaged:        true,
	models.ReturnReasonWrongItem:      true,
	models.ReturnReasonNotAsDescribed: true,
	models.ReturnReasonQualityIssue:   true,
	models.ReturnReasonSizeIssue:      true,
	models.ReturnReasonOther:          true,
}

// ReturnService owns the post-delivery return lifecycle: eligibility
// gating, request creation and status ingestion.
type ReturnService struct {
	returnRepo repositories.ReturnRepository
	orderRepo  repositories.OrderRepository
	mqClient   EventPublisher
	now        func() time.Time
}

// NewReturnService creates a new ReturnService.
func NewReturnService(returnRepo repositories.ReturnRepository, orderRepo repositories.OrderRepository, mqClient EventPublisher) *ReturnService {
	return &ReturnService{
		returnRepo: returnRepo,
		orderRepo:  orderRepo,
		mqClient:   mqClient,
		now:        time.Now,
	}
}

// Create opens a return request for a delivered order. The order must
// be owned by the user, delivered, inside its return window, and have
// no live return already; a rejected prior request reopens eligibility
// for one more. The refund amount and the product lines are frozen off
// the order at request time.
func (s *ReturnService) Create(userID, orderID, reason, otherText string) (*models.ReturnRequest, error) {
	if !returnReasons[reason] {
		return nil, &ValidationError{Fields: map[string]string{
			"reason": "Please select a return reason",
		}}
	}
	if reason == models.ReturnReasonOther {
		otherText = strings.TrimSpace(otherText)
		if otherText == "" {
			return nil, &ValidationError{Fields: map[string]string{
				"reason": "Please describe the issue",
			}}
		}
		reason = otherText
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("order %s not found: %w", orderID, err)
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s not found", orderID)
	}

	latest, err := s.returnRepo.GetLatestByOrder(orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to check return history for order %s: %w", orderID, err)
	}
	now := s.now()
	if !tracking.CanReturn(order, latest, now) && !tracking.CanReturnAgain(order, latest) {
		return nil, fmt.Errorf("order %s is not eligible for return", orderID)
	}

	returnID := uuid.New().String()
	snapshot := make([]models.ReturnItem, 0, len(order.Products))
	for _, line := range order.Products {
		snapshot = append(snapshot, models.ReturnItem{
			ID:           uuid.New().String(),
			ReturnID:     returnID,
			ProductID:    line.ProductID,
			ProductName:  line.ProductName,
			ProductPrice: line.ProductPrice,
			ProductImg:   line.ProductImg,
			Quantity:     line.Quantity,
		})
	}

	request := &models.ReturnRequest{
		ID:           returnID,
		OrderID:      orderID,
		UserID:       userID,
		Reason:       reason,
		Products:     snapshot,
		RefundAmount: order.FinalAmount,
		Status:       tracking.ReturnRequested.String(),
		RequestedAt:  now,
		UpdatedAt:    now,
	}
	if err := s.returnRepo.Create(request); err != nil {
		return nil, fmt.Errorf("failed to create return request: %w", err)
	}

	s.publishReturnRequested(request)
	return request, nil
}

// ReturnStatusView is the return lifecycle progress shown on the
// return tracking page.
type ReturnStatusView struct {
	Request  *models.ReturnRequest `json:"request"`
	Progress float64               `json:"progress"`
	Terminal bool                  `json:"terminal"`
	Rejected bool                  `json:"rejected"`
}

// Status returns the tracking view of a return request, scoped to its
// owner.
func (s *ReturnService) Status(userID, returnID string) (*ReturnStatusView, error) {
	request, err := s.returnRepo.GetByID(returnID)
	if err != nil {
		return nil, fmt.Errorf("return %s not found: %w", returnID, err)
	}
	if request.UserID != userID {
		return nil, fmt.Errorf("return %s not found", returnID)
	}
	stage, _ := tracking.ParseReturnStage(request.Status)
	return &ReturnStatusView{
		Request:  request,
		Progress: stage.Progress(),
		Terminal: stage.IsTerminal(),
		Rejected: stage == tracking.ReturnRejected,
	}, nil
}

// ListByUser returns the user's return requests, newest first.
func (s *ReturnService) ListByUser(userID string) ([]models.ReturnRequest, error) {
	requests, err := s.returnRepo.GetAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load returns: %w", err)
	}
	return requests, nil
}

// ApplyStatusUpdate ingests a lifecycle status for a return request.
// Same-stage and single-step-forward moves are accepted, plus Rejected
// from any non-terminal stage; anything else is rejected.
func (s *ReturnService) ApplyStatusUpdate(returnID, status string) (*models.ReturnRequest, error) {
	request, err := s.returnRepo.GetByID(returnID)
	if err != nil {
		return nil, fmt.Errorf("return %s not found: %w", returnID, err)
	}

	to, ok := tracking.ParseReturnStage(status)
	if !ok {
		return nil, fmt.Errorf("unknown return status %q", status)
	}
	from, _ := tracking.ParseReturnStage(request.Status)
	if !tracking.CanReturnTransition(from, to) {
		return nil, fmt.Errorf("illegal return transition %s -> %s for return %s", from, to, returnID)
	}

	if err := s.returnRepo.UpdateStatus(returnID, to.String()); err != nil {
		return nil, fmt.Errorf("failed to update return %s: %w", returnID, err)
	}
	request.Status = to.String()
	request.UpdatedAt = s.now()
	return request, nil
}

func (s *ReturnService) publishReturnRequested(request *models.ReturnRequest) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{
		"returnID": request.ID,
		"orderID":  request.OrderID,
		"userID":   request.UserID,
		"refund":   request.RefundAmount,
	})
	if err != nil {
		log.Printf("Failed to marshal return.requested event: %v", err)
		return
	}
	if err := s.mqClient.Publish(rabbitmq.Exchange, rabbitmq.EventReturnRequested, body); err != nil {
		log.Printf("Warning: Failed to publish return.requested for return %s: %v", request.ID, err)
	}
}
