// Package tracking models the fulfillment lifecycle of orders and the
// refund lifecycle of return requests as explicit state machines.
// Backend status strings are parsed into enumerated stages at the
// ingestion boundary and any backward or skip transition is rejected
// there rather than stored.
package tracking

import (
	"strconv"
	"time"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
)

// OrderStage is a fulfillment stage of a placed order. Stages are
// totally ordered and only move forward, one step at a time.
type OrderStage int

const (
	StageOrderPlaced OrderStage = iota
	StagePackaging
	StageOnTheRoad
	StageDelivered
)

var orderStageNames = [...]string{
	StageOrderPlaced: "Order Placed",
	StagePackaging:   "Packaging",
	StageOnTheRoad:   "On The Road",
	StageDelivered:   "Delivered",
}

func (s OrderStage) String() string {
	if s < StageOrderPlaced || s > StageDelivered {
		return "Unknown"
	}
	return orderStageNames[s]
}

// ParseOrderStage maps a backend status string to its stage. The bool
// reports whether the string named a known stage.
func ParseOrderStage(raw string) (OrderStage, bool) {
	for stage, name := range orderStageNames {
		if raw == name {
			return OrderStage(stage), true
		}
	}
	return StageOrderPlaced, false
}

// CanTransition reports whether an ingested status update from one
// stage to another is legal: staying put or moving forward one step.
func CanTransition(from, to OrderStage) bool {
	return to == from || to == from+1
}

// IsTerminal reports whether no further fulfillment progress is possible.
func (s OrderStage) IsTerminal() bool {
	return s == StageDelivered
}

// Progress is the derived completion fraction for progress bars:
// index(stage) / (number of stages - 1).
func (s OrderStage) Progress() float64 {
	return float64(s) / float64(len(orderStageNames)-1)
}

// stageOf reads an order's tracking status, defaulting to the initial
// stage when the field is absent or unrecognized.
func stageOf(o *models.Order) OrderStage {
	stage, ok := ParseOrderStage(o.Tracking.Status)
	if !ok {
		return StageOrderPlaced
	}
	return stage
}

// CanCancel reports whether an order may still be cancelled: it is not
// already cancelled and has not been delivered.
func CanCancel(o *models.Order) bool {
	return o.Status != models.OrderStatusCancelled && stageOf(o) != StageDelivered
}

// CanReturn reports whether a fresh return request may be created for
// an order: the order is delivered, no non-rejected return exists, and
// at least one item's return window is still open. The delivery
// timestamp is the tracking update time, falling back to the order
// creation time when the backend never stamped it.
func CanReturn(o *models.Order, latest *models.ReturnRequest, now time.Time) bool {
	if stageOf(o) != StageDelivered {
		return false
	}
	if latest != nil && latest.Status != ReturnRejected.String() {
		return false
	}
	return returnWindowOpen(o, now)
}

// CanReturnAgain reports whether a rejected return reopens eligibility
// for one more request on a delivered order.
func CanReturnAgain(o *models.Order, latest *models.ReturnRequest) bool {
	return stageOf(o) == StageDelivered && latest != nil && latest.Status == ReturnRejected.String()
}

func returnWindowOpen(o *models.Order, now time.Time) bool {
	deliveredAt := o.Tracking.UpdatedAt
	if deliveredAt.IsZero() {
		deliveredAt = o.CreatedAt
	}
	for _, item := range o.Products {
		days, err := strconv.Atoi(item.ReturnDays)
		if err != nil || days <= 0 {
			continue
		}
		if !now.After(deliveredAt.AddDate(0, 0, days)) {
			return true
		}
	}
	return false
}
