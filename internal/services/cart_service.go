package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/repositories"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/session"
	"github.com/rahu12-tech/pixelbazarfrontend/pkg/rabbitmq"
)

// EventPublisher is the slice of the RabbitMQ client the services need.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// Quantity adjustment directions.
const (
	QuantityInc = "inc"
	QuantityDec = "dec"
)

// CartService owns the in-memory and persisted cart state: merging the
// server cart with the session snapshot, computing totals and applying
// the quantity/removal rules.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
	sessions    *session.Store
	mqClient    EventPublisher
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository, sessions *session.Store, mqClient EventPublisher) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		sessions:    sessions,
		mqClient:    mqClient,
	}
}

// Get returns the user's current cart view. The server cart wins; when
// it is empty or unreachable the session's cached snapshot is served
// instead. The result is re-cached on the session either way.
func (s *CartService) Get(userID string) ([]models.CartItem, error) {
	sess := s.sessions.Get(userID)

	items, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		log.Printf("Cart fetch failed for user %s, serving cached snapshot: %v", userID, err)
		return sess.Items(), nil
	}
	if len(items) == 0 {
		if cached := sess.Items(); len(cached) > 0 {
			return cached, nil
		}
	}
	sess.Hydrate(items)
	return items, nil
}

// Add puts a product into the cart. Price, image, delivery charge and
// return policy are frozen from the catalog row at add time.
func (s *CartService) Add(userID, productID string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("cannot add product %s to cart: %w", productID, err)
	}

	item := &models.CartItem{
		UserID:         userID,
		ProductID:      product.ID,
		ProductName:    product.Name,
		ProductPrice:   product.Price,
		ProductImg:     product.Image,
		Quantity:       quantity,
		DeliveryCharge: product.DeliveryCharge,
		ReturnDays:     product.ReturnDays,
	}
	if err := s.cartRepo.Add(item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	s.refreshSession(userID)
	s.publishCartUpdated(userID)
	return item, nil
}

// AdjustQuantity increments or decrements a cart line. Decrements clamp
// at 1; removal is a separate explicit action, never a side effect of
// decrementing.
func (s *CartService) AdjustQuantity(userID, itemID, direction string) (*models.CartItem, error) {
	items, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	var target *models.CartItem
	for i := range items {
		if items[i].ID == itemID {
			target = &items[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("cart item %s not found", itemID)
	}

	switch direction {
	case QuantityInc:
		target.Quantity++
	case QuantityDec:
		if target.Quantity > 1 {
			target.Quantity--
		}
	default:
		return nil, fmt.Errorf("invalid quantity direction %q", direction)
	}

	if err := s.cartRepo.UpdateQuantity(userID, itemID, target.Quantity); err != nil {
		return nil, err
	}
	s.refreshSession(userID)
	return target, nil
}

// Remove deletes a cart line. Removing an absent id is a no-op, not an
// error.
func (s *CartService) Remove(userID, itemID string) error {
	if err := s.cartRepo.Remove(userID, itemID); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	s.refreshSession(userID)
	s.publishCartUpdated(userID)
	return nil
}

// Clear wipes the user's cart wholesale: the persisted rows and the
// session snapshot. Used after a confirmed checkout success and on
// logout.
func (s *CartService) Clear(userID string) error {
	if err := s.cartRepo.Clear(userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	sess := s.sessions.Get(userID)
	sess.Hydrate(nil)
	sess.RemoveCoupon()
	s.publishCartUpdated(userID)
	return nil
}

// ComputeTotals derives the money view of a cart. Delivery charges are
// summed per line, not deduplicated per order; the grand total is not
// floored at zero here.
func (s *CartService) ComputeTotals(items []models.CartItem, discount float64) models.CartTotals {
	totals := models.CartTotals{Discount: discount}
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		totals.Subtotal += item.ProductPrice * float64(qty)
		totals.DeliveryTotal += item.DeliveryCharge
	}
	totals.GrandTotal = totals.Subtotal + totals.DeliveryTotal - discount
	return totals
}

func (s *CartService) refreshSession(userID string) {
	items, err := s.cartRepo.GetByUser(userID)
	if err != nil {
		log.Printf("Failed to refresh cart session for user %s: %v", userID, err)
		return
	}
	s.sessions.Get(userID).Hydrate(items)
}

// publishCartUpdated emits the cart.updated event. Delivery failures
// are logged, never surfaced: the cart change itself already succeeded.
func (s *CartService) publishCartUpdated(userID string) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(map[string]interface{}{"userID": userID})
	if err != nil {
		log.Printf("Failed to marshal cart.updated event: %v", err)
		return
	}
	if err := s.mqClient.Publish(rabbitmq.Exchange, rabbitmq.EventCartUpdated, body); err != nil {
		log.Printf("Warning: Failed to publish cart.updated for user %s: %v", userID, err)
	}
}
