package normalize

import (
	"log"
	"time"

	"github.com/rahu12-tech/pixelbazarfrontend/internal/models"
	"github.com/rahu12-tech/pixelbazarfrontend/internal/tracking"
)

// AddressUnavailable is rendered when a record carries neither a
// structured address block nor flat address fields.
const AddressUnavailable = "unavailable"

// Orders canonicalizes a batch of raw order records. Records without a
// usable identifier are dropped and logged; everything else gets
// defaults instead of failures.
func Orders(mediaBase string, raws []map[string]interface{}) []models.Order {
	orders := make([]models.Order, 0, len(raws))
	for i, raw := range raws {
		order, ok := Order(mediaBase, raw)
		if !ok {
			log.Printf("normalize: dropping order record %d: no usable identifier", i)
			continue
		}
		orders = append(orders, order)
	}
	return orders
}

// Order canonicalizes one raw order record. The bool is false when the
// record carries no usable identifier under any known alias.
func Order(mediaBase string, raw map[string]interface{}) (models.Order, bool) {
	id := firstString(raw, "order_id", "_id", "id")
	if id == "" {
		return models.Order{}, false
	}

	order := models.Order{
		ID:             id,
		UserID:         firstString(raw, "user_id", "userId", "customer_id"),
		Products:       orderItems(mediaBase, id, raw),
		TotalAmount:    firstNumber(raw, "total_amount", "totalAmount", "amount"),
		CouponCode:     firstString(raw, "coupon_code", "couponCode"),
		CouponDiscount: firstNumber(raw, "coupon_discount", "couponDiscount", "discount"),
		FinalAmount:    firstNumber(raw, "final_amount", "finalAmount"),
		Payment:        payment(raw),
		Address:        address(raw),
		Tracking:       trackingDescriptor(raw),
		Status:         firstString(raw, "status"),
		CreatedAt:      firstTime(raw, "createdAt", "created_at"),
	}

	if order.TotalAmount == 0 {
		order.TotalAmount = firstNumber(raw, "final_amount", "finalAmount")
	}
	if order.FinalAmount == 0 {
		order.FinalAmount = order.TotalAmount
	}
	if order.Status != models.OrderStatusCancelled {
		order.Status = models.OrderStatusActive
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	return order, true
}

// orderItems resolves the line-item list under either alias and maps
// each entry's legacy field names onto the canonical item.
func orderItems(mediaBase, orderID string, raw map[string]interface{}) []models.OrderItem {
	entries := childList(raw, "products", "items")
	items := make([]models.OrderItem, 0, len(entries))
	for _, entry := range entries {
		returnDays := firstString(entry, "product_return", "return_policy")
		if returnDays == "" {
			returnDays = "0"
		}
		name := firstString(entry, "product_name", "name", "title")
		if name == "" {
			name = "Product"
		}
		items = append(items, models.OrderItem{
			ID:           firstString(entry, "_id", "id"),
			OrderID:      orderID,
			ProductID:    firstString(entry, "product_id", "_id", "id"),
			ProductName:  name,
			ProductPrice: firstNumber(entry, "product_price", "price"),
			ProductImg:   resolveImage(mediaBase, firstString(entry, "product_img", "image", "img")),
			Quantity:     firstInt(entry, 1, "quantity", "qty"),
			ReturnDays:   returnDays,
		})
	}
	return items
}

func payment(raw map[string]interface{}) models.Payment {
	p := models.Payment{
		Method: firstString(raw, "paymentMethod", "payment_method"),
		Status: firstString(raw, "payment_status", "paymentStatus"),
	}
	if block := childObject(raw, "payment"); block != nil {
		if p.Method == "" {
			p.Method = firstString(block, "method")
		}
		if p.Status == "" {
			p.Status = firstString(block, "status")
		}
		p.SessionID = firstString(block, "session_id")
		p.PaymentID = firstString(block, "payment_id")
	}
	if p.Method == "" {
		p.Method = "N/A"
	}
	if p.Status == "" {
		p.Status = models.PaymentStatusPending
	}
	return p
}

// address prefers the structured shipping_address block, then the flat
// form fields, and finally renders as unavailable rather than failing.
func address(raw map[string]interface{}) models.Address {
	source := raw
	if block := childObject(raw, "shipping_address"); block != nil {
		source = block
	}
	addr := models.Address{
		FirstName: firstString(source, "fname", "first_name", "customer_name"),
		LastName:  firstString(source, "lname", "last_name"),
		Email:     firstString(source, "email", "customer_email"),
		Mobile:    firstString(source, "mobile", "phone", "contact_number"),
		Street:    firstString(source, "address", "street"),
		Town:      firstString(source, "town", "area"),
		City:      firstString(source, "city"),
		State:     firstString(source, "state"),
		Pincode:   firstString(source, "pincode", "postal_code"),
	}
	if addr.Street == "" && addr.City == "" && addr.Pincode == "" {
		addr.Street = AddressUnavailable
	}
	return addr
}

// trackingDescriptor resolves the tracking block or its flat aliases,
// defaulting to the initial stage. Unrecognized stage strings are
// replaced with the initial stage so downstream transition checks start
// from known ground.
func trackingDescriptor(raw map[string]interface{}) models.Tracking {
	t := models.Tracking{}
	if block := childObject(raw, "tracking"); block != nil {
		t.Status = firstString(block, "status")
		t.UpdatedAt = firstTime(block, "updatedAt", "updated_at")
	}
	if t.Status == "" {
		t.Status = firstString(raw, "tracking_status", "status")
	}
	if _, ok := tracking.ParseOrderStage(t.Status); !ok {
		t.Status = tracking.StageOrderPlaced.String()
	}
	if t.UpdatedAt.IsZero() {
		t.UpdatedAt = firstTime(raw, "updatedAt", "updated_at", "created_at")
	}
	return t
}
