package normalize

import "github.com/rahu12-tech/pixelbazarfrontend/internal/models"

// CartItems canonicalizes cart lines arriving from either the server
// cart (nested product object) or a locally cached snapshot (flat
// fields). Lines without a usable identifier are dropped.
func CartItems(mediaBase string, raws []map[string]interface{}) []models.CartItem {
	items := make([]models.CartItem, 0, len(raws))
	for _, raw := range raws {
		id := firstString(raw, "id", "_id")
		if id == "" {
			continue
		}

		item := models.CartItem{
			ID:             id,
			ProductName:    firstString(raw, "product_name", "name"),
			ProductPrice:   firstNumber(raw, "product_price", "price", "total_price"),
			ProductImg:     firstString(raw, "product_img", "image"),
			Quantity:       firstInt(raw, 1, "quantity"),
			ReturnDays:     firstString(raw, "product_return", "return_policy"),
			DeliveryCharge: 0,
		}

		// Server cart rows nest the product; those fields win when set.
		if product := childObject(raw, "product"); product != nil {
			if name := firstString(product, "product_name", "name"); name != "" {
				item.ProductName = name
			}
			if price := firstNumber(product, "product_price", "price"); price != 0 {
				item.ProductPrice = price
			}
			if img := firstString(product, "product_img", "image"); img != "" {
				item.ProductImg = img
			}
			if item.ProductID == "" {
				item.ProductID = firstString(product, "id", "_id")
			}
			if days := firstString(product, "product_return", "return_policy"); days != "" {
				item.ReturnDays = days
			}
		}

		if delivery := childObject(raw, "delivery"); delivery != nil {
			item.DeliveryCharge = firstNumber(delivery, "deliveryCharge", "delivery_charge")
		} else {
			item.DeliveryCharge = firstNumber(raw, "delivery_charge", "deliveryCharge")
		}

		if item.ProductName == "" {
			item.ProductName = "Product"
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if item.ReturnDays == "" {
			item.ReturnDays = "0"
		}
		item.ProductImg = resolveImage(mediaBase, item.ProductImg)

		items = append(items, item)
	}
	return items
}
