package products

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("product not found")

// Categories is the fixed garment vocabulary offered by the catalog form.
var Categories = []string{
	"T-Shirts", "Shirts", "Pants", "Jeans", "Jackets",
	"Hoodies", "Dresses", "Accessories", "Others",
}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

const (
	PaymentCash     = "cash"
	PaymentPayFirst = "payfirst"
)

type Product struct {
	ID                   string    `json:"_id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Category             string    `json:"category"`
	PriceCents           int64     `json:"priceCents"`
	AvailableQuantity    int       `json:"availableQuantity"`
	MinimumOrderQuantity int       `json:"minimumOrderQuantity"`
	Images               []string  `json:"images"`
	DemoVideo            string    `json:"demoVideo,omitempty"`
	PaymentOptions       string    `json:"paymentOptions"`
	ShowOnHome           bool      `json:"showOnHome"`
	CreatedBy            string    `json:"createdBy"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type Input struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Category             string   `json:"category"`
	PriceCents           int64    `json:"priceCents"`
	AvailableQuantity    int      `json:"availableQuantity"`
	MinimumOrderQuantity int      `json:"minimumOrderQuantity"`
	Images               []string `json:"images"`
	DemoVideo            string   `json:"demoVideo"`
	PaymentOptions       string   `json:"paymentOptions"`
	ShowOnHome           bool     `json:"showOnHome"`
}

// Validate returns field-level messages for the catalog form.
func (in Input) Validate() map[string]string {
	errs := map[string]string{}
	if in.Name == "" {
		errs["name"] = "name is required"
	}
	if !ValidCategory(in.Category) {
		errs["category"] = "unknown category"
	}
	if in.PriceCents <= 0 {
		errs["priceCents"] = "price must be positive"
	}
	if in.AvailableQuantity < 0 {
		errs["availableQuantity"] = "available quantity cannot be negative"
	}
	if in.MinimumOrderQuantity < 1 {
		errs["minimumOrderQuantity"] = "minimum order quantity must be at least 1"
	} else if in.MinimumOrderQuantity > in.AvailableQuantity {
		errs["minimumOrderQuantity"] = "minimum order quantity cannot exceed available quantity"
	}
	if len(in.Images) < 1 || len(in.Images) > 5 {
		errs["images"] = "between 1 and 5 images required"
	}
	if in.PaymentOptions != PaymentCash && in.PaymentOptions != PaymentPayFirst {
		errs["paymentOptions"] = "payment option must be cash or payfirst"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
