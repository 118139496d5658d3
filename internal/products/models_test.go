package products

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() Input {
	return Input{
		Name:                 "Premium Denim Jacket",
		Description:          "Heavyweight denim, stone washed",
		Category:             "Jackets",
		PriceCents:           4500,
		AvailableQuantity:    500,
		MinimumOrderQuantity: 50,
		Images:               []string{"https://img.example/1.jpg"},
		PaymentOptions:       PaymentCash,
	}
}

func TestInputValidateOK(t *testing.T) {
	assert.Nil(t, validInput().Validate())
}

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Input)
		field string
	}{
		{"missing name", func(in *Input) { in.Name = "" }, "name"},
		{"unknown category", func(in *Input) { in.Category = "Socks" }, "category"},
		{"zero price", func(in *Input) { in.PriceCents = 0 }, "priceCents"},
		{"negative available", func(in *Input) { in.AvailableQuantity = -1 }, "availableQuantity"},
		{"zero minimum", func(in *Input) { in.MinimumOrderQuantity = 0 }, "minimumOrderQuantity"},
		{"minimum above available", func(in *Input) {
			in.AvailableQuantity = 10
			in.MinimumOrderQuantity = 20
		}, "minimumOrderQuantity"},
		{"no images", func(in *Input) { in.Images = nil }, "images"},
		{"too many images", func(in *Input) {
			in.Images = []string{"a", "b", "c", "d", "e", "f"}
		}, "images"},
		{"bad payment option", func(in *Input) { in.PaymentOptions = "credit" }, "paymentOptions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mut(&in)
			errs := in.Validate()
			require.NotNil(t, errs)
			assert.Contains(t, errs, tt.field)
		})
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		assert.True(t, ValidCategory(c))
	}
	assert.False(t, ValidCategory("Socks"))
	assert.False(t, ValidCategory(""))
}
