package validation_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/pricing"
	"github.com/linemk/flower-delivery/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() *models.OrderDraft {
	return &models.OrderDraft{
		Customer: models.Customer{
			Email: "anna@flowers.ua",
			Phone: "+380501234567",
			Name:  "Анна",
		},
		DeliveryAddress: models.DeliveryAddress{
			Street:     "вул. Хрещатик, 25",
			City:       "Київ",
			District:   "Шевченківський",
			PostalCode: "01001",
		},
		Items: []models.OrderItem{
			{ProductID: "p1", ShopID: "s1", ProductName: "Букет", Price: 100, Quantity: 2, Subtotal: 200},
			{ProductID: "p2", ShopID: "s1", ProductName: "Тюльпани", Price: 50, Quantity: 1, Subtotal: 50},
		},
		TotalAmount:  300,
		Currency:     "UAH",
		DeliveryDate: time.Date(2026, time.October, 20, 0, 0, 0, 0, time.UTC),
	}
}

func requireReason(t *testing.T, err error, field, reason string) {
	t.Helper()
	var vErr *validation.ValidationError
	require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
	assert.Equal(t, field, vErr.Field)
	assert.Equal(t, reason, vErr.Reason)
}

func TestValidateDraft_Valid(t *testing.T) {
	assert.NoError(t, validation.ValidateDraft(validDraft()))
}

func TestValidateDraft_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *models.OrderDraft)
		field  string
		reason string
	}{
		{"bad email", func(d *models.OrderDraft) { d.Customer.Email = "anna" }, "customer.email", validation.ReasonEmail},
		{"bad phone", func(d *models.OrderDraft) { d.Customer.Phone = "0501234567" }, "customer.phone", validation.ReasonPhone},
		{"long name", func(d *models.OrderDraft) { d.Customer.Name = strings.Repeat("я", 101) }, "customer.name", validation.ReasonNameTooLong},
		{"missing street", func(d *models.OrderDraft) { d.DeliveryAddress.Street = "" }, "delivery_address.street", validation.ReasonStreetMissing},
		{"missing city", func(d *models.OrderDraft) { d.DeliveryAddress.City = "" }, "delivery_address.city", validation.ReasonCityMissing},
		{"bad postal code", func(d *models.OrderDraft) { d.DeliveryAddress.PostalCode = "1001" }, "delivery_address.postal_code", validation.ReasonPostalCode},
		{"empty items", func(d *models.OrderDraft) { d.Items = []models.OrderItem{} }, "items", validation.ReasonEmptyItems},
		{"nil items", func(d *models.OrderDraft) { d.Items = nil }, "items", validation.ReasonEmptyItems},
		{"item without name", func(d *models.OrderDraft) { d.Items[1].ProductName = "" }, "items[1].product_name", validation.ReasonItemName},
		{"negative price", func(d *models.OrderDraft) { d.Items[0].Price = -1 }, "items[0].price", validation.ReasonItemPrice},
		{"zero quantity", func(d *models.OrderDraft) { d.Items[0].Quantity = 0 }, "items[0].quantity", validation.ReasonItemQuantity},
		{"negative subtotal", func(d *models.OrderDraft) { d.Items[0].Subtotal = -200 }, "items[0].subtotal", validation.ReasonItemSubtotal},
		{"inconsistent subtotal", func(d *models.OrderDraft) { d.Items[0].Subtotal = 150 }, "items[0].subtotal", validation.ReasonSubtotalMismatch},
		{"infinite price", func(d *models.OrderDraft) { d.Items[0].Price = math.Inf(1) }, "items[0].price", validation.ReasonItemPrice},
		{"nan price", func(d *models.OrderDraft) { d.Items[0].Price = math.NaN() }, "items[0].price", validation.ReasonItemPrice},
		{"infinite subtotal", func(d *models.OrderDraft) { d.Items[1].Subtotal = math.Inf(1) }, "items[1].subtotal", validation.ReasonItemSubtotal},
		{"bad currency", func(d *models.OrderDraft) { d.Currency = "GBP" }, "currency", validation.ReasonCurrency},
		{"long instructions", func(d *models.OrderDraft) { d.SpecialInstructions = strings.Repeat("a", 1001) }, "special_instructions", validation.ReasonInstructions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(d)
			requireReason(t, validation.ValidateDraft(d), tt.field, tt.reason)
		})
	}
}

func TestValidateDraft_FirstFailureWins(t *testing.T) {
	d := validDraft()
	d.Customer.Phone = "bad"
	d.DeliveryAddress.City = ""
	d.Items = nil

	requireReason(t, validation.ValidateDraft(d), "customer.phone", validation.ReasonPhone)
}

func TestValidateDraft_Nil(t *testing.T) {
	assert.True(t, validation.IsValidationError(validation.ValidateDraft(nil)))
}

func TestValidateTotals(t *testing.T) {
	policy := pricing.DefaultDeliveryPolicy()

	d := validDraft()
	assert.NoError(t, validation.ValidateTotals(d, policy))

	d.TotalAmount = 250
	requireReason(t, validation.ValidateTotals(d, policy), "total_amount", validation.ReasonTotalMismatch)

	// при пороге 200 доставка бесплатна, итог 250
	assert.NoError(t, validation.ValidateTotals(d, pricing.NewDeliveryPolicy(200, 50)))

	d.TotalAmount = math.NaN()
	requireReason(t, validation.ValidateTotals(d, policy), "total_amount", validation.ReasonTotalMismatch)
}

func TestIsValidationError_Wrapped(t *testing.T) {
	err := fmt.Errorf("service: %w", validation.NewValidationError("items", validation.ReasonEmptyItems))
	assert.True(t, validation.IsValidationError(err))
	assert.False(t, validation.IsValidationError(errors.New("boom")))
}
