package conditions

import (
	"context"

	"github.com/outflowhq/outflow/pkg/models"
)

// Built-in condition names.
const (
	ConditionZeroPurchases    = "zero_purchases"
	ConditionMessageOpened    = "message_opened"
	ConditionCartNotConverted = "cart_not_converted"
)

// ZeroPurchases reads Customer.TotalPurchases.
func ZeroPurchases(_ context.Context, customer *models.Customer) (string, error) {
	return boolLabel(customer.TotalPurchases == 0), nil
}

// MessageOpened reads the customer's event history for an email_opened
// event.
func MessageOpened(_ context.Context, customer *models.Customer) (string, error) {
	return boolLabel(customer.HasEvent(models.EventEmailOpened)), nil
}

// CartNotConverted reads Customer.CartActive and the event history: an
// active cart with no purchase event since counts as not converted.
func CartNotConverted(_ context.Context, customer *models.Customer) (string, error) {
	if !customer.CartActive {
		return LabelFalse, nil
	}

	var lastCartUpdate, lastPurchase int

	for i, event := range customer.Events {
		switch event.Type {
		case models.EventCartUpdated:
			lastCartUpdate = i + 1
		case models.EventPurchase:
			lastPurchase = i + 1
		}
	}

	return boolLabel(lastPurchase < lastCartUpdate || lastPurchase == 0), nil
}

func boolLabel(v bool) string {
	if v {
		return LabelTrue
	}

	return LabelFalse
}
