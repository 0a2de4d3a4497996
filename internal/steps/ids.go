// Package steps implements the booking wizard steps.
package steps

import (
	"sort"

	"github.com/m04kA/SMC-BookingWizard/internal/domain"
)

// Step IDs in wizard order
const (
	StepServiceForm = "service-form"
	StepPeriod      = "period"
	StepCart        = "cart"
	StepCheckout    = "checkout"
	StepPayment     = "payment"
	StepBooking     = "booking"
)

func idOptions(ids []int64) []interface{} {
	options := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		options = append(options, int(id))
	}
	return options
}

func stringOptions(values []string) []interface{} {
	options := make([]interface{}, 0, len(values))
	for _, v := range values {
		options = append(options, v)
	}
	return options
}

func intRangeOptions(values []int) []interface{} {
	options := make([]interface{}, 0, len(values))
	for _, v := range values {
		options = append(options, v)
	}
	return options
}

func hasOption(options []interface{}, value interface{}) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}

func serviceCategories(services map[int64]*domain.Service) []string {
	seen := make(map[string]struct{})
	for _, s := range services {
		for _, c := range s.Categories {
			seen[c] = struct{}{}
		}
	}

	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}
