package payments

import (
	"context"

	"github.com/stripe/stripe-go/v76"

	"github.com/m04kA/SMC-BookingWizard/internal/integrations/bookingapi"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// API методы REST-клиента, нужные шлюзам
type API interface {
	GetPaymentSettings(ctx context.Context, gatewayID string) (map[string]string, error)
	PreparePayment(ctx context.Context, req bookingapi.PreparePaymentRequest) (*bookingapi.PreparedPayment, error)
}

// IntentConfirmer подтверждает PaymentIntent (paymentintent.Client из stripe-go)
type IntentConfirmer interface {
	Confirm(id string, params *stripe.PaymentIntentConfirmParams) (*stripe.PaymentIntent, error)
}
