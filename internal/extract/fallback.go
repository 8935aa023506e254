package extract

import (
	"context"

	"github.com/daybook-dev/daybook/internal/model"
)

// Fallback is the boundary contract for a secondary, typically AI-backed,
// payment-text parser consulted when the rule cascade returns low
// confidence. Implementations live outside this package; they are expected
// to be slow, fallible, and cancellable, so they take a context and callers
// should attach their own deadline and retry policy.
type Fallback interface {
	ParsePayment(ctx context.Context, text string) (model.PaymentInfo, error)
}
