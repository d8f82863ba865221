package interfaces

import "context"

// DeliveryService hands a finished report document to the outbound delivery
// collaborator (webhook). Transport and recipient handling beyond the POST
// contract are owned by the collaborator.
type DeliveryService interface {
	// Send delivers the HTML document to the recipient list.
	Send(ctx context.Context, to, subject, html string) error

	// IsConfigured reports whether a delivery endpoint is configured.
	IsConfigured() bool
}
