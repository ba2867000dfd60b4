package notifications

import (
	"context"
	"errors"
	"fmt"

	"svitlo/internal/domain/orders"
	"svitlo/internal/mailer"
)

// MailAdapter is the fallback order channel: the same summary, delivered to
// the manager inboxes over SMTP.
type MailAdapter struct {
	client mailer.Client
	emails []string
}

func NewMailAdapter(client mailer.Client, managerEmails []string) *MailAdapter {
	return &MailAdapter{client: client, emails: managerEmails}
}

type mailLine struct {
	Name      string
	Quantity  int
	UnitPrice string
}

type mailOrder struct {
	ShortRef string
	Customer orders.CustomerInfo
	Items    []mailLine
	Total    string
}

func (a *MailAdapter) NotifyOrderPlaced(_ context.Context, o *orders.Order) error {
	if len(a.emails) == 0 {
		return errors.New("no manager emails configured")
	}

	data := mailOrder{
		ShortRef: orders.ShortRef(o.OrderNumber),
		Customer: o.Customer,
		Total:    formatUAH(o.TotalCents),
	}
	for _, li := range o.Items {
		data.Items = append(data.Items, mailLine{
			Name:      li.Name,
			Quantity:  li.Quantity,
			UnitPrice: formatUAH(li.UnitPriceCents),
		})
	}

	var errs []error
	for _, email := range a.emails {
		if _, err := a.client.Send(mailer.OrderPlacedTemplate, "manager", email, data); err != nil {
			errs = append(errs, fmt.Errorf("mail %s: %w", email, err))
		}
	}
	return errors.Join(errs...)
}
