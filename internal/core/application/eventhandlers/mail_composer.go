// Package eventhandlers reacts to committed order events: it mails the order
// owner and records an entry in the admin notification feed.
//
// Handlers run on the event bus workers after the unit of work committed.
// Their failures are best effort and never affect the operation that raised
// the event.
package eventhandlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/ports"
)

//go:embed templates/*.html
var templateFS embed.FS

var subjects = map[order.EventKind]string{
	order.EventPlaced:     "Order confirmation",
	order.EventDelivering: "Your order is on its way",
	order.EventCompleted:  "Your order was delivered",
	order.EventCancelled:  "Your order was cancelled",
}

type mailView struct {
	Name    string
	OrderID string
	Amount  string
	Address string
	Status  string
}

// MailComposer renders the HTML mail sent for each order event kind.
type MailComposer struct {
	templates map[order.EventKind]*template.Template
}

func NewMailComposer() (*MailComposer, error) {
	c := &MailComposer{templates: make(map[order.EventKind]*template.Template, len(subjects))}
	for kind := range subjects {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+string(kind)+".html")
		if err != nil {
			return nil, fmt.Errorf("parse mail template %s: %w", kind, err)
		}
		c.templates[kind] = t
	}
	return c, nil
}

// Compose builds the mail for event e addressed to the named recipient.
func (c *MailComposer) Compose(to, name string, e order.Event) (ports.Mail, error) {
	t, ok := c.templates[e.Kind]
	if !ok {
		return ports.Mail{}, fmt.Errorf("no mail template for %s", e.Kind)
	}

	if name == "" {
		name = to
	}
	var body bytes.Buffer
	err := t.ExecuteTemplate(&body, "layout", mailView{
		Name:    name,
		OrderID: e.OrderID.String(),
		Amount:  e.Amount.String(),
		Address: e.Address,
		Status:  e.Status.String(),
	})
	if err != nil {
		return ports.Mail{}, fmt.Errorf("render mail for %s: %w", e.Kind, err)
	}

	return ports.Mail{To: to, Subject: subjects[e.Kind], Body: body.String()}, nil
}
