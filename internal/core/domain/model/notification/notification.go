package notification

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned for a Notification built outside its constructors.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

// Notification is an admin-facing message shown in the live feed. It is unread
// until an operator marks it, and unbroadcast until it has been pushed to the
// connected viewers at least once.
type Notification struct {
	id          kernel.UUID
	message     string
	createdAt   time.Time
	read        bool
	broadcastAt *time.Time

	isConstructed bool
}

func NewNotification(id kernel.UUID, message string, createdAt time.Time) (*Notification, error) {
	return RestoreNotification(id, message, createdAt, false, nil)
}

func RestoreNotification(
	id kernel.UUID,
	message string,
	createdAt time.Time,
	read bool,
	broadcastAt *time.Time,
) (*Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}

	return &Notification{
		id:            id,
		message:       message,
		createdAt:     createdAt,
		read:          read,
		broadcastAt:   broadcastAt,
		isConstructed: true,
	}, nil
}

func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// MarkRead is idempotent.
func (n *Notification) MarkRead() {
	n.read = true
}

// MarkBroadcast stamps the first successful broadcast; later calls keep the original time.
func (n *Notification) MarkBroadcast(at time.Time) {
	if n.broadcastAt != nil {
		return
	}
	n.broadcastAt = &at
}

func (n *Notification) IsBroadcast() bool { return n.broadcastAt != nil }

func (n *Notification) ID() kernel.UUID         { return n.id }
func (n *Notification) Message() string         { return n.message }
func (n *Notification) CreatedAt() time.Time    { return n.createdAt }
func (n *Notification) Read() bool              { return n.read }
func (n *Notification) BroadcastAt() *time.Time { return n.broadcastAt }
