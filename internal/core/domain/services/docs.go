// Package services provides the domain services of the order-fulfillment core:
// logic that spans several aggregates or needs collaborators, and so does not
// belong to a single aggregate root.
//
// The package includes:
//   - OrderBuilder: turns a cart snapshot into a Pending order
//   - InventoryAdjuster: decides which stock movements a transition causes
//   - GuestProvisioner: creates (or reuses) the account and cart behind a guest checkout
package services
