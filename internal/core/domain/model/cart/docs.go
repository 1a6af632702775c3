// Package cart models the per-user shopping cart and the snapshot checkout reads from it.
//
// A Cart owns its Lines (cart details). Checkout never mutates a cart directly:
// it takes a Snapshot, builds the order from it and then deletes the consumed lines.
// Guest checkouts submit a GuestCart inline instead of referencing a stored cart.
package cart
