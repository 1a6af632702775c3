// Package order holds the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: aggregate root created once per checkout, with its immutable lines
//   - Line: an order detail copied from a cart line
//   - Status / Action / TransitionPolicy: the lifecycle and its guard rules
//   - Event: domain events recorded on creation and every transition
//
// Key business rules:
//   - Orders start Pending; Completed and Cancelled are terminal
//   - The total is the exact sum of line prices and is never recomputed
//   - Transitions are permissive by default (any action from any non-terminal
//     state); TransitionPolicy Strict enforces predecessors
package order
