// Package kernel holds the primitives shared by every storefront aggregate:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Money: exact non-negative amounts backed by github.com/shopspring/decimal
//   - DomainEvent / EventSource: contracts between aggregates and the unit of work
//
// Values are immutable and safe for concurrent use.
package kernel
