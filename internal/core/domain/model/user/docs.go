// Package user models storefront accounts as seen by the order-fulfillment core.
package user
