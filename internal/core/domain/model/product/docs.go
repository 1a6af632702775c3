// Package product holds the inventory counters the fulfillment core reconciles.
package product
