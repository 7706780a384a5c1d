// Package product provides the Product aggregate for the grocery fulfillment
// core. A product carries a snapshot-friendly unit price and a finite stock
// expressed in whole sale units.
//
// Key business rules:
//   - Stock never goes negative; the only path that decrements it is the
//     inventory ledger's atomic reserve operation
//   - Inactive products cannot be ordered
//   - Pricing follows unit price / unit value * quantity in integer paise
package product
