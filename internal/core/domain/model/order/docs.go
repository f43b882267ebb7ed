// Package order implements the errand order aggregate and its lifecycle.
//
// An order is published Pending with its reward already escrowed, accepted by exactly one
// verified receiver, delivered, and completed once the publisher (or the reconciliation
// sweep) confirms. A Pending order may be cancelled by its publisher or expire. While Accepted
// or Delivered either participant may open a dispute; an approved dispute forces the order to
// Cancelled and decides who receives the escrowed reward.
//
// The aggregate decides whether a transition is allowed and what it records. Moving money is
// left to the escrow ledger, which the application layer runs in the same unit of work.
package order
