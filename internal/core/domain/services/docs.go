// Package services holds the domain logic that does not belong to a single aggregate.
//
// The package includes:
//   - PayoutCalculator: decides what a receiver is paid when an order completes
//   - DisputeSettler: turns an approved dispute into a single balance movement
//   - EscrowLedger: moves balance and appends the matching ledger record in one step
//
// EscrowLedger is the only code path allowed to change a user's balance.
package services
