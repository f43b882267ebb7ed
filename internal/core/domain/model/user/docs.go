// Package user models the marketplace participant as seen by the order core: a profile
// with a delivery address, a verification flag that gates publishing and accepting, a role,
// and the prepaid balance that only the escrow ledger may change.
package user
