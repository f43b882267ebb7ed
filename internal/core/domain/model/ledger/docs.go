// Package ledger holds the append-only balance record that accompanies every balance change.
package ledger
