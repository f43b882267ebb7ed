// Package kernel holds the value objects shared by every aggregate of the errand marketplace:
// identifiers and fixed-point money.
package kernel
