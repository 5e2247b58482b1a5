// Package promo manages promotional discount codes and their usage
// ledger. Usage is recorded per payment reference, which makes ledger
// application idempotent under webhook replays.
package promo
