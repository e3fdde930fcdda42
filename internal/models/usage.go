// Package models defines data structures and domain types.
package models

// UnlabeledService is the service label given to records whose bot cell is
// NULL, keeping them apart from records labelled with an empty string.
const UnlabeledService = "(unlabeled)"

// UsageRecord is one bot interaction read from the requests table.
// Identifiers are kept in their textual form so records from stores with
// INTEGER or TEXT columns compare the same way.
type UsageRecord struct {
	ID      string
	ChatID  string
	Service string

	// HasChatID is false when the chat_id cell was NULL.
	HasChatID bool
}
