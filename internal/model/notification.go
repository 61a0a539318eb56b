package model

// Notification is one inbox entry for an item's owner, created on purchase.
// Read is persisted but no operation toggles it yet.
type Notification struct {
	Owner   string `json:"owner"`
	Message string `json:"message"`
	Read    bool   `json:"read"`
}
