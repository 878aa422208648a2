package dto

// StageBroadcastRequest stages a message for broadcast; the operator
// confirms it in their own chat before anything is published.
type StageBroadcastRequest struct {
	Text string `json:"text" validate:"required,min=1"`
}

// ReindexRequest asks the indexing pipeline to rebuild collections.
// An empty Category means every collection.
type ReindexRequest struct {
	Category string `json:"category,omitempty"`
	Force    bool   `json:"force,omitempty"`
}
