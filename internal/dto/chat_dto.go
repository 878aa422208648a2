package dto

// HandleMessageRequest is one inbound user message from the transport
// gateway. Commands arrive pre-split: Command holds the name without the
// slash, Args the rest of the line. IsDocument marks text the gateway
// extracted from an uploaded file.
type HandleMessageRequest struct {
	UserId     string `json:"user_id" validate:"required"`
	Text       string `json:"text"`
	Command    string `json:"command,omitempty"`
	Args       string `json:"args,omitempty"`
	IsDocument bool   `json:"is_document,omitempty"`
}

// HandleMessageResponse is what the gateway should deliver back.
// Options, when present, are suggested quick replies. Dropped means the
// message was swallowed on purpose (cooldown) and nothing is sent.
type HandleMessageResponse struct {
	Reply   string   `json:"reply"`
	Options []string `json:"options,omitempty"`
	Dropped bool     `json:"dropped,omitempty"`
}

// WordStats is the per-user writing volume summary.
type WordStats struct {
	TodayWords int64 `json:"today_words"`
	TodayChars int64 `json:"today_chars"`
	WeekWords  int64 `json:"week_words"`
	MonthWords int64 `json:"month_words"`
	TotalWords int64 `json:"total_words"`
}

// PublishIndexCategoryMessage is the payload on the indexing topic.
type PublishIndexCategoryMessage struct {
	Category string `json:"category"`
	Force    bool   `json:"force,omitempty"`
}
