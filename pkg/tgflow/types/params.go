package types

// ParseMode selects how Telegram renders an outgoing message's text. The
// values are the exact names the Bot API expects on the wire.
type ParseMode string

const (
	ParseHTML       ParseMode = "HTML"
	ParseMarkdownV2 ParseMode = "MarkdownV2"
)

// AllowedUpdate names one update kind for getUpdates/setWebhook filtering.
type AllowedUpdate string

const (
	AllowMessage            AllowedUpdate = "message"
	AllowEditedMessage      AllowedUpdate = "edited_message"
	AllowChannelPost        AllowedUpdate = "channel_post"
	AllowEditedChannelPost  AllowedUpdate = "edited_channel_post"
	AllowInlineQuery        AllowedUpdate = "inline_query"
	AllowChosenInlineResult AllowedUpdate = "chosen_inline_result"
	AllowCallbackQuery      AllowedUpdate = "callback_query"
	AllowShippingQuery      AllowedUpdate = "shipping_query"
	AllowPreCheckoutQuery   AllowedUpdate = "pre_checkout_query"
	AllowPoll               AllowedUpdate = "poll"
	AllowPollAnswer         AllowedUpdate = "poll_answer"
	AllowMyChatMember       AllowedUpdate = "my_chat_member"
	AllowChatMember         AllowedUpdate = "chat_member"
)

// BotCommand describes one command for setMyCommands.
type BotCommand struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// ChatAction is a chat action for sendChatAction.
type ChatAction string

const (
	ActionTyping         ChatAction = "typing"
	ActionUploadPhoto    ChatAction = "upload_photo"
	ActionUploadDocument ChatAction = "upload_document"
	ActionRecordVoice    ChatAction = "record_voice"
)

// WebhookInfo describes the current webhook configuration.
type WebhookInfo struct {
	URL                  string          `json:"url"`
	HasCustomCertificate bool            `json:"has_custom_certificate"`
	PendingUpdateCount   int             `json:"pending_update_count"`
	IPAddress            string          `json:"ip_address,omitempty"`
	LastErrorDate        int64           `json:"last_error_date,omitempty"`
	LastErrorMessage     string          `json:"last_error_message,omitempty"`
	MaxConnections       int             `json:"max_connections,omitempty"`
	AllowedUpdates       []AllowedUpdate `json:"allowed_updates,omitempty"`
}
