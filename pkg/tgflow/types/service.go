package types

import "encoding/json"

// ProximityAlertTriggered is fired when a user comes within another user's
// proximity alert radius.
type ProximityAlertTriggered struct {
	Traveler User `json:"traveler"`
	Watcher  User `json:"watcher"`
	Distance int  `json:"distance"`
}

// VoiceChatScheduled announces a scheduled voice chat.
type VoiceChatScheduled struct {
	StartDate int64 `json:"start_date"`
}

// VoiceChatStarted marks the start of a voice chat. It carries no fields.
type VoiceChatStarted struct{}

// VoiceChatEnded marks the end of a voice chat.
type VoiceChatEnded struct {
	Duration int `json:"duration"`
}

// VoiceChatParticipantsInvited lists users invited to a voice chat.
type VoiceChatParticipantsInvited struct {
	Users []User `json:"users"`
}

// MessageAutoDeleteTimerChanged reports a change of the chat's auto-delete
// timer.
type MessageAutoDeleteTimerChanged struct {
	MessageAutoDeleteTime int `json:"message_auto_delete_time"`
}

// PassportData carries the raw Telegram Passport payload. Decryption is
// out of this module's scope, so the data is kept opaque.
type PassportData = json.RawMessage
