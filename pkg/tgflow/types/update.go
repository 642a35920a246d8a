// Package types models the Telegram Bot API payloads the engine
// discriminates on: updates, messages, callback queries and their
// supporting objects. Polymorphic fields are decoded structurally, by key
// presence, into tagged Go variants; anything the decoder does not
// recognize collapses into an Unknown variant instead of failing, because
// a failed decode would stall the update offset.
package types

import "encoding/json"

// UpdateKind is the payload of one update. Every variant the Bot API can
// deliver has a concrete type here; Unknown absorbs the rest.
type UpdateKind interface {
	updateKind()
}

// NewMessage is a new incoming message of any content kind.
type NewMessage struct {
	Message Message
}

// EditedMessage is a new version of a message the bot already saw.
type EditedMessage struct {
	Message Message
}

// ChannelPost is a new post in a channel.
type ChannelPost struct {
	Message Message
}

// EditedChannelPost is a new version of a channel post.
type EditedChannelPost struct {
	Message Message
}

// InlineQueryUpdate is a new incoming inline query.
type InlineQueryUpdate struct {
	Query InlineQuery
}

// ChosenInlineResultUpdate reports the inline result a user chose.
type ChosenInlineResultUpdate struct {
	Result ChosenInlineResult
}

// CallbackQueryUpdate is a new incoming callback query.
type CallbackQueryUpdate struct {
	Query CallbackQuery
}

// ShippingQueryUpdate is a new incoming shipping query.
type ShippingQueryUpdate struct {
	Query ShippingQuery
}

// PreCheckoutQueryUpdate is a new incoming pre-checkout query.
type PreCheckoutQueryUpdate struct {
	Query PreCheckoutQuery
}

// PollStateUpdate is a new state of a poll the bot sent or stopped.
type PollStateUpdate struct {
	Poll Poll
}

// PollAnswerUpdate is a changed answer in a non-anonymous poll.
type PollAnswerUpdate struct {
	Answer PollAnswer
}

// MyChatMemberUpdate reports a change of the bot's own membership status.
type MyChatMemberUpdate struct {
	Change ChatMemberUpdated
}

// ChatMemberStatusUpdate reports a membership change of another user.
type ChatMemberStatusUpdate struct {
	Change ChatMemberUpdated
}

// Unknown is an update kind this module does not know about. It is routed
// to unhandled handlers, never treated as an error.
type Unknown struct{}

func (NewMessage) updateKind()               {}
func (EditedMessage) updateKind()            {}
func (ChannelPost) updateKind()              {}
func (EditedChannelPost) updateKind()        {}
func (InlineQueryUpdate) updateKind()        {}
func (ChosenInlineResultUpdate) updateKind() {}
func (CallbackQueryUpdate) updateKind()      {}
func (ShippingQueryUpdate) updateKind()      {}
func (PreCheckoutQueryUpdate) updateKind()   {}
func (PollStateUpdate) updateKind()          {}
func (PollAnswerUpdate) updateKind()         {}
func (MyChatMemberUpdate) updateKind()       {}
func (ChatMemberStatusUpdate) updateKind()   {}
func (Unknown) updateKind()                  {}

// Update is one envelope delivered by the Bot API: a strictly increasing
// ID plus exactly one event.
type Update struct {
	ID   int64
	Kind UpdateKind
}

func (u *Update) UnmarshalJSON(data []byte) error {
	var raw struct {
		UpdateID           int64               `json:"update_id"`
		Message            *Message            `json:"message"`
		EditedMessage      *Message            `json:"edited_message"`
		ChannelPost        *Message            `json:"channel_post"`
		EditedChannelPost  *Message            `json:"edited_channel_post"`
		InlineQuery        *InlineQuery        `json:"inline_query"`
		ChosenInlineResult *ChosenInlineResult `json:"chosen_inline_result"`
		CallbackQuery      *CallbackQuery      `json:"callback_query"`
		ShippingQuery      *ShippingQuery      `json:"shipping_query"`
		PreCheckoutQuery   *PreCheckoutQuery   `json:"pre_checkout_query"`
		Poll               *Poll               `json:"poll"`
		PollAnswer         *PollAnswer         `json:"poll_answer"`
		MyChatMember       *ChatMemberUpdated  `json:"my_chat_member"`
		ChatMember         *ChatMemberUpdated  `json:"chat_member"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	u.ID = raw.UpdateID

	switch {
	case raw.Message != nil:
		u.Kind = NewMessage{Message: *raw.Message}
	case raw.EditedMessage != nil:
		u.Kind = EditedMessage{Message: *raw.EditedMessage}
	case raw.ChannelPost != nil:
		u.Kind = ChannelPost{Message: *raw.ChannelPost}
	case raw.EditedChannelPost != nil:
		u.Kind = EditedChannelPost{Message: *raw.EditedChannelPost}
	case raw.InlineQuery != nil:
		u.Kind = InlineQueryUpdate{Query: *raw.InlineQuery}
	case raw.ChosenInlineResult != nil:
		u.Kind = ChosenInlineResultUpdate{Result: *raw.ChosenInlineResult}
	case raw.CallbackQuery != nil:
		u.Kind = CallbackQueryUpdate{Query: *raw.CallbackQuery}
	case raw.ShippingQuery != nil:
		u.Kind = ShippingQueryUpdate{Query: *raw.ShippingQuery}
	case raw.PreCheckoutQuery != nil:
		u.Kind = PreCheckoutQueryUpdate{Query: *raw.PreCheckoutQuery}
	case raw.Poll != nil:
		u.Kind = PollStateUpdate{Poll: *raw.Poll}
	case raw.PollAnswer != nil:
		u.Kind = PollAnswerUpdate{Answer: *raw.PollAnswer}
	case raw.MyChatMember != nil:
		u.Kind = MyChatMemberUpdate{Change: *raw.MyChatMember}
	case raw.ChatMember != nil:
		u.Kind = ChatMemberStatusUpdate{Change: *raw.ChatMember}
	default:
		u.Kind = Unknown{}
	}

	return nil
}
