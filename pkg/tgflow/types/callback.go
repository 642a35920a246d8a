package types

import (
	"encoding/json"
	"errors"
)

// CallbackOrigin tells where a callback query came from: a regular message
// the bot sent, or an inline-mode message identified only by an opaque ID.
type CallbackOrigin interface {
	callbackOrigin()
}

// MessageOrigin is the origin of a callback fired from a regular message.
type MessageOrigin struct {
	Message Message
}

// InlineOrigin is the origin of a callback fired from an inline message.
type InlineOrigin struct {
	InlineMessageID string
}

func (MessageOrigin) callbackOrigin() {}
func (InlineOrigin) callbackOrigin()  {}

// CallbackKind is the payload of a callback query: either data attached to
// an inline button, or a request to open a game.
type CallbackKind interface {
	callbackKind()
}

// DataCallback carries the callback_data of the pressed button.
type DataCallback struct {
	Data string
}

// GameCallback asks the bot to open the game with the given short name.
type GameCallback struct {
	ShortName string
}

func (DataCallback) callbackKind() {}
func (GameCallback) callbackKind() {}

// CallbackQuery is an incoming callback query. Origin and Kind are
// discriminated structurally: exactly one of message/inline_message_id and
// exactly one of data/game_short_name must be present.
type CallbackQuery struct {
	ID           string
	From         User
	Origin       CallbackOrigin
	ChatInstance string
	Kind         CallbackKind
}

func (q *CallbackQuery) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID              string   `json:"id"`
		From            User     `json:"from"`
		Message         *Message `json:"message"`
		InlineMessageID *string  `json:"inline_message_id"`
		ChatInstance    string   `json:"chat_instance"`
		Data            *string  `json:"data"`
		GameShortName   *string  `json:"game_short_name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	q.ID = raw.ID
	q.From = raw.From
	q.ChatInstance = raw.ChatInstance

	switch {
	case raw.Message != nil:
		q.Origin = MessageOrigin{Message: *raw.Message}
	case raw.InlineMessageID != nil:
		q.Origin = InlineOrigin{InlineMessageID: *raw.InlineMessageID}
	default:
		return errors.New("callback query has neither message nor inline_message_id")
	}

	switch {
	case raw.Data != nil:
		q.Kind = DataCallback{Data: *raw.Data}
	case raw.GameShortName != nil:
		q.Kind = GameCallback{ShortName: *raw.GameShortName}
	default:
		return errors.New("callback query has neither data nor game_short_name")
	}

	return nil
}
