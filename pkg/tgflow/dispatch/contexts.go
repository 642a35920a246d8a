package dispatch

import (
	"context"

	"github.com/jholhewres/tgflow/pkg/tgflow/bot"
	"github.com/jholhewres/tgflow/pkg/tgflow/types"
)

// Update is the context passed to before/after handlers. It carries only
// the bot handle and the update's ID; the payload goes to the subtype
// handler.
type Update struct {
	Bot      *bot.Bot
	UpdateID int64
}

// MessageBase is the envelope shared by every message context.
type MessageBase struct {
	Bot             *bot.Bot
	MessageID       int64
	From            *types.User
	SenderChat      *types.Chat
	Date            int64
	Chat            types.Chat
	Forward         *types.Forward
	ReplyTo         *types.Message
	AuthorSignature string
}

// Send sends a text message to the same chat.
func (m *MessageBase) Send(ctx context.Context, text string) (*types.Message, error) {
	return m.Bot.SendMessage(types.ChatID{ID: m.Chat.ID}, text).Call(ctx)
}

// Reply sends a text message replying to this one.
func (m *MessageBase) Reply(ctx context.Context, text string) (*types.Message, error) {
	return m.Bot.SendMessage(types.ChatID{ID: m.Chat.ID}, text).
		ReplyTo(m.MessageID).
		Call(ctx)
}

func messageBase(b *bot.Bot, msg *types.Message) MessageBase {
	return MessageBase{
		Bot:             b,
		MessageID:       msg.ID,
		From:            msg.From,
		SenderChat:      msg.SenderChat,
		Date:            msg.Date,
		Chat:            msg.Chat,
		Forward:         msg.Forward,
		ReplyTo:         msg.ReplyTo,
		AuthorSignature: msg.AuthorSignature,
	}
}

// Text is the context of a text message. For command handlers the command
// itself has already been trimmed from Text.
type Text struct {
	MessageBase
	Text types.Text
}

// EditedText is the context of an edited text message.
type EditedText struct {
	MessageBase
	EditDate int64
	Text     types.Text
}

// Animation is the context of an animation message.
type Animation struct {
	MessageBase
	Animation types.Animation
	Caption   types.Text
}

// EditedAnimation is the context of an edited animation message.
type EditedAnimation struct {
	MessageBase
	EditDate  int64
	Animation types.Animation
	Caption   types.Text
}

// Audio is the context of an audio message.
type Audio struct {
	MessageBase
	Audio   types.Audio
	Caption types.Text
}

// EditedAudio is the context of an edited audio message.
type EditedAudio struct {
	MessageBase
	EditDate int64
	Audio    types.Audio
	Caption  types.Text
}

// Document is the context of a document message.
type Document struct {
	MessageBase
	Document types.Document
	Caption  types.Text
}

// EditedDocument is the context of an edited document message.
type EditedDocument struct {
	MessageBase
	EditDate int64
	Document types.Document
	Caption  types.Text
}

// Photo is the context of a photo message.
type Photo struct {
	MessageBase
	Photo        []types.PhotoSize
	Caption      types.Text
	MediaGroupID string
}

// EditedPhoto is the context of an edited photo message.
type EditedPhoto struct {
	MessageBase
	EditDate     int64
	Photo        []types.PhotoSize
	Caption      types.Text
	MediaGroupID string
}

// Video is the context of a video message.
type Video struct {
	MessageBase
	Video        types.Video
	Caption      types.Text
	MediaGroupID string
}

// EditedVideo is the context of an edited video message.
type EditedVideo struct {
	MessageBase
	EditDate     int64
	Video        types.Video
	Caption      types.Text
	MediaGroupID string
}

// Location is the context of a location message.
type Location struct {
	MessageBase
	Location types.Location
}

// EditedLocation is the context of an edited (live) location message.
type EditedLocation struct {
	MessageBase
	EditDate int64
	Location types.Location
}

// Voice is the context of a voice message.
type Voice struct {
	MessageBase
	Voice   types.Voice
	Caption types.Text
}

// VideoNote is the context of a video note message.
type VideoNote struct {
	MessageBase
	VideoNote types.VideoNote
}

// Sticker is the context of a sticker message.
type Sticker struct {
	MessageBase
	Sticker types.Sticker
}

// Game is the context of a game message.
type Game struct {
	MessageBase
	Game types.Game
}

// Contact is the context of a shared contact.
type Contact struct {
	MessageBase
	Contact types.Contact
}

// Venue is the context of a venue message.
type Venue struct {
	MessageBase
	Venue types.Venue
}

// Poll is the context of a message carrying a poll.
type Poll struct {
	MessageBase
	Poll types.Poll
}

// Dice is the context of a dice message.
type Dice struct {
	MessageBase
	Dice types.Dice
}

// Invoice is the context of an invoice message.
type Invoice struct {
	MessageBase
	Invoice types.Invoice
}

// Payment is the context of a successful-payment service message.
type Payment struct {
	MessageBase
	Payment types.SuccessfulPayment
}

// Passport is the context of a passport-data message.
type Passport struct {
	MessageBase
	Data types.PassportData
}

// ConnectedWebsite is the context of a website-login service message.
type ConnectedWebsite struct {
	MessageBase
	URL string
}

// NewMembers is the context of a new-members service message.
type NewMembers struct {
	MessageBase
	Members []types.User
}

// LeftMember is the context of a member-left service message.
type LeftMember struct {
	MessageBase
	Member types.User
}

// NewChatTitle is the context of a chat-title-changed service message.
type NewChatTitle struct {
	MessageBase
	Title string
}

// NewChatPhoto is the context of a chat-photo-changed service message.
type NewChatPhoto struct {
	MessageBase
	Photo []types.PhotoSize
}

// DeletedChatPhoto is the context of a chat-photo-deleted service message.
type DeletedChatPhoto struct {
	MessageBase
}

// CreatedGroup is the context of a group-created service message.
type CreatedGroup struct {
	MessageBase
}

// Migration is the context of a group-to-supergroup migration. OldID is
// the ID the chat had as a plain group.
type Migration struct {
	MessageBase
	OldID int64
}

// PinnedMessage is the context of a message-pinned service message.
type PinnedMessage struct {
	MessageBase
	Pinned *types.Message
}

// ProximityAlert is the context of a proximity-alert service message.
type ProximityAlert struct {
	MessageBase
	Alert types.ProximityAlertTriggered
}

// VoiceChatScheduled is the context of a scheduled voice chat.
type VoiceChatScheduled struct {
	MessageBase
	StartDate int64
}

// VoiceChatStarted is the context of a started voice chat.
type VoiceChatStarted struct {
	MessageBase
}

// VoiceChatEnded is the context of an ended voice chat.
type VoiceChatEnded struct {
	MessageBase
	Duration int
}

// VoiceChatParticipantsInvited is the context of a voice-chat invitation.
type VoiceChatParticipantsInvited struct {
	MessageBase
	Users []types.User
}

// AutoDeleteTimerChanged is the context of an auto-delete-timer change.
type AutoDeleteTimerChanged struct {
	MessageBase
	Timeout int
}

// InlineQuery is the context of an incoming inline query.
type InlineQuery struct {
	Bot   *bot.Bot
	Query types.InlineQuery
}

// ChosenInline is the context of a chosen inline result.
type ChosenInline struct {
	Bot    *bot.Bot
	Result types.ChosenInlineResult
}

// callbackBase is shared by the four callback contexts.
type callbackBase struct {
	Bot          *bot.Bot
	ID           string
	From         types.User
	ChatInstance string
}

// Answer acknowledges the callback query without user-visible effect.
func (c *callbackBase) Answer(ctx context.Context) error {
	return c.Bot.AnswerCallbackQuery(c.ID).Call(ctx)
}

// Notify acknowledges the callback query with a toast notification.
func (c *callbackBase) Notify(ctx context.Context, text string) error {
	return c.Bot.AnswerCallbackQuery(c.ID).Text(text).Call(ctx)
}

// MessageDataCallback is a data callback fired from a regular message.
type MessageDataCallback struct {
	callbackBase
	Message types.Message
	Data    string
}

// InlineDataCallback is a data callback fired from an inline message.
type InlineDataCallback struct {
	callbackBase
	InlineMessageID string
	Data            string
}

// MessageGameCallback is a game callback fired from a regular message.
type MessageGameCallback struct {
	callbackBase
	Message   types.Message
	ShortName string
}

// InlineGameCallback is a game callback fired from an inline message.
type InlineGameCallback struct {
	callbackBase
	InlineMessageID string
	ShortName       string
}

// Shipping is the context of a shipping query.
type Shipping struct {
	Bot   *bot.Bot
	Query types.ShippingQuery
}

// PreCheckout is the context of a pre-checkout query.
type PreCheckout struct {
	Bot   *bot.Bot
	Query types.PreCheckoutQuery
}

// UpdatedPoll is the context of a poll state change.
type UpdatedPoll struct {
	Bot  *bot.Bot
	Poll types.Poll
}

// PollAnswer is the context of a changed poll answer.
type PollAnswer struct {
	Bot    *bot.Bot
	Answer types.PollAnswer
}

// MyChatMember is the context of a change of the bot's own membership.
type MyChatMember struct {
	Bot    *bot.Bot
	Change types.ChatMemberUpdated
}

// ChatMember is the context of another user's membership change.
type ChatMember struct {
	Bot    *bot.Bot
	Change types.ChatMemberUpdated
}

// Unhandled is the context passed to unhandled handlers; it carries the
// whole update.
type Unhandled struct {
	Bot    *bot.Bot
	Update types.Update
}
