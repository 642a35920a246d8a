package state

import (
	"context"

	"github.com/jholhewres/tgflow/pkg/tgflow/dispatch"
)

// Handler is a stateful user callback: the shared state arrives as the
// third argument of every invocation.
type Handler[T, S any] func(ctx context.Context, c *T, state S)

// EventLoop wraps a dispatch.EventLoop so that every handler receives a
// shared state value alongside its context. The state is passed as-is:
// pointer-shaped states are shared by reference, and any interior
// mutability discipline (mutexes, atomics) is the caller's to choose.
type EventLoop[S any] struct {
	inner *dispatch.EventLoop
	state S
}

// NewEventLoop wraps the given registry with a shared state value.
func NewEventLoop[S any](inner *dispatch.EventLoop, state S) *EventLoop[S] {
	return &EventLoop[S]{inner: inner, state: state}
}

// State returns the shared state value.
func (l *EventLoop[S]) State() S { return l.state }

// Stateless returns the wrapped event loop. Handlers already registered
// keep receiving the state.
func (l *EventLoop[S]) Stateless() *dispatch.EventLoop { return l.inner }

// SetUsername forwards to the wrapped registry.
func (l *EventLoop[S]) SetUsername(username string) { l.inner.SetUsername(username) }

// FetchUsername forwards to the wrapped registry.
func (l *EventLoop[S]) FetchUsername(ctx context.Context) error {
	return l.inner.FetchUsername(ctx)
}

// Polling starts polling configuration.
func (l *EventLoop[S]) Polling() *dispatch.Polling { return l.inner.Polling() }

// Webhook starts webhook configuration.
func (l *EventLoop[S]) Webhook(publicURL string, port int) *dispatch.Webhook {
	return l.inner.Webhook(publicURL, port)
}

// adapt closes the shared state into a stateless handler.
func adapt[T, S any](state S, h Handler[T, S]) dispatch.Handler[T] {
	return func(ctx context.Context, c *T) { h(ctx, c, state) }
}

// Command registers a stateful handler for /name.
func (l *EventLoop[S]) Command(name string, h Handler[dispatch.Text, S]) {
	l.inner.Command(name, adapt(l.state, h))
}

// CommandWithDescription registers a stateful command handler with a
// description for setMyCommands.
func (l *EventLoop[S]) CommandWithDescription(name, description string, h Handler[dispatch.Text, S]) {
	l.inner.CommandWithDescription(name, description, adapt(l.state, h))
}

// Start registers a stateful handler for the /start command.
func (l *EventLoop[S]) Start(h Handler[dispatch.Text, S]) { l.Command("start", h) }

// Help registers a stateful handler for the /help command.
func (l *EventLoop[S]) Help(h Handler[dispatch.Text, S]) { l.Command("help", h) }

// Settings registers a stateful handler for the /settings command.
func (l *EventLoop[S]) Settings(h Handler[dispatch.Text, S]) { l.Command("settings", h) }

// EditedCommand registers a stateful handler for edits of /name messages.
func (l *EventLoop[S]) EditedCommand(name string, h Handler[dispatch.EditedText, S]) {
	l.inner.EditedCommand(name, adapt(l.state, h))
}

// BeforeUpdate registers a stateful before-update handler.
func (l *EventLoop[S]) BeforeUpdate(h Handler[dispatch.Update, S]) {
	l.inner.BeforeUpdate(adapt(l.state, h))
}

// AfterUpdate registers a stateful after-update handler.
func (l *EventLoop[S]) AfterUpdate(h Handler[dispatch.Update, S]) {
	l.inner.AfterUpdate(adapt(l.state, h))
}

// Text registers a stateful handler for plain text messages.
func (l *EventLoop[S]) Text(h Handler[dispatch.Text, S]) {
	l.inner.Text(adapt(l.state, h))
}

// EditedText registers a stateful handler for edited text messages.
func (l *EventLoop[S]) EditedText(h Handler[dispatch.EditedText, S]) {
	l.inner.EditedText(adapt(l.state, h))
}

// Animation registers a stateful handler for animation messages.
func (l *EventLoop[S]) Animation(h Handler[dispatch.Animation, S]) {
	l.inner.Animation(adapt(l.state, h))
}

// EditedAnimation registers a stateful handler for edited animations.
func (l *EventLoop[S]) EditedAnimation(h Handler[dispatch.EditedAnimation, S]) {
	l.inner.EditedAnimation(adapt(l.state, h))
}

// Audio registers a stateful handler for audio messages.
func (l *EventLoop[S]) Audio(h Handler[dispatch.Audio, S]) {
	l.inner.Audio(adapt(l.state, h))
}

// EditedAudio registers a stateful handler for edited audio messages.
func (l *EventLoop[S]) EditedAudio(h Handler[dispatch.EditedAudio, S]) {
	l.inner.EditedAudio(adapt(l.state, h))
}

// Document registers a stateful handler for document messages.
func (l *EventLoop[S]) Document(h Handler[dispatch.Document, S]) {
	l.inner.Document(adapt(l.state, h))
}

// EditedDocument registers a stateful handler for edited documents.
func (l *EventLoop[S]) EditedDocument(h Handler[dispatch.EditedDocument, S]) {
	l.inner.EditedDocument(adapt(l.state, h))
}

// Photo registers a stateful handler for photo messages.
func (l *EventLoop[S]) Photo(h Handler[dispatch.Photo, S]) {
	l.inner.Photo(adapt(l.state, h))
}

// EditedPhoto registers a stateful handler for edited photo messages.
func (l *EventLoop[S]) EditedPhoto(h Handler[dispatch.EditedPhoto, S]) {
	l.inner.EditedPhoto(adapt(l.state, h))
}

// Video registers a stateful handler for video messages.
func (l *EventLoop[S]) Video(h Handler[dispatch.Video, S]) {
	l.inner.Video(adapt(l.state, h))
}

// EditedVideo registers a stateful handler for edited video messages.
func (l *EventLoop[S]) EditedVideo(h Handler[dispatch.EditedVideo, S]) {
	l.inner.EditedVideo(adapt(l.state, h))
}

// Location registers a stateful handler for location messages.
func (l *EventLoop[S]) Location(h Handler[dispatch.Location, S]) {
	l.inner.Location(adapt(l.state, h))
}

// EditedLocation registers a stateful handler for live-location updates.
func (l *EventLoop[S]) EditedLocation(h Handler[dispatch.EditedLocation, S]) {
	l.inner.EditedLocation(adapt(l.state, h))
}

// Voice registers a stateful handler for voice messages.
func (l *EventLoop[S]) Voice(h Handler[dispatch.Voice, S]) {
	l.inner.Voice(adapt(l.state, h))
}

// VideoNote registers a stateful handler for video notes.
func (l *EventLoop[S]) VideoNote(h Handler[dispatch.VideoNote, S]) {
	l.inner.VideoNote(adapt(l.state, h))
}

// Sticker registers a stateful handler for stickers.
func (l *EventLoop[S]) Sticker(h Handler[dispatch.Sticker, S]) {
	l.inner.Sticker(adapt(l.state, h))
}

// Game registers a stateful handler for game messages.
func (l *EventLoop[S]) Game(h Handler[dispatch.Game, S]) {
	l.inner.Game(adapt(l.state, h))
}

// Contact registers a stateful handler for shared contacts.
func (l *EventLoop[S]) Contact(h Handler[dispatch.Contact, S]) {
	l.inner.Contact(adapt(l.state, h))
}

// Venue registers a stateful handler for venues.
func (l *EventLoop[S]) Venue(h Handler[dispatch.Venue, S]) {
	l.inner.Venue(adapt(l.state, h))
}

// Poll registers a stateful handler for messages carrying a poll.
func (l *EventLoop[S]) Poll(h Handler[dispatch.Poll, S]) {
	l.inner.Poll(adapt(l.state, h))
}

// Dice registers a stateful handler for dice messages.
func (l *EventLoop[S]) Dice(h Handler[dispatch.Dice, S]) {
	l.inner.Dice(adapt(l.state, h))
}

// Invoice registers a stateful handler for invoices.
func (l *EventLoop[S]) Invoice(h Handler[dispatch.Invoice, S]) {
	l.inner.Invoice(adapt(l.state, h))
}

// Payment registers a stateful handler for successful payments.
func (l *EventLoop[S]) Payment(h Handler[dispatch.Payment, S]) {
	l.inner.Payment(adapt(l.state, h))
}

// Passport registers a stateful handler for passport data.
func (l *EventLoop[S]) Passport(h Handler[dispatch.Passport, S]) {
	l.inner.Passport(adapt(l.state, h))
}

// ConnectedWebsite registers a stateful handler for website logins.
func (l *EventLoop[S]) ConnectedWebsite(h Handler[dispatch.ConnectedWebsite, S]) {
	l.inner.ConnectedWebsite(adapt(l.state, h))
}

// NewMembers registers a stateful handler for members joining.
func (l *EventLoop[S]) NewMembers(h Handler[dispatch.NewMembers, S]) {
	l.inner.NewMembers(adapt(l.state, h))
}

// LeftMember registers a stateful handler for a member leaving.
func (l *EventLoop[S]) LeftMember(h Handler[dispatch.LeftMember, S]) {
	l.inner.LeftMember(adapt(l.state, h))
}

// NewChatTitle registers a stateful handler for chat title changes.
func (l *EventLoop[S]) NewChatTitle(h Handler[dispatch.NewChatTitle, S]) {
	l.inner.NewChatTitle(adapt(l.state, h))
}

// NewChatPhoto registers a stateful handler for chat photo changes.
func (l *EventLoop[S]) NewChatPhoto(h Handler[dispatch.NewChatPhoto, S]) {
	l.inner.NewChatPhoto(adapt(l.state, h))
}

// DeletedChatPhoto registers a stateful handler for photo deletions.
func (l *EventLoop[S]) DeletedChatPhoto(h Handler[dispatch.DeletedChatPhoto, S]) {
	l.inner.DeletedChatPhoto(adapt(l.state, h))
}

// CreatedGroup registers a stateful handler for group creation.
func (l *EventLoop[S]) CreatedGroup(h Handler[dispatch.CreatedGroup, S]) {
	l.inner.CreatedGroup(adapt(l.state, h))
}

// Migration registers a stateful handler for migrations.
func (l *EventLoop[S]) Migration(h Handler[dispatch.Migration, S]) {
	l.inner.Migration(adapt(l.state, h))
}

// PinnedMessage registers a stateful handler for pinned messages.
func (l *EventLoop[S]) PinnedMessage(h Handler[dispatch.PinnedMessage, S]) {
	l.inner.PinnedMessage(adapt(l.state, h))
}

// ProximityAlert registers a stateful handler for proximity alerts.
func (l *EventLoop[S]) ProximityAlert(h Handler[dispatch.ProximityAlert, S]) {
	l.inner.ProximityAlert(adapt(l.state, h))
}

// VoiceChatScheduled registers a stateful handler for scheduled voice
// chats.
func (l *EventLoop[S]) VoiceChatScheduled(h Handler[dispatch.VoiceChatScheduled, S]) {
	l.inner.VoiceChatScheduled(adapt(l.state, h))
}

// VoiceChatStarted registers a stateful handler for started voice chats.
func (l *EventLoop[S]) VoiceChatStarted(h Handler[dispatch.VoiceChatStarted, S]) {
	l.inner.VoiceChatStarted(adapt(l.state, h))
}

// VoiceChatEnded registers a stateful handler for ended voice chats.
func (l *EventLoop[S]) VoiceChatEnded(h Handler[dispatch.VoiceChatEnded, S]) {
	l.inner.VoiceChatEnded(adapt(l.state, h))
}

// VoiceChatParticipantsInvited registers a stateful handler for
// voice-chat invitations.
func (l *EventLoop[S]) VoiceChatParticipantsInvited(h Handler[dispatch.VoiceChatParticipantsInvited, S]) {
	l.inner.VoiceChatParticipantsInvited(adapt(l.state, h))
}

// AutoDeleteTimerChanged registers a stateful handler for auto-delete
// timer changes.
func (l *EventLoop[S]) AutoDeleteTimerChanged(h Handler[dispatch.AutoDeleteTimerChanged, S]) {
	l.inner.AutoDeleteTimerChanged(adapt(l.state, h))
}

// InlineQuery registers a stateful handler for inline queries.
func (l *EventLoop[S]) InlineQuery(h Handler[dispatch.InlineQuery, S]) {
	l.inner.InlineQuery(adapt(l.state, h))
}

// ChosenInline registers a stateful handler for chosen inline results.
func (l *EventLoop[S]) ChosenInline(h Handler[dispatch.ChosenInline, S]) {
	l.inner.ChosenInline(adapt(l.state, h))
}

// MessageDataCallback registers a stateful handler for data callbacks
// from regular messages.
func (l *EventLoop[S]) MessageDataCallback(h Handler[dispatch.MessageDataCallback, S]) {
	l.inner.MessageDataCallback(adapt(l.state, h))
}

// InlineDataCallback registers a stateful handler for data callbacks from
// inline messages.
func (l *EventLoop[S]) InlineDataCallback(h Handler[dispatch.InlineDataCallback, S]) {
	l.inner.InlineDataCallback(adapt(l.state, h))
}

// MessageGameCallback registers a stateful handler for game callbacks
// from regular messages.
func (l *EventLoop[S]) MessageGameCallback(h Handler[dispatch.MessageGameCallback, S]) {
	l.inner.MessageGameCallback(adapt(l.state, h))
}

// InlineGameCallback registers a stateful handler for game callbacks from
// inline messages.
func (l *EventLoop[S]) InlineGameCallback(h Handler[dispatch.InlineGameCallback, S]) {
	l.inner.InlineGameCallback(adapt(l.state, h))
}

// Shipping registers a stateful handler for shipping queries.
func (l *EventLoop[S]) Shipping(h Handler[dispatch.Shipping, S]) {
	l.inner.Shipping(adapt(l.state, h))
}

// PreCheckout registers a stateful handler for pre-checkout queries.
func (l *EventLoop[S]) PreCheckout(h Handler[dispatch.PreCheckout, S]) {
	l.inner.PreCheckout(adapt(l.state, h))
}

// UpdatedPoll registers a stateful handler for poll state changes.
func (l *EventLoop[S]) UpdatedPoll(h Handler[dispatch.UpdatedPoll, S]) {
	l.inner.UpdatedPoll(adapt(l.state, h))
}

// PollAnswer registers a stateful handler for poll answer changes.
func (l *EventLoop[S]) PollAnswer(h Handler[dispatch.PollAnswer, S]) {
	l.inner.PollAnswer(adapt(l.state, h))
}

// MyChatMember registers a stateful handler for the bot's own membership
// changes.
func (l *EventLoop[S]) MyChatMember(h Handler[dispatch.MyChatMember, S]) {
	l.inner.MyChatMember(adapt(l.state, h))
}

// ChatMember registers a stateful handler for other users' membership
// changes.
func (l *EventLoop[S]) ChatMember(h Handler[dispatch.ChatMember, S]) {
	l.inner.ChatMember(adapt(l.state, h))
}

// PollingError registers a polling-error handler.
func (l *EventLoop[S]) PollingError(h dispatch.ErrorHandler) {
	l.inner.PollingError(h)
}

// Unhandled registers a stateful handler for unmatched updates.
func (l *EventLoop[S]) Unhandled(h Handler[dispatch.Unhandled, S]) {
	l.inner.Unhandled(adapt(l.state, h))
}
