// Package dispatch is the engine's core: the handler registry, the
// dispatcher that routes one decoded update to the right handler list,
// and the polling and webhook drivers that feed it.
//
// Registration is append-only and happens before a driver is started;
// after that the registry is read-only and safe to share. Handlers for
// one subtype start in registration order; before-update handlers
// complete before any subtype handler runs, and after-update handlers run
// once every subtype handler has returned.
package dispatch

import (
	"context"
	"log/slog"

	"github.com/jholhewres/tgflow/pkg/tgflow/bot"
	"github.com/jholhewres/tgflow/pkg/tgflow/types"
)

// Handler is a user callback for one update subtype.
type Handler[T any] func(ctx context.Context, c *T)

// ErrorHandler receives polling-cycle errors.
type ErrorHandler func(err error)

// EventLoop holds the handler registry and dispatches updates to it.
type EventLoop struct {
	bot    *bot.Bot
	logger *slog.Logger

	// username gates /command@username addressing. Empty means commands
	// addressed to any explicit username are dropped.
	username string

	// commandDescriptions feeds setMyCommands during driver startup.
	commandDescriptions []types.BotCommand

	commands       map[string][]Handler[Text]
	editedCommands map[string][]Handler[EditedText]

	beforeUpdate []Handler[Update]
	afterUpdate  []Handler[Update]

	text            []Handler[Text]
	editedText      []Handler[EditedText]
	animation       []Handler[Animation]
	editedAnimation []Handler[EditedAnimation]
	audio           []Handler[Audio]
	editedAudio     []Handler[EditedAudio]
	document        []Handler[Document]
	editedDocument  []Handler[EditedDocument]
	photo           []Handler[Photo]
	editedPhoto     []Handler[EditedPhoto]
	video           []Handler[Video]
	editedVideo     []Handler[EditedVideo]
	location        []Handler[Location]
	editedLocation  []Handler[EditedLocation]
	voice           []Handler[Voice]
	videoNote       []Handler[VideoNote]
	sticker         []Handler[Sticker]
	game            []Handler[Game]
	contact         []Handler[Contact]
	venue           []Handler[Venue]
	poll            []Handler[Poll]
	dice            []Handler[Dice]
	invoice         []Handler[Invoice]
	payment         []Handler[Payment]
	passport        []Handler[Passport]

	connectedWebsite []Handler[ConnectedWebsite]
	newMembers       []Handler[NewMembers]
	leftMember       []Handler[LeftMember]
	newChatTitle     []Handler[NewChatTitle]
	newChatPhoto     []Handler[NewChatPhoto]
	deletedChatPhoto []Handler[DeletedChatPhoto]
	createdGroup     []Handler[CreatedGroup]
	migration        []Handler[Migration]
	pinnedMessage    []Handler[PinnedMessage]
	proximityAlert   []Handler[ProximityAlert]

	voiceChatScheduled           []Handler[VoiceChatScheduled]
	voiceChatStarted             []Handler[VoiceChatStarted]
	voiceChatEnded               []Handler[VoiceChatEnded]
	voiceChatParticipantsInvited []Handler[VoiceChatParticipantsInvited]
	autoDeleteTimerChanged       []Handler[AutoDeleteTimerChanged]

	inlineQuery         []Handler[InlineQuery]
	chosenInline        []Handler[ChosenInline]
	messageDataCallback []Handler[MessageDataCallback]
	inlineDataCallback  []Handler[InlineDataCallback]
	messageGameCallback []Handler[MessageGameCallback]
	inlineGameCallback  []Handler[InlineGameCallback]
	shipping            []Handler[Shipping]
	preCheckout         []Handler[PreCheckout]
	updatedPoll         []Handler[UpdatedPoll]
	pollAnswer          []Handler[PollAnswer]
	myChatMember        []Handler[MyChatMember]
	chatMember          []Handler[ChatMember]

	pollingError []ErrorHandler
	unhandled    []Handler[Unhandled]
}

// NewEventLoop creates an empty registry around the given bot handle.
func NewEventLoop(b *bot.Bot) *EventLoop {
	return &EventLoop{
		bot:            b,
		logger:         b.Logger().With("component", "dispatch"),
		commands:       map[string][]Handler[Text]{},
		editedCommands: map[string][]Handler[EditedText]{},
	}
}

// Bot returns the bot handle this event loop dispatches for.
func (el *EventLoop) Bot() *bot.Bot { return el.bot }

// SetUsername sets the bot's username, used to decide whether a command
// addressed as /cmd@username applies to this bot. A leading @ is allowed.
func (el *EventLoop) SetUsername(username string) {
	if username != "" && username[0] == '@' {
		username = username[1:]
	}
	el.username = username
}

// FetchUsername fills the username via getMe.
func (el *EventLoop) FetchUsername(ctx context.Context) error {
	me, err := el.bot.GetMe().Call(ctx)
	if err != nil {
		return err
	}
	el.SetUsername(me.Username)
	return nil
}

// Command registers a handler for /name. Matching is case-sensitive.
func (el *EventLoop) Command(name string, h Handler[Text]) {
	el.commands[name] = append(el.commands[name], h)
}

// CommandWithDescription registers a command handler and a description
// installed with setMyCommands when a driver starts.
func (el *EventLoop) CommandWithDescription(name, description string, h Handler[Text]) {
	el.commandDescriptions = append(el.commandDescriptions, types.BotCommand{
		Command:     name,
		Description: description,
	})
	el.Command(name, h)
}

// Start registers a handler for the /start command.
func (el *EventLoop) Start(h Handler[Text]) { el.Command("start", h) }

// Help registers a handler for the /help command.
func (el *EventLoop) Help(h Handler[Text]) { el.Command("help", h) }

// Settings registers a handler for the /settings command.
func (el *EventLoop) Settings(h Handler[Text]) { el.Command("settings", h) }

// EditedCommand registers a handler for edits of /name messages.
func (el *EventLoop) EditedCommand(name string, h Handler[EditedText]) {
	el.editedCommands[name] = append(el.editedCommands[name], h)
}

// BeforeUpdate registers a handler run before every update's subtype
// handlers.
func (el *EventLoop) BeforeUpdate(h Handler[Update]) {
	el.beforeUpdate = append(el.beforeUpdate, h)
}

// AfterUpdate registers a handler run after every update's subtype
// handlers, even when the update went to unhandled.
func (el *EventLoop) AfterUpdate(h Handler[Update]) {
	el.afterUpdate = append(el.afterUpdate, h)
}

// Text registers a handler for plain text messages.
func (el *EventLoop) Text(h Handler[Text]) { el.text = append(el.text, h) }

// EditedText registers a handler for edited text messages.
func (el *EventLoop) EditedText(h Handler[EditedText]) {
	el.editedText = append(el.editedText, h)
}

// Animation registers a handler for animation messages.
func (el *EventLoop) Animation(h Handler[Animation]) {
	el.animation = append(el.animation, h)
}

// EditedAnimation registers a handler for edited animation messages.
func (el *EventLoop) EditedAnimation(h Handler[EditedAnimation]) {
	el.editedAnimation = append(el.editedAnimation, h)
}

// Audio registers a handler for audio messages.
func (el *EventLoop) Audio(h Handler[Audio]) { el.audio = append(el.audio, h) }

// EditedAudio registers a handler for edited audio messages.
func (el *EventLoop) EditedAudio(h Handler[EditedAudio]) {
	el.editedAudio = append(el.editedAudio, h)
}

// Document registers a handler for document messages.
func (el *EventLoop) Document(h Handler[Document]) {
	el.document = append(el.document, h)
}

// EditedDocument registers a handler for edited document messages.
func (el *EventLoop) EditedDocument(h Handler[EditedDocument]) {
	el.editedDocument = append(el.editedDocument, h)
}

// Photo registers a handler for photo messages.
func (el *EventLoop) Photo(h Handler[Photo]) { el.photo = append(el.photo, h) }

// EditedPhoto registers a handler for edited photo messages.
func (el *EventLoop) EditedPhoto(h Handler[EditedPhoto]) {
	el.editedPhoto = append(el.editedPhoto, h)
}

// Video registers a handler for video messages.
func (el *EventLoop) Video(h Handler[Video]) { el.video = append(el.video, h) }

// EditedVideo registers a handler for edited video messages.
func (el *EventLoop) EditedVideo(h Handler[EditedVideo]) {
	el.editedVideo = append(el.editedVideo, h)
}

// Location registers a handler for location messages.
func (el *EventLoop) Location(h Handler[Location]) {
	el.location = append(el.location, h)
}

// EditedLocation registers a handler for live-location updates.
func (el *EventLoop) EditedLocation(h Handler[EditedLocation]) {
	el.editedLocation = append(el.editedLocation, h)
}

// Voice registers a handler for voice messages.
func (el *EventLoop) Voice(h Handler[Voice]) { el.voice = append(el.voice, h) }

// VideoNote registers a handler for video notes.
func (el *EventLoop) VideoNote(h Handler[VideoNote]) {
	el.videoNote = append(el.videoNote, h)
}

// Sticker registers a handler for stickers.
func (el *EventLoop) Sticker(h Handler[Sticker]) {
	el.sticker = append(el.sticker, h)
}

// Game registers a handler for game messages.
func (el *EventLoop) Game(h Handler[Game]) { el.game = append(el.game, h) }

// Contact registers a handler for shared contacts.
func (el *EventLoop) Contact(h Handler[Contact]) {
	el.contact = append(el.contact, h)
}

// Venue registers a handler for venues.
func (el *EventLoop) Venue(h Handler[Venue]) { el.venue = append(el.venue, h) }

// Poll registers a handler for messages carrying a poll.
func (el *EventLoop) Poll(h Handler[Poll]) { el.poll = append(el.poll, h) }

// Dice registers a handler for dice messages.
func (el *EventLoop) Dice(h Handler[Dice]) { el.dice = append(el.dice, h) }

// Invoice registers a handler for invoices.
func (el *EventLoop) Invoice(h Handler[Invoice]) {
	el.invoice = append(el.invoice, h)
}

// Payment registers a handler for successful payments.
func (el *EventLoop) Payment(h Handler[Payment]) {
	el.payment = append(el.payment, h)
}

// Passport registers a handler for passport data.
func (el *EventLoop) Passport(h Handler[Passport]) {
	el.passport = append(el.passport, h)
}

// ConnectedWebsite registers a handler for website-login messages.
func (el *EventLoop) ConnectedWebsite(h Handler[ConnectedWebsite]) {
	el.connectedWebsite = append(el.connectedWebsite, h)
}

// NewMembers registers a handler for members joining a chat.
func (el *EventLoop) NewMembers(h Handler[NewMembers]) {
	el.newMembers = append(el.newMembers, h)
}

// LeftMember registers a handler for a member leaving a chat.
func (el *EventLoop) LeftMember(h Handler[LeftMember]) {
	el.leftMember = append(el.leftMember, h)
}

// NewChatTitle registers a handler for chat title changes.
func (el *EventLoop) NewChatTitle(h Handler[NewChatTitle]) {
	el.newChatTitle = append(el.newChatTitle, h)
}

// NewChatPhoto registers a handler for chat photo changes.
func (el *EventLoop) NewChatPhoto(h Handler[NewChatPhoto]) {
	el.newChatPhoto = append(el.newChatPhoto, h)
}

// DeletedChatPhoto registers a handler for chat photo deletions.
func (el *EventLoop) DeletedChatPhoto(h Handler[DeletedChatPhoto]) {
	el.deletedChatPhoto = append(el.deletedChatPhoto, h)
}

// CreatedGroup registers a handler for group creation.
func (el *EventLoop) CreatedGroup(h Handler[CreatedGroup]) {
	el.createdGroup = append(el.createdGroup, h)
}

// Migration registers a handler for group-to-supergroup migrations.
func (el *EventLoop) Migration(h Handler[Migration]) {
	el.migration = append(el.migration, h)
}

// PinnedMessage registers a handler for pinned messages.
func (el *EventLoop) PinnedMessage(h Handler[PinnedMessage]) {
	el.pinnedMessage = append(el.pinnedMessage, h)
}

// ProximityAlert registers a handler for proximity alerts.
func (el *EventLoop) ProximityAlert(h Handler[ProximityAlert]) {
	el.proximityAlert = append(el.proximityAlert, h)
}

// VoiceChatScheduled registers a handler for scheduled voice chats.
func (el *EventLoop) VoiceChatScheduled(h Handler[VoiceChatScheduled]) {
	el.voiceChatScheduled = append(el.voiceChatScheduled, h)
}

// VoiceChatStarted registers a handler for started voice chats.
func (el *EventLoop) VoiceChatStarted(h Handler[VoiceChatStarted]) {
	el.voiceChatStarted = append(el.voiceChatStarted, h)
}

// VoiceChatEnded registers a handler for ended voice chats.
func (el *EventLoop) VoiceChatEnded(h Handler[VoiceChatEnded]) {
	el.voiceChatEnded = append(el.voiceChatEnded, h)
}

// VoiceChatParticipantsInvited registers a handler for voice-chat
// invitations.
func (el *EventLoop) VoiceChatParticipantsInvited(h Handler[VoiceChatParticipantsInvited]) {
	el.voiceChatParticipantsInvited = append(el.voiceChatParticipantsInvited, h)
}

// AutoDeleteTimerChanged registers a handler for auto-delete timer
// changes.
func (el *EventLoop) AutoDeleteTimerChanged(h Handler[AutoDeleteTimerChanged]) {
	el.autoDeleteTimerChanged = append(el.autoDeleteTimerChanged, h)
}

// InlineQuery registers a handler for inline queries.
func (el *EventLoop) InlineQuery(h Handler[InlineQuery]) {
	el.inlineQuery = append(el.inlineQuery, h)
}

// ChosenInline registers a handler for chosen inline results.
func (el *EventLoop) ChosenInline(h Handler[ChosenInline]) {
	el.chosenInline = append(el.chosenInline, h)
}

// MessageDataCallback registers a handler for data callbacks from regular
// messages.
func (el *EventLoop) MessageDataCallback(h Handler[MessageDataCallback]) {
	el.messageDataCallback = append(el.messageDataCallback, h)
}

// InlineDataCallback registers a handler for data callbacks from inline
// messages.
func (el *EventLoop) InlineDataCallback(h Handler[InlineDataCallback]) {
	el.inlineDataCallback = append(el.inlineDataCallback, h)
}

// MessageGameCallback registers a handler for game callbacks from regular
// messages.
func (el *EventLoop) MessageGameCallback(h Handler[MessageGameCallback]) {
	el.messageGameCallback = append(el.messageGameCallback, h)
}

// InlineGameCallback registers a handler for game callbacks from inline
// messages.
func (el *EventLoop) InlineGameCallback(h Handler[InlineGameCallback]) {
	el.inlineGameCallback = append(el.inlineGameCallback, h)
}

// Shipping registers a handler for shipping queries.
func (el *EventLoop) Shipping(h Handler[Shipping]) {
	el.shipping = append(el.shipping, h)
}

// PreCheckout registers a handler for pre-checkout queries.
func (el *EventLoop) PreCheckout(h Handler[PreCheckout]) {
	el.preCheckout = append(el.preCheckout, h)
}

// UpdatedPoll registers a handler for poll state changes.
func (el *EventLoop) UpdatedPoll(h Handler[UpdatedPoll]) {
	el.updatedPoll = append(el.updatedPoll, h)
}

// PollAnswer registers a handler for poll answer changes.
func (el *EventLoop) PollAnswer(h Handler[PollAnswer]) {
	el.pollAnswer = append(el.pollAnswer, h)
}

// MyChatMember registers a handler for the bot's own membership changes.
func (el *EventLoop) MyChatMember(h Handler[MyChatMember]) {
	el.myChatMember = append(el.myChatMember, h)
}

// ChatMember registers a handler for other users' membership changes.
func (el *EventLoop) ChatMember(h Handler[ChatMember]) {
	el.chatMember = append(el.chatMember, h)
}

// PollingError registers a handler for polling-cycle errors. When none is
// registered the polling driver logs a diagnostic instead.
func (el *EventLoop) PollingError(h ErrorHandler) {
	el.pollingError = append(el.pollingError, h)
}

// Unhandled registers a handler for updates no other list matched.
func (el *EventLoop) Unhandled(h Handler[Unhandled]) {
	el.unhandled = append(el.unhandled, h)
}

// installCommands pushes the registered command descriptions via
// setMyCommands. Nothing registered means nothing to install.
func (el *EventLoop) installCommands(ctx context.Context) error {
	if len(el.commandDescriptions) == 0 {
		return nil
	}
	return el.bot.SetMyCommands(el.commandDescriptions).Call(ctx)
}
