package dispatch

import (
	"context"
	"sync"

	"github.com/jholhewres/tgflow/pkg/tgflow/types"
)

// HandleUpdate routes one decoded update: before-update handlers run
// first and to completion, then exactly one subtype list (or unhandled),
// then after-update handlers. Subtype handlers start in registration
// order as goroutines and are waited on; a panicking handler is logged
// and does not abort its siblings.
func (el *EventLoop) HandleUpdate(ctx context.Context, update types.Update) {
	uc := &Update{Bot: el.bot, UpdateID: update.ID}

	for _, h := range el.beforeUpdate {
		el.invoke(ctx, func(ctx context.Context) { h(ctx, uc) })
	}

	switch kind := update.Kind.(type) {
	case types.NewMessage:
		el.handleMessage(ctx, update, kind.Message)
	case types.ChannelPost:
		el.handleMessage(ctx, update, kind.Message)
	case types.EditedMessage:
		el.handleEditedMessage(ctx, update, kind.Message)
	case types.EditedChannelPost:
		el.handleEditedMessage(ctx, update, kind.Message)
	case types.InlineQueryUpdate:
		fire(el, ctx, update, el.inlineQuery, &InlineQuery{Bot: el.bot, Query: kind.Query})
	case types.ChosenInlineResultUpdate:
		fire(el, ctx, update, el.chosenInline, &ChosenInline{Bot: el.bot, Result: kind.Result})
	case types.CallbackQueryUpdate:
		el.handleCallback(ctx, update, kind.Query)
	case types.ShippingQueryUpdate:
		fire(el, ctx, update, el.shipping, &Shipping{Bot: el.bot, Query: kind.Query})
	case types.PreCheckoutQueryUpdate:
		fire(el, ctx, update, el.preCheckout, &PreCheckout{Bot: el.bot, Query: kind.Query})
	case types.PollStateUpdate:
		fire(el, ctx, update, el.updatedPoll, &UpdatedPoll{Bot: el.bot, Poll: kind.Poll})
	case types.PollAnswerUpdate:
		fire(el, ctx, update, el.pollAnswer, &PollAnswer{Bot: el.bot, Answer: kind.Answer})
	case types.MyChatMemberUpdate:
		fire(el, ctx, update, el.myChatMember, &MyChatMember{Bot: el.bot, Change: kind.Change})
	case types.ChatMemberStatusUpdate:
		fire(el, ctx, update, el.chatMember, &ChatMember{Bot: el.bot, Change: kind.Change})
	case types.Unknown:
		el.runUnhandled(ctx, update)
	}

	for _, h := range el.afterUpdate {
		el.invoke(ctx, func(ctx context.Context) { h(ctx, uc) })
	}
}

// invoke runs one handler with panic isolation.
func (el *EventLoop) invoke(ctx context.Context, f func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			el.logger.Error("handler panicked", "panic", r)
		}
	}()
	f(ctx)
}

// runList starts every handler in registration order and waits for all of
// them.
func runList[T any](el *EventLoop, ctx context.Context, handlers []Handler[T], c *T) {
	var wg sync.WaitGroup
	for _, h := range handlers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			el.invoke(ctx, func(ctx context.Context) { h(ctx, c) })
		}()
	}
	wg.Wait()
}

// fire routes to the given list, falling through to unhandled when the
// list is empty.
func fire[T any](el *EventLoop, ctx context.Context, update types.Update, handlers []Handler[T], c *T) {
	if len(handlers) == 0 {
		el.runUnhandled(ctx, update)
		return
	}
	runList(el, ctx, handlers, c)
}

func (el *EventLoop) runUnhandled(ctx context.Context, update types.Update) {
	if len(el.unhandled) == 0 {
		return
	}
	runList(el, ctx, el.unhandled, &Unhandled{Bot: el.bot, Update: update})
}

func (el *EventLoop) handleMessage(ctx context.Context, update types.Update, msg types.Message) {
	base := messageBase(el.bot, &msg)

	switch kind := msg.Kind.(type) {
	case types.TextMessage:
		el.handleText(ctx, update, base, kind.Text)
	case types.AnimationMessage:
		fire(el, ctx, update, el.animation, &Animation{MessageBase: base, Animation: kind.Animation, Caption: kind.Caption})
	case types.AudioMessage:
		fire(el, ctx, update, el.audio, &Audio{MessageBase: base, Audio: kind.Audio, Caption: kind.Caption})
	case types.DocumentMessage:
		fire(el, ctx, update, el.document, &Document{MessageBase: base, Document: kind.Document, Caption: kind.Caption})
	case types.PhotoMessage:
		fire(el, ctx, update, el.photo, &Photo{MessageBase: base, Photo: kind.Photo, Caption: kind.Caption, MediaGroupID: kind.MediaGroupID})
	case types.VideoMessage:
		fire(el, ctx, update, el.video, &Video{MessageBase: base, Video: kind.Video, Caption: kind.Caption, MediaGroupID: kind.MediaGroupID})
	case types.VoiceMessage:
		fire(el, ctx, update, el.voice, &Voice{MessageBase: base, Voice: kind.Voice, Caption: kind.Caption})
	case types.VideoNoteMessage:
		fire(el, ctx, update, el.videoNote, &VideoNote{MessageBase: base, VideoNote: kind.VideoNote})
	case types.StickerMessage:
		fire(el, ctx, update, el.sticker, &Sticker{MessageBase: base, Sticker: kind.Sticker})
	case types.GameMessage:
		fire(el, ctx, update, el.game, &Game{MessageBase: base, Game: kind.Game})
	case types.ContactMessage:
		fire(el, ctx, update, el.contact, &Contact{MessageBase: base, Contact: kind.Contact})
	case types.LocationMessage:
		fire(el, ctx, update, el.location, &Location{MessageBase: base, Location: kind.Location})
	case types.VenueMessage:
		fire(el, ctx, update, el.venue, &Venue{MessageBase: base, Venue: kind.Venue})
	case types.PollMessage:
		fire(el, ctx, update, el.poll, &Poll{MessageBase: base, Poll: kind.Poll})
	case types.DiceMessage:
		fire(el, ctx, update, el.dice, &Dice{MessageBase: base, Dice: kind.Dice})
	case types.InvoiceMessage:
		fire(el, ctx, update, el.invoice, &Invoice{MessageBase: base, Invoice: kind.Invoice})
	case types.SuccessfulPaymentMessage:
		fire(el, ctx, update, el.payment, &Payment{MessageBase: base, Payment: kind.Payment})
	case types.PassportDataMessage:
		fire(el, ctx, update, el.passport, &Passport{MessageBase: base, Data: kind.Data})
	case types.ConnectedWebsiteMessage:
		fire(el, ctx, update, el.connectedWebsite, &ConnectedWebsite{MessageBase: base, URL: kind.URL})
	case types.NewChatMembersMessage:
		fire(el, ctx, update, el.newMembers, &NewMembers{MessageBase: base, Members: kind.Members})
	case types.LeftChatMemberMessage:
		fire(el, ctx, update, el.leftMember, &LeftMember{MessageBase: base, Member: kind.Member})
	case types.NewChatTitleMessage:
		fire(el, ctx, update, el.newChatTitle, &NewChatTitle{MessageBase: base, Title: kind.Title})
	case types.NewChatPhotoMessage:
		fire(el, ctx, update, el.newChatPhoto, &NewChatPhoto{MessageBase: base, Photo: kind.Photo})
	case types.ChatPhotoDeletedMessage:
		fire(el, ctx, update, el.deletedChatPhoto, &DeletedChatPhoto{MessageBase: base})
	case types.GroupCreatedMessage:
		fire(el, ctx, update, el.createdGroup, &CreatedGroup{MessageBase: base})
	case types.MigrateFromMessage:
		fire(el, ctx, update, el.migration, &Migration{MessageBase: base, OldID: kind.ChatID})
	case types.MigrateToMessage:
		// The matching migrate_from arrives as its own update; firing both
		// would double-report the migration.
	case types.PinnedMessage:
		fire(el, ctx, update, el.pinnedMessage, &PinnedMessage{MessageBase: base, Pinned: kind.Message})
	case types.ProximityAlertMessage:
		fire(el, ctx, update, el.proximityAlert, &ProximityAlert{MessageBase: base, Alert: kind.Alert})
	case types.VoiceChatScheduledMessage:
		fire(el, ctx, update, el.voiceChatScheduled, &VoiceChatScheduled{MessageBase: base, StartDate: kind.StartDate})
	case types.VoiceChatStartedMessage:
		fire(el, ctx, update, el.voiceChatStarted, &VoiceChatStarted{MessageBase: base})
	case types.VoiceChatEndedMessage:
		fire(el, ctx, update, el.voiceChatEnded, &VoiceChatEnded{MessageBase: base, Duration: kind.Duration})
	case types.VoiceChatParticipantsInvitedMessage:
		fire(el, ctx, update, el.voiceChatParticipantsInvited, &VoiceChatParticipantsInvited{MessageBase: base, Users: kind.Users})
	case types.AutoDeleteTimerChangedMessage:
		fire(el, ctx, update, el.autoDeleteTimerChanged, &AutoDeleteTimerChanged{MessageBase: base, Timeout: kind.Timeout})
	default:
		el.runUnhandled(ctx, update)
	}
}

// handleText implements the message-subkind routine for text: a
// bot_command entity at offset zero makes the message a command;
// commands addressed to another bot are dropped; a matched command list
// gets the trimmed text; otherwise plain text handlers get the original.
func (el *EventLoop) handleText(ctx context.Context, update types.Update, base MessageBase, text types.Text) {
	if text.IsCommand() {
		name, username := parseCommand(text.Value)

		if !el.isForThisBot(username) {
			return
		}

		if handlers, ok := el.commands[name]; ok {
			fire(el, ctx, update, handlers, &Text{MessageBase: base, Text: text.TrimCommand()})
			return
		}
	}

	fire(el, ctx, update, el.text, &Text{MessageBase: base, Text: text})
}

func (el *EventLoop) handleEditedText(ctx context.Context, update types.Update, base MessageBase, editDate int64, text types.Text) {
	if text.IsCommand() {
		name, username := parseCommand(text.Value)

		if !el.isForThisBot(username) {
			return
		}

		if handlers, ok := el.editedCommands[name]; ok {
			fire(el, ctx, update, handlers, &EditedText{MessageBase: base, EditDate: editDate, Text: text.TrimCommand()})
			return
		}
	}

	fire(el, ctx, update, el.editedText, &EditedText{MessageBase: base, EditDate: editDate, Text: text})
}

func (el *EventLoop) handleEditedMessage(ctx context.Context, update types.Update, msg types.Message) {
	base := messageBase(el.bot, &msg)
	editDate := msg.EditDate

	switch kind := msg.Kind.(type) {
	case types.TextMessage:
		el.handleEditedText(ctx, update, base, editDate, kind.Text)
	case types.AnimationMessage:
		fire(el, ctx, update, el.editedAnimation, &EditedAnimation{MessageBase: base, EditDate: editDate, Animation: kind.Animation, Caption: kind.Caption})
	case types.AudioMessage:
		fire(el, ctx, update, el.editedAudio, &EditedAudio{MessageBase: base, EditDate: editDate, Audio: kind.Audio, Caption: kind.Caption})
	case types.DocumentMessage:
		fire(el, ctx, update, el.editedDocument, &EditedDocument{MessageBase: base, EditDate: editDate, Document: kind.Document, Caption: kind.Caption})
	case types.LocationMessage:
		fire(el, ctx, update, el.editedLocation, &EditedLocation{MessageBase: base, EditDate: editDate, Location: kind.Location})
	case types.PhotoMessage:
		fire(el, ctx, update, el.editedPhoto, &EditedPhoto{MessageBase: base, EditDate: editDate, Photo: kind.Photo, Caption: kind.Caption, MediaGroupID: kind.MediaGroupID})
	case types.VideoMessage:
		fire(el, ctx, update, el.editedVideo, &EditedVideo{MessageBase: base, EditDate: editDate, Video: kind.Video, Caption: kind.Caption, MediaGroupID: kind.MediaGroupID})
	case types.PollMessage,
		types.NewChatMembersMessage,
		types.LeftChatMemberMessage,
		types.NewChatTitleMessage,
		types.NewChatPhotoMessage,
		types.ChatPhotoDeletedMessage,
		types.GroupCreatedMessage,
		types.SupergroupCreatedMessage,
		types.ChannelCreatedMessage,
		types.PinnedMessage,
		types.MigrateToMessage,
		types.MigrateFromMessage:
		// Service messages cannot be edited; seeing one here means either
		// the server or the decoder broke an invariant.
		el.logger.Error("service message arrived through an edited-message path",
			"update_id", update.ID, "message_id", msg.ID)
	default:
		el.runUnhandled(ctx, update)
	}
}

func (el *EventLoop) handleCallback(ctx context.Context, update types.Update, query types.CallbackQuery) {
	cb := callbackBase{
		Bot:          el.bot,
		ID:           query.ID,
		From:         query.From,
		ChatInstance: query.ChatInstance,
	}

	switch kind := query.Kind.(type) {
	case types.DataCallback:
		switch origin := query.Origin.(type) {
		case types.MessageOrigin:
			fire(el, ctx, update, el.messageDataCallback, &MessageDataCallback{callbackBase: cb, Message: origin.Message, Data: kind.Data})
		case types.InlineOrigin:
			fire(el, ctx, update, el.inlineDataCallback, &InlineDataCallback{callbackBase: cb, InlineMessageID: origin.InlineMessageID, Data: kind.Data})
		}
	case types.GameCallback:
		switch origin := query.Origin.(type) {
		case types.MessageOrigin:
			fire(el, ctx, update, el.messageGameCallback, &MessageGameCallback{callbackBase: cb, Message: origin.Message, ShortName: kind.ShortName})
		case types.InlineOrigin:
			fire(el, ctx, update, el.inlineGameCallback, &InlineGameCallback{callbackBase: cb, InlineMessageID: origin.InlineMessageID, ShortName: kind.ShortName})
		}
	}
}

// isForThisBot decides whether a command carrying an explicit @username
// addresses this bot. Without a configured username any explicitly
// addressed command is dropped, the safer default.
func (el *EventLoop) isForThisBot(username string) bool {
	if username == "" {
		return true
	}
	return el.username != "" && username == el.username
}
