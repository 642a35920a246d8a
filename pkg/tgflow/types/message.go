package types

import "encoding/json"

// ForwardOrigin tells who authored the original of a forwarded message.
type ForwardOrigin interface {
	forwardOrigin()
}

// ForwardedFromUser is a forward of a message written by a visible user.
type ForwardedFromUser struct {
	User User
}

// ForwardedFromHiddenUser is a forward from a user who hid their account;
// only the sender's display name survives.
type ForwardedFromHiddenUser struct {
	SenderName string
}

// ForwardedFromChannel is a forward of a channel post.
type ForwardedFromChannel struct {
	Chat      Chat
	MessageID int64
	Signature string
}

// ForwardedFromAnonymousAdmin is a forward authored by an anonymous group
// administrator; the group chat stands in for the author.
type ForwardedFromAnonymousAdmin struct {
	Chat Chat
}

func (ForwardedFromUser) forwardOrigin()           {}
func (ForwardedFromHiddenUser) forwardOrigin()     {}
func (ForwardedFromChannel) forwardOrigin()        {}
func (ForwardedFromAnonymousAdmin) forwardOrigin() {}

// Forward describes the original of a forwarded message.
type Forward struct {
	Origin ForwardOrigin
	Date   int64
}

// MessageKind is the content of a message. Exactly one kind applies to any
// message; service kinds never coexist with user content.
type MessageKind interface {
	messageKind()
}

// TextMessage is a plain text message.
type TextMessage struct {
	Text Text
}

// AudioMessage is an audio file with an optional caption.
type AudioMessage struct {
	Audio   Audio
	Caption Text
}

// DocumentMessage is a general file with an optional caption.
type DocumentMessage struct {
	Document Document
	Caption  Text
}

// PhotoMessage is a photo in several sizes. MediaGroupID is set when the
// photo belongs to an album.
type PhotoMessage struct {
	Photo        []PhotoSize
	Caption      Text
	MediaGroupID string
}

// VideoMessage is a video with an optional caption. MediaGroupID is set
// when the video belongs to an album.
type VideoMessage struct {
	Video        Video
	Caption      Text
	MediaGroupID string
}

// AnimationMessage is a GIF-style animation with an optional caption.
type AnimationMessage struct {
	Animation Animation
	Caption   Text
}

// VoiceMessage is a voice note with an optional caption.
type VoiceMessage struct {
	Voice   Voice
	Caption Text
}

// VideoNoteMessage is a round video message.
type VideoNoteMessage struct {
	VideoNote VideoNote
}

// StickerMessage is a sticker.
type StickerMessage struct {
	Sticker Sticker
}

// GameMessage is an invitation to play a game.
type GameMessage struct {
	Game Game
}

// ContactMessage is a shared contact.
type ContactMessage struct {
	Contact Contact
}

// LocationMessage is a point on the map.
type LocationMessage struct {
	Location Location
}

// VenueMessage is a venue.
type VenueMessage struct {
	Venue Venue
}

// PollMessage is a message carrying a native poll.
type PollMessage struct {
	Poll Poll
}

// DiceMessage is an animated emoji with a random value.
type DiceMessage struct {
	Dice Dice
}

// InvoiceMessage is an invoice for a payment.
type InvoiceMessage struct {
	Invoice Invoice
}

// SuccessfulPaymentMessage is the service message of a completed payment.
type SuccessfulPaymentMessage struct {
	Payment SuccessfulPayment
}

// PassportDataMessage carries Telegram Passport data.
type PassportDataMessage struct {
	Data PassportData
}

// ConnectedWebsiteMessage reports that the user logged in to a website.
type ConnectedWebsiteMessage struct {
	URL string
}

// NewChatMembersMessage is the service message for members who joined.
type NewChatMembersMessage struct {
	Members []User
}

// LeftChatMemberMessage is the service message for a member who left.
type LeftChatMemberMessage struct {
	Member User
}

// NewChatTitleMessage is the service message for a chat title change.
type NewChatTitleMessage struct {
	Title string
}

// NewChatPhotoMessage is the service message for a chat photo change.
type NewChatPhotoMessage struct {
	Photo []PhotoSize
}

// ChatPhotoDeletedMessage marks the chat photo as deleted.
type ChatPhotoDeletedMessage struct{}

// GroupCreatedMessage marks the creation of a group.
type GroupCreatedMessage struct{}

// SupergroupCreatedMessage marks the creation of a supergroup.
type SupergroupCreatedMessage struct{}

// ChannelCreatedMessage marks the creation of a channel.
type ChannelCreatedMessage struct{}

// MigrateToMessage says the group migrated to the supergroup with this ID.
type MigrateToMessage struct {
	ChatID int64
}

// MigrateFromMessage says the supergroup used to be the group with this ID.
type MigrateFromMessage struct {
	ChatID int64
}

// PinnedMessage is the service message for a newly pinned message.
type PinnedMessage struct {
	Message *Message
}

// ProximityAlertMessage is the service message of a triggered proximity
// alert.
type ProximityAlertMessage struct {
	Alert ProximityAlertTriggered
}

// VoiceChatScheduledMessage announces a scheduled voice chat.
type VoiceChatScheduledMessage struct {
	StartDate int64
}

// VoiceChatStartedMessage marks the start of a voice chat.
type VoiceChatStartedMessage struct{}

// VoiceChatEndedMessage marks the end of a voice chat.
type VoiceChatEndedMessage struct {
	Duration int
}

// VoiceChatParticipantsInvitedMessage lists users invited to a voice chat.
type VoiceChatParticipantsInvitedMessage struct {
	Users []User
}

// AutoDeleteTimerChangedMessage reports a new auto-delete timer value.
type AutoDeleteTimerChangedMessage struct {
	Timeout int
}

// UnknownMessage stands in for content kinds this module does not know.
// It is deliberately not a decode error: failing the whole update would
// stall the offset and loop forever on the same batch.
type UnknownMessage struct{}

func (TextMessage) messageKind()                         {}
func (AudioMessage) messageKind()                        {}
func (DocumentMessage) messageKind()                     {}
func (PhotoMessage) messageKind()                        {}
func (VideoMessage) messageKind()                        {}
func (AnimationMessage) messageKind()                    {}
func (VoiceMessage) messageKind()                        {}
func (VideoNoteMessage) messageKind()                    {}
func (StickerMessage) messageKind()                      {}
func (GameMessage) messageKind()                         {}
func (ContactMessage) messageKind()                      {}
func (LocationMessage) messageKind()                     {}
func (VenueMessage) messageKind()                        {}
func (PollMessage) messageKind()                         {}
func (DiceMessage) messageKind()                         {}
func (InvoiceMessage) messageKind()                      {}
func (SuccessfulPaymentMessage) messageKind()            {}
func (PassportDataMessage) messageKind()                 {}
func (ConnectedWebsiteMessage) messageKind()             {}
func (NewChatMembersMessage) messageKind()               {}
func (LeftChatMemberMessage) messageKind()               {}
func (NewChatTitleMessage) messageKind()                 {}
func (NewChatPhotoMessage) messageKind()                 {}
func (ChatPhotoDeletedMessage) messageKind()             {}
func (GroupCreatedMessage) messageKind()                 {}
func (SupergroupCreatedMessage) messageKind()            {}
func (ChannelCreatedMessage) messageKind()               {}
func (MigrateToMessage) messageKind()                    {}
func (MigrateFromMessage) messageKind()                  {}
func (PinnedMessage) messageKind()                       {}
func (ProximityAlertMessage) messageKind()               {}
func (VoiceChatScheduledMessage) messageKind()           {}
func (VoiceChatStartedMessage) messageKind()             {}
func (VoiceChatEndedMessage) messageKind()               {}
func (VoiceChatParticipantsInvitedMessage) messageKind() {}
func (AutoDeleteTimerChangedMessage) messageKind()       {}
func (UnknownMessage) messageKind()                      {}

// Message is a chat message: the common envelope plus exactly one content
// kind.
type Message struct {
	ID              int64
	From            *User
	SenderChat      *Chat
	Date            int64
	Chat            Chat
	Forward         *Forward
	ReplyTo         *Message
	EditDate        int64
	AuthorSignature string
	ReplyMarkup     *InlineKeyboardMarkup
	Kind            MessageKind
}

// IsEdited reports whether the message arrived through an edited path.
func (m *Message) IsEdited() bool {
	return m.EditDate != 0
}

// rawMessage mirrors every Bot API message key the decoder discriminates
// on. Field presence, not a tag, decides the content kind.
type rawMessage struct {
	MessageID       int64                 `json:"message_id"`
	From            *User                 `json:"from"`
	SenderChat      *Chat                 `json:"sender_chat"`
	Date            int64                 `json:"date"`
	Chat            Chat                  `json:"chat"`
	ReplyToMessage  *Message              `json:"reply_to_message"`
	EditDate        int64                 `json:"edit_date"`
	AuthorSignature string                `json:"author_signature"`
	MediaGroupID    string                `json:"media_group_id"`
	ReplyMarkup     *InlineKeyboardMarkup `json:"reply_markup"`

	ForwardFrom          *User  `json:"forward_from"`
	ForwardFromChat      *Chat  `json:"forward_from_chat"`
	ForwardFromMessageID int64  `json:"forward_from_message_id"`
	ForwardSignature     string `json:"forward_signature"`
	ForwardSenderName    string `json:"forward_sender_name"`
	ForwardDate          int64  `json:"forward_date"`

	Text            *string    `json:"text"`
	Entities        []Entity   `json:"entities"`
	Caption         *string    `json:"caption"`
	CaptionEntities []Entity   `json:"caption_entities"`
	Animation       *Animation `json:"animation"`
	Audio           *Audio     `json:"audio"`
	Document        *Document  `json:"document"`
	Photo           []PhotoSize `json:"photo"`
	Sticker         *Sticker    `json:"sticker"`
	Video           *Video      `json:"video"`
	VideoNote       *VideoNote  `json:"video_note"`
	Voice           *Voice      `json:"voice"`
	Contact         *Contact    `json:"contact"`
	Location        *Location   `json:"location"`
	Venue           *Venue      `json:"venue"`
	Poll            *Poll       `json:"poll"`
	Dice            *Dice       `json:"dice"`
	Game            *Game       `json:"game"`
	Invoice         *Invoice    `json:"invoice"`

	SuccessfulPayment *SuccessfulPayment `json:"successful_payment"`
	ConnectedWebsite  *string            `json:"connected_website"`
	PassportData      PassportData       `json:"passport_data"`

	NewChatMembers        []User      `json:"new_chat_members"`
	LeftChatMember        *User       `json:"left_chat_member"`
	NewChatTitle          *string     `json:"new_chat_title"`
	NewChatPhoto          []PhotoSize `json:"new_chat_photo"`
	DeleteChatPhoto       bool        `json:"delete_chat_photo"`
	GroupChatCreated      bool        `json:"group_chat_created"`
	SupergroupChatCreated bool        `json:"supergroup_chat_created"`
	ChannelChatCreated    bool        `json:"channel_chat_created"`
	MigrateToChatID       *int64      `json:"migrate_to_chat_id"`
	MigrateFromChatID     *int64      `json:"migrate_from_chat_id"`
	PinnedMessage         *Message    `json:"pinned_message"`

	ProximityAlertTriggered       *ProximityAlertTriggered       `json:"proximity_alert_triggered"`
	VoiceChatScheduled            *VoiceChatScheduled            `json:"voice_chat_scheduled"`
	VoiceChatStarted              *VoiceChatStarted              `json:"voice_chat_started"`
	VoiceChatEnded                *VoiceChatEnded                `json:"voice_chat_ended"`
	VoiceChatParticipantsInvited  *VoiceChatParticipantsInvited  `json:"voice_chat_participants_invited"`
	MessageAutoDeleteTimerChanged *MessageAutoDeleteTimerChanged `json:"message_auto_delete_timer_changed"`
}

func (m *Message) UnmarshalJSON(data []byte) error {
	var raw rawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.ID = raw.MessageID
	m.From = raw.From
	m.SenderChat = raw.SenderChat
	m.Date = raw.Date
	m.Chat = raw.Chat
	m.ReplyTo = raw.ReplyToMessage
	m.EditDate = raw.EditDate
	m.AuthorSignature = raw.AuthorSignature
	m.ReplyMarkup = raw.ReplyMarkup
	m.Forward = decodeForward(&raw)
	m.Kind = decodeMessageKind(&raw)

	return nil
}

func decodeForward(raw *rawMessage) *Forward {
	if raw.ForwardDate == 0 {
		return nil
	}

	var origin ForwardOrigin
	switch {
	case raw.ForwardFromChat != nil && raw.ForwardFromChat.Type == ChatChannel:
		origin = ForwardedFromChannel{
			Chat:      *raw.ForwardFromChat,
			MessageID: raw.ForwardFromMessageID,
			Signature: raw.ForwardSignature,
		}
	case raw.ForwardFromChat != nil:
		// A non-channel forward_from_chat is the anonymous-admin marker.
		origin = ForwardedFromAnonymousAdmin{Chat: *raw.ForwardFromChat}
	case raw.ForwardFrom != nil:
		origin = ForwardedFromUser{User: *raw.ForwardFrom}
	default:
		origin = ForwardedFromHiddenUser{SenderName: raw.ForwardSenderName}
	}

	return &Forward{Origin: origin, Date: raw.ForwardDate}
}

func caption(raw *rawMessage) Text {
	if raw.Caption == nil {
		return Text{}
	}
	return Text{Value: *raw.Caption, Entities: raw.CaptionEntities}
}

func decodeMessageKind(raw *rawMessage) MessageKind {
	switch {
	case raw.Text != nil:
		return TextMessage{Text: Text{Value: *raw.Text, Entities: raw.Entities}}
	// Animation messages also carry a document field, so animation must
	// be checked first.
	case raw.Animation != nil:
		return AnimationMessage{Animation: *raw.Animation, Caption: caption(raw)}
	case raw.Audio != nil:
		return AudioMessage{Audio: *raw.Audio, Caption: caption(raw)}
	case raw.Document != nil:
		return DocumentMessage{Document: *raw.Document, Caption: caption(raw)}
	case len(raw.Photo) > 0:
		return PhotoMessage{Photo: raw.Photo, Caption: caption(raw), MediaGroupID: raw.MediaGroupID}
	case raw.Sticker != nil:
		return StickerMessage{Sticker: *raw.Sticker}
	case raw.Video != nil:
		return VideoMessage{Video: *raw.Video, Caption: caption(raw), MediaGroupID: raw.MediaGroupID}
	case raw.VideoNote != nil:
		return VideoNoteMessage{VideoNote: *raw.VideoNote}
	case raw.Voice != nil:
		return VoiceMessage{Voice: *raw.Voice, Caption: caption(raw)}
	case raw.Contact != nil:
		return ContactMessage{Contact: *raw.Contact}
	// Venues carry a location field too; venue wins.
	case raw.Venue != nil:
		return VenueMessage{Venue: *raw.Venue}
	case raw.Location != nil:
		return LocationMessage{Location: *raw.Location}
	case raw.Poll != nil:
		return PollMessage{Poll: *raw.Poll}
	case raw.Dice != nil:
		return DiceMessage{Dice: *raw.Dice}
	case raw.Game != nil:
		return GameMessage{Game: *raw.Game}
	case raw.Invoice != nil:
		return InvoiceMessage{Invoice: *raw.Invoice}
	case raw.SuccessfulPayment != nil:
		return SuccessfulPaymentMessage{Payment: *raw.SuccessfulPayment}
	case raw.ConnectedWebsite != nil:
		return ConnectedWebsiteMessage{URL: *raw.ConnectedWebsite}
	case len(raw.PassportData) > 0:
		return PassportDataMessage{Data: raw.PassportData}
	case len(raw.NewChatMembers) > 0:
		return NewChatMembersMessage{Members: raw.NewChatMembers}
	case raw.LeftChatMember != nil:
		return LeftChatMemberMessage{Member: *raw.LeftChatMember}
	case raw.NewChatTitle != nil:
		return NewChatTitleMessage{Title: *raw.NewChatTitle}
	case len(raw.NewChatPhoto) > 0:
		return NewChatPhotoMessage{Photo: raw.NewChatPhoto}
	case raw.DeleteChatPhoto:
		return ChatPhotoDeletedMessage{}
	case raw.GroupChatCreated:
		return GroupCreatedMessage{}
	case raw.SupergroupChatCreated:
		return SupergroupCreatedMessage{}
	case raw.ChannelChatCreated:
		return ChannelCreatedMessage{}
	case raw.MigrateToChatID != nil:
		return MigrateToMessage{ChatID: *raw.MigrateToChatID}
	case raw.MigrateFromChatID != nil:
		return MigrateFromMessage{ChatID: *raw.MigrateFromChatID}
	case raw.PinnedMessage != nil:
		return PinnedMessage{Message: raw.PinnedMessage}
	case raw.ProximityAlertTriggered != nil:
		return ProximityAlertMessage{Alert: *raw.ProximityAlertTriggered}
	case raw.VoiceChatScheduled != nil:
		return VoiceChatScheduledMessage{StartDate: raw.VoiceChatScheduled.StartDate}
	case raw.VoiceChatStarted != nil:
		return VoiceChatStartedMessage{}
	case raw.VoiceChatEnded != nil:
		return VoiceChatEndedMessage{Duration: raw.VoiceChatEnded.Duration}
	case raw.VoiceChatParticipantsInvited != nil:
		return VoiceChatParticipantsInvitedMessage{Users: raw.VoiceChatParticipantsInvited.Users}
	case raw.MessageAutoDeleteTimerChanged != nil:
		return AutoDeleteTimerChangedMessage{Timeout: raw.MessageAutoDeleteTimerChanged.MessageAutoDeleteTime}
	}
	return UnknownMessage{}
}
