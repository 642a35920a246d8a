package types

import (
	"encoding/json"
	"testing"
)

func decodeMessage(t *testing.T, raw string) Message {
	t.Helper()
	var msg Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("unmarshal message: %v", err)
	}
	return msg
}

func TestMessageContentDiscrimination(t *testing.T) {
	t.Run("photo with album and caption", func(t *testing.T) {
		msg := decodeMessage(t, `{
			"message_id": 1, "date": 0, "chat": {"id": 1, "type": "private"},
			"photo": [
				{"file_id": "s", "file_unique_id": "us", "width": 90, "height": 90},
				{"file_id": "l", "file_unique_id": "ul", "width": 800, "height": 800}
			],
			"caption": "cap",
			"media_group_id": "album-1"
		}`)

		photo, ok := msg.Kind.(PhotoMessage)
		if !ok {
			t.Fatalf("expected PhotoMessage, got %T", msg.Kind)
		}
		if len(photo.Photo) != 2 {
			t.Errorf("expected 2 sizes, got %d", len(photo.Photo))
		}
		if photo.Caption.Value != "cap" {
			t.Errorf("expected caption %q, got %q", "cap", photo.Caption.Value)
		}
		if photo.MediaGroupID != "album-1" {
			t.Errorf("expected media group %q, got %q", "album-1", photo.MediaGroupID)
		}
	})

	t.Run("animation wins over its document sibling", func(t *testing.T) {
		msg := decodeMessage(t, `{
			"message_id": 2, "date": 0, "chat": {"id": 1, "type": "private"},
			"animation": {"file_id": "a", "file_unique_id": "ua", "width": 1, "height": 1, "duration": 1},
			"document": {"file_id": "d", "file_unique_id": "ud"}
		}`)

		if _, ok := msg.Kind.(AnimationMessage); !ok {
			t.Fatalf("expected AnimationMessage, got %T", msg.Kind)
		}
	})

	t.Run("venue wins over its location sibling", func(t *testing.T) {
		msg := decodeMessage(t, `{
			"message_id": 3, "date": 0, "chat": {"id": 1, "type": "private"},
			"venue": {"location": {"latitude": 1, "longitude": 2}, "title": "t", "address": "a"},
			"location": {"latitude": 1, "longitude": 2}
		}`)

		if _, ok := msg.Kind.(VenueMessage); !ok {
			t.Fatalf("expected VenueMessage, got %T", msg.Kind)
		}
	})

	t.Run("service messages", func(t *testing.T) {
		msg := decodeMessage(t, `{
			"message_id": 4, "date": 0, "chat": {"id": 1, "type": "group"},
			"new_chat_title": "renamed"
		}`)
		title, ok := msg.Kind.(NewChatTitleMessage)
		if !ok {
			t.Fatalf("expected NewChatTitleMessage, got %T", msg.Kind)
		}
		if title.Title != "renamed" {
			t.Errorf("expected title %q, got %q", "renamed", title.Title)
		}

		msg = decodeMessage(t, `{
			"message_id": 5, "date": 0, "chat": {"id": 1, "type": "group"},
			"migrate_to_chat_id": -100123
		}`)
		to, ok := msg.Kind.(MigrateToMessage)
		if !ok {
			t.Fatalf("expected MigrateToMessage, got %T", msg.Kind)
		}
		if to.ChatID != -100123 {
			t.Errorf("expected chat ID -100123, got %d", to.ChatID)
		}

		msg = decodeMessage(t, `{
			"message_id": 6, "date": 0, "chat": {"id": 1, "type": "group"},
			"pinned_message": {"message_id": 2, "date": 0, "chat": {"id": 1, "type": "group"}, "text": "pin me"}
		}`)
		pinned, ok := msg.Kind.(PinnedMessage)
		if !ok {
			t.Fatalf("expected PinnedMessage, got %T", msg.Kind)
		}
		if pinned.Message == nil || pinned.Message.ID != 2 {
			t.Errorf("unexpected pinned message: %+v", pinned.Message)
		}

		msg = decodeMessage(t, `{
			"message_id": 7, "date": 0, "chat": {"id": 1, "type": "group"},
			"group_chat_created": true
		}`)
		if _, ok := msg.Kind.(GroupCreatedMessage); !ok {
			t.Fatalf("expected GroupCreatedMessage, got %T", msg.Kind)
		}
	})

	t.Run("dice", func(t *testing.T) {
		msg := decodeMessage(t, `{
			"message_id": 8, "date": 0, "chat": {"id": 1, "type": "private"},
			"dice": {"emoji": "🎲", "value": 6}
		}`)
		dice, ok := msg.Kind.(DiceMessage)
		if !ok {
			t.Fatalf("expected DiceMessage, got %T", msg.Kind)
		}
		if dice.Dice.Value != 6 {
			t.Errorf("expected value 6, got %d", dice.Dice.Value)
		}
	})

	t.Run("no content key yields UnknownMessage, not an error", func(t *testing.T) {
		msg := decodeMessage(t, `{
			"message_id": 9, "date": 0, "chat": {"id": 1, "type": "private"},
			"some_future_content": {"x": 1}
		}`)
		if _, ok := msg.Kind.(UnknownMessage); !ok {
			t.Fatalf("expected UnknownMessage, got %T", msg.Kind)
		}
	})
}

func TestForwardOrigins(t *testing.T) {
	t.Run("from a visible user", func(t *testing.T) {
		msg := decodeMessage(t, `{
			"message_id": 1, "date": 10, "chat": {"id": 1, "type": "private"},
			"text": "fwd",
			"forward_from": {"id": 9, "is_bot": false, "first_name": "orig"},
			"forward_date": 5
		}`)
		if msg.Forward == nil {
			t.Fatal("expected forward info")
		}
		if msg.Forward.Date != 5 {
			t.Errorf("expected forward date 5, got %d", msg.Forward.Date)
		}
		user, ok := msg.Forward.Origin.(ForwardedFromUser)
		if !ok {
			t.Fatalf("expected ForwardedFromUser, got %T", msg.Forward.Origin)
		}
		if user.User.ID != 9 {
			t.Errorf("expected user 9, got %d", user.User.ID)
		}
	})

	t.Run("from a hidden user", func(t *testing.T) {
		msg := decodeMessage(t, `{
			"message_id": 2, "date": 10, "chat": {"id": 1, "type": "private"},
			"text": "fwd",
			"forward_sender_name": "Ghost",
			"forward_date": 5
		}`)
		hidden, ok := msg.Forward.Origin.(ForwardedFromHiddenUser)
		if !ok {
			t.Fatalf("expected ForwardedFromHiddenUser, got %T", msg.Forward.Origin)
		}
		if hidden.SenderName != "Ghost" {
			t.Errorf("expected sender name %q, got %q", "Ghost", hidden.SenderName)
		}
	})

	t.Run("from a channel", func(t *testing.T) {
		msg := decodeMessage(t, `{
			"message_id": 3, "date": 10, "chat": {"id": 1, "type": "private"},
			"text": "fwd",
			"forward_from_chat": {"id": -100, "type": "channel", "title": "news"},
			"forward_from_message_id": 77,
			"forward_signature": "ed",
			"forward_date": 5
		}`)
		channel, ok := msg.Forward.Origin.(ForwardedFromChannel)
		if !ok {
			t.Fatalf("expected ForwardedFromChannel, got %T", msg.Forward.Origin)
		}
		if channel.MessageID != 77 || channel.Signature != "ed" {
			t.Errorf("unexpected channel forward: %+v", channel)
		}
	})

	t.Run("from an anonymous admin", func(t *testing.T) {
		msg := decodeMessage(t, `{
			"message_id": 4, "date": 10, "chat": {"id": -200, "type": "supergroup"},
			"text": "fwd",
			"forward_from_chat": {"id": -200, "type": "supergroup", "title": "the group"},
			"forward_date": 5
		}`)
		admin, ok := msg.Forward.Origin.(ForwardedFromAnonymousAdmin)
		if !ok {
			t.Fatalf("expected ForwardedFromAnonymousAdmin, got %T", msg.Forward.Origin)
		}
		if admin.Chat.ID != -200 {
			t.Errorf("expected chat -200, got %d", admin.Chat.ID)
		}
	})
}

func TestChatIDMarshal(t *testing.T) {
	t.Run("numeric", func(t *testing.T) {
		raw, err := json.Marshal(ChatID{ID: -100123})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(raw) != "-100123" {
			t.Errorf("expected -100123, got %s", raw)
		}
	})

	t.Run("username gains the @ prefix", func(t *testing.T) {
		raw, err := json.Marshal(ChatID{Username: "somechannel"})
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(raw) != `"@somechannel"` {
			t.Errorf("expected \"@somechannel\", got %s", raw)
		}
	})
}
