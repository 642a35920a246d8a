package bot

import (
	"context"
	"encoding/json"

	"github.com/jholhewres/tgflow/pkg/tgflow/types"
	"github.com/jholhewres/tgflow/pkg/tgflow/wire"
)

// Each Bot API method gets a small builder: required parameters at
// construction, optionals configured fluently, and a terminal Call that
// performs the request. Only the methods the engine and common bots need
// are enumerated here; Bot.Raw covers everything else.

// ---------- getMe ----------

// GetMeCall fetches basic information about the bot.
type GetMeCall struct {
	bot *Bot
}

// GetMe builds a getMe call.
func (b *Bot) GetMe() *GetMeCall {
	return &GetMeCall{bot: b}
}

// Call performs the request.
func (c *GetMeCall) Call(ctx context.Context) (*types.User, error) {
	raw, err := c.bot.call(ctx, "getMe", nil)
	if err != nil {
		return nil, err
	}
	var me types.User
	if err := json.Unmarshal(raw, &me); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return &me, nil
}

// ---------- getUpdates ----------

// GetUpdatesCall fetches updates via long polling.
type GetUpdatesCall struct {
	bot     *Bot
	payload *wire.Payload
}

// GetUpdates builds a getUpdates call.
func (b *Bot) GetUpdates() *GetUpdatesCall {
	return &GetUpdatesCall{bot: b, payload: wire.NewPayload()}
}

// Offset sets the first update ID to return. Negative values address the
// last -offset updates, per Bot API semantics.
func (c *GetUpdatesCall) Offset(offset int64) *GetUpdatesCall {
	c.payload.Set("offset", offset)
	return c
}

// Limit caps the number of updates per response (1..100).
func (c *GetUpdatesCall) Limit(limit int) *GetUpdatesCall {
	c.payload.Set("limit", limit)
	return c
}

// Timeout sets the server-side long-polling timeout in seconds.
func (c *GetUpdatesCall) Timeout(seconds int) *GetUpdatesCall {
	c.payload.Set("timeout", seconds)
	return c
}

// AllowedUpdates restricts which update kinds the server delivers.
func (c *GetUpdatesCall) AllowedUpdates(kinds []types.AllowedUpdate) *GetUpdatesCall {
	c.payload.Set("allowed_updates", kinds)
	return c
}

// Call performs the request.
func (c *GetUpdatesCall) Call(ctx context.Context) ([]types.Update, error) {
	raw, err := c.bot.call(ctx, "getUpdates", c.payload)
	if err != nil {
		return nil, err
	}
	var updates []types.Update
	if err := json.Unmarshal(raw, &updates); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return updates, nil
}

// ---------- setWebhook / deleteWebhook / getWebhookInfo ----------

// SetWebhookCall registers an HTTPS endpoint for update delivery.
type SetWebhookCall struct {
	bot     *Bot
	payload *wire.Payload
}

// SetWebhook builds a setWebhook call for the given public URL.
func (b *Bot) SetWebhook(url string) *SetWebhookCall {
	p := wire.NewPayload()
	p.Set("url", url)
	return &SetWebhookCall{bot: b, payload: p}
}

// IPAddress fixes the IP used instead of resolving the URL's host.
func (c *SetWebhookCall) IPAddress(ip string) *SetWebhookCall {
	c.payload.Set("ip_address", ip)
	return c
}

// Certificate uploads a self-signed certificate.
func (c *SetWebhookCall) Certificate(cert types.InputFile) *SetWebhookCall {
	c.payload.AttachFile("certificate", cert)
	return c
}

// MaxConnections caps simultaneous webhook connections (1..100).
func (c *SetWebhookCall) MaxConnections(n int) *SetWebhookCall {
	c.payload.Set("max_connections", n)
	return c
}

// AllowedUpdates restricts which update kinds the server delivers.
func (c *SetWebhookCall) AllowedUpdates(kinds []types.AllowedUpdate) *SetWebhookCall {
	c.payload.Set("allowed_updates", kinds)
	return c
}

// DropPendingUpdates discards updates accumulated before the switch.
func (c *SetWebhookCall) DropPendingUpdates() *SetWebhookCall {
	c.payload.Set("drop_pending_updates", true)
	return c
}

// Call performs the request.
func (c *SetWebhookCall) Call(ctx context.Context) error {
	_, err := c.bot.call(ctx, "setWebhook", c.payload)
	return err
}

// DeleteWebhookCall removes a previously registered webhook.
type DeleteWebhookCall struct {
	bot     *Bot
	payload *wire.Payload
}

// DeleteWebhook builds a deleteWebhook call.
func (b *Bot) DeleteWebhook() *DeleteWebhookCall {
	return &DeleteWebhookCall{bot: b, payload: wire.NewPayload()}
}

// DropPendingUpdates discards updates accumulated under the webhook.
func (c *DeleteWebhookCall) DropPendingUpdates() *DeleteWebhookCall {
	c.payload.Set("drop_pending_updates", true)
	return c
}

// Call performs the request.
func (c *DeleteWebhookCall) Call(ctx context.Context) error {
	_, err := c.bot.call(ctx, "deleteWebhook", c.payload)
	return err
}

// GetWebhookInfoCall fetches the current webhook configuration.
type GetWebhookInfoCall struct {
	bot *Bot
}

// GetWebhookInfo builds a getWebhookInfo call.
func (b *Bot) GetWebhookInfo() *GetWebhookInfoCall {
	return &GetWebhookInfoCall{bot: b}
}

// Call performs the request.
func (c *GetWebhookInfoCall) Call(ctx context.Context) (*types.WebhookInfo, error) {
	raw, err := c.bot.call(ctx, "getWebhookInfo", nil)
	if err != nil {
		return nil, err
	}
	var info types.WebhookInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return &info, nil
}

// ---------- setMyCommands ----------

// SetMyCommandsCall installs the bot's command descriptions.
type SetMyCommandsCall struct {
	bot     *Bot
	payload *wire.Payload
}

// SetMyCommands builds a setMyCommands call.
func (b *Bot) SetMyCommands(commands []types.BotCommand) *SetMyCommandsCall {
	p := wire.NewPayload()
	p.Set("commands", commands)
	return &SetMyCommandsCall{bot: b, payload: p}
}

// Call performs the request.
func (c *SetMyCommandsCall) Call(ctx context.Context) error {
	_, err := c.bot.call(ctx, "setMyCommands", c.payload)
	return err
}

// ---------- sendMessage ----------

// SendMessageCall sends a text message.
type SendMessageCall struct {
	bot     *Bot
	payload *wire.Payload
}

// SendMessage builds a sendMessage call.
func (b *Bot) SendMessage(chat types.ChatID, text string) *SendMessageCall {
	p := wire.NewPayload()
	p.Set("chat_id", chat)
	p.Set("text", text)
	return &SendMessageCall{bot: b, payload: p}
}

// ParseMode sets the text's formatting mode.
func (c *SendMessageCall) ParseMode(mode types.ParseMode) *SendMessageCall {
	c.payload.Set("parse_mode", mode)
	return c
}

// ReplyTo makes the message a reply.
func (c *SendMessageCall) ReplyTo(messageID int64) *SendMessageCall {
	c.payload.Set("reply_to_message_id", messageID)
	return c
}

// DisableWebPagePreview disables link previews.
func (c *SendMessageCall) DisableWebPagePreview() *SendMessageCall {
	c.payload.Set("disable_web_page_preview", true)
	return c
}

// DisableNotification sends the message silently.
func (c *SendMessageCall) DisableNotification() *SendMessageCall {
	c.payload.Set("disable_notification", true)
	return c
}

// ReplyMarkup attaches an inline keyboard.
func (c *SendMessageCall) ReplyMarkup(markup types.InlineKeyboardMarkup) *SendMessageCall {
	c.payload.Set("reply_markup", markup)
	return c
}

// Call performs the request.
func (c *SendMessageCall) Call(ctx context.Context) (*types.Message, error) {
	return callMessage(ctx, c.bot, "sendMessage", c.payload)
}

// ---------- forwardMessage ----------

// ForwardMessageCall forwards a message between chats.
type ForwardMessageCall struct {
	bot     *Bot
	payload *wire.Payload
}

// ForwardMessage builds a forwardMessage call.
func (b *Bot) ForwardMessage(chat, fromChat types.ChatID, messageID int64) *ForwardMessageCall {
	p := wire.NewPayload()
	p.Set("chat_id", chat)
	p.Set("from_chat_id", fromChat)
	p.Set("message_id", messageID)
	return &ForwardMessageCall{bot: b, payload: p}
}

// DisableNotification forwards the message silently.
func (c *ForwardMessageCall) DisableNotification() *ForwardMessageCall {
	c.payload.Set("disable_notification", true)
	return c
}

// Call performs the request.
func (c *ForwardMessageCall) Call(ctx context.Context) (*types.Message, error) {
	return callMessage(ctx, c.bot, "forwardMessage", c.payload)
}

// ---------- sendPhoto / sendDocument ----------

// SendPhotoCall sends a photo.
type SendPhotoCall struct {
	bot     *Bot
	payload *wire.Payload
}

// SendPhoto builds a sendPhoto call.
func (b *Bot) SendPhoto(chat types.ChatID, photo types.InputFile) *SendPhotoCall {
	p := wire.NewPayload()
	p.Set("chat_id", chat)
	p.AttachFile("photo", photo)
	return &SendPhotoCall{bot: b, payload: p}
}

// Caption sets the photo's caption.
func (c *SendPhotoCall) Caption(caption string) *SendPhotoCall {
	c.payload.Set("caption", caption)
	return c
}

// ParseMode sets the caption's formatting mode.
func (c *SendPhotoCall) ParseMode(mode types.ParseMode) *SendPhotoCall {
	c.payload.Set("parse_mode", mode)
	return c
}

// ReplyTo makes the photo a reply.
func (c *SendPhotoCall) ReplyTo(messageID int64) *SendPhotoCall {
	c.payload.Set("reply_to_message_id", messageID)
	return c
}

// Call performs the request.
func (c *SendPhotoCall) Call(ctx context.Context) (*types.Message, error) {
	return callMessage(ctx, c.bot, "sendPhoto", c.payload)
}

// SendDocumentCall sends a general file.
type SendDocumentCall struct {
	bot     *Bot
	payload *wire.Payload
}

// SendDocument builds a sendDocument call.
func (b *Bot) SendDocument(chat types.ChatID, document types.InputFile) *SendDocumentCall {
	p := wire.NewPayload()
	p.Set("chat_id", chat)
	p.AttachFile("document", document)
	return &SendDocumentCall{bot: b, payload: p}
}

// Caption sets the document's caption.
func (c *SendDocumentCall) Caption(caption string) *SendDocumentCall {
	c.payload.Set("caption", caption)
	return c
}

// Thumb uploads a custom thumbnail.
func (c *SendDocumentCall) Thumb(thumb types.InputFile) *SendDocumentCall {
	c.payload.AttachFile("thumb", thumb)
	return c
}

// Call performs the request.
func (c *SendDocumentCall) Call(ctx context.Context) (*types.Message, error) {
	return callMessage(ctx, c.bot, "sendDocument", c.payload)
}

// ---------- sendChatAction ----------

// SendChatActionCall shows a chat action such as "typing".
type SendChatActionCall struct {
	bot     *Bot
	payload *wire.Payload
}

// SendChatAction builds a sendChatAction call.
func (b *Bot) SendChatAction(chat types.ChatID, action types.ChatAction) *SendChatActionCall {
	p := wire.NewPayload()
	p.Set("chat_id", chat)
	p.Set("action", string(action))
	return &SendChatActionCall{bot: b, payload: p}
}

// Call performs the request.
func (c *SendChatActionCall) Call(ctx context.Context) error {
	_, err := c.bot.call(ctx, "sendChatAction", c.payload)
	return err
}

// ---------- editMessageText / deleteMessage ----------

// EditMessageTextCall edits the text of a sent message.
type EditMessageTextCall struct {
	bot     *Bot
	payload *wire.Payload
}

// EditMessageText builds an editMessageText call for a regular message.
func (b *Bot) EditMessageText(chat types.ChatID, messageID int64, text string) *EditMessageTextCall {
	p := wire.NewPayload()
	p.Set("chat_id", chat)
	p.Set("message_id", messageID)
	p.Set("text", text)
	return &EditMessageTextCall{bot: b, payload: p}
}

// EditInlineMessageText builds an editMessageText call for an inline
// message addressed by its opaque ID.
func (b *Bot) EditInlineMessageText(inlineMessageID, text string) *EditMessageTextCall {
	p := wire.NewPayload()
	p.Set("inline_message_id", inlineMessageID)
	p.Set("text", text)
	return &EditMessageTextCall{bot: b, payload: p}
}

// ParseMode sets the text's formatting mode.
func (c *EditMessageTextCall) ParseMode(mode types.ParseMode) *EditMessageTextCall {
	c.payload.Set("parse_mode", mode)
	return c
}

// ReplyMarkup replaces the message's inline keyboard.
func (c *EditMessageTextCall) ReplyMarkup(markup types.InlineKeyboardMarkup) *EditMessageTextCall {
	c.payload.Set("reply_markup", markup)
	return c
}

// Call performs the request.
func (c *EditMessageTextCall) Call(ctx context.Context) error {
	_, err := c.bot.call(ctx, "editMessageText", c.payload)
	return err
}

// DeleteMessageCall deletes a message.
type DeleteMessageCall struct {
	bot     *Bot
	payload *wire.Payload
}

// DeleteMessage builds a deleteMessage call.
func (b *Bot) DeleteMessage(chat types.ChatID, messageID int64) *DeleteMessageCall {
	p := wire.NewPayload()
	p.Set("chat_id", chat)
	p.Set("message_id", messageID)
	return &DeleteMessageCall{bot: b, payload: p}
}

// Call performs the request.
func (c *DeleteMessageCall) Call(ctx context.Context) error {
	_, err := c.bot.call(ctx, "deleteMessage", c.payload)
	return err
}

// ---------- query answers ----------

// AnswerCallbackQueryCall acknowledges a callback query.
type AnswerCallbackQueryCall struct {
	bot     *Bot
	payload *wire.Payload
}

// AnswerCallbackQuery builds an answerCallbackQuery call.
func (b *Bot) AnswerCallbackQuery(queryID string) *AnswerCallbackQueryCall {
	p := wire.NewPayload()
	p.Set("callback_query_id", queryID)
	return &AnswerCallbackQueryCall{bot: b, payload: p}
}

// Text shows a notification to the user.
func (c *AnswerCallbackQueryCall) Text(text string) *AnswerCallbackQueryCall {
	c.payload.Set("text", text)
	return c
}

// ShowAlert upgrades the notification to an alert dialog.
func (c *AnswerCallbackQueryCall) ShowAlert() *AnswerCallbackQueryCall {
	c.payload.Set("show_alert", true)
	return c
}

// URL asks the client to open the given URL.
func (c *AnswerCallbackQueryCall) URL(url string) *AnswerCallbackQueryCall {
	c.payload.Set("url", url)
	return c
}

// Call performs the request.
func (c *AnswerCallbackQueryCall) Call(ctx context.Context) error {
	_, err := c.bot.call(ctx, "answerCallbackQuery", c.payload)
	return err
}

// AnswerShippingQueryCall answers a shipping query.
type AnswerShippingQueryCall struct {
	bot     *Bot
	payload *wire.Payload
}

// AnswerShippingQueryOK builds a positive answerShippingQuery call.
func (b *Bot) AnswerShippingQueryOK(queryID string, options json.RawMessage) *AnswerShippingQueryCall {
	p := wire.NewPayload()
	p.Set("shipping_query_id", queryID)
	p.Set("ok", true)
	p.Set("shipping_options", options)
	return &AnswerShippingQueryCall{bot: b, payload: p}
}

// AnswerShippingQueryError builds a negative answerShippingQuery call.
func (b *Bot) AnswerShippingQueryError(queryID, message string) *AnswerShippingQueryCall {
	p := wire.NewPayload()
	p.Set("shipping_query_id", queryID)
	p.Set("ok", false)
	p.Set("error_message", message)
	return &AnswerShippingQueryCall{bot: b, payload: p}
}

// Call performs the request.
func (c *AnswerShippingQueryCall) Call(ctx context.Context) error {
	_, err := c.bot.call(ctx, "answerShippingQuery", c.payload)
	return err
}

// AnswerPreCheckoutQueryCall answers a pre-checkout query.
type AnswerPreCheckoutQueryCall struct {
	bot     *Bot
	payload *wire.Payload
}

// AnswerPreCheckoutQueryOK builds a positive answerPreCheckoutQuery call.
func (b *Bot) AnswerPreCheckoutQueryOK(queryID string) *AnswerPreCheckoutQueryCall {
	p := wire.NewPayload()
	p.Set("pre_checkout_query_id", queryID)
	p.Set("ok", true)
	return &AnswerPreCheckoutQueryCall{bot: b, payload: p}
}

// AnswerPreCheckoutQueryError builds a negative answerPreCheckoutQuery
// call.
func (b *Bot) AnswerPreCheckoutQueryError(queryID, message string) *AnswerPreCheckoutQueryCall {
	p := wire.NewPayload()
	p.Set("pre_checkout_query_id", queryID)
	p.Set("ok", false)
	p.Set("error_message", message)
	return &AnswerPreCheckoutQueryCall{bot: b, payload: p}
}

// Call performs the request.
func (c *AnswerPreCheckoutQueryCall) Call(ctx context.Context) error {
	_, err := c.bot.call(ctx, "answerPreCheckoutQuery", c.payload)
	return err
}

// AnswerInlineQueryCall answers an inline query. Results are passed as
// pre-encoded JSON; the result-type zoo is out of this module's scope.
type AnswerInlineQueryCall struct {
	bot     *Bot
	payload *wire.Payload
}

// AnswerInlineQuery builds an answerInlineQuery call.
func (b *Bot) AnswerInlineQuery(queryID string, results json.RawMessage) *AnswerInlineQueryCall {
	p := wire.NewPayload()
	p.Set("inline_query_id", queryID)
	p.Set("results", results)
	return &AnswerInlineQueryCall{bot: b, payload: p}
}

// CacheTime sets how long the client may cache the results, in seconds.
func (c *AnswerInlineQueryCall) CacheTime(seconds int) *AnswerInlineQueryCall {
	c.payload.Set("cache_time", seconds)
	return c
}

// Call performs the request.
func (c *AnswerInlineQueryCall) Call(ctx context.Context) error {
	_, err := c.bot.call(ctx, "answerInlineQuery", c.payload)
	return err
}

func callMessage(ctx context.Context, b *Bot, method string, payload *wire.Payload) (*types.Message, error) {
	raw, err := b.call(ctx, method, payload)
	if err != nil {
		return nil, err
	}
	var msg types.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return &msg, nil
}
