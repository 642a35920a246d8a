package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/jholhewres/tgflow/pkg/tgflow/wire"
)

// envelope is the response wrapper every Bot API method returns.
type envelope struct {
	OK          *bool           `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description *string         `json:"description"`
	ErrorCode   *int            `json:"error_code"`
	Parameters  *struct {
		MigrateToChatID *int64 `json:"migrate_to_chat_id"`
		RetryAfter      *int   `json:"retry_after"`
	} `json:"parameters"`
}

// call performs one POST to /bot<token>/<method> and returns the raw
// result or a typed error. It holds no state between requests.
func (b *Bot) call(ctx context.Context, method string, payload *wire.Payload) (json.RawMessage, error) {
	if payload == nil {
		payload = wire.NewPayload()
	}
	body, contentType, err := payload.Encode()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.methodURL(method), bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	return parseResponse(raw)
}

// parseResponse applies the envelope decoding rule: an HTML-looking body
// means the server is down; otherwise the JSON envelope either carries a
// result or classifies as a request error with a mandatory description
// and error code.
func parseResponse(raw []byte) (json.RawMessage, error) {
	if len(raw) > 0 && raw[0] == '<' {
		return nil, ErrServerUnavailable
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	ok := env.OK == nil || *env.OK
	if ok && env.Result != nil {
		return env.Result, nil
	}

	if env.Description == nil || env.ErrorCode == nil {
		return nil, &ParseError{Raw: raw, Err: errMissingErrorFields}
	}

	reqErr := &RequestError{
		Code:        *env.ErrorCode,
		Description: *env.Description,
	}
	if env.Parameters != nil {
		if env.Parameters.MigrateToChatID != nil {
			reqErr.MigrateToChatID = *env.Parameters.MigrateToChatID
		}
		if env.Parameters.RetryAfter != nil {
			reqErr.RetryAfter = time.Duration(*env.Parameters.RetryAfter) * time.Second
		}
	}
	return nil, reqErr
}

// Raw calls an arbitrary Bot API method with the given payload. It is the
// escape hatch for methods without a dedicated builder.
func (b *Bot) Raw(ctx context.Context, method string, payload *wire.Payload) (json.RawMessage, error) {
	return b.call(ctx, method, payload)
}
