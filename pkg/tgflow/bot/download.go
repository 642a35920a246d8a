package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jholhewres/tgflow/pkg/tgflow/types"
	"github.com/jholhewres/tgflow/pkg/tgflow/wire"
)

// GetFileCall resolves a file_id into a downloadable path.
type GetFileCall struct {
	bot     *Bot
	payload *wire.Payload
}

// GetFile builds a getFile call.
func (b *Bot) GetFile(fileID string) *GetFileCall {
	p := wire.NewPayload()
	p.Set("file_id", fileID)
	return &GetFileCall{bot: b, payload: p}
}

// Call performs the request.
func (c *GetFileCall) Call(ctx context.Context) (*types.File, error) {
	raw, err := c.bot.call(ctx, "getFile", c.payload)
	if err != nil {
		return nil, err
	}
	var file types.File
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return &file, nil
}

// DownloadFile fetches a file's bytes given the path returned by getFile.
func (b *Bot) DownloadFile(ctx context.Context, filePath string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.fileURL(filePath), nil)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: unexpected status %s", filePath, resp.Status)
	}

	return io.ReadAll(resp.Body)
}
