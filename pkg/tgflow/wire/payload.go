// Package wire builds Bot API request bodies. A payload encodes as a
// single JSON object unless it carries a local file, in which case the
// whole body switches to multipart/form-data: files become parts under
// generated names and are referenced from the other fields as
// attach://<name>, the way the Bot API expects.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/google/uuid"

	"github.com/jholhewres/tgflow/pkg/tgflow/types"
)

// ContentTypeJSON is the content type of the JSON encoding path.
const ContentTypeJSON = "application/json"

type filePart struct {
	name     string
	filename string
	data     []byte
}

// Payload accumulates the fields of one outgoing request. Field order is
// preserved so bodies are reproducible.
type Payload struct {
	keys   []string
	fields map[string]any
	files  []filePart
}

// NewPayload returns an empty payload.
func NewPayload() *Payload {
	return &Payload{fields: map[string]any{}}
}

// Set stores a field. Values marshal with encoding/json; callers omit
// absent optionals by not calling Set at all.
func (p *Payload) Set(key string, value any) *Payload {
	if _, dup := p.fields[key]; !dup {
		p.keys = append(p.keys, key)
	}
	p.fields[key] = value
	return p
}

// AttachFile stores a file-bearing field. Remote files (file_id or URL)
// become plain string fields; local bytes are registered as a multipart
// part named <key>_<n> and the field is set to attach://<key>_<n>.
func (p *Payload) AttachFile(key string, file types.InputFile) *Payload {
	if !file.IsLocal() {
		return p.Set(key, file.Ref())
	}

	name := key + "_" + strconv.Itoa(len(p.files))
	p.files = append(p.files, filePart{
		name:     name,
		filename: file.Name,
		data:     file.Data,
	})
	return p.Set(key, "attach://"+name)
}

// HasFiles reports whether encoding will take the multipart path.
func (p *Payload) HasFiles() bool {
	return len(p.files) > 0
}

// Encode produces the request body and its content type.
func (p *Payload) Encode() ([]byte, string, error) {
	if !p.HasFiles() {
		return p.encodeJSON()
	}
	return p.encodeMultipart()
}

func (p *Payload) encodeJSON() ([]byte, string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, "", err
		}
		v, err := json.Marshal(p.fields[key])
		if err != nil {
			return nil, "", fmt.Errorf("encode field %q: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), ContentTypeJSON, nil
}

func (p *Payload) encodeMultipart() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.SetBoundary("tgflow-" + uuid.NewString()); err != nil {
		return nil, "", err
	}

	for _, key := range p.keys {
		text, err := fieldText(p.fields[key])
		if err != nil {
			return nil, "", fmt.Errorf("encode field %q: %w", key, err)
		}
		if err := w.WriteField(key, text); err != nil {
			return nil, "", err
		}
	}

	for _, f := range p.files {
		filename := f.filename
		if filename == "" {
			filename = f.name
		}
		part, err := w.CreateFormFile(f.name, filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

// fieldText renders a field for the multipart path: strings and numbers
// go as plain text, everything else as JSON.
func fieldText(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	// Marshalers that produce a bare JSON string (ChatID with @username,
	// ParseMode) still come out as plain text.
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s, nil
	}
	return string(raw), nil
}
