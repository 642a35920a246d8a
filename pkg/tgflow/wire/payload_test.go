package wire

import (
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/jholhewres/tgflow/pkg/tgflow/types"
)

func TestJSONEncoding(t *testing.T) {
	t.Run("fields keep insertion order, absent optionals are omitted", func(t *testing.T) {
		p := NewPayload()
		p.Set("chat_id", types.ChatID{ID: 42})
		p.Set("text", "hi")

		body, contentType, err := p.Encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if contentType != ContentTypeJSON {
			t.Errorf("expected %q, got %q", ContentTypeJSON, contentType)
		}
		if string(body) != `{"chat_id":42,"text":"hi"}` {
			t.Errorf("unexpected body: %s", body)
		}
	})

	t.Run("chat usernames serialize as @strings", func(t *testing.T) {
		p := NewPayload()
		p.Set("chat_id", types.ChatID{Username: "channel"})

		body, _, err := p.Encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if string(body) != `{"chat_id":"@channel"}` {
			t.Errorf("unexpected body: %s", body)
		}
	})

	t.Run("remote files stay on the JSON path", func(t *testing.T) {
		p := NewPayload()
		p.Set("chat_id", types.ChatID{ID: 1})
		p.AttachFile("photo", types.FileFromID("remote-id"))

		if p.HasFiles() {
			t.Fatal("a file_id reference must not trigger multipart")
		}
		body, _, err := p.Encode()
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if string(body) != `{"chat_id":1,"photo":"remote-id"}` {
			t.Errorf("unexpected body: %s", body)
		}
	})
}

func TestMultipartEncoding(t *testing.T) {
	p := NewPayload()
	p.Set("chat_id", int64(42))
	p.Set("caption", "look")
	p.Set("allowed", []string{"a", "b"})
	p.AttachFile("photo", types.FileBytes("pic.png", []byte("pixels")))
	p.AttachFile("thumb", types.FileBytes("small.png", []byte("tiny")))

	if !p.HasFiles() {
		t.Fatal("local bytes must switch to multipart")
	}

	body, contentType, err := p.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("parse content type: %v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Fatalf("expected multipart/form-data, got %q", mediaType)
	}

	fields := map[string]string{}
	files := map[string]string{}
	filenames := map[string]string{}

	reader := multipart.NewReader(strings.NewReader(string(body)), params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("reading part: %v", err)
		}
		content, err := io.ReadAll(part)
		if err != nil {
			t.Fatalf("reading part body: %v", err)
		}
		if part.FileName() != "" {
			files[part.FormName()] = string(content)
			filenames[part.FormName()] = part.FileName()
		} else {
			fields[part.FormName()] = string(content)
		}
	}

	t.Run("plain fields as primitive text", func(t *testing.T) {
		if fields["chat_id"] != "42" {
			t.Errorf("expected chat_id 42, got %q", fields["chat_id"])
		}
		if fields["caption"] != "look" {
			t.Errorf("expected caption, got %q", fields["caption"])
		}
	})

	t.Run("composite fields as JSON", func(t *testing.T) {
		var allowed []string
		if err := json.Unmarshal([]byte(fields["allowed"]), &allowed); err != nil {
			t.Fatalf("allowed is not JSON: %v", err)
		}
		if len(allowed) != 2 || allowed[0] != "a" {
			t.Errorf("unexpected allowed field: %v", allowed)
		}
	})

	t.Run("files attach under generated names", func(t *testing.T) {
		if files["photo_0"] != "pixels" {
			t.Errorf("expected photo bytes under photo_0, got %q", files["photo_0"])
		}
		if filenames["photo_0"] != "pic.png" {
			t.Errorf("expected filename pic.png, got %q", filenames["photo_0"])
		}
		if files["thumb_1"] != "tiny" {
			t.Errorf("expected thumb bytes under thumb_1, got %q", files["thumb_1"])
		}
	})

	t.Run("fields reference files as attach://", func(t *testing.T) {
		if fields["photo"] != "attach://photo_0" {
			t.Errorf("expected attach://photo_0, got %q", fields["photo"])
		}
		if fields["thumb"] != "attach://thumb_1" {
			t.Errorf("expected attach://thumb_1, got %q", fields["thumb"])
		}
	})
}
