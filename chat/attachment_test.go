package chat

import "testing"

func TestAttachment_Base64ContentCached(t *testing.T) {
	attachment := &Attachment{MimeType: "image/png", Content: []byte{1, 2, 3}}

	first := attachment.Base64Content()
	if first != "AQID" {
		t.Errorf("expected 'AQID', got %q", first)
	}

	// Mutating the raw content after the first encoding must not change the
	// cached value; history replays rely on a stable encoding.
	attachment.Content[0] = 9
	if attachment.Base64Content() != first {
		t.Error("encoding must be computed once and cached")
	}
}

func TestAttachment_IDStable(t *testing.T) {
	a := &Attachment{Content: []byte("same bytes")}
	b := &Attachment{Content: []byte("same bytes")}
	if a.ID() != b.ID() {
		t.Error("identical content must produce identical IDs")
	}
	if len(a.ID()) != 16 {
		t.Errorf("expected 16-character ID, got %q", a.ID())
	}

	urlOnly := &Attachment{URL: "https://example.com/cat.jpg"}
	if urlOnly.ID() == a.ID() {
		t.Error("URL-derived ID must differ from content-derived ID")
	}
}
