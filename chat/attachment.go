package chat

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"sync"
)

// Attachment is a binary or URL-referenced media item with a resolved MIME
// type. It is owned by the turn that produced it and is read-only to the
// adapter. Base64 encoding of the content is computed lazily and cached.
type Attachment struct {
	// URL references the media remotely. Empty for inline content.
	URL string
	// MimeType is the resolved MIME type, e.g. "image/png", "audio/wav",
	// "application/pdf".
	MimeType string
	// Content is the raw media payload. Empty for URL-only attachments.
	Content []byte

	encodeOnce sync.Once
	encoded    string
}

// ResolveType returns the attachment's resolved MIME type.
func (attachment *Attachment) ResolveType() string {
	return attachment.MimeType
}

// Base64Content returns the base64 encoding of the attachment content.
// The encoding is computed once and cached for subsequent calls.
func (attachment *Attachment) Base64Content() string {
	attachment.encodeOnce.Do(func() {
		attachment.encoded = base64.StdEncoding.EncodeToString(attachment.Content)
	})
	return attachment.encoded
}

// ID returns a stable identifier for the attachment, derived from a hash of
// its content (or its URL when no inline content is present).
func (attachment *Attachment) ID() string {
	hasher := sha256.New()
	if len(attachment.Content) > 0 {
		hasher.Write(attachment.Content)
	} else {
		hasher.Write([]byte(attachment.URL))
	}
	return hex.EncodeToString(hasher.Sum(nil))[:16]
}
