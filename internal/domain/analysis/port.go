package analysis

import "context"

// Scorer port (interface for provider strategies). Implementations translate
// the provider's reply into a normalized Result at this boundary.
type Scorer interface {
	ScoreText(ctx context.Context, prompt string) (*Result, error)
	ScoreImage(ctx context.Context, data []byte, contentType string) (*Result, error)
}

// History port (interface for the in-process record list).
type History interface {
	Append(rec *Record)
	List() []*Record
}

// StoredFile describes one uploaded file.
type StoredFile struct {
	URL         string `json:"file_url"`
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"mimetype,omitempty"`
}

// FileStore port (interface for upload storage backends).
type FileStore interface {
	Save(ctx context.Context, filename, contentType string, data []byte) (*StoredFile, error)
	// Open returns the stored bytes for a key, or false when the backend
	// does not serve content locally or the key is unknown.
	Open(key string) ([]byte, string, bool)
}

// TextExtractor port for client-side OCR / document extraction collaborators.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte, contentType string) (string, error)
}
