// Package upload bridges multipart file uploads and the grievance ledger's
// inline attachment representation. Parts are staged to temporary files,
// encoded to base64, and the staged copy is removed on success and failure
// paths alike.
package upload

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"

	"github.com/rs/zerolog"

	"github.com/freshlink/marketplace-api/internal/core/domain"
)

// largeFileWarnBytes is the size above which an unbounded encode logs a
// warning. Nothing is truncated; the whole file is still read into memory.
const largeFileWarnBytes = 8 << 20

// StagedFile is one multipart part copied to temporary storage.
type StagedFile struct {
	Path     string
	Name     string
	MimeType string
	Size     int64

	removed bool
}

// Remove deletes the staged temp file. Safe to call more than once; the file
// is deleted exactly once and a missing file is not an error.
func (f *StagedFile) Remove() error {
	if f.removed {
		return nil
	}
	f.removed = true
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove staged upload %s: %w", f.Path, err)
	}
	return nil
}

// Codec converts staged uploads to inline base64 attachments and back.
type Codec struct {
	dir      string
	maxBytes int64
	log      zerolog.Logger
}

// NewCodec creates a Codec staging files under dir (empty = the OS temp
// directory). maxBytes of 0 leaves attachment size unbounded; a positive
// value makes Encode fail with domain.ErrAttachmentTooLarge when exceeded.
func NewCodec(dir string, maxBytes int64, log zerolog.Logger) *Codec {
	return &Codec{dir: dir, maxBytes: maxBytes, log: log}
}

// Stage copies the uploaded part to a temp file, capturing the client's
// original filename and declared content type.
func (c *Codec) Stage(fh *multipart.FileHeader) (*StagedFile, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(c.dir, "attachment-*")
	if err != nil {
		return nil, fmt.Errorf("stage upload %q: %w", fh.Filename, err)
	}

	size, err := io.Copy(tmp, src)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return nil, fmt.Errorf("stage upload %q: %w", fh.Filename, err)
	}

	return &StagedFile{
		Path:     tmp.Name(),
		Name:     fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Size:     size,
	}, nil
}

// Encode reads the staged file's full contents into memory and returns the
// inline representation. The staged file is left on disk; callers own its
// removal (typically via defer, so cleanup runs on error paths too).
func (c *Codec) Encode(f *StagedFile) (domain.Attachment, error) {
	if c.maxBytes > 0 && f.Size > c.maxBytes {
		return domain.Attachment{}, fmt.Errorf("%w: %q is %d bytes, limit %d",
			domain.ErrAttachmentTooLarge, f.Name, f.Size, c.maxBytes)
	}
	if c.maxBytes == 0 && f.Size > largeFileWarnBytes {
		c.log.Warn().Str("filename", f.Name).Int64("bytes", f.Size).
			Msg("encoding large attachment with no configured size limit")
	}

	data, err := os.ReadFile(f.Path)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("read staged upload %q: %w", f.Name, err)
	}

	return domain.Attachment{
		Filename: f.Name,
		MimeType: f.MimeType,
		Content:  base64.StdEncoding.EncodeToString(data),
	}, nil
}

// Decode reconstructs the original bytes of a stored attachment.
func (c *Codec) Decode(att domain.Attachment) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(att.Content)
	if err != nil {
		return nil, fmt.Errorf("decode attachment %q: %w", att.Filename, err)
	}
	return data, nil
}
