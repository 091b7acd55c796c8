// Package uploads turns untrusted uploaded files into safely-addressable
// content assets under a per-section namespace, and streams them back out.
package uploads

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/vitrine-cms/vitrine/internal/app/ports"
)

// MaxUploadBytes is the hard ceiling for one uploaded file.
const MaxUploadBytes = 100 << 20

// PathPrefix is the public namespace every reference path starts with.
const PathPrefix = "/uploads/"

// allowedExtensions is the upload allow-list: images plus a small set of
// video formats. Everything else is rejected before any write happens.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".mp4":  true,
	".webm": true,
	".mov":  true,
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Ingestor validates, names, and persists uploads under its storage root.
type Ingestor struct {
	root string
	now  func() time.Time
}

// NewIngestor creates an ingestor rooted at dir. The root directory itself
// is created on demand.
func NewIngestor(dir string) (*Ingestor, error) {
	absolute, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload root: %w", err)
	}
	if err := os.MkdirAll(absolute, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &Ingestor{root: absolute, now: time.Now}, nil
}

// Ingest writes the upload under <root>/<section>/ and returns its
// reference path. The extension allow-list and the size ceiling are both
// checked before anything touches disk.
func (i *Ingestor) Ingest(content io.Reader, size int64, originalName, section string) (string, error) {
	extension := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[extension] {
		return "", fmt.Errorf("%w: file type %q is not allowed", ports.ErrValidation, extension)
	}
	if size > MaxUploadBytes {
		return "", fmt.Errorf("%w: file exceeds the %d byte limit", ports.ErrValidation, int64(MaxUploadBytes))
	}
	section = sanitizeName(section)
	if section == "" {
		return "", fmt.Errorf("%w: section is required", ports.ErrValidation)
	}

	directory := filepath.Join(i.root, section)
	if err := os.MkdirAll(directory, 0o755); err != nil {
		return "", fmt.Errorf("create section directory: %w", err)
	}

	// The timestamp prefix keeps concurrent uploads of the same name from
	// colliding.
	filename := fmt.Sprintf("%d-%s", i.now().UnixMilli(), sanitizeName(originalName))
	destination := filepath.Join(directory, filename)

	file, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create asset file: %w", err)
	}
	written, err := io.Copy(file, io.LimitReader(content, MaxUploadBytes+1))
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err == nil && written > MaxUploadBytes {
		err = fmt.Errorf("%w: file exceeds the %d byte limit", ports.ErrValidation, int64(MaxUploadBytes))
	}
	if err != nil {
		os.Remove(destination)
		return "", err
	}

	return path.Join(PathPrefix, section, filename), nil
}

// Open resolves a reference path inside the storage root and returns the
// file with its extension-inferred content type. A path resolving outside
// the root is Forbidden regardless of what it points at.
func (i *Ingestor) Open(referencePath string) (*os.File, string, error) {
	relative := strings.TrimPrefix(referencePath, PathPrefix)
	resolved := filepath.Join(i.root, filepath.FromSlash(relative))

	if !strings.HasPrefix(resolved, i.root+string(os.PathSeparator)) {
		return nil, "", fmt.Errorf("%w: path escapes storage root", ports.ErrForbidden)
	}

	file, err := os.Open(resolved)
	if os.IsNotExist(err) {
		return nil, "", ports.ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("open asset: %w", err)
	}

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		file.Close()
		if err != nil {
			return nil, "", fmt.Errorf("stat asset: %w", err)
		}
		return nil, "", ports.ErrNotFound
	}

	contentType := mime.TypeByExtension(filepath.Ext(resolved))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return file, contentType, nil
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	name = unsafeNameChars.ReplaceAllString(name, "-")
	return strings.Trim(name, "-.")
}
