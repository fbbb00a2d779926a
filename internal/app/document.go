package app

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/wikistorm/internal/engine"
)

// Document is a wikitext file open in the viewer.
type Document struct {
	// Path is the absolute file path (empty for scratch documents).
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	// Engine holds the text, selection and history.
	Engine *engine.Engine

	mu       sync.Mutex
	savedRev engine.RevisionID
	mode     fs.FileMode
}

// NewScratchDocument creates a document that is not backed by a file.
func NewScratchDocument(content string, opts ...engine.Option) *Document {
	opts = append([]engine.Option{engine.WithContent(content)}, opts...)
	eng := engine.New(opts...)
	return &Document{
		Name:     "Untitled",
		Engine:   eng,
		savedRev: eng.RevisionID(),
		mode:     0o644,
	}
}

// Open reads the file at path into a new document. A missing file yields
// an empty document that is created on the first save.
func Open(path string, opts ...engine.Option) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	doc := &Document{Path: abs, Name: filepath.Base(abs), mode: 0o644}

	data, err := os.ReadFile(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		data = nil
	case err != nil:
		return nil, NewOperationError("open", abs, err)
	default:
		if info, statErr := os.Stat(abs); statErr == nil {
			doc.mode = info.Mode().Perm()
		}
	}

	opts = append([]engine.Option{engine.WithDetectedLineEnding()}, opts...)
	eng, err := engine.NewFromReader(bytes.NewReader(data), opts...)
	if err != nil {
		return nil, NewOperationError("open", abs, err)
	}
	doc.Engine = eng
	doc.savedRev = eng.RevisionID()
	return doc, nil
}

// IsModified returns true if the document changed since it was opened,
// saved or reloaded.
func (d *Document) IsModified() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Engine.RevisionID() != d.savedRev
}

// IsScratch returns true if the document has no file path.
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// Save writes the document to its path. The file is written to a
// temporary sibling first and renamed into place.
func (d *Document) Save() error {
	if d.IsScratch() {
		return NewOperationError("save", d.Name, ErrNoPath)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	rev := d.Engine.RevisionID()
	tmp, err := os.CreateTemp(filepath.Dir(d.Path), "."+d.Name+".*.tmp")
	if err != nil {
		return NewOperationError("save", d.Path, err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := d.Engine.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		cleanup()
		return NewOperationError("save", d.Path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return NewOperationError("save", d.Path, err)
	}
	if err := os.Chmod(tmpName, d.mode); err != nil {
		cleanup()
		return NewOperationError("save", d.Path, err)
	}
	if err := os.Rename(tmpName, d.Path); err != nil {
		cleanup()
		return NewOperationError("save", d.Path, err)
	}

	d.savedRev = rev
	return nil
}

// Reload replaces the document text with the file contents. History and
// the selection are reset.
func (d *Document) Reload() error {
	if d.IsScratch() {
		return NewOperationError("reload", d.Name, ErrNoPath)
	}

	data, err := os.ReadFile(d.Path)
	if err != nil {
		return NewOperationError("reload", d.Path, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.Engine.SetContent(string(data)); err != nil {
		return NewOperationError("reload", d.Path, err)
	}
	d.savedRev = d.Engine.RevisionID()
	return nil
}
