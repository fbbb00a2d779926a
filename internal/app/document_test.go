package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/wikistorm/internal/engine"
)

func TestOpenMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "New.wiki")

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if doc.Name != "New.wiki" {
		t.Errorf("Name = %q, want New.wiki", doc.Name)
	}
	if doc.IsScratch() {
		t.Error("document with a path reported as scratch")
	}
	if doc.Engine.Content() != "" {
		t.Errorf("Content = %q, want empty", doc.Engine.Content())
	}
	if doc.IsModified() {
		t.Error("fresh document reported modified")
	}

	if err := doc.Engine.Type("''new''"); err != nil {
		t.Fatalf("Type: %v", err)
	}
	if !doc.IsModified() {
		t.Error("edited document not reported modified")
	}
	if err := doc.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if doc.IsModified() {
		t.Error("saved document reported modified")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "''new''" {
		t.Errorf("saved %q, want %q", data, "''new''")
	}
}

func TestSaveKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Article.wiki")
	if err := os.WriteFile(path, []byte("text"), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := doc.Engine.Type("more "); err != nil {
		t.Fatal(err)
	}
	if err := doc.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temporary files left behind: %d entries", len(entries))
	}
}

func TestReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Article.wiki")
	if err := os.WriteFile(path, []byte("'''old'''"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := os.WriteFile(path, []byte("[[new]]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := doc.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := doc.Engine.Content(); got != "[[new]]" {
		t.Errorf("Content = %q, want [[new]]", got)
	}
	if doc.IsModified() {
		t.Error("reloaded document reported modified")
	}
	if doc.Engine.CanUndo() {
		t.Error("reload kept undo history")
	}
}

func TestScratchDocument(t *testing.T) {
	doc := NewScratchDocument("<b>x</b>")

	if !doc.IsScratch() {
		t.Error("scratch document not reported as scratch")
	}
	if doc.Name != "Untitled" {
		t.Errorf("Name = %q, want Untitled", doc.Name)
	}

	err := doc.Save()
	if !errors.Is(err, ErrNoPath) {
		t.Errorf("Save error = %v, want ErrNoPath", err)
	}
	var opErr *OperationError
	if !errors.As(err, &opErr) || opErr.Op != "save" {
		t.Errorf("Save error = %#v, want save OperationError", err)
	}
	if err := doc.Reload(); !errors.Is(err, ErrNoPath) {
		t.Errorf("Reload error = %v, want ErrNoPath", err)
	}
}

func TestOpenReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Article.wiki")
	if err := os.WriteFile(path, []byte("text"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Open(path, engine.WithReadOnly())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := doc.Engine.Type("x"); !errors.Is(err, engine.ErrReadOnly) {
		t.Errorf("Type error = %v, want ErrReadOnly", err)
	}
}
