package persist

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/unkn0wn-root/plainjson"
)

type settings struct {
	Name   string
	Level  int
	Tags   []string
	Limits map[string]int
}

var sampleSettings = settings{
	Name:   "café",
	Level:  3,
	Tags:   []string{"a", "b"},
	Limits: map[string]int{"cpu": 2},
}

func TestSaveFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "settings.json")
	if err := SaveFile(path, sampleSettings, true); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if want := plainjson.ToJSON(sampleSettings); string(raw) != want {
		t.Fatalf("file holds %s want %s", raw, want)
	}
	got, ok := TryLoadFile[settings](path)
	if !ok || !reflect.DeepEqual(got, sampleSettings) {
		t.Fatalf("TryLoadFile: ok=%v got %+v", ok, got)
	}
}

func TestSaveFileSkipsUnchangedContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := SaveFile(path, sampleSettings, true); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	old := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}

	if err := SaveFile(path, sampleSettings, true); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if fi, _ := os.Stat(path); !fi.ModTime().Equal(old) {
		t.Fatalf("identical content was rewritten (mtime %v)", fi.ModTime())
	}

	changed := sampleSettings
	changed.Level = 4
	if err := SaveFile(path, changed, true); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	if fi, _ := os.Stat(path); fi.ModTime().Equal(old) {
		t.Fatalf("changed content was not written")
	}
	if got, _ := TryLoadFile[settings](path); got.Level != 4 {
		t.Fatalf("got %+v", got)
	}
}

func TestTryLoadFileMissingOrAbsent(t *testing.T) {
	dir := t.TempDir()
	if got, ok := TryLoadFile[*settings](filepath.Join(dir, "missing.json")); ok || got == nil {
		t.Fatalf("missing file: ok=%v got %v", ok, got)
	}
	if got, ok := TryLoadFile[map[string]int](filepath.Join(dir, "missing.json")); ok || got == nil {
		t.Fatalf("missing file: ok=%v got %v", ok, got)
	}

	path := filepath.Join(dir, "null.json")
	if err := os.WriteFile(path, []byte("null"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got, ok := TryLoadFile[*settings](path); ok || got == nil {
		t.Fatalf("null document: ok=%v got %v", ok, got)
	}
	if got, ok := TryLoadFile[settings](path); !ok || !reflect.DeepEqual(got, settings{}) {
		t.Fatalf("null into a record: ok=%v got %+v", ok, got)
	}
}

func TestFileStoreEncodings(t *testing.T) {
	ctx := context.Background()
	text := []byte(plainjson.ToJSON(sampleSettings))

	cp := &FileStore{Dir: t.TempDir(), Encoding: charmap.Windows1252}
	if written, err := cp.Save(ctx, "s.json", text); err != nil || !written {
		t.Fatalf("Save: written=%v err=%v", written, err)
	}
	raw, _ := os.ReadFile(filepath.Join(cp.Dir, "s.json"))
	if !bytes.Contains(raw, []byte{'c', 'a', 'f', 0xE9}) {
		t.Fatalf("expected windows-1252 bytes, got %q", raw)
	}
	got, ok, err := cp.Load(ctx, "s.json")
	if err != nil || !ok || !bytes.Equal(got, text) {
		t.Fatalf("Load: %s ok=%v err=%v", got, ok, err)
	}

	u16 := &FileStore{Dir: t.TempDir(), Encoding: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)}
	if _, err := u16.Save(ctx, "s.json", text); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, _ = os.ReadFile(filepath.Join(u16.Dir, "s.json"))
	if !bytes.HasPrefix(raw, []byte{0xFF, 0xFE}) {
		t.Fatalf("expected a UTF-16LE BOM, got % x", raw[:4])
	}
	if written, _ := u16.Save(ctx, "s.json", text); written {
		t.Fatalf("identical UTF-16 content was rewritten")
	}
	got, ok, err = u16.Load(ctx, "s.json")
	if err != nil || !ok || !bytes.Equal(got, text) {
		t.Fatalf("Load: %s ok=%v err=%v", got, ok, err)
	}

	path := filepath.Join(t.TempDir(), "s.json")
	if err := SaveFileEncoded(path, sampleSettings, true, charmap.Windows1252); err != nil {
		t.Fatalf("SaveFileEncoded: %v", err)
	}
	if s, ok := TryLoadFileEncoded[settings](path, charmap.Windows1252); !ok || s.Name != "café" {
		t.Fatalf("TryLoadFileEncoded: ok=%v got %+v", ok, s)
	}
}

func TestFileStoreRejectsEscapingKeys(t *testing.T) {
	s := &FileStore{Dir: t.TempDir()}
	for _, key := range []string{"", "../x.json", "/abs.json"} {
		if _, err := s.Save(context.Background(), key, []byte("{}")); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("Save(%q): got %v", key, err)
		}
		if _, _, err := s.Load(context.Background(), key); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("Load(%q): got %v", key, err)
		}
	}
	if _, ok, err := s.Load(context.Background(), "nested/missing.json"); ok || err != nil {
		t.Fatalf("missing nested key: ok=%v err=%v", ok, err)
	}
}
