package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/encoding"

	"github.com/unkn0wn-root/plainjson"
)

// FileStore keeps one file per key under Dir. Text is transcoded with
// Encoding on the way to and from disk; nil stores bytes as given, which
// keeps UTF-8 text as UTF-8 without BOM and leaves binary codecs intact.
type FileStore struct {
	Dir      string
	Encoding encoding.Encoding
	Perm     fs.FileMode // default 0o644
}

var _ Store = (*FileStore)(nil)

func (s *FileStore) encoding() encoding.Encoding {
	if s.Encoding == nil {
		return encoding.Nop
	}
	return s.Encoding
}

func (s *FileStore) path(key string) (string, error) {
	if key == "" || !filepath.IsLocal(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.Dir, key), nil
}

func (s *FileStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	text, err := s.encoding().NewDecoder().Bytes(raw)
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", path, err)
	}
	return text, true, nil
}

// Save compares content hashes of the encoded bytes and leaves the file
// untouched when they match. Missing parent directories are created.
func (s *FileStore) Save(_ context.Context, key string, data []byte) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}
	raw, err := s.encoding().NewEncoder().Bytes(data)
	if err != nil {
		return false, fmt.Errorf("encode %s: %w", path, err)
	}
	if old, err := os.ReadFile(path); err == nil && xxhash.Sum64(old) == xxhash.Sum64(raw) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, err
	}
	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}
	if err := os.WriteFile(path, raw, perm); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) Close(context.Context) error { return nil }

// SaveFile writes the JSON text of v to path unless the file already holds
// the same content.
func SaveFile(path string, v any, ignoreNullOrDefault bool) error {
	return SaveFileEncoded(path, v, ignoreNullOrDefault, nil)
}

// SaveFileEncoded is SaveFile with an explicit text encoding.
func SaveFileEncoded(path string, v any, ignoreNullOrDefault bool, enc encoding.Encoding) error {
	s := &FileStore{Dir: filepath.Dir(path), Encoding: enc}
	_, err := s.Save(context.Background(), filepath.Base(path), []byte(plainjson.Serialize(v, ignoreNullOrDefault)))
	return err
}

// TryLoadFile parses the file at path as a T. When the file is missing,
// unreadable or holds an absent value it returns a new T and false.
func TryLoadFile[T any](path string) (T, bool) {
	return TryLoadFileEncoded[T](path, nil)
}

// TryLoadFileEncoded is TryLoadFile with an explicit text encoding.
func TryLoadFileEncoded[T any](path string, enc encoding.Encoding) (T, bool) {
	s := &FileStore{Dir: filepath.Dir(path), Encoding: enc}
	text, ok, err := s.Load(context.Background(), filepath.Base(path))
	if err != nil || !ok {
		return plainjson.FromJSONOrNew[T](""), false
	}
	v := plainjson.FromJSON[T](string(text))
	if isAbsent(v) {
		return plainjson.FromJSONOrNew[T](""), false
	}
	return v, true
}

func isAbsent[T any](v T) bool {
	rv := reflect.ValueOf(&v).Elem()
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
