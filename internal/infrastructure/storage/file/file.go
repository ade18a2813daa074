// Package file is the durable scope on local disk. The whole scope lives in
// one JSON document that is rewritten atomically on every change. With a
// secret configured the document is sealed with XChaCha20-Poly1305 under an
// Argon2id-derived key.
package file

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/worksync/session-agent/internal/core/ports"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
	saltSize = 16

	argonTime    = 1
	argonMemory  = 19 * 1024
	argonThreads = 1
)

// sealedMagic prefixes sealed files so a plain file is never mistaken for
// ciphertext.
var sealedMagic = []byte("WSS1")

// ErrSealed is returned when a sealed file is opened without the right secret.
var ErrSealed = errors.New("credential file is sealed with a different secret")

// Storage is a ports.ScopeStorage backed by a single file.
type Storage struct {
	path   string
	secret []byte

	mu   sync.Mutex
	data map[string]string
}

// Open loads path, creating parent directories as needed. A missing file is
// an empty scope. secret may be empty to store plain JSON.
func Open(path string, secret string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	s := &Storage{path: path, data: make(map[string]string)}
	if secret != "" {
		s.secret = []byte(secret)
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(raw) == 0 {
		return s, nil
	}

	plain, err := s.open(raw)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(plain, &s.data); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if s.data == nil {
		s.data = make(map[string]string)
	}
	return s, nil
}

// Path is the file backing the scope.
func (s *Storage) Path() string { return s.path }

func (s *Storage) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return "", ports.ErrKeyNotFound
	}
	return v, nil
}

func (s *Storage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.data[key]
	s.data[key] = value
	if err := s.flushLocked(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

func (s *Storage) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	changed := false
	for _, k := range keys {
		if _, ok := s.data[k]; ok {
			delete(s.data, k)
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.flushLocked()
}

func (s *Storage) flushLocked() error {
	plain, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	out, err := s.seal(plain)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".credentials-*")
	if err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(out); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// seal output format: magic | salt | nonce | ciphertext+tag
func (s *Storage) seal(plain []byte) ([]byte, error) {
	if s.secret == nil {
		return plain, nil
	}
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("seal: salt: %w", err)
	}
	aead, err := chacha20poly1305.NewX(s.deriveKey(salt))
	if err != nil {
		return nil, fmt.Errorf("seal: %w", err)
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(plain)+aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("seal: nonce: %w", err)
	}

	out := make([]byte, 0, len(sealedMagic)+saltSize+len(nonce)+len(plain)+aead.Overhead())
	out = append(out, sealedMagic...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plain, sealedMagic), nil
}

func (s *Storage) open(raw []byte) ([]byte, error) {
	sealed := bytes.HasPrefix(raw, sealedMagic)
	switch {
	case !sealed:
		// With a secret set, a plain file is sealed on the next write.
		return raw, nil
	case s.secret == nil:
		return nil, ErrSealed
	}

	body := raw[len(sealedMagic):]
	if len(body) < saltSize+chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("open %s: truncated", s.path)
	}
	salt, rest := body[:saltSize], body[saltSize:]
	nonce, ciphertext := rest[:chacha20poly1305.NonceSizeX], rest[chacha20poly1305.NonceSizeX:]

	aead, err := chacha20poly1305.NewX(s.deriveKey(salt))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	plain, err := aead.Open(nil, nonce, ciphertext, sealedMagic)
	if err != nil {
		return nil, ErrSealed
	}
	return plain, nil
}

func (s *Storage) deriveKey(salt []byte) []byte {
	return argon2.IDKey(s.secret, salt, argonTime, argonMemory, argonThreads, chacha20poly1305.KeySize)
}

var _ ports.ScopeStorage = (*Storage)(nil)
