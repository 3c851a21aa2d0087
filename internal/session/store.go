// Package session persists the bearer token across process restarts.
//
// The token lives in a per-user file (0600) with AES-GCM obfuscation. Not a
// replacement for OS keychains but avoids a plain-text credential on disk.
package session

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
)

const fileName = "session.json"

type sessionFile struct {
	Token string `json:"token"` // base64(ciphertext)
}

// Store holds the in-memory token and mirrors every mutation to disk. It is
// only ever driven from the single-threaded UI loop.
type Store struct {
	dir   string
	token string
}

// DefaultDir is the per-user location used when config does not override it.
func DefaultDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "findmyhome"), nil
}

// Open loads any persisted token. An absent, unreadable, or undecryptable
// file yields an empty session rather than an error: the user just logs in
// again.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session dir: %w", err)
	}
	s := &Store{dir: dir}
	s.token = readToken(filepath.Join(dir, fileName))
	return s, nil
}

func (s *Store) Token() string  { return s.token }
func (s *Store) HasToken() bool { return s.token != "" }

// SetToken stores the token in memory and on disk.
func (s *Store) SetToken(token string) error {
	ct, err := encrypt([]byte(token))
	if err != nil {
		return err
	}
	sf := sessionFile{Token: base64.StdEncoding.EncodeToString(ct)}
	if err := save(filepath.Join(s.dir, fileName), sf); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Clear forgets the token in memory and removes the file.
func (s *Store) Clear() error {
	s.token = ""
	err := os.Remove(filepath.Join(s.dir, fileName))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func readToken(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return ""
	}
	raw, err := base64.StdEncoding.DecodeString(sf.Token)
	if err != nil {
		return ""
	}
	pt, err := decrypt(raw)
	if err != nil {
		return ""
	}
	return string(pt)
}

func save(path string, sf sessionFile) error {
	data, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func masterKey() []byte {
	user := os.Getenv("USER")
	base := fmt.Sprintf("findmyhome-%s-%s", runtime.GOOS, user)
	hash := sha256.Sum256([]byte(base))
	return hash[:]
}

func encrypt(plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(masterKey())
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext too short")
	}
	nonce := ciphertext[:gcm.NonceSize()]
	body := ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, body, nil)
}
