package local

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Store keeps photo blobs on the local filesystem and issues HMAC-signed,
// expiring download URLs served by the web layer under baseURL.
type Store struct {
	basePath string
	baseURL  string
	secret   []byte
	bucket   string
	now      func() time.Time
}

func New(basePath, baseURL, secret, bucket string) (*Store, error) {
	if secret == "" {
		return nil, fmt.Errorf("photo signing secret is required")
	}
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo directory: %w", err)
	}
	return &Store{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		secret:   []byte(secret),
		bucket:   bucket,
		now:      time.Now,
	}, nil
}

func (s *Store) Bucket() string { return s.bucket }

func (s *Store) Put(ctx context.Context, key, contentType string, r io.Reader) error {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create blob directory: %w", err)
	}

	f, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close file after write error", "error", cerr)
		}
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after write error", "error", rerr)
		}
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(filePath); rerr != nil {
			slog.Error("failed to remove file after close error", "error", rerr)
		}
		return fmt.Errorf("failed to close file: %w", err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("photo not found")
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// SignedURL returns baseURL/photos/{key}?exp=...&sig=... where sig is an HMAC
// over the key and expiry. The URL is a bearer capability: anyone holding it
// can read the blob until exp.
func (s *Store) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if _, err := s.safeJoin(key); err != nil {
		return "", err
	}
	exp := s.now().Add(ttl).Unix()
	sig := s.sign(key, exp)
	return fmt.Sprintf("%s/photos/%s?exp=%d&sig=%s", s.baseURL, urlEscapeKey(key), exp, sig), nil
}

// Open returns the blob contents and content type for the serving handler.
// Callers must verify the signature first.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, string, error) {
	filePath, err := s.safeJoin(key)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", fmt.Errorf("photo not found")
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return f, extToMimeType(filePath), nil
}

// Verify checks an exp/sig pair produced by SignedURL against key. It returns
// false for a bad signature or an expired URL.
func (s *Store) Verify(key, expStr, sig string) bool {
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return false
	}
	if s.now().Unix() > exp {
		return false
	}
	expected := s.sign(key, exp)
	return hmac.Equal([]byte(expected), []byte(sig))
}

func (s *Store) sign(key string, exp int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s\n%d", key, exp)
	return hex.EncodeToString(mac.Sum(nil))
}

// safeJoin resolves key relative to basePath and rejects directory traversal.
func (s *Store) safeJoin(key string) (string, error) {
	absBase, err := filepath.Abs(s.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(s.basePath, key))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}

// urlEscapeKey escapes each path segment while keeping the separators.
func urlEscapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}

func extToMimeType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
