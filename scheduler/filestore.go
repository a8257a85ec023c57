package scheduler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"socialbot/types"
)

const recordExt = ".json"

// FileStore persists one JSON file per post inside a single directory, with
// the filename carrying the identifier. The directory is created lazily on
// first write; listing a missing or empty directory yields no records.
type FileStore struct {
	dir string
}

// NewFileStore builds a store rooted at dir. The directory does not need to
// exist yet.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Create(_ context.Context, payload types.PostPayload) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create post directory: %w", err)
	}

	id := newPostID()
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode post %s: %w", id, err)
	}
	if err := os.WriteFile(s.path(id), data, 0o644); err != nil {
		return "", fmt.Errorf("write post %s: %w", id, err)
	}
	return id, nil
}

func (s *FileStore) List(_ context.Context) ([]types.ScheduledPost, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []types.ScheduledPost{}, nil
		}
		return nil, fmt.Errorf("read post directory: %w", err)
	}

	posts := make([]types.ScheduledPost, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, recordExt) {
			continue
		}
		id := strings.TrimSuffix(name, recordExt)
		payload, err := s.read(id)
		if err != nil {
			return nil, err
		}
		posts = append(posts, types.ScheduledPost{ID: id, Payload: payload})
	}
	return posts, nil
}

func (s *FileStore) Get(_ context.Context, id string) (types.PostPayload, error) {
	return s.read(id)
}

func (s *FileStore) Delete(_ context.Context, id string) (bool, error) {
	err := os.Remove(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("delete post %s: %w", id, err)
	}
	return true, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+recordExt)
}

func (s *FileStore) read(id string) (types.PostPayload, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.PostPayload{}, ErrNotFound
		}
		return types.PostPayload{}, fmt.Errorf("read post %s: %w", id, err)
	}

	var payload types.PostPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return types.PostPayload{}, fmt.Errorf("decode post %s: %w", id, err)
	}
	return payload, nil
}
