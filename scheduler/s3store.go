package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"socialbot/common"
	"socialbot/types"
)

// S3Store keeps each post as a JSON object under <prefix><id>.json in one
// bucket. Same contract as FileStore with the bucket as the shared namespace.
type S3Store struct {
	s3     *common.S3
	bucket string
	prefix string
}

// NewS3Store builds a store over an existing S3 wrapper. The prefix is
// normalized to end with a single slash when non-empty.
func NewS3Store(s3c *common.S3, bucket, prefix string) *S3Store {
	if prefix != "" {
		prefix = strings.Trim(prefix, "/") + "/"
	}
	return &S3Store{s3: s3c, bucket: bucket, prefix: prefix}
}

func (s *S3Store) Create(ctx context.Context, payload types.PostPayload) (string, error) {
	id := newPostID()
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode post %s: %w", id, err)
	}
	if err := s.s3.Put(ctx, s.bucket, s.key(id), bytes.NewReader(data), "application/json"); err != nil {
		return "", fmt.Errorf("write post %s: %w", id, err)
	}
	return id, nil
}

func (s *S3Store) List(ctx context.Context) ([]types.ScheduledPost, error) {
	posts := make([]types.ScheduledPost, 0)

	var token *string
	for {
		out, err := s.s3.List(ctx, s.bucket, s.prefix, 1000, token)
		if err != nil {
			return nil, fmt.Errorf("list posts: %w", err)
		}
		for _, obj := range out.Contents {
			if obj.Key == nil {
				continue
			}
			name := strings.TrimPrefix(*obj.Key, s.prefix)
			if !strings.HasSuffix(name, recordExt) {
				continue
			}
			id := strings.TrimSuffix(name, recordExt)
			payload, err := s.Get(ctx, id)
			if err != nil {
				return nil, err
			}
			posts = append(posts, types.ScheduledPost{ID: id, Payload: payload})
		}
		if out.IsTruncated == nil || !*out.IsTruncated {
			break
		}
		token = out.NextContinuationToken
	}
	return posts, nil
}

func (s *S3Store) Get(ctx context.Context, id string) (types.PostPayload, error) {
	body, err := s.s3.Get(ctx, s.bucket, s.key(id))
	if err != nil {
		if common.IsNotFound(err) {
			return types.PostPayload{}, ErrNotFound
		}
		return types.PostPayload{}, fmt.Errorf("read post %s: %w", id, err)
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return types.PostPayload{}, fmt.Errorf("read post %s: %w", id, err)
	}

	var payload types.PostPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return types.PostPayload{}, fmt.Errorf("decode post %s: %w", id, err)
	}
	return payload, nil
}

func (s *S3Store) Delete(ctx context.Context, id string) (bool, error) {
	// DeleteObject is a no-op for missing keys, so check first to report
	// whether anything was actually removed.
	exists, err := s.s3.Exists(ctx, s.bucket, s.key(id))
	if err != nil {
		return false, fmt.Errorf("delete post %s: %w", id, err)
	}
	if !exists {
		return false, nil
	}
	if err := s.s3.Delete(ctx, s.bucket, s.key(id)); err != nil {
		return false, fmt.Errorf("delete post %s: %w", id, err)
	}
	return true, nil
}

func (s *S3Store) key(id string) string {
	return s.prefix + id + recordExt
}
