package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"gopher-blog/internal/model"
)

const (
	postListKey       = "blog:posts:all"
	postGenerationKey = "blog:posts:gen"
)

// PostCache keeps the full post listing in redis. Every listing is stored
// under the generation it was read at; Invalidate bumps the generation, so a
// listing read before a write can never be served after it.
type PostCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewPostCache(client *redisv9.Client, ttl time.Duration) *PostCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &PostCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *PostCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, postGenerationKey).Int64()
	if err == redisv9.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get posts generation failed: %w", err)
	}
	return gen, nil
}

func (c *PostCache) GetPosts(ctx context.Context, gen int64) ([]model.Post, bool, error) {
	raw, err := c.client.Get(ctx, listKey(gen)).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get posts failed: %w", err)
	}

	var posts []model.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached posts failed: %w", err)
	}
	return posts, true, nil
}

func (c *PostCache) SetPosts(ctx context.Context, gen int64, posts []model.Post) error {
	payload, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("marshal posts cache failed: %w", err)
	}
	if err := c.client.Set(ctx, listKey(gen), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set posts failed: %w", err)
	}
	return nil
}

func (c *PostCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, postGenerationKey).Err(); err != nil {
		return fmt.Errorf("redis bump posts generation failed: %w", err)
	}
	return nil
}

func listKey(gen int64) string {
	return fmt.Sprintf("%s:%d", postListKey, gen)
}
