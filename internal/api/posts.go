package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pribylovaa/events-admin-console/internal/models"
)

const postsPath = "/admin/posts"

func (c *Client) ListPosts(ctx context.Context, q models.ListQuery) (models.Page[models.Post], error) {
	var page models.Page[models.Post]
	if err := c.call(ctx, http.MethodGet, withQuery(postsPath, q), nil, &page); err != nil {
		return page, fmt.Errorf("internal/api/ListPosts: %w", err)
	}

	return page, nil
}

// HidePost скрывает публикацию из ленты; reason необязателен.
func (c *Client) HidePost(ctx context.Context, id, reason string) (models.Post, error) {
	const op = "internal/api/HidePost"

	var p models.Post
	if err := requireID(id); err != nil {
		return p, fmt.Errorf("%s: %w", op, err)
	}

	body := models.HidePostRequest{Reason: strings.TrimSpace(reason)}
	if err := c.call(ctx, http.MethodPost, path(postsPath, id, "hide"), body, &p); err != nil {
		return p, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	const op = "internal/api/DeletePost"

	if err := requireID(id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.call(ctx, http.MethodDelete, path(postsPath, id), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
