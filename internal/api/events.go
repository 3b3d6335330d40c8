package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pribylovaa/events-admin-console/internal/models"
)

const eventsPath = "/admin/events"

func (c *Client) ListEvents(ctx context.Context, q models.ListQuery) (models.Page[models.Event], error) {
	var page models.Page[models.Event]
	if err := c.call(ctx, http.MethodGet, withQuery(eventsPath, q), nil, &page); err != nil {
		return page, fmt.Errorf("internal/api/ListEvents: %w", err)
	}

	return page, nil
}

func (c *Client) GetEvent(ctx context.Context, id string) (models.Event, error) {
	const op = "internal/api/GetEvent"

	var ev models.Event
	if err := requireID(id); err != nil {
		return ev, fmt.Errorf("%s: %w", op, err)
	}
	if err := c.call(ctx, http.MethodGet, path(eventsPath, id), nil, &ev); err != nil {
		return ev, fmt.Errorf("%s: %w", op, err)
	}

	return ev, nil
}

// ApproveEvent переводит мероприятие в APPROVED.
func (c *Client) ApproveEvent(ctx context.Context, id string) (models.Event, error) {
	const op = "internal/api/ApproveEvent"

	var ev models.Event
	if err := requireID(id); err != nil {
		return ev, fmt.Errorf("%s: %w", op, err)
	}
	if err := c.call(ctx, http.MethodPost, path(eventsPath, id, "approve"), nil, &ev); err != nil {
		return ev, fmt.Errorf("%s: %w", op, err)
	}

	return ev, nil
}

// RejectEvent переводит мероприятие в REJECTED; причина обязательна,
// организатор увидит её в приложении.
func (c *Client) RejectEvent(ctx context.Context, id, reason string) (models.Event, error) {
	const op = "internal/api/RejectEvent"

	var ev models.Event
	if err := requireID(id); err != nil {
		return ev, fmt.Errorf("%s: %w", op, err)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ev, fmt.Errorf("%s: %w", op, invalid("reason is required"))
	}

	body := models.RejectEventRequest{Reason: reason}
	if err := c.call(ctx, http.MethodPost, path(eventsPath, id, "reject"), body, &ev); err != nil {
		return ev, fmt.Errorf("%s: %w", op, err)
	}

	return ev, nil
}
