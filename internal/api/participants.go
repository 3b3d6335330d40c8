package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pribylovaa/events-admin-console/internal/models"
)

const participantsPath = "/admin/participants"

func (c *Client) ListParticipants(ctx context.Context, q models.ListQuery) (models.Page[models.Participant], error) {
	var page models.Page[models.Participant]
	if err := c.call(ctx, http.MethodGet, withQuery(participantsPath, q), nil, &page); err != nil {
		return page, fmt.Errorf("internal/api/ListParticipants: %w", err)
	}

	return page, nil
}

// SetParticipantStatus блокирует (BLOCKED) или разблокирует (ACTIVE) участника.
func (c *Client) SetParticipantStatus(ctx context.Context, id string, status models.ParticipantStatus) (models.Participant, error) {
	const op = "internal/api/SetParticipantStatus"

	var p models.Participant
	if err := requireID(id); err != nil {
		return p, fmt.Errorf("%s: %w", op, err)
	}
	if !status.Valid() {
		return p, fmt.Errorf("%s: %w", op, invalid("unknown participant status %q", status))
	}

	body := models.ParticipantStatusRequest{Status: status}
	if err := c.call(ctx, http.MethodPatch, path(participantsPath, id, "status"), body, &p); err != nil {
		return p, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}
