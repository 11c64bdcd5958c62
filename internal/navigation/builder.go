package navigation

import (
	"context"
	"fmt"
	"log/slog"

	"backoffice/internal/session"
	"backoffice/internal/verification"
	dErrors "backoffice/pkg/domain-errors"
)

// StatusSource is the same cached accessor the access guard reads.
type StatusSource interface {
	Status(ctx context.Context, token string, clientID int64) (verification.Status, error)
}

// Menu is the navigation payload for one request.
type Menu struct {
	Status      verification.Status `json:"verificationStatus,omitempty"`
	Items       []MenuItem          `json:"items"`
	Breadcrumbs []string            `json:"breadcrumbs"`
}

type Builder struct {
	source StatusSource
	logger *slog.Logger
}

func NewBuilder(source StatusSource, logger *slog.Logger) (*Builder, error) {
	if source == nil {
		return nil, fmt.Errorf("status source is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{source: source, logger: logger}, nil
}

// ForSession builds the menu for the session's client. When the status cannot
// be read the menu is still returned, gated as for an unverified client.
func (b *Builder) ForSession(ctx context.Context, snap *session.Snapshot, currentRoute string) (*Menu, error) {
	clientID, ok := snap.ClientID()
	if !ok {
		return nil, dErrors.New(dErrors.CodeForbidden, "session has no client")
	}

	status, err := b.source.Status(ctx, snap.Token, clientID)
	if err != nil {
		b.logger.WarnContext(ctx, "client status lookup failed, gating menu",
			"client_id", clientID,
			"error", err,
		)
		status = ""
	}

	items := Build(status, currentRoute)
	return &Menu{Status: status, Items: items, Breadcrumbs: Breadcrumbs(items)}, nil
}
