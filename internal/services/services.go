package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/adminui/internal/models"
	"github.com/desertthunder/adminui/internal/shared"
)

// Source defines a provider of the member roster.
type Source interface {
	// Fetch retrieves the full, ordered roster. It performs no filtering or pagination.
	Fetch(ctx context.Context) ([]models.Member, error)

	// Name identifies the source (URL or file path) for logs and the cache.
	Name() string
}

// DecodeMembers parses a JSON array of members and checks that every id is present and unique.
func DecodeMembers(data []byte) ([]models.Member, error) {
	var members []models.Member
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidPayload, err)
	}
	if members == nil {
		return nil, fmt.Errorf("%w: expected a JSON array", shared.ErrInvalidPayload)
	}

	seen := make(map[string]int, len(members))
	for i, m := range members {
		if m.ID == "" {
			return nil, fmt.Errorf("%w: member at index %d has no id", shared.ErrInvalidPayload, i)
		}
		if j, ok := seen[m.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate id %q at indexes %d and %d", shared.ErrInvalidPayload, m.ID, j, i)
		}
		seen[m.ID] = i
	}

	return members, nil
}
