package service

import (
	"context"

	"mtg-labels/models"
)

// CatalogClientInterface defines the contract for catalog access.
// It is the only component issuing outbound requests.
type CatalogClientInterface interface {
	FetchAllSets(ctx context.Context) ([]models.SetRecord, error)
	FetchIcon(ctx context.Context, iconURI string) ([]byte, error)
}
