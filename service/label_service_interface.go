package service

import (
	"context"

	"mtg-labels/models"
)

// LabelServiceInterface defines the contract for label generation runs
type LabelServiceInterface interface {
	Plan(ctx context.Context, filter models.FilterConfig) (models.FilterResult, error)
	Run(ctx context.Context, opts RunOptions) (*RunResult, error)
}
