package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"mtg-labels/models"
)

// DefaultCatalogURL is the Scryfall set listing
// https://scryfall.com/docs/api/sets/all
const DefaultCatalogURL = "https://api.scryfall.com/sets"

// CatalogClient fetches set metadata and icons from the Scryfall API.
// Every call is a single attempt; nothing is retried.
type CatalogClient struct {
	httpClient *http.Client
	catalogURL string
	userAgent  string
	logger     *slog.Logger
}

// Ensure CatalogClient implements CatalogClientInterface
var _ CatalogClientInterface = (*CatalogClient)(nil)

// CatalogClientOptions configures a CatalogClient
type CatalogClientOptions struct {
	CatalogURL string
	UserAgent  string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// NewCatalogClient creates a new CatalogClient
func NewCatalogClient(opts CatalogClientOptions) *CatalogClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	catalogURL := opts.CatalogURL
	if catalogURL == "" {
		catalogURL = DefaultCatalogURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CatalogClient{
		httpClient: httpClient,
		catalogURL: catalogURL,
		userAgent:  opts.UserAgent,
		logger:     logger,
	}
}

// FetchAllSets retrieves every set of the catalog, newest first as served.
// A non-2xx status or an undecodable payload yields an *models.UpstreamError.
func (c *CatalogClient) FetchAllSets(ctx context.Context) ([]models.SetRecord, error) {
	c.logger.Info("getting set data from catalog", "url", c.catalogURL)

	var sets []models.SetRecord
	next := c.catalogURL
	for next != "" {
		page, err := c.fetchSetPage(ctx, next)
		if err != nil {
			return nil, err
		}
		sets = append(sets, page.Data...)

		next = ""
		if page.HasMore {
			next = page.NextPage
		}
	}

	for i := range sets {
		if sets[i].ReleasedAt == "" {
			continue
		}
		released, err := time.Parse(models.ReleaseDateLayout, sets[i].ReleasedAt)
		if err != nil {
			return nil, &models.UpstreamError{
				URL: c.catalogURL,
				Err: fmt.Errorf("set %q: invalid released_at %q: %w", sets[i].Code, sets[i].ReleasedAt, err),
			}
		}
		sets[i].Released = released
	}

	c.logger.Debug("catalog fetched", "sets", len(sets))
	return sets, nil
}

func (c *CatalogClient) fetchSetPage(ctx context.Context, pageURL string) (*models.SetList, error) {
	resp, err := c.get(ctx, pageURL, "application/json")
	if err != nil {
		return nil, &models.UpstreamError{URL: pageURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &models.UpstreamError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	var list models.SetList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, &models.UpstreamError{URL: pageURL, Err: fmt.Errorf("decode set list: %w", err)}
	}
	if list.Data == nil {
		return nil, &models.UpstreamError{URL: pageURL, Err: fmt.Errorf("set list has no data field")}
	}
	return &list, nil
}

// FetchIcon downloads the raw bytes of an icon.
// Failures are reported as *models.DownloadError.
func (c *CatalogClient) FetchIcon(ctx context.Context, iconURI string) ([]byte, error) {
	resp, err := c.get(ctx, iconURI, "image/svg+xml,*/*")
	if err != nil {
		return nil, &models.DownloadError{URL: iconURI, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &models.DownloadError{URL: iconURI, StatusCode: resp.StatusCode}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.DownloadError{URL: iconURI, Err: fmt.Errorf("failed to read icon data: %w", err)}
	}
	return data, nil
}

func (c *CatalogClient) get(ctx context.Context, target, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", accept)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return c.httpClient.Do(req)
}
