package catalogstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"resty.dev/v3"

	"assist-server/services/assistant-api/internal/domain/catalog"
	"assist-server/services/assistant-api/internal/utils/platformerrors"
)

// HTTPCatalog fetches the service catalog from a remote catalog service.
type HTTPCatalog struct {
	client  *resty.Client
	baseURL string
	apiKey  string
	log     zerolog.Logger
}

type catalogItemPayload struct {
	Slug         string                         `json:"slug"`
	Translations map[string]catalog.Translation `json:"translations"`
	Price        decimal.Decimal                `json:"price"`
	Currency     string                         `json:"currency"`
	Active       bool                           `json:"active"`
}

type catalogListPayload struct {
	Items []catalogItemPayload `json:"items"`
	Meta  catalog.PageMeta     `json:"meta"`
}

// NewHTTPCatalog creates the remote catalog client.
func NewHTTPCatalog(client *resty.Client, baseURL, apiKey string, log zerolog.Logger) *HTTPCatalog {
	return &HTTPCatalog{
		client:  client,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		log:     log.With().Str("component", "http_catalog").Logger(),
	}
}

// ListActive fetches one page of active entries from the catalog service.
func (c *HTTPCatalog) ListActive(ctx context.Context, page, limit int) (catalog.Page, error) {
	var payload catalogListPayload

	req := c.client.R().
		SetContext(ctx).
		SetQueryParam("page", fmt.Sprintf("%d", page)).
		SetQueryParam("limit", fmt.Sprintf("%d", limit)).
		SetQueryParam("active", "true").
		SetResult(&payload)
	if strings.TrimSpace(c.apiKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}

	resp, err := req.Get(c.baseURL + "/v1/services")
	if err != nil {
		return catalog.Page{}, platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "catalog request failed")
	}
	if resp.IsError() {
		return catalog.Page{}, c.errorFromResponse(ctx, resp)
	}

	items := make([]catalog.Entry, 0, len(payload.Items))
	for _, item := range payload.Items {
		if !item.Active {
			continue
		}
		items = append(items, catalog.Entry{
			Slug:         item.Slug,
			Translations: item.Translations,
			Price:        item.Price,
			Currency:     item.Currency,
			Active:       item.Active,
		})
	}

	meta := payload.Meta
	if meta.Page == 0 {
		meta.Page = page
	}
	if meta.Limit == 0 {
		meta.Limit = limit
	}
	return catalog.Page{Items: items, Meta: meta}, nil
}

func (c *HTTPCatalog) errorFromResponse(ctx context.Context, resp *resty.Response) error {
	message := fmt.Sprintf("catalog service returned status %d", resp.StatusCode())
	if resp.RawResponse != nil && resp.RawResponse.Body != nil {
		defer resp.RawResponse.Body.Close()
		if body, readErr := io.ReadAll(resp.RawResponse.Body); readErr == nil {
			if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
				message = fmt.Sprintf("%s: %s", message, trimmed)
			}
		}
	}
	c.log.Error().Int("status", resp.StatusCode()).Msg("catalog service request failed")
	return platformerrors.NewError(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		message, nil, "")
}
