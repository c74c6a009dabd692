package meta

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

var ErrMissingPageToken = errors.New("meta: page access token não configurado")

// GraphClient busca os dados completos de um lead no Graph API.
type GraphClient struct {
	baseURL string
	http    *http.Client
}

func NewGraphClient(baseURL string, httpClient *http.Client) *GraphClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &GraphClient{
		baseURL: baseURL,
		http:    httpClient,
	}
}

// FetchLead faz GET /{leadgen_id}?access_token=<page token>.
func (c *GraphClient) FetchLead(ctx context.Context, leadgenID, pageAccessToken string) (*LeadgenResponse, error) {
	if pageAccessToken == "" {
		return nil, ErrMissingPageToken
	}

	endpoint := fmt.Sprintf("%s/%s?access_token=%s",
		c.baseURL, url.PathEscape(leadgenID), url.QueryEscape(pageAccessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("meta graph: erro ao criar request: %w", redactURLError(err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("meta graph: erro na conexão: %w", redactURLError(err))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("meta graph: status %d ao buscar lead %s: %s", resp.StatusCode, leadgenID, string(body))
	}

	var lead LeadgenResponse
	if err := json.Unmarshal(body, &lead); err != nil {
		return nil, fmt.Errorf("meta graph: resposta inválida: %w", err)
	}

	return &lead, nil
}

// redactURLError remove a URL (que carrega o access_token) do erro do http.Client.
func redactURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	return err
}
