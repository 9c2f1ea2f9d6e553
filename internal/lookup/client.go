package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/jmallek/domainwatch/internal/check"
	"github.com/jmallek/domainwatch/internal/config"
	"github.com/rs/zerolog"
)

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 1 << 20

// Client queries the JSON lookup provider over HTTP. One request per call;
// retry policy belongs to the resolver, not here.
type Client struct {
	httpClient   *http.Client
	endpoint     string
	successCodes map[string]struct{}
	logger       zerolog.Logger
}

func New(cfg *config.LookupConfig, logger zerolog.Logger) *Client {
	codes := make(map[string]struct{}, len(cfg.SuccessCodes))
	for _, code := range cfg.SuccessCodes {
		codes[code] = struct{}{}
	}
	return &Client{
		httpClient:   &http.Client{Timeout: cfg.TimeoutDuration()},
		endpoint:     cfg.Endpoint,
		successCodes: codes,
		logger:       logger,
	}
}

// Lookup fetches the provider's view of one domain. Failure kinds map onto
// the core error taxonomy: transport problems and non-2xx responses are
// transient, envelope error codes are provider errors, and undecodable bodies
// are malformed payloads.
func (c *Client) Lookup(ctx context.Context, domain string) (*check.Payload, error) {
	requestURL, err := c.buildURL(domain)
	if err != nil {
		return nil, check.NewMalformedPayloadError("invalid lookup endpoint", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, check.NewMalformedPayloadError("building lookup request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, check.NewTransientError("lookup", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, check.NewTransientError("lookup", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, check.NewTransientError("lookup", fmt.Errorf("unexpected HTTP status %d", resp.StatusCode))
	}

	var envelope wireEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, check.NewMalformedPayloadError("undecodable response body", err)
	}

	code := string(envelope.Code)
	if _, ok := c.successCodes[code]; !ok {
		return nil, check.NewProviderError(code, envelope.Message)
	}
	if envelope.Data == nil {
		return nil, check.NewMalformedPayloadError("missing data object", nil)
	}

	c.logger.Debug().
		Str("domain", domain).
		Str("status", envelope.Data.DomainStatus).
		Str("expiration_time", envelope.Data.ExpirationTime).
		Msg("Lookup response received")

	return &check.Payload{
		StatusCode: code,
		StatusText: envelope.Data.DomainStatus,
		ExpiresAt:  envelope.Data.ExpirationTime,
	}, nil
}

func (c *Client) buildURL(domain string) (string, error) {
	parsed, err := url.Parse(c.endpoint)
	if err != nil {
		return "", err
	}
	query := parsed.Query()
	query.Set("domain", domain)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
