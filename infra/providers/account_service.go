package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/amirasaad/fintech-ledger/pkg/config"
	"github.com/amirasaad/fintech-ledger/pkg/domain"
	"github.com/amirasaad/fintech-ledger/pkg/dto"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

// TokenSource returns the bearer token sent with every account-service call.
type TokenSource func() (string, error)

// AccountServiceClient calls the account service's balance mutation and
// resolve endpoints. Every failure to obtain a well-formed answer is reported
// as domain.ErrTransportFailure; business rejections are not errors.
type AccountServiceClient struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	token      TokenSource
	logger     *slog.Logger
}

type apiResponse[T any] struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    *T     `json:"data"`
}

// mutationResponse mirrors dto.MutationResult with Success as a pointer so an
// answer that omits it is told apart from a rejection.
type mutationResponse struct {
	Success *bool  `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

func (r *mutationResponse) validate() error {
	if r.Success == nil {
		return errors.New("response data has no success field")
	}
	return nil
}

type outcomeResponse struct {
	dto.MutationOutcome
}

func (r *outcomeResponse) validate() error {
	switch r.Outcome {
	case dto.OutcomeApplied, dto.OutcomeRejected, dto.OutcomeVoided:
		return nil
	}
	return fmt.Errorf("response data has unknown outcome %q", r.Outcome)
}

// NewAccountServiceClient creates a client for the account service at cfg.URL.
func NewAccountServiceClient(
	cfg *config.AccountService,
	token TokenSource,
	logger *slog.Logger,
) *AccountServiceClient {
	breakerCfg := cfg.Breaker
	if breakerCfg == nil {
		breakerCfg = &config.Breaker{MaxRequests: 1, ConsecutiveFailures: 5}
	}
	settings := gobreaker.Settings{
		Name:        "account-service",
		MaxRequests: breakerCfg.MaxRequests,
		Interval:    breakerCfg.Interval,
		Timeout:     breakerCfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= breakerCfg.ConsecutiveFailures {
				return true
			}
			if counts.Requests < breakerCfg.MinRequests || counts.Requests == 0 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= breakerCfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}
	return &AccountServiceClient{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
		breaker:    gobreaker.NewCircuitBreaker(settings),
		token:      token,
		logger:     logger.With("client", "account-service"),
	}
}

// ApplyMutation sends a balance mutation. A business rejection comes back as
// a result with Success false and a nil error.
func (c *AccountServiceClient) ApplyMutation(
	ctx context.Context,
	m dto.BalanceMutation,
) (*dto.MutationResult, error) {
	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal mutation: %w", domain.ErrTransportFailure, err)
	}
	var result mutationResponse
	if err := c.call(ctx, http.MethodPut, c.baseURL+"/balance", body, &result); err != nil {
		return nil, err
	}
	return &dto.MutationResult{Success: *result.Success, Reason: result.Reason}, nil
}

// ResolveMutation asks the account service for the outcome of a reference,
// fencing it first if no mutation was ever recorded.
func (c *AccountServiceClient) ResolveMutation(
	ctx context.Context,
	referenceID uuid.UUID,
) (*dto.MutationOutcome, error) {
	url := fmt.Sprintf("%s/mutations/%s/resolve", c.baseURL, referenceID)
	var outcome outcomeResponse
	if err := c.call(ctx, http.MethodPost, url, nil, &outcome); err != nil {
		return nil, err
	}
	return &outcome.MutationOutcome, nil
}

type validator interface {
	validate() error
}

func (c *AccountServiceClient) call(ctx context.Context, method, url string, body []byte, out validator) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	_, err := c.breaker.Execute(func() (any, error) {
		return nil, c.do(ctx, method, url, body, out)
	})
	if err == nil {
		return nil
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.logger.Warn("Account service call rejected by circuit breaker", "url", url, "error", err)
	} else {
		c.logger.Error("Account service call failed", "url", url, "error", err)
	}
	return fmt.Errorf("%w: %w", domain.ErrTransportFailure, err)
}

func (c *AccountServiceClient) do(ctx context.Context, method, url string, body []byte, out validator) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != nil {
		token, err := c.token()
		if err != nil {
			return fmt.Errorf("failed to obtain service token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(raw))
	}

	envelope := apiResponse[json.RawMessage]{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if envelope.Data == nil {
		return errors.New("response has no data")
	}
	if err := json.Unmarshal(*envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return out.validate()
}
