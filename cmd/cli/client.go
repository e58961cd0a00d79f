package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// apiError is a problem+json body returned by either service.
type apiError struct {
	Status int            `json:"status"`
	Title  string         `json:"title"`
	Detail string         `json:"detail"`
	Errors map[string]any `json:"errors,omitempty"`
}

func (e *apiError) Error() string {
	if e.Detail != "" && e.Detail != e.Title {
		return fmt.Sprintf("%s: %s (%d)", e.Title, e.Detail, e.Status)
	}
	return fmt.Sprintf("%s (%d)", e.Title, e.Status)
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type account struct {
	ID            string `json:"id"`
	AccountNumber string `json:"account_number"`
	AccountType   string `json:"account_type"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
}

type entry struct {
	ID                 string  `json:"id"`
	AccountID          string  `json:"account_id"`
	RecipientAccountID *string `json:"recipient_account_id,omitempty"`
	TransactionType    string  `json:"transaction_type"`
	Amount             string  `json:"amount"`
	Currency           string  `json:"currency"`
	Status             string  `json:"status"`
	FailureReason      string  `json:"failure_reason,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

// client talks to the account and transaction services over HTTP.
type client struct {
	accountsURL     string
	transactionsURL string
	token           string
	http            *http.Client
}

func newClient(accountsURL, transactionsURL string) *client {
	return &client{
		accountsURL:     strings.TrimRight(accountsURL, "/"),
		transactionsURL: strings.TrimRight(transactionsURL, "/"),
		http:            &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, c.accountsURL+"/auth/register", map[string]string{
		"username": username,
		"password": password,
	}, nil)
}

func (c *client) Login(ctx context.Context, username, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, c.accountsURL+"/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &out); err != nil {
		return err
	}
	if out.Token == "" {
		return errors.New("login returned no token")
	}
	c.token = out.Token
	return nil
}

func (c *client) OpenAccount(ctx context.Context, accountType, currency string) (*account, error) {
	body := map[string]string{"account_type": accountType}
	if currency != "" {
		body["currency"] = currency
	}
	var out account
	if err := c.do(ctx, http.MethodPost, c.accountsURL+"/api/accounts", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) Accounts(ctx context.Context) ([]account, error) {
	var out []account
	if err := c.do(ctx, http.MethodGet, c.accountsURL+"/api/accounts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) Transact(ctx context.Context, txType, accountID, amount, recipientID, currency string) (*entry, error) {
	body := map[string]any{
		"account_id":       accountID,
		"transaction_type": txType,
		"amount":           amount,
	}
	if recipientID != "" {
		body["recipient_account_id"] = recipientID
	}
	if currency != "" {
		body["currency"] = currency
	}
	var out entry
	if err := c.do(ctx, http.MethodPost, c.transactionsURL+"/api/transactions", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) History(ctx context.Context, accountID string) ([]entry, error) {
	var out []entry
	if err := c.do(ctx, http.MethodGet, c.transactionsURL+"/api/transactions/account/"+accountID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) Transaction(ctx context.Context, id string) (*entry, error) {
	var out entry
	if err := c.do(ctx, http.MethodGet, c.transactionsURL+"/api/transactions/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) do(ctx context.Context, method, url string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		problem := &apiError{Status: resp.StatusCode, Title: http.StatusText(resp.StatusCode)}
		_ = json.Unmarshal(raw, problem)
		return problem
	}
	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("unexpected response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
