// Package gateway wraps the external payment gateway's cancel/refund API.
// The gateway's response body is not strictly typed: depending on the
// upstream PG module it may be JSON or raw text, so success detection
// tries JSON first and falls back to substring matching.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"experience-booking/pkg/utils"

	"go.uber.org/zap"
)

// Client is the surface the booking workflows depend on.
type Client interface {
	Cancel(ctx context.Context, transactionID string, amount int64, reason string) error
}

type HTTPClient struct {
	baseURL    string
	merchantID string
	http       *http.Client
	log        *zap.Logger
}

func New(cfg utils.GatewayConfig, log *zap.Logger) *HTTPClient {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		merchantID: cfg.MerchantID,
		http:       &http.Client{Timeout: timeout},
		log:        log.With(zap.String("client", "payment_gateway")),
	}
}

type cancelRequest struct {
	MerchantID    string `json:"merchant_id"`
	TransactionID string `json:"tid"`
	Amount        int64  `json:"amount"`
	Reason        string `json:"reason"`
}

// Cancel asks the gateway to void/refund a transaction. Local state must
// only change after this returns nil.
func (c *HTTPClient) Cancel(ctx context.Context, transactionID string, amount int64, reason string) error {
	payload, err := json.Marshal(cancelRequest{
		MerchantID:    c.merchantID,
		TransactionID: transactionID,
		Amount:        amount,
		Reason:        reason,
	})
	if err != nil {
		return fmt.Errorf("marshal cancel request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments/cancel", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build cancel request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("Gateway cancel call failed",
			zap.Error(err),
			zap.String("transaction_id", transactionID),
		)
		return fmt.Errorf("gateway cancel call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read gateway response: %w", err)
	}

	ok, message := ParseCancelResponse(body)
	if !ok {
		c.log.Warn("Gateway rejected cancel",
			zap.String("transaction_id", transactionID),
			zap.Int("http_status", resp.StatusCode),
			zap.String("gateway_message", message),
		)
		return fmt.Errorf("gateway refused cancel for %s: %s", transactionID, message)
	}

	c.log.Info("Gateway cancel accepted",
		zap.String("transaction_id", transactionID),
		zap.Int64("amount", amount),
	)
	return nil
}

type cancelResponse struct {
	Success *bool  `json:"success"`
	ResCode string `json:"resCode"`
	Message string `json:"message"`
	ResMsg  string `json:"resMsg"`
}

// ParseCancelResponse extracts the success sentinel from a gateway body
// that may be JSON or raw text. "0000" is the gateway's success result
// code. Returns the gateway's message text for error reporting.
func ParseCancelResponse(body []byte) (bool, string) {
	var parsed cancelResponse
	if err := json.Unmarshal(body, &parsed); err == nil {
		msg := parsed.Message
		if msg == "" {
			msg = parsed.ResMsg
		}
		if parsed.Success != nil {
			return *parsed.Success, msg
		}
		if parsed.ResCode != "" {
			return parsed.ResCode == "0000", msg
		}
		if msg != "" {
			return false, msg
		}
		// Valid JSON with none of the known fields; fall through to the
		// raw-text scan below.
	}

	text := strings.TrimSpace(string(body))
	upper := strings.ToUpper(text)
	if strings.Contains(upper, "SUCCESS") || strings.Contains(text, "0000") {
		return true, text
	}
	return false, text
}
