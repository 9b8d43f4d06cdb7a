package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Pi platform API client. The platform is an opaque payment rail: we
// hand it a payment identifier plus the blockchain txid and record its
// acknowledgement. Settlement references are never validated
// cryptographically on our side.

func getPiConfig() (baseURL, apiKey string, err error) {
	baseURL = os.Getenv("PI_API_BASE_URL")
	apiKey = os.Getenv("PI_API_KEY")
	if baseURL == "" {
		baseURL = "https://api.minepi.com/v2"
	}
	if apiKey == "" {
		return "", "", fmt.Errorf("PI_API_KEY is required")
	}
	return baseURL, apiKey, nil
}

var piHTTPClient = &http.Client{Timeout: 15 * time.Second}

// PiPaymentStatus is the rail's view of a payment.
type PiPaymentStatus struct {
	Identifier string  `json:"identifier"`
	Amount     float64 `json:"amount"`
	Memo       string  `json:"memo"`
	TxID       string  `json:"txid,omitempty"`
	Developer  struct {
		Approved  bool `json:"developer_approved"`
		Completed bool `json:"developer_completed"`
	} `json:"status"`
}

func piRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	baseURL, apiKey, err := getPiConfig()
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Key "+apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := piHTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("pi api %s %s: status %d: %s", method, path, resp.StatusCode, string(data))
	}
	return data, nil
}

// PiGetPayment fetches the rail's record for a payment identifier.
func PiGetPayment(ctx context.Context, paymentID string) (*PiPaymentStatus, error) {
	data, err := piRequest(ctx, http.MethodGet, "/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	var st PiPaymentStatus
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// PiApprovePayment tells the rail the server has seen and accepted the
// payment intent.
func PiApprovePayment(ctx context.Context, paymentID string) error {
	_, err := piRequest(ctx, http.MethodPost, "/payments/"+paymentID+"/approve", nil)
	return err
}

// PiCompletePayment submits the settlement txid for a payment.
func PiCompletePayment(ctx context.Context, paymentID, txid string) error {
	_, err := piRequest(ctx, http.MethodPost, "/payments/"+paymentID+"/complete", map[string]string{"txid": txid})
	return err
}
