package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gym-booking/pkg/utils"

	"go.uber.org/zap"
)

type mercadoPagoClient struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
	log         *zap.Logger
}

// NewMercadoPagoClient builds the HTTP client for the Mercado Pago payments API.
// The request timeout bounds webhook processing; retries are the gateway's job.
func NewMercadoPagoClient(config utils.MercadoPagoConfig, log *zap.Logger) PaymentGateway {
	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &mercadoPagoClient{
		baseURL:     config.BaseURL,
		accessToken: config.AccessToken,
		httpClient:  &http.Client{Timeout: timeout},
		log:         log.With(zap.String("gateway", "mercadopago")),
	}
}

// mpPayment is the subset of the provider payload the engine reads.
// The provider sends numeric IDs; json.Number keeps them lossless.
type mpPayment struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	ExternalReference string      `json:"external_reference"`
	DateApproved      *string     `json:"date_approved"`
	StatusDetail      string      `json:"status_detail"`
	PaymentMethodID   string      `json:"payment_method_id"`
	PaymentTypeID     string      `json:"payment_type_id"`
}

func (c *mercadoPagoClient) FetchPayment(ctx context.Context, paymentID string) (*PaymentInfo, error) {
	url := fmt.Sprintf("%s/v1/payments/%s", c.baseURL, paymentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build payment request %s: %w", paymentID, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Failed to fetch payment from gateway",
			zap.Error(err),
			zap.String("payment_id", paymentID),
		)
		return nil, fmt.Errorf("fetch payment %s: %w", paymentID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn("Gateway returned non-200 for payment",
			zap.String("payment_id", paymentID),
			zap.Int("status_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("fetch payment %s: gateway status %d", paymentID, resp.StatusCode)
	}

	var payload mpPayment
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode payment %s: %w", paymentID, err)
	}

	info := &PaymentInfo{
		ID:                payload.ID.String(),
		Status:            payload.Status,
		ExternalReference: payload.ExternalReference,
		StatusDetail:      payload.StatusDetail,
		PaymentMethodID:   payload.PaymentMethodID,
		PaymentTypeID:     payload.PaymentTypeID,
	}

	if payload.DateApproved != nil && *payload.DateApproved != "" {
		if approved, err := time.Parse(time.RFC3339, *payload.DateApproved); err == nil {
			info.DateApproved = &approved
		}
	}

	return info, nil
}
