package adaptor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gym-booking/internal/dto/request"
	"gym-booking/internal/dto/response"

	"go.uber.org/zap"
)

type stubPaymentService struct {
	handleErr error
	handled   []*request.WebhookEnvelope
}

func (s *stubPaymentService) HandleWebhook(_ context.Context, envelope *request.WebhookEnvelope) error {
	s.handled = append(s.handled, envelope)
	return s.handleErr
}

func (s *stubPaymentService) CreatePayment(_ context.Context, _ string, _ *request.CreatePaymentRequest) (*response.PaymentResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubPaymentService) ListPaymentsForOwner(_ context.Context, _ string, _ *request.PaginatedRequest) ([]response.PaymentResponse, error) {
	return nil, errors.New("not implemented")
}

func postWebhook(t *testing.T, handler *PaymentHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Webhook(rec, req)
	return rec
}

func TestWebhookHandlerAcceptsPaymentNotification(t *testing.T) {
	service := &stubPaymentService{}
	handler := NewPaymentHandler(service, zap.NewNop())

	rec := postWebhook(t, handler, `{"type":"payment","action":"payment.updated","data":{"id":12345}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(service.handled) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(service.handled))
	}
	if got := service.handled[0].Data.ID.String(); got != "12345" {
		t.Fatalf("expected data.id 12345, got %q", got)
	}
	if !strings.Contains(rec.Body.String(), `"received":true`) {
		t.Fatalf("expected received ack in body, got %s", rec.Body.String())
	}
}

func TestWebhookHandlerAcceptsStringDataID(t *testing.T) {
	service := &stubPaymentService{}
	handler := NewPaymentHandler(service, zap.NewNop())

	rec := postWebhook(t, handler, `{"type":"payment","data":{"id":"abc-123"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := service.handled[0].Data.ID.String(); got != "abc-123" {
		t.Fatalf("expected data.id abc-123, got %q", got)
	}
}

func TestWebhookHandlerRejectsMalformedBody(t *testing.T) {
	service := &stubPaymentService{}
	handler := NewPaymentHandler(service, zap.NewNop())

	rec := postWebhook(t, handler, `{"type":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(service.handled) != 0 {
		t.Fatal("malformed body must not reach the service")
	}
}

func TestWebhookHandlerRejectsIncompleteEnvelope(t *testing.T) {
	service := &stubPaymentService{}
	handler := NewPaymentHandler(service, zap.NewNop())

	for _, body := range []string{
		`{"data":{"id":123}}`,
		`{"type":"payment","data":{}}`,
		`{}`,
	} {
		rec := postWebhook(t, handler, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
	}
	if len(service.handled) != 0 {
		t.Fatal("incomplete envelopes must not reach the service")
	}
}

func TestWebhookHandlerReturns500OnProcessingFailure(t *testing.T) {
	service := &stubPaymentService{handleErr: errors.New("update payment: connection reset")}
	handler := NewPaymentHandler(service, zap.NewNop())

	rec := postWebhook(t, handler, `{"type":"payment","data":{"id":1}}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
