package adaptor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"experience-booking/internal/dto/request"
	"experience-booking/internal/dto/response"
	"experience-booking/internal/usecase"
	"experience-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	testSuccessURL = "https://app.example/payment/success"
	testFailURL    = "https://app.example/payment/fail"
)

type stubPaymentService struct {
	callbackErr error
}

func (s *stubPaymentService) HandleCallback(ctx context.Context, cb *request.GatewayCallback) error {
	return s.callbackErr
}

func (s *stubPaymentService) ConfirmSettlement(ctx context.Context, adminID string, req *request.ConfirmBookingRequest) (*response.SettlementResponse, error) {
	return nil, nil
}

func newCallbackHandler(callbackErr error) *PaymentHandler {
	cfg := &utils.Config{
		Gateway: utils.GatewayConfig{SuccessURL: testSuccessURL, FailURL: testFailURL},
	}
	return NewPaymentHandler(&stubPaymentService{callbackErr: callbackErr}, cfg, zap.NewNop())
}

func postFormCallback(t *testing.T, h *PaymentHandler, resCode string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{
		"resCode": {resCode},
		"amt":     {"110000"},
		"moid":    {"EXP-20260815-100000-0042"},
		"tid":     {"tx-123"},
	}
	r := httptest.NewRequest("POST", "/api/payments/callback", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.Callback(w, r)
	return w
}

func postJSONCallback(t *testing.T, h *PaymentHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest("POST", "/api/payments/callback", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Callback(w, r)
	return w
}

func TestCallbackFormDeclinedRedirectsToFailPage(t *testing.T) {
	h := newCallbackHandler(usecase.ErrPaymentDeclined)

	w := postFormCallback(t, h, "9999")

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != testFailURL {
		t.Errorf("declined payment redirected to %q, want fail page %q", loc, testFailURL)
	}
}

func TestCallbackFormSuccessRedirectsToSuccessPage(t *testing.T) {
	h := newCallbackHandler(nil)

	w := postFormCallback(t, h, "0000")

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != testSuccessURL {
		t.Errorf("paid booking redirected to %q, want success page %q", loc, testSuccessURL)
	}
}

func TestCallbackJSONDeclinedReportsFailure(t *testing.T) {
	h := newCallbackHandler(usecase.ErrPaymentDeclined)

	w := postJSONCallback(t, h, `{"success": false, "merchant_uid": "EXP-20260815-100000-0042"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if success, _ := body["success"].(bool); success {
		t.Errorf("declined payment answered success, body = %s", w.Body.String())
	}
}

func TestCallbackJSONSuccess(t *testing.T) {
	h := newCallbackHandler(nil)

	w := postJSONCallback(t, h, `{"success": true, "paid_amount": 110000, "merchant_uid": "EXP-20260815-100000-0042", "pg_tid": "tid-777"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if success, _ := body["success"].(bool); !success {
		t.Errorf("paid booking answered failure, body = %s", w.Body.String())
	}
}
