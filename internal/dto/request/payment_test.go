package request

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestParseGatewayCallbackJSON(t *testing.T) {
	body := `{"success": true, "paid_amount": 110000, "merchant_uid": "EXP-20260815-100000-0042", "pg_tid": "tid-777"}`
	r := httptest.NewRequest("POST", "/api/payments/callback", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	cb, err := ParseGatewayCallback(r)
	if err != nil {
		t.Fatalf("ParseGatewayCallback: %v", err)
	}

	if !cb.Success {
		t.Error("success not carried over")
	}
	if cb.Amount != 110000 {
		t.Errorf("amount = %d, want 110000", cb.Amount)
	}
	if cb.OrderID != "EXP-20260815-100000-0042" {
		t.Errorf("order ID = %q", cb.OrderID)
	}
	if cb.TransactionID != "tid-777" {
		t.Errorf("transaction ID = %q", cb.TransactionID)
	}
	if cb.FormEncoded {
		t.Error("JSON callback flagged as form-encoded")
	}
}

func TestParseGatewayCallbackJSONFailure(t *testing.T) {
	body := `{"success": false, "merchant_uid": "EXP-20260815-100000-0042"}`
	r := httptest.NewRequest("POST", "/api/payments/callback", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	cb, err := ParseGatewayCallback(r)
	if err != nil {
		t.Fatalf("ParseGatewayCallback: %v", err)
	}
	if cb.Success {
		t.Error("declined payment parsed as success")
	}
}

func TestParseGatewayCallbackForm(t *testing.T) {
	form := url.Values{
		"resCode": {"0000"},
		"amt":     {"110000"},
		"moid":    {"EXP-20260815-100000-0042"},
		"tid":     {"tid-888"},
	}
	r := httptest.NewRequest("POST", "/api/payments/callback", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	cb, err := ParseGatewayCallback(r)
	if err != nil {
		t.Fatalf("ParseGatewayCallback: %v", err)
	}

	if !cb.Success {
		t.Error("resCode 0000 must mean success")
	}
	if cb.Amount != 110000 {
		t.Errorf("amount = %d, want 110000", cb.Amount)
	}
	if cb.OrderID != "EXP-20260815-100000-0042" {
		t.Errorf("order ID = %q", cb.OrderID)
	}
	if cb.TransactionID != "tid-888" {
		t.Errorf("transaction ID = %q", cb.TransactionID)
	}
	if !cb.FormEncoded {
		t.Error("form callback not flagged as form-encoded")
	}
}

func TestParseGatewayCallbackFormNonZeroCode(t *testing.T) {
	form := url.Values{
		"resCode": {"3001"},
		"moid":    {"EXP-20260815-100000-0042"},
	}
	r := httptest.NewRequest("POST", "/api/payments/callback", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	cb, err := ParseGatewayCallback(r)
	if err != nil {
		t.Fatalf("ParseGatewayCallback: %v", err)
	}
	if cb.Success {
		t.Error("non-0000 resCode parsed as success")
	}
	if cb.Amount != 0 {
		t.Errorf("missing amt should parse to 0, got %d", cb.Amount)
	}
}

func TestParseGatewayCallbackBadJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/payments/callback", strings.NewReader("{not json"))
	r.Header.Set("Content-Type", "application/json")

	if _, err := ParseGatewayCallback(r); err == nil {
		t.Fatal("malformed JSON must error")
	}
}
