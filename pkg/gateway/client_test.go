package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"experience-booking/pkg/utils"

	"go.uber.org/zap"
)

func TestParseCancelResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantOK  bool
		wantMsg string
	}{
		{
			name:   "json success flag",
			body:   `{"success":true,"message":"refunded"}`,
			wantOK: true, wantMsg: "refunded",
		},
		{
			name:   "json success false",
			body:   `{"success":false,"message":"already voided"}`,
			wantOK: false, wantMsg: "already voided",
		},
		{
			name:   "json result code success",
			body:   `{"resCode":"0000","resMsg":"ok"}`,
			wantOK: true, wantMsg: "ok",
		},
		{
			name:   "json result code failure",
			body:   `{"resCode":"1001","resMsg":"invalid tid"}`,
			wantOK: false, wantMsg: "invalid tid",
		},
		{
			name:   "raw text success",
			body:   "RESULT=SUCCESS",
			wantOK: true,
		},
		{
			name:   "raw text with success code",
			body:   "resCode=0000&resMsg=ok",
			wantOK: true,
		},
		{
			name:   "raw text failure",
			body:   "RESULT=FAIL reason=expired",
			wantOK: false,
		},
		{
			name:   "empty body",
			body:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, msg := ParseCancelResponse([]byte(tt.body))
			if ok != tt.wantOK {
				t.Errorf("ParseCancelResponse(%q) ok = %v, want %v", tt.body, ok, tt.wantOK)
			}
			if tt.wantMsg != "" && msg != tt.wantMsg {
				t.Errorf("ParseCancelResponse(%q) msg = %q, want %q", tt.body, msg, tt.wantMsg)
			}
		})
	}
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name     string
		response string
		wantErr  bool
	}{
		{name: "accepted", response: `{"success":true}`, wantErr: false},
		{name: "refused", response: `{"success":false,"message":"no such transaction"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/payments/cancel" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if r.Method != http.MethodPost {
					t.Errorf("unexpected method %s", r.Method)
				}
				w.Write([]byte(tt.response))
			}))
			defer srv.Close()

			c := New(utils.GatewayConfig{BaseURL: srv.URL, MerchantID: "m-1"}, zap.NewNop())
			err := c.Cancel(context.Background(), "tx-123", 110000, "change of plans")
			if (err != nil) != tt.wantErr {
				t.Errorf("Cancel() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
