package request

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// formSuccessCode is the success sentinel the gateway sends on the
// form-encoded (redirect) callback path.
const formSuccessCode = "0000"

// GatewayCallback is the normalized shape of a payment-gateway callback.
// The gateway delivers either a JSON payload (synchronous client flow) or
// a form-encoded payload (async redirect flow); both collapse into this.
type GatewayCallback struct {
	Success       bool
	Amount        int64
	OrderID       string
	TransactionID string

	// FormEncoded records which wire shape arrived, because the two paths
	// answer differently: JSON gets a JSON body, form gets a 303 redirect.
	FormEncoded bool
}

type jsonCallback struct {
	Success     bool   `json:"success"`
	PaidAmount  int64  `json:"paid_amount"`
	MerchantUID string `json:"merchant_uid"`
	PGTid       string `json:"pg_tid"`
}

// ParseGatewayCallback normalizes both callback shapes.
func ParseGatewayCallback(r *http.Request) (*GatewayCallback, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "application/json") {
		var payload jsonCallback
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("decode callback JSON: %w", err)
		}
		return &GatewayCallback{
			Success:       payload.Success,
			Amount:        payload.PaidAmount,
			OrderID:       payload.MerchantUID,
			TransactionID: payload.PGTid,
		}, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("parse callback form: %w", err)
	}

	amount, err := strconv.ParseInt(r.PostForm.Get("amt"), 10, 64)
	if err != nil && r.PostForm.Get("amt") != "" {
		return nil, fmt.Errorf("parse callback amount %q: %w", r.PostForm.Get("amt"), err)
	}

	return &GatewayCallback{
		Success:       r.PostForm.Get("resCode") == formSuccessCode,
		Amount:        amount,
		OrderID:       r.PostForm.Get("moid"),
		TransactionID: r.PostForm.Get("tid"),
		FormEncoded:   true,
	}, nil
}
