package v1

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// OrderRequest is the body of POST /v1/orders.
//
//	{"amount": "12.3343", "timestamp": "2018-07-17T09:59:51.312Z"}
//
// Both fields are pointers so that a missing or null field can be told apart
// from an empty or malformed one: the former is a bad request, the latter an
// unprocessable order.
type OrderRequest struct {
	// Amount is the transaction amount as a decimal string. A bare JSON
	// number is accepted as well and kept verbatim, so no float rounding
	// happens before the amount is parsed.
	Amount *NumericString `json:"amount"`

	// Timestamp is the time the order was placed, in ISO-8601 / RFC 3339 form.
	Timestamp *string `json:"timestamp"`
}

// Validate ensures both fields are present.
func (r *OrderRequest) Validate() error {
	if r.Amount == nil {
		return fmt.Errorf("amount is required")
	}
	if r.Timestamp == nil {
		return fmt.Errorf("timestamp is required")
	}
	return nil
}

// NumericString holds either a JSON string or a JSON number literal as text.
type NumericString string

func (n *NumericString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumericString(s)
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("amount must be a string or a number")
	}
	*n = NumericString(num)
	return nil
}

func (n NumericString) String() string {
	return string(n)
}

// StatisticsResponse is the body of GET /v1/statistics.
// Decimal values are rendered as strings with exactly two fractional digits.
type StatisticsResponse struct {
	Sum   string `json:"sum"`
	Avg   string `json:"avg"`
	Max   string `json:"max"`
	Min   string `json:"min"`
	Count int64  `json:"count"`
}
