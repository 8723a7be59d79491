package mpesa

import (
	"encoding/json"
	"net/http"
)

// Response is the Daraja reply, passed through unmodified
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Envelope holds the fields Daraja responses commonly carry. Which ones are
// set depends on the endpoint.
type Envelope struct {
	MerchantRequestID        string `json:"MerchantRequestID,omitempty"`
	CheckoutRequestID        string `json:"CheckoutRequestID,omitempty"`
	ConversationID           string `json:"ConversationID,omitempty"`
	OriginatorConversationID string `json:"OriginatorConversationID,omitempty"`
	ResponseCode             string `json:"ResponseCode,omitempty"`
	ResponseDescription      string `json:"ResponseDescription,omitempty"`
	CustomerMessage          string `json:"CustomerMessage,omitempty"`
	ResultCode               string `json:"ResultCode,omitempty"`
	ResultDesc               string `json:"ResultDesc,omitempty"`
	RequestID                string `json:"requestId,omitempty"`
	ErrorCode                string `json:"errorCode,omitempty"`
	ErrorMessage             string `json:"errorMessage,omitempty"`
}

// Decode unmarshals the body into v
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}

// Envelope decodes the common response fields
func (r *Response) Envelope() (Envelope, error) {
	var env Envelope
	err := r.Decode(&env)
	return env, err
}
