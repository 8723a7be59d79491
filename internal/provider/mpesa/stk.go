package mpesa

import (
	"context"
	"encoding/base64"
	"time"

	"mpesarelay/internal/provider"
)

const (
	stkPushPath  = "/mpesa/stkpush/v1/processrequest"
	stkQueryPath = "/mpesa/stkpushquery/v1/query"

	timestampLayout = "20060102150405"
)

// eat is East Africa Time, the zone Daraja validates STK timestamps in
var eat = time.FixedZone("EAT", 3*3600)

// Timestamp formats t as the 14 digit YYYYMMDDHHMMSS string in EAT
func Timestamp(t time.Time) string {
	return t.In(eat).Format(timestampLayout)
}

// Password is base64(shortcode + passkey + timestamp), concatenated as one string
func Password(shortcode, passkey, timestamp string) string {
	return base64.StdEncoding.EncodeToString([]byte(shortcode + passkey + timestamp))
}

// STKPushRequest prompts the payer's phone to authorise a payment (Lipa Na M-Pesa Online)
type STKPushRequest struct {
	BusinessShortCode string             `json:"business_short_code"`
	Amount            int64              `json:"amount"`
	PartyA            string             `json:"party_a"` // MSISDN sending the funds
	PhoneNumber       string             `json:"phone_number"`
	CallBackURL       string             `json:"callback_url"`
	AccountReference  string             `json:"account_reference"`
	PassKey           string             `json:"pass_key"`
	TransactionType   provider.CommandID `json:"transaction_type,omitempty"`
	TransactionDesc   string             `json:"transaction_desc,omitempty"`
}

type stkPushPayload struct {
	BusinessShortCode string             `json:"BusinessShortCode"`
	Password          string             `json:"Password"`
	Timestamp         string             `json:"Timestamp"`
	TransactionType   provider.CommandID `json:"TransactionType"`
	Amount            int64              `json:"Amount"`
	PartyA            string             `json:"PartyA"`
	PartyB            string             `json:"PartyB"`
	PhoneNumber       string             `json:"PhoneNumber"`
	CallBackURL       string             `json:"CallBackURL"`
	AccountReference  string             `json:"AccountReference"`
	TransactionDesc   string             `json:"TransactionDesc"`
}

func (r STKPushRequest) payload(now time.Time) stkPushPayload {
	ts := Timestamp(now)
	return stkPushPayload{
		BusinessShortCode: r.BusinessShortCode,
		Password:          Password(r.BusinessShortCode, r.PassKey, ts),
		Timestamp:         ts,
		TransactionType:   or(r.TransactionType, provider.CommandCustomerPayBillOnline),
		Amount:            r.Amount,
		PartyA:            r.PartyA,
		PartyB:            r.BusinessShortCode,
		PhoneNumber:       r.PhoneNumber,
		CallBackURL:       r.CallBackURL,
		AccountReference:  r.AccountReference,
		TransactionDesc:   or(r.TransactionDesc, "Lipa Na Mpesa Online"),
	}
}

// STKPush initiates STK push payment
func (c *Client) STKPush(ctx context.Context, req STKPushRequest) (*Response, error) {
	return c.post(ctx, provider.OpSTKPush, stkPushPath, req.payload(c.now()), time.Now())
}

// STKPushQueryRequest asks for the state of an earlier push
type STKPushQueryRequest struct {
	BusinessShortCode string `json:"business_short_code"`
	CheckoutRequestID string `json:"checkout_request_id"`
	PassKey           string `json:"pass_key"`
}

type stkQueryPayload struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
}

func (r STKPushQueryRequest) payload(now time.Time) stkQueryPayload {
	ts := Timestamp(now)
	return stkQueryPayload{
		BusinessShortCode: r.BusinessShortCode,
		Password:          Password(r.BusinessShortCode, r.PassKey, ts),
		Timestamp:         ts,
		CheckoutRequestID: r.CheckoutRequestID,
	}
}

// STKPushQuery queries the status of an STK push by CheckoutRequestID
func (c *Client) STKPushQuery(ctx context.Context, req STKPushQueryRequest) (*Response, error) {
	return c.post(ctx, provider.OpSTKQuery, stkQueryPath, req.payload(c.now()), time.Now())
}
