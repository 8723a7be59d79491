package mpesa

import (
	"context"
	"time"

	"mpesarelay/internal/provider"
)

const (
	b2cPath = "/mpesa/b2c/v1/paymentrequest"
	b2bPath = "/mpesa/b2b/v1/paymentrequest"
)

// B2C (Business to Customer transfers)
type B2CRequest struct {
	InitiatorName   string             `json:"initiator_name"`
	Amount          int64              `json:"amount"`
	PartyA          string             `json:"party_a"` // sending short code
	PartyB          string             `json:"party_b"` // receiving MSISDN
	QueueTimeOutURL string             `json:"queue_timeout_url"`
	ResultURL       string             `json:"result_url"`
	CommandID       provider.CommandID `json:"command_id,omitempty"` // SalaryPayment, BusinessPayment, etc.
	Remarks         string             `json:"remarks,omitempty"`
	Occasion        string             `json:"occasion,omitempty"`
}

type b2cPayload struct {
	InitiatorName      string             `json:"InitiatorName"`
	SecurityCredential string             `json:"SecurityCredential"`
	CommandID          provider.CommandID `json:"CommandID"`
	Amount             int64              `json:"Amount"`
	PartyA             string             `json:"PartyA"`
	PartyB             string             `json:"PartyB"`
	Remarks            string             `json:"Remarks"`
	QueueTimeOutURL    string             `json:"QueueTimeOutURL"`
	ResultURL          string             `json:"ResultURL"`
	Occasion           string             `json:"Occasion"`
}

func (r B2CRequest) payload(securityCredential string) b2cPayload {
	return b2cPayload{
		InitiatorName:      r.InitiatorName,
		SecurityCredential: securityCredential,
		CommandID:          or(r.CommandID, provider.CommandBusinessPayment),
		Amount:             r.Amount,
		PartyA:             r.PartyA,
		PartyB:             r.PartyB,
		Remarks:            or(r.Remarks, "Business To Customer Request"),
		QueueTimeOutURL:    r.QueueTimeOutURL,
		ResultURL:          r.ResultURL,
		Occasion:           or(r.Occasion, "Business To Customer Request"),
	}
}

// B2C pays a customer from a B2C short code
func (c *Client) B2C(ctx context.Context, req B2CRequest) (*Response, error) {
	start := time.Now()
	cred, err := c.securityCredential(ctx, provider.OpB2C, start)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, provider.OpB2C, b2cPath, req.payload(cred), start)
}

// B2B (Business to Business transfers)
type B2BRequest struct {
	InitiatorName          string                  `json:"initiator_name"`
	Amount                 int64                   `json:"amount"`
	PartyA                 string                  `json:"party_a"`
	PartyB                 string                  `json:"party_b"`
	AccountReference       string                  `json:"account_reference"` // mandatory for BusinessPayBill
	QueueTimeOutURL        string                  `json:"queue_timeout_url"`
	ResultURL              string                  `json:"result_url"`
	CommandID              provider.CommandID      `json:"command_id,omitempty"`
	SenderIdentifierType   provider.IdentifierType `json:"sender_identifier_type,omitempty"`
	ReceiverIdentifierType provider.IdentifierType `json:"receiver_identifier_type,omitempty"`
	Remarks                string                  `json:"remarks,omitempty"`
}

// Daraja spells it RecieverIdentifierType
type b2bPayload struct {
	InitiatorName          string                  `json:"InitiatorName"`
	SecurityCredential     string                  `json:"SecurityCredential"`
	CommandID              provider.CommandID      `json:"CommandID"`
	SenderIdentifierType   provider.IdentifierType `json:"SenderIdentifierType"`
	RecieverIdentifierType provider.IdentifierType `json:"RecieverIdentifierType"`
	Amount                 int64                   `json:"Amount"`
	PartyA                 string                  `json:"PartyA"`
	PartyB                 string                  `json:"PartyB"`
	AccountReference       string                  `json:"AccountReference"`
	Remarks                string                  `json:"Remarks"`
	QueueTimeOutURL        string                  `json:"QueueTimeOutURL"`
	ResultURL              string                  `json:"ResultURL"`
}

func (r B2BRequest) payload(securityCredential string) b2bPayload {
	return b2bPayload{
		InitiatorName:          r.InitiatorName,
		SecurityCredential:     securityCredential,
		CommandID:              or(r.CommandID, provider.CommandMerchantToMerchantTransfer),
		SenderIdentifierType:   or(r.SenderIdentifierType, provider.IdentifierShortcode),
		RecieverIdentifierType: or(r.ReceiverIdentifierType, provider.IdentifierShortcode),
		Amount:                 r.Amount,
		PartyA:                 r.PartyA,
		PartyB:                 r.PartyB,
		AccountReference:       r.AccountReference,
		Remarks:                or(r.Remarks, "Business To Business Request"),
		QueueTimeOutURL:        r.QueueTimeOutURL,
		ResultURL:              r.ResultURL,
	}
}

// B2B moves funds between two business short codes
func (c *Client) B2B(ctx context.Context, req B2BRequest) (*Response, error) {
	start := time.Now()
	cred, err := c.securityCredential(ctx, provider.OpB2B, start)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, provider.OpB2B, b2bPath, req.payload(cred), start)
}

// or returns def when v is the zero value
func or[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
