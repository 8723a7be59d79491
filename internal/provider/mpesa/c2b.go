package mpesa

import (
	"context"
	"time"

	"mpesarelay/internal/provider"
)

const (
	c2bRegisterPath = "/mpesa/c2b/v1/registerurl"
	c2bSimulatePath = "/mpesa/c2b/v1/simulate"
)

// RegisterC2BRequest maps confirmation and validation URLs to a short code
type RegisterC2BRequest struct {
	ShortCode       string `json:"short_code"`
	ConfirmationURL string `json:"confirmation_url"`
	ValidationURL   string `json:"validation_url"`
	ResponseType    string `json:"response_type,omitempty"` // "Completed" or "Cancelled"
}

type registerC2BPayload struct {
	ShortCode       string `json:"ShortCode"`
	ResponseType    string `json:"ResponseType"`
	ConfirmationURL string `json:"ConfirmationURL"`
	ValidationURL   string `json:"ValidationURL"`
}

func (r RegisterC2BRequest) payload() registerC2BPayload {
	return registerC2BPayload{
		ShortCode:       r.ShortCode,
		ResponseType:    or(r.ResponseType, "Completed"),
		ConfirmationURL: r.ConfirmationURL,
		ValidationURL:   r.ValidationURL,
	}
}

// RegisterC2BURLs registers the callback URLs M-Pesa calls for payments to a short code
func (c *Client) RegisterC2BURLs(ctx context.Context, req RegisterC2BRequest) (*Response, error) {
	return c.post(ctx, provider.OpC2BRegister, c2bRegisterPath, req.payload(), time.Now())
}

// SimulateC2BRequest fakes a customer payment to a short code
type SimulateC2BRequest struct {
	ShortCode     string             `json:"short_code"`
	Amount        int64              `json:"amount"`
	Msisdn        string             `json:"msisdn"`
	CommandID     provider.CommandID `json:"command_id,omitempty"`
	BillRefNumber *string            `json:"bill_ref_number,omitempty"`
}

type simulateC2BPayload struct {
	ShortCode     string             `json:"ShortCode"`
	CommandID     provider.CommandID `json:"CommandID"`
	Amount        int64              `json:"Amount"`
	Msisdn        string             `json:"Msisdn"`
	BillRefNumber *string            `json:"BillRefNumber"` // null when unset
}

func (r SimulateC2BRequest) payload() simulateC2BPayload {
	return simulateC2BPayload{
		ShortCode:     r.ShortCode,
		CommandID:     or(r.CommandID, provider.CommandCustomerPayBillOnline),
		Amount:        r.Amount,
		Msisdn:        r.Msisdn,
		BillRefNumber: r.BillRefNumber,
	}
}

// SimulateC2B triggers a simulated C2B payment (sandbox only on Daraja's side)
func (c *Client) SimulateC2B(ctx context.Context, req SimulateC2BRequest) (*Response, error) {
	return c.post(ctx, provider.OpC2BSimulate, c2bSimulatePath, req.payload(), time.Now())
}
