package mpesa

import (
	"context"
	"time"

	"mpesarelay/internal/provider"
)

const (
	balancePath  = "/mpesa/accountbalance/v1/query"
	statusPath   = "/mpesa/transactionstatus/v1/query"
	reversalPath = "/mpesa/reversal/v1/request"
)

// AccountBalanceRequest asks for the balance of a short code
type AccountBalanceRequest struct {
	Initiator       string                  `json:"initiator"`
	PartyA          string                  `json:"party_a"`
	IdentifierType  provider.IdentifierType `json:"identifier_type"`
	QueueTimeOutURL string                  `json:"queue_timeout_url"`
	ResultURL       string                  `json:"result_url"`
	CommandID       provider.CommandID      `json:"command_id,omitempty"`
	Remarks         string                  `json:"remarks,omitempty"`
}

type accountBalancePayload struct {
	Initiator          string                  `json:"Initiator"`
	SecurityCredential string                  `json:"SecurityCredential"`
	CommandID          provider.CommandID      `json:"CommandID"`
	PartyA             string                  `json:"PartyA"`
	IdentifierType     provider.IdentifierType `json:"IdentifierType"`
	Remarks            string                  `json:"Remarks"`
	QueueTimeOutURL    string                  `json:"QueueTimeOutURL"`
	ResultURL          string                  `json:"ResultURL"`
}

func (r AccountBalanceRequest) payload(securityCredential string) accountBalancePayload {
	return accountBalancePayload{
		Initiator:          r.Initiator,
		SecurityCredential: securityCredential,
		CommandID:          or(r.CommandID, provider.CommandAccountBalance),
		PartyA:             r.PartyA,
		IdentifierType:     r.IdentifierType,
		Remarks:            or(r.Remarks, "Check Account Balance"),
		QueueTimeOutURL:    r.QueueTimeOutURL,
		ResultURL:          r.ResultURL,
	}
}

// AccountBalance queries a short code's balance. The figures arrive later on ResultURL.
func (c *Client) AccountBalance(ctx context.Context, req AccountBalanceRequest) (*Response, error) {
	start := time.Now()
	cred, err := c.securityCredential(ctx, provider.OpBalance, start)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, provider.OpBalance, balancePath, req.payload(cred), start)
}

// TransactionStatusRequest looks up a completed transaction
type TransactionStatusRequest struct {
	Initiator       string                  `json:"initiator"`
	TransactionID   string                  `json:"transaction_id"`
	PartyA          string                  `json:"party_a"`
	IdentifierType  provider.IdentifierType `json:"identifier_type"`
	ResultURL       string                  `json:"result_url"`
	QueueTimeOutURL string                  `json:"queue_timeout_url"`
	CommandID       provider.CommandID      `json:"command_id,omitempty"`
	Remarks         string                  `json:"remarks,omitempty"`
	Occasion        string                  `json:"occasion,omitempty"`
}

type transactionStatusPayload struct {
	Initiator          string                  `json:"Initiator"`
	SecurityCredential string                  `json:"SecurityCredential"`
	CommandID          provider.CommandID      `json:"CommandID"`
	TransactionID      string                  `json:"TransactionID"`
	PartyA             string                  `json:"PartyA"`
	IdentifierType     provider.IdentifierType `json:"IdentifierType"`
	ResultURL          string                  `json:"ResultURL"`
	QueueTimeOutURL    string                  `json:"QueueTimeOutURL"`
	Remarks            string                  `json:"Remarks"`
	Occasion           string                  `json:"Occasion"`
}

func (r TransactionStatusRequest) payload(securityCredential string) transactionStatusPayload {
	return transactionStatusPayload{
		Initiator:          r.Initiator,
		SecurityCredential: securityCredential,
		CommandID:          or(r.CommandID, provider.CommandTransactionStatusQuery),
		TransactionID:      r.TransactionID,
		PartyA:             r.PartyA,
		IdentifierType:     r.IdentifierType,
		ResultURL:          r.ResultURL,
		QueueTimeOutURL:    r.QueueTimeOutURL,
		Remarks:            or(r.Remarks, "Transaction Status Query"),
		Occasion:           or(r.Occasion, "Transaction Status Query"),
	}
}

// TransactionStatus checks transaction status
func (c *Client) TransactionStatus(ctx context.Context, req TransactionStatusRequest) (*Response, error) {
	start := time.Now()
	cred, err := c.securityCredential(ctx, provider.OpTransactionStatus, start)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, provider.OpTransactionStatus, statusPath, req.payload(cred), start)
}

// ReversalRequest reverses an M-Pesa transaction. The command is always TransactionReversal.
type ReversalRequest struct {
	Initiator              string                  `json:"initiator"`
	TransactionID          string                  `json:"transaction_id"`
	Amount                 int64                   `json:"amount"`
	ReceiverParty          string                  `json:"receiver_party"`
	ResultURL              string                  `json:"result_url"`
	QueueTimeOutURL        string                  `json:"queue_timeout_url"`
	ReceiverIdentifierType provider.IdentifierType `json:"receiver_identifier_type,omitempty"`
	Remarks                string                  `json:"remarks,omitempty"`
	Occasion               string                  `json:"occasion,omitempty"`
}

type reversalPayload struct {
	Initiator              string                  `json:"Initiator"`
	SecurityCredential     string                  `json:"SecurityCredential"`
	CommandID              provider.CommandID      `json:"CommandID"`
	TransactionID          string                  `json:"TransactionID"`
	Amount                 int64                   `json:"Amount"`
	ReceiverParty          string                  `json:"ReceiverParty"`
	RecieverIdentifierType provider.IdentifierType `json:"RecieverIdentifierType"`
	ResultURL              string                  `json:"ResultURL"`
	QueueTimeOutURL        string                  `json:"QueueTimeOutURL"`
	Remarks                string                  `json:"Remarks"`
	Occasion               string                  `json:"Occasion"`
}

func (r ReversalRequest) payload(securityCredential string) reversalPayload {
	return reversalPayload{
		Initiator:              r.Initiator,
		SecurityCredential:     securityCredential,
		CommandID:              provider.CommandTransactionReversal,
		TransactionID:          r.TransactionID,
		Amount:                 r.Amount,
		ReceiverParty:          r.ReceiverParty,
		RecieverIdentifierType: or(r.ReceiverIdentifierType, provider.IdentifierReversalReceiver),
		ResultURL:              r.ResultURL,
		QueueTimeOutURL:        r.QueueTimeOutURL,
		Remarks:                or(r.Remarks, "Transaction Reversal"),
		Occasion:               or(r.Occasion, "Reversal"),
	}
}

// Reversal requests the reversal of a transaction
func (c *Client) Reversal(ctx context.Context, req ReversalRequest) (*Response, error) {
	start := time.Now()
	cred, err := c.securityCredential(ctx, provider.OpReversal, start)
	if err != nil {
		return nil, err
	}
	return c.post(ctx, provider.OpReversal, reversalPath, req.payload(cred), start)
}
