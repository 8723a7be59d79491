package provider

import (
	"errors"
	"fmt"
)

// Operation types exposed by the Daraja client
type OperationType string

const (
	OpB2C               OperationType = "b2c"
	OpB2B               OperationType = "b2b"
	OpC2BRegister       OperationType = "c2b_register"
	OpC2BSimulate       OperationType = "c2b_simulate"
	OpBalance           OperationType = "balance"
	OpTransactionStatus OperationType = "transaction_status"
	OpReversal          OperationType = "reversal"
	OpSTKPush           OperationType = "stk_push"
	OpSTKQuery          OperationType = "stk_query"
)

// Operations lists every operation in a stable order
func Operations() []OperationType {
	return []OperationType{
		OpB2C, OpB2B, OpC2BRegister, OpC2BSimulate, OpBalance,
		OpTransactionStatus, OpReversal, OpSTKPush, OpSTKQuery,
	}
}

// CommandID tells Daraja which transaction type a request performs
type CommandID string

const (
	// B2C
	CommandSalaryPayment    CommandID = "SalaryPayment"
	CommandBusinessPayment  CommandID = "BusinessPayment"
	CommandPromotionPayment CommandID = "PromotionPayment"

	// B2B
	CommandBusinessPayBill                       CommandID = "BusinessPayBill"
	CommandBusinessBuyGoods                      CommandID = "BusinessBuyGoods"
	CommandMerchantToMerchantTransfer            CommandID = "MerchantToMerchantTransfer"
	CommandMerchantTransferFromMerchantToWorking CommandID = "MerchantTransferFromMerchantToWorking"
	CommandMerchantServicesMMFAccountTransfer    CommandID = "MerchantServicesMMFAccountTransfer"
	CommandAgencyFloatAdvance                    CommandID = "AgencyFloatAdvance"

	// C2B and Lipa Na M-Pesa Online
	CommandCustomerPayBillOnline  CommandID = "CustomerPayBillOnline"
	CommandCustomerBuyGoodsOnline CommandID = "CustomerBuyGoodsOnline"

	// Queries
	CommandAccountBalance         CommandID = "AccountBalance"
	CommandTransactionStatusQuery CommandID = "TransactionStatusQuery"
	CommandTransactionReversal    CommandID = "TransactionReversal"
)

// IdentifierType classifies a party in a Daraja request
type IdentifierType int

const (
	// IdentifierMSISDN is a customer phone number
	IdentifierMSISDN IdentifierType = 1
	// IdentifierTillNumber is a Buy Goods till
	IdentifierTillNumber IdentifierType = 2
	// IdentifierShortcode is an organisation paybill short code
	IdentifierShortcode IdentifierType = 4
	// IdentifierReversalReceiver is what Daraja expects for the receiver of a reversal
	IdentifierReversalReceiver IdentifierType = 11
)

// ErrCredentialUnavailable is returned by operations that need the security
// credential when deriving it failed.
var ErrCredentialUnavailable = errors.New("security credential unavailable")

// AuthError means the OAuth token exchange failed
type AuthError struct {
	StatusCode int    `json:"status_code,omitempty"`
	Body       []byte `json:"-"`
	Err        error  `json:"-"`
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return "auth failed: " + e.Err.Error()
	}
	return fmt.Sprintf("auth failed with status %d; body=%s", e.StatusCode, string(e.Body))
}

func (e *AuthError) Unwrap() error { return e.Err }

// RequestError means the operation POST failed. Body is the provider's
// response exactly as received.
type RequestError struct {
	Operation  OperationType `json:"operation"`
	StatusCode int           `json:"status_code,omitempty"`
	Body       []byte        `json:"-"`
	Err        error         `json:"-"`
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("%s failed with status %d; body=%s", e.Operation, e.StatusCode, string(e.Body))
}

func (e *RequestError) Unwrap() error { return e.Err }
