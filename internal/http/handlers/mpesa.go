package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	middlewarex "mpesarelay/internal/http/middleware"
	"mpesarelay/internal/provider"
	"mpesarelay/internal/provider/mpesa"

	"github.com/rs/zerolog/log"
)

// Daraja is the subset of *mpesa.Client the gateway relays to
type Daraja interface {
	B2C(ctx context.Context, req mpesa.B2CRequest) (*mpesa.Response, error)
	B2B(ctx context.Context, req mpesa.B2BRequest) (*mpesa.Response, error)
	RegisterC2BURLs(ctx context.Context, req mpesa.RegisterC2BRequest) (*mpesa.Response, error)
	SimulateC2B(ctx context.Context, req mpesa.SimulateC2BRequest) (*mpesa.Response, error)
	AccountBalance(ctx context.Context, req mpesa.AccountBalanceRequest) (*mpesa.Response, error)
	TransactionStatus(ctx context.Context, req mpesa.TransactionStatusRequest) (*mpesa.Response, error)
	Reversal(ctx context.Context, req mpesa.ReversalRequest) (*mpesa.Response, error)
	STKPush(ctx context.Context, req mpesa.STKPushRequest) (*mpesa.Response, error)
	STKPushQuery(ctx context.Context, req mpesa.STKPushQueryRequest) (*mpesa.Response, error)
}

// providerCallTimeout bounds a relayed call; the client's own HTTP timeout
// applies per round trip on top of this.
const providerCallTimeout = 60 * time.Second

// Routes maps each operation to its relay handler
func Routes(d Daraja) map[provider.OperationType]http.HandlerFunc {
	return map[provider.OperationType]http.HandlerFunc{
		provider.OpB2C:               Relay(provider.OpB2C, d.B2C),
		provider.OpB2B:               Relay(provider.OpB2B, d.B2B),
		provider.OpC2BRegister:       Relay(provider.OpC2BRegister, d.RegisterC2BURLs),
		provider.OpC2BSimulate:       Relay(provider.OpC2BSimulate, d.SimulateC2B),
		provider.OpBalance:           Relay(provider.OpBalance, d.AccountBalance),
		provider.OpTransactionStatus: Relay(provider.OpTransactionStatus, d.TransactionStatus),
		provider.OpReversal:          Relay(provider.OpReversal, d.Reversal),
		provider.OpSTKPush:           Relay(provider.OpSTKPush, d.STKPush),
		provider.OpSTKQuery:          Relay(provider.OpSTKQuery, d.STKPushQuery),
	}
}

// Relay decodes T from the body, calls Daraja and writes back its status
// and body unmodified.
func Relay[T any](op provider.OperationType, call func(context.Context, T) (*mpesa.Response, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in T
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), providerCallTimeout)
		defer cancel()

		resp, err := call(ctx, in)
		if err != nil {
			writeProviderError(w, r, op, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write(resp.Body)
	}
}

type errorBody struct {
	Error     string                 `json:"error"`
	Operation provider.OperationType `json:"operation"`
	Message   string                 `json:"message"`
}

func writeProviderError(w http.ResponseWriter, r *http.Request, op provider.OperationType, err error) {
	clientID, _ := middlewarex.ClientID(r.Context())

	var (
		reqErr  *provider.RequestError
		authErr *provider.AuthError
	)

	// Daraja answered: pass its status and body through untouched
	if errors.As(err, &reqErr) && reqErr.StatusCode != 0 {
		log.Warn().
			Str("operation", string(op)).
			Int64("client_id", clientID).
			Int("status", reqErr.StatusCode).
			Msg("daraja rejected request")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(reqErr.StatusCode)
		_, _ = w.Write(reqErr.Body)
		return
	}

	status, code := http.StatusBadGateway, "request_failed"
	switch {
	case errors.Is(err, provider.ErrCredentialUnavailable):
		status, code = http.StatusServiceUnavailable, "credential_unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		status, code = http.StatusGatewayTimeout, "timeout"
	case errors.As(err, &authErr):
		code = "auth_failed"
	}

	log.Error().
		Err(err).
		Str("operation", string(op)).
		Int64("client_id", clientID).
		Int("status", status).
		Msg("M-Pesa relay failed")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Error: code, Operation: op, Message: err.Error()})
}
