package middlewarex

import "context"

type ctxKey string

const (
	ctxClientID ctxKey = "api_client_id"
)

func WithClientID(ctx context.Context, clientID int64) context.Context {
	return context.WithValue(ctx, ctxClientID, clientID)
}

func ClientID(ctx context.Context) (int64, bool) {
	v, ok := ctx.Value(ctxClientID).(int64)
	return v, ok
}
