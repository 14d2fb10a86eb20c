package logger

import (
	"context"

	"go.uber.org/zap"
)

type requestKey struct{}

type requestInfo struct {
	requestID string
	userID    string
}

// WithRequest returns a context whose loggers carry the request id and user id
func WithRequest(ctx context.Context, requestID, userID string) context.Context {
	return context.WithValue(ctx, requestKey{}, requestInfo{requestID: requestID, userID: userID})
}

// RequestID returns the request id carried by ctx, if any
func RequestID(ctx context.Context) string {
	info, _ := ctx.Value(requestKey{}).(requestInfo)
	return info.requestID
}

func requestFields(ctx context.Context) []zap.Field {
	info, ok := ctx.Value(requestKey{}).(requestInfo)
	if !ok {
		return nil
	}
	fields := make([]zap.Field, 0, 2)
	if info.requestID != "" {
		fields = append(fields, zap.String("requestID", info.requestID))
	}
	if info.userID != "" {
		fields = append(fields, zap.String("userID", info.userID))
	}
	return fields
}
