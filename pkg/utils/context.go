package utils

import (
	"context"
)

type contextKey string

const UserIDKey contextKey = "user_id"

func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userIDVal := ctx.Value(UserIDKey)
	if userIDVal == nil {
		return 0, false
	}

	userID, ok := userIDVal.(int64)
	if !ok || userID <= 0 {
		return 0, false
	}

	return userID, true
}

// SetUserContext attaches the acting user to the request context
func SetUserContext(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

const CorrelationIDKey contextKey = "correlation_id"

func SetCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, cid)
}

func GetCorrelationID(ctx context.Context) string {
	cid, _ := ctx.Value(CorrelationIDKey).(string)
	return cid
}
