package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	EmailKey  contextKey = "email"

	userSlotKey contextKey = "user_slot"
)

// UserSlot records who a request was authenticated as. Middleware that runs
// outside authentication installs one with WithUserSlot and reads it once the
// handler returns, since the inner context is not visible to it.
type UserSlot struct {
	UserID uuid.UUID
}

func WithUserSlot(ctx context.Context) (context.Context, *UserSlot) {
	slot := &UserSlot{}
	return context.WithValue(ctx, userSlotKey, slot), slot
}

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

func GetEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(EmailKey).(string)
	return email, ok
}

// SetUserContext stores the authenticated user and fills the request's
// UserSlot, if any.
func SetUserContext(ctx context.Context, userID uuid.UUID, email string) context.Context {
	if slot, ok := ctx.Value(userSlotKey).(*UserSlot); ok {
		slot.UserID = userID
	}
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, EmailKey, email)
	return ctx
}
