package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUserIDFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		wantID int64
		wantOK bool
	}{
		{name: "set with WithUserID", ctx: WithUserID(context.Background(), 7), wantID: 7, wantOK: true},
		{name: "zero id is still present", ctx: WithUserID(context.Background(), 0), wantID: 0, wantOK: true},
		{name: "nothing stored", ctx: context.Background()},
		{name: "wrong value type", ctx: context.WithValue(context.Background(), UserIDCtxKey, "7")},
		{name: "plain string key does not collide", ctx: context.WithValue(context.Background(), "userID", int64(7))}, //nolint:staticcheck // collision check
		{name: "other typed key", ctx: context.WithValue(context.Background(), contextKey("sessionID"), int64(7))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := GetUserIDFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestWithUserID_InnerValueWins(t *testing.T) {
	ctx := WithUserID(WithUserID(context.Background(), 1), 2)

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(2), id)
	assert.Equal(t, "userID", UserIDCtxKey.String())
}
