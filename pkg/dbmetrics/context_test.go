package dbmetrics

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetExecutor_WithoutTransaction(t *testing.T) {
	fallback := &sql.DB{}

	executor := GetExecutor(context.Background(), fallback)

	require.NotNil(t, executor)
	assert.Equal(t, DBExecutor(fallback), executor)
	assert.False(t, IsInTransaction(context.Background()))
}

func TestGetExecutor_WithTransaction(t *testing.T) {
	fallback := &sql.DB{}
	tx := &SqlTxWrapper{}

	ctx := WithTx(context.Background(), tx)

	executor := GetExecutor(ctx, fallback)
	require.NotNil(t, executor)
	assert.Equal(t, DBExecutor(tx), executor)
	assert.True(t, IsInTransaction(ctx))
}

func TestQueryOperation(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"SELECT id FROM facilities", "SELECT"},
		{"  insert into bookings VALUES ($1)", "INSERT"},
		{"UPDATE slots SET status = $1", "UPDATE"},
		{"delete from bookings", "DELETE"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, queryOperation(tt.query))
	}
}
