package store

import (
	"context"
	"testing"

	"github.com/MKhiriev/task-manager/internal/config"
	"github.com/MKhiriev/task-manager/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorages_Memory(t *testing.T) {
	s, err := NewStorages(context.Background(), config.DB{DSN: "memory://"}, logger.Nop())
	require.NoError(t, err)
	require.NotNil(t, s.Users)
	require.NotNil(t, s.Tokens)
	require.NotNil(t, s.Tasks)
	assert.NoError(t, s.Close(context.Background()))
}

func TestNewStorages_UnsupportedDSN(t *testing.T) {
	_, err := NewStorages(context.Background(), config.DB{DSN: "mysql://localhost/db"}, logger.Nop())
	assert.ErrorIs(t, err, ErrUnsupportedDSN)
}
