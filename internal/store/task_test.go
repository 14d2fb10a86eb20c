package store

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependsOn(t *testing.T) {
	a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	graph := map[uuid.UUID][]uuid.UUID{
		a: {b},
		b: {c},
		c: {a},
		d: {},
	}
	edges := func(frontier []uuid.UUID) ([]uuid.UUID, error) {
		var next []uuid.UUID
		for _, id := range frontier {
			next = append(next, graph[id]...)
		}
		return next, nil
	}

	tests := []struct {
		name   string
		start  uuid.UUID
		target uuid.UUID
		want   bool
	}{
		{"direct edge", a, b, true},
		{"transitive edge", a, c, true},
		{"cycle back to start", a, a, true},
		{"unreachable", a, d, false},
		{"no outgoing edges", d, a, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dependsOn(tt.start, tt.target, edges)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("edge errors are returned", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := dependsOn(a, b, func([]uuid.UUID) ([]uuid.UUID, error) { return nil, boom })
		assert.ErrorIs(t, err, boom)
	})
}

func TestCalculateSafeBatchSize(t *testing.T) {
	assert.Equal(t, 10, calculateSafeBatchSize(10, 10))
	size := calculateSafeBatchSize(100000, 10)
	assert.LessOrEqual(t, size*10, 65535)
	assert.Greater(t, size, 0)
}
