package monitoring

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledWithoutDSN(t *testing.T) {
	assert.NoError(t, Init("", "test"))
	assert.False(t, Enabled())
	Error(errors.New("boom"), map[string]string{"method": "stakeTokens"})
}

func TestInitRejectsBadDSN(t *testing.T) {
	assert.Error(t, Init("not a dsn", "test"))
	assert.False(t, Enabled())
}
