package logging_test

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/modelfree/internal/logging"
)

func TestNewLogger_Verbosity(t *testing.T) {
	l, err := logging.NewLogger(logging.DEBUG, true)
	require.NoError(t, err)
	assert.True(t, l.V(logging.DEBUG).Enabled())
	assert.False(t, l.V(logging.TRACE).Enabled())
}

func TestOrDefault(t *testing.T) {
	l := logging.NewTestLogger()
	assert.True(t, logging.OrDefault(logr.Logger{}).V(logging.TRACE).Enabled())
	assert.Equal(t, l, logging.Default())
}
