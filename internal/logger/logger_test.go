package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/conorfennell/myeng/internal/config"
)

func TestNew(t *testing.T) {
	testCases := []struct {
		env        string
		debugLevel bool
	}{
		{env: "production", debugLevel: false},
		{env: "local", debugLevel: true},
	}

	for _, tc := range testCases {
		t.Run(tc.env, func(t *testing.T) {
			log, err := New(&config.Config{Env: tc.env})
			require.NoError(t, err)
			assert.Equal(t, tc.debugLevel, log.Core().Enabled(zapcore.DebugLevel))
		})
	}
}
