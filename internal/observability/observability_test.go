package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/betfinder/internal/config"
	"github.com/riskibarqy/betfinder/internal/platform/logging"
)

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	require.NoError(t, err)
	assert.Nil(t, srv)
	assert.NoError(t, StopPprofServer(srv, nil, time.Second))
}

func TestStartPprofServer_ServesOnConfiguredAddr(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, srv)
	assert.Equal(t, "127.0.0.1:0", srv.Addr)
	assert.NoError(t, StopPprofServer(srv, logging.NewNop(), time.Second))
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, nil)
	require.NoError(t, err)
	assert.NoError(t, stop())
}
