package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Flags(t *testing.T) {
	addr := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Empty(t, addr.DefValue)

	burst := serveCmd.Flags().Lookup("burst")
	require.NotNil(t, burst)
	assert.Equal(t, "10", burst.DefValue)

	rate := serveCmd.Flags().Lookup("rate")
	require.NotNil(t, rate)
	assert.Equal(t, "0", rate.DefValue)
}

func TestServeCmd_RequiresInspectionService(t *testing.T) {
	setupTestServices(t)
	inspectionService = nil

	_, err := executeCommand(t, "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "inspection service not configured")
}

func TestServeCmd_HelpListsRoutes(t *testing.T) {
	out, err := executeCommand(t, "serve", "--help")

	require.NoError(t, err)
	assert.Contains(t, out, "/v1/verify")
	assert.Contains(t, out, "409 Conflict")
}

func TestMCPServeCmd_PortFlag(t *testing.T) {
	flag := mcpServeCmd.Flags().Lookup("port")
	require.NotNil(t, flag)
	assert.Equal(t, "p", flag.Shorthand)
	assert.Equal(t, "0", flag.DefValue)
}

func TestMCPServeCmd_RequiresInspectionService(t *testing.T) {
	setupTestServices(t)
	inspectionService = nil

	_, err := executeCommand(t, "mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "inspection service not configured")
}
