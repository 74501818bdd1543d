package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil ports returns error", func(t *testing.T) {
		server, err := NewServer(nil, "v1")
		assert.ErrorIs(t, err, ErrMissingInspectionService)
		assert.Nil(t, server)
	})

	t.Run("nil inspection service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{}, "v1")
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingInspectionService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Inspection: &mockInspectionService{}}, "v1.2.3")
		require.NoError(t, err)
		assert.Equal(t, "v1.2.3", server.Version())
		assert.NotNil(t, server.Handler())
	})

	t.Run("empty version reports dev", func(t *testing.T) {
		server, err := NewServer(&Ports{Inspection: &mockInspectionService{}}, "")
		require.NoError(t, err)
		assert.Equal(t, "dev", server.Version())
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("inspection only is valid", func(t *testing.T) {
		ports := &Ports{Inspection: &mockInspectionService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports is valid", func(t *testing.T) {
		ports := &Ports{
			Inspection: &mockInspectionService{},
			Lookup:     &mockLookupService{},
			Capture:    &mockCaptureService{},
			Archive:    &mockArchiveService{},
		}
		assert.NoError(t, ports.Validate())
	})
}
