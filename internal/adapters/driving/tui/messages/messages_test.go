package messages

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
)

func TestViewType_String(t *testing.T) {
	tests := []struct {
		view ViewType
		want string
	}{
		{ViewMenu, "menu"},
		{ViewVerify, "verify"},
		{ViewArchive, "archive"},
		{ViewHelp, "help"},
		{ViewType(99), "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.String())
		})
	}
}

func TestViewType_Distinct(t *testing.T) {
	views := []ViewType{ViewMenu, ViewVerify, ViewArchive, ViewHelp}
	seen := make(map[ViewType]bool)
	for _, v := range views {
		assert.False(t, seen[v], "duplicate view type %d", v)
		seen[v] = true
	}
}

func TestInspectionCompleted_Fields(t *testing.T) {
	insp := &domain.Inspection{Input: "42", Status: domain.StatusVerified}
	msg := InspectionCompleted{Seq: 3, Input: "42", Inspection: insp}

	assert.Equal(t, uint64(3), msg.Seq)
	assert.Equal(t, domain.StatusVerified, msg.Inspection.Status)
	assert.NoError(t, msg.Err)
}

func TestErrorOccurred_Err(t *testing.T) {
	err := errors.New("boom")
	msg := ErrorOccurred{Err: err}

	assert.Equal(t, err, msg.Err)
}
