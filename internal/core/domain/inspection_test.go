package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForVerdict(t *testing.T) {
	assert.Equal(t, StatusVerified, StatusForVerdict(VerdictVerified))
	assert.Equal(t, StatusTampered, StatusForVerdict(VerdictTampered))
	assert.Equal(t, StatusUnknown, StatusForVerdict(VerdictUnknown))
}

func TestStatusForLookupError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		want   InspectionStatus
		wantOK bool
	}{
		{"not found", fmt.Errorf("get 1: %w", ErrNotFound), StatusNotFound, true},
		{"unauthorized", ErrUnauthorized, StatusUnauthorized, true},
		{"unavailable", fmt.Errorf("get 1: %w", ErrUnavailable), StatusUnavailable, true},
		{"malformed", fmt.Errorf("decode: %w", ErrMalformedRecord), StatusMalformed, true},
		{"invalid reference", ErrInvalidReference, "", false},
		{"other", errors.New("boom"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StatusForLookupError(tt.err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInspectionStatus_IsLookupFailure(t *testing.T) {
	for _, s := range []InspectionStatus{StatusNotFound, StatusUnauthorized, StatusUnavailable, StatusMalformed} {
		assert.True(t, s.IsLookupFailure(), s)
	}
	for _, s := range []InspectionStatus{StatusVerified, StatusTampered, StatusUnknown, StatusInvalidInput} {
		assert.False(t, s.IsLookupFailure(), s)
	}
}
