package mcp

import (
	"context"

	"github.com/custodia-labs/chainforensix-cli/internal/core/domain"
	"github.com/custodia-labs/chainforensix-cli/internal/core/ports/driving"
)

// mockInspectionService is a mock implementation of driving.InspectionService.
type mockInspectionService struct {
	results []*domain.Inspection
	single  *domain.Inspection
	err     error
	inputs  []string
	record  *domain.EvidenceRecord
}

func (m *mockInspectionService) Inspect(_ context.Context, input string) (*domain.Inspection, error) {
	m.inputs = []string{input}
	return m.single, m.err
}

func (m *mockInspectionService) InspectMany(_ context.Context, inputs []string) ([]*domain.Inspection, error) {
	m.inputs = inputs
	return m.results, m.err
}

func (m *mockInspectionService) VerifyRecord(_ context.Context, record *domain.EvidenceRecord) (*domain.Inspection, error) {
	m.record = record
	return m.single, m.err
}

// mockLookupService is a mock implementation of driving.LookupService.
type mockLookupService struct {
	record *domain.EvidenceRecord
	err    error
}

func (m *mockLookupService) ResolveByID(_ context.Context, _ uint64) (*domain.EvidenceRecord, error) {
	return m.record, m.err
}

func (m *mockLookupService) ResolveByLedgerReference(_ context.Context, _ string) (*domain.EvidenceRecord, error) {
	return m.record, m.err
}

func (m *mockLookupService) Resolve(_ context.Context, _ string) (*domain.EvidenceRecord, error) {
	return m.record, m.err
}

func (m *mockLookupService) IDForReference(_ context.Context, _ string) (uint64, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.record.ID, nil
}

func (m *mockLookupService) ReferenceForID(_ context.Context, _ uint64) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.record.LedgerReference, nil
}

// mockCaptureService is a mock implementation of driving.CaptureService.
type mockCaptureService struct {
	captures []domain.Capture
	err      error
}

func (m *mockCaptureService) Start(_ context.Context, _, _ string) (*domain.Capture, error) {
	return nil, m.err
}

func (m *mockCaptureService) Confirm(_ context.Context, _, _ string) (*domain.Capture, error) {
	return nil, m.err
}

func (m *mockCaptureService) Prepare(_ context.Context, _ string) (*driving.PreparedEvidence, error) {
	return nil, m.err
}

func (m *mockCaptureService) Get(_ context.Context, id string) (*domain.Capture, error) {
	for i := range m.captures {
		if m.captures[i].ID == id {
			return &m.captures[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockCaptureService) List(_ context.Context) ([]domain.Capture, error) {
	return m.captures, m.err
}

func (m *mockCaptureService) Discard(_ context.Context, _ string) error {
	return m.err
}

// mockArchiveService is a mock implementation of driving.ArchiveService.
type mockArchiveService struct {
	records []domain.EvidenceRecord
	err     error
}

func (m *mockArchiveService) Import(_ context.Context, _ *domain.EvidenceRecord) error {
	return m.err
}

func (m *mockArchiveService) List(_ context.Context, _ int) ([]domain.EvidenceRecord, error) {
	return m.records, m.err
}
