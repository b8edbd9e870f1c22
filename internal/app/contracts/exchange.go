package contracts

import (
	"context"
	"photodoc-service/internal/pkg/fhir_dto"
)

type ExchangeUsecase interface {
	Export(ctx context.Context, password string) (string, error)
	Import(ctx context.Context, encodedData, password string) error
}

type SyncUsecase interface {
	PushEncounter(ctx context.Context, encounterID string) bool
	FetchPatientHistory(ctx context.Context, patientID, lastUpdated string) bool
}

// RemoteFhirClient talks to the remote endpoint encounters are pushed to.
type RemoteFhirClient interface {
	PostTransactionBundle(ctx context.Context, bundle *fhir_dto.Bundle) error
	GetPatientEverything(ctx context.Context, patientID, lastUpdated string) ([]byte, error)
}

// SyncRetryQueue buffers encounter ids whose push failed so a worker can
// retry them later.
type SyncRetryQueue interface {
	PublishRetry(ctx context.Context, encounterID string, attempt int) error
}
