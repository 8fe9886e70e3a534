package service

import (
	"fmt"

	"github.com/google/uuid"

	"sobordos/internal/config"
	"sobordos/internal/domain"
	"sobordos/internal/fileparse"
	"sobordos/internal/ingest"
	"sobordos/internal/recon"
)

// UploadedFile is one spreadsheet received from the API layer.
type UploadedFile struct {
	Name string
	Data []byte
}

// ReconcileOutput is the full response of one reconciliation run.
type ReconcileOutput struct {
	RunID        uuid.UUID           `json:"run_id"`
	CouponField  string              `json:"coupon_field"`
	ManifestMeta domain.ManifestMeta `json:"manifest_metadata"`
	TicketMeta   domain.TicketMeta   `json:"ticket_metadata"`
	Incidences   []domain.Incidence  `json:"incidences"`
	Stats        domain.Stats        `json:"stats"`
}

// ReconService orchestrates parse, ingestion, and reconciliation for
// uploaded export pairs. It holds no state between calls; concurrent runs
// over different uploads are safe.
type ReconService struct {
	upload *config.UploadConfig
}

// NewReconService creates a new ReconService.
func NewReconService(upload *config.UploadConfig) *ReconService {
	return &ReconService{upload: upload}
}

// IngestManifest parses and sectionizes a boarding-manifest upload.
func (s *ReconService) IngestManifest(f UploadedFile) (*domain.ManifestData, error) {
	rows, err := s.rows(f, true)
	if err != nil {
		return nil, err
	}
	data := ingest.ParseManifest(rows)
	data.Metadata.FileName = f.Name
	return data, nil
}

// IngestTickets parses and normalizes a ticket-sales upload.
func (s *ReconService) IngestTickets(f UploadedFile) (*domain.TicketData, error) {
	rows, err := s.rows(f, false)
	if err != nil {
		return nil, err
	}
	data, err := ingest.ParseTickets(rows)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", f.Name, err)
	}
	data.Metadata.FileName = f.Name
	return data, nil
}

// Reconcile ingests both uploads and runs the comparison. When couponField
// is empty it is resolved with the same coupon keyword family the
// normalizer uses, mirroring the column the original UI preselects.
func (s *ReconService) Reconcile(manifestFile, ticketFile UploadedFile, couponField string) (*ReconcileOutput, error) {
	manifest, err := s.IngestManifest(manifestFile)
	if err != nil {
		return nil, err
	}
	tickets, err := s.IngestTickets(ticketFile)
	if err != nil {
		return nil, err
	}

	if couponField == "" {
		couponField = domain.FindField(tickets.Headers, domain.CouponKeywords)
	}

	result := recon.Compare(manifest, tickets, couponField)

	return &ReconcileOutput{
		RunID:        uuid.New(),
		CouponField:  couponField,
		ManifestMeta: manifest.Metadata,
		TicketMeta:   tickets.Metadata,
		Incidences:   result.Incidences,
		Stats:        result.Stats,
	}, nil
}

// rows validates the upload and converts it to a raw row grid.
func (s *ReconService) rows(f UploadedFile, manifest bool) ([][]domain.Cell, error) {
	if len(f.Data) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrMissingFile, f.Name)
	}
	if max := s.upload.MaxFileSizeBytes(); max > 0 && int64(len(f.Data)) > max {
		return nil, fmt.Errorf("%w: %s (%d bytes)", domain.ErrFileTooLarge, f.Name, len(f.Data))
	}
	rows, err := fileparse.Rows(f.Data, f.Name, s.upload.CSVDelimiter(manifest))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Name, err)
	}
	return rows, nil
}
