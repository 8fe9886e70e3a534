package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sobordos/internal/config"
	"sobordos/internal/domain"
)

func newTestService() *ReconService {
	return NewReconService(&config.UploadConfig{
		MaxFileSizeMB:        20,
		ManifestCSVDelimiter: ";",
		TicketCSVDelimiter:   ",",
	})
}

var manifestCSV = []byte(
	"SURNAME;FIRST NAME;DOCUMENT ID;TICKET NUMBER\n" +
		"Smith;John;X123;456\n",
)

var ticketCSV = []byte(
	"Cupon,Nombre,Apellido,Estado\n" +
		"19690000456,John,Smith,embarque\n",
)

func TestReconcile_MatchedPair(t *testing.T) {
	svc := newTestService()

	out, err := svc.Reconcile(
		UploadedFile{Name: "dfds.csv", Data: manifestCSV},
		UploadedFile{Name: "tme.csv", Data: ticketCSV},
		"",
	)
	require.NoError(t, err)

	// Coupon field auto-detected from the ticket headers.
	assert.Equal(t, "Cupon", out.CouponField)
	assert.NotEqual(t, uuid.Nil, out.RunID)
	assert.Equal(t, "dfds.csv", out.ManifestMeta.FileName)
	assert.Equal(t, "tme.csv", out.TicketMeta.FileName)
	assert.Equal(t, 1, out.TicketMeta.TotalDataRows)

	// "19690000456" cleans to "456" and matches the manifest ticket.
	assert.Empty(t, out.Incidences)
	assert.Equal(t, domain.Stats{}, out.Stats)
}

func TestReconcile_CancelledTicketSurfaces(t *testing.T) {
	svc := newTestService()
	tickets := []byte("Cupon,Estado\n999,desembarque\n")

	out, err := svc.Reconcile(
		UploadedFile{Name: "dfds.csv", Data: manifestCSV},
		UploadedFile{Name: "tme.csv", Data: tickets},
		"Cupon",
	)
	require.NoError(t, err)

	// Two incidences: the manifest passenger lost their sale record, and
	// the cancelled ticket is reported on its own.
	require.Len(t, out.Incidences, 2)

	assert.Equal(t, "456", out.Incidences[0].TicketNumber)
	assert.Equal(t, domain.SourceOnlyManifest, out.Incidences[0].Source)

	inc := out.Incidences[1]
	assert.Equal(t, "999", inc.TicketNumber)
	assert.Equal(t, string(domain.StatusCancelled), inc.TicketStatus)
	assert.Equal(t, domain.LabelNotBoarded, inc.ManifestStatus)
	assert.Equal(t, domain.SourceOnlyTickets, inc.Source)
}

func TestReconcile_UnknownCouponFieldIsSoftFailure(t *testing.T) {
	svc := newTestService()

	out, err := svc.Reconcile(
		UploadedFile{Name: "dfds.csv", Data: manifestCSV},
		UploadedFile{Name: "tme.csv", Data: ticketCSV},
		"No Such Column",
	)
	require.NoError(t, err)

	assert.Empty(t, out.Incidences)
	assert.Equal(t, domain.Stats{}, out.Stats)
}

func TestIngestTickets_EmptyFileFails(t *testing.T) {
	svc := newTestService()

	_, err := svc.IngestTickets(UploadedFile{Name: "tme.csv", Data: []byte{}})
	assert.ErrorIs(t, err, domain.ErrMissingFile)
}

func TestIngestTickets_NoHeaderRowFails(t *testing.T) {
	svc := newTestService()

	// One newline parses to zero CSV records: no header row at all.
	_, err := svc.IngestTickets(UploadedFile{Name: "tme.csv", Data: []byte("\n")})
	assert.ErrorIs(t, err, domain.ErrEmptyTicketTable)
}

func TestIngest_FileTooLarge(t *testing.T) {
	svc := NewReconService(&config.UploadConfig{
		MaxFileSizeMB:        1,
		ManifestCSVDelimiter: ";",
		TicketCSVDelimiter:   ",",
	})

	big := make([]byte, 2*1024*1024)
	_, err := svc.IngestManifest(UploadedFile{Name: "dfds.csv", Data: big})
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
}

func TestIngest_UnsupportedExtension(t *testing.T) {
	svc := newTestService()

	_, err := svc.IngestManifest(UploadedFile{Name: "dfds.pdf", Data: []byte("x")})
	assert.ErrorIs(t, err, domain.ErrUnsupportedFileType)
}

func TestIngestManifest_Sections(t *testing.T) {
	svc := newTestService()

	data, err := svc.IngestManifest(UploadedFile{Name: "dfds.csv", Data: manifestCSV})
	require.NoError(t, err)

	require.Len(t, data.Passengers, 1)
	assert.Equal(t, "Smith", data.Passengers[0]["SURNAME"])
	assert.Equal(t, string(domain.StatusBoarded), data.Passengers[0]["STATUS"])
}
