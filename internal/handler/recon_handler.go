package handler

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"sobordos/internal/csvexport"
	"sobordos/internal/domain"
	"sobordos/internal/service"
)

// Multipart form field names.
const (
	formManifestFile = "dfds_file"
	formTicketFile   = "tme_file"
	formCouponField  = "coupon_field"
	formFile         = "file"
	formFileType     = "type"
)

// ReconHandler handles reconciliation endpoints.
type ReconHandler struct {
	svc *service.ReconService
}

// NewReconHandler creates a new ReconHandler.
func NewReconHandler(svc *service.ReconService) *ReconHandler {
	return &ReconHandler{svc: svc}
}

// Reconcile handles POST /api/v1/reconcile. Expects a multipart form with
// the boarding manifest under "dfds_file", the ticket export under
// "tme_file", and an optional "coupon_field" naming the ticket-table
// header to match on. Responds with the incidence list, statistics, and
// per-file ingestion metadata.
func (h *ReconHandler) Reconcile(c *gin.Context) {
	out, ok := h.runReconciliation(c)
	if !ok {
		return
	}
	RespondOK(c, out)
}

// Export handles POST /api/v1/reconcile/export. Same inputs as Reconcile;
// responds with the incidence list as a CSV attachment.
func (h *ReconHandler) Export(c *gin.Context) {
	out, ok := h.runReconciliation(c)
	if !ok {
		return
	}

	filename := csvexport.BuildFilename("incidencias")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	_, _ = c.Writer.Write(csvexport.BOM)
	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		return
	}
	if err := w.WriteIncidences(out.Incidences); err != nil {
		return
	}
	w.Flush()
}

// Inspect handles POST /api/v1/files/inspect. Expects a single upload
// under "file" plus a "type" field ("dfds" or "tme") and returns the
// ingestion result, so an operator can verify section and column detection
// before reconciling.
func (h *ReconHandler) Inspect(c *gin.Context) {
	file, ok := h.formFile(c, formFile)
	if !ok {
		return
	}

	switch domain.SourceKind(c.PostForm(formFileType)) {
	case domain.SourceManifest:
		data, err := h.svc.IngestManifest(file)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		RespondOK(c, data)
	case domain.SourceTickets:
		data, err := h.svc.IngestTickets(file)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		RespondOK(c, data)
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "type must be dfds or tme")
	}
}

func (h *ReconHandler) runReconciliation(c *gin.Context) (*service.ReconcileOutput, bool) {
	manifestFile, ok := h.formFile(c, formManifestFile)
	if !ok {
		return nil, false
	}
	ticketFile, ok := h.formFile(c, formTicketFile)
	if !ok {
		return nil, false
	}

	out, err := h.svc.Reconcile(manifestFile, ticketFile, c.PostForm(formCouponField))
	if err != nil {
		RespondDomainError(c, err)
		return nil, false
	}
	return out, true
}

func (h *ReconHandler) formFile(c *gin.Context, field string) (service.UploadedFile, bool) {
	header, err := c.FormFile(field)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "missing multipart file field: "+field)
		return service.UploadedFile{}, false
	}
	data, err := readMultipartFile(header)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_UPLOAD", "could not read uploaded file: "+field)
		return service.UploadedFile{}, false
	}
	return service.UploadedFile{Name: header.Filename, Data: data}, true
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	f, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
