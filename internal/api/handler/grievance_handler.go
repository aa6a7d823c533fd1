package handler

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/freshlink/marketplace-api/internal/api/metrics"
	"github.com/freshlink/marketplace-api/internal/core/domain"
	"github.com/freshlink/marketplace-api/internal/core/ports"
	"github.com/freshlink/marketplace-api/internal/upload"
)

// attachmentsField is the multipart field name carrying evidence files.
const attachmentsField = "attachments"

// GrievanceHandler handles dispute submission and retrieval.
type GrievanceHandler struct {
	service ports.GrievanceService
	codec   *upload.Codec
}

func NewGrievanceHandler(service ports.GrievanceService, codec *upload.Codec) *GrievanceHandler {
	return &GrievanceHandler{service: service, codec: codec}
}

type submitGrievanceResponse struct {
	Message   string            `json:"message"`
	Grievance *domain.Grievance `json:"grievance"`
}

// Submit handles POST /grievance (multipart/form-data).
//
// Each uploaded part is staged to a temp file, encoded inline, and the staged
// copy is removed whether or not encoding and the ledger write succeed.
//
// @Summary      File a grievance with optional attachments
// @Tags         grievances
// @Accept       multipart/form-data
// @Produce      json
// @Param        postedBy     formData  string  true   "vendor or supplier"
// @Param        issueType    formData  string  true   "Issue category"
// @Param        issueDate    formData  string  true   "RFC3339 or YYYY-MM-DD"
// @Param        attachments  formData  file    false  "Evidence files (repeatable)"
// @Success      201  {object}  submitGrievanceResponse
// @Failure      400  {object}  errorResponse
// @Failure      413  {object}  errorResponse
// @Router       /grievance [post]
func (h *GrievanceHandler) Submit(c echo.Context) error {
	issueDate, err := parseIssueDate(c.FormValue("issueDate"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := ports.SubmitGrievanceInput{
		SupplierName:   c.FormValue("supplierName"),
		ShopName:       c.FormValue("shopName"),
		VendorName:     c.FormValue("vendorName"),
		VendorLocation: c.FormValue("vendorLocation"),
		IssueDate:      issueDate,
		IssueType:      c.FormValue("issueType"),
		Details:        c.FormValue("details"),
		PostedBy:       c.FormValue("postedBy"),
	}

	form, err := c.MultipartForm()
	if err != nil && err != http.ErrNotMultipart {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid multipart payload")
	}
	if form != nil {
		for _, fh := range form.File[attachmentsField] {
			att, size, err := h.encodePart(fh)
			if err != nil {
				return err
			}
			metrics.AttachmentBytes.Observe(float64(size))
			input.Attachments = append(input.Attachments, att)
		}
	}

	g, err := h.service.Submit(c.Request().Context(), input)
	if err != nil {
		return err
	}

	metrics.GrievancesFiledTotal.WithLabelValues(string(g.PostedBy)).Inc()
	return c.JSON(http.StatusCreated, submitGrievanceResponse{
		Message:   "grievance filed",
		Grievance: g,
	})
}

// encodePart stages one multipart file and encodes it inline. The staged temp
// file is removed via defer, so cleanup runs on the failure path too.
func (h *GrievanceHandler) encodePart(fh *multipart.FileHeader) (domain.Attachment, int64, error) {
	staged, err := h.codec.Stage(fh)
	if err != nil {
		return domain.Attachment{}, 0, err
	}
	defer func() {
		_ = staged.Remove()
	}()

	att, err := h.codec.Encode(staged)
	if err != nil {
		return domain.Attachment{}, 0, err
	}
	return att, staged.Size, nil
}

// List handles GET /grievances?postedBy=.
//
// @Summary      List grievances, newest issue date first
// @Tags         grievances
// @Produce      json
// @Param        postedBy  query     string  false  "vendor, supplier, or all"
// @Success      200       {array}   domain.Grievance
// @Failure      500       {object}  errorResponse
// @Router       /grievances [get]
func (h *GrievanceHandler) List(c echo.Context) error {
	grievances, err := h.service.List(c.Request().Context(), c.QueryParam("postedBy"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, grievances)
}

// Get handles GET /grievances/:id.
//
// @Summary      Get a grievance by id
// @Tags         grievances
// @Produce      json
// @Param        id  path      string  true  "Grievance id"
// @Success      200  {object}  domain.Grievance
// @Failure      404  {object}  errorResponse
// @Router       /grievances/{id} [get]
func (h *GrievanceHandler) Get(c echo.Context) error {
	g, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, g)
}

// DownloadAttachment handles GET /grievances/:id/attachments/:index, decoding
// the stored base64 content back to the original bytes.
//
// @Summary      Download a grievance attachment
// @Tags         grievances
// @Produce      octet-stream
// @Param        id     path      string  true  "Grievance id"
// @Param        index  path      int     true  "Attachment index (0-based)"
// @Success      200    {file}    binary
// @Failure      404    {object}  errorResponse
// @Router       /grievances/{id}/attachments/{index} [get]
func (h *GrievanceHandler) DownloadAttachment(c echo.Context) error {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "attachment index must be an integer")
	}

	att, data, err := h.service.Attachment(c.Request().Context(), c.Param("id"), index)
	if err != nil {
		return err
	}

	mimeType := att.MimeType
	if mimeType == "" {
		mimeType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename=%q`, att.Filename))
	return c.Blob(http.StatusOK, mimeType, data)
}

// parseIssueDate accepts RFC3339 timestamps or plain dates.
func parseIssueDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("issueDate must be RFC3339 or YYYY-MM-DD")
}
