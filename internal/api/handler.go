package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"candidate-management-db/internal/config"
	"candidate-management-db/internal/db"
	"candidate-management-db/internal/export"
	"candidate-management-db/internal/filter"
	"candidate-management-db/internal/geo"
	"candidate-management-db/internal/logger"
	"candidate-management-db/internal/mail"
	"candidate-management-db/internal/model"
	"candidate-management-db/internal/storage"
	"candidate-management-db/internal/validation"
	apperrors "candidate-management-db/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const attachmentPrefix = "resumes/"

// cleanupEnqueuer hands orphaned attachment keys to the cleanup
// queue. *queue.Producer satisfies it.
type cleanupEnqueuer interface {
	EnqueueCleanupJob(ctx context.Context, job model.CleanupJob) error
}

type Handler struct {
	candidates db.CandidateRepository
	accounts   db.AccountRepository
	reference  db.ReferenceRepository
	store      storage.Storage
	producer   cleanupEnqueuer
	exporter   *export.Exporter
	validator  *validation.CandidateValidator
	mailer     mail.Mailer
	lookup     *geo.Lookup
	cfg        *config.Config
	log        zerolog.Logger
}

func NewHandler(
	candidates db.CandidateRepository,
	accounts db.AccountRepository,
	reference db.ReferenceRepository,
	store storage.Storage,
	producer cleanupEnqueuer,
	mailer mail.Mailer,
	lookup *geo.Lookup,
	cfg *config.Config,
) *Handler {
	return &Handler{
		candidates: candidates,
		accounts:   accounts,
		reference:  reference,
		store:      store,
		producer:   producer,
		exporter:   export.NewExporter(cfg),
		validator:  validation.NewCandidateValidator(lookup.IsState),
		mailer:     mailer,
		lookup:     lookup,
		cfg:        cfg,
		log:        logger.Get(),
	}
}

func (h *Handler) CreateCandidate(c *gin.Context) {
	var in model.CandidateInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	candidate, errs := h.validator.Validate(in)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "errors": errs})
		return
	}

	att, err := h.saveUpload(c)
	if err != nil {
		h.respondUploadError(c, err)
		return
	}
	candidate.Attachment = att
	candidate.DateOfUpload = time.Now()

	if err := h.candidates.Create(c.Request.Context(), candidate); err != nil {
		// The record failed, so the freshly stored file is orphaned.
		if att != nil {
			h.enqueueCleanup(c, att.Key, "create failed")
		}
		h.log.Error().Err(err).Msg("Failed to create candidate")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Candidate created successfully",
		"data":    candidate,
	})
}

func (h *Handler) ListCandidates(c *gin.Context) {
	params := queryParams(c)
	clauses := filter.Build(params)
	page := filter.ParsePage(c.Query("page"), c.Query("limit"))

	records, total, err := h.candidates.List(c.Request.Context(), clauses, page)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list candidates")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	options, err := filter.DeriveOptions(c.Request.Context(), h.candidates)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to derive filter options")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       records,
		"pagination": filter.Meta(page, total),
		"filters": gin.H{
			"appliedFilters":       params,
			"totalFilteredResults": total,
			"filterOptions":        options,
		},
	})
}

func (h *Handler) GetCandidate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	candidate, err := h.candidates.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Candidate not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": candidate})
}

func (h *Handler) UpdateCandidate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	existing, err := h.candidates.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Candidate not found")
		return
	}

	var in model.CandidateInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	candidate, errs := h.validator.Validate(in)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "errors": errs})
		return
	}
	candidate.ID = existing.ID
	candidate.DateOfUpload = existing.DateOfUpload
	candidate.Attachment = existing.Attachment
	candidate.CreatedAt = existing.CreatedAt

	att, err := h.saveUpload(c)
	if err != nil {
		h.respondUploadError(c, err)
		return
	}
	if att != nil {
		candidate.Attachment = att
	}

	if err := h.candidates.Update(c.Request.Context(), candidate); err != nil {
		if att != nil {
			h.enqueueCleanup(c, att.Key, "update failed")
		}
		h.respondError(c, err, "Candidate not found")
		return
	}

	// The replaced file is released only after the record committed.
	if att != nil && existing.Attachment != nil {
		h.enqueueCleanup(c, existing.Attachment.Key, "attachment replaced")
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Candidate updated successfully",
		"data":    candidate,
	})
}

func (h *Handler) DeleteCandidate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	candidate, err := h.candidates.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Candidate not found")
		return
	}

	if err := h.candidates.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Candidate not found")
		return
	}

	if candidate.Attachment != nil {
		h.enqueueCleanup(c, candidate.Attachment.Key, "candidate deleted")
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Candidate deleted successfully"})
}

func (h *Handler) DownloadResume(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	candidate, err := h.candidates.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Candidate not found")
		return
	}
	if candidate.Attachment == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No resume uploaded for this candidate"})
		return
	}

	att := candidate.Attachment
	body, err := h.store.Download(c.Request.Context(), att.Key)
	if err != nil {
		h.log.Error().Err(err).Str("key", att.Key).Msg("Failed to download attachment")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to download resume"})
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, att.Size, att.MimeType, body, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", att.OriginalName),
	})
}

// ServeUpload streams a stored attachment by its object basename. The
// export spreadsheets link here.
func (h *Handler) ServeUpload(c *gin.Context) {
	filename := c.Param("filename")
	if filename == "" || strings.ContainsAny(filename, "/\\") {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid filename"})
		return
	}

	key := attachmentPrefix + filename
	body, err := h.store.Download(c.Request.Context(), key)
	if err != nil {
		h.log.Warn().Err(err).Str("key", key).Msg("Upload not found")
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "File not found"})
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, -1, contentTypeFor(filename), body, map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", filename),
	})
}

func (h *Handler) ExportCandidates(c *gin.Context) {
	params := queryParams(c)
	clauses := filter.Build(params)
	filtered := len(clauses) > 0

	limit := h.cfg.Export.MaxRecords
	if !filtered {
		limit = h.cfg.Export.UnfilteredLimit
	}

	records, err := h.candidates.Find(c.Request.Context(), clauses, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to fetch candidates for export")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	f, filename, err := h.exporter.Candidates(records, filtered)
	if err != nil {
		if errors.Is(err, apperrors.ErrNothingToExport) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No candidates found matching the filters"})
			return
		}
		h.log.Error().Err(err).Msg("Failed to build export workbook")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate Excel file"})
		return
	}

	h.writeWorkbook(c, f, filename)
}

func (h *Handler) ExportCandidate(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	candidate, err := h.candidates.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "Candidate not found")
		return
	}

	comments, err := h.candidates.GetComments(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("candidate_id", id).Msg("Failed to load comments")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	// Serial number matches the record's position in the default
	// newest-first listing.
	before, err := h.candidates.CountBefore(c.Request.Context(), candidate.DateOfUpload)
	if err != nil {
		h.log.Error().Err(err).Int64("candidate_id", id).Msg("Failed to rank candidate")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	f, filename, err := h.exporter.SingleCandidate(*candidate, comments, before+1)
	if err != nil {
		h.log.Error().Err(err).Int64("candidate_id", id).Msg("Failed to build export workbook")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to generate Excel file"})
		return
	}

	h.writeWorkbook(c, f, filename)
}

func (h *Handler) AddComment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var in model.CommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	text, addedBy, errs := validation.ValidateComment(in)
	if len(errs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation failed", "errors": errs})
		return
	}

	comment, err := h.candidates.AddComment(c.Request.Context(), id, text, addedBy)
	if err != nil {
		h.respondError(c, err, "Candidate not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Comment added successfully",
		"data":    comment,
	})
}

func (h *Handler) GetComments(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if _, err := h.candidates.Get(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "Candidate not found")
		return
	}

	comments, err := h.candidates.GetComments(c.Request.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Int64("candidate_id", id).Msg("Failed to load comments")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": comments})
}

// saveUpload stores the request's résumé file, if any. Returns nil with
// no error when the request carries no file.
func (h *Handler) saveUpload(c *gin.Context) (*model.Attachment, error) {
	file, err := c.FormFile("pdfFile")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !h.extensionAllowed(ext) {
		return nil, apperrors.ErrInvalidFileType
	}
	if file.Size > h.cfg.Upload.MaxFileSize {
		return nil, apperrors.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	name := uuid.New().String() + ext
	key := attachmentPrefix + name
	if err := h.store.Upload(c.Request.Context(), key, src); err != nil {
		return nil, err
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = contentTypeFor(name)
	}

	return &model.Attachment{
		Key:          key,
		FileName:     name,
		OriginalName: file.Filename,
		MimeType:     mimeType,
		Size:         file.Size,
	}, nil
}

func (h *Handler) extensionAllowed(ext string) bool {
	for _, allowed := range h.cfg.Upload.AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// enqueueCleanup hands an orphaned attachment to the cleanup worker.
// Failures are logged and swallowed; deletion never blocks a request.
func (h *Handler) enqueueCleanup(c *gin.Context, key, reason string) {
	if key == "" {
		return
	}
	job := model.CleanupJob{Key: key, Reason: reason}
	if err := h.producer.EnqueueCleanupJob(c.Request.Context(), job); err != nil {
		h.log.Warn().Err(err).Str("key", key).Msg("Failed to enqueue cleanup job")
	}
}

func (h *Handler) writeWorkbook(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(c.Writer); err != nil {
		h.log.Error().Err(err).Str("filename", filename).Msg("Failed to stream workbook")
	}
}

func (h *Handler) respondError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": notFoundMsg})
	case errors.Is(err, apperrors.ErrDuplicateEmail),
		errors.Is(err, apperrors.ErrDuplicateCompany),
		errors.Is(err, apperrors.ErrDuplicateCity):
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}
}

func (h *Handler) respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidFileType):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only PDF and DOCX files are allowed"})
	case errors.Is(err, apperrors.ErrFileTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": fmt.Sprintf("File exceeds the maximum size of %d bytes", h.cfg.Upload.MaxFileSize),
		})
	default:
		h.log.Error().Err(err).Msg("Failed to store upload")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store resume"})
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid candidate ID"})
		return 0, false
	}
	return id, true
}

// queryParams flattens the query string to first values, dropping the
// pagination keys the filter builder does not understand.
func queryParams(c *gin.Context) map[string]string {
	params := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if key == "page" || key == "limit" {
			continue
		}
		if len(values) > 0 && values[0] != "" {
			params[key] = values[0]
		}
	}
	return params
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "application/octet-stream"
	}
}
