package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/andpap18/thikishop-payroll/cost"
	"github.com/andpap18/thikishop-payroll/processor"
	"github.com/andpap18/thikishop-payroll/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// HandlerOptions configures a Handler.
type HandlerOptions struct {
	DefaultMonth int
	DownloadTTL  time.Duration
	// MaxUpload is the multipart memory limit in bytes.
	MaxUpload int64
	Threshold string
	Logger    *slog.Logger
}

// Handler serves the upload API.
type Handler struct {
	proc      *processor.Processor
	opts      HandlerOptions
	downloads *downloadStore
	log       *slog.Logger
}

// NewHandler creates a Handler running uploads through proc.
func NewHandler(proc *processor.Processor, opts HandlerOptions) *Handler {
	if opts.DownloadTTL <= 0 {
		opts.DownloadTTL = 15 * time.Minute
	}
	if opts.MaxUpload <= 0 {
		opts.MaxUpload = 64 << 20
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Handler{proc: proc, opts: opts, downloads: newDownloadStore(), log: log}
}

// RegisterRoutes registers the API routes on router.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/status", h.GetStatus)
	router.POST("/payroll", h.Payroll)
	router.POST("/workdays", h.WorkDays)
	router.POST("/cost", h.Cost)
	router.GET("/download/:token", h.Download)
}

// StatusResponse describes the policies the service runs with.
type StatusResponse struct {
	CodePolicy        string `json:"codePolicy"`
	Threshold         string `json:"threshold"`
	DefaultMonth      int    `json:"defaultMonth"`
	SundayAssignments int    `json:"sundayAssignments"`
	PendingDownloads  int    `json:"pendingDownloads"`
}

// GetStatus GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{
		CodePolicy:        h.proc.Codes().Name,
		Threshold:         h.opts.Threshold,
		DefaultMonth:      h.opts.DefaultMonth,
		SundayAssignments: h.proc.SundayAssignments(),
		PendingDownloads:  h.downloads.len(),
	})
}

// Payroll renders the payroll workbook of the uploaded schedules.
// POST /api/payroll (multipart: files, month)
func (h *Handler) Payroll(c *gin.Context) {
	sources, month, ok := h.upload(c)
	if !ok {
		return
	}

	res, err := h.proc.Payroll(sources, month)
	if err != nil {
		h.fail(c, http.StatusUnprocessableEntity, err)
		return
	}

	data, err := report.RenderPayroll(res)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	attachment(c, report.PayrollFilename(month), data)
}

// WorkDaysResponse lists days worked per employee.
type WorkDaysResponse struct {
	Month     int                     `json:"month"`
	Employees []WorkDaysEntry         `json:"employees"`
	Skipped   []processor.SkippedFile `json:"skipped"`
}

// WorkDaysEntry is one employee of WorkDaysResponse.
type WorkDaysEntry struct {
	Name       string `json:"name"`
	DaysWorked int    `json:"daysWorked"`
}

// WorkDays scans the uploaded schedules for days worked. With format=csv it
// returns a cost table template listing every employee instead.
// POST /api/workdays (multipart: files, month)
func (h *Handler) WorkDays(c *gin.Context) {
	sources, month, ok := h.upload(c)
	if !ok {
		return
	}

	res := h.proc.WorkDays(sources, month)

	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		if err := cost.WriteMonthlyCosts(&buf, res.Monthly.Names()); err != nil {
			h.fail(c, http.StatusInternalServerError, err)
			return
		}
		c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
		return
	}

	resp := WorkDaysResponse{Month: month, Employees: []WorkDaysEntry{}, Skipped: orEmpty(res.Skipped)}
	for _, s := range res.Monthly.List() {
		resp.Employees = append(resp.Employees, WorkDaysEntry{Name: s.Name, DaysWorked: s.DaysWorked})
	}
	c.JSON(http.StatusOK, resp)
}

// CostResponse is the cost run summary.
type CostResponse struct {
	Month       int                     `json:"month"`
	Locations   []cost.LocationTotal    `json:"locations"`
	Total       decimal.Decimal         `json:"total"`
	Warnings    []cost.Warning          `json:"warnings"`
	Detections  []cost.Allocation       `json:"detections"`
	Skipped     []processor.SkippedFile `json:"skipped"`
	Filename    string                  `json:"filename"`
	DownloadURL string                  `json:"downloadUrl"`
}

// Cost spreads monthly costs over worked days and totals them per location.
// The cost table is a CSV file field "costs" or a JSON array field
// "costs_json". The rendered workbook is fetched from DownloadURL.
// POST /api/cost (multipart: files, month, costs | costs_json)
func (h *Handler) Cost(c *gin.Context) {
	sources, month, ok := h.upload(c)
	if !ok {
		return
	}

	monthly, err := readCosts(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	res, err := h.proc.CostAnalysis(sources, monthly, month)
	if err != nil {
		h.fail(c, http.StatusUnprocessableEntity, err)
		return
	}

	data, err := report.RenderCost(res)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	filename := report.CostFilename(month)
	token := h.downloads.put(filename, data, h.opts.DownloadTTL)

	c.JSON(http.StatusOK, CostResponse{
		Month:       month,
		Locations:   res.Ledger.Totals(),
		Total:       res.Ledger.Total(),
		Warnings:    orEmpty(res.Warnings),
		Detections:  orEmpty(res.Detections()),
		Skipped:     orEmpty(res.Skipped),
		Filename:    filename,
		DownloadURL: "/api/download/" + token,
	})
}

// Download returns a rendered workbook once.
// GET /api/download/:token
func (h *Handler) Download(c *gin.Context) {
	item, ok := h.downloads.take(c.Param("token"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "download expired or unknown"})
		return
	}
	attachment(c, item.filename, item.data)
}

// upload reads the schedule files and the target month of a multipart form.
func (h *Handler) upload(c *gin.Context) ([]processor.Source, int, bool) {
	if err := c.Request.ParseMultipartForm(h.opts.MaxUpload); err != nil {
		h.fail(c, http.StatusBadRequest, fmt.Errorf("parse upload: %w", err))
		return nil, 0, false
	}

	month, err := h.month(c.PostForm("month"))
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return nil, 0, false
	}

	files := c.Request.MultipartForm.File["files"]
	if len(files) == 0 {
		h.fail(c, http.StatusBadRequest, processor.ErrNoFiles)
		return nil, 0, false
	}

	sources := make([]processor.Source, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			h.fail(c, http.StatusBadRequest, fmt.Errorf("open %s: %w", fh.Filename, err))
			return nil, 0, false
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			h.fail(c, http.StatusBadRequest, fmt.Errorf("read %s: %w", fh.Filename, err))
			return nil, 0, false
		}
		sources = append(sources, processor.Source{Name: fh.Filename, Data: data})
	}

	return sources, month, true
}

func (h *Handler) month(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return h.opts.DefaultMonth, nil
	}
	m, err := strconv.Atoi(v)
	if err != nil || m < 0 || m > 12 {
		return 0, fmt.Errorf("invalid month %q", v)
	}
	return m, nil
}

func readCosts(c *gin.Context) ([]cost.MonthlyCost, error) {
	if raw := c.PostForm("costs_json"); raw != "" {
		var monthly []cost.MonthlyCost
		if err := json.Unmarshal([]byte(raw), &monthly); err != nil {
			return nil, fmt.Errorf("decode costs_json: %w", err)
		}
		return monthly, nil
	}

	fh, err := c.FormFile("costs")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, errors.New("missing cost table")
		}
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	return cost.ReadMonthlyCosts(f)
}

func (h *Handler) fail(c *gin.Context, status int, err error) {
	h.log.Warn("request failed",
		slog.String("path", c.FullPath()),
		slog.Int("status", status),
		slog.Any("error", err))
	c.JSON(status, gin.H{"error": err.Error()})
}

func attachment(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", url.PathEscape(filename)))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
