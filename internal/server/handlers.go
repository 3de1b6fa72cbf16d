package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"

	"github.com/rpgo/financial-planner/internal/calculation"
	"github.com/rpgo/financial-planner/internal/domain"
	"github.com/rpgo/financial-planner/internal/output"
	"github.com/rpgo/financial-planner/internal/storage"
)

// allowedMIMETypes are the upload types accepted as YAML. Browsers label
// .yaml files inconsistently, hence text/plain and octet-stream.
var allowedMIMETypes = map[string]bool{
	"application/x-yaml":       true,
	"text/yaml":                true,
	"text/plain":               true,
	"application/yaml":         true,
	"application/octet-stream": true,
}

const storeTimeout = 10 * time.Second

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type runResponse struct {
	Message  string           `json:"message"`
	RunID    string           `json:"run_id"`
	Years    int              `json:"years"`
	Warnings []domain.Warning `json:"warnings"`
}

type resultsResponse struct {
	RunID    string           `json:"run_id"`
	Results  []output.Record  `json:"results"`
	Warnings []domain.Warning `json:"warnings"`
}

type runSummaryResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartYear int    `json:"start_year"`
	EndYear   int    `json:"end_year"`
	Years     int    `json:"years"`
	CreatedAt string `json:"created_at"`
}

func (s *Server) handleUpload(ctx *fasthttp.RequestCtx) {
	data, contentType, err := s.readUpload(ctx)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, err.Error())
		return
	}
	if !allowedMIMETypes[contentType] {
		s.logger.Warn("unusual MIME type received", "content_type", contentType)
		writeError(ctx, fasthttp.StatusBadRequest, "Invalid file type. Please upload a YAML file.")
		return
	}

	raw, err := s.parser.Parse(data)
	if err != nil {
		writeError(ctx, fasthttp.StatusBadRequest, fmt.Sprintf("YAML parsing error: %v", err))
		return
	}
	if len(raw) == 0 {
		writeError(ctx, fasthttp.StatusBadRequest, "YAML content must be a mapping at the top level.")
		return
	}

	s.mu.Lock()
	s.scenario = raw
	s.mu.Unlock()

	s.logger.Info("scenario uploaded", "bytes", len(data), "content_type", contentType)
	writeJSON(ctx, fasthttp.StatusOK, messageResponse{Message: "Scenario loaded successfully."})
}

// readUpload accepts a multipart form with a "file" part or a raw body.
// It returns the payload and its media type without parameters.
func (s *Server) readUpload(ctx *fasthttp.RequestCtx) ([]byte, string, error) {
	reqType := mediaType(string(ctx.Request.Header.ContentType()))
	if reqType != "multipart/form-data" {
		body := ctx.PostBody()
		if len(body) > s.opts.MaxUploadBytes {
			return nil, "", errors.New("scenario file is too large")
		}
		return append([]byte(nil), body...), reqType, nil
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return nil, "", fmt.Errorf("missing form file 'file': %w", err)
	}
	if fh.Size > int64(s.opts.MaxUploadBytes) {
		return nil, "", errors.New("scenario file is too large")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("read upload: %w", err)
	}
	s.logger.Debug("received file", "filename", fh.Filename)
	return data, mediaType(fh.Header.Get("Content-Type")), nil
}

func mediaType(v string) string {
	if v == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(v)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(v))
	}
	return mt
}

func (s *Server) handleRun(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.scenario == nil {
		writeError(ctx, fasthttp.StatusBadRequest, "No scenario uploaded.")
		return
	}

	engine := calculation.NewSimulationEngine()
	engine.SetLogger(s.engineLogger())
	if err := engine.LoadScenario(s.scenario); err != nil {
		s.logger.Error("scenario load failed", "error", err)
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	if err := engine.RunSimulation(); err != nil {
		s.logger.Error("simulation failed", "error", err)
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}

	s.results = engine.Results()
	s.warnings = engine.Warnings()
	s.runID = ""

	if s.store != nil {
		start, end := engine.Years()
		storeCtx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		id, err := s.store.SaveRun(storeCtx, &storage.Run{
			Name:          engine.Name(),
			StartYear:     start,
			EndYear:       end,
			InflationRate: engine.InflationRate(),
			Scenario:      s.scenario,
			Results:       s.results,
			Warnings:      s.warnings,
		})
		if err != nil {
			s.logger.Error("saving run failed", "error", err)
			writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
			return
		}
		s.runID = id
	}

	if s.opts.ReportPath != "" {
		path, err := output.GenerateReport(s.results, s.opts.ReportPath)
		if err != nil {
			s.logger.Error("report generation failed", "error", err)
			writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
			return
		}
		s.logger.Info("report generated", "path", path)
	}

	writeJSON(ctx, fasthttp.StatusOK, runResponse{
		Message:  "Simulation run successfully.",
		RunID:    s.runID,
		Years:    len(s.results),
		Warnings: nonNilWarnings(s.warnings),
	})
}

func (s *Server) handleResults(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.results) == 0 {
		writeError(ctx, fasthttp.StatusNotFound, "No simulation results found.")
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, resultsResponse{
		RunID:    s.runID,
		Results:  output.Records(s.results),
		Warnings: nonNilWarnings(s.warnings),
	})
}

func (s *Server) handleReport(ctx *fasthttp.RequestCtx) {
	s.mu.Lock()
	results := s.results
	s.mu.Unlock()

	if len(results) == 0 {
		writeError(ctx, fasthttp.StatusNotFound, "No simulation results found.")
		return
	}
	data, err := output.CSVSummarizer{}.Format(results)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	ctx.SetContentType("text/csv; charset=utf-8")
	ctx.Response.Header.Set(fasthttp.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", output.DefaultReportFilename))
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(data)
}

func (s *Server) handleListRuns(ctx *fasthttp.RequestCtx) {
	if s.store == nil {
		writeError(ctx, fasthttp.StatusNotFound, "Run history is not enabled.")
		return
	}
	limit := ctx.QueryArgs().GetUintOrZero("limit")
	storeCtx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	runs, err := s.store.ListRuns(storeCtx, limit)
	if err != nil {
		writeError(ctx, fasthttp.StatusInternalServerError, err.Error())
		return
	}
	out := make([]runSummaryResponse, 0, len(runs))
	for _, r := range runs {
		out = append(out, runSummaryResponse{
			ID:        r.ID,
			Name:      r.Name,
			StartYear: r.StartYear,
			EndYear:   r.EndYear,
			Years:     r.Years,
			CreatedAt: r.CreatedAt.Format(time.RFC3339),
		})
	}
	writeJSON(ctx, fasthttp.StatusOK, out)
}

func nonNilWarnings(w []domain.Warning) []domain.Warning {
	if w == nil {
		return []domain.Warning{}
	}
	return w
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{"status":500,"detail":"encoding response failed"}`)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(body)
}

func writeError(ctx *fasthttp.RequestCtx, status int, detail string) {
	writeJSON(ctx, status, errorResponse{Status: status, Detail: detail})
}
