package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/ccollicutt/timelog/pkg/output"
	"github.com/ccollicutt/timelog/pkg/parser"
	"github.com/ccollicutt/timelog/pkg/stats"
)

var uploadTemplate = template.Must(template.New("upload").Parse(`<!DOCTYPE html>
<html>
<head><title>Upload a time log</title></head>
<body>
<h1>Upload a time log</h1>
{{with .Error}}<p class="error">{{.}}</p>
{{end}}<form method="post" enctype="multipart/form-data">
  <input type="file" name="file" accept="{{.Accept}}">
  <input type="submit" value="Upload">
</form>
</body>
</html>
`))

// ParseRequest is the request body for the JSON endpoint.
type ParseRequest struct {
	Filename string   `json:"filename"`
	Timelog  []string `json:"timelog"`
}

// ParseResponse is the JSON endpoint's success response.
type ParseResponse struct {
	Output  []string            `json:"output"`
	Skipped []*parser.LineError `json:"skipped"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) uploadForm(w http.ResponseWriter, r *http.Request) {
	s.renderForm(w, r, http.StatusOK, "")
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, status int, msg string) {
	accept := make([]string, len(s.opts.AllowedExtensions))
	for i, ext := range s.opts.AllowedExtensions {
		accept[i] = "." + ext
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := uploadTemplate.Execute(w, struct {
		Error  string
		Accept string
	}{msg, strings.Join(accept, ",")}); err != nil {
		log := s.logger(r)
		log.Error().Err(err).Msg("rendering upload form")
	}
}

func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	log := s.logger(r)
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			s.renderForm(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("File is larger than %s", humanize.Bytes(uint64(s.opts.MaxUploadBytes))))
		case errors.Is(err, http.ErrMissingFile):
			s.renderForm(w, r, http.StatusBadRequest, "No file part")
		default:
			s.renderForm(w, r, http.StatusBadRequest, "Invalid upload")
		}
		return
	}
	defer file.Close()

	if header.Filename == "" {
		s.renderForm(w, r, http.StatusBadRequest, "No selected file")
		return
	}
	if !allowedFile(header.Filename, s.opts.AllowedExtensions) {
		s.renderForm(w, r, http.StatusBadRequest, "File type not allowed")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.opts.MaxUploadBytes+1))
	if err != nil {
		s.renderForm(w, r, http.StatusBadRequest, "Could not read upload")
		return
	}
	if int64(len(data)) > s.opts.MaxUploadBytes {
		s.renderForm(w, r, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File is larger than %s", humanize.Bytes(uint64(s.opts.MaxUploadBytes))))
		return
	}

	name := SecureFilename(header.Filename)
	log.Info().
		Str("file", name).
		Str("size", humanize.Bytes(uint64(len(data)))).
		Msg("upload received")

	if s.opts.SaveUploads {
		path, err := saveUpload(s.opts.UploadDir, name, data)
		if err != nil {
			log.Error().Err(err).Msg("saving upload")
			http.Error(w, "could not store upload", http.StatusInternalServerError)
			return
		}
		log.Debug().Str("path", path).Msg("upload saved")
	}

	lines, err := parser.ReadLines(r.Context(), bytes.NewReader(data))
	if err != nil {
		s.renderForm(w, r, http.StatusBadRequest, "Could not read upload")
		return
	}

	report, err := s.process(r, name, lines)
	if err != nil {
		s.renderForm(w, r, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := output.NewHTMLFormatter(output.FormatOptions{}).Format(r.Context(), report, w); err != nil {
		log.Error().Err(err).Msg("rendering results")
	}
}

func (s *Server) parseTimelog(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes+multipartOverhead)

	var req ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name := req.Filename
	if name == "" {
		name = "timelog"
	}

	report, err := s.process(r, name, req.Timelog)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ParseResponse{Output: report.Lines, Skipped: report.Skipped})
}

// process runs one log through the parser and aggregator. Each call has its
// own parse state.
func (s *Server) process(r *http.Request, name string, lines []string) (*output.Report, error) {
	log := s.logger(r)
	start := time.Now()

	result, err := s.parser.Parse(lines)
	if err != nil {
		log.Warn().Str("file", name).Err(err).Msg("rejected time log")
		return nil, err
	}
	for _, le := range result.Skipped {
		log.Warn().Str("file", name).Int("line", le.Line).Err(le.Err).Msg("line skipped")
	}

	st, err := stats.Compute(result.Records, result.TotalMinutes, name, stats.WithMedianMode(s.opts.MedianMode))
	if err != nil {
		log.Warn().Str("file", name).Err(err).Msg("no statistics")
		return nil, err
	}

	report := output.NewReport(result, st, output.Metadata{
		Source:      name,
		FlushPolicy: s.parser.FlushPolicy(),
		MedianMode:  s.opts.MedianMode,
		ParsedAt:    start,
		Duration:    time.Since(start),
	})

	if len(s.opts.Webhooks) > 0 {
		s.webhooks.Dispatch(context.WithoutCancel(r.Context()), s.opts.Webhooks, report, log)
	}

	return report, nil
}

// statusFor maps core errors to HTTP status codes.
func statusFor(err error) int {
	var se *stats.StatsError
	switch {
	case errors.Is(err, parser.ErrFormat), errors.As(err, &se):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
