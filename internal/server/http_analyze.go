package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"hireup/internal/analysis"
	"hireup/internal/archive"
	"hireup/internal/events"
	"hireup/internal/github"
	"hireup/internal/types"
	"hireup/internal/utils"
)

const (
	defaultMaxFileSize = 5 << 20
	defaultTextName    = "resume.txt"
)

func (s *Server) maxFileSize() int64 {
	if s.AppConfig != nil && s.AppConfig.App.MaxFileSize > 0 {
		return s.AppConfig.App.MaxFileSize
	}
	return defaultMaxFileSize
}

// analyzeUploadHandler analyzes a multipart "resume" upload with an
// optional "jobDescription" field.
func (s *Server) analyzeUploadHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.deps.Observability.Tracer("hireup.api").Start(r.Context(), "api.analyze")
	defer span.End()

	maxSize := s.maxFileSize()
	if err := r.ParseMultipartForm(maxSize); err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			writeErrorResponse(w, "File too large", utils.FormatFileSize(maxSize)+" maximum", http.StatusRequestEntityTooLarge)
			return
		}
		if !stderrors.Is(err, http.ErrNotMultipart) {
			span.RecordError(err)
			writeErrorResponse(w, "Invalid upload", err.Error(), http.StatusBadRequest)
			return
		}
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		writeErrorResponse(w, "No resume file uploaded", "", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > maxSize {
		writeErrorResponse(w, "File too large", utils.FormatFileSize(maxSize)+" maximum", http.StatusRequestEntityTooLarge)
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, maxSize))
	if err != nil {
		span.RecordError(err)
		writeErrorResponse(w, "Failed to read upload", err.Error(), http.StatusBadRequest)
		return
	}

	span.SetAttributes(
		attribute.String("file.extension", utils.GetFileExtension(header.Filename)),
		attribute.Int64("file.size", header.Size),
	)

	doc, err := s.deps.Extractor.Extract(header.Filename, data)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		s.metrics().RecordExtractionFailure(ctx, utils.GetFileExtension(header.Filename))
		s.writeError(w, r, err)
		return
	}

	jobDescription := r.FormValue("jobDescription")
	report := s.runAnalysis(ctx, "upload", doc.Text, jobDescription)
	s.afterAnalysis(ctx, currentUser(r), doc.FileName, report, data, header.Header.Get("Content-Type"))

	writeJSON(w, http.StatusOK, types.DataResponse[types.AnalysisData]{
		Success: true,
		Data:    types.NewAnalysisData(doc.FileName, doc.Size, report),
	})
}

// analyzeTextHandler analyzes resume text sent as JSON.
func (s *Server) analyzeTextHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.deps.Observability.Tracer("hireup.api").Start(r.Context(), "api.analyze_text")
	defer span.End()

	var req types.AnalyzeTextRequest
	if err := s.decodeRequest(r, &req); err != nil {
		span.RecordError(err)
		s.writeError(w, r, err)
		return
	}

	fileName := req.FileName
	if fileName == "" {
		fileName = defaultTextName
	}
	doc, err := s.textExtractor.Extract(defaultTextName, []byte(req.ResumeText))
	if err != nil {
		span.RecordError(err)
		s.metrics().RecordExtractionFailure(ctx, "text")
		s.writeError(w, r, err)
		return
	}

	report := s.runAnalysis(ctx, "text", doc.Text, req.JobDescription)
	s.afterAnalysis(ctx, currentUser(r), fileName, report, nil, "")

	writeJSON(w, http.StatusOK, types.DataResponse[types.AnalysisData]{
		Success: true,
		Data:    types.NewAnalysisData(fileName, doc.Size, report),
	})
}

func (s *Server) runAnalysis(ctx context.Context, source, text, jobDescription string) analysis.Report {
	var report analysis.Report
	_ = s.metrics().TrackAnalysis(ctx, source, func(context.Context) (int, error) {
		report = s.deps.Analyzer.Analyze(text, jobDescription)
		return report.ATSScore, nil
	})
	return report
}

// afterAnalysis stores the scan, announces it and archives the upload.
// Anonymous analyses are not recorded. Failures are logged only.
func (s *Server) afterAnalysis(ctx context.Context, userID uuid.UUID, fileName string, report analysis.Report, upload []byte, contentType string) {
	if userID == uuid.Nil {
		return
	}

	entry := types.ScanEntryFromReport(fileName, report)
	entry.UserID = userID
	saved := true
	if err := s.deps.Store.AddScan(ctx, entry); err != nil {
		saved = false
		s.metrics().RecordHistorySaveFailure(ctx)
		s.Logger.LogError(err, "Failed to save scan history", "user_id", userID)
	}

	if saved {
		event := events.ScanCompleted{
			UserID:       userID,
			ScanID:       entry.ID,
			FileName:     entry.FileName,
			Score:        entry.Score,
			MatchScore:   entry.MatchScore,
			PassedChecks: entry.TotalChecksPassed,
			OccurredAt:   entry.Date,
		}
		if err := s.deps.Events.PublishScanCompleted(ctx, event); err != nil {
			s.Logger.Warn("Failed to publish scan event", "scan_id", entry.ID, "error", err.Error())
		}
	}

	if len(upload) > 0 {
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		key := archive.ObjectKey(userID, entry.ID, fileName)
		if err := s.deps.Archive.Archive(ctx, key, upload, contentType); err != nil {
			s.Logger.Warn("Failed to archive upload", "key", key, "error", err.Error())
		}
	}
}

func (s *Server) githubProfileHandler(w http.ResponseWriter, r *http.Request) {
	if s.deps.GitHub == nil {
		writeErrorResponse(w, "GitHub lookups are not configured", "", http.StatusServiceUnavailable)
		return
	}
	ctx, span := s.deps.Observability.Tracer("hireup.api").Start(r.Context(), "api.github_profile")
	defer span.End()

	result, err := s.deps.GitHub.FetchProfile(ctx, r.PathValue("username"))
	s.metrics().RecordGitHubLookup(ctx, err == nil)
	if err != nil {
		span.RecordError(err)
		s.writeError(w, r, err)
		return
	}
	span.SetAttributes(attribute.Int("github.score", result.Score))

	writeJSON(w, http.StatusOK, types.DataResponse[*github.ProfileScore]{Success: true, Data: result})
}
