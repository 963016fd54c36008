package server

import (
	"net/http"

	"github.com/google/uuid"

	"hireup/internal/auth"
	"hireup/internal/errors"
	"hireup/internal/store"
	"hireup/internal/types"
)

// currentUser returns the id stored by the JWT middleware.
func currentUser(r *http.Request) uuid.UUID {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}

func pathID(r *http.Request, notFound string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, errors.NewNotFoundError(errors.ErrCodeNotFound, notFound, err)
	}
	return id, nil
}

func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	session, err := s.deps.Accounts.Register(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Logger.Info("User registered", "user_id", session.User.ID)
	writeJSON(w, http.StatusCreated, types.SessionResponse{Success: true, Token: session.Token, User: session.User})
}

func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	session, err := s.deps.Accounts.Login(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.SessionResponse{Success: true, Token: session.Token, User: session.User})
}

func (s *Server) meHandler(w http.ResponseWriter, r *http.Request) {
	user, err := s.deps.Accounts.Me(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.UserResponse{Success: true, User: *user})
}

func (s *Server) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	var update auth.ProfileUpdate
	if err := parseJSONRequest(r, &update); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	user, err := s.deps.Accounts.UpdateProfile(r.Context(), currentUser(r), update)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.UserResponse{Success: true, User: *user})
}

func (s *Server) addScanHandler(w http.ResponseWriter, r *http.Request) {
	var req types.ScanRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	entry := &store.ScanEntry{
		UserID:            currentUser(r),
		FileName:          req.FileName,
		Score:             req.Score,
		TotalChecksPassed: req.TotalChecksPassed,
		WordCount:         req.WordCount,
		MatchScore:        req.MatchScore,
		Skills:            req.Skills,
		MissingSkills:     req.MissingSkills,
	}
	if entry.FileName == "" {
		entry.FileName = store.UnknownFileName
	}
	if err := s.deps.Store.AddScan(r.Context(), entry); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ScanResponse{Success: true, Resume: *entry})
}

func (s *Server) listScansHandler(w http.ResponseWriter, r *http.Request) {
	scans, err := s.deps.Store.ListScans(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.ScansResponse{Success: true, Resumes: store.NewestFirst(scans)})
}

// deleteScanHandler succeeds for ids that are not in the history.
func (s *Server) deleteScanHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Resume not found")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.deps.Store.DeleteScan(r.Context(), currentUser(r), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.MessageResponse{Success: true, Message: "Resume deleted successfully"})
}

func (s *Server) saveJobHandler(w http.ResponseWriter, r *http.Request) {
	var req types.SaveJobRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	job := &store.SavedJob{
		UserID:  currentUser(r),
		Title:   req.Title,
		Company: req.Company,
		URL:     req.URL,
		Status:  req.Status,
	}
	if err := s.deps.Store.SaveJob(r.Context(), job); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.JobResponse{Success: true, Job: *job})
}

func (s *Server) updateJobHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "Job not found")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req types.JobStatusRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	job, err := s.deps.Store.UpdateJobStatus(r.Context(), currentUser(r), id, req.Status)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.JobResponse{Success: true, Job: *job})
}

func (s *Server) connectGitHubHandler(w http.ResponseWriter, r *http.Request) {
	var req types.GitHubConnectRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	link, err := s.deps.Accounts.ConnectGitHub(r.Context(), currentUser(r), req.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.GitHubLinkResponse{Success: true, GitHub: *link})
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	scans, err := s.deps.Store.ListScans(r.Context(), currentUser(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, types.DataResponse[store.DashboardStats]{
		Success: true,
		Data:    store.ComputeDashboard(scans),
	})
}
