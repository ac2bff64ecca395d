package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"changepilot/export"
	"changepilot/logger"
)

// maxBodySize bounds generation request bodies (generated content graphs
// are small; anything close to this is malformed input).
const maxBodySize = 4 << 20

// Server wires the export engine to its HTTP surface.
type Server struct {
	store         *ProjectStore
	activity      *logger.Logger
	presentations *export.PresentationService
	packages      *export.PackageService
	words         *export.WordService
	excels        *export.ExcelService
	pdfs          *export.PDFService
}

// NewServer builds the HTTP surface. activity may be nil, in which case
// per-request file logging is off.
func NewServer(store *ProjectStore, activity *logger.Logger) *Server {
	presentations := export.NewPresentationService()
	return &Server{
		store:         store,
		activity:      activity,
		presentations: presentations,
		packages:      export.NewPackageService(presentations),
		words:         export.NewWordService(),
		excels:        export.NewExcelService(),
		pdfs:          export.NewPDFService(),
	}
}

// Routes registers all handlers on a fresh mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/package", s.handlePackage)
	mux.HandleFunc("/api/projects", s.handleProjects)
	mux.HandleFunc("/api/projects/", s.handleProjectByID)
	return mux
}

func jsonResponse(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[ERROR] write json response: %v", err)
	}
}

func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]interface{}{"ok": false, "error": message})
}

// sendAttachment streams a fully built buffer. Buffers are complete before
// the first byte is written, so failures never leave partial binary output
// on the wire.
func sendAttachment(w http.ResponseWriter, data []byte, filename, mimeType string) {
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	if _, err := w.Write(data); err != nil {
		log.Printf("[WARN] stream attachment %s: %v", filename, err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// decodeProjectBody reads a ProjectContent request body. An empty body is
// valid: every content field has a fallback.
func decodeProjectBody(r *http.Request) (*export.ProjectContent, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(body) == 0 {
		return &export.ProjectContent{}, nil
	}
	var project export.ProjectContent
	if err := json.Unmarshal(body, &project); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return &project, nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	project, err := decodeProjectBody(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	data, filename, err := s.presentations.Generate(project)
	if err != nil {
		log.Printf("[ERROR] %v", WrapError("export", "Generate", err))
		s.activity.Logf("generate failed: %v", err)
		jsonError(w, http.StatusInternalServerError, "presentation generation failed")
		return
	}
	s.activity.Logf("generate %s (%d bytes)", filename, len(data))
	sendAttachment(w, data, filename, export.MIMEPresentation)
}

func (s *Server) handlePackage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	project, err := decodeProjectBody(r)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	password := r.URL.Query().Get("password")
	data, filename, err := s.packages.BuildArchive(project, password)
	if err != nil {
		log.Printf("[ERROR] %v", WrapError("export", "BuildArchive", err))
		s.activity.Logf("package failed: %v", err)
		jsonError(w, http.StatusInternalServerError, "package generation failed")
		return
	}
	s.activity.Logf("package %s (%d bytes, protected=%t)", filename, len(data), password != "")
	sendAttachment(w, data, filename, export.MIMEZip)
}

type createProjectRequest struct {
	Name             string          `json:"name"`
	TemplateID       int             `json:"templateId"`
	GeneratedContent json.RawMessage `json:"generatedContent"`
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := ValidateProjectName(req.Name); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	project, err := s.store.Create(req.Name, req.TemplateID, req.GeneratedContent)
	if err != nil {
		log.Printf("[ERROR] %v", WrapError("store", "Create", err))
		jsonError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	jsonResponse(w, http.StatusCreated, map[string]interface{}{"ok": true, "data": project})
}

// handleProjectByID serves /api/projects/{id} and /api/projects/{id}/export.
func (s *Server) handleProjectByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/projects/")
	parts := strings.Split(strings.Trim(rest, "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] != "":
		s.handleProject(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "export":
		s.handleProjectExport(w, r, parts[0])
	default:
		jsonError(w, http.StatusNotFound, "not_found")
	}
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodGet:
		s.handleProjectGet(w, r, id)
	case http.MethodPut:
		s.handleProjectUpdate(w, r, id)
	default:
		jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) handleProjectGet(w http.ResponseWriter, _ *http.Request, id string) {
	project, err := s.store.Get(id)
	if errors.Is(err, ErrProjectNotFound) {
		jsonError(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		log.Printf("[ERROR] %v", WrapError("store", "Get", err))
		jsonError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]interface{}{"ok": true, "data": project})
}

type updateProjectRequest struct {
	GeneratedContent json.RawMessage `json:"generatedContent"`
}

// handleProjectUpdate replaces a project's stored content graph.
func (s *Server) handleProjectUpdate(w http.ResponseWriter, r *http.Request, id string) {
	var req updateProjectRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.store.UpdateContent(id, req.GeneratedContent)
	if errors.Is(err, ErrProjectNotFound) {
		jsonError(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		log.Printf("[ERROR] %v", WrapError("store", "UpdateContent", err))
		jsonError(w, http.StatusInternalServerError, "internal_error")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (s *Server) handleProjectExport(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		jsonError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	project, err := s.store.Get(id)
	if errors.Is(err, ErrProjectNotFound) {
		jsonError(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		log.Printf("[ERROR] %v", WrapError("store", "Get", err))
		jsonError(w, http.StatusInternalServerError, "internal_error")
		return
	}

	content, err := project.ToContent()
	if err != nil {
		log.Printf("[ERROR] %v", WrapError("store", "ToContent", err))
		jsonError(w, http.StatusInternalServerError, "stored content is unreadable")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pptx"
	}

	var (
		data     []byte
		filename string
		mimeType string
	)
	switch format {
	case "pptx":
		data, filename, err = s.presentations.Generate(content)
		mimeType = export.MIMEPresentation
	case "zip":
		data, filename, err = s.packages.BuildArchive(content, r.URL.Query().Get("password"))
		mimeType = export.MIMEZip
	case "word":
		data, filename, err = s.words.Generate(content)
		mimeType = export.MIMEWord
	case "excel":
		data, filename, err = s.excels.Generate(content)
		mimeType = export.MIMEExcel
	case "pdf":
		data, filename, err = s.pdfs.Generate(content)
		mimeType = export.MIMEPDF
	default:
		jsonError(w, http.StatusBadRequest, "unknown export format: "+format)
		return
	}
	if err != nil {
		log.Printf("[ERROR] %v", WrapError("export", format, err))
		s.activity.Logf("export %s of project %s failed: %v", format, id, err)
		jsonError(w, http.StatusInternalServerError, "export failed")
		return
	}
	s.activity.Logf("export %s of project %s -> %s", format, id, filename)
	sendAttachment(w, data, filename, mimeType)
}
