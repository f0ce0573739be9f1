package sessions

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"readiness-backend/internal/intake"
	"readiness-backend/internal/results"
	"readiness-backend/internal/scoring"
	"readiness-backend/internal/shared/server/middleware"
	"readiness-backend/internal/shared/server/respond"
	"readiness-backend/internal/shared/util"
	"readiness-backend/internal/uploads"
	"readiness-backend/internal/wizard"
)

const (
	defaultMaxUploadSize = 10 << 20 // 10MB
	maxCertificateFiles  = 10
	uploadField          = "file"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service

	// MaxUploadBytes caps each multipart request body.
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadSize
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/sessions", h.create)
	rg.GET("/sessions/:id", h.get)
	rg.DELETE("/sessions/:id", h.delete)
	rg.POST("/sessions/:id/reset", h.reset)

	rg.POST("/sessions/:id/advance", h.advance)
	rg.POST("/sessions/:id/retreat", h.retreat)
	rg.POST("/sessions/:id/jump", h.jump)

	rg.POST("/sessions/:id/skills", h.addSkill)
	rg.DELETE("/sessions/:id/skills", h.clearSkills)
	rg.DELETE("/sessions/:id/skills/:name", h.removeSkill)

	rg.POST("/sessions/:id/certifications", h.addCertification)
	rg.DELETE("/sessions/:id/certifications/:index", h.removeCertification)
	rg.POST("/sessions/:id/certifications/scan", h.scanCertificates)

	rg.POST("/sessions/:id/projects", h.addProject)
	rg.DELETE("/sessions/:id/projects/:index", h.removeProject)

	rg.POST("/sessions/:id/internships", h.addInternship)
	rg.DELETE("/sessions/:id/internships/:index", h.removeInternship)

	rg.PUT("/sessions/:id/resume", h.setResumeText)
	rg.POST("/sessions/:id/resume/scan", h.scanResume)
	rg.POST("/sessions/:id/resume/score", h.scoreResumeText)

	rg.POST("/sessions/:id/preview/:component", h.preview)

	rg.POST("/sessions/:id/submit", h.submit)
	rg.GET("/sessions/:id/results", h.results)
}

func (h *Handler) create(c *gin.Context) {
	sess, err := h.Svc.Create(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to create session", nil)
		return
	}
	middleware.SetSessionID(c, sess.ID)
	c.Set("wizardStep", wizard.StepSkills.String())
	respond.Created(c, toResponse(sess))
}

func (h *Handler) get(c *gin.Context) {
	sess, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, sess, toResponse(sess))
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) reset(c *gin.Context) {
	sess, err := h.Svc.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, sess, toResponse(sess))
}

func (h *Handler) advance(c *gin.Context) {
	h.move(c, (*wizard.Controller).Advance)
}

func (h *Handler) retreat(c *gin.Context) {
	h.move(c, (*wizard.Controller).Retreat)
}

func (h *Handler) jump(c *gin.Context) {
	var req jumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "step is required", nil)
		return
	}
	target := wizard.Step(*req.Step)
	if !target.Valid() {
		respond.Error(c, http.StatusBadRequest, "validation_error", "step is out of range", gin.H{"step": *req.Step})
		return
	}
	h.move(c, func(w *wizard.Controller) bool { return w.Jump(target) })
}

func (h *Handler) move(c *gin.Context, move func(*wizard.Controller) bool) {
	before := ""
	sess, moved, err := h.Svc.Navigate(c.Request.Context(), c.Param("id"), func(w *wizard.Controller) bool {
		before = w.Step().String()
		return move(w)
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	resp := toResponse(sess)
	if moved {
		c.Set("stepTransition", before+"->"+resp.StepName)
	}
	h.ok(c, sess, MoveResponse{SessionResponse: resp, Moved: moved})
}

func (h *Handler) addSkill(c *gin.Context) {
	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "name is required", nil)
		return
	}
	h.edited(c)(h.Svc.AddSkill(c.Request.Context(), c.Param("id"), req.Name))
}

func (h *Handler) removeSkill(c *gin.Context) {
	h.edited(c)(h.Svc.RemoveSkill(c.Request.Context(), c.Param("id"), c.Param("name")))
}

func (h *Handler) clearSkills(c *gin.Context) {
	h.edited(c)(h.Svc.ClearSkills(c.Request.Context(), c.Param("id")))
}

func (h *Handler) addCertification(c *gin.Context) {
	var req certificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	cert := intake.Certification{Name: req.Name, Issuer: req.Issuer, Year: req.Year}
	h.edited(c)(h.Svc.AddCertification(c.Request.Context(), c.Param("id"), cert))
}

func (h *Handler) removeCertification(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	h.edited(c)(h.Svc.RemoveCertification(c.Request.Context(), c.Param("id"), index))
}

func (h *Handler) addProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	project := intake.Project{
		Title:       req.Title,
		Description: req.Description,
		TechStack:   intake.SplitList(req.TechStack),
		GithubURL:   req.GithubURL,
	}
	h.edited(c)(h.Svc.AddProject(c.Request.Context(), c.Param("id"), project))
}

func (h *Handler) removeProject(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	h.edited(c)(h.Svc.RemoveProject(c.Request.Context(), c.Param("id"), index))
}

func (h *Handler) addInternship(c *gin.Context) {
	var req internshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	in := intake.Internship{
		Company:        req.Company,
		Role:           req.Role,
		DurationMonths: req.DurationMonths,
		Achievements:   req.Achievements,
		HasCertificate: req.HasCertificate,
	}
	h.edited(c)(h.Svc.AddInternship(c.Request.Context(), c.Param("id"), in))
}

func (h *Handler) removeInternship(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}
	h.edited(c)(h.Svc.RemoveInternship(c.Request.Context(), c.Param("id"), index))
}

func (h *Handler) setResumeText(c *gin.Context) {
	var req resumeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "text is required", nil)
		return
	}
	sess, err := h.Svc.SetResumeText(c.Request.Context(), c.Param("id"), *req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, sess, toResponse(sess))
}

func (h *Handler) scanCertificates(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart form is required", nil)
		return
	}
	headers := form.File[uploadField]
	if len(headers) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if len(headers) > maxCertificateFiles {
		respond.Error(c, http.StatusBadRequest, "validation_error",
			fmt.Sprintf("at most %d files per upload", maxCertificateFiles), nil)
		return
	}

	files := make([]uploads.File, 0, len(headers))
	for _, fh := range headers {
		file, err := readUpload(fh)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), gin.H{"fileName": fh.Filename})
			return
		}
		files = append(files, file)
	}

	sess, outcomes, err := h.Svc.ScanCertificates(c.Request.Context(), c.Param("id"), files)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, sess, gin.H{"session": toResponse(sess), "outcomes": outcomes})
}

func (h *Handler) scanResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	fh, err := c.FormFile(uploadField)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := readUpload(fh)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), gin.H{"fileName": fh.Filename})
		return
	}

	sess, outcome, err := h.Svc.ScanResume(c.Request.Context(), c.Param("id"), file)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.ok(c, sess, gin.H{"session": toResponse(sess), "outcome": outcome})
}

func (h *Handler) scoreResumeText(c *gin.Context) {
	scan, err := h.Svc.ScoreResumeText(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, scan)
}

func (h *Handler) preview(c *gin.Context) {
	component, err := scoring.ParseComponent(c.Param("component"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}
	preview, err := h.Svc.PreviewComponent(c.Request.Context(), c.Param("id"), component)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, preview)
}

func (h *Handler) submit(c *gin.Context) {
	sess, report, err := h.Svc.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set("stepTransition", wizard.StepResume.String()+"->"+wizard.StepResults.String())
	h.ok(c, sess, report)
}

func (h *Handler) results(c *gin.Context) {
	view, err := h.Svc.Results(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	if c.Query("format") == "text" {
		respond.Text(c, func(w io.Writer) error { return results.WriteText(w, view) })
		return
	}
	respond.OK(c, view)
}

// edited adapts an edit result into a response.
func (h *Handler) edited(c *gin.Context) func(*Session, bool, error) {
	return func(sess *Session, changed bool, err error) {
		if err != nil {
			h.fail(c, err)
			return
		}
		h.ok(c, sess, EditResponse{SessionResponse: toResponse(sess), Changed: changed})
	}
}

func (h *Handler) ok(c *gin.Context, sess *Session, payload any) {
	middleware.SetSessionID(c, sess.ID)
	c.Set("wizardStep", sess.Wizard.Step().String())
	respond.OK(c, payload)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "session not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, wizard.ErrSubmissionInFlight), errors.Is(err, wizard.ErrNotAtResumeStep),
		errors.Is(err, uploads.ErrScanInFlight):
		respond.Error(c, http.StatusConflict, "conflict", err.Error(), nil)
	case scoring.IsServiceFailure(err):
		respond.Error(c, http.StatusBadGateway, "scoring_unavailable", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "unexpected error", nil)
	}
}

func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "index must be an integer", nil)
		return 0, false
	}
	return index, true
}

func readUpload(fh *multipart.FileHeader) (uploads.File, error) {
	name, err := util.SanitizeFileName(fh.Filename)
	if err != nil {
		return uploads.File{}, err
	}
	f, err := fh.Open()
	if err != nil {
		return uploads.File{}, errors.New("unable to read file")
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return uploads.File{}, errors.New("unable to read file")
	}
	return uploads.File{Name: name, Data: data}, nil
}
