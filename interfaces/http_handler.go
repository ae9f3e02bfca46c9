package interfaces

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"talent-pipeline/domain"
	"talent-pipeline/infrastructure"
	"talent-pipeline/intake"
	"talent-pipeline/usecase"
)

type HTTPHandler struct {
	uc   *usecase.CandidateUsecase
	auth *Authenticator
	log  *zap.Logger
}

// NewHTTPHandler registers the public intake routes and the admin routes
// guarded by auth. Public writes go through limiter, which may be nil.
func NewHTTPHandler(router *gin.Engine, uc *usecase.CandidateUsecase, auth *Authenticator, limiter *RateLimiter, log *zap.Logger) {
	h := &HTTPHandler{uc: uc, auth: auth, log: log}
	throttle := limiter.Middleware()

	router.GET("/healthz", h.Health)
	router.POST("/auth/login", throttle, h.Login)

	router.POST("/candidates", throttle, h.CreateCandidate)
	router.POST("/upload", throttle, h.UploadResume)
	router.GET("/intake/questions", h.IntakeQuestions)
	router.GET("/candidates/:id/intake", h.ListIntakeResponses)
	router.POST("/candidates/:id/intake", throttle, h.RecordIntakeResponse)
	router.GET("/candidates/:id/conversation", h.Conversation)

	admin := router.Group("", auth.Middleware())
	admin.GET("/candidates", h.ListCandidates)
	admin.GET("/candidates/:id", h.GetCandidate)
	admin.PATCH("/candidates/:id/status", h.UpdateStatus)
	admin.PATCH("/candidates/:id/stage", h.UpdateStage)
	admin.POST("/candidates/:id/rescreen", h.Rescreen)
	admin.GET("/stats", h.Stats)
	admin.GET("/pipeline", h.Pipeline)
	admin.GET("/auth/me", h.Me)
}

func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type loginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// Login is the mock admin login: any well-formed email gets a session token.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}

	token, s, exp, err := h.auth.Issue(strings.TrimSpace(req.Email))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.log.Info("recruiter logged in", zap.String("email", s.Email))
	c.JSON(http.StatusOK, gin.H{"token": token, "expiresAt": exp.UTC(), "user": s})
}

func (h *HTTPHandler) Me(c *gin.Context) {
	s, ok := SessionFrom(c)
	if !ok {
		h.respondError(c, ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *HTTPHandler) CreateCandidate(c *gin.Context) {
	var in usecase.CreateCandidateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondError(c, bindError(err))
		return
	}

	cand, err := h.uc.CreateCandidate(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cand)
}

// UploadResume accepts the intake form with a resume file, extracts its text
// and screens it. A resume_text field takes precedence over the file contents.
func (h *HTTPHandler) UploadResume(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	first := strings.TrimSpace(c.PostForm("first_name"))
	last := strings.TrimSpace(c.PostForm("last_name"))
	if first == "" && last == "" {
		first, last = usecase.NamesFromEmail(email)
	}
	in := usecase.CreateCandidateInput{Email: email, FirstName: &first, LastName: &last}

	text := strings.TrimSpace(c.PostForm("resume_text"))
	header, err := c.FormFile("resume_file")
	switch {
	case err == nil:
		name := header.Filename
		in.ResumeFileName = &name
		if text == "" {
			file, err := header.Open()
			if err != nil {
				h.respondError(c, fmt.Errorf("opening %s: %w", name, err))
				return
			}
			defer file.Close()

			text, err = infrastructure.ExtractText(file, name)
			if errors.Is(err, infrastructure.ErrExtractionUnsupported) {
				h.respondError(c, domain.Invalid("resume_file", "only .txt and .md files can be read; paste the resume text instead"))
				return
			}
			if err != nil {
				h.respondError(c, err)
				return
			}
		}
	case errors.Is(err, http.ErrMissingFile):
		if text == "" {
			h.respondError(c, domain.Invalid("resume_file", "is required"))
			return
		}
	default:
		h.respondError(c, domain.Invalid("resume_file", "could not read multipart form"))
		return
	}
	in.ResumeText = text

	h.log.Debug("resume uploaded",
		zap.String("email", email),
		zap.Int("chars", len(text)),
		zap.String("preview", infrastructure.TruncateForLog(text, 80)),
	)

	cand, err := h.uc.CreateCandidate(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cand)
}

func (h *HTTPHandler) ListCandidates(c *gin.Context) {
	candidates, err := h.uc.ListCandidates(c.Request.Context(), usecase.ListCandidatesInput{
		Stage: c.Query("stage"),
		Query: c.Query("q"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

func (h *HTTPHandler) GetCandidate(c *gin.Context) {
	cand, err := h.uc.GetCandidate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *HTTPHandler) UpdateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}

	cand, err := h.uc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

type stageRequest struct {
	PipelineStage string `json:"pipelineStage" binding:"required"`
}

func (h *HTTPHandler) UpdateStage(c *gin.Context) {
	var req stageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}

	cand, err := h.uc.UpdateStage(c.Request.Context(), c.Param("id"), req.PipelineStage)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

func (h *HTTPHandler) Rescreen(c *gin.Context) {
	cand, err := h.uc.Rescreen(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cand)
}

func (h *HTTPHandler) Stats(c *gin.Context) {
	stats, err := h.uc.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *HTTPHandler) Pipeline(c *gin.Context) {
	board, err := h.uc.Board(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

func (h *HTTPHandler) IntakeQuestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"questions":         intake.Questions(),
		"completionMessage": intake.CompletionMessage,
	})
}

func (h *HTTPHandler) ListIntakeResponses(c *gin.Context) {
	responses, err := h.uc.ListIntakeResponses(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

func (h *HTTPHandler) RecordIntakeResponse(c *gin.Context) {
	var in usecase.RecordIntakeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondError(c, bindError(err))
		return
	}
	in.CandidateID = c.Param("id")

	resp, err := h.uc.RecordIntakeResponse(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *HTTPHandler) Conversation(c *gin.Context) {
	conv, err := h.uc.Conversation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conv)
}
