package recommend

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"curriculum-backend/internal/curriculum"
	"curriculum-backend/internal/render"
	"curriculum-backend/internal/shared/server/middleware"
	"curriculum-backend/internal/shared/server/respond"
	"curriculum-backend/internal/shared/telemetry"
)

const maxBodyBytes = 4 << 10

// Handler wires HTTP handlers to the recommend service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the JSON API, the HTML form, and health routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.POST("/recommend", h.recommend)
	r.GET("/", h.formPage)
	r.POST("/", h.submitForm)
	r.GET("/health", h.health)
}

func (h *Handler) recommend(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "could not read request body", nil)
		return
	}
	var payload map[string]any
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil || payload == nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid or missing JSON body", nil)
		return
	}
	raw, ok := payload["semester"]
	if !ok {
		raw = payload["semestre"]
	}

	semester, recs, err := h.Svc.Recommend(raw)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Set(middleware.SemesterKey, semester)
	c.Set(middleware.ResultCountKey, len(recs))
	respond.OK(c, Response{Semester: semester, Results: recs})
}

func (h *Handler) fail(c *gin.Context, err error) {
	if IsValidation(err) {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
		return
	}
	telemetry.Error("recommend.failed", map[string]any{"error": err})
	respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to build recommendations", nil)
}

func (h *Handler) formPage(c *gin.Context) {
	respond.Page(c, http.StatusOK, render.PageForm, render.FormPage{})
}

func (h *Handler) submitForm(c *gin.Context) {
	input := c.PostForm("semester")
	semester, recs, err := h.Svc.Recommend(input)
	if err != nil {
		status := http.StatusBadRequest
		msg := curriculum.InvalidSemesterMessage
		if !IsValidation(err) {
			telemetry.Error("recommend.failed", map[string]any{"error": err})
			status = http.StatusInternalServerError
			msg = "failed to build recommendations"
		}
		respond.Page(c, status, render.PageForm, render.FormPage{Input: input, Error: msg})
		return
	}
	c.Set(middleware.SemesterKey, semester)
	c.Set(middleware.ResultCountKey, len(recs))
	view := curriculum.BuildView(semester, recs)
	respond.Page(c, http.StatusOK, render.PageForm, render.FormPage{Input: input, View: &view})
}

func (h *Handler) health(c *gin.Context) {
	resp := h.Svc.Health()
	status := http.StatusOK
	if resp.Status != "ok" {
		status = http.StatusServiceUnavailable
	}
	respond.JSON(c, status, resp)
}
