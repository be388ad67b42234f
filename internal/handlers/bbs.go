package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bbs-manager/internal/middleware"
	"bbs-manager/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BBSHandler serves the dashboard and the record CRUD pages.
type BBSHandler struct {
	Records service.BBSService
	Log     *zap.Logger
}

func (h *BBSHandler) Dashboard(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	records, err := h.Records.List(c.Request.Context(), user)
	if err != nil {
		h.Log.Error("list records failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load records")
		return
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"records":     records,
		"totalWeight": service.TotalOf(records),
	})
}

func (h *BBSHandler) ListRecords(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	records, err := h.Records.List(c.Request.Context(), user)
	if err != nil {
		h.Log.Error("list records failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "failed to load records")
		return
	}

	render(c, http.StatusOK, "bbs_list.html", gin.H{"records": records})
}

func (h *BBSHandler) ShowAdd(c *gin.Context) {
	render(c, http.StatusOK, "bbs_add.html", gin.H{"error": ""})
}

func (h *BBSHandler) Add(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	input, err := parseRecordForm(c)
	if err != nil {
		render(c, http.StatusBadRequest, "bbs_add.html", gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Records.Create(c.Request.Context(), user, input); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			render(c, http.StatusBadRequest, "bbs_add.html", gin.H{"error": err.Error()})
			return
		}
		h.Log.Error("create record failed", zap.Error(err))
		render(c, http.StatusInternalServerError, "bbs_add.html", gin.H{"error": "Failed to save entry"})
		return
	}

	c.Redirect(http.StatusFound, "/bbs")
}

func (h *BBSHandler) ShowEdit(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := recordID(c)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid record id")
		return
	}

	rec, err := h.Records.Get(c.Request.Context(), user, id)
	if err != nil {
		h.redirectOrFail(c, err, "load record")
		return
	}

	render(c, http.StatusOK, "bbs_edit.html", gin.H{"entry": rec, "error": ""})
}

func (h *BBSHandler) Edit(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := recordID(c)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid record id")
		return
	}

	input, err := parseRecordForm(c)
	if err != nil {
		rec, getErr := h.Records.Get(c.Request.Context(), user, id)
		if getErr != nil {
			h.redirectOrFail(c, getErr, "load record")
			return
		}
		render(c, http.StatusBadRequest, "bbs_edit.html", gin.H{"entry": rec, "error": err.Error()})
		return
	}

	if _, err := h.Records.Update(c.Request.Context(), user, id, input); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			rec, getErr := h.Records.Get(c.Request.Context(), user, id)
			if getErr != nil {
				h.redirectOrFail(c, getErr, "load record")
				return
			}
			render(c, http.StatusBadRequest, "bbs_edit.html", gin.H{"entry": rec, "error": err.Error()})
			return
		}
		h.redirectOrFail(c, err, "update record")
		return
	}

	c.Redirect(http.StatusFound, "/bbs")
}

func (h *BBSHandler) Delete(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := recordID(c)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid record id")
		return
	}

	if err := h.Records.Delete(c.Request.Context(), user, id); err != nil {
		h.redirectOrFail(c, err, "delete record")
		return
	}

	c.Redirect(http.StatusFound, "/bbs")
}

// redirectOrFail maps the shared error taxonomy: foreign records send the
// user quietly back to their list, missing ids 404, anything else is a
// generic failure.
func (h *BBSHandler) redirectOrFail(c *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		c.Redirect(http.StatusFound, "/bbs")
	case errors.Is(err, service.ErrNotFound):
		c.String(http.StatusNotFound, "record not found")
	default:
		h.Log.Error(op+" failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "something went wrong")
	}
}

func recordID(c *gin.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid record id")
	}
	return uint(id), nil
}

// parseRecordForm reads the geometric fields. A total_weight form value, if
// present, is ignored: the weight is always derived server-side.
func parseRecordForm(c *gin.Context) (service.RecordInput, error) {
	var in service.RecordInput

	in.ProjectName = strings.TrimSpace(c.PostForm("project_name"))
	in.ElementType = strings.TrimSpace(c.PostForm("element_type"))

	diameter, err := strconv.ParseFloat(c.PostForm("diameter"), 64)
	if err != nil {
		return in, errors.New("diameter must be a number")
	}
	length, err := strconv.ParseFloat(c.PostForm("length"), 64)
	if err != nil {
		return in, errors.New("length must be a number")
	}
	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		return in, errors.New("quantity must be a whole number")
	}

	in.Diameter = diameter
	in.Length = length
	in.Quantity = quantity
	return in, nil
}
