package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intellixel001/suvashpanel/internal/models"
	"github.com/intellixel001/suvashpanel/internal/service"
	"github.com/intellixel001/suvashpanel/pkg/response"
)

// PackageHandler manages exam packages.
type PackageHandler struct {
	packages *service.PackageService
	views    *service.Views
}

// NewPackageHandler constructs the handler.
func NewPackageHandler(packages *service.PackageService, views *service.Views) *PackageHandler {
	return &PackageHandler{packages: packages, views: views}
}

// List godoc
// @Summary List packages
// @Description Position, class and subject narrow the upstream query; search applies locally
// @Tags Packages
// @Produce json
// @Param search query string false "Name contains"
// @Param position query string false "Position"
// @Param class query string false "Class id"
// @Param subject query string false "Subject id"
// @Success 200 {object} response.Envelope
// @Router /api/packages [get]
func (h *PackageHandler) List(c *gin.Context) {
	var f models.PackageFilter
	if !bindQuery(c, &f) {
		return
	}
	f, err := h.packages.Scope(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	pkgs, err := h.packages.List(c.Request.Context(), f)
	if err != nil {
		response.Error(c, err)
		return
	}
	view := h.views.Packages(pkgs, f)
	respondList(c, view, len(pkgs), len(view), map[string]interface{}{"filter": f})
}

// Create godoc
// @Summary Create package
// @Tags Packages
// @Accept json
// @Produce json
// @Param payload body models.Package true "Package"
// @Success 201 {object} response.Envelope
// @Router /api/packages [post]
func (h *PackageHandler) Create(c *gin.Context) {
	var pkg models.Package
	if !bindJSON(c, &pkg, "package") {
		return
	}
	created, err := h.packages.Create(c.Request.Context(), pkg)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// Update godoc
// @Summary Update package
// @Tags Packages
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Param payload body models.Package true "Package"
// @Success 200 {object} response.Envelope
// @Router /api/packages/{id} [put]
func (h *PackageHandler) Update(c *gin.Context) {
	var pkg models.Package
	if !bindJSON(c, &pkg, "package") {
		return
	}
	updated, err := h.packages.Update(c.Request.Context(), param(c, "id"), pkg)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated)
}

// Classes godoc
// @Summary Classes of a position
// @Tags Packages
// @Produce json
// @Param position path string true "Position"
// @Success 200 {object} response.Envelope
// @Router /api/packages/classes/{position} [get]
func (h *PackageHandler) Classes(c *gin.Context) {
	classes, err := h.packages.Classes(c.Request.Context(), param(c, "position"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Subjects godoc
// @Summary Subjects of a class
// @Tags Packages
// @Produce json
// @Param position path string true "Position"
// @Param className path string true "Class name"
// @Success 200 {object} response.Envelope
// @Router /api/packages/subjects/{position}/{className} [get]
func (h *PackageHandler) Subjects(c *gin.Context) {
	subjects, err := h.packages.Subjects(c.Request.Context(), param(c, "position"), param(c, "className"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects)
}
