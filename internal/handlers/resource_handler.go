package handlers

import (
	"net/http"
	"voidwebsite/internal/services"

	"github.com/gin-gonic/gin"
)

// ResourceHandler exposes admin CRUD for one flat collection.
type ResourceHandler[T any, PT services.RecordPtr[T]] struct {
	svc  *services.ResourceService[T, PT]
	name string
}

func NewResourceHandler[T any, PT services.RecordPtr[T]](svc *services.ResourceService[T, PT], name string) *ResourceHandler[T, PT] {
	return &ResourceHandler[T, PT]{svc: svc, name: name}
}

// Register mounts list, get, create, update, delete and bulk-delete under
// path.
func (h *ResourceHandler[T, PT]) Register(group *gin.RouterGroup, path string) {
	group.GET(path, h.List)
	group.POST(path, h.Create)
	group.POST(path+"/bulk-delete", h.BulkDelete)
	group.GET(path+"/:id", h.Get)
	group.PUT(path+"/:id", h.Update)
	group.DELETE(path+"/:id", h.Delete)
}

func (h *ResourceHandler[T, PT]) List(c *gin.Context) {
	records, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err, "Failed to load "+h.name)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *ResourceHandler[T, PT]) Get(c *gin.Context) {
	record, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load "+h.name)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *ResourceHandler[T, PT]) Create(c *gin.Context) {
	record := PT(new(T))
	if err := c.ShouldBindJSON(record); err != nil {
		badRequest(c)
		return
	}
	if err := h.svc.Create(c.Request.Context(), record); err != nil {
		respondError(c, err, "Failed to save "+h.name+". Please try again.")
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *ResourceHandler[T, PT]) Update(c *gin.Context) {
	record := PT(new(T))
	if err := c.ShouldBindJSON(record); err != nil {
		badRequest(c)
		return
	}
	if err := h.svc.Update(c.Request.Context(), c.Param("id"), record); err != nil {
		respondError(c, err, "Failed to save "+h.name+". Please try again.")
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *ResourceHandler[T, PT]) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete "+h.name+". Please try again.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResourceHandler[T, PT]) BulkDelete(c *gin.Context) {
	var req idsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	c.JSON(http.StatusOK, h.svc.BulkDelete(c.Request.Context(), req.IDs))
}
