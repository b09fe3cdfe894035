package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"plantstore/internal/config"
	"plantstore/internal/domain"
	"plantstore/internal/service"
)

type PlantHandler struct {
	service service.PlantService
	cfg     *config.AppConfig
	log     *zap.Logger
}

func NewPlantHandler(service service.PlantService, cfg *config.AppConfig, log *zap.Logger) *PlantHandler {
	return &PlantHandler{
		service: service,
		cfg:     cfg,
		log:     log,
	}
}

func (h *PlantHandler) AddPlant(c *gin.Context) {
	paths, err := saveImageFiles(c, h.cfg)
	if err != nil {
		h.fail(c, err)
		return
	}

	in, err := parsePlantForm(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	plant, err := h.service.Add(c.Request.Context(), in, paths)
	if err != nil {
		h.log.Error("Failed to add plant", zap.Error(err))
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Plant Added",
		"plant":   plant,
	})
}

func (h *PlantHandler) UpdatePlant(c *gin.Context) {
	id := c.Param("id")

	paths, err := saveImageFiles(c, h.cfg)
	if err != nil {
		h.fail(c, err)
		return
	}

	upd, err := parsePlantUpdateForm(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	plant, err := h.service.Update(c.Request.Context(), id, upd, paths)
	if err != nil {
		h.log.Error("Failed to update plant", zap.String("id", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Plant Updated",
		"plant":   plant,
	})
}

func (h *PlantHandler) RemovePlant(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Plant ID is required",
		})
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		h.log.Error("Failed to remove plant", zap.String("id", id), zap.Error(err))
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Plant and images removed successfully",
	})
}

func (h *PlantHandler) SinglePlant(c *gin.Context) {
	plant, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"plant":   plant,
	})
}

func (h *PlantHandler) ListPlants(c *gin.Context) {
	plants, err := h.service.List(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list plants", zap.Error(err))
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"plants":  plants,
	})
}

// ManagePlants serves the admin console listing. Same data as the
// public list; the route exists for the authorization boundary.
func (h *PlantHandler) ManagePlants(c *gin.Context) {
	plants, err := h.service.List(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list plants for management", zap.Error(err))
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Plants retrieved successfully",
		"data":    plants,
	})
}

func (h *PlantHandler) fail(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{
		"success": false,
		"message": err.Error(),
	})
}

// statusForError maps the error taxonomy onto HTTP statuses. Upload,
// validation and store failures all surface as 500, matching the
// catalog's uniform failure envelope.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
