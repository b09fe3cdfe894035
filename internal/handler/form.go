package handler

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"plantstore/internal/config"
	"plantstore/internal/domain"
)

// imageFields are the multipart slots a request may carry, in order.
var imageFields = []string{"image1", "image2", "image3", "image4"}

// parsePlantForm coerces the multipart form of an add request into a
// typed input: string→number for price/rating/stockQuantity, the
// literal "true" for popular. Missing optional numerics default to 0.
func parsePlantForm(c *gin.Context) (domain.PlantInput, error) {
	var in domain.PlantInput

	in.Name = c.PostForm("name")
	in.Description = c.PostForm("description")
	in.Category = c.PostForm("category")

	price, err := parseFloatField(c.PostForm("price"), "price", true)
	if err != nil {
		return in, err
	}
	in.Price = price

	rating, err := parseFloatField(c.PostForm("rating"), "rating", false)
	if err != nil {
		return in, err
	}
	in.Rating = rating

	stock, err := parseIntField(c.PostForm("stockQuantity"), "stockQuantity")
	if err != nil {
		return in, err
	}
	in.StockQuantity = stock

	in.Popular = c.PostForm("popular") == "true"
	in.Care = parseCareForm(c)

	return in, nil
}

// parsePlantUpdateForm builds a partial update: only fields present in
// the form (and non-empty, for the string-valued ones) are applied.
func parsePlantUpdateForm(c *gin.Context) (domain.PlantUpdate, error) {
	var upd domain.PlantUpdate

	if v, ok := c.GetPostForm("name"); ok && v != "" {
		upd.Name = &v
	}
	if v, ok := c.GetPostForm("description"); ok && v != "" {
		upd.Description = &v
	}
	if v, ok := c.GetPostForm("category"); ok && v != "" {
		upd.Category = &v
	}
	if v, ok := c.GetPostForm("price"); ok && v != "" {
		price, err := parseFloatField(v, "price", true)
		if err != nil {
			return upd, err
		}
		upd.Price = &price
	}
	if v, ok := c.GetPostForm("rating"); ok && v != "" {
		rating, err := parseFloatField(v, "rating", false)
		if err != nil {
			return upd, err
		}
		upd.Rating = &rating
	}
	if v, ok := c.GetPostForm("stockQuantity"); ok {
		stock, err := parseIntField(v, "stockQuantity")
		if err != nil {
			return upd, err
		}
		upd.StockQuantity = &stock
	}
	if v, ok := c.GetPostForm("popular"); ok {
		popular := v == "true"
		upd.Popular = &popular
	}
	if care := parseCareForm(c); care != (domain.Care{}) {
		upd.Care = &care
	}

	return upd, nil
}

func parseCareForm(c *gin.Context) domain.Care {
	m := c.PostFormMap("care")
	return domain.Care{
		Water:      m["water"],
		Light:      m["light"],
		Difficulty: m["difficulty"],
	}
}

func parseFloatField(raw, field string, required bool) (float64, error) {
	if raw == "" {
		if required {
			return 0, fmt.Errorf("%w: %s is required", domain.ErrValidation, field)
		}
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrValidation, field)
	}
	return v, nil
}

func parseIntField(raw, field string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrValidation, field)
	}
	return v, nil
}

// saveImageFiles writes the request's image slots to the upload dir
// and returns their paths in slot order. The temp files are the upload
// pipeline's input; the image store removes them after transfer.
func saveImageFiles(c *gin.Context, cfg *config.AppConfig) ([]string, error) {
	var paths []string

	for _, field := range imageFields {
		file, err := c.FormFile(field)
		if err != nil {
			continue // slot not supplied
		}

		if file.Size > cfg.MaxUploadSize {
			return nil, fmt.Errorf("%w: %s exceeds the size limit", domain.ErrValidation, field)
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !formatAllowed(ext, cfg.AllowedFormats) {
			return nil, fmt.Errorf("%w: %s has an unsupported format", domain.ErrValidation, field)
		}

		dest := filepath.Join(cfg.UploadDir, uuid.New().String()+ext)
		if err := c.SaveUploadedFile(file, dest); err != nil {
			return nil, fmt.Errorf("failed to save uploaded file: %w", err)
		}
		paths = append(paths, dest)
	}

	return paths, nil
}

func formatAllowed(ext string, allowed []string) bool {
	for _, a := range allowed {
		if ext == a {
			return true
		}
	}
	return false
}
