package controllers

import (
	"net/http"
	"strconv"

	"github.com/Kariqs/amexan-store/models"
	"github.com/Kariqs/amexan-store/query"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetProducts lists the active catalog, optionally narrowed to one category.
func (h *Handlers) GetProducts(ctx *gin.Context) {
	opts := []query.Option{query.Where(activeOnly)}

	if raw := ctx.Query("category"); raw != "" {
		categoryID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid category")
			return
		}
		opts = append(opts, query.Where(func(db *gorm.DB) *gorm.DB {
			return db.Where("category_id = ?", categoryID)
		}))
	}

	listing, err := h.Products.List(ctx.Request.Context(), query.FromValues(ctx.Request.URL.Query()), opts...)
	if err != nil {
		respondWithServiceError(ctx, h.Logger, h.Products.Label(), err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, listing)
}

func (h *Handlers) GetProduct(ctx *gin.Context) {
	productID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	product, err := h.Products.Get(ctx.Request.Context(), productID, activeOnly)
	if err != nil {
		respondWithServiceError(ctx, h.Logger, h.Products.Label(), err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, product)
}

func (h *Handlers) GetCategories(ctx *gin.Context) {
	var categories []models.Category
	if err := h.DB.WithContext(ctx.Request.Context()).Order("name").Find(&categories).Error; err != nil {
		respondWithServiceError(ctx, h.Logger, h.Categories.Label(), err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"categories": categories})
}

// UploadProductImages stores every file of the "images" form field and links it to the product.
// Files that fail are reported back and do not abort the rest.
func (h *Handlers) UploadProductImages(ctx *gin.Context) {
	if h.Images == nil {
		sendErrorResponse(ctx, http.StatusServiceUnavailable, "Image storage is not configured")
		return
	}
	productID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Invalid form data")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, "No files uploaded")
		return
	}

	if _, err := h.Products.Get(ctx.Request.Context(), productID); err != nil {
		respondWithServiceError(ctx, h.Logger, h.Products.Label(), err)
		return
	}

	uploadedUrls := []string{}
	var failedUploads []string

	for _, file := range files {
		f, err := file.Open()
		if err != nil {
			h.Logger.Warn("failed to open upload", zap.String("file", file.Filename), zap.Error(err))
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		url, err := h.Images.Upload(ctx.Request.Context(), file.Filename, f, file.Header.Get("Content-Type"))
		f.Close()
		if err != nil {
			h.Logger.Warn("failed to upload image", zap.String("file", file.Filename), zap.Error(err))
			failedUploads = append(failedUploads, file.Filename)
			continue
		}

		image := models.ProductImage{Url: url, ProductID: productID}
		if err := h.DB.WithContext(ctx.Request.Context()).Create(&image).Error; err != nil {
			h.Logger.Error("failed to save product image", zap.Uint("product_id", productID), zap.Error(err))
			failedUploads = append(failedUploads, file.Filename)
			continue
		}
		uploadedUrls = append(uploadedUrls, url)
	}

	response := gin.H{
		"message": "Files processed",
		"urls":    uploadedUrls,
	}
	if len(failedUploads) > 0 {
		response["failed"] = failedUploads
	}
	sendJSONResponse(ctx, http.StatusOK, response)
}
