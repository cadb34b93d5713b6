package controllers

import (
	"bytes"
	"net/http"

	"github.com/Kariqs/amexan-store/crud"
	"github.com/Kariqs/amexan-store/export"
	"github.com/Kariqs/amexan-store/query"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminResource registers the back-office routes of one entity.
type AdminResource interface {
	Register(group *gin.RouterGroup)
}

// Resource exposes a crud.Service over list, search, get, create, update, delete, batch delete and export routes.
type Resource[T any] struct {
	Path    string
	Service *crud.Service[T]
	Logger  *zap.Logger
	// Prepare runs after binding and before every create or update.
	Prepare func(record *T, creating bool) error
	// NoCreate leaves out the POST route.
	NoCreate bool
}

type deleteManyRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

func (r *Resource[T]) Register(group *gin.RouterGroup) {
	g := group.Group("/" + r.Path)
	g.GET("", r.list)
	g.GET("/export", r.export)
	g.GET("/:id", r.get)
	if !r.NoCreate {
		g.POST("", r.create)
	}
	g.POST("/search", r.search)
	g.POST("/delete", r.deleteMany)
	g.PUT("/:id", r.update)
	g.DELETE("/:id", r.delete)
}

func (r *Resource[T]) list(ctx *gin.Context) {
	listing, err := r.Service.List(ctx.Request.Context(), query.FromValues(ctx.Request.URL.Query()))
	if err != nil {
		respondWithServiceError(ctx, r.Logger, r.Service.Label(), err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, listing)
}

// search is list with parameters in a JSON body, where "sort" may be a string or an array.
func (r *Resource[T]) search(ctx *gin.Context) {
	var params map[string]any
	if err := ctx.ShouldBindJSON(&params); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	listing, err := r.Service.List(ctx.Request.Context(), query.FromMap(params))
	if err != nil {
		respondWithServiceError(ctx, r.Logger, r.Service.Label(), err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, listing)
}

func (r *Resource[T]) get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	record, err := r.Service.Get(ctx.Request.Context(), id)
	if err != nil {
		respondWithServiceError(ctx, r.Logger, r.Service.Label(), err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, record)
}

func (r *Resource[T]) create(ctx *gin.Context) {
	record := new(T)
	if err := ctx.ShouldBindJSON(record); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if r.Prepare != nil {
		if err := r.Prepare(record, true); err != nil {
			respondWithServiceError(ctx, r.Logger, r.Service.Label(), err)
			return
		}
	}
	if err := r.Service.Create(ctx.Request.Context(), record); err != nil {
		respondWithServiceError(ctx, r.Logger, r.Service.Label(), err)
		return
	}
	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": r.Service.Label() + " created successfully",
		"data":    record,
	})
}

func (r *Resource[T]) update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	record := new(T)
	if err := ctx.ShouldBindJSON(record); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	if r.Prepare != nil {
		if err := r.Prepare(record, false); err != nil {
			respondWithServiceError(ctx, r.Logger, r.Service.Label(), err)
			return
		}
	}
	if err := r.Service.Update(ctx.Request.Context(), id, record); err != nil {
		respondWithServiceError(ctx, r.Logger, r.Service.Label(), err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": r.Service.Label() + " updated successfully"})
}

func (r *Resource[T]) delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := r.Service.Delete(ctx.Request.Context(), id); err != nil {
		respondWithServiceError(ctx, r.Logger, r.Service.Label(), err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": r.Service.Label() + " deleted successfully"})
}

func (r *Resource[T]) deleteMany(ctx *gin.Context) {
	var req deleteManyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	deleted, err := r.Service.DeleteMany(ctx.Request.Context(), req.IDs)
	if err != nil {
		respondWithServiceError(ctx, r.Logger, r.Service.Label(), err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Selected records deleted successfully",
		"deleted": deleted,
	})
}

func (r *Resource[T]) export(ctx *gin.Context) {
	table, err := r.Service.Export(ctx.Request.Context())
	if err != nil {
		respondWithServiceError(ctx, r.Logger, r.Service.Label(), err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, r.Service.Label(), table); err != nil {
		respondWithServiceError(ctx, r.Logger, r.Service.Label(), err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+r.Path+`.xlsx"`)
	ctx.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
