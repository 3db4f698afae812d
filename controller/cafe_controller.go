package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"cafe-api/model"
	"cafe-api/repository"

	"github.com/gin-gonic/gin"
)

// CafeStore is the data access the handlers need.
type CafeStore interface {
	ListAll(ctx context.Context) ([]model.Cafe, error)
	FindByLocation(ctx context.Context, location string) (*model.Cafe, error)
	FindByID(ctx context.Context, id uint) (*model.Cafe, error)
	PickRandom(ctx context.Context) (*model.Cafe, error)
	Insert(ctx context.Context, c *model.Cafe) error
	InsertBatch(ctx context.Context, cafes []model.Cafe) error
	UpdatePrice(ctx context.Context, id uint, price string) (*model.Cafe, error)
	Delete(ctx context.Context, id uint) error
	Ping(ctx context.Context) error
}

type CafeController struct {
	store CafeStore
	// legacy keeps the 200 status on search misses.
	legacy bool
}

func NewCafeController(store CafeStore, legacyStatusCodes bool) *CafeController {
	return &CafeController{store: store, legacy: legacyStatusCodes}
}

func (h *CafeController) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{"columns": cafeColumns})
}

func (h *CafeController) GetAllCafes(c *gin.Context) {
	cafes, err := h.store.ListAll(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cafes": model.NewCafeResponses(cafes)})
}

func (h *CafeController) SearchCafes(c *gin.Context) {
	loc, ok := c.GetQuery("loc")
	if !ok || loc == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "loc query parameter is required"})
		return
	}

	cafe, err := h.store.FindByLocation(c.Request.Context(), loc)
	if errors.Is(err, repository.ErrNotFound) {
		status := http.StatusNotFound
		if h.legacy {
			status = http.StatusOK
		}
		c.JSON(status, gin.H{"error": gin.H{"Not Found": "Sorry we don't have a cafe at that location"}})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewCafeResponse(*cafe))
}

func (h *CafeController) GetRandomCafe(c *gin.Context) {
	cafe, err := h.store.PickRandom(c.Request.Context())
	if errors.Is(err, repository.ErrEmptyStore) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"Not Found": "Sorry there are no cafes yet"}})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewCafeResponse(*cafe))
}

func (h *CafeController) GetCafeByID(c *gin.Context) {
	id, ok := cafeID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no cafe exist with id '%s'", c.Param("id"))})
		return
	}

	cafe, err := h.store.FindByID(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no cafe exist with id '%d'", id)})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewCafeResponse(*cafe))
}

func (h *CafeController) AddCafe(c *gin.Context) {
	var in cafeInput
	if err := c.ShouldBind(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"response": gin.H{"error": err.Error()}})
		return
	}

	cafe, err := in.toCafe()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"response": gin.H{"error": err.Error()}})
		return
	}

	if err := h.store.Insert(c.Request.Context(), &cafe); err != nil {
		if errors.Is(err, repository.ErrDuplicateName) {
			c.JSON(http.StatusConflict, gin.H{"response": gin.H{"error": fmt.Sprintf("a cafe named '%s' already exists", cafe.Name)}})
			return
		}
		h.internalError(c, err)
		return
	}

	log.Printf("Cafe %d (%s) added", cafe.ID, cafe.Name)
	c.JSON(http.StatusOK, gin.H{"response": gin.H{"success": "Successfully added the new cafe."}})
}

func (h *CafeController) UpdatePrice(c *gin.Context) {
	id, ok := cafeID(c)
	if !ok {
		priceNotFound(c)
		return
	}

	price, ok := c.GetQuery("new_price")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"response": gin.H{"error": "new_price query parameter is required"}})
		return
	}

	cafe, err := h.store.UpdatePrice(c.Request.Context(), id, price)
	if errors.Is(err, repository.ErrNotFound) {
		priceNotFound(c)
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewCafeResponse(*cafe))
}

// DeleteCafe expects the caller to be authorized by middleware.
func (h *CafeController) DeleteCafe(c *gin.Context) {
	id, ok := cafeID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no cafe exist with id '%s'", c.Param("id"))})
		return
	}

	err := h.store.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no cafe exist with id '%d'", id)})
		return
	}
	if err != nil {
		h.internalError(c, err)
		return
	}

	log.Printf("Cafe %d deleted", id)
	c.JSON(http.StatusOK, gin.H{"success": "successfully deleted"})
}

func (h *CafeController) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *CafeController) internalError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func cafeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func priceNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"response": gin.H{"error": "Sorry a cafe with that id was not found in the database."}})
}
