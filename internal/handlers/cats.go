package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charlesng35/catcatalog/internal/services"
	apperrors "github.com/charlesng35/catcatalog/pkg/errors"
	"github.com/charlesng35/catcatalog/pkg/response"
)

// CatHandler exposes CRUD endpoints for cats.
type CatHandler struct {
	svc *services.CatService
}

// NewCatHandler constructs the handler around an initialised cat service.
func NewCatHandler(svc *services.CatService) (*CatHandler, error) {
	if svc == nil {
		return nil, errors.New("cat handler: service is required")
	}
	return &CatHandler{svc: svc}, nil
}

// createCatRequest requires every descriptive key to be present; values may be empty.
type createCatRequest struct {
	ImageURL    *string `json:"image_url" validate:"required"`
	Name        *string `json:"name"`
	Description *string `json:"description" validate:"required"`
	Origin      *string `json:"origin" validate:"required"`
	LifeSpan    *string `json:"life_span" validate:"required"`
	Breed       *string `json:"breed" validate:"required"`
	Favorite    *bool   `json:"favorite"`
}

type updateCatRequest struct {
	ImageURL    *string `json:"image_url"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Origin      *string `json:"origin"`
	LifeSpan    *string `json:"life_span"`
	Breed       *string `json:"breed"`
	Favorite    *bool   `json:"favorite"`
}

// List handles GET /cats
func (h *CatHandler) List(c *gin.Context) {
	cats, err := h.svc.List(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := make([]map[string]any, 0, len(cats))
	for i := range cats {
		payload = append(payload, cats[i].ToMap())
	}

	response.JSON(c, http.StatusOK, payload)
}

// Create handles POST /cats
func (h *CatHandler) Create(c *gin.Context) {
	var body createCatRequest
	if !bindAndValidate(c, &body) {
		return
	}

	input := services.CreateCatInput{
		ImageURL:    deref(body.ImageURL),
		Name:        deref(body.Name),
		Description: deref(body.Description),
		Origin:      deref(body.Origin),
		LifeSpan:    deref(body.LifeSpan),
		Breed:       deref(body.Breed),
	}
	if body.Favorite != nil {
		input.Favorite = *body.Favorite
	}

	cat, err := h.svc.Create(requestContext(c), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusCreated, cat.ToMap())
}

// Get handles GET /cats/:id
func (h *CatHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperrors.ErrCatNotFound)
		return
	}

	cat, err := h.svc.Get(requestContext(c), id)
	if err != nil {
		response.Error(c, mapServiceError(err))
		return
	}

	response.JSON(c, http.StatusOK, cat.ToMap())
}

// Update handles PUT /cats/:id
func (h *CatHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperrors.ErrCatNotFound)
		return
	}

	var body updateCatRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperrors.NewBadRequest("invalid cat payload"))
		return
	}

	cat, err := h.svc.Update(requestContext(c), id, services.UpdateCatInput{
		ImageURL:    body.ImageURL,
		Name:        body.Name,
		Description: body.Description,
		Origin:      body.Origin,
		LifeSpan:    body.LifeSpan,
		Breed:       body.Breed,
		Favorite:    body.Favorite,
	})
	if err != nil {
		response.Error(c, mapServiceError(err))
		return
	}

	response.JSON(c, http.StatusOK, cat.ToMap())
}

// Delete handles DELETE /cats/:id
func (h *CatHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.Error(c, apperrors.ErrCatNotFound)
		return
	}

	if err := h.svc.Delete(requestContext(c), id); err != nil {
		response.Error(c, mapServiceError(err))
		return
	}

	response.NoContent(c)
}

func mapServiceError(err error) error {
	if errors.Is(err, services.ErrCatNotFound) {
		return apperrors.ErrCatNotFound
	}
	return err
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
