package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sabor/restaurant-orders/internal/core/ports"
)

type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List handles GET /products.
//
// @Summary      List the menu
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   productResponse
// @Failure      500  {object}  errorResponse
// @Router       /products [get]
func (h *CatalogHandler) List(c echo.Context) error {
	products, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]productResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return c.JSON(http.StatusOK, out)
}
