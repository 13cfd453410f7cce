package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/kusina/canteen-api/internal/api/metrics"
	"github.com/kusina/canteen-api/internal/core/ports"
)

// Images above this size are rejected before touching object storage.
const maxImageBytes = 5 << 20

type MenuHandler struct {
	menuService ports.MenuService
}

func NewMenuHandler(menuService ports.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// List returns the full catalog, newest first.
//
// @Summary      List menu items
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Success      200   {array}   menuItemResponse
// @Router       /v1/menu [get]
func (h *MenuHandler) List(c echo.Context) error {
	items, err := h.menuService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMenuItemResponses(items))
}

// Get returns a single menu item.
//
// @Summary      Get a menu item
// @Tags         menu
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Menu item id"
// @Success      200   {object}  menuItemResponse
// @Failure      404   {object}  map[string]string
// @Router       /v1/menu/{id} [get]
func (h *MenuHandler) Get(c echo.Context) error {
	item, err := h.menuService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMenuItemResponse(item))
}

// Create adds a catalog entry. The body is a multipart form so an optional
// image file can ride along with the fields.
//
// @Summary      Create a menu item
// @Tags         menu
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name         formData  string  true   "Item name"
// @Param        price        formData  string  true   "Unit price, decimal string"
// @Param        description  formData  string  false  "Item description"
// @Param        image        formData  file    false  "Item image"
// @Success      201   {object}  menuItemResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /v1/menu [post]
func (h *MenuHandler) Create(c echo.Context) error {
	form, price, err := bindMenuForm(c)
	if err != nil {
		return err
	}
	imageBytes, contentType, err := readImageFile(c)
	if err != nil {
		return err
	}

	item, err := h.menuService.Create(c.Request().Context(), ports.CreateMenuItemInput{
		Name:             form.Name,
		Price:            price,
		Description:      form.Description,
		ImageBytes:       imageBytes,
		ImageContentType: contentType,
	})
	if err != nil {
		return err
	}

	metrics.MenuMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toMenuItemResponse(item))
}

// Update replaces the fields of an existing item. Omitting the image file
// keeps the current image.
//
// @Summary      Update a menu item
// @Tags         menu
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id           path      string  true   "Menu item id"
// @Param        name         formData  string  true   "Item name"
// @Param        price        formData  string  true   "Unit price, decimal string"
// @Param        description  formData  string  false  "Item description"
// @Param        image        formData  file    false  "Item image"
// @Success      200   {object}  menuItemResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/menu/{id} [patch]
func (h *MenuHandler) Update(c echo.Context) error {
	form, price, err := bindMenuForm(c)
	if err != nil {
		return err
	}
	imageBytes, contentType, err := readImageFile(c)
	if err != nil {
		return err
	}

	item, err := h.menuService.Update(c.Request().Context(), c.Param("id"), ports.UpdateMenuItemInput{
		Name:             form.Name,
		Price:            price,
		Description:      form.Description,
		ImageBytes:       imageBytes,
		ImageContentType: contentType,
	})
	if err != nil {
		return err
	}

	metrics.MenuMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toMenuItemResponse(item))
}

// Delete removes a catalog entry. Existing orders keep rendering with a
// placeholder name.
//
// @Summary      Delete a menu item
// @Tags         menu
// @Security     BearerAuth
// @Param        id    path      string  true  "Menu item id"
// @Success      204
// @Failure      403   {object}  map[string]string
// @Router       /v1/menu/{id} [delete]
func (h *MenuHandler) Delete(c echo.Context) error {
	if err := h.menuService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.MenuMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func bindMenuForm(c echo.Context) (menuItemForm, decimal.Decimal, error) {
	form := menuItemForm{
		Name:        c.FormValue("name"),
		Price:       c.FormValue("price"),
		Description: c.FormValue("description"),
	}
	if err := c.Validate(&form); err != nil {
		return form, decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil {
		return form, decimal.Zero, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid price %q", form.Price))
	}
	return form, price, nil
}

// readImageFile pulls the optional "image" part out of the multipart form.
// A missing part is fine; a present but unreadable or oversized one is a 400.
func readImageFile(c echo.Context) (data []byte, contentType string, err error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", nil
		}
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	if fh.Size > maxImageBytes {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "image too large")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	defer func(src multipart.File) { _ = src.Close() }(src)

	data, err = io.ReadAll(io.LimitReader(src, maxImageBytes+1))
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid image upload")
	}
	if len(data) > maxImageBytes {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "image too large")
	}

	contentType = fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, contentType, nil
}
