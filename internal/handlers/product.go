package handlers

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/princy-boutique/storefront/internal/apperr"
	"github.com/princy-boutique/storefront/internal/i18n"
	"github.com/princy-boutique/storefront/internal/services"
	"github.com/princy-boutique/storefront/internal/utils"
)

const imagesField = "images"

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	listing, err := h.productService.ListProducts(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	utils.SetPaginationHeaders(c, listing)
	c.JSON(http.StatusOK, listing)
}

// GET /products/search?q=
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	results, err := h.productService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, apperr.NotFound("Product not found"))
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	input, err := bindProductInput(c)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// PUT /products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, apperr.NotFound("Product not found"))
		return
	}

	input, err := bindProductInput(c)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// DELETE /products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponse(c, apperr.NotFound("Product not found"))
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		utils.ErrorResponse(c, err)
		return
	}
	utils.TranslatedMessage(c, http.StatusOK, i18n.KeyProductDeleted)
}

// bindProductInput accepts multipart forms with an "images" file field, or
// a JSON body without images.
func bindProductInput(c *gin.Context) (*services.ProductInput, error) {
	if c.ContentType() == gin.MIMEJSON {
		var input services.ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			return nil, apperr.Validation("Invalid product payload")
		}
		return &input, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, apperr.Validation("Invalid multipart form")
	}
	return productInputFromForm(form)
}

func productInputFromForm(form *multipart.Form) (*services.ProductInput, error) {
	value := func(key string) *string {
		values, ok := form.Value[key]
		if !ok || len(values) == 0 {
			return nil
		}
		v := values[0]
		return &v
	}

	input := &services.ProductInput{
		Name:        value("name"),
		Category:    value("category"),
		Description: value("description"),
		Fabric:      value("fabric"),
		Work:        value("work"),
		Occasion:    value("occasion"),
		Fit:         value("fit"),
		CustomNote:  value("customNote"),
		ReadyMade:   formBool(value("readyMade")),
		Featured:    formBool(value("featured")),
	}

	if raw := value("price"); raw != nil {
		price, err := strconv.ParseFloat(strings.TrimSpace(*raw), 64)
		if err != nil {
			return nil, apperr.Validation("price must be a number")
		}
		input.Price = &price
	}

	var err error
	if input.Sizes, err = formList(value("sizes"), "sizes"); err != nil {
		return nil, err
	}
	if input.Colors, err = formList(value("colors"), "colors"); err != nil {
		return nil, err
	}

	for _, fh := range form.File[imagesField] {
		input.Images = append(input.Images, services.ImageUpload{
			Filename: fh.Filename,
			Size:     fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}

	return input, nil
}

// formBool treats only "true" as true.
func formBool(raw *string) *bool {
	if raw == nil {
		return nil
	}
	v := strings.TrimSpace(*raw) == "true"
	return &v
}

// formList decodes a JSON array field such as sizes=["S","M"].
func formList(raw *string, field string) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return []string{}, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(trimmed), &list); err != nil {
		return nil, apperr.Validation(field + " must be a JSON array of strings")
	}
	return list, nil
}
