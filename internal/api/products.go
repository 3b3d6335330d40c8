package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pribylovaa/events-admin-console/internal/gateway"
	"github.com/pribylovaa/events-admin-console/internal/models"
)

const productsPath = "/admin/store/products"

func (c *Client) ListProducts(ctx context.Context, q models.ListQuery) (models.Page[models.Product], error) {
	var page models.Page[models.Product]
	if err := c.call(ctx, http.MethodGet, withQuery(productsPath, q), nil, &page); err != nil {
		return page, fmt.Errorf("internal/api/ListProducts: %w", err)
	}

	return page, nil
}

// CreateProduct создаёт товар. Тело — multipart: часть "product" (JSON)
// и необязательный файл "image".
func (c *Client) CreateProduct(ctx context.Context, in models.ProductInput, img *models.ProductImage) (models.Product, error) {
	const op = "internal/api/CreateProduct"

	var p models.Product
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return p, fmt.Errorf("%s: %w", op, invalid("name is required"))
	}
	if in.Price == nil {
		return p, fmt.Errorf("%s: %w", op, invalid("price is required"))
	}
	if err := validateProduct(in); err != nil {
		return p, fmt.Errorf("%s: %w", op, err)
	}

	form := gateway.NewForm()
	if err := form.JSON("product", in); err != nil {
		return p, fmt.Errorf("%s: %w", op, err)
	}
	if img != nil && len(img.Data) > 0 {
		if err := form.File("image", img.Filename, img.ContentType, img.Data); err != nil {
			return p, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := c.call(ctx, http.MethodPost, productsPath, form, &p); err != nil {
		return p, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

// UpdateProduct меняет только переданные (не nil) поля.
func (c *Client) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (models.Product, error) {
	const op = "internal/api/UpdateProduct"

	var p models.Product
	if err := requireID(id); err != nil {
		return p, fmt.Errorf("%s: %w", op, err)
	}
	if err := validateProduct(in); err != nil {
		return p, fmt.Errorf("%s: %w", op, err)
	}

	if err := c.call(ctx, http.MethodPatch, path(productsPath, id), in, &p); err != nil {
		return p, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	const op = "internal/api/DeleteProduct"

	if err := requireID(id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.call(ctx, http.MethodDelete, path(productsPath, id), nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func validateProduct(in models.ProductInput) error {
	if in.Price != nil && *in.Price < 0 {
		return invalid("price must be >= 0")
	}
	if in.Stock != nil && *in.Stock < 0 {
		return invalid("stock must be >= 0")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return invalid("name must not be blank")
	}

	return nil
}
