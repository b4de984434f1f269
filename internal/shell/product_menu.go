package shell

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/service"

	"github.com/shopspring/decimal"
)

func (s *Shell) productMenu(ctx context.Context) error {
	return s.menu(ctx, "PRODUCT MANAGEMENT", []menuItem{
		{"Add Product with barcode", s.addProduct},
		{"View Products", s.viewProducts},
		{"Update Product", s.updateProduct},
		{"Delete Product", s.deleteProduct},
		{label: "Back to Main Menu"},
	}, "", nil)
}

func (s *Shell) addProduct(ctx context.Context) error {
	s.clear()
	s.header("ADD PRODUCT")

	barcode, err := s.prompt("Barcode (leave empty if none): ")
	if err != nil {
		return err
	}
	name, err := s.prompt("Product Name: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		s.println("Product name cannot be empty!")
		return s.pause()
	}

	priceText, err := s.prompt("Price: ")
	if err != nil {
		return err
	}
	price, perr := decimal.NewFromString(strings.TrimSpace(priceText))
	if perr == nil && !price.IsPositive() {
		s.println("Price must be positive!")
		return s.pause()
	}

	stockText, err := s.prompt("Stock: ")
	if err != nil {
		return err
	}
	stock, serr := strconv.Atoi(strings.TrimSpace(stockText))
	if perr != nil || serr != nil {
		s.println("Error: Invalid input for price or stock.")
		return s.pause()
	}
	if stock < 0 {
		s.println("Stock cannot be negative!")
		return s.pause()
	}

	product := &model.Product{Name: name, Price: price, Stock: stock}
	if b := strings.TrimSpace(barcode); b != "" {
		product.Barcode = &b
	}

	switch err := s.svc.Products.CreateProduct(ctx, product); {
	case errors.Is(err, service.ErrDuplicateKey):
		s.println("Error: Barcode already exists.")
	case err != nil:
		return err
	default:
		s.printf("\nProduct '%s' added successfully!\n", name)
	}
	return s.pause()
}

func (s *Shell) listProducts(ctx context.Context) error {
	products, err := s.svc.Products.GetAllProducts(ctx)
	if err != nil {
		return err
	}
	WriteProducts(s.out, products)
	return nil
}

func (s *Shell) viewProducts(ctx context.Context) error {
	s.clear()
	s.header("PRODUCT LIST")
	if err := s.listProducts(ctx); err != nil {
		return err
	}
	return s.pause()
}

// pickProduct asks for a product ID. It returns nil when the user cancels
// or the product does not exist, after telling them so.
func (s *Shell) pickProduct(ctx context.Context, label string) (*model.Product, error) {
	id, err := s.promptInt(label)
	if errors.Is(err, errInvalidNumber) {
		s.println("Error: Invalid product ID.")
		return nil, nil
	}
	if err != nil || id == 0 {
		return nil, err
	}
	product, err := s.svc.Products.GetProductByID(ctx, uint(id))
	if errors.Is(err, service.ErrNotFound) {
		s.println("Product not found.")
		return nil, nil
	}
	return product, err
}

func (s *Shell) updateProduct(ctx context.Context) error {
	s.clear()
	s.header("UPDATE PRODUCT")
	if err := s.listProducts(ctx); err != nil {
		return err
	}

	product, err := s.pickProduct(ctx, "\nEnter product ID to update (0 to cancel): ")
	if err != nil {
		return err
	}
	if product == nil {
		return s.pause()
	}

	s.printf("\nCurrent details for %s:\n", product.Name)
	s.printf("Barcode: %s\n", product.BarcodeOrNA())
	s.printf("Price: %s\n", money(product.Price))
	s.printf("Stock: %d\n", product.Stock)

	barcode, err := s.prompt("\nNew barcode (current: " + product.BarcodeOrNA() + ", leave empty to keep, N/A to remove): ")
	if err != nil {
		return err
	}
	name, err := s.prompt("New name (current: " + product.Name + ", leave empty to keep): ")
	if err != nil {
		return err
	}
	priceText, err := s.prompt("New price (current: " + money(product.Price) + ", leave empty to keep): ")
	if err != nil {
		return err
	}
	stockText, err := s.prompt("New stock (current: " + strconv.Itoa(product.Stock) + ", leave empty to keep): ")
	if err != nil {
		return err
	}

	var req service.ProductUpdate
	if b := strings.TrimSpace(barcode); b != "" {
		if strings.EqualFold(b, "N/A") {
			b = ""
		}
		req.Barcode = &b
	}
	if n := strings.TrimSpace(name); n != "" {
		req.Name = &n
	}
	if p := strings.TrimSpace(priceText); p != "" {
		price, err := decimal.NewFromString(p)
		if err != nil {
			s.println("Error: Invalid input for price or stock.")
			return s.pause()
		}
		req.Price = &price
	}
	if st := strings.TrimSpace(stockText); st != "" {
		stock, err := strconv.Atoi(st)
		if err != nil {
			s.println("Error: Invalid input for price or stock.")
			return s.pause()
		}
		req.Stock = &stock
	}

	changed, err := s.svc.Products.UpdateProduct(ctx, product.ID, &req)
	switch {
	case errors.Is(err, service.ErrDuplicateKey):
		s.println("Error: Barcode already exists.")
	case err != nil:
		return err
	case changed:
		s.println("\nProduct updated successfully!")
	default:
		s.println("\nNo changes made.")
	}
	return s.pause()
}

func (s *Shell) deleteProduct(ctx context.Context) error {
	s.clear()
	s.header("DELETE PRODUCT")
	if err := s.listProducts(ctx); err != nil {
		return err
	}

	product, err := s.pickProduct(ctx, "\nEnter product ID to delete (0 to cancel): ")
	if err != nil {
		return err
	}
	if product != nil {
		ok, err := s.confirm("Are you sure you want to delete '" + product.Name + "'? (y/n): ")
		if err != nil {
			return err
		}
		if !ok {
			s.println("Deletion canceled.")
			return s.pause()
		}
		if err := s.svc.Products.DeleteProduct(ctx, product.ID); err != nil {
			return err
		}
		s.println("Product deleted successfully!")
	}
	return s.pause()
}
