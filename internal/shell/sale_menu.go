package shell

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go-pos-terminal/internal/middleware"
	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/service"

	"github.com/shopspring/decimal"
)

// processSale runs one cart from first scan to commit or cancel.
// Any line that is not a menu option is treated as a barcode.
func (s *Shell) processSale(ctx context.Context) error {
	cart := service.NewCart()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.clear()
		s.header("PROCESS SALE")
		s.showCart(cart)

		if cart.IsEmpty() {
			s.println("2. Finalize sale (no items)")
		} else {
			s.println("1. Remove product from sale")
			s.println("2. Finalize sale")
		}
		s.println("3. Cancel sale")
		s.println("4. Add product by ID")
		s.println("\nScan barcode to add product...")

		input, err := s.prompt("\nEnter barcode or option number: ")
		if err != nil {
			return err
		}
		input = strings.TrimSpace(input)

		switch {
		case input == "1" && !cart.IsEmpty():
			if err := s.removeFromCart(cart); err != nil {
				return err
			}
		case input == "2":
			done, err := s.finalizeSale(ctx, cart)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		case input == "3":
			ok, err := s.confirm("Are you sure you want to cancel this sale? (y/n): ")
			if err != nil {
				return err
			}
			if ok {
				s.println("Sale canceled.")
				return nil
			}
		case input == "4":
			if err := s.addToCartByID(ctx, cart); err != nil {
				return err
			}
		case input != "":
			_, err := s.svc.Sales.AddByBarcode(ctx, cart, input)
			if errors.Is(err, service.ErrNotFound) {
				s.println("\nProduct not found. Please try again.")
			} else if err != nil {
				s.printf("\nError: %v\n", err)
			}
		}
	}
}

func (s *Shell) showCart(cart *service.Cart) {
	if cart.IsEmpty() {
		s.printf("\nNo items in current sale.\n\n")
		return
	}
	s.println("\nID  Product Name          Price     Qty     Subtotal")
	s.println(rule(52))
	for _, l := range cart.Lines() {
		s.printf("%-3d %-20s %8s %8d %10s\n", l.ProductID, l.Name, money(l.Price), l.Quantity, money(l.Subtotal()))
	}
	s.println(rule(52))
	s.printf("Total: %42s\n\n", money(cart.Total()))
}

func (s *Shell) removeFromCart(cart *service.Cart) error {
	s.println("\nCurrent Sale Items:")
	lines := cart.Lines()
	for i, l := range lines {
		s.printf("%d. %s - %d x %s\n", i+1, l.Name, l.Quantity, money(l.Price))
	}

	choice, err := s.promptInt("\nEnter item number to remove (0 to cancel): ")
	if errors.Is(err, errInvalidNumber) {
		s.println("Invalid input.")
		return s.pause()
	}
	if err != nil || choice == 0 {
		return err
	}
	if choice < 1 || choice > len(lines) {
		s.println("Invalid item number.")
		return s.pause()
	}

	line := lines[choice-1]
	qty, err := s.promptInt("Enter quantity to remove (current: " + strconv.Itoa(line.Quantity) + "): ")
	if errors.Is(err, errInvalidNumber) {
		s.println("Invalid input.")
		return s.pause()
	}
	if err != nil {
		return err
	}

	switch {
	case qty <= 0:
		s.println("Quantity must be positive.")
	case qty > line.Quantity:
		s.println("Cannot remove more than current quantity.")
	default:
		if err := cart.RemoveLine(choice-1, qty); err != nil {
			return err
		}
		s.println("Item quantity updated.")
	}
	return s.pause()
}

func (s *Shell) addToCartByID(ctx context.Context, cart *service.Cart) error {
	product, err := s.pickProduct(ctx, "\nEnter product ID to add (0 to cancel): ")
	if err != nil {
		return err
	}
	if product == nil {
		return s.pause()
	}

	qty, err := s.promptInt("Enter quantity for " + product.Name + " (available: " + strconv.Itoa(product.Stock) + "): ")
	if errors.Is(err, errInvalidNumber) {
		s.println("Invalid quantity.")
		return s.pause()
	}
	if err != nil {
		return err
	}

	_, err = s.svc.Sales.AddByID(ctx, cart, product.ID, qty)
	switch {
	case errors.Is(err, service.ErrInvalidQuantity):
		s.println("Quantity must be positive.")
	case errors.Is(err, service.ErrInsufficientStock):
		s.println("Not enough stock available.")
	case err != nil:
		return err
	default:
		s.printf("Added %d x %s to sale.\n", qty, product.Name)
	}
	return s.pause()
}

// finalizeSale collects customer and payment and commits the cart. It
// reports done when the sale screen should close.
func (s *Shell) finalizeSale(ctx context.Context, cart *service.Cart) (bool, error) {
	if cart.IsEmpty() {
		s.println("No items in current sale to finalize.")
		return false, s.pause()
	}
	session, ok := middleware.SessionFrom(ctx)
	if !ok {
		return false, middleware.ErrUnauthenticated
	}

	sel, err := s.selectCustomerFor(ctx)
	if err != nil {
		return false, err
	}
	cart.SelectCustomer(sel)

	total := cart.Total()
	s.printf("\nTotal Amount: %s\n", money(total))

	var paid decimal.Decimal
	for {
		text, err := s.prompt("Enter amount paid: ")
		if err != nil {
			return false, err
		}
		paid, err = decimal.NewFromString(strings.TrimSpace(text))
		if err != nil {
			s.println("Invalid amount. Please enter a valid number.")
			continue
		}
		change, err := service.ValidatePayment(total, paid)
		if errors.Is(err, service.ErrInvalidAmount) {
			s.println("Invalid amount. Amount paid cannot be negative.")
			continue
		}
		if err != nil {
			s.println("Amount paid cannot be less than total.")
			continue
		}
		s.printf("Change: %s\n", money(change))
		break
	}

	method, err := s.prompt("Payment method (cash/card): ")
	if err != nil {
		return false, err
	}
	ok, err = s.confirm("Confirm sale? (y/n): ")
	if err != nil {
		return false, err
	}
	if !ok {
		// the cart stays open for changes or another attempt
		s.println("Sale canceled.")
		return false, s.pause()
	}

	receipt, err := s.svc.Sales.Finalize(ctx, cart, service.FinalizeRequest{
		Cashier:    session,
		AmountPaid: paid,
		Method:     model.ParsePaymentMethod(method),
	})
	if err != nil {
		if errors.Is(err, service.ErrInsufficientStock) || errors.Is(err, service.ErrNotFound) ||
			errors.Is(err, service.ErrValidation) {
			s.printf("\nError: %v\nThe sale was not recorded.\n", err)
			return false, s.pause()
		}
		return false, err
	}

	s.println("\nSale completed successfully!")
	s.printf("Sale ID: %d\n", receipt.SaleID)
	s.printf("Total: %s\n", money(receipt.Total))
	s.printf("Paid: %s\n", money(receipt.Paid))
	s.printf("Change: %s\n", money(receipt.Change))
	if receipt.CustomerFallback {
		s.println("Note: the selected customer no longer exists; sale recorded without a customer.")
	}
	return true, s.pause()
}

func (s *Shell) selectCustomerFor(ctx context.Context) (service.CustomerSelection, error) {
	none := service.CustomerSelection{Mode: service.CustomerNone}

	s.println("\nCustomer Options:")
	s.println("1. New customer")
	s.println("2. Existing customer")
	s.println("3. No customer")

	choice, err := s.promptInt("Enter choice (1-3): ")
	if errors.Is(err, errInvalidNumber) {
		s.println("Invalid input. Defaulting to no customer.")
		return none, nil
	}
	if err != nil {
		return none, err
	}

	switch choice {
	case 1:
		c, err := s.readNewCustomer()
		if err != nil {
			return none, err
		}
		if c == nil {
			return none, nil
		}
		return service.CustomerSelection{Mode: service.CustomerNew, New: c}, nil
	case 2:
		return s.pickExistingCustomer(ctx)
	case 3:
		return none, nil
	default:
		s.println("Invalid choice. Defaulting to no customer.")
		return none, nil
	}
}

// readNewCustomer collects details for a customer saved with the sale
func (s *Shell) readNewCustomer() (*model.Customer, error) {
	s.clear()
	s.header("ADD NEW CUSTOMER")
	c, err := s.readCustomerFields("Customer Name: ", "Phone (optional): ", "Email (optional): ", "Address (optional): ")
	if err != nil {
		return nil, err
	}
	if c.Name == "" {
		s.println("Customer name cannot be empty. Defaulting to no customer.")
		return nil, nil
	}
	return c, nil
}

func (s *Shell) readCustomerFields(labels ...string) (*model.Customer, error) {
	values := make([]string, len(labels))
	for i, l := range labels {
		v, err := s.prompt(l)
		if err != nil {
			return nil, err
		}
		values[i] = strings.TrimSpace(v)
	}
	c := &model.Customer{
		Name:    values[0],
		Phone:   &values[1],
		Email:   &values[2],
		Address: &values[3],
	}
	service.NormalizeCustomer(c)
	return c, nil
}

func (s *Shell) pickExistingCustomer(ctx context.Context) (service.CustomerSelection, error) {
	none := service.CustomerSelection{Mode: service.CustomerNone}

	s.clear()
	s.header("SELECT CUSTOMER")
	customers, err := s.svc.Customers.GetAllCustomers(ctx)
	if err != nil {
		return none, err
	}
	if len(customers) == 0 {
		s.println("\nNo customers found.")
		return none, s.pause()
	}

	s.println("\nID  Name                 Phone")
	s.println(rule(38))
	for _, c := range customers {
		s.printf("%-3d %-20s %s\n", c.ID, c.Name, model.Display(c.Phone))
	}

	id, err := s.promptInt("\nEnter customer ID (0 to cancel): ")
	if errors.Is(err, errInvalidNumber) {
		s.println("Invalid customer ID.")
		return none, s.pause()
	}
	if err != nil || id == 0 {
		return none, err
	}
	for _, c := range customers {
		if c.ID == uint(id) {
			return service.CustomerSelection{Mode: service.CustomerExisting, ID: c.ID}, nil
		}
	}
	s.println("Customer not found.")
	return none, s.pause()
}
