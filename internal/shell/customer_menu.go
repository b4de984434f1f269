package shell

import (
	"context"
	"errors"
	"strings"

	"go-pos-terminal/internal/model"
	"go-pos-terminal/internal/service"
)

func (s *Shell) customerMenu(ctx context.Context) error {
	return s.menu(ctx, "CUSTOMER MANAGEMENT", []menuItem{
		{"Add Customer", s.addCustomer},
		{"View Customers", s.viewCustomers},
		{"Update Customer", s.updateCustomer},
		{"Delete Customer", s.deleteCustomer},
		{label: "Back to Main Menu"},
	}, "", nil)
}

func (s *Shell) addCustomer(ctx context.Context) error {
	s.clear()
	s.header("ADD CUSTOMER")

	c, err := s.readCustomerFields("Name: ", "Phone: ", "Email: ", "Address: ")
	if err != nil {
		return err
	}
	if c.Name == "" {
		s.println("Customer name cannot be empty!")
		return s.pause()
	}
	if err := s.svc.Customers.CreateCustomer(ctx, c); err != nil {
		return err
	}
	s.printf("\nCustomer '%s' added successfully!\n", c.Name)
	return s.pause()
}

func (s *Shell) listCustomers(ctx context.Context) error {
	customers, err := s.svc.Customers.GetAllCustomers(ctx)
	if err != nil {
		return err
	}
	WriteCustomers(s.out, customers)
	return nil
}

func (s *Shell) viewCustomers(ctx context.Context) error {
	s.clear()
	s.header("CUSTOMER LIST")
	if err := s.listCustomers(ctx); err != nil {
		return err
	}
	return s.pause()
}

func (s *Shell) pickCustomer(ctx context.Context, label string) (*model.Customer, error) {
	id, err := s.promptInt(label)
	if errors.Is(err, errInvalidNumber) {
		s.println("Error: Invalid customer ID.")
		return nil, nil
	}
	if err != nil || id == 0 {
		return nil, err
	}
	customer, err := s.svc.Customers.GetCustomerByID(ctx, uint(id))
	if errors.Is(err, service.ErrNotFound) {
		s.println("Customer not found.")
		return nil, nil
	}
	return customer, err
}

// optionalEdit maps an edit prompt answer to an update field: empty keeps
// the value, N/A clears it
func optionalEdit(answer string) *string {
	v := strings.TrimSpace(answer)
	if v == "" {
		return nil
	}
	if strings.EqualFold(v, "N/A") {
		v = ""
	}
	return &v
}

func (s *Shell) updateCustomer(ctx context.Context) error {
	s.clear()
	s.header("UPDATE CUSTOMER")
	if err := s.listCustomers(ctx); err != nil {
		return err
	}

	customer, err := s.pickCustomer(ctx, "\nEnter customer ID to update (0 to cancel): ")
	if err != nil {
		return err
	}
	if customer == nil {
		return s.pause()
	}

	phone, email, address := model.Display(customer.Phone), model.Display(customer.Email), model.Display(customer.Address)
	s.printf("\nCurrent details for %s:\n", customer.Name)
	s.printf("Phone: %s\n", phone)
	s.printf("Email: %s\n", email)
	s.printf("Address: %s\n", address)

	answers := make([]string, 4)
	labels := []string{
		"\nNew name (current: " + customer.Name + ", leave empty to keep): ",
		"New phone (current: " + phone + ", leave empty to keep, N/A to clear): ",
		"New email (current: " + email + ", leave empty to keep, N/A to clear): ",
		"New address (current: " + address + ", leave empty to keep, N/A to clear): ",
	}
	for i, l := range labels {
		if answers[i], err = s.prompt(l); err != nil {
			return err
		}
	}

	req := &service.CustomerUpdate{
		Phone:   optionalEdit(answers[1]),
		Email:   optionalEdit(answers[2]),
		Address: optionalEdit(answers[3]),
	}
	if n := strings.TrimSpace(answers[0]); n != "" {
		req.Name = &n
	}

	changed, err := s.svc.Customers.UpdateCustomer(ctx, customer.ID, req)
	if err != nil {
		return err
	}
	if changed {
		s.println("\nCustomer updated successfully!")
	} else {
		s.println("\nNo changes made.")
	}
	return s.pause()
}

func (s *Shell) deleteCustomer(ctx context.Context) error {
	s.clear()
	s.header("DELETE CUSTOMER")
	if err := s.listCustomers(ctx); err != nil {
		return err
	}

	customer, err := s.pickCustomer(ctx, "\nEnter customer ID to delete (0 to cancel): ")
	if err != nil {
		return err
	}
	if customer == nil {
		return s.pause()
	}

	sales, err := s.svc.Customers.SaleCount(ctx, customer.ID)
	if err != nil {
		return err
	}
	if sales > 0 {
		s.printf("Cannot delete customer '%s' because they have %d associated sales.\n", customer.Name, sales)
		return s.pause()
	}

	ok, err := s.confirm("Are you sure you want to delete '" + customer.Name + "'? (y/n): ")
	if err != nil {
		return err
	}
	if !ok {
		s.println("Deletion canceled.")
		return s.pause()
	}
	if err := s.svc.Customers.DeleteCustomer(ctx, customer.ID); err != nil {
		return err
	}
	s.println("Customer deleted successfully!")
	return s.pause()
}
