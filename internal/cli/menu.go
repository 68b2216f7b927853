package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/namanpradyumn/Online-Shopping-Cart/internal/domain"
	"github.com/namanpradyumn/Online-Shopping-Cart/internal/service"
	"github.com/shopspring/decimal"
)

const banner = `
====================
1. View Products
2. Add New Product
3. Add Item to Cart
4. View Cart
5. Update Quantity in Cart
6. Remove Item from Cart
7. Search Product
8. Checkout
9. Exit
====================`

// Menu is the interactive front end of the shop. All input validation
// happens here before the service is called.
type Menu struct {
	svc      *service.CartService
	in       *bufio.Scanner
	out      io.Writer
	currency string
}

func NewMenu(svc *service.CartService, in io.Reader, out io.Writer, currency string) *Menu {
	return &Menu{
		svc:      svc,
		in:       bufio.NewScanner(in),
		out:      out,
		currency: currency,
	}
}

// Run reads commands until the user exits or input ends. It returns
// ctx.Err() when the context is cancelled between commands.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.println(banner)
		choice, err := m.readLine("Enter choice: ")
		if err != nil {
			return m.endOfInput(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			m.showProducts()
		case "2":
			err = m.addProduct(ctx)
		case "3":
			err = m.addItem(ctx)
		case "4":
			m.showCart()
		case "5":
			err = m.updateQuantity(ctx)
		case "6":
			err = m.removeItem(ctx)
		case "7":
			err = m.search()
		case "8":
			m.checkout(ctx)
		case "9":
			m.println("Exiting... Goodbye!")
			return nil
		default:
			m.println("Invalid choice. Please select between 1-9.")
		}

		if err != nil {
			return m.endOfInput(err)
		}
	}
}

func (m *Menu) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		m.println("Exiting... Goodbye!")
		return nil
	}
	return err
}

func (m *Menu) showProducts() {
	products := m.svc.Products()
	if len(products) == 0 {
		m.println("No products available.")
		return
	}

	m.println("\nAvailable Products:")
	for _, p := range products {
		m.println(m.productDetails(p))
	}
}

func (m *Menu) addProduct(ctx context.Context) error {
	id, err := m.readLine("Enter Product ID: ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		m.println("Product ID cannot be empty.")
		return nil
	}

	name, err := m.readLine("Enter Product Name: ")
	if err != nil {
		return err
	}
	if strings.TrimSpace(name) == "" {
		m.println("Product name cannot be empty.")
		return nil
	}

	priceIn, err := m.readLine("Enter Price: ")
	if err != nil {
		return err
	}
	quantityIn, err := m.readLine("Enter Quantity: ")
	if err != nil {
		return err
	}
	price, priceErr := decimal.NewFromString(strings.TrimSpace(priceIn))
	quantity, quantityErr := strconv.Atoi(strings.TrimSpace(quantityIn))
	if priceErr != nil || quantityErr != nil {
		m.println("Invalid price or quantity.")
		return nil
	}

	kind, err := m.readLine("Enter Type (product/physical/digital) [product]: ")
	if err != nil {
		return err
	}

	var v domain.Variant
	switch domain.Kind(strings.ToLower(strings.TrimSpace(kind))) {
	case "", domain.KindProduct:
	case domain.KindPhysical:
		weightIn, err := m.readLine("Enter Weight (kg): ")
		if err != nil {
			return err
		}
		weight, err := decimal.NewFromString(strings.TrimSpace(weightIn))
		if err != nil {
			m.println("Invalid weight.")
			return nil
		}
		v = domain.Physical{Weight: weight}
	case domain.KindDigital:
		link, err := m.readLine("Enter Download Link: ")
		if err != nil {
			return err
		}
		v = domain.Digital{DownloadLink: strings.TrimSpace(link)}
	default:
		m.printf("Unknown product type %q.\n", strings.TrimSpace(kind))
		return nil
	}

	p, err := domain.NewProduct(id, name, price, quantity, v)
	if err != nil {
		m.println(err.Error())
		return nil
	}
	if err := m.svc.AddProduct(ctx, p); err != nil {
		m.report(err)
		return nil
	}
	m.println("Product added successfully.")
	return nil
}

func (m *Menu) addItem(ctx context.Context) error {
	id, err := m.readLine("Enter Product ID: ")
	if err != nil {
		return err
	}
	quantity, ok, err := m.readPositiveInt("Enter Quantity: ")
	if err != nil || !ok {
		return err
	}

	err = m.svc.AddItem(ctx, strings.TrimSpace(id), quantity)
	var stockErr *domain.InsufficientStockError
	switch {
	case err == nil:
		m.println("Item added to cart.")
	case errors.As(err, &stockErr):
		m.printf("Only %d units available.\n", stockErr.Available)
	case errors.Is(err, domain.ErrProductNotFound):
		m.println("Invalid product ID.")
	default:
		m.report(err)
	}
	return nil
}

func (m *Menu) showCart() {
	items := m.svc.Items()
	if len(items) == 0 {
		m.println("Cart is empty.")
		return
	}

	m.println("\nYour Cart:")
	for _, item := range items {
		m.printf("%s x %d = %s%s\n", item.Product.Name, item.Quantity(), m.currency, item.Subtotal().StringFixed(2))
	}
	m.printf("Grand Total: %s%s\n", m.currency, m.svc.Total().StringFixed(2))
}

func (m *Menu) updateQuantity(ctx context.Context) error {
	id, err := m.readLine("Enter Product ID: ")
	if err != nil {
		return err
	}
	quantity, ok, err := m.readPositiveInt("Enter New Quantity: ")
	if err != nil || !ok {
		return err
	}

	err = m.svc.UpdateQuantity(ctx, strings.TrimSpace(id), quantity)
	var stockErr *domain.InsufficientStockError
	switch {
	case err == nil:
		m.println("Quantity updated.")
	case errors.As(err, &stockErr):
		m.printf("Only %d additional items available.\n", stockErr.Available)
	case errors.Is(err, domain.ErrItemNotFound):
		m.println("Item not found in cart.")
	default:
		m.report(err)
	}
	return nil
}

func (m *Menu) removeItem(ctx context.Context) error {
	id, err := m.readLine("Enter Product ID to Remove: ")
	if err != nil {
		return err
	}
	id = strings.TrimSpace(id)

	if !m.inCart(id) {
		m.println("Item not found in cart.")
		return nil
	}

	answer, err := m.readLine(fmt.Sprintf("Are you sure you want to remove %s? (y/n): ", id))
	if err != nil {
		return err
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		m.println("Cancelled.")
		return nil
	}

	if err := m.svc.RemoveItem(ctx, id); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			m.println("Item not found in cart.")
			return nil
		}
		m.report(err)
		return nil
	}
	m.println("Item removed from cart.")
	return nil
}

func (m *Menu) search() error {
	keyword, err := m.readLine("Enter keyword to search product name: ")
	if err != nil {
		return err
	}

	found := m.svc.Search(keyword)
	if len(found) == 0 {
		m.println("No matching products found.")
		return nil
	}
	m.println("Search Results:")
	for _, p := range found {
		m.println(m.productDetails(p))
	}
	return nil
}

func (m *Menu) checkout(ctx context.Context) {
	m.showCart()

	receipt, err := m.svc.Checkout(ctx)
	if err != nil {
		m.report(err)
	}
	if len(receipt.Lines) > 0 {
		m.printf("Order %s placed on %s.\n", receipt.ID, receipt.CreatedAt.Format("2006-01-02 15:04"))
	}
	m.println("Thank you for shopping with us!")
}

func (m *Menu) productDetails(p *domain.Product) string {
	details := fmt.Sprintf("ID: %s, Name: %s, Price: %s%s, Stock: %d",
		p.ID, p.Name, m.currency, p.Price.StringFixed(2), p.Available())

	switch v := p.Variant.(type) {
	case domain.Physical:
		details += fmt.Sprintf(", Weight: %skg", v.Weight.String())
	case domain.Digital:
		details += fmt.Sprintf(", Download: %s", v.DownloadLink)
	}
	return details
}

func (m *Menu) inCart(productID string) bool {
	for _, item := range m.svc.Items() {
		if item.Product.ID == productID {
			return true
		}
	}
	return false
}

// readPositiveInt reports ok=false after telling the user what was wrong
func (m *Menu) readPositiveInt(prompt string) (int, bool, error) {
	line, err := m.readLine(prompt)
	if err != nil {
		return 0, false, err
	}

	value, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		m.println("Invalid input. Please enter a number.")
		return 0, false, nil
	}
	if value <= 0 {
		m.println("Please enter a positive integer.")
		return 0, false, nil
	}
	return value, true, nil
}

func (m *Menu) readLine(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return m.in.Text(), nil
}

func (m *Menu) report(err error) {
	m.printf("Error: %v\n", err)
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
