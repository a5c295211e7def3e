package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cookieshop/storefront/api"
	"github.com/cookieshop/storefront/cart"
	"github.com/cookieshop/storefront/gate"
	"github.com/cookieshop/storefront/internal/config"
	errs "github.com/cookieshop/storefront/internal/errors"
	"github.com/cookieshop/storefront/internal/utils"
	"github.com/cookieshop/storefront/notifications"
	"github.com/cookieshop/storefront/session"
	"github.com/cookieshop/storefront/validate"
)

type app struct {
	client  *api.Client
	session *session.Session
	config  config.Config
	log     zerolog.Logger
	out     io.Writer
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	command, rest := args[0], args[1:]

	switch command {
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "logout":
		a.session.Logout()
		fmt.Fprintln(a.out, "Logged out.")
		return nil
	case "whoami":
		return a.whoami()
	case "profile":
		return a.profile(ctx)
	case "profile-update":
		return a.profileUpdate(ctx, rest)
	case "products":
		return a.products(ctx)
	case "product":
		return a.product(ctx, rest)
	case "categories":
		return a.categories(ctx)
	case "cart":
		return a.showCart(ctx)
	case "cart-add":
		return a.cartAdd(ctx, rest)
	case "cart-update":
		return a.cartUpdate(ctx, rest)
	case "cart-remove":
		return a.cartRemove(ctx, rest)
	case "discount":
		return a.discount(ctx, rest)
	case "order-place":
		return a.orderPlace(ctx, rest)
	case "orders":
		return a.orders(ctx)
	case "order-cancel":
		return a.orderCancel(ctx, rest)
	case "notifications":
		return a.notifications(ctx)
	case "notifications-watch":
		return a.notificationsWatch(ctx)
	case "admin-orders":
		return a.adminOrders(ctx)
	case "admin-order-status":
		return a.adminOrderStatus(ctx, rest)
	case "admin-discounts":
		return a.adminDiscounts(ctx)
	case "admin-discount-add":
		return a.adminDiscountAdd(ctx, rest)
	case "admin-discount-remove":
		return a.adminDiscountRemove(ctx, rest)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireAuth gates a screen on any authenticated session.
func (a *app) requireAuth() error {
	if !gate.AnyAuthenticated().Allowed(a.session) {
		return errs.Wrapf(errs.ErrNotAuthenticated, "log in first")
	}
	return nil
}

// requireAdmin gates a screen on the admin role. The decision is recomputed
// from the session on every command, never cached.
func (a *app) requireAdmin() error {
	if !gate.Require(gate.RoleAdmin).Allowed(a.session) {
		return errs.Wrapf(errs.ErrForbidden, "admin role required")
	}
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: register <email> <password> <confirm>")
	}
	email, secret, confirm := args[0], args[1], args[2]

	form := validate.NewForm()
	form.Check("email", validate.Email("email", email))
	form.Check("password", validate.MinLength("password", secret, 6))
	form.Check("confirm", validate.MatchingSecrets(secret, confirm))
	if !form.Valid() {
		return formError(form)
	}

	if err := a.session.Register(ctx, email, secret); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Account created. You can log in now.")
	return nil
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <email> <password>")
	}
	email, secret := args[0], args[1]

	form := validate.NewForm()
	form.Check("email", validate.Email("email", email))
	form.Check("password", validate.Required("password", secret))
	if !form.Valid() {
		return formError(form)
	}

	if err := a.session.Login(ctx, email, secret); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Logged in as %s.\n", a.session.Identity().Email)
	return nil
}

func (a *app) whoami() error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	identity := a.session.Identity()
	fmt.Fprintf(a.out, "#%d %s, roles: %v\n", identity.ID, identity.Email, identity.Roles)
	return nil
}

func (a *app) profile(ctx context.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	user, err := a.client.GetUser(ctx, a.session.Identity().ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s %s <%s>\n", user.FirstName, user.LastName, user.Email)
	fmt.Fprintf(a.out, "Address: %s\nPhone: %s\n", user.Address, user.Phone)
	return nil
}

func (a *app) profileUpdate(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	if len(args) != 5 && len(args) != 6 {
		return fmt.Errorf("usage: profile-update <first> <last> <email> <address> <phone> [password]")
	}
	first, last, email, address, phone := args[0], args[1], args[2], args[3], args[4]

	form := validate.NewForm()
	form.Check("first name", validate.Required("first name", first))
	form.Check("last name", validate.Required("last name", last))
	form.Check("email", validate.Email("email", email))
	if phone != "" {
		form.Check("phone", validate.DigitString("phone", phone, 9))
	}

	update := api.UserUpdate{
		Email:     email,
		FirstName: first,
		LastName:  last,
		Address:   address,
		Phone:     phone,
	}
	if len(args) == 6 {
		form.Check("password", validate.MinLength("password", args[5], 6))
		update.Secret = utils.Ptr(args[5])
	}
	if !form.Valid() {
		return formError(form)
	}

	if _, err := a.client.UpdateUser(ctx, a.session.Identity().ID, update); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

func (a *app) products(ctx context.Context) error {
	products, err := a.client.ListProducts(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Fprintf(a.out, "#%d %-30s %8s zl  (%d in stock)\n", p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
	}
	return nil
}

func (a *app) product(ctx context.Context, args []string) error {
	id, err := parseID(args, "product")
	if err != nil {
		return err
	}
	p, err := a.client.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "#%d %s\n%s\n%s zl, %d in stock\n", p.ID, p.Name, p.Description, p.Price.StringFixed(2), p.Stock)
	if p.Image != "" {
		fmt.Fprintln(a.out, "Image:", a.client.ImageURL(p.Image))
	}
	for _, c := range p.Categories {
		fmt.Fprintln(a.out, "Category:", c.Name)
	}
	return nil
}

func (a *app) categories(ctx context.Context) error {
	categories, err := a.client.ListCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Fprintf(a.out, "#%d %s - %s\n", c.ID, c.Name, c.Description)
	}
	return nil
}

// loadCart fetches the server cart into the local view.
func (a *app) loadCart(ctx context.Context) (*cart.Cart, error) {
	if err := a.requireAuth(); err != nil {
		return nil, err
	}
	view, err := a.client.MyCart(ctx)
	if err != nil {
		return nil, err
	}
	c := cart.New()
	c.SetLines(view.Lines())
	return c, nil
}

func (a *app) showCart(ctx context.Context) error {
	c, err := a.loadCart(ctx)
	if err != nil {
		return err
	}
	a.printCart(c)
	return nil
}

func (a *app) printCart(c *cart.Cart) {
	if c.Empty() {
		fmt.Fprintln(a.out, "Your cart is empty.")
		return
	}
	for _, line := range c.Lines() {
		fmt.Fprintf(a.out, "#%d %-30s %d x %s = %s zl\n",
			line.ProductID, line.Name, line.Quantity, line.UnitPrice.StringFixed(2), line.Total().StringFixed(2))
	}
	if d := c.ActiveDiscount(); d != nil {
		fmt.Fprintf(a.out, "Discount %s applied.\n", d.Code)
	}
	fmt.Fprintf(a.out, "Total: %s zl\n", c.Total().StringFixed(2))
}

func (a *app) cartAdd(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	productID, quantity, err := parseIDAndQuantity(args, "cart-add")
	if err != nil {
		return err
	}
	view, err := a.client.AddToCart(ctx, productID, quantity)
	if err != nil {
		return err
	}
	c := cart.New()
	c.SetLines(view.Lines())
	a.printCart(c)
	return nil
}

func (a *app) cartUpdate(ctx context.Context, args []string) error {
	productID, quantity, err := parseIDAndQuantity(args, "cart-update")
	if err != nil {
		return err
	}

	c, err := a.loadCart(ctx)
	if err != nil {
		return err
	}
	// Bounds are checked before anything goes on the wire.
	if err := c.CheckQuantity(productID, quantity); err != nil {
		return err
	}

	view, err := a.client.UpdateCartItem(ctx, productID, quantity)
	if err != nil {
		return err
	}
	c.SetLines(view.Lines())
	a.printCart(c)
	return nil
}

func (a *app) cartRemove(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	productID, err := parseID(args, "cart-remove")
	if err != nil {
		return err
	}
	view, err := a.client.RemoveFromCart(ctx, productID)
	if err != nil {
		return err
	}
	c := cart.New()
	c.SetLines(view.Lines())
	a.printCart(c)
	return nil
}

func (a *app) discount(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: discount <code>")
	}
	if err := validate.Required("discount code", args[0]); err != nil {
		return err
	}

	c, err := a.loadCart(ctx)
	if err != nil {
		return err
	}
	code, err := a.client.LookupDiscountCode(ctx, args[0])
	if err != nil {
		return err
	}
	c.ApplyDiscount(code.Descriptor())
	a.printCart(c)
	return nil
}

func (a *app) orderPlace(ctx context.Context, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return fmt.Errorf("usage: order-place <address> <phone> [discount-code]")
	}
	address, phone := args[0], args[1]

	form := validate.NewForm()
	form.Check("address", validate.Required("address", address))
	form.Check("phone", validate.DigitString("phone", phone, 9))
	if !form.Valid() {
		return formError(form)
	}

	c, err := a.loadCart(ctx)
	if err != nil {
		return err
	}
	if c.Empty() {
		return errs.Wrapf(errs.ErrValidation, "cart is empty")
	}
	if len(args) == 3 {
		code, err := a.client.LookupDiscountCode(ctx, args[2])
		if err != nil {
			return err
		}
		c.ApplyDiscount(code.Descriptor())
	}

	order, err := a.client.PlaceOrder(ctx, address, phone, c.Total())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order #%d placed, total %s zl.\n", order.ID, order.Total.StringFixed(2))
	return nil
}

func (a *app) orders(ctx context.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	orders, err := a.client.MyOrders(ctx)
	if err != nil {
		return err
	}
	a.printOrders(orders)
	return nil
}

func (a *app) orderCancel(ctx context.Context, args []string) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	id, err := parseID(args, "order-cancel")
	if err != nil {
		return err
	}

	orders, err := a.client.MyOrders(ctx)
	if err != nil {
		return err
	}
	for _, order := range orders {
		if order.ID == id {
			cancelled, err := a.client.CancelOrder(ctx, order)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Order #%d is now %s.\n", cancelled.ID, cancelled.Status)
			return nil
		}
	}
	return errs.Wrapf(errs.ErrNotFound, "order %d", id)
}

func (a *app) notifications(ctx context.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	list, err := a.client.ListNotifications(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No new notifications.")
		return nil
	}
	for _, n := range list {
		fmt.Fprintf(a.out, "[%s] %s\n", n.CreatedAt.Format("2006-01-02 15:04"), n.Content)
	}
	return a.client.MarkAllNotificationsRead(ctx)
}

func (a *app) notificationsWatch(ctx context.Context) error {
	if err := a.requireAuth(); err != nil {
		return err
	}
	interval, err := time.ParseDuration(a.config.GetNotificationPollInterval())
	if err != nil {
		return fmt.Errorf("parse NOTIFICATION_POLL_INTERVAL: %w", err)
	}

	poller, err := notifications.NewPoller(a.client, func(list []api.Notification) {
		for _, n := range list {
			fmt.Fprintf(a.out, "[%s] %s\n", n.CreatedAt.Format("2006-01-02 15:04"), n.Content)
		}
	}, notifications.WithInterval(interval), notifications.WithLogger(a.log))
	if err != nil {
		return err
	}

	poller.Start(ctx)
	defer poller.Stop()
	waitForStopSignal()
	return nil
}

func (a *app) adminOrders(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	orders, err := a.client.ListOrders(ctx)
	if err != nil {
		return err
	}
	a.printOrders(orders)
	return nil
}

func (a *app) adminOrderStatus(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: admin-order-status <id> <status>")
	}
	id, err := parseID(args[:1], "admin-order-status")
	if err != nil {
		return err
	}
	order, err := a.client.UpdateOrderStatus(ctx, id, api.OrderStatus(args[1]))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Order #%d is now %s.\n", order.ID, order.Status)
	return nil
}

func (a *app) adminDiscounts(ctx context.Context) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	codes, err := a.client.ListDiscountCodes(ctx)
	if err != nil {
		return err
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i].ID < codes[j].ID })
	for _, code := range codes {
		fmt.Fprintf(a.out, "#%d %-15s %-12s %8s  valid until %s\n",
			code.ID, code.Code, code.Kind, code.Value.String(), code.Expires.Format("2006-01-02"))
	}
	return nil
}

func (a *app) adminDiscountAdd(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	if len(args) != 4 {
		return fmt.Errorf("usage: admin-discount-add <code> <kind> <value> <expiry>")
	}
	codeArg, kindArg, valueArg, expiryArg := args[0], args[1], args[2], args[3]

	form := validate.NewForm()
	form.Check("code", validate.Required("code", codeArg))
	form.Check("value", validate.PositiveNumber("value", valueArg))
	form.Check("expiry", validate.FutureDate("expiry", expiryArg))
	if !form.Valid() {
		return formError(form)
	}

	value, err := decimal.NewFromString(valueArg)
	if err != nil {
		return errs.Wrapf(errs.ErrValidation, "value %q", valueArg)
	}
	expiry, err := time.Parse(validate.DateLayout, expiryArg)
	if err != nil {
		return errs.Wrapf(errs.ErrValidation, "expiry %q", expiryArg)
	}

	created, err := a.client.CreateDiscountCode(ctx, api.NewDiscountCode{
		Code:    codeArg,
		Kind:    cart.DiscountKind(kindArg),
		Value:   value,
		Expires: api.NewDate(expiry),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Discount code %s created (#%d).\n", created.Code, created.ID)
	return nil
}

func (a *app) adminDiscountRemove(ctx context.Context, args []string) error {
	if err := a.requireAdmin(); err != nil {
		return err
	}
	id, err := parseID(args, "admin-discount-remove")
	if err != nil {
		return err
	}
	if err := a.client.DeleteDiscountCode(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Discount code removed.")
	return nil
}

func (a *app) printOrders(orders []api.Order) {
	for _, order := range orders {
		fmt.Fprintf(a.out, "#%d %s %-10s %8s zl\n",
			order.ID, order.PlacedAt.Format("2006-01-02 15:04"), order.Status, order.Total.StringFixed(2))
	}
}

func formError(form *validate.Form) error {
	for field, message := range form.Errors() {
		return errs.Wrapf(errs.ErrValidation, "%s: %s", field, message)
	}
	return errs.ErrValidation
}

func parseID(args []string, command string) (int64, error) {
	if len(args) < 1 {
		return 0, fmt.Errorf("usage: %s <id>", command)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a valid id", command, args[0])
	}
	return id, nil
}

func parseIDAndQuantity(args []string, command string) (int64, int, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("usage: %s <product-id> <quantity>", command)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %q is not a valid id", command, args[0])
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%s: %q is not a valid quantity", command, args[1])
	}
	return id, quantity, nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}
