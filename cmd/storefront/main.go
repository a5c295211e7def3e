package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/cookieshop/storefront/api"
	"github.com/cookieshop/storefront/internal/config"
	"github.com/cookieshop/storefront/session"
	"golang.org/x/oauth2"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	_ = godotenv.Load()
	c := config.New()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(logLevel(c))

	if len(args) == 0 {
		displayAppName(c.GetAppName())
		printUsage()
		return nil
	}

	timeout, err := time.ParseDuration(c.GetRequestTimeout())
	if err != nil {
		return fmt.Errorf("parse REQUEST_TIMEOUT: %w", err)
	}

	// The client needs the session's token and the session needs the
	// client's auth endpoints, so the token source is bound late.
	source := &sessionTokenSource{}
	client := api.New(c.GetBaseURL(), source,
		api.WithLogger(logger),
		api.WithTimeout(timeout),
	)

	sess, err := session.New(client, session.NewFileStore(c.GetTokenFile()), session.WithLogger(logger))
	if err != nil {
		return err
	}
	source.session = sess
	sess.Restore()

	app := &app{
		client:  client,
		session: sess,
		config:  c,
		log:     logger,
		out:     os.Stdout,
	}
	return app.dispatch(context.Background(), args)
}

// sessionTokenSource forwards to the session once it exists.
type sessionTokenSource struct {
	session *session.Session
}

func (s *sessionTokenSource) Token() (*oauth2.Token, error) {
	if s.session == nil {
		return &oauth2.Token{}, nil
	}
	return s.session.TokenSource().Token()
}

func logLevel(c config.Config) zerolog.Level {
	if c.GetEnv() == "DEV" {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func displayAppName(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}

func printUsage() {
	fmt.Print(`Usage: storefront <command> [args]

Account
  register <email> <password> <confirm>
  login <email> <password>
  logout
  whoami
  profile
  profile-update <first> <last> <email> <address> <phone> [password]

Catalog
  products
  product <id>
  categories

Cart
  cart
  cart-add <product-id> <quantity>
  cart-update <product-id> <quantity>
  cart-remove <product-id>
  discount <code>

Orders
  order-place <address> <phone> [discount-code]
  orders
  order-cancel <id>

Notifications
  notifications
  notifications-watch

Admin
  admin-orders
  admin-order-status <id> <NEW|PROCESSING|SHIPPED|DELIVERED|CANCELLED>
  admin-discounts
  admin-discount-add <code> <PERCENTAGE|FIXED_AMOUNT> <value> <expiry YYYY-MM-DD>
  admin-discount-remove <id>
`)
}
