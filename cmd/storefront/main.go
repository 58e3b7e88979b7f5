package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/linemk/flower-delivery/internal/cart"
	"github.com/linemk/flower-delivery/internal/checkout"
	"github.com/linemk/flower-delivery/internal/config"
	"github.com/linemk/flower-delivery/internal/lib/logger"
	"github.com/linemk/flower-delivery/internal/pricing"
	"github.com/linemk/flower-delivery/internal/storefront"
	"github.com/linemk/flower-delivery/internal/validation"
	"github.com/redis/go-redis/v9"
)

const usage = `usage: storefront <command> [args]

commands:
  shops [-search text]            list shops
  products -shop <id>             list products of a shop
  cart show                       show cart with totals
  cart add <product-id> [qty]     add product to cart
  cart set <product-id> <shop-id> <qty>
  cart remove <product-id> <shop-id>
  cart clear
  order -email ... -phone ... -street ... -city ... -district ... -date YYYY-MM-DD
`

func main() {
	// .env необязателен
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return nil
	}

	cfg, err := config.LoadStorefront()
	if err != nil {
		return err
	}
	log := logger.SetupLogger(cfg.Env)

	client := storefront.NewClient(cfg.APIURL, cfg.Timeout)

	switch args[0] {
	case "shops":
		return listShops(ctx, client, args[1:], out)
	case "products":
		return listProducts(ctx, client, args[1:], out)
	}

	storage, closeStorage, err := openCartStorage(cfg.Cart)
	if err != nil {
		return err
	}
	defer closeStorage()

	store, err := cart.Open(ctx, storage, log)
	if err != nil {
		return err
	}

	validator := validation.New(validation.ParseLanguage(cfg.Language), nil)
	builder := checkout.NewBuilder(pricing.NewDeliveryPolicy(cfg.FreeThreshold, cfg.DeliveryFee), nil)
	session := storefront.NewSession(log, client, store, builder, validator)

	switch args[0] {
	case "cart":
		return cartCommand(ctx, session, args[1:], out)
	case "order":
		return placeOrder(ctx, session, validator, args[1:], out)
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

// openCartStorage открывает хранилище корзины по настройкам
func openCartStorage(cfg config.CartConfig) (cart.Storage, func(), error) {
	switch cfg.Backend {
	case config.CartRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return cart.NewRedisStorage(client, cfg.ClientID), func() { _ = client.Close() }, nil
	default:
		storage, err := cart.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return storage, func() { _ = storage.Close() }, nil
	}
}

func listShops(ctx context.Context, client *storefront.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("shops", flag.ContinueOnError)
	search := fs.String("search", "", "search by name or street")
	if err := fs.Parse(args); err != nil {
		return err
	}

	shops, err := client.Shops(ctx, *search)
	if err != nil {
		return err
	}
	for _, shop := range shops {
		fmt.Fprintf(out, "%s  %-30s  %.1f  %s, %s\n", shop.ID, shop.Name, shop.Rating, shop.Address.Street, shop.Address.District)
	}
	return nil
}

func listProducts(ctx context.Context, client *storefront.Client, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("products", flag.ContinueOnError)
	shopID := fs.String("shop", "", "shop id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *shopID == "" {
		return errors.New("products: -shop is required")
	}

	products, err := client.Products(ctx, *shopID)
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Fprintf(out, "%s  %-40s  %8.2f %s  stock %d\n", p.ID, p.Name, p.Price, p.Currency, p.StockQuantity)
	}
	return nil
}

func cartCommand(ctx context.Context, session *storefront.Session, args []string, out io.Writer) error {
	if len(args) == 0 {
		args = []string{"show"}
	}
	store := session.Cart()

	var err error
	switch args[0] {
	case "show":
	case "add":
		if len(args) < 2 {
			return errors.New("cart add: product id is required")
		}
		qty := 1
		if len(args) > 2 {
			if qty, err = strconv.Atoi(args[2]); err != nil {
				return fmt.Errorf("cart add: invalid quantity %q", args[2])
			}
		}
		err = session.AddProduct(ctx, args[1], qty)
	case "set":
		if len(args) < 4 {
			return errors.New("cart set: product id, shop id and quantity are required")
		}
		qty, convErr := strconv.Atoi(args[3])
		if convErr != nil {
			return fmt.Errorf("cart set: invalid quantity %q", args[3])
		}
		err = store.SetQuantity(ctx, args[1], args[2], qty)
	case "remove":
		if len(args) < 3 {
			return errors.New("cart remove: product id and shop id are required")
		}
		err = store.Remove(ctx, args[1], args[2])
	case "clear":
		err = store.Clear(ctx)
	default:
		return fmt.Errorf("unknown cart command %q", args[0])
	}
	if err != nil {
		return err
	}

	printCart(session, out)
	return nil
}

func printCart(session *storefront.Session, out io.Writer) {
	snap := session.Cart().Snapshot()
	if snap.Empty() {
		fmt.Fprintln(out, "cart is empty")
		return
	}
	for _, item := range snap.Items {
		fmt.Fprintf(out, "%s  %-40s  %-25s  %d x %.2f\n", item.ProductID, item.ProductName, item.ShopName, item.Quantity, item.Price)
	}
	totals := session.Quote()
	fmt.Fprintf(out, "items: %d  subtotal: %s  delivery: %s  total: %s\n",
		snap.Count, totals.Subtotal.StringFixed(2), totals.DeliveryFee.StringFixed(2), totals.Total.StringFixed(2))
}

func placeOrder(ctx context.Context, session *storefront.Session, validator *validation.Validator, args []string, out io.Writer) error {
	var form checkout.Form

	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	fs.StringVar(&form.Email, "email", "", "customer email")
	fs.StringVar(&form.Phone, "phone", "", "customer phone, +380XXXXXXXXX")
	fs.StringVar(&form.Name, "name", "", "customer name")
	fs.StringVar(&form.Street, "street", "", "street and building")
	fs.StringVar(&form.City, "city", "Київ", "city")
	fs.StringVar(&form.District, "district", "", "district of Kyiv")
	fs.StringVar(&form.Apartment, "apartment", "", "apartment")
	fs.StringVar(&form.DeliveryDate, "date", "", "delivery date, YYYY-MM-DD")
	fs.StringVar(&form.Notes, "notes", "", "notes for courier")
	if err := fs.Parse(args); err != nil {
		return err
	}

	order, err := session.Submit(ctx, form)

	var formErr *storefront.FormError
	var vErr *validation.ValidationError
	switch {
	case errors.As(err, &formErr):
		for field, message := range formErr.Fields {
			fmt.Fprintf(out, "%s: %s\n", field, message)
		}
		return formErr
	case errors.As(err, &vErr):
		return errors.New(validator.Localize(vErr))
	case err != nil:
		return err
	}

	fmt.Fprintf(out, "order %s accepted, total %.2f %s, status %s\n",
		order.OrderNumber, order.TotalAmount, order.Currency, order.Status)
	return nil
}
