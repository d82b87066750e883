package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/marcomartinez12/playzone/internal/api"
	"github.com/marcomartinez12/playzone/internal/cart"
	"github.com/marcomartinez12/playzone/internal/checkout"
	"github.com/marcomartinez12/playzone/internal/config"
	"github.com/marcomartinez12/playzone/internal/domain"
	"github.com/marcomartinez12/playzone/internal/events"
	"github.com/marcomartinez12/playzone/internal/session"
	"github.com/marcomartinez12/playzone/pkg/logger"
	"github.com/marcomartinez12/playzone/pkg/money"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	zlog := logger.Must(logger.New(cfg.Debug))
	defer func() { _ = zlog.Sync() }()

	sess, err := session.Load(cfg.Session.File)
	if err != nil {
		if errors.Is(err, session.ErrNotLoggedIn) {
			fmt.Fprintf(os.Stderr, "no session at %s, log in first\n", cfg.Session.File)
			os.Exit(1)
		}
		zlog.Fatal("load session", zap.Error(err))
	}

	apiClient := api.NewClient(api.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Tokens:  sess,
	})

	store := cart.NewStore()
	bus := events.NewBus()
	bus.Subscribe(events.EventSaleCreated, func(payload any) {
		if sale, ok := payload.(*domain.Sale); ok {
			fmt.Printf("receipt: %s for %s\n", sale.Code, money.FormatWithDecimals(sale.Total))
		}
	})

	prompter := &terminalPrompter{in: bufio.NewReader(os.Stdin), out: os.Stdout}
	workflow := checkout.NewService(store, apiClient, apiClient, prompter, bus,
		logger.Named(zlog, "checkout"), sess.User.ID)

	desk := &desk{
		api:      apiClient,
		store:    store,
		workflow: workflow,
		prompter: prompter,
		catalog:  make(map[int64]domain.Product),
	}
	desk.loop(context.Background())
}

type desk struct {
	api      *api.Client
	store    *cart.Store
	workflow checkout.Service
	prompter *terminalPrompter
	catalog  map[int64]domain.Product
}

func (d *desk) loop(ctx context.Context) {
	fmt.Printf("playzone pos - logged in, type 'help' for commands\n")

	for {
		fmt.Print("> ")
		line, err := d.prompter.in.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			fmt.Println("products | add <id> | qty <id> <delta> | cart | clear | checkout | quit")
		case "products":
			d.showProducts(ctx)
		case "add":
			d.add(ctx, fields[1:])
		case "qty":
			d.adjust(fields[1:])
		case "cart":
			d.showCart()
		case "clear":
			d.clear()
		case "checkout":
			d.checkout(ctx)
		case "quit", "exit":
			return
		default:
			fmt.Printf("unknown command %q\n", fields[0])
		}
	}
}

func (d *desk) showProducts(ctx context.Context) {
	products, err := d.api.ListProducts(ctx)
	if err != nil {
		fmt.Println(api.UserMessage(err))
		return
	}
	for _, p := range products {
		d.catalog[p.ID] = p
		fmt.Printf("%4d  %-28s %12s  stock %d\n", p.ID, p.Name, money.Format(p.Price), p.Stock)
	}
}

func (d *desk) add(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("usage: add <product-id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("product id must be a number")
		return
	}

	product, ok := d.catalog[id]
	if !ok {
		// the catalog is fetched lazily, try once before giving up
		d.showProducts(ctx)
		if product, ok = d.catalog[id]; !ok {
			fmt.Println("no such product")
			return
		}
	}
	if product.Stock <= 0 {
		fmt.Println("out of stock")
		return
	}

	if err := d.store.AddItem(product.ID, product.Name, product.Price, product.Stock); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("added %s\n", product.Name)
}

func (d *desk) adjust(args []string) {
	if len(args) != 2 {
		fmt.Println("usage: qty <product-id> <delta>")
		return
	}
	id, err1 := strconv.ParseInt(args[0], 10, 64)
	delta, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		fmt.Println("usage: qty <product-id> <delta>")
		return
	}
	if err := d.store.UpdateQuantity(id, delta); err != nil {
		fmt.Println(err)
	}
}

func (d *desk) showCart() {
	snapshot := d.store.Snapshot()
	if snapshot.IsEmpty() {
		fmt.Println("cart is empty")
		return
	}
	for _, line := range snapshot.Lines {
		fmt.Printf("%4d  %-28s x%-3d %12s\n", line.ProductID, line.Name, line.Quantity, money.Format(line.Subtotal()))
	}
	fmt.Printf("total: %s (%d items)\n", money.Format(snapshot.Total), snapshot.TotalItems)
}

func (d *desk) clear() {
	if d.store.IsEmpty() {
		fmt.Println("cart is already empty")
		return
	}
	confirmed, err := d.prompter.confirm("Empty the cart? This cannot be undone [y/N]")
	if err != nil || !confirmed {
		return
	}
	d.store.Clear()
	fmt.Println("cart cleared")
}

func (d *desk) checkout(ctx context.Context) {
	result, err := d.workflow.Run(ctx)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			fmt.Println("add products to the cart before checking out")
		case errors.Is(err, checkout.ErrCheckoutInProgress):
			fmt.Println("finish the current checkout first")
		default:
			fmt.Printf("checkout error: %v\n", err)
		}
		return
	}
	fmt.Println(result.Message)
}
