package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"futures-testnet-bot/internal/core"
	"futures-testnet-bot/internal/logger"
	"futures-testnet-bot/internal/model"
)

// Trader is the part of the bot the console drives.
type Trader interface {
	IsValidSymbol(symbol string) bool
	Place(ctx context.Context, req model.OrderRequest) (*model.OrderResponse, error)
}

// Console is the interactive menu loop. Orders run one at a time.
type Console struct {
	trader Trader
	in     *bufio.Scanner
	out    io.Writer
}

func New(trader Trader, in io.Reader, out io.Writer) *Console {
	return &Console{
		trader: trader,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run shows the menu until the user exits or input ends.
func (c *Console) Run(ctx context.Context) error {
	for {
		c.println("\n1. Place Market Order\n2. Place Limit Order\n3. Place Stop-Limit Order\n4. Exit")
		choice, err := c.readLine("Select an option: ")
		if err != nil {
			return c.finish(err)
		}

		switch choice {
		case "1":
			err = c.orderFlow(ctx, model.KindMarket)
		case "2":
			err = c.orderFlow(ctx, model.KindLimit)
		case "3":
			err = c.orderFlow(ctx, model.KindStopLimit)
		case "4":
			c.println("Exiting bot.")
			return nil
		default:
			c.println("Invalid choice. Try again.")
		}
		if err != nil {
			return c.finish(err)
		}
	}
}

func (c *Console) finish(err error) error {
	if errors.Is(err, io.EOF) {
		c.println("\nInput closed. Exiting bot.")
		return nil
	}
	return err
}

func (c *Console) orderFlow(ctx context.Context, kind model.OrderKind) error {
	req := model.OrderRequest{Kind: kind}
	var err error

	if req.Symbol, err = c.readSymbol(); err != nil {
		return err
	}
	if req.Side, err = c.readSide(); err != nil {
		return err
	}
	if req.Quantity, err = c.readPositive("Enter quantity: "); err != nil {
		return err
	}

	var summary string
	switch kind {
	case model.KindMarket:
		summary = fmt.Sprintf("MARKET order %s %s %s", req.Side, req.Quantity, req.Symbol)
	case model.KindLimit:
		if req.Price, err = c.readPositive("Enter price: "); err != nil {
			return err
		}
		summary = fmt.Sprintf("LIMIT order %s %s %s @ %s", req.Side, req.Quantity, req.Symbol, req.Price)
	case model.KindStopLimit:
		if req.StopPrice, err = c.readPositive("Enter stop price: "); err != nil {
			return err
		}
		if req.Price, err = c.readPositive("Enter limit price: "); err != nil {
			return err
		}
		summary = fmt.Sprintf("STOP-LIMIT order %s %s %s stop @ %s limit @ %s",
			req.Side, req.Quantity, req.Symbol, req.StopPrice, req.Price)
	}

	answer, err := c.readLine(fmt.Sprintf("Confirm %s? (y/n): ", summary))
	if err != nil {
		return err
	}
	if strings.ToLower(answer) != "y" {
		logger.Info("Order cancelled by user", "kind", kind, "symbol", req.Symbol)
		c.println("Order cancelled.")
		return nil
	}

	resp, err := c.trader.Place(ctx, req)
	c.printOrderResult(resp, err)
	return nil
}

func (c *Console) readSymbol() (string, error) {
	for {
		symbol, err := c.readLine("Enter symbol (e.g., BTCUSDT): ")
		if err != nil {
			return "", err
		}
		symbol = strings.ToUpper(symbol)
		if c.trader.IsValidSymbol(symbol) {
			return symbol, nil
		}
		c.println("Invalid symbol. Please enter a valid symbol supported by Binance Futures.")
	}
}

func (c *Console) readSide() (string, error) {
	for {
		side, err := c.readLine("Enter side (BUY/SELL): ")
		if err != nil {
			return "", err
		}
		side = strings.ToUpper(side)
		if side == string(model.SideBuy) || side == string(model.SideSell) {
			return side, nil
		}
		c.println("Invalid side. Please enter 'BUY' or 'SELL'.")
	}
}

func (c *Console) readPositive(prompt string) (decimal.Decimal, error) {
	for {
		line, err := c.readLine(prompt)
		if err != nil {
			return decimal.Zero, err
		}
		value, err := decimal.NewFromString(line)
		if err != nil {
			c.println("Invalid input. Please enter a number.")
			continue
		}
		if !value.IsPositive() {
			c.println("Value must be positive.")
			continue
		}
		if !core.InRange(value) {
			c.println("Value out of range.")
			continue
		}
		return value, nil
	}
}

func (c *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

func (c *Console) printOrderResult(order *model.OrderResponse, err error) {
	if err != nil {
		c.println("Error: " + err.Error())
		return
	}

	c.println("\nOrder Result:")
	fmt.Fprintf(c.out, "  Order ID:        %d\n", order.OrderId)
	fmt.Fprintf(c.out, "  Symbol:          %s\n", order.Symbol)
	fmt.Fprintf(c.out, "  Side:            %s\n", order.Side)
	fmt.Fprintf(c.out, "  Type:            %s\n", order.Type)
	fmt.Fprintf(c.out, "  Status:          %s\n", order.Status)
	fmt.Fprintf(c.out, "  Quantity:        %s\n", order.OrigQty)
	fmt.Fprintf(c.out, "  Executed Qty:    %s\n", order.ExecutedQty)
	fmt.Fprintf(c.out, "  Price:           %s\n", order.Price)
	fmt.Fprintf(c.out, "  Avg Price:       %s\n", order.AvgPrice)
	if order.Type == string(model.OrderTypeStop) || order.Type == "STOP_MARKET" {
		fmt.Fprintf(c.out, "  Stop Price:      %s\n", order.StopPrice)
	}
	fmt.Fprintf(c.out, "  Time in Force:   %s\n", order.TimeInForce)
	fmt.Fprintf(c.out, "  Client Order ID: %s\n", order.ClientOrderId)
	c.println("")
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}
