package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"github.com/vasanthreddy12/e-commerce/models"
	"github.com/vasanthreddy12/e-commerce/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockLine is a quantity of one product moving in or out of stock.
type StockLine struct {
	ProductID primitive.ObjectID
	Quantity  int
}

func linesOf(items []models.OrderItem) []StockLine {
	lines := make([]StockLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, StockLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return lines
}

// Inventory moves product stock. Every move is a single-document update.
type Inventory struct {
	products repositories.ProductRepository
}

func NewInventory(products repositories.ProductRepository) *Inventory {
	return &Inventory{products: products}
}

// Reserve takes every line or none: when one decrement fails the lines already
// taken are put back before the error is returned.
func (inv *Inventory) Reserve(ctx context.Context, lines []StockLine) error {
	taken := make([]StockLine, 0, len(lines))
	for _, line := range lines {
		err := inv.products.DecrementStock(ctx, line.ProductID, line.Quantity)
		if err == nil {
			taken = append(taken, line)
			continue
		}

		detached, cancel := detachedContext(ctx)
		inv.Release(detached, taken)
		cancel()

		switch {
		case errors.Is(err, repositories.ErrInsufficientStock):
			return fmt.Errorf("%w: product %s", ErrInsufficientStock, line.ProductID.Hex())
		case errors.Is(err, repositories.ErrNotFound):
			return fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID.Hex())
		default:
			return fmt.Errorf("%w: decrement stock: %v", ErrServerFault, err)
		}
	}
	return nil
}

// Release puts stock back and returns the lines it actually restored. Products
// that no longer exist are skipped; other failures are logged and joined.
func (inv *Inventory) Release(ctx context.Context, lines []StockLine) ([]StockLine, error) {
	restored := make([]StockLine, 0, len(lines))
	var errs []error
	for _, line := range lines {
		err := inv.products.IncrementStock(ctx, line.ProductID, line.Quantity)
		switch {
		case err == nil:
			restored = append(restored, line)
		case errors.Is(err, repositories.ErrNotFound):
			log.Warnw("skipping stock restore for missing product", "product", line.ProductID.Hex())
		default:
			log.Errorw("stock restore failed", "product", line.ProductID.Hex(), "quantity", line.Quantity, "error", err)
			errs = append(errs, err)
		}
	}
	return restored, errors.Join(errs...)
}

// Reclaim takes back stock that was released by an operation that then could
// not be persisted. It does not roll itself back; failures are logged.
func (inv *Inventory) Reclaim(ctx context.Context, lines []StockLine) {
	for _, line := range lines {
		if err := inv.products.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			log.Errorw("stock reclaim failed", "product", line.ProductID.Hex(), "quantity", line.Quantity, "error", err)
		}
	}
}
