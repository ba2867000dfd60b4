package store

import (
	"svitlo/internal/domain/cart"
	"svitlo/internal/domain/catalog"
	"svitlo/internal/domain/orders"
	"svitlo/internal/domain/users"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Storage wires the domain repositories onto one connection pool. The cart
// aggregator and order log are constructed over their store ports here, so
// swapping the backing store never touches handler code.
type Storage struct {
	Catalog *catalog.Repository
	Cart    *cart.Aggregator
	Orders  *orders.Log
	Users   *users.Repository
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Catalog: catalog.NewRepository(db),
		Cart:    cart.NewAggregator(cart.NewPgStore(db)),
		Orders:  orders.NewLog(orders.NewPgStore(db)),
		Users:   users.NewRepository(db),
	}
}
