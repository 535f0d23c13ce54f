package service

import (
	postgres "github.com/olekhv/aero-go/internal/repository/postgres"
	redis "github.com/olekhv/aero-go/internal/repository/redis"
	redisx "github.com/olekhv/aero-go/internal/redis"
	"github.com/olekhv/aero-go/internal/service/catalog"
	"github.com/olekhv/aero-go/internal/service/flights"
	"github.com/olekhv/aero-go/internal/service/orders"
)

type Services struct {
	Flights *flights.Service
	Orders  *orders.Service
	Catalog *catalog.Service
}

type Config struct {
	Flights flights.Config
	Orders  orders.Config
}

func NewServices(
	store *postgres.Store,
	cache *redis.Cache,
	pubsub *redisx.FlightsPubSub,
	limiter *redis.SlidingWindowLimiter,
	cfg Config,
) *Services {
	return &Services{
		Flights: flights.New(store.Flights(), cache, cfg.Flights),
		Orders:  orders.New(store.Orders(), cache, pubsub, limiter, cfg.Orders),
		Catalog: catalog.New(store, cache, pubsub),
	}
}
