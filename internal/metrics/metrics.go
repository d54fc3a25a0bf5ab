package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	StockDecrements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fieldstock_stock_decrements_total",
		Help: "Successful stock deductions by source (use, approval, used_material).",
	}, []string{"source"})

	InsufficientStock = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fieldstock_insufficient_stock_total",
		Help: "Deductions refused because stock was too low.",
	})

	RequestDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fieldstock_request_decisions_total",
		Help: "Material request decisions by outcome (approved, rejected).",
	}, []string{"outcome"})
)

// Handler serves the default prometheus registry on a fiber route.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
