// Package handler exposes the retrieval engine over HTTP.
package handler

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/domain"
	"github.com/Gthorpe2274/mocha-emig-clone-4/internal/service"
)

const serviceVersion = "1.0.0"

// RetrievalHandler handles the retrieval and health endpoints.
type RetrievalHandler struct {
	engine *service.Engine
	model  string
}

// New creates a retrieval handler. The model label is reported by the
// health endpoint.
func New(engine *service.Engine, model string) *RetrievalHandler {
	return &RetrievalHandler{engine: engine, model: model}
}

// Register sets up the routes.
func (h *RetrievalHandler) Register(app *fiber.App) {
	app.Get("/", h.Root)
	app.Get("/health", h.Health)
	app.Post("/retrieve-context", h.Retrieve)
}

// Root returns a service banner.
func (h *RetrievalHandler) Root(c fiber.Ctx) error {
	status := "healthy"
	if !h.engine.Ready() {
		status = "unhealthy"
	}
	return c.JSON(fiber.Map{
		"service": "Emigration Retrieval Service",
		"status":  status,
		"version": serviceVersion,
	})
}

// Health is the readiness probe. It reports unhealthy, with the captured
// initialization error, until the engine has been built.
func (h *RetrievalHandler) Health(c fiber.Ctx) error {
	status := "healthy"
	message := "retrieval service operational"
	if !h.engine.Ready() {
		status = "unhealthy"
		message = "not initialized"
		if lastErr := h.engine.LastError(); lastErr != "" {
			message = "initialization failed: " + lastErr
		}
	}
	return c.JSON(fiber.Map{
		"status":            status,
		"message":           message,
		"model":             h.model,
		"documents_indexed": h.engine.DocumentCount(),
		"timestamp":         time.Now().Format(time.RFC3339),
		"version":           serviceVersion,
	})
}

// Retrieve runs a retrieval query and returns ranked results.
func (h *RetrievalHandler) Retrieve(c fiber.Ctx) error {
	var body struct {
		Query      string `json:"query"`
		Country    string `json:"country"`
		Category   string `json:"category"`
		MaxResults int    `json:"max_results"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query is required"})
	}
	if body.MaxResults == 0 {
		body.MaxResults = service.DefaultMaxResults
	}

	start := time.Now()
	results, err := h.engine.Retrieve(body.Query, body.Country, body.Category, body.MaxResults)
	switch {
	case errors.Is(err, domain.ErrNotReady), errors.Is(err, domain.ErrEmptyCorpus):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error":  "retrieval service not ready",
			"detail": h.engine.LastError(),
		})
	case errors.Is(err, domain.ErrInvalidK):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "max_results must be positive"})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	out := make([]fiber.Map, len(results))
	for i, r := range results {
		out[i] = fiber.Map{
			"content":         r.Content,
			"source":          r.Source,
			"relevance_score": r.Score,
			"metadata": fiber.Map{
				"country":        r.Country,
				"category":       r.Category,
				"rank":           r.Rank,
				"document_index": r.DocumentIndex,
			},
		}
	}
	return c.JSON(fiber.Map{
		"results":            out,
		"query":              body.Query,
		"total_results":      len(out),
		"processing_time_ms": time.Since(start).Milliseconds(),
	})
}
