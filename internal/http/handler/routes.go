package handler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"docrepo/internal/service"
	"docrepo/internal/storage"
)

// RegisterRoutes attaches the API and probe routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, store storage.Storage, docSvc service.DocumentService) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/sections", ListSections())
	api.Post("/upload", UploadDocument(docSvc))
	api.Get("/files/:section/:type", ListDocuments(docSvc))
	api.Get("/download/:section/:type/:filename", DownloadDocument(docSvc))
}

// HealthCheck reports whether the storage backend is reachable.
//
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200 {object} map[string]string
// @Failure  503 {object} errorPayload
// @Router   /health [get]
func HealthCheck(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "storage unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200 while the process is serving.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// RegisterClient serves the built browser client from dir and falls back to its
// index.html for client-side routes. Paths under /api never fall back.
// It must be registered after the API routes.
func RegisterClient(app *fiber.App, dir string) error {
	index := filepath.Join(dir, "index.html")
	if fi, err := os.Stat(index); err != nil || fi.IsDir() {
		return fmt.Errorf("client index %s not found", index)
	}

	app.Static("/", dir, fiber.Static{Index: "index.html"})
	app.Get("/*", func(c *fiber.Ctx) error {
		if p := c.Path(); p == "/api" || strings.HasPrefix(p, "/api/") {
			return fiber.ErrNotFound
		}
		return c.SendFile(index)
	})
	return nil
}
