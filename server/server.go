// Package server wires the HTTP API: routing, auth middleware, and the
// error rendering contract.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sublitr/sublitr/auth"
	"github.com/sublitr/sublitr/repository"
	"github.com/sublitr/sublitr/storage"
)

// Options carries the server's collaborators.
type Options struct {
	Auther       auth.Authenticator
	Repos        repository.Manager
	Blobs        storage.BlobStore
	Logger       auth.Logger
	ClientOrigin string
}

// Server is the sublitr HTTP API.
type Server struct {
	app    *fiber.App
	auther auth.Authenticator
	repos  repository.Manager
	blobs  storage.BlobStore
	logger auth.Logger
}

// New builds the fiber app with all routes registered.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = auth.NewSlogLogger(nil)
	}

	s := &Server{
		auther: opts.Auther,
		repos:  opts.Repos,
		blobs:  opts.Blobs,
		logger: logger,
	}

	app := fiber.New(fiber.Config{
		AppName:               "sublitr",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())

	corsCfg := cors.ConfigDefault
	if opts.ClientOrigin != "" {
		corsCfg.AllowOrigins = opts.ClientOrigin
	}
	app.Use(cors.New(corsCfg))

	s.app = app
	s.routes()

	return s
}

func (s *Server) routes() {
	api := s.app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", s.handleLogin)
	authGroup.Post("/refresh", s.RequireAuth(), s.handleRefresh)

	users := api.Group("/users")
	users.Get("/", s.handleUsersOK)
	users.Post("/", s.handleRegister)
	users.Put("/:userID", s.RequireAuth(), s.handleUserUpdate)
	users.Delete("/:userID", s.RequireAuth(), s.handleUserDelete)

	subs := api.Group("/submissions", s.RequireAuth())
	subs.Get("/", s.handleSubmissionList)
	subs.Get("/:submissionID", s.handleSubmissionGet)
	subs.Post("/", s.handleSubmissionCreate)
	subs.Put("/:submissionID/status", s.handleSubmissionStatus)
	subs.Post("/:submissionID/comments", s.handleSubmissionComment)
	subs.Delete("/:submissionID", s.handleSubmissionDelete)

	pubs := api.Group("/publications")
	pubs.Get("/", s.handlePublicationList)
	pubs.Post("/", s.RequireAuth(), s.handlePublicationCreate)
	pubs.Delete("/:publicationID", s.RequireAuth(), s.handlePublicationDelete)

	// everything else is a JSON 404
	s.app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "endpoint not found",
		})
	})
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen binds the server to addr and serves until shutdown.
func (s *Server) Listen(addr string) error {
	s.logger.Info("listening on %s", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
