package handler

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"

	"advocatehub/docs"

	"advocatehub/internal/auth"
	"advocatehub/internal/config"
	"advocatehub/internal/geo"
	"advocatehub/internal/http/middleware"
	"advocatehub/internal/model"
	"advocatehub/internal/service"
)

// Authenticator signs users in and out. *auth.Service satisfies it.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, *model.User, error)
	Logout(ctx context.Context, token string) error
}

// Deps holds everything RegisterRoutes wires into handlers.
type Deps struct {
	DB        *sql.DB
	Documents service.DocumentService
	Messages  service.MessageService
	Posts     service.PostService
	Auth      Authenticator
	Gate      *middleware.SessionGate
	Locator   geo.Locator
	Session   config.SessionConfig
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// PublicHost and PublicScheme are advertised in the Swagger document.
	PublicHost   string
	PublicScheme string
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Routes are grouped by the session predicate guarding them.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	// The Swagger document is configured once here; handlers only read it.
	docs.SwaggerInfo.Host = d.PublicHost
	if d.PublicScheme != "" {
		docs.SwaggerInfo.Schemes = []string{d.PublicScheme}
	}
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/docs", func(c *fiber.Ctx) error {
		return c.Redirect("/swagger/index.html", fiber.StatusMovedPermanently)
	})
	if d.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(d.Metrics))
	}

	loginPath := d.Session.LoginPath
	if d.Gate != nil {
		loginPath = d.Gate.LoginPath()
	}
	app.Get(loginPath, LoginPage())
	app.Post("/auth/login", Login(d.Auth, d.Session))
	app.Post("/auth/logout", Logout(d.Auth, d.Session))

	if d.Gate == nil {
		return
	}

	signedIn := d.Gate.Require(auth.Authenticated)
	advocate := d.Gate.Require(auth.RequireUserType(model.UserTypeAdvocate))

	docs := app.Group("/documents", signedIn)
	docs.Get("/", ListDocuments(d.Documents))
	docs.Post("/", UploadDocument(d.Documents))
	docs.Get("/:id", GetDocument(d.Documents))
	docs.Delete("/:id", DeleteDocument(d.Documents))
	docs.Get("/:id/preview", PreviewDocument(d.Documents))

	app.Get("/viewer", signedIn, Viewer())

	app.Get("/messages/:peerID", signedIn, Conversation(d.Messages))
	app.Post("/messages/:peerID", signedIn, SendMessage(d.Messages))
	app.Get("/chat", advocate, ChatInbox(d.Messages))

	app.Get("/profile/posts", signedIn, ListMyPosts(d.Posts))
	app.Post("/profile/posts", signedIn, CreatePost(d.Posts))
	app.Get("/users/:id/posts", signedIn, ListUserPosts(d.Posts))

	app.Get("/geo/locate", signedIn, Locate(d.Locator))
}
