package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"shopline/internal/config"
	"shopline/internal/http/handlers"
	"shopline/internal/repos"
)

// newTestApp wires the full API surface against an in-memory database with
// the demo seed applied (includes the admin account).
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := repos.Seed(db); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := config.Config{JWTSecret: "test-secret", UploadDir: t.TempDir(), PayPalClient: "sb"}
	deps, err := handlers.NewDeps(db, cfg)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal Server Error"})
		},
	})
	requireUser := handlers.RequireUser(deps.Auth)
	requireAdmin := handlers.RequireAdmin(deps.Auth)

	api := app.Group("/api")
	users := api.Group("/users")
	users.Post("/register", deps.UserHandler.Register)
	users.Post("/signin", deps.UserHandler.SignIn)
	users.Put("/:id", requireUser, deps.UserHandler.Update)

	products := api.Group("/products")
	products.Get("/", deps.ProductHandler.List)
	products.Get("/:id", deps.ProductHandler.Get)
	products.Post("/", requireAdmin, deps.ProductHandler.Create)
	products.Put("/:id", requireAdmin, deps.ProductHandler.Update)
	products.Delete("/:id", requireAdmin, deps.ProductHandler.Delete)
	products.Post("/:id/reviews", requireUser, deps.ProductHandler.AddReview)

	orders := api.Group("/orders")
	orders.Get("/", requireAdmin, deps.OrderHandler.List)
	orders.Get("/mine", requireUser, deps.OrderHandler.Mine)
	orders.Get("/:id", requireUser, deps.OrderHandler.Get)
	orders.Post("/", requireUser, deps.OrderHandler.Create)
	orders.Put("/:id/pay", requireUser, deps.OrderHandler.Pay)
	orders.Put("/:id/deliver", requireAdmin, deps.OrderHandler.Deliver)
	orders.Delete("/:id", requireAdmin, deps.OrderHandler.Delete)

	api.Post("/uploads", requireAdmin, deps.UploadHandler.Local)
	api.Post("/uploads/s3", requireAdmin, deps.UploadHandler.S3Upload)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatal(err)
	}
}

// adminToken signs in as the seeded admin account.
func adminToken(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/users/signin", "", map[string]string{
		"email": "admin@example.com", "password": "1234",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("admin signin: status %d", resp.StatusCode)
	}
	var out struct {
		Token string `json:"token"`
	}
	decode(t, resp, &out)
	return out.Token
}

// userToken registers a fresh non-admin account and returns its id and token.
func userToken(t *testing.T, app *fiber.App, email string) (string, string) {
	t.Helper()
	resp := doJSON(t, app, "POST", "/api/users/register", "", map[string]string{
		"name": "Test User", "email": email, "password": "Passw0rd",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register: status %d", resp.StatusCode)
	}
	var out struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	decode(t, resp, &out)
	return out.ID, out.Token
}
