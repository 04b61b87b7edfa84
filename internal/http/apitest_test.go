package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"ecofinds/internal/http/handlers"
	"ecofinds/internal/repos"
)

const testSecret = "api-test-secret"

// newTestApp wires the real handlers over a fresh in-memory database with the
// demo seed (seller@ecofinds.test / buyer@ecofinds.test, password Passw0rd!).
// Rate limiters are left out; they have their own tests.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	deps := handlers.NewDeps(db, testSecret, nil)
	user := handlers.RequireUser(testSecret)

	app := fiber.New()
	api := app.Group("/api/v1")

	authAPI := api.Group("/auth")
	authAPI.Post("/register", deps.AuthHandler.Register)
	authAPI.Post("/login", deps.AuthHandler.Login)
	authAPI.Get("/me", user, deps.AuthHandler.Me)

	products := api.Group("/products")
	products.Get("/", deps.ProductHandler.List)
	products.Get("/search", deps.ProductHandler.Search)
	products.Get("/category/:category", deps.ProductHandler.ListByCategory)
	products.Get("/mine", user, deps.ProductHandler.Mine)
	products.Get("/:id", deps.ProductHandler.Detail)
	products.Post("/", user, deps.ProductHandler.Create)
	products.Put("/:id", user, deps.ProductHandler.Update)
	products.Delete("/:id", user, deps.ProductHandler.Delete)

	cart := api.Group("/cart", user)
	cart.Get("/", deps.CartHandler.View)
	cart.Post("/", deps.CartHandler.Add)
	cart.Put("/:productId", deps.CartHandler.UpdateQuantity)
	cart.Delete("/:productId", deps.CartHandler.Remove)
	cart.Delete("/", deps.CartHandler.Clear)

	api.Post("/checkout", user, deps.CheckoutHandler.Place)
	api.Get("/purchases", user, deps.CheckoutHandler.History)

	favorites := api.Group("/favorites", user)
	favorites.Get("/", deps.FavoritesHandler.List)
	favorites.Post("/", deps.FavoritesHandler.Save)
	favorites.Delete("/:productId", deps.FavoritesHandler.Unsave)

	return app
}

func jsonReq(method, path, token string, body any) *http.Request {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// do runs the request without the default 1s deadline; bcrypt at cost 12 can
// blow past it on a loaded machine.
func do(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL.Path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func login(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp := do(t, app, jsonReq("POST", "/api/v1/auth/login", "", fiber.Map{
		"email": email, "password": password,
	}))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s: status %d", email, resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	decode(t, resp, &body)
	if body.Token == "" {
		t.Fatalf("login %s: empty token", email)
	}
	return body.Token
}
