package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"adboard/internal/http/handlers"
	"adboard/internal/repos"
	"adboard/internal/services"
)

// newAdApp wires the ad API the way main does, minus rate limiting.
func newAdApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1) // one shared in-memory database

	hash, _ := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.DefaultCost)
	schema := `
	CREATE TABLE users(
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  username TEXT NOT NULL UNIQUE,
	  email TEXT NOT NULL UNIQUE,
	  password_hash TEXT NOT NULL
	);
	CREATE TABLE sessions(
	  id TEXT PRIMARY KEY,
	  user_id INTEGER NULL,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
	  last_seen TEXT
	);
	CREATE TABLE categories(
	  id INTEGER PRIMARY KEY,
	  name TEXT NOT NULL,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE ads(
	  id INTEGER PRIMARY KEY AUTOINCREMENT,
	  user_id INTEGER NOT NULL,
	  title TEXT NOT NULL,
	  description TEXT NOT NULL DEFAULT '',
	  category_id INTEGER NOT NULL,
	  price NUMERIC NOT NULL,
	  is_sold INTEGER NOT NULL DEFAULT 0,
	  created_at TEXT DEFAULT CURRENT_TIMESTAMP
	);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}
	db.MustExec(`INSERT INTO users(id,username,email,password_hash) VALUES
	  (1,'alice','alice@adboard.test',?),
	  (2,'bob','bob@adboard.test',?)`, string(hash), string(hash))
	// pre-bound sessions so tests can act as either user
	db.MustExec(`INSERT INTO sessions(id,user_id) VALUES ('sid-alice',1),('sid-bob',2)`)

	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}

	app := fiber.New(fiber.Config{})
	app.Use(requestid.New())
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := authSvc.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
			}
		}
		return c.Next()
	})

	deps := handlers.NewDeps(db, authSvc)
	app.Post("/login", deps.AuthHandler.Login)
	app.Post("/logout", deps.AuthHandler.Logout)
	api := app.Group("/api/v1")
	api.Get("/ads/search", deps.AdHandler.Search)
	api.Get("/ads", deps.AdHandler.ListAll)
	api.Get("/ads/mine", handlers.RequireUser(authSvc), deps.AdHandler.ListMine)
	api.Post("/ads", handlers.RequireUser(authSvc), deps.AdHandler.Create)
	api.Put("/ads/:id", handlers.RequireUser(authSvc), deps.AdHandler.Update)
	api.Delete("/ads/:id", handlers.RequireUser(authSvc), deps.AdHandler.Delete)
	api.Post("/ads/:id/sold", handlers.RequireUser(authSvc), deps.AdHandler.MarkSold)
	api.Get("/users/:userId/ads", deps.AdHandler.ListByUser)
	api.Get("/categories", deps.CategoryHandler.List)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path, sid string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decodeAd(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out struct {
		Ad map[string]any `json:"ad"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out.Ad
}

func TestAdAPI_AuthRequired(t *testing.T) {
	app, _ := newAdApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/ads", "", map[string]any{
		"title": "Laptop", "categoryId": 1, "price": 500,
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401, got %d", resp.StatusCode)
	}
}

func TestAdAPI_Login(t *testing.T) {
	app, _ := newAdApp(t)

	resp := doJSON(t, app, "POST", "/login", "", map[string]any{
		"email": "alice@adboard.test", "password": "WrongPass1!",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("bad password: want 401, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "POST", "/login", "", map[string]any{
		"email": "alice@adboard.test", "password": "Passw0rd!",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login: want 200, got %d", resp.StatusCode)
	}
}

func TestAdAPI_CreateAndCategoryRejection(t *testing.T) {
	app, db := newAdApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/ads", "sid-alice", map[string]any{
		"title": "Laptop", "description": "barely used", "categoryId": 1, "price": 500,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}
	ad := decodeAd(t, resp)
	if ad["categoryName"] != "Electronic Devices" || ad["ownerUsername"] != "alice" {
		t.Fatalf("missing projections: %v", ad)
	}

	resp = doJSON(t, app, "POST", "/api/v1/ads", "sid-alice", map[string]any{
		"title": "Ghost", "categoryId": 42, "price": 5,
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad category: want 400, got %d", resp.StatusCode)
	}

	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM ads`); err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("want 1 ad row, got %d", n)
	}
}

func TestAdAPI_OwnershipMismatchReads404(t *testing.T) {
	app, _ := newAdApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/ads", "sid-alice", map[string]any{
		"title": "Bike", "categoryId": 8, "price": 120,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}
	adID := int64(decodeAd(t, resp)["id"].(float64))

	for _, tc := range []struct{ method, path string }{
		{"PUT", fmt.Sprintf("/api/v1/ads/%d", adID)},
		{"DELETE", fmt.Sprintf("/api/v1/ads/%d", adID)},
		{"POST", fmt.Sprintf("/api/v1/ads/%d/sold", adID)},
	} {
		resp := doJSON(t, app, tc.method, tc.path, "sid-bob", map[string]any{"price": 1})
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("%s %s as bob: want 404, got %d", tc.method, tc.path, resp.StatusCode)
		}
	}

	// still there for the owner
	resp = doJSON(t, app, "GET", "/api/v1/ads/mine", "sid-alice", nil)
	var mine []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&mine); err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0]["isSold"] != false {
		t.Fatalf("owner listing after non-owner mutations: %v", mine)
	}
}

func TestAdAPI_SearchAndSort(t *testing.T) {
	app, _ := newAdApp(t)

	for _, a := range []map[string]any{
		{"title": "Laptop", "categoryId": 1, "price": 500},
		{"title": "Lamp", "categoryId": 2, "price": 20},
		{"title": "Book", "categoryId": 6, "price": 30},
	} {
		if resp := doJSON(t, app, "POST", "/api/v1/ads", "sid-alice", a); resp.StatusCode != http.StatusCreated {
			t.Fatalf("seed create failed: %d", resp.StatusCode)
		}
	}

	get := func(path string) []map[string]any {
		resp := doJSON(t, app, "GET", path, "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: %d", path, resp.StatusCode)
		}
		var ads []map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&ads); err != nil {
			t.Fatal(err)
		}
		return ads
	}

	if ads := get("/api/v1/ads/search?title=La"); len(ads) != 2 {
		t.Fatalf("title=La: want 2 hits, got %v", ads)
	}
	if ads := get("/api/v1/ads/search?categoryId=6"); len(ads) != 1 || ads[0]["title"] != "Book" {
		t.Fatalf("categoryId=6: %v", ads)
	}
	if ads := get("/api/v1/ads/search?minPrice=25&maxPrice=100"); len(ads) != 1 {
		t.Fatalf("price range: %v", ads)
	}

	ads := get("/api/v1/ads/search?sortBy=priceAsc")
	prev := -1.0
	for _, a := range ads {
		p := a["price"].(float64)
		if p < prev {
			t.Fatalf("priceAsc not non-decreasing: %v", ads)
		}
		prev = p
	}

	for _, bad := range []string{"abc", "NaN", "Inf", "-5"} {
		resp := doJSON(t, app, "GET", "/api/v1/ads/search?minPrice="+bad, "", nil)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("minPrice=%s: want 400, got %d", bad, resp.StatusCode)
		}
	}
	resp := doJSON(t, app, "GET", "/api/v1/ads/search?maxPrice=%2BInf", "", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("maxPrice=+Inf: want 400, got %d", resp.StatusCode)
	}
}

func TestAdAPI_ListByUserEmptyIs404(t *testing.T) {
	app, _ := newAdApp(t)

	resp := doJSON(t, app, "GET", "/api/v1/users/2/ads", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("empty user listing: want 404, got %d", resp.StatusCode)
	}

	if r := doJSON(t, app, "POST", "/api/v1/ads", "sid-bob", map[string]any{
		"title": "Boots", "categoryId": 5, "price": 45,
	}); r.StatusCode != http.StatusCreated {
		t.Fatalf("create: %d", r.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/v1/users/2/ads", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("after create: want 200, got %d", resp.StatusCode)
	}
}

func TestAdAPI_ListCategories(t *testing.T) {
	app, _ := newAdApp(t)

	list := func() []map[string]any {
		resp := doJSON(t, app, "GET", "/api/v1/categories", "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("categories: want 200, got %d", resp.StatusCode)
		}
		var cats []map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&cats); err != nil {
			t.Fatal(err)
		}
		return cats
	}

	// nothing materialized yet: empty list, not null and not an error
	if cats := list(); len(cats) != 0 {
		t.Fatalf("want no categories, got %v", cats)
	}

	if r := doJSON(t, app, "POST", "/api/v1/ads", "sid-alice", map[string]any{
		"title": "Laptop", "categoryId": 1, "price": 500,
	}); r.StatusCode != http.StatusCreated {
		t.Fatalf("create: %d", r.StatusCode)
	}

	cats := list()
	if len(cats) != 1 || cats[0]["name"] != "Electronic Devices" {
		t.Fatalf("want the reconciled category, got %v", cats)
	}
}

func TestAdAPI_InternalErrorRedacted(t *testing.T) {
	app, db := newAdApp(t)

	// force a store failure on the search read path
	db.MustExec(`DROP TABLE ads`)

	resp := doJSON(t, app, "GET", "/api/v1/ads/search", "", nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	// fixed generic message only, no store error text
	if string(body) != `{"error":"internal error"}` {
		t.Fatalf("internal detail leaked: %s", body)
	}
}
