// Package testutil runs an in-memory stand-in for the invoicing
// backend so client packages can be integration-tested against the real
// wire contract: JWT auth, the error envelope, concurrency-token
// rotation, and the multipart image dispositions.
package testutil

import (
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Naitik-Lodhi/invoice-web-application-sub000/internal/api"
)

type user struct {
	name         string
	email        string
	passwordHash []byte
}

// Server is one fake backend instance on a loopback listener. State is
// process-local and dies with the test.
type Server struct {
	// URL is the base URL clients should dial.
	URL string

	app    *fiber.App
	secret []byte

	mu       sync.Mutex
	users    map[string]user
	company  api.Company
	logo     []byte
	items    map[string]api.Item
	pictures map[string][]byte
	invoices map[string]api.Invoice
	seq      int
}

// Start boots the fake backend and tears it down with the test.
func Start(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		secret:   []byte("test-secret"),
		users:    map[string]user{},
		items:    map[string]api.Item{},
		pictures: map[string][]byte{},
		invoices: map[string]api.Invoice{},
		company:  api.Company{Name: "Test Company", Currency: "INR"},
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(recover.New())
	s.routes(app)
	s.app = app

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s.URL = "http://" + ln.Addr().String()

	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	return s
}

// SeedUser registers an account directly, bypassing the signup route.
func (s *Server) SeedUser(t *testing.T, name, email, password string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[strings.ToLower(email)] = user{name: name, email: email, passwordHash: hash}
}

func (s *Server) routes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	apiGroup := app.Group("/api")

	// public
	apiGroup.Post("/auth/signup", s.signup)
	apiGroup.Post("/auth/login", s.login)

	// everything below requires a bearer token
	apiGroup.Use(s.requireAuth)

	apiGroup.Get("/company", s.getCompany)
	apiGroup.Put("/company", s.updateCompany)
	apiGroup.Get("/company/logo", s.getLogo)

	apiGroup.Get("/items", s.listItems)
	apiGroup.Post("/items", s.createItem)
	apiGroup.Put("/items/:id", s.updateItem)
	apiGroup.Delete("/items/:id", s.deleteItem)
	apiGroup.Get("/items/:id/picture", s.getPicture)

	apiGroup.Get("/invoices", s.listInvoices)
	apiGroup.Get("/invoices/next-number", s.nextInvoiceNo)
	apiGroup.Get("/invoices/:id", s.getInvoice)
	apiGroup.Post("/invoices", s.createInvoice)
	apiGroup.Put("/invoices/:id", s.updateInvoice)
	apiGroup.Delete("/invoices/:id", s.deleteInvoice)

	apiGroup.Get("/dashboard/metrics", s.metrics)
	apiGroup.Get("/dashboard/trend", s.trend)
	apiGroup.Get("/dashboard/top-items", s.topItems)
}

func (s *Server) requireAuth(c *fiber.Ctx) error {
	auth := c.Get("Authorization")
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apiError(c, fiber.StatusUnauthorized, "", "missing bearer token")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "bad signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return apiError(c, fiber.StatusUnauthorized, "", "invalid token")
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if email, _ := claims["sub"].(string); email != "" {
			c.Locals("email", email)
		}
	}
	return c.Next()
}

func (s *Server) issueToken(u user) (string, int, error) {
	now := time.Now()
	exp := now.Add(time.Hour)
	claims := jwt.MapClaims{
		"sub": u.email,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, err
	}
	return signed, int(time.Hour.Seconds()), nil
}

func apiError(c *fiber.Ctx, status int, code, msg string) error {
	body := fiber.Map{"error": msg}
	if code != "" {
		body["code"] = code
	}
	return c.Status(status).JSON(body)
}
