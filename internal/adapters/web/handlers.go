package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"herbaldesk/internal/app"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// ── Health (public) ──────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Storefront + auth (public, rate limited) ─────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(RateLimit("60-M"))
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/storefront/products", h.storefrontProducts)
		r.Get("/api/storefront/categories", h.storefrontCategories)
		r.Post("/api/storefront/orders", h.checkout)

		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/logout", h.logout)
	})

	// ── Protected API routes (return 401 JSON if unauthenticated) ────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		// Auth
		r.Get("/api/auth/me", h.me)

		// Catalog
		r.Get("/api/products", h.listProducts)
		r.Post("/api/products", h.createProduct)
		r.Get("/api/products/{id}", h.getProduct)
		r.Put("/api/products/{id}", h.updateProduct)
		r.Delete("/api/products/{id}", h.deleteProduct)

		r.Get("/api/categories", h.listCategories)
		r.Post("/api/categories", h.createCategory)
		r.Put("/api/categories/{id}", h.updateCategory)
		r.Delete("/api/categories/{id}", h.deleteCategory)

		// Offers
		r.Get("/api/offers", h.listOffers)
		r.Post("/api/offers", h.createOffer)
		r.Put("/api/offers/{id}", h.updateOffer)
		r.Delete("/api/offers/{id}", h.deleteOffer)

		// Orders
		r.Get("/api/orders", h.listOrders)
		r.Post("/api/orders", h.createOrder)
		r.Get("/api/orders/{id}", h.getOrder)
		r.Put("/api/orders/{id}/status", h.updateOrderStatus)
		r.Put("/api/orders/{id}/assign", h.assignOrder)
		r.Post("/api/orders/{id}/call-logs", h.addCallLog)
		r.Delete("/api/orders/{id}", h.deleteOrder)

		// Employees
		r.Get("/api/employees", h.listEmployees)
		r.Post("/api/employees", h.createEmployee)
		r.Put("/api/employees/{id}", h.updateEmployee)
		r.Put("/api/employees/{id}/permissions", h.updateEmployeePermissions)
		r.Put("/api/employees/{id}/status", h.setEmployeeStatus)
		r.Delete("/api/employees/{id}", h.deleteEmployee)

		// Expenses
		r.Get("/api/expenses", h.listExpenses)
		r.Post("/api/expenses", h.createExpense)
		r.Put("/api/expenses/{id}", h.updateExpense)
		r.Delete("/api/expenses/{id}", h.deleteExpense)

		// Reports
		r.Get("/api/reports/pnl", h.profitAndLoss)

		// Notifications
		r.Get("/api/notifications", h.listNotifications)
		r.Get("/api/notifications/unread-count", h.unreadNotificationCount)
		r.Put("/api/notifications/{id}/read", h.markNotificationRead)
		r.Put("/api/notifications/read-all", h.markAllNotificationsRead)
		r.Delete("/api/notifications/{id}", h.deleteNotification)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// idParam extracts the numeric {id} URL parameter. Writes a 400 and returns
// false when the parameter is not a positive integer.
func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		writeError(w, r, "invalid id "+raw, "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
