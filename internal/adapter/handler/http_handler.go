package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/juju/loggo/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"

	"github.com/rajagopika181204/techstore/internal/core/domain"
	"github.com/rajagopika181204/techstore/internal/core/service"
)

var logger = loggo.GetLogger("techstore.handler")

type HTTPHandler struct {
	auth      *service.AuthService
	catalog   *service.CatalogService
	inventory *service.InventoryService
	cart      *service.CartService
	orders    *service.OrderService
	checkout  *service.CheckoutService
	payment   *service.PaymentService
	billing   *service.BillingService
	tracking  *service.TrackingService
}

func NewHTTPHandler(
	auth *service.AuthService,
	catalog *service.CatalogService,
	inventory *service.InventoryService,
	cart *service.CartService,
	orders *service.OrderService,
	checkout *service.CheckoutService,
	payment *service.PaymentService,
	billing *service.BillingService,
	tracking *service.TrackingService,
) *HTTPHandler {
	return &HTTPHandler{
		auth:      auth,
		catalog:   catalog,
		inventory: inventory,
		cart:      cart,
		orders:    orders,
		checkout:  checkout,
		payment:   payment,
		billing:   billing,
		tracking:  tracking,
	}
}

func (h *HTTPHandler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/signup", h.Signup).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	r.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)

	r.HandleFunc("/api/update-stock", h.UpdateStock).Methods(http.MethodPost)
	r.HandleFunc("/api/cart/{userId}", h.GetCart).Methods(http.MethodGet)
	r.HandleFunc("/api/cart", h.SaveCart).Methods(http.MethodPost)
	r.HandleFunc("/api/orders", h.PlaceOrder).Methods(http.MethodPost)
	r.HandleFunc("/api/orders/{orderId}", h.GetOrder).Methods(http.MethodGet)
	r.Handle("/api/checkout", h.requireAuth(http.HandlerFunc(h.Checkout))).Methods(http.MethodPost)
	r.HandleFunc("/api/generate-upi-link", h.GenerateUPILink).Methods(http.MethodPost)
	r.HandleFunc("/api/billing", h.Billing).Methods(http.MethodPost)

	r.HandleFunc("/track/{id}", h.Track).Methods(http.MethodGet)
	return r
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// requireAuth gates a route behind a bearer session token.
func (h *HTTPHandler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}
		if _, err := h.auth.VerifyToken(token); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *HTTPHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	err := h.auth.Signup(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, messageResponse{Message: "User registered successfully"})
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Missing fields")
	case errors.Is(err, domain.ErrUserExists):
		writeError(w, http.StatusBadRequest, "User already exists")
	default:
		logger.Errorf("signup: %v", err)
		writeError(w, http.StatusInternalServerError, "Signup error")
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (h *HTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing fields")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, loginResponse{Message: "Login successful", Token: token})
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Missing fields")
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusUnauthorized, "User not found")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		logger.Errorf("login: %v", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
	}
}

type productResponse struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	ImageURL string          `json:"imageUrl"`
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Available(r.Context())
	if err != nil {
		logger.Errorf("list products: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, productResponse{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
			ImageURL: p.ImageURL,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type updateStockRequest struct {
	ProductID         int64 `json:"productId"`
	QuantityPurchased int   `json:"quantityPurchased"`
}

func (h *HTTPHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req updateStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Non-integral quantities land here too.
		writeError(w, http.StatusBadRequest, "Invalid product ID or quantity")
		return
	}

	err := h.inventory.Reserve(r.Context(), req.ProductID, req.QuantityPurchased)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, messageResponse{Message: "Stock updated successfully"})
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid product ID or quantity")
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrInsufficientStock):
		writeError(w, http.StatusBadRequest, "Not enough stock")
	default:
		logger.Errorf("update stock: %v", err)
		writeError(w, http.StatusInternalServerError, "Update failed")
	}
}

type cartLineResponse struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl"`
	Quantity  int             `json:"quantity"`
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	lines, err := h.cart.Get(r.Context(), userID)
	if err != nil {
		logger.Errorf("get cart: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch cart items")
		return
	}

	resp := make([]cartLineResponse, 0, len(lines))
	for _, l := range lines {
		resp = append(resp, cartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			ImageURL:  l.ImageURL,
			Quantity:  l.Quantity,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type cartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type saveCartRequest struct {
	UserID    string            `json:"userId"`
	CartItems []cartItemRequest `json:"cartItems"`
}

func (h *HTTPHandler) SaveCart(w http.ResponseWriter, r *http.Request) {
	var req saveCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items := make([]domain.CartItem, 0, len(req.CartItems))
	for _, item := range req.CartItems {
		items = append(items, domain.CartItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	err := h.cart.Save(r.Context(), req.UserID, items)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, messageResponse{Message: "Cart saved successfully"})
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid cart items")
	default:
		logger.Errorf("save cart: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save cart")
	}
}

type orderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type placeOrderRequest struct {
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	Items         []orderItemRequest `json:"items"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
}

type placeOrderResponse struct {
	Message string `json:"message"`
	OrderID int64  `json:"orderId"`
}

func newOrderFromRequest(req placeOrderRequest) domain.NewOrder {
	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return domain.NewOrder{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		TotalAmount:   req.TotalAmount,
		Items:         items,
	}
}

func (h *HTTPHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	orderID, err := h.orders.Place(r.Context(), newOrderFromRequest(req))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, placeOrderResponse{Message: "Order placed successfully", OrderID: orderID})
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Missing required fields")
	default:
		logger.Errorf("place order: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to place order")
	}
}

type orderResponse struct {
	ID            int64           `json:"id"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	CreatedAt     string          `json:"createdAt"`
}

type orderLineResponse struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type getOrderResponse struct {
	Order orderResponse       `json:"order"`
	Items []orderLineResponse `json:"items"`
}

func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseInt(mux.Vars(r)["orderId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	}

	order, lines, err := h.orders.Get(r.Context(), orderID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Invalid order ID")
		return
	case errors.Is(err, domain.ErrOrderNotFound):
		writeError(w, http.StatusNotFound, "Order not found")
		return
	default:
		logger.Errorf("get order: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch order details")
		return
	}

	items := make([]orderLineResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, orderLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	writeJSON(w, http.StatusOK, getOrderResponse{
		Order: orderResponse{
			ID:            order.ID,
			CustomerName:  order.CustomerName,
			CustomerEmail: order.CustomerEmail,
			TotalAmount:   order.TotalAmount,
			CreatedAt:     order.CreatedAt.UTC().Format(time.RFC3339),
		},
		Items: items,
	})
}

type checkoutRequest struct {
	RequestID     string             `json:"requestId"`
	UserID        string             `json:"userId"`
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	Items         []orderItemRequest `json:"items"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	order := newOrderFromRequest(placeOrderRequest{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Items:         req.Items,
		TotalAmount:   req.TotalAmount,
	})

	orderID, err := h.checkout.Checkout(r.Context(), req.RequestID, req.UserID, order)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, placeOrderResponse{Message: "Order placed successfully", OrderID: orderID})
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, service.ErrDuplicateRequest):
		writeError(w, http.StatusConflict, "Duplicate request")
	case errors.Is(err, domain.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrInsufficientStock):
		writeError(w, http.StatusBadRequest, "Not enough stock")
	default:
		logger.Errorf("checkout: %v", err)
		writeError(w, http.StatusInternalServerError, "Checkout failed")
	}
}

type upiLinkRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	OrderID string          `json:"orderId"`
}

type upiLinkResponse struct {
	UPILink string `json:"upiLink"`
	QRData  string `json:"qrData"`
}

func (h *HTTPHandler) GenerateUPILink(w http.ResponseWriter, r *http.Request) {
	var req upiLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Amount and Order ID required")
		return
	}

	link, err := h.payment.UPILink(req.Amount, req.OrderID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Amount and Order ID required")
		return
	}
	writeJSON(w, http.StatusOK, upiLinkResponse{UPILink: link, QRData: link})
}

type billingItemRequest struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type billingRequest struct {
	Items       []billingItemRequest `json:"items"`
	TotalAmount decimal.Decimal      `json:"totalAmount"`
	Customer    string               `json:"customer"`
}

type billingResponse struct {
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

func (h *HTTPHandler) Billing(w http.ResponseWriter, r *http.Request) {
	var req billingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Missing billing data")
		return
	}

	items := make([]domain.BillingItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.BillingItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  item.Quantity,
		})
	}

	id, err := h.billing.Record(r.Context(), items, req.TotalAmount, req.Customer)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, billingResponse{Message: "Order saved", OrderID: id})
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "Missing billing data")
	default:
		logger.Errorf("billing: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to save billing record")
	}
}

func (h *HTTPHandler) Track(w http.ResponseWriter, r *http.Request) {
	info, err := h.tracking.Status(r.Context(), mux.Vars(r)["id"])
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, info)
	case errors.Is(err, domain.ErrTrackingNotFound):
		writeError(w, http.StatusNotFound, "Tracking ID not found.")
	default:
		logger.Errorf("track: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch tracking status")
	}
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
