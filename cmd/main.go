package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	addOrderItemHandler "github.com/baydesk/BayBookingService/internal/api/handlers/add_order_item"
	applyPaymentHandler "github.com/baydesk/BayBookingService/internal/api/handlers/apply_payment"
	cancelBookingHandler "github.com/baydesk/BayBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/baydesk/BayBookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/baydesk/BayBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/baydesk/BayBookingService/internal/api/handlers/get_booking"
	getSeatInvoiceHandler "github.com/baydesk/BayBookingService/internal/api/handlers/get_seat_invoice"
	getUserBookingsHandler "github.com/baydesk/BayBookingService/internal/api/handlers/get_user_bookings"
	linkGuestBookingsHandler "github.com/baydesk/BayBookingService/internal/api/handlers/link_guest_bookings"
	removeOrderItemHandler "github.com/baydesk/BayBookingService/internal/api/handlers/remove_order_item"
	updateBookingStatusHandler "github.com/baydesk/BayBookingService/internal/api/handlers/update_booking_status"
	validateCouponHandler "github.com/baydesk/BayBookingService/internal/api/handlers/validate_coupon"
	voidPaymentHandler "github.com/baydesk/BayBookingService/internal/api/handlers/void_payment"
	"github.com/baydesk/BayBookingService/internal/api/middleware"
	"github.com/baydesk/BayBookingService/internal/config"
	bookingRepo "github.com/baydesk/BayBookingService/internal/infra/storage/booking"
	couponRepo "github.com/baydesk/BayBookingService/internal/infra/storage/coupon"
	menuRepo "github.com/baydesk/BayBookingService/internal/infra/storage/menu"
	orderRepo "github.com/baydesk/BayBookingService/internal/infra/storage/order"
	paymentRepo "github.com/baydesk/BayBookingService/internal/infra/storage/payment"
	identityClient "github.com/baydesk/BayBookingService/internal/integrations/identity"
	bookingsService "github.com/baydesk/BayBookingService/internal/service/bookings"
	couponsService "github.com/baydesk/BayBookingService/internal/service/coupons"
	ordersService "github.com/baydesk/BayBookingService/internal/service/orders"
	applyPaymentUC "github.com/baydesk/BayBookingService/internal/usecase/apply_payment"
	createBookingUC "github.com/baydesk/BayBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/baydesk/BayBookingService/internal/usecase/get_available_slots"
	"github.com/baydesk/BayBookingService/pkg/civiltime"
	"github.com/baydesk/BayBookingService/pkg/logger"
	"github.com/baydesk/BayBookingService/pkg/metrics"
	"github.com/baydesk/BayBookingService/pkg/txmanager"
)

// systemClock is the production TimeProvider for services.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting BayBookingService...")

	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	resolver, err := civiltime.LoadResolver(cfg.Venue.Timezone)
	if err != nil {
		log.Fatal("Failed to load venue timezone %q: %v", cfg.Venue.Timezone, err)
	}
	log.Info("Venue clock resolves in %s", cfg.Venue.Timezone)

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	identity := identityClient.NewClient(
		cfg.Identity.URL,
		time.Duration(cfg.Identity.Timeout)*time.Second,
		log,
	)
	log.Info("Identity client initialized (url=%s timeout=%ds)", cfg.Identity.URL, cfg.Identity.Timeout)

	// Repositories
	bookingRepository := bookingRepo.NewRepository(db)
	orderRepository := orderRepo.NewRepository(db)
	paymentRepository := paymentRepo.NewRepository(db)
	couponRepository := couponRepo.NewRepository(db)
	menuRepository := menuRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)
	clock := systemClock{}

	// Services
	bookingSvc := bookingsService.NewService(bookingRepository, paymentRepository, txMgr, log)
	orderSvc := ordersService.NewService(
		bookingRepository,
		orderRepository,
		paymentRepository,
		menuRepository,
		couponRepository,
		txMgr,
		log,
	)
	couponSvc := couponsService.NewService(couponRepository, clock, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(bookingRepository, resolver, cfg.Venue, log)
	createBookingUseCase := createBookingUC.NewUseCase(bookingRepository, identity, resolver, cfg.Venue, txMgr, log)
	applyPaymentUseCase := applyPaymentUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		couponRepository,
		orderSvc,
		txMgr,
		log,
	)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	linkGuestBookings := linkGuestBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	addOrderItem := addOrderItemHandler.NewHandler(orderSvc, log)
	removeOrderItem := removeOrderItemHandler.NewHandler(orderSvc, log)
	getSeatInvoice := getSeatInvoiceHandler.NewHandler(orderSvc, log)
	applyPayment := applyPaymentHandler.NewHandler(applyPaymentUseCase, log)
	voidPayment := voidPaymentHandler.NewHandler(bookingSvc, log)
	validateCoupon := validateCouponHandler.NewHandler(couponSvc, log)

	// Router
	r := mux.NewRouter()
	r.Use(middleware.Auth)

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// Availability and admission
	api.HandleFunc("/resources/{resourceId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Booking lifecycle
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/confirm", updateBookingStatus.HandleConfirm).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}/close", updateBookingStatus.HandleClose).Methods(http.MethodPatch)
	api.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/me/bookings/link", linkGuestBookings.Handle).Methods(http.MethodPost)

	// Seat ledgers and invoices
	api.HandleFunc("/bookings/{bookingId}/orders", addOrderItem.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{bookingId}/orders", addOrderItem.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/orders/{itemId}", removeOrderItem.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/bookings/{bookingId}/seats/{seatIndex}/invoice", getSeatInvoice.Handle).Methods(http.MethodGet)

	// Settlement
	api.HandleFunc("/bookings/{bookingId}/payments", applyPayment.Handle).Methods(http.MethodPost)
	api.HandleFunc("/payments/{paymentId}/void", voidPayment.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/coupons/{code}/validate", validateCoupon.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
