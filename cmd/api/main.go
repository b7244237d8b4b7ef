package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"
	"github.com/stripe/stripe-go/v82"
	"github.com/twilio/twilio-go"

	"github.com/twinguy/stowpilot-sub000/internal/app"
	"github.com/twinguy/stowpilot-sub000/internal/config"
	"github.com/twinguy/stowpilot-sub000/internal/controllers"
	"github.com/twinguy/stowpilot-sub000/internal/middleware"
	"github.com/twinguy/stowpilot-sub000/internal/repositories"
	"github.com/twinguy/stowpilot-sub000/internal/routes"
	"github.com/twinguy/stowpilot-sub000/internal/services"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	//----------------------------------------------------------------------
	// External clients
	//----------------------------------------------------------------------
	var sgClient *sendgrid.Client
	if cfg.SendGridAPIKey != "" {
		sgClient = sendgrid.NewSendClient(cfg.SendGridAPIKey)
	}

	var twClient *twilio.RestClient
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		twClient = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		})
	}

	stripeEnabled := cfg.StripeSecretKey != ""
	if stripeEnabled {
		stripe.Key = cfg.StripeSecretKey
	}

	//----------------------------------------------------------------------
	// Repositories
	//----------------------------------------------------------------------
	profileRepo := repositories.NewProfileRepository(application.DB)
	teamMemberRepo := repositories.NewTeamMemberRepository(application.DB)
	facilityRepo := repositories.NewFacilityRepository(application.DB)
	unitRepo := repositories.NewUnitRepository(application.DB)
	customerRepo := repositories.NewCustomerRepository(application.DB)
	rentalRepo := repositories.NewRentalRepository(application.DB)
	invoiceRepo := repositories.NewInvoiceRepository(application.DB)
	paymentRepo := repositories.NewPaymentRepository(application.DB)
	paymentMethodRepo := repositories.NewPaymentMethodRepository(application.DB)
	ledgerRepo := repositories.NewLedgerRepository(application.DB)
	reportRepo := repositories.NewReportRepository(application.DB)

	if cfg.SeedDemoData {
		if err := app.SeedDemoData(
			context.Background(),
			profileRepo, facilityRepo, unitRepo, customerRepo, rentalRepo, invoiceRepo,
		); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed demo data")
		}
	}

	//----------------------------------------------------------------------
	// Services
	//----------------------------------------------------------------------
	emailService := services.NewEmailService(sgClient, cfg.SendGridFromName, cfg.SendGridFromEmail, cfg.SendGridSandbox)
	accountService := services.NewAccountService(profileRepo, teamMemberRepo, emailService, cfg.RSAPrivateKey, cfg.TokenTTL)
	facilityService := services.NewFacilityService(facilityRepo, unitRepo)
	customerService := services.NewCustomerService(customerRepo, twClient, twClient != nil)
	rentalService := services.NewRentalService(rentalRepo, unitRepo)
	billingService := services.NewBillingService(
		invoiceRepo, paymentRepo, paymentMethodRepo, customerRepo, ledgerRepo, emailService, stripeEnabled,
	)
	ledgerService := services.NewLedgerService(ledgerRepo, facilityRepo, customerRepo, rentalRepo)
	reportService := services.NewReportService(reportRepo)

	//----------------------------------------------------------------------
	// Controllers
	//----------------------------------------------------------------------
	healthController := controllers.NewHealthController(application)
	accountController := controllers.NewAccountController(accountService, cfg.TokenTTL, cfg.SecureCookies)
	facilitiesController := controllers.NewFacilitiesController(facilityService)
	customersController := controllers.NewCustomersController(customerService, rentalService, billingService)
	rentalsController := controllers.NewRentalsController(rentalService)
	billingController := controllers.NewBillingController(billingService)
	ledgerController := controllers.NewLedgerController(ledgerService)
	reportsController := controllers.NewReportsController(reportService)

	//----------------------------------------------------------------------
	// Router & Endpoints
	//----------------------------------------------------------------------
	router := mux.NewRouter()

	// Health
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods("GET")

	v1 := router.PathPrefix(routes.APIBase).Subrouter()

	// Public account endpoints
	v1.HandleFunc(routes.AccountRegister, accountController.RegisterHandler).Methods("POST")
	v1.HandleFunc(routes.AccountLogin, accountController.LoginHandler).Methods("POST")

	// Service-token account endpoints
	svc := v1.NewRoute().Subrouter()
	svc.Use(middleware.ServiceTokenMiddleware(cfg.ServiceToken))
	svc.HandleFunc(routes.AccountTeamInvite, accountController.InviteTeamMemberHandler).Methods("POST")
	svc.HandleFunc(routes.AccountSubscription, accountController.UpdateSubscriptionHandler).Methods("POST")

	// Session-protected endpoints
	protected := v1.NewRoute().Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	protected.HandleFunc(routes.AccountLogout, accountController.LogoutHandler).Methods("POST")
	protected.HandleFunc(routes.AccountProfile, accountController.GetProfileHandler).Methods("GET")
	protected.HandleFunc(routes.AccountTeam, accountController.ListTeamMembersHandler).Methods("GET")

	protected.HandleFunc(routes.Facilities, facilitiesController.CreateHandler).Methods("POST")
	protected.HandleFunc(routes.Facilities, facilitiesController.ListHandler).Methods("GET")
	protected.HandleFunc(routes.FacilityByID, facilitiesController.GetHandler).Methods("GET")
	protected.HandleFunc(routes.FacilityByID, facilitiesController.UpdateHandler).Methods("PATCH")
	protected.HandleFunc(routes.FacilityByID, facilitiesController.DeleteHandler).Methods("DELETE")
	protected.HandleFunc(routes.FacilityUnits, facilitiesController.CreateUnitHandler).Methods("POST")
	protected.HandleFunc(routes.FacilityUnits, facilitiesController.ListUnitsHandler).Methods("GET")
	protected.HandleFunc(routes.UnitByID, facilitiesController.GetUnitHandler).Methods("GET")
	protected.HandleFunc(routes.UnitByID, facilitiesController.UpdateUnitHandler).Methods("PATCH")
	protected.HandleFunc(routes.UnitByID, facilitiesController.DeleteUnitHandler).Methods("DELETE")

	protected.HandleFunc(routes.Customers, customersController.CreateHandler).Methods("POST")
	protected.HandleFunc(routes.Customers, customersController.ListHandler).Methods("GET")
	protected.HandleFunc(routes.CustomerByID, customersController.GetHandler).Methods("GET")
	protected.HandleFunc(routes.CustomerByID, customersController.UpdateHandler).Methods("PATCH")
	protected.HandleFunc(routes.CustomerByID, customersController.DeleteHandler).Methods("DELETE")
	protected.HandleFunc(routes.CustomerRentals, customersController.ListRentalsHandler).Methods("GET")
	protected.HandleFunc(routes.CustomerInvoices, customersController.ListInvoicesHandler).Methods("GET")
	protected.HandleFunc(routes.CustomerPaymentMethods, customersController.ListPaymentMethodsHandler).Methods("GET")

	protected.HandleFunc(routes.Rentals, rentalsController.CreateHandler).Methods("POST")
	protected.HandleFunc(routes.Rentals, rentalsController.ListHandler).Methods("GET")
	protected.HandleFunc(routes.RentalByID, rentalsController.GetHandler).Methods("GET")
	protected.HandleFunc(routes.RentalByID, rentalsController.UpdateHandler).Methods("PATCH")
	protected.HandleFunc(routes.RentalByID, rentalsController.DeleteHandler).Methods("DELETE")

	protected.HandleFunc(routes.Invoices, billingController.CreateInvoiceHandler).Methods("POST")
	protected.HandleFunc(routes.Invoices, billingController.ListInvoicesHandler).Methods("GET")
	protected.HandleFunc(routes.InvoiceByID, billingController.GetInvoiceHandler).Methods("GET")
	protected.HandleFunc(routes.InvoiceByID, billingController.UpdateInvoiceHandler).Methods("PATCH")
	protected.HandleFunc(routes.InvoiceByID, billingController.DeleteInvoiceHandler).Methods("DELETE")
	protected.HandleFunc(routes.InvoicePayments, billingController.ListInvoicePaymentsHandler).Methods("GET")

	protected.HandleFunc(routes.Payments, billingController.CreatePaymentHandler).Methods("POST")
	protected.HandleFunc(routes.Payments, billingController.ListPaymentsHandler).Methods("GET")
	protected.HandleFunc(routes.PaymentByID, billingController.GetPaymentHandler).Methods("GET")
	protected.HandleFunc(routes.PaymentStatus, billingController.UpdatePaymentStatusHandler).Methods("PATCH")
	protected.HandleFunc(routes.PaymentMethods, billingController.CreatePaymentMethodHandler).Methods("POST")
	protected.HandleFunc(routes.PaymentMethods, billingController.ListPaymentMethodsHandler).Methods("GET")
	protected.HandleFunc(routes.PaymentMethodByID, billingController.DeletePaymentMethodHandler).Methods("DELETE")

	protected.HandleFunc(routes.Ledger, ledgerController.CreateHandler).Methods("POST")
	protected.HandleFunc(routes.Ledger, ledgerController.ListHandler).Methods("GET")
	protected.HandleFunc(routes.LedgerEntryByID, ledgerController.GetHandler).Methods("GET")

	protected.HandleFunc(routes.ReportsSummary, reportsController.SummaryHandler).Methods("GET")

	//----------------------------------------------------------------------
	// Overdue invoice sweep via cron (UTC)
	//----------------------------------------------------------------------
	c := cron.New(cron.WithLocation(time.UTC))
	if _, schErr := c.AddFunc(cfg.OverdueSweepSpec, func() {
		if e := billingService.MarkOverdueInvoices(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled overdue-invoice sweep failed")
		}
	}); schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule overdue-invoice sweep")
	}
	c.Start()
	defer c.Stop()

	co := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AppUrl},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", config.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("Server failed:", err)
	}
}
