package routes

const (
	// Health
	Health = "/health"

	APIBase = "/api/v1"

	// Facilities & units
	Facilities    = "/facilities"
	FacilityByID  = "/facilities/{facilityID}"
	FacilityUnits = "/facilities/{facilityID}/units"
	UnitByID      = "/units/{unitID}"

	// Customers
	Customers              = "/customers"
	CustomerByID           = "/customers/{customerID}"
	CustomerRentals        = "/customers/{customerID}/rentals"
	CustomerInvoices       = "/customers/{customerID}/invoices"
	CustomerPaymentMethods = "/customers/{customerID}/payment-methods"

	// Rentals
	Rentals    = "/rentals"
	RentalByID = "/rentals/{rentalID}"

	// Billing
	Invoices        = "/invoices"
	InvoiceByID     = "/invoices/{invoiceID}"
	InvoicePayments = "/invoices/{invoiceID}/payments"

	Payments          = "/payments"
	PaymentByID       = "/payments/{paymentID}"
	PaymentStatus     = "/payments/{paymentID}/status"
	PaymentMethods    = "/payment-methods"
	PaymentMethodByID = "/payment-methods/{paymentMethodID}"

	// Ledger
	Ledger          = "/ledger"
	LedgerEntryByID = "/ledger/{entryID}"

	// Reports
	ReportsSummary = "/reports/summary"

	// Account (register/login public, the rest service-token or session)
	AccountRegister     = "/account/register"
	AccountLogin        = "/account/login"
	AccountLogout       = "/account/logout"
	AccountProfile      = "/account/profile"
	AccountTeam         = "/account/team"
	AccountTeamInvite   = "/account/team/invite"
	AccountSubscription = "/account/subscription"
)
