package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/twinguy/stowpilot-sub000/internal/models"
	"github.com/twinguy/stowpilot-sub000/internal/utils"
)

// In-memory repository fakes. They mirror the SQL layer's contract: owner
// scoping makes foreign rows look missing, zero-row updates surface as
// pgx.ErrNoRows, and the rental/payment fakes keep the same cross-entity
// sync the transactional repositories do.

/* ───────────── facilities ───────────── */

type fakeFacilityRepo struct {
	facilities map[uuid.UUID]*models.Facility
}

func newFakeFacilityRepo() *fakeFacilityRepo {
	return &fakeFacilityRepo{facilities: make(map[uuid.UUID]*models.Facility)}
}

func (f *fakeFacilityRepo) Create(ctx context.Context, fac *models.Facility) error {
	fac.RowVersion = 1
	cp := *fac
	f.facilities[fac.ID] = &cp
	return nil
}

func (f *fakeFacilityRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Facility, error) {
	fac, ok := f.facilities[id]
	if !ok || fac.OwnerID != ownerID {
		return nil, nil
	}
	cp := *fac
	return &cp, nil
}

func (f *fakeFacilityRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Facility, error) {
	var out []*models.Facility
	for _, fac := range f.facilities {
		if fac.OwnerID == ownerID {
			cp := *fac
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeFacilityRepo) UpdateIfVersion(ctx context.Context, fac *models.Facility, expected int64) (pgconn.CommandTag, error) {
	stored, ok := f.facilities[fac.ID]
	if !ok || stored.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := *fac
	cp.RowVersion = expected + 1
	f.facilities[fac.ID] = &cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (f *fakeFacilityRepo) UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Facility) error) error {
	fac, err := f.GetByID(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if fac == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(fac); err != nil {
		return err
	}
	tag, err := f.UpdateIfVersion(ctx, fac, fac.RowVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrRowVersionConflict
	}
	return nil
}

func (f *fakeFacilityRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	fac, ok := f.facilities[id]
	if !ok || fac.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(f.facilities, id)
	return nil
}

/* ───────────── units ───────────── */

type fakeUnitRepo struct {
	units  map[uuid.UUID]*models.Unit
	owners map[uuid.UUID]uuid.UUID

	// When set, Create resolves the unit's owner through its facility, the
	// way the SQL join does.
	facilities *fakeFacilityRepo
}

func newFakeUnitRepo(facilities *fakeFacilityRepo) *fakeUnitRepo {
	return &fakeUnitRepo{
		units:      make(map[uuid.UUID]*models.Unit),
		owners:     make(map[uuid.UUID]uuid.UUID),
		facilities: facilities,
	}
}

func (f *fakeUnitRepo) add(ownerID uuid.UUID, u *models.Unit) {
	if u.RowVersion == 0 {
		u.RowVersion = 1
	}
	f.units[u.ID] = u
	f.owners[u.ID] = ownerID
}

func (f *fakeUnitRepo) Create(ctx context.Context, u *models.Unit) error {
	u.RowVersion = 1
	cp := *u
	f.units[u.ID] = &cp
	if f.facilities != nil {
		if fac, ok := f.facilities.facilities[u.FacilityID]; ok {
			f.owners[u.ID] = fac.OwnerID
		}
	}
	return nil
}

func (f *fakeUnitRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Unit, error) {
	u, ok := f.units[id]
	if !ok || f.owners[id] != ownerID {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUnitRepo) ListByFacilityID(ctx context.Context, facilityID, ownerID uuid.UUID) ([]*models.Unit, error) {
	var out []*models.Unit
	for id, u := range f.units {
		if u.FacilityID == facilityID && f.owners[id] == ownerID {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUnitRepo) UpdateIfVersion(ctx context.Context, u *models.Unit, expected int64) (pgconn.CommandTag, error) {
	stored, ok := f.units[u.ID]
	if !ok || stored.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := *u
	cp.RowVersion = expected + 1
	f.units[u.ID] = &cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (f *fakeUnitRepo) UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Unit) error) error {
	u, err := f.GetByID(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if u == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(u); err != nil {
		return err
	}
	tag, err := f.UpdateIfVersion(ctx, u, u.RowVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrRowVersionConflict
	}
	return nil
}

func (f *fakeUnitRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	if _, ok := f.units[id]; !ok || f.owners[id] != ownerID {
		return pgx.ErrNoRows
	}
	delete(f.units, id)
	delete(f.owners, id)
	return nil
}

/* ───────────── rentals ───────────── */

type fakeRentalRepo struct {
	rentals map[uuid.UUID]*models.Rental
	owners  map[uuid.UUID]uuid.UUID
	units   *fakeUnitRepo
}

func newFakeRentalRepo(units *fakeUnitRepo) *fakeRentalRepo {
	return &fakeRentalRepo{
		rentals: make(map[uuid.UUID]*models.Rental),
		owners:  make(map[uuid.UUID]uuid.UUID),
		units:   units,
	}
}

func (f *fakeRentalRepo) otherActiveRentalOnUnit(unitID, excludeRentalID uuid.UUID) bool {
	for id, r := range f.rentals {
		if id != excludeRentalID && r.UnitID == unitID && r.Status.Occupies() {
			return true
		}
	}
	return false
}

func (f *fakeRentalRepo) syncUnit(unitID uuid.UUID, status models.RentalStatusType) {
	if next, ok := models.UnitStatusForRental(status); ok {
		if u, exists := f.units.units[unitID]; exists {
			u.Status = next
		}
	}
}

func (f *fakeRentalRepo) CreateWithUnitSync(ctx context.Context, rental *models.Rental, ownerID uuid.UUID) error {
	if u, ok := f.units.units[rental.UnitID]; !ok || f.units.owners[rental.UnitID] != ownerID {
		return pgx.ErrNoRows
	} else if rental.Status.Occupies() {
		if u.Status == models.UnitStatusOccupied || f.otherActiveRentalOnUnit(rental.UnitID, uuid.Nil) {
			return utils.ErrUnitUnavailable
		}
	}

	rental.RowVersion = 1
	cp := *rental
	f.rentals[rental.ID] = &cp
	f.owners[rental.ID] = ownerID
	f.syncUnit(rental.UnitID, rental.Status)
	return nil
}

func (f *fakeRentalRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Rental, error) {
	r, ok := f.rentals[id]
	if !ok || f.owners[id] != ownerID {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRentalRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Rental, error) {
	var out []*models.Rental
	for id, r := range f.rentals {
		if f.owners[id] == ownerID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRentalRepo) ListByCustomerID(ctx context.Context, customerID, ownerID uuid.UUID) ([]*models.Rental, error) {
	var out []*models.Rental
	for id, r := range f.rentals {
		if r.CustomerID == customerID && f.owners[id] == ownerID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRentalRepo) UpdateWithUnitSync(ctx context.Context, rental *models.Rental, ownerID uuid.UUID, expectedVersion int64) (*models.Rental, error) {
	prev, ok := f.rentals[rental.ID]
	if !ok || f.owners[rental.ID] != ownerID {
		return nil, pgx.ErrNoRows
	}
	if prev.RowVersion != expectedVersion {
		return nil, utils.ErrRowVersionConflict
	}
	if _, exists := f.units.units[rental.UnitID]; !exists || f.units.owners[rental.UnitID] != ownerID {
		return nil, pgx.ErrNoRows
	}
	if rental.Status.Occupies() && f.otherActiveRentalOnUnit(rental.UnitID, rental.ID) {
		return nil, utils.ErrUnitUnavailable
	}

	if prev.UnitID != rental.UnitID && prev.Status.Occupies() {
		if u, exists := f.units.units[prev.UnitID]; exists {
			u.Status = models.UnitStatusAvailable
		}
	}

	cp := *rental
	cp.RowVersion = expectedVersion + 1
	f.rentals[rental.ID] = &cp
	f.syncUnit(rental.UnitID, rental.Status)

	out := cp
	return &out, nil
}

func (f *fakeRentalRepo) DeleteWithUnitSync(ctx context.Context, id, ownerID uuid.UUID) error {
	r, ok := f.rentals[id]
	if !ok || f.owners[id] != ownerID {
		return pgx.ErrNoRows
	}
	if r.Status.Occupies() {
		if u, exists := f.units.units[r.UnitID]; exists {
			u.Status = models.UnitStatusAvailable
		}
	}
	delete(f.rentals, id)
	delete(f.owners, id)
	return nil
}

/* ───────────── customers ───────────── */

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*models.Customer)}
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *models.Customer) error {
	c.RowVersion = 1
	cp := *c
	f.customers[c.ID] = &cp
	return nil
}

func (f *fakeCustomerRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok || c.OwnerID != ownerID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCustomerRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Customer, error) {
	var out []*models.Customer
	for _, c := range f.customers {
		if c.OwnerID == ownerID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) UpdateIfVersion(ctx context.Context, c *models.Customer, expected int64) (pgconn.CommandTag, error) {
	stored, ok := f.customers[c.ID]
	if !ok || stored.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := *c
	cp.RowVersion = expected + 1
	f.customers[c.ID] = &cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (f *fakeCustomerRepo) UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Customer) error) error {
	c, err := f.GetByID(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if c == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(c); err != nil {
		return err
	}
	tag, err := f.UpdateIfVersion(ctx, c, c.RowVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrRowVersionConflict
	}
	return nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	c, ok := f.customers[id]
	if !ok || c.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(f.customers, id)
	return nil
}

/* ───────────── invoices ───────────── */

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*models.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*models.Invoice)}
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, inv *models.Invoice) error {
	inv.RowVersion = 1
	cp := *inv
	f.invoices[inv.ID] = &cp
	return nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok || inv.OwnerID != ownerID {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, inv := range f.invoices {
		if inv.OwnerID == ownerID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) ListByCustomerID(ctx context.Context, customerID, ownerID uuid.UUID) ([]*models.Invoice, error) {
	var out []*models.Invoice
	for _, inv := range f.invoices {
		if inv.CustomerID == customerID && inv.OwnerID == ownerID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) UpdateIfVersion(ctx context.Context, inv *models.Invoice, expected int64) (pgconn.CommandTag, error) {
	stored, ok := f.invoices[inv.ID]
	if !ok || stored.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cp := *inv
	cp.RowVersion = expected + 1
	f.invoices[inv.ID] = &cp
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (f *fakeInvoiceRepo) UpdateWithRetry(ctx context.Context, id, ownerID uuid.UUID, mutate func(*models.Invoice) error) error {
	inv, err := f.GetByID(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if inv == nil {
		return pgx.ErrNoRows
	}
	if err := mutate(inv); err != nil {
		return err
	}
	tag, err := f.UpdateIfVersion(ctx, inv, inv.RowVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return utils.ErrRowVersionConflict
	}
	return nil
}

func (f *fakeInvoiceRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	inv, ok := f.invoices[id]
	if !ok || inv.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(f.invoices, id)
	return nil
}

func (f *fakeInvoiceRepo) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	var n int64
	for _, inv := range f.invoices {
		if inv.Status == models.InvoiceStatusSent && inv.DueDate.Before(asOf) {
			inv.Status = models.InvoiceStatusOverdue
			inv.RowVersion++
			n++
		}
	}
	return n, nil
}

/* ───────────── payments ───────────── */

type fakePaymentRepo struct {
	payments map[uuid.UUID]*models.Payment
	invoices *fakeInvoiceRepo
}

func newFakePaymentRepo(invoices *fakeInvoiceRepo) *fakePaymentRepo {
	return &fakePaymentRepo{
		payments: make(map[uuid.UUID]*models.Payment),
		invoices: invoices,
	}
}

func (f *fakePaymentRepo) recalc(inv *models.Invoice) *models.Invoice {
	var paid float64
	for _, p := range f.payments {
		if p.InvoiceID == inv.ID && p.Status == models.PaymentStatusCompleted {
			paid += p.Amount
		}
	}
	inv.AmountPaid = paid
	prev := inv.Status
	inv.Status = models.InvoiceStatusAfterRecalc(prev, inv.AmountDue, paid)
	if inv.Status == models.InvoiceStatusPaid && prev != models.InvoiceStatusPaid {
		now := time.Now().UTC()
		inv.PaidAt = &now
	}
	if inv.Status != models.InvoiceStatusPaid {
		inv.PaidAt = nil
	}
	inv.RowVersion++
	cp := *inv
	return &cp
}

func (f *fakePaymentRepo) CreateWithRecalc(ctx context.Context, p *models.Payment, ownerID uuid.UUID) (*models.Invoice, error) {
	inv, ok := f.invoices.invoices[p.InvoiceID]
	if !ok || inv.OwnerID != ownerID {
		return nil, pgx.ErrNoRows
	}
	if inv.Status == models.InvoiceStatusCancelled {
		return nil, utils.ErrInvoiceCancelled
	}

	p.RowVersion = 1
	cp := *p
	f.payments[p.ID] = &cp

	if p.Status == models.PaymentStatusCompleted {
		return f.recalc(inv), nil
	}
	out := *inv
	return &out, nil
}

func (f *fakePaymentRepo) ownerOf(p *models.Payment) uuid.UUID {
	if inv, ok := f.invoices.invoices[p.InvoiceID]; ok {
		return inv.OwnerID
	}
	return uuid.Nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.Payment, error) {
	p, ok := f.payments[id]
	if !ok || f.ownerOf(p) != ownerID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePaymentRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.payments {
		if f.ownerOf(p) == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) ListByInvoiceID(ctx context.Context, invoiceID, ownerID uuid.UUID) ([]*models.Payment, error) {
	var out []*models.Payment
	for _, p := range f.payments {
		if p.InvoiceID == invoiceID && f.ownerOf(p) == ownerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) SetStatusWithRecalc(ctx context.Context, id, ownerID uuid.UUID, newStatus models.PaymentStatusType, expectedVersion int64) (*models.Payment, *models.Invoice, error) {
	p, ok := f.payments[id]
	if !ok || f.ownerOf(p) != ownerID {
		return nil, nil, pgx.ErrNoRows
	}
	if inv, ok := f.invoices.invoices[p.InvoiceID]; ok && inv.Status == models.InvoiceStatusCancelled {
		return nil, nil, utils.ErrInvoiceCancelled
	}
	if p.RowVersion != expectedVersion {
		return nil, nil, utils.ErrRowVersionConflict
	}
	if !models.ValidPaymentTransition(p.Status, newStatus) {
		return nil, nil, utils.ErrInvalidStatusTransition
	}

	wasCompleted := p.Status == models.PaymentStatusCompleted
	p.Status = newStatus
	if newStatus == models.PaymentStatusCompleted {
		now := time.Now().UTC()
		p.CompletedAt = &now
	}
	p.RowVersion++

	inv := f.invoices.invoices[p.InvoiceID]
	var invOut *models.Invoice
	if newStatus == models.PaymentStatusCompleted || wasCompleted {
		invOut = f.recalc(inv)
	} else {
		cp := *inv
		invOut = &cp
	}

	pOut := *p
	return &pOut, invOut, nil
}

/* ───────────── payment methods ───────────── */

type fakePaymentMethodRepo struct {
	methods   map[uuid.UUID]*models.PaymentMethod
	customers *fakeCustomerRepo
}

func newFakePaymentMethodRepo(customers *fakeCustomerRepo) *fakePaymentMethodRepo {
	return &fakePaymentMethodRepo{
		methods:   make(map[uuid.UUID]*models.PaymentMethod),
		customers: customers,
	}
}

func (f *fakePaymentMethodRepo) ownerOf(m *models.PaymentMethod) uuid.UUID {
	if c, ok := f.customers.customers[m.CustomerID]; ok {
		return c.OwnerID
	}
	return uuid.Nil
}

func (f *fakePaymentMethodRepo) Create(ctx context.Context, m *models.PaymentMethod) error {
	cp := *m
	f.methods[m.ID] = &cp
	return nil
}

func (f *fakePaymentMethodRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.PaymentMethod, error) {
	m, ok := f.methods[id]
	if !ok || f.ownerOf(m) != ownerID {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakePaymentMethodRepo) ListByCustomerID(ctx context.Context, customerID, ownerID uuid.UUID) ([]*models.PaymentMethod, error) {
	var out []*models.PaymentMethod
	for _, m := range f.methods {
		if m.CustomerID == customerID && f.ownerOf(m) == ownerID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePaymentMethodRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*models.PaymentMethod, error) {
	var out []*models.PaymentMethod
	for _, m := range f.methods {
		if f.ownerOf(m) == ownerID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakePaymentMethodRepo) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	m, ok := f.methods[id]
	if !ok || f.ownerOf(m) != ownerID {
		return pgx.ErrNoRows
	}
	delete(f.methods, id)
	return nil
}

/* ───────────── ledger ───────────── */

type fakeLedgerRepo struct {
	entries []*models.LedgerEntry
}

func newFakeLedgerRepo() *fakeLedgerRepo { return &fakeLedgerRepo{} }

func (f *fakeLedgerRepo) Create(ctx context.Context, e *models.LedgerEntry) error {
	cp := *e
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeLedgerRepo) GetByID(ctx context.Context, id, ownerID uuid.UUID) (*models.LedgerEntry, error) {
	for _, e := range f.entries {
		if e.ID == id && e.OwnerID == ownerID {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*models.LedgerEntry, error) {
	var out []*models.LedgerEntry
	for _, e := range f.entries {
		if e.OwnerID != ownerID {
			continue
		}
		if from != nil && e.OccurredOn.Before(*from) {
			continue
		}
		if to != nil && e.OccurredOn.After(*to) {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

/* ───────────── profiles / team ───────────── */

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*models.Profile)}
}

func (f *fakeProfileRepo) Create(ctx context.Context, p *models.Profile) error {
	p.RowVersion = 1
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileRepo) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	for _, p := range f.profiles {
		if strings.EqualFold(p.Email, email) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) SetTier(ctx context.Context, id uuid.UUID, tier models.SubscriptionTier) error {
	p, ok := f.profiles[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.Tier = tier
	return nil
}

type fakeTeamMemberRepo struct {
	members []*models.TeamMember
}

func newFakeTeamMemberRepo() *fakeTeamMemberRepo { return &fakeTeamMemberRepo{} }

func (f *fakeTeamMemberRepo) Create(ctx context.Context, m *models.TeamMember) error {
	cp := *m
	f.members = append(f.members, &cp)
	return nil
}

func (f *fakeTeamMemberRepo) GetByProfileAndEmail(ctx context.Context, profileID uuid.UUID, email string) (*models.TeamMember, error) {
	for _, m := range f.members {
		if m.ProfileID == profileID && strings.EqualFold(m.Email, email) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTeamMemberRepo) ListByProfileID(ctx context.Context, profileID uuid.UUID) ([]*models.TeamMember, error) {
	var out []*models.TeamMember
	for _, m := range f.members {
		if m.ProfileID == profileID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}
