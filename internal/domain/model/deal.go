package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agrofin/financing-service/internal/domain/event"
	"github.com/agrofin/financing-service/internal/domain/valueobject"
	"github.com/agrofin/financing-service/pkg/events"
	"github.com/agrofin/financing-service/pkg/money"
)

// ---------------------------------------------------------------------------
// Deal aggregate root (Finance & Lease Accounting Engine)
// ---------------------------------------------------------------------------

// Deal is an immutable aggregate. Mutations return a new copy.
//
// A Deal is either a finance deal (balance-bound: completes when the
// balance reaches zero) or a lease (term-bound: reaching termMonths
// moves it to TERM_COMPLETE regardless of balance, after which exactly
// one term action resolves it). Monetary fields are integer minor
// currency units.
type Deal struct {
	id       int64
	farmID   int64
	kind     valueobject.DealKind
	itemID   int64
	itemName string
	asset    valueobject.AssetClass

	baseCost          money.Amount
	downPayment       money.Amount
	amountFinanced    money.Amount
	interestRate      decimal.Decimal // annual percent, >= 0
	termMonths        int
	startDay          int // simulation day at origination
	monthlyPayment    money.Amount
	currentBalance    money.Amount
	monthsPaid        int
	totalInterestPaid money.Amount
	missedPayments    int
	status            valueobject.DealStatus
	penaltyPolicy     valueobject.PenaltyPolicy

	// Lease-only.
	leaseStatus     valueobject.LeaseStatus
	residualValue   money.Amount
	securityDeposit money.Amount
	startDamage     float64
	startWear       float64

	version      int
	createdAt    time.Time
	updatedAt    time.Time
	domainEvents events.Collector
}

// PaymentOutcome reports the effect of one applied payment.
type PaymentOutcome struct {
	ToPrincipal       money.Amount
	ToInterest        money.Amount
	NewBalance        money.Amount
	PrepaymentPenalty money.Amount
	Completed         bool
	TermComplete      bool
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

func validateCommon(id, farmID int64, itemName string, baseCost, downPayment, fees money.Amount, interestRate decimal.Decimal, termMonths int) error {
	if id <= 0 {
		return errors.New("deal id must be positive")
	}
	if farmID <= 0 {
		return errors.New("farm id must be positive")
	}
	if itemName == "" {
		return errors.New("item name is required")
	}
	if !baseCost.IsPositive() {
		return errors.New("base cost must be positive")
	}
	if downPayment.IsNegative() || downPayment > baseCost {
		return errors.New("down payment must be within [0, base cost]")
	}
	if fees.IsNegative() {
		return errors.New("fees must not be negative")
	}
	if interestRate.IsNegative() {
		return errors.New("interest rate must not be negative")
	}
	if termMonths <= 0 {
		return valueobject.ErrInvalidTerm
	}
	return nil
}

// NewFinanceDeal originates a finance deal. The amount financed is
// baseCost - downPayment + fees, fixed here and never mutated; the
// monthly payment is computed once and stays immutable for the life of
// the deal.
func NewFinanceDeal(
	id, farmID, itemID int64,
	itemName string,
	asset valueobject.AssetClass,
	baseCost, downPayment, fees money.Amount,
	interestRate decimal.Decimal,
	termMonths, startDay int,
	penaltyPolicy valueobject.PenaltyPolicy,
	now time.Time,
) (Deal, error) {
	if err := validateCommon(id, farmID, itemName, baseCost, downPayment, fees, interestRate, termMonths); err != nil {
		return Deal{}, err
	}

	financed := baseCost - downPayment + fees
	payment, err := ComputeMonthlyPayment(financed, interestRate, termMonths)
	if err != nil {
		return Deal{}, err
	}

	d := Deal{
		id:             id,
		farmID:         farmID,
		kind:           valueobject.DealKindFinance,
		itemID:         itemID,
		itemName:       itemName,
		asset:          asset,
		baseCost:       baseCost,
		downPayment:    downPayment,
		amountFinanced: financed,
		interestRate:   interestRate,
		termMonths:     termMonths,
		startDay:       startDay,
		monthlyPayment: payment,
		currentBalance: financed,
		status:         valueobject.DealStatusActive,
		penaltyPolicy:  penaltyPolicy,
		version:        1,
		createdAt:      now,
		updatedAt:      now,
	}

	d.domainEvents.Record(event.NewDealOriginated(
		id, farmID, d.kind.String(), itemName, baseCost, financed, payment, termMonths, now,
	))

	return d, nil
}

// NewLeaseDeal originates a lease. Lease payments amortize the asset's
// depreciation (baseCost - residualValue) net of the down payment; the
// residual value is the buyout baseline at term end. The security
// deposit is held outside the balance and refunded (less deductions)
// when the lease resolves.
func NewLeaseDeal(
	id, farmID, itemID int64,
	itemName string,
	asset valueobject.AssetClass,
	baseCost, downPayment, fees money.Amount,
	residualValue, securityDeposit money.Amount,
	startDamage, startWear float64,
	interestRate decimal.Decimal,
	termMonths, startDay int,
	now time.Time,
) (Deal, error) {
	if err := validateCommon(id, farmID, itemName, baseCost, downPayment, fees, interestRate, termMonths); err != nil {
		return Deal{}, err
	}
	if residualValue.IsNegative() || residualValue > baseCost {
		return Deal{}, errors.New("residual value must be within [0, base cost]")
	}
	if securityDeposit.IsNegative() {
		return Deal{}, errors.New("security deposit must not be negative")
	}

	depreciation := baseCost - residualValue
	financed := money.Max(depreciation-downPayment, 0) + fees
	payment, err := ComputeMonthlyPayment(financed, interestRate, termMonths)
	if err != nil {
		return Deal{}, err
	}

	d := Deal{
		id:              id,
		farmID:          farmID,
		kind:            valueobject.DealKindLease,
		itemID:          itemID,
		itemName:        itemName,
		asset:           asset,
		baseCost:        baseCost,
		downPayment:     downPayment,
		amountFinanced:  financed,
		interestRate:    interestRate,
		termMonths:      termMonths,
		startDay:        startDay,
		monthlyPayment:  payment,
		currentBalance:  financed,
		status:          valueobject.DealStatusActive,
		penaltyPolicy:   valueobject.NoPenalty(),
		leaseStatus:     valueobject.LeaseStatusActive,
		residualValue:   residualValue,
		securityDeposit: securityDeposit,
		startDamage:     startDamage,
		startWear:       startWear,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}

	d.domainEvents.Record(event.NewDealOriginated(
		id, farmID, d.kind.String(), itemName, baseCost, financed, payment, termMonths, now,
	))

	return d, nil
}

// Snapshot is the exported field set of a Deal, used by persistence and
// read mirrors. Round-trips every field exactly.
type Snapshot struct {
	ID                int64
	FarmID            int64
	Kind              valueobject.DealKind
	ItemID            int64
	ItemName          string
	Asset             valueobject.AssetClass
	BaseCost          money.Amount
	DownPayment       money.Amount
	AmountFinanced    money.Amount
	InterestRate      decimal.Decimal
	TermMonths        int
	StartDay          int
	MonthlyPayment    money.Amount
	CurrentBalance    money.Amount
	MonthsPaid        int
	TotalInterestPaid money.Amount
	MissedPayments    int
	Status            valueobject.DealStatus
	PenaltyPolicy     valueobject.PenaltyPolicy
	LeaseStatus       valueobject.LeaseStatus
	ResidualValue     money.Amount
	SecurityDeposit   money.Amount
	StartDamage       float64
	StartWear         float64
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReconstructDeal rebuilds a Deal aggregate from persistence.
func ReconstructDeal(s Snapshot) Deal {
	return Deal{
		id:                s.ID,
		farmID:            s.FarmID,
		kind:              s.Kind,
		itemID:            s.ItemID,
		itemName:          s.ItemName,
		asset:             s.Asset,
		baseCost:          s.BaseCost,
		downPayment:       s.DownPayment,
		amountFinanced:    s.AmountFinanced,
		interestRate:      s.InterestRate,
		termMonths:        s.TermMonths,
		startDay:          s.StartDay,
		monthlyPayment:    s.MonthlyPayment,
		currentBalance:    s.CurrentBalance,
		monthsPaid:        s.MonthsPaid,
		totalInterestPaid: s.TotalInterestPaid,
		missedPayments:    s.MissedPayments,
		status:            s.Status,
		penaltyPolicy:     s.PenaltyPolicy,
		leaseStatus:       s.LeaseStatus,
		residualValue:     s.ResidualValue,
		securityDeposit:   s.SecurityDeposit,
		startDamage:       s.StartDamage,
		startWear:         s.StartWear,
		version:           s.Version,
		createdAt:         s.CreatedAt,
		updatedAt:         s.UpdatedAt,
	}
}

// Snapshot returns the exported field set of the deal.
func (d Deal) Snapshot() Snapshot {
	return Snapshot{
		ID:                d.id,
		FarmID:            d.farmID,
		Kind:              d.kind,
		ItemID:            d.itemID,
		ItemName:          d.itemName,
		Asset:             d.asset,
		BaseCost:          d.baseCost,
		DownPayment:       d.downPayment,
		AmountFinanced:    d.amountFinanced,
		InterestRate:      d.interestRate,
		TermMonths:        d.termMonths,
		StartDay:          d.startDay,
		MonthlyPayment:    d.monthlyPayment,
		CurrentBalance:    d.currentBalance,
		MonthsPaid:        d.monthsPaid,
		TotalInterestPaid: d.totalInterestPaid,
		MissedPayments:    d.missedPayments,
		Status:            d.status,
		PenaltyPolicy:     d.penaltyPolicy,
		LeaseStatus:       d.leaseStatus,
		ResidualValue:     d.residualValue,
		SecurityDeposit:   d.securityDeposit,
		StartDamage:       d.startDamage,
		StartWear:         d.startWear,
		Version:           d.version,
		CreatedAt:         d.createdAt,
		UpdatedAt:         d.updatedAt,
	}
}

// ---------------------------------------------------------------------------
// Payment application
// ---------------------------------------------------------------------------

// ApplyPayment applies one payment to the deal.
//
// A payment below the period's accrued interest (and not a full payoff)
// is rejected rather than silently growing the balance. A full payoff
// on a finance deal may incur a prepayment penalty, charged separately
// from the balance reduction. Each successful application advances
// monthsPaid by exactly one.
func (d Deal) ApplyPayment(amount money.Amount, now time.Time) (Deal, PaymentOutcome, error) {
	if !d.status.Equal(valueobject.DealStatusActive) {
		return d, PaymentOutcome{}, valueobject.ErrDealAlreadyResolved
	}
	if d.kind.Equal(valueobject.DealKindLease) && !d.leaseStatus.Equal(valueobject.LeaseStatusActive) {
		return d, PaymentOutcome{}, valueobject.ErrDealAlreadyResolved
	}
	if !amount.IsPositive() {
		return d, PaymentOutcome{}, valueobject.ErrInvalidPaymentAmount
	}

	payoff := amount >= d.currentBalance
	if !payoff {
		if interestDue := InterestForPeriod(d.currentBalance, d.interestRate); amount < interestDue {
			return d, PaymentOutcome{}, valueobject.ErrInvalidPaymentAmount
		}
	}

	split := SplitPayment(amount, d.currentBalance, d.interestRate)

	var penalty money.Amount
	if payoff && d.kind.Equal(valueobject.DealKindFinance) {
		penalty = d.penaltyPolicy.FullPayoffPenalty(d.currentBalance, d.monthsPaid)
	}

	next := d
	next.domainEvents = d.domainEvents.Clone()
	next.currentBalance -= split.ToPrincipal
	next.totalInterestPaid += split.ToInterest
	if next.monthsPaid < next.termMonths {
		next.monthsPaid++
	}
	next.updatedAt = now

	next.domainEvents.Record(event.NewPaymentApplied(
		d.id, d.farmID, split.ToPrincipal, split.ToInterest, penalty,
		next.currentBalance, next.monthsPaid, now,
	))

	outcome := PaymentOutcome{
		ToPrincipal:       split.ToPrincipal,
		ToInterest:        split.ToInterest,
		NewBalance:        next.currentBalance,
		PrepaymentPenalty: penalty,
	}

	switch {
	case d.kind.Equal(valueobject.DealKindFinance) && next.currentBalance.IsZero():
		next.status = valueobject.DealStatusCompleted
		next.domainEvents.Record(event.NewDealCompleted(d.id, d.farmID, next.totalInterestPaid, now))
		outcome.Completed = true

	case d.kind.Equal(valueobject.DealKindLease) && next.monthsPaid >= next.termMonths:
		next.leaseStatus = valueobject.LeaseStatusTermComplete
		next.domainEvents.Record(event.NewLeaseTermReached(d.id, d.farmID, next.currentBalance, now))
		outcome.TermComplete = true
	}

	return next, outcome, nil
}

// PrepaymentPenalty returns the fee a full payoff would incur right now.
// Used by callers for the funds sufficiency check before applying.
func (d Deal) PrepaymentPenalty() money.Amount {
	if !d.kind.Equal(valueobject.DealKindFinance) {
		return 0
	}
	return d.penaltyPolicy.FullPayoffPenalty(d.currentBalance, d.monthsPaid)
}

// ---------------------------------------------------------------------------
// Missed payments and default
// ---------------------------------------------------------------------------

// RecordMissedPayment increments the missed-payment counter. Escalation
// to default is an external policy decision, never automatic.
func (d Deal) RecordMissedPayment(now time.Time) (Deal, error) {
	if !d.status.Equal(valueobject.DealStatusActive) {
		return d, valueobject.ErrDealAlreadyResolved
	}

	next := d
	next.domainEvents = d.domainEvents.Clone()
	next.missedPayments++
	next.updatedAt = now
	next.domainEvents.Record(event.NewMissedPaymentRecorded(d.id, d.farmID, next.missedPayments, now))
	return next, nil
}

// MarkDefaulted transitions ACTIVE -> DEFAULTED.
func (d Deal) MarkDefaulted(now time.Time) (Deal, error) {
	if !d.status.Equal(valueobject.DealStatusActive) {
		return d, valueobject.ErrInvalidStatusTransition
	}

	next := d
	next.domainEvents = d.domainEvents.Clone()
	next.status = valueobject.DealStatusDefaulted
	next.updatedAt = now
	next.domainEvents.Record(event.NewDealDefaulted(d.id, d.farmID, d.currentBalance, d.missedPayments, now))
	return next, nil
}

// ---------------------------------------------------------------------------
// Lease term resolution transitions
// ---------------------------------------------------------------------------

func (d Deal) guardLeaseResolvable() error {
	if !d.kind.Equal(valueobject.DealKindLease) {
		return valueobject.ErrDealNotResolvable
	}
	if d.leaseStatus.IsResolved() {
		return valueobject.ErrDealAlreadyResolved
	}
	if !d.leaseStatus.Equal(valueobject.LeaseStatusTermComplete) {
		return valueobject.ErrDealNotResolvable
	}
	return nil
}

// Return resolves a TERM_COMPLETE lease by giving the asset back. The
// refund and penalty are computed by the lease term calculator; asset
// repossession itself is the caller's job.
func (d Deal) Return(depositRefund, damagePenalty money.Amount, now time.Time) (Deal, error) {
	if err := d.guardLeaseResolvable(); err != nil {
		return d, err
	}

	next := d
	next.domainEvents = d.domainEvents.Clone()
	next.leaseStatus = valueobject.LeaseStatusReturned
	next.status = valueobject.DealStatusCompleted
	next.updatedAt = now
	next.domainEvents.Record(event.NewLeaseReturned(d.id, d.farmID, depositRefund, damagePenalty, now))
	return next, nil
}

// Buyout resolves a TERM_COMPLETE lease by transferring ownership at the
// buyout price. Funds sufficiency is the caller's pre-check.
func (d Deal) Buyout(buyoutPrice, equityApplied, depositRefund money.Amount, now time.Time) (Deal, error) {
	if err := d.guardLeaseResolvable(); err != nil {
		return d, err
	}

	next := d
	next.domainEvents = d.domainEvents.Clone()
	next.leaseStatus = valueobject.LeaseStatusBoughtOut
	next.status = valueobject.DealStatusCompleted
	next.updatedAt = now
	next.domainEvents.Record(event.NewLeaseBoughtOut(d.id, d.farmID, buyoutPrice, equityApplied, depositRefund, now))
	return next, nil
}

// RenewInto resolves a TERM_COMPLETE lease by rolling it into a
// successor cycle. The successor starts a fresh Active lease on the same
// asset: its assumed value is the old residual, its residual is the old
// buyout price (accumulated equity lowers the new baseline), monthsPaid
// resets to zero and the security deposit carries over.
func (d Deal) RenewInto(
	successorID int64,
	buyoutPrice money.Amount,
	termMonths, startDay int,
	currentDamage, currentWear float64,
	now time.Time,
) (Deal, Deal, error) {
	if err := d.guardLeaseResolvable(); err != nil {
		return d, Deal{}, err
	}
	if termMonths <= 0 {
		return d, Deal{}, valueobject.ErrInvalidTerm
	}

	successor, err := NewLeaseDeal(
		successorID, d.farmID, d.itemID, d.itemName, d.asset,
		d.residualValue, 0, 0,
		buyoutPrice, d.securityDeposit,
		currentDamage, currentWear,
		d.interestRate, termMonths, startDay, now,
	)
	if err != nil {
		return d, Deal{}, err
	}

	next := d
	next.domainEvents = d.domainEvents.Clone()
	next.leaseStatus = valueobject.LeaseStatusRenewed
	next.status = valueobject.DealStatusCompleted
	next.updatedAt = now
	next.domainEvents.Record(event.NewLeaseRenewed(d.id, d.farmID, successorID, buyoutPrice, termMonths, now))
	return next, successor, nil
}

// Depreciation returns the asset value decline a lease amortizes.
func (d Deal) Depreciation() money.Amount {
	return d.baseCost - d.residualValue
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (d Deal) ID() int64                                  { return d.id }
func (d Deal) FarmID() int64                              { return d.farmID }
func (d Deal) Kind() valueobject.DealKind                 { return d.kind }
func (d Deal) ItemID() int64                              { return d.itemID }
func (d Deal) ItemName() string                           { return d.itemName }
func (d Deal) Asset() valueobject.AssetClass              { return d.asset }
func (d Deal) BaseCost() money.Amount                     { return d.baseCost }
func (d Deal) DownPayment() money.Amount                  { return d.downPayment }
func (d Deal) AmountFinanced() money.Amount               { return d.amountFinanced }
func (d Deal) InterestRate() decimal.Decimal              { return d.interestRate }
func (d Deal) TermMonths() int                            { return d.termMonths }
func (d Deal) StartDay() int                              { return d.startDay }
func (d Deal) MonthlyPayment() money.Amount               { return d.monthlyPayment }
func (d Deal) CurrentBalance() money.Amount               { return d.currentBalance }
func (d Deal) MonthsPaid() int                            { return d.monthsPaid }
func (d Deal) TotalInterestPaid() money.Amount            { return d.totalInterestPaid }
func (d Deal) MissedPayments() int                        { return d.missedPayments }
func (d Deal) Status() valueobject.DealStatus             { return d.status }
func (d Deal) PenaltyPolicy() valueobject.PenaltyPolicy   { return d.penaltyPolicy }
func (d Deal) LeaseStatus() valueobject.LeaseStatus       { return d.leaseStatus }
func (d Deal) ResidualValue() money.Amount                { return d.residualValue }
func (d Deal) SecurityDeposit() money.Amount              { return d.securityDeposit }
func (d Deal) StartDamage() float64                       { return d.startDamage }
func (d Deal) StartWear() float64                         { return d.startWear }
func (d Deal) Version() int                               { return d.version }
func (d Deal) CreatedAt() time.Time                       { return d.createdAt }
func (d Deal) UpdatedAt() time.Time                       { return d.updatedAt }
func (d Deal) DomainEvents() []event.DomainEvent          { return d.domainEvents.Events() }

// ClearEvents returns a copy with an empty event list.
func (d Deal) ClearEvents() Deal {
	next := d
	next.domainEvents = events.Collector{}
	return next
}
