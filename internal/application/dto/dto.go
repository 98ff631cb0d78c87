package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lease term actions accepted by ResolveLeaseTerm.
const (
	LeaseActionReturn = "RETURN"
	LeaseActionBuyout = "BUYOUT"
	LeaseActionRenew  = "RENEW"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// OriginateDealRequest carries the data the purchase flow submits when a
// player finances or leases an item.
type OriginateDealRequest struct {
	FarmID          int64           `json:"farm_id"`
	ItemID          int64           `json:"item_id"`
	ItemName        string          `json:"item_name"`
	Kind            string          `json:"kind"`
	AssetClass      string          `json:"asset_class"`
	BaseCost        decimal.Decimal `json:"base_cost"`
	DownPayment     decimal.Decimal `json:"down_payment"`
	Fees            decimal.Decimal `json:"fees"`
	InterestRate    decimal.Decimal `json:"interest_rate"`
	TermMonths      int             `json:"term_months"`
	StartDay        int             `json:"start_day"`
	PenaltyKind     string          `json:"penalty_kind,omitempty"`
	PenaltyPercent  decimal.Decimal `json:"penalty_percent,omitempty"`
	PenaltyWindow   int             `json:"penalty_window_months,omitempty"`
	ResidualValue   decimal.Decimal `json:"residual_value,omitempty"`
	SecurityDeposit decimal.Decimal `json:"security_deposit,omitempty"`
	StartDamage     float64         `json:"start_damage,omitempty"`
	StartWear       float64         `json:"start_wear,omitempty"`
}

// ApplyPaymentRequest carries one payment against a deal.
type ApplyPaymentRequest struct {
	DealID int64           `json:"deal_id"`
	Amount decimal.Decimal `json:"amount"`
}

// AssetConditionRequest is the asset's current state as observed by the
// caller holding the vehicle reference.
type AssetConditionRequest struct {
	Damage float64 `json:"damage"`
	Wear   float64 `json:"wear"`
}

// ResolveLeaseTermRequest carries a term action for a TERM_COMPLETE lease.
type ResolveLeaseTermRequest struct {
	DealID        int64                  `json:"deal_id"`
	Action        string                 `json:"action"`
	NewTermMonths int                    `json:"new_term_months,omitempty"`
	StartDay      int                    `json:"start_day,omitempty"`
	Condition     *AssetConditionRequest `json:"condition,omitempty"`
}

// GetDealRequest identifies a deal to retrieve.
type GetDealRequest struct {
	DealID int64 `json:"deal_id"`
}

// ListFarmDealsRequest identifies a farm whose deals to list.
type ListFarmDealsRequest struct {
	FarmID int64 `json:"farm_id"`
}

// RecordMissedPaymentRequest marks one missed period on a deal.
type RecordMissedPaymentRequest struct {
	DealID int64 `json:"deal_id"`
}

// MarkDefaultedRequest moves a deal into default; invoked by the
// external missed-payment policy, never automatically.
type MarkDefaultedRequest struct {
	DealID int64 `json:"deal_id"`
}

// InspectionOptionsRequest asks for inspection tiers at a price point.
type InspectionOptionsRequest struct {
	Price decimal.Decimal `json:"price"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// DealResponse is the external representation of a deal. Monetary
// fields are decimal major units; conversion from minor units happens
// here, at the presentation boundary.
type DealResponse struct {
	ID                int64           `json:"id"`
	FarmID            int64           `json:"farm_id"`
	Kind              string          `json:"kind"`
	ItemID            int64           `json:"item_id"`
	ItemName          string          `json:"item_name"`
	AssetClass        string          `json:"asset_class"`
	BaseCost          decimal.Decimal `json:"base_cost"`
	DownPayment       decimal.Decimal `json:"down_payment"`
	AmountFinanced    decimal.Decimal `json:"amount_financed"`
	InterestRate      decimal.Decimal `json:"interest_rate"`
	TermMonths        int             `json:"term_months"`
	StartDay          int             `json:"start_day"`
	MonthlyPayment    decimal.Decimal `json:"monthly_payment"`
	CurrentBalance    decimal.Decimal `json:"current_balance"`
	MonthsPaid        int             `json:"months_paid"`
	TotalInterestPaid decimal.Decimal `json:"total_interest_paid"`
	MissedPayments    int             `json:"missed_payments"`
	Status            string          `json:"status"`
	LeaseStatus       string          `json:"lease_status,omitempty"`
	ResidualValue     decimal.Decimal `json:"residual_value,omitempty"`
	SecurityDeposit   decimal.Decimal `json:"security_deposit,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// PaymentResponse reports the effect of one applied payment.
type PaymentResponse struct {
	DealID            int64           `json:"deal_id"`
	ToPrincipal       decimal.Decimal `json:"to_principal"`
	ToInterest        decimal.Decimal `json:"to_interest"`
	PrepaymentPenalty decimal.Decimal `json:"prepayment_penalty"`
	NewBalance        decimal.Decimal `json:"new_balance"`
	MonthsPaid        int             `json:"months_paid"`
	Completed         bool            `json:"completed"`
	TermComplete      bool            `json:"term_complete"`
	Status            string          `json:"status"`
}

// DeductionLine is one itemised security-deposit deduction.
type DeductionLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// LeaseResolutionResponse reports the amounts settled by a lease term
// action. The caller executes repossession or ownership transfer and
// settles the amounts against the farm ledger.
type LeaseResolutionResponse struct {
	DealID        int64           `json:"deal_id"`
	Action        string          `json:"action"`
	LeaseStatus   string          `json:"lease_status"`
	DepositRefund decimal.Decimal `json:"deposit_refund"`
	Deductions    []DeductionLine `json:"deductions,omitempty"`
	DamagePenalty decimal.Decimal `json:"damage_penalty"`
	EquityApplied decimal.Decimal `json:"equity_applied"`
	BuyoutPrice   decimal.Decimal `json:"buyout_price"`
	SuccessorID   int64           `json:"successor_id,omitempty"`
}

// ScheduleEntryResponse is one projected amortization period.
type ScheduleEntryResponse struct {
	Period           int             `json:"period"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// ScheduleResponse is the full projected amortization of a deal.
type ScheduleResponse struct {
	DealID  int64                   `json:"deal_id"`
	Entries []ScheduleEntryResponse `json:"entries"`
}

// InspectionTierResponse is one inspection option for a used asset.
type InspectionTierResponse struct {
	Name          string          `json:"name"`
	Cost          decimal.Decimal `json:"cost"`
	DurationHours int             `json:"duration_hours"`
}
