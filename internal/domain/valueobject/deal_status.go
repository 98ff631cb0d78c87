package valueobject

import (
	"fmt"
)

// ---------------------------------------------------------------------------
// DealKind – immutable value object
// ---------------------------------------------------------------------------

// DealKind distinguishes the two deal variants. The set is closed:
// variant-specific behavior switches on the kind rather than on the
// presence of optional fields.
type DealKind struct {
	value string
}

const (
	dealKindFinance = "FINANCE"
	dealKindLease   = "LEASE"
)

var (
	DealKindFinance = DealKind{value: dealKindFinance}
	DealKindLease   = DealKind{value: dealKindLease}
)

var validDealKinds = map[string]DealKind{
	dealKindFinance: DealKindFinance,
	dealKindLease:   DealKindLease,
}

// NewDealKind creates a DealKind from a raw string.
func NewDealKind(s string) (DealKind, error) {
	v, ok := validDealKinds[s]
	if !ok {
		return DealKind{}, fmt.Errorf("invalid deal kind: %q", s)
	}
	return v, nil
}

// String returns the string representation of the kind.
func (k DealKind) String() string { return k.value }

// IsZero returns true if the kind has not been initialised.
func (k DealKind) IsZero() bool { return k.value == "" }

// Equal returns true when both kinds carry the same value.
func (k DealKind) Equal(other DealKind) bool { return k.value == other.value }

// ---------------------------------------------------------------------------
// AssetClass – immutable value object
// ---------------------------------------------------------------------------

// AssetClass identifies what a deal finances. Mechanical condition
// (damage/wear) applies to vehicles only; land leases skip the damage
// deduction at term end.
type AssetClass struct {
	value string
}

const (
	assetClassVehicle = "VEHICLE"
	assetClassLand    = "LAND"
)

var (
	AssetClassVehicle = AssetClass{value: assetClassVehicle}
	AssetClassLand    = AssetClass{value: assetClassLand}
)

var validAssetClasses = map[string]AssetClass{
	assetClassVehicle: AssetClassVehicle,
	assetClassLand:    AssetClassLand,
}

// NewAssetClass creates an AssetClass from a raw string.
func NewAssetClass(s string) (AssetClass, error) {
	v, ok := validAssetClasses[s]
	if !ok {
		return AssetClass{}, fmt.Errorf("invalid asset class: %q", s)
	}
	return v, nil
}

// String returns the string representation of the asset class.
func (a AssetClass) String() string { return a.value }

// IsZero returns true if the asset class has not been initialised.
func (a AssetClass) IsZero() bool { return a.value == "" }

// Equal returns true when both asset classes carry the same value.
func (a AssetClass) Equal(other AssetClass) bool { return a.value == other.value }

// ---------------------------------------------------------------------------
// DealStatus – immutable value object
// ---------------------------------------------------------------------------

// DealStatus represents the lifecycle stage of a deal.
type DealStatus struct {
	value string
}

const (
	dealStatusActive    = "ACTIVE"
	dealStatusCompleted = "COMPLETED"
	dealStatusDefaulted = "DEFAULTED"
)

var (
	DealStatusActive    = DealStatus{value: dealStatusActive}
	DealStatusCompleted = DealStatus{value: dealStatusCompleted}
	DealStatusDefaulted = DealStatus{value: dealStatusDefaulted}
)

var validDealStatuses = map[string]DealStatus{
	dealStatusActive:    DealStatusActive,
	dealStatusCompleted: DealStatusCompleted,
	dealStatusDefaulted: DealStatusDefaulted,
}

// NewDealStatus creates a DealStatus from a raw string.
func NewDealStatus(s string) (DealStatus, error) {
	v, ok := validDealStatuses[s]
	if !ok {
		return DealStatus{}, fmt.Errorf("invalid deal status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s DealStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s DealStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s DealStatus) Equal(other DealStatus) bool { return s.value == other.value }

// ---------------------------------------------------------------------------
// LeaseStatus – immutable value object
// ---------------------------------------------------------------------------

// LeaseStatus represents the lifecycle stage of a lease cycle.
// Leases are term-bound: a lease reaching its full term moves to
// TERM_COMPLETE regardless of the remaining balance, then resolves to
// exactly one of RETURNED, BOUGHT_OUT or RENEWED.
type LeaseStatus struct {
	value string
}

const (
	leaseStatusActive       = "ACTIVE"
	leaseStatusTermComplete = "TERM_COMPLETE"
	leaseStatusReturned     = "RETURNED"
	leaseStatusBoughtOut    = "BOUGHT_OUT"
	leaseStatusRenewed      = "RENEWED"
)

var (
	LeaseStatusActive       = LeaseStatus{value: leaseStatusActive}
	LeaseStatusTermComplete = LeaseStatus{value: leaseStatusTermComplete}
	LeaseStatusReturned     = LeaseStatus{value: leaseStatusReturned}
	LeaseStatusBoughtOut    = LeaseStatus{value: leaseStatusBoughtOut}
	LeaseStatusRenewed      = LeaseStatus{value: leaseStatusRenewed}
)

var validLeaseStatuses = map[string]LeaseStatus{
	leaseStatusActive:       LeaseStatusActive,
	leaseStatusTermComplete: LeaseStatusTermComplete,
	leaseStatusReturned:     LeaseStatusReturned,
	leaseStatusBoughtOut:    LeaseStatusBoughtOut,
	leaseStatusRenewed:      LeaseStatusRenewed,
}

// NewLeaseStatus creates a LeaseStatus from a raw string.
func NewLeaseStatus(s string) (LeaseStatus, error) {
	v, ok := validLeaseStatuses[s]
	if !ok {
		return LeaseStatus{}, fmt.Errorf("invalid lease status: %q", s)
	}
	return v, nil
}

// String returns the string representation of the status.
func (s LeaseStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LeaseStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LeaseStatus) Equal(other LeaseStatus) bool { return s.value == other.value }

// IsResolved reports whether the lease cycle has reached a terminal state.
func (s LeaseStatus) IsResolved() bool {
	switch s.value {
	case leaseStatusReturned, leaseStatusBoughtOut, leaseStatusRenewed:
		return true
	}
	return false
}
