package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/agrofin/financing-service/internal/domain/model"
	"github.com/agrofin/financing-service/internal/domain/valueobject"
	"github.com/agrofin/financing-service/pkg/money"
)

const dealColumns = `
	id, farm_id, kind, item_id, item_name, asset_class,
	base_cost, down_payment, amount_financed, interest_rate,
	term_months, start_day, monthly_payment, current_balance,
	months_paid, total_interest_paid, missed_payments, status,
	penalty_kind, penalty_percent, penalty_window_months,
	lease_status, residual_value, security_deposit,
	start_damage, start_wear,
	version, created_at, updated_at`

// DealRepo implements port.DealRepository.
type DealRepo struct {
	pool *pgxpool.Pool
}

// NewDealRepo creates a new PostgreSQL-backed deal repository.
func NewDealRepo(pool *pgxpool.Pool) *DealRepo {
	return &DealRepo{pool: pool}
}

// Save upserts a deal with an optimistic-locking version check on update.
func (r *DealRepo) Save(ctx context.Context, deal model.Deal) error {
	s := deal.Snapshot()

	query := `
		INSERT INTO deals (
			id, farm_id, kind, item_id, item_name, asset_class,
			base_cost, down_payment, amount_financed, interest_rate,
			term_months, start_day, monthly_payment, current_balance,
			months_paid, total_interest_paid, missed_payments, status,
			penalty_kind, penalty_percent, penalty_window_months,
			lease_status, residual_value, security_deposit,
			start_damage, start_wear,
			version, created_at, updated_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,
			$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29
		)
		ON CONFLICT (id) DO UPDATE SET
			current_balance     = EXCLUDED.current_balance,
			months_paid         = EXCLUDED.months_paid,
			total_interest_paid = EXCLUDED.total_interest_paid,
			missed_payments     = EXCLUDED.missed_payments,
			status              = EXCLUDED.status,
			lease_status        = EXCLUDED.lease_status,
			version             = deals.version + 1,
			updated_at          = EXCLUDED.updated_at
		WHERE deals.version = $27
	`
	tag, err := r.pool.Exec(ctx, query,
		s.ID, s.FarmID, s.Kind.String(), s.ItemID, s.ItemName, s.Asset.String(),
		int64(s.BaseCost), int64(s.DownPayment), int64(s.AmountFinanced), s.InterestRate,
		s.TermMonths, s.StartDay, int64(s.MonthlyPayment), int64(s.CurrentBalance),
		s.MonthsPaid, int64(s.TotalInterestPaid), s.MissedPayments, s.Status.String(),
		s.PenaltyPolicy.Kind(), s.PenaltyPolicy.Percent(), s.PenaltyPolicy.WindowMonths(),
		s.LeaseStatus.String(), int64(s.ResidualValue), int64(s.SecurityDeposit),
		s.StartDamage, s.StartWear,
		s.Version, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save deal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("optimistic locking conflict on deal")
	}
	return nil
}

// FindByID retrieves a deal by ID.
func (r *DealRepo) FindByID(ctx context.Context, id int64) (model.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)

	deal, err := scanDealRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Deal{}, valueobject.ErrDealNotFound
	}
	return deal, err
}

// FindByFarmID retrieves all deals owned by a farm, oldest first.
func (r *DealRepo) FindByFarmID(ctx context.Context, farmID int64) ([]model.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE farm_id = $1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, farmID)
	if err != nil {
		return nil, fmt.Errorf("query deals: %w", err)
	}
	defer rows.Close()

	var deals []model.Deal
	for rows.Next() {
		deal, err := scanDealRow(rows)
		if err != nil {
			return nil, err
		}
		deals = append(deals, deal)
	}
	return deals, rows.Err()
}

// Delete removes a deal record.
func (r *DealRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return valueobject.ErrDealNotFound
	}
	return nil
}

// MaxID returns the highest deal ID ever assigned, zero when empty.
func (r *DealRepo) MaxID(ctx context.Context) (int64, error) {
	var max int64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) FROM deals`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("query max deal id: %w", err)
	}
	return max, nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

type scannable interface {
	Scan(dest ...any) error
}

func scanDealRow(s scannable) (model.Deal, error) {
	var (
		id, farmID, itemID                  int64
		kindStr, itemName, assetStr         string
		baseCost, downPayment, financed     int64
		interestRate                        decimal.Decimal
		termMonths, startDay                int
		monthlyPayment, currentBalance      int64
		monthsPaid                          int
		totalInterestPaid                   int64
		missedPayments                      int
		statusStr, penaltyKind              string
		penaltyPercent                      decimal.Decimal
		penaltyWindow                       int
		leaseStatusStr                      string
		residualValue, securityDeposit      int64
		startDamage, startWear              float64
		version                             int
		createdAt, updatedAt                time.Time
	)

	err := s.Scan(
		&id, &farmID, &kindStr, &itemID, &itemName, &assetStr,
		&baseCost, &downPayment, &financed, &interestRate,
		&termMonths, &startDay, &monthlyPayment, &currentBalance,
		&monthsPaid, &totalInterestPaid, &missedPayments, &statusStr,
		&penaltyKind, &penaltyPercent, &penaltyWindow,
		&leaseStatusStr, &residualValue, &securityDeposit,
		&startDamage, &startWear,
		&version, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Deal{}, err
		}
		return model.Deal{}, fmt.Errorf("scan deal: %w", err)
	}

	kind, err := valueobject.NewDealKind(kindStr)
	if err != nil {
		return model.Deal{}, fmt.Errorf("parse deal kind: %w", err)
	}
	asset, err := valueobject.NewAssetClass(assetStr)
	if err != nil {
		return model.Deal{}, fmt.Errorf("parse asset class: %w", err)
	}
	status, err := valueobject.NewDealStatus(statusStr)
	if err != nil {
		return model.Deal{}, fmt.Errorf("parse deal status: %w", err)
	}
	policy, err := valueobject.ReconstructPenaltyPolicy(penaltyKind, penaltyPercent, penaltyWindow)
	if err != nil {
		return model.Deal{}, fmt.Errorf("parse penalty policy: %w", err)
	}

	// Finance deals carry no lease status; the column is empty for them.
	var leaseStatus valueobject.LeaseStatus
	if leaseStatusStr != "" {
		leaseStatus, err = valueobject.NewLeaseStatus(leaseStatusStr)
		if err != nil {
			return model.Deal{}, fmt.Errorf("parse lease status: %w", err)
		}
	}

	return model.ReconstructDeal(model.Snapshot{
		ID:                id,
		FarmID:            farmID,
		Kind:              kind,
		ItemID:            itemID,
		ItemName:          itemName,
		Asset:             asset,
		BaseCost:          money.Amount(baseCost),
		DownPayment:       money.Amount(downPayment),
		AmountFinanced:    money.Amount(financed),
		InterestRate:      interestRate,
		TermMonths:        termMonths,
		StartDay:          startDay,
		MonthlyPayment:    money.Amount(monthlyPayment),
		CurrentBalance:    money.Amount(currentBalance),
		MonthsPaid:        monthsPaid,
		TotalInterestPaid: money.Amount(totalInterestPaid),
		MissedPayments:    missedPayments,
		Status:            status,
		PenaltyPolicy:     policy,
		LeaseStatus:       leaseStatus,
		ResidualValue:     money.Amount(residualValue),
		SecurityDeposit:   money.Amount(securityDeposit),
		StartDamage:       startDamage,
		StartWear:         startWear,
		Version:           version,
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}), nil
}
