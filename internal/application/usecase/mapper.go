package usecase

import (
	"github.com/agrofin/financing-service/internal/application/dto"
	"github.com/agrofin/financing-service/internal/domain/model"
	"github.com/agrofin/financing-service/internal/domain/service"
	"github.com/agrofin/financing-service/internal/domain/valueobject"
)

func toDealResponse(d model.Deal) dto.DealResponse {
	resp := dto.DealResponse{
		ID:                d.ID(),
		FarmID:            d.FarmID(),
		Kind:              d.Kind().String(),
		ItemID:            d.ItemID(),
		ItemName:          d.ItemName(),
		AssetClass:        d.Asset().String(),
		BaseCost:          d.BaseCost().Decimal(),
		DownPayment:       d.DownPayment().Decimal(),
		AmountFinanced:    d.AmountFinanced().Decimal(),
		InterestRate:      d.InterestRate(),
		TermMonths:        d.TermMonths(),
		StartDay:          d.StartDay(),
		MonthlyPayment:    d.MonthlyPayment().Decimal(),
		CurrentBalance:    d.CurrentBalance().Decimal(),
		MonthsPaid:        d.MonthsPaid(),
		TotalInterestPaid: d.TotalInterestPaid().Decimal(),
		MissedPayments:    d.MissedPayments(),
		Status:            d.Status().String(),
		CreatedAt:         d.CreatedAt(),
		UpdatedAt:         d.UpdatedAt(),
	}

	if d.Kind().Equal(valueobject.DealKindLease) {
		resp.LeaseStatus = d.LeaseStatus().String()
		resp.ResidualValue = d.ResidualValue().Decimal()
		resp.SecurityDeposit = d.SecurityDeposit().Decimal()
	}

	return resp
}

func toScheduleResponse(dealID int64, entries []model.ScheduleEntry) dto.ScheduleResponse {
	resp := dto.ScheduleResponse{
		DealID:  dealID,
		Entries: make([]dto.ScheduleEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.ScheduleEntryResponse{
			Period:           e.Period,
			Principal:        e.Principal.Decimal(),
			Interest:         e.Interest.Decimal(),
			Total:            e.Total.Decimal(),
			RemainingBalance: e.RemainingBalance.Decimal(),
		})
	}
	return resp
}

func toDeductionLines(deductions []service.Deduction) []dto.DeductionLine {
	if len(deductions) == 0 {
		return nil
	}
	out := make([]dto.DeductionLine, 0, len(deductions))
	for _, d := range deductions {
		out = append(out, dto.DeductionLine{Label: d.Label, Amount: d.Amount.Decimal()})
	}
	return out
}
