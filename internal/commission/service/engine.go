package service

import (
	"github.com/railzwaylabs/commissions/internal/commission/calc"
	"github.com/railzwaylabs/commissions/internal/commission/domain"
	ledgerdomain "github.com/railzwaylabs/commissions/internal/ledger/domain"
	"go.uber.org/zap"
)

// engine computes order commissions against one snapshot. It never fails:
// missing configuration becomes the fallback rate plus a warning.
type engine struct {
	snap     *domain.Snapshot
	log      *zap.Logger
	warnings *warningSet
	// fallbacks counts orders that used the fallback schedule.
	fallbacks int
}

func newEngine(snap *domain.Snapshot, log *zap.Logger) *engine {
	return &engine{snap: snap, log: log, warnings: newWarningSet()}
}

// presentValue applies the instrument's payment method configuration. A
// method linked to a progressive table uses its coefficients; otherwise the
// annuity formula applies when the method has a positive monthly rate.
func (e *engine) presentValue(p ledgerdomain.ProposalRecord) float64 {
	amount := p.TransactionAmount
	n := p.InstallmentCount
	if n < 2 {
		return amount
	}
	method, ok := e.snap.PaymentMethod(p.PaymentMethodName)
	if !ok || !method.ApplyPresentValue {
		return amount
	}

	if method.ProgressiveTableID != nil {
		table, ok := e.snap.ProgressiveTable(*method.ProgressiveTableID)
		if !ok {
			return amount
		}
		coefficients := table.CoefficientList()
		if len(coefficients) < n {
			e.log.Warn("progressive table shorter than installments, using nominal amount",
				zap.String("payment_method", method.Name),
				zap.String("table", table.Code),
				zap.Int("installments", n),
				zap.Int("coefficients", len(coefficients)),
			)
			return amount
		}
		return calc.ProgressivePresentValue(amount/float64(n), n, coefficients[:n])
	}

	if method.MonthlyInterestRate <= 0 {
		return amount
	}
	pv := calc.PresentValue(amount, n, method.MonthlyInterestRate)
	if pv == amount && amount != 0 {
		e.log.Warn("present value not computable, using nominal amount",
			zap.String("payment_method", method.Name),
			zap.Float64("amount", amount),
			zap.Int("installments", n),
			zap.Float64("monthly_rate", method.MonthlyInterestRate),
		)
	}
	return pv
}

func (e *engine) compute(o *order) domain.OrderResult {
	seller, _ := e.snap.Seller(o.sellerName)
	highDisplacement := e.snap.IsHighDisplacement(o.vehicleModel)

	instruments := make([]domain.InstrumentResult, len(o.instruments))
	pvTotal := 0.0
	for i, p := range o.instruments {
		pv := e.presentValue(p)
		pvTotal += pv
		instruments[i] = domain.InstrumentResult{
			ProposalID:        p.ID,
			PaymentMethodName: p.PaymentMethodName,
			InstallmentCount:  p.InstallmentCount,
			NominalValue:      p.TransactionAmount,
			PresentValue:      pv,
		}
	}

	ratio := 100.0
	if o.listPrice > 0 {
		ratio = pvTotal / o.listPrice * 100
	}

	res := e.snap.Schedule.Resolve(ratio, highDisplacement, seller.IsInternal)
	if res.TierID == 0 {
		e.fallbacks++
	}
	e.warnings.add(res.Warnings...)

	commission := 0.0
	if pvTotal > 0 {
		commission = calc.Round2(pvTotal * res.Rate)
		for i := range instruments {
			instruments[i].Commission = calc.Round2(commission * (instruments[i].PresentValue / pvTotal))
		}
	}

	return domain.OrderResult{
		SellerName:         o.sellerName,
		OrderID:            o.orderID,
		FiscalDocumentID:   o.fiscalDocumentID,
		VehicleModel:       o.vehicleModel,
		IsHighDisplacement: highDisplacement,
		IsInternal:         seller.IsInternal,
		ListPrice:          o.listPrice,
		NominalTotal:       calc.Round2(o.nominalTotal),
		PresentValueTotal:  calc.Round2(pvTotal),
		AchievementRatio:   calc.Round2(ratio),
		Rate:               res.Rate,
		RatePercent:        calc.RatePercent(res.Rate),
		CommissionTotal:    commission,
		Instruments:        instruments,
	}
}

type warningSet struct {
	seen  map[string]struct{}
	items []string
}

func newWarningSet() *warningSet {
	return &warningSet{seen: map[string]struct{}{}, items: []string{}}
}

func (w *warningSet) add(warnings ...string) {
	for _, warning := range warnings {
		if _, ok := w.seen[warning]; ok {
			continue
		}
		w.seen[warning] = struct{}{}
		w.items = append(w.items, warning)
	}
}
