package migration

import (
	commissiondomain "github.com/railzwaylabs/commissions/internal/commission/domain"
	ledgerdomain "github.com/railzwaylabs/commissions/internal/ledger/domain"
	paymentmethoddomain "github.com/railzwaylabs/commissions/internal/paymentmethod/domain"
	ratetierdomain "github.com/railzwaylabs/commissions/internal/ratetier/domain"
	sellerdomain "github.com/railzwaylabs/commissions/internal/seller/domain"
	vehiclemodeldomain "github.com/railzwaylabs/commissions/internal/vehiclemodel/domain"
)

// Models lists every table for databases migrated with AutoMigrate. It must
// stay in step with the embedded SQL migrations.
func Models() []any {
	return []any{
		&SchemaState{},
		&sellerdomain.Seller{},
		&vehiclemodeldomain.VehicleModel{},
		&paymentmethoddomain.ProgressiveTable{},
		&paymentmethoddomain.PaymentMethod{},
		&ratetierdomain.RateTier{},
		&ledgerdomain.SaleRecord{},
		&ledgerdomain.ProposalRecord{},
		&ledgerdomain.Upload{},
		&commissiondomain.CommissionRecord{},
		&commissiondomain.Run{},
	}
}
