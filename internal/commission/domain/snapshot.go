package domain

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	ledgerdomain "github.com/railzwaylabs/commissions/internal/ledger/domain"
	paymentmethoddomain "github.com/railzwaylabs/commissions/internal/paymentmethod/domain"
	ratetierdomain "github.com/railzwaylabs/commissions/internal/ratetier/domain"
	sellerdomain "github.com/railzwaylabs/commissions/internal/seller/domain"
	vehiclemodeldomain "github.com/railzwaylabs/commissions/internal/vehiclemodel/domain"
)

// Snapshot is everything one computation pass reads, loaded together so the
// pass sees a single consistent state.
type Snapshot struct {
	Sales     []ledgerdomain.SaleRecord
	Proposals []ledgerdomain.ProposalRecord
	Schedule  *ratetierdomain.Schedule

	sellers      map[string]sellerdomain.Seller
	sellersLower map[string]sellerdomain.Seller
	models       map[string]vehiclemodeldomain.VehicleModel
	methods      map[string]paymentmethoddomain.PaymentMethod
	tables       map[snowflake.ID]paymentmethoddomain.ProgressiveTable
}

func NewSnapshot(
	ledgers *ledgerdomain.Ledgers,
	sellers []sellerdomain.Seller,
	models []vehiclemodeldomain.VehicleModel,
	methods []paymentmethoddomain.PaymentMethod,
	tables []paymentmethoddomain.ProgressiveTable,
	schedule *ratetierdomain.Schedule,
) *Snapshot {
	s := &Snapshot{
		Schedule:     schedule,
		sellers:      make(map[string]sellerdomain.Seller, len(sellers)),
		sellersLower: make(map[string]sellerdomain.Seller, len(sellers)),
		models:       make(map[string]vehiclemodeldomain.VehicleModel, len(models)),
		methods:      make(map[string]paymentmethoddomain.PaymentMethod, len(methods)),
		tables:       make(map[snowflake.ID]paymentmethoddomain.ProgressiveTable, len(tables)),
	}
	if ledgers != nil {
		s.Sales = ledgers.Sales
		s.Proposals = ledgers.Proposals
	}
	if s.Schedule == nil {
		s.Schedule = ratetierdomain.NewSchedule(nil)
	}

	for _, seller := range sellers {
		s.sellers[seller.Name] = seller
		key := strings.ToLower(seller.Name)
		if _, ok := s.sellersLower[key]; !ok {
			s.sellersLower[key] = seller
		}
	}
	for _, model := range models {
		key := strings.ToLower(strings.TrimSpace(model.Name))
		if _, ok := s.models[key]; !ok {
			s.models[key] = model
		}
	}
	for _, method := range methods {
		if method.Active() {
			s.methods[strings.TrimSpace(method.Name)] = method
		}
	}
	for _, table := range tables {
		s.tables[table.ID] = table
	}
	return s
}

// Seller matches exactly first, then case-insensitively.
func (s *Snapshot) Seller(name string) (sellerdomain.Seller, bool) {
	if seller, ok := s.sellers[name]; ok {
		return seller, true
	}
	seller, ok := s.sellersLower[strings.ToLower(name)]
	return seller, ok
}

func (s *Snapshot) VehicleModel(name string) (vehiclemodeldomain.VehicleModel, bool) {
	model, ok := s.models[strings.ToLower(strings.TrimSpace(name))]
	return model, ok
}

// PaymentMethod returns the active method with exactly this name.
func (s *Snapshot) PaymentMethod(name string) (paymentmethoddomain.PaymentMethod, bool) {
	method, ok := s.methods[strings.TrimSpace(name)]
	return method, ok
}

func (s *Snapshot) ProgressiveTable(id snowflake.ID) (paymentmethoddomain.ProgressiveTable, bool) {
	table, ok := s.tables[id]
	return table, ok
}

// IsHighDisplacement prefers the registered model flag and falls back to
// the name marker for unregistered models.
func (s *Snapshot) IsHighDisplacement(modelName string) bool {
	if model, ok := s.VehicleModel(modelName); ok {
		return model.IsHighDisplacement
	}
	return vehiclemodeldomain.IsHighDisplacementName(modelName)
}
