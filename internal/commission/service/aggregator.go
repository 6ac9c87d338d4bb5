package service

import (
	"strings"

	"github.com/railzwaylabs/commissions/internal/commission/domain"
	ledgerdomain "github.com/railzwaylabs/commissions/internal/ledger/domain"
)

// order is one physical sale: the proposal rows sharing seller, order id
// and, when present, fiscal document id.
type order struct {
	key              string
	sellerName       string
	orderID          string
	fiscalDocumentID string
	vehicleModel     string
	listPrice        float64
	nominalTotal     float64
	instruments      []ledgerdomain.ProposalRecord
}

type orderSet struct {
	orders []*order
	// rejectedRecords counts proposals without a customer, an order id or a
	// registered seller.
	rejectedRecords int
	// negative counts orders dropped because their nominal total is below
	// zero.
	negative int
}

func orderKey(seller, orderID, fiscalDocumentID string) string {
	if fiscalDocumentID != "" {
		return seller + "|" + orderID + "|" + fiscalDocumentID
	}
	return seller + "|" + orderID
}

// buildOrders correlates the two ledgers through the customer id and
// groups proposals into orders, keeping first-appearance order.
func buildOrders(snap *domain.Snapshot) orderSet {
	customerSeller := map[string]string{}
	listPrices := map[string]float64{}
	for _, sale := range snap.Sales {
		customer := strings.TrimSpace(sale.CustomerID)
		seller := strings.TrimSpace(sale.SellerName)
		if customer != "" && seller != "" {
			if _, ok := customerSeller[customer]; !ok {
				customerSeller[customer] = seller
			}
		}
		if sale.OrderID != "" && sale.ListPrice > 0 {
			listPrices[orderKey(seller, sale.OrderID, strings.TrimSpace(sale.FiscalDocumentID))] = sale.ListPrice
		}
	}

	var set orderSet
	byKey := map[string]*order{}
	var grouped []*order
	for _, proposal := range snap.Proposals {
		customer := strings.TrimSpace(proposal.CustomerID)
		orderID := strings.TrimSpace(proposal.OrderID)
		if customer == "" || orderID == "" {
			set.rejectedRecords++
			continue
		}
		sellerName, ok := customerSeller[customer]
		if !ok {
			set.rejectedRecords++
			continue
		}
		seller, ok := snap.Seller(sellerName)
		if !ok {
			set.rejectedRecords++
			continue
		}

		fiscal := strings.TrimSpace(proposal.FiscalDocumentID)
		key := orderKey(sellerName, orderID, fiscal)
		o, ok := byKey[key]
		if !ok {
			o = &order{
				key:              key,
				sellerName:       seller.Name,
				orderID:          orderID,
				fiscalDocumentID: fiscal,
				vehicleModel:     strings.TrimSpace(proposal.VehicleModel),
			}
			byKey[key] = o
			grouped = append(grouped, o)
		}
		o.nominalTotal += proposal.TransactionAmount
		o.instruments = append(o.instruments, proposal)
	}

	for _, o := range grouped {
		if o.nominalTotal < 0 {
			set.negative++
			continue
		}
		if price, ok := listPrices[o.key]; ok {
			o.listPrice = price
		} else if model, ok := snap.VehicleModel(o.vehicleModel); ok {
			o.listPrice = model.ListPrice
		}
		set.orders = append(set.orders, o)
	}
	return set
}
