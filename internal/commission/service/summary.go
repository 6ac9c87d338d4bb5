package service

import (
	"sort"

	"github.com/railzwaylabs/commissions/internal/commission/calc"
	"github.com/railzwaylabs/commissions/internal/commission/domain"
)

func summarizeSellers(results []domain.OrderResult) []domain.SellerSummary {
	index := map[string]int{}
	summaries := []domain.SellerSummary{}
	for _, r := range results {
		i, ok := index[r.SellerName]
		if !ok {
			i = len(summaries)
			index[r.SellerName] = i
			summaries = append(summaries, domain.SellerSummary{
				SellerName: r.SellerName,
				IsInternal: r.IsInternal,
			})
		}
		summaries[i].TotalSales += r.PresentValueTotal
		summaries[i].TotalCommission += r.CommissionTotal
		summaries[i].OrderCount++
	}

	for i := range summaries {
		summaries[i].TotalSales = calc.Round2(summaries[i].TotalSales)
		summaries[i].TotalCommission = calc.Round2(summaries[i].TotalCommission)
		if summaries[i].OrderCount > 0 {
			summaries[i].AverageCommission = calc.Round2(summaries[i].TotalCommission / float64(summaries[i].OrderCount))
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].TotalCommission != summaries[j].TotalCommission {
			return summaries[i].TotalCommission > summaries[j].TotalCommission
		}
		return summaries[i].SellerName < summaries[j].SellerName
	})
	return summaries
}

type cityEntry struct {
	city   string
	result domain.OrderResult
}

func summarizeCities(entries []cityEntry) []domain.CitySummary {
	index := map[string]int{}
	summaries := []domain.CitySummary{}
	for _, e := range entries {
		i, ok := index[e.city]
		if !ok {
			i = len(summaries)
			index[e.city] = i
			summaries = append(summaries, domain.CitySummary{City: e.city})
		}
		summaries[i].TotalSales += e.result.PresentValueTotal
		summaries[i].TotalCommission += e.result.CommissionTotal
		summaries[i].OrderCount++
	}

	for i := range summaries {
		summaries[i].TotalSales = calc.Round2(summaries[i].TotalSales)
		summaries[i].TotalCommission = calc.Round2(summaries[i].TotalCommission)
		if summaries[i].OrderCount > 0 {
			summaries[i].AverageCommission = calc.Round2(summaries[i].TotalCommission / float64(summaries[i].OrderCount))
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].TotalCommission != summaries[j].TotalCommission {
			return summaries[i].TotalCommission > summaries[j].TotalCommission
		}
		return summaries[i].City < summaries[j].City
	})
	return summaries
}
