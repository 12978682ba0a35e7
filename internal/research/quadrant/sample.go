package quadrant

// SampleEquity returns a complete, valid input for PT Sumber Alfaria Trijaya Tbk (AMRT).
// Figures are in IDR billions; prices in IDR.
func SampleEquity() EquityInput {
	return EquityInput{
		Company: CompanyInfo{
			Ticker:            "AMRT",
			Name:              "PT Sumber Alfaria Trijaya Tbk",
			Sector:            "Consumer Defensive",
			CurrentPrice:      2210,
			SharesOutstanding: 41524.5,
			MarketCap:         91.77,
		},
		VCS: VCSInputs{
			Lifecycle: 3.5,
			Porter: PorterForces{
				Suppliers:    3.5,
				EntryBarrier: 3.5,
				Rivalry:      2.5,
				Substitution: 2.5,
				Buyers:       3.0,
			},
			Management: 3.0,
			ESG: ESGInputs{
				Environment: 2,
				Social:      4,
				Governance:  4,
			},
		},
		Macro: MacroAssumptions{
			NominalGDP: 0.08,
			RealGDP:    0.05,
		},
		Historical: []PeriodFinancials{
			{Revenue: 106944.7, EBIT: 4444.9, NetIncome: 3403.7, OCF: 6817.0, TotalAssets: 34246.2, Equity: 15705.2, Cash: 4074.5},
			{Revenue: 118227.0, EBIT: 4140.1, NetIncome: 3148.1, OCF: 8063.1, TotalAssets: 38798.4, Equity: 17695.9, Cash: 4845.2},
		},
		Projected: []PeriodFinancials{
			{Revenue: 127685.2, EBIT: 4469.0, NetIncome: 3424.4, OCF: 8700.0, TotalAssets: 42678.2, Equity: 19891.8, Cash: 5650.0},
			{Revenue: 136623.1, EBIT: 4781.8, NetIncome: 3673.1, OCF: 9300.0, TotalAssets: 46946.1, Equity: 22264.9, Cash: 6550.0},
			{Revenue: 143054.3, EBIT: 5003.5, NetIncome: 3851.4, OCF: 9750.0, TotalAssets: 50240.1, Equity: 24516.3, Cash: 7500.0},
		},
		Valuation: ValuationInputs{
			ModelTP:      3050,
			RelativeVal:  2882,
			CurrentPrice: 2210,
		},
		Growth: GrowthInputs{
			RevenueGrowth: 0.144,
			EBITGrowth:    0.166,
			NPGrowth:      0.166,
		},
	}
}
