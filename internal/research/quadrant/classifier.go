package quadrant

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DefaultThreshold separates High from Low on both axes
const DefaultThreshold = 3.0

const (
	borderlineBand = 0.3
	strongBand     = 0.7

	weakScore = 2.5
)

// Quadrant is one of the four cells of the CS x SS matrix
type Quadrant int

const (
	QuadrantStar Quadrant = iota + 1
	QuadrantGrowth
	QuadrantValue
	QuadrantDog
)

// AllQuadrants lists every quadrant in priority order
var AllQuadrants = []Quadrant{QuadrantStar, QuadrantGrowth, QuadrantValue, QuadrantDog}

func (q Quadrant) String() string {
	switch q {
	case QuadrantStar:
		return "STAR"
	case QuadrantGrowth:
		return "GROWTH"
	case QuadrantValue:
		return "VALUE"
	case QuadrantDog:
		return "DOG"
	}
	return fmt.Sprintf("Quadrant(%d)", int(q))
}

// ParseQuadrant parses a quadrant name case-insensitively
func ParseQuadrant(s string) (Quadrant, error) {
	for _, q := range AllQuadrants {
		if strings.EqualFold(s, q.String()) {
			return q, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown quadrant %q", ErrInvalidInput, s)
}

func (q Quadrant) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

func (q *Quadrant) UnmarshalText(text []byte) error {
	parsed, err := ParseQuadrant(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// Rating is the investment rating attached to a recommendation
type Rating string

const (
	RatingStrongBuy Rating = "STRONG BUY"
	RatingBuy       Rating = "BUY"
	RatingHold      Rating = "HOLD"
	RatingSell      Rating = "SELL"
	RatingAvoid     Rating = "AVOID"
)

// Strength describes how far a position sits from the threshold
type Strength string

const (
	StrengthBorderline Strength = "Borderline"
	StrengthModerate   Strength = "Moderate"
	StrengthStrong     Strength = "Strong"
)

// Category is the side of the threshold a score falls on
type Category string

const (
	CategoryHigh Category = "High"
	CategoryLow  Category = "Low"
)

const (
	RiskWeakFundamentals = "Weak fundamental quality"
	RiskLimitedUpside    = "Limited upside potential"
	RiskBothWeak         = "Both fundamentals and valuation are weak"
	RiskNearThreshold    = "Near threshold, could shift quadrant"
	RiskMinimal          = "Minimal risk factors"
)

// Profile is the static description of a quadrant
type Profile struct {
	Name            string   `json:"name"`
	Emoji           string   `json:"emoji"`
	Color           string   `json:"color"`
	Description     string   `json:"description"`
	Strategy        string   `json:"strategy"`
	Characteristics []string `json:"characteristics"`
	Action          string   `json:"action"`
	RiskLevel       string   `json:"risk_level"`
}

// Profile returns the static metadata for q
func (q Quadrant) Profile() Profile {
	switch q {
	case QuadrantStar:
		return Profile{
			Name:        "STAR",
			Emoji:       "⭐",
			Color:       "#28a745",
			Description: "Strong fundamentals + Attractive valuation",
			Strategy:    "STRONG BUY",
			Characteristics: []string{
				"High quality business with proven track record",
				"Attractive valuation with significant upside",
				"Positive growth momentum",
				"Best risk-reward profile",
			},
			Action:    "Accumulate aggressively",
			RiskLevel: "Low",
		}
	case QuadrantGrowth:
		return Profile{
			Name:        "GROWTH",
			Emoji:       "📈",
			Color:       "#ffc107",
			Description: "Weak fundamentals + Attractive valuation",
			Strategy:    "BUY",
			Characteristics: []string{
				"Fundamentals still developing or recovering",
				"Attractive valuation with high upside potential",
				"Strong growth momentum",
				"Speculative/turnaround play",
			},
			Action:    "Buy with caution, monitor fundamentals",
			RiskLevel: "Medium-High",
		}
	case QuadrantValue:
		return Profile{
			Name:        "VALUE",
			Emoji:       "💎",
			Color:       "#17a2b8",
			Description: "Strong fundamentals + Expensive valuation",
			Strategy:    "HOLD",
			Characteristics: []string{
				"High quality business with strong fundamentals",
				"Limited upside or overvalued",
				"Weak momentum",
				"Wait for better entry point",
			},
			Action:    "Hold existing position, wait for pullback",
			RiskLevel: "Low-Medium",
		}
	case QuadrantDog:
		return Profile{
			Name:        "DOG",
			Emoji:       "🐕",
			Color:       "#dc3545",
			Description: "Weak fundamentals + Expensive valuation",
			Strategy:    "SELL/AVOID",
			Characteristics: []string{
				"Weak fundamentals and deteriorating business",
				"Overvalued or no upside",
				"Negative momentum",
				"Value trap or declining business",
			},
			Action:    "Sell or avoid completely",
			RiskLevel: "High",
		}
	}
	panic(fmt.Sprintf("quadrant: no profile for %v", q))
}

// Priority ranks quadrants for sorting, 1 is best
func (q Quadrant) Priority() int {
	switch q {
	case QuadrantStar:
		return 1
	case QuadrantGrowth:
		return 2
	case QuadrantValue:
		return 3
	case QuadrantDog:
		return 4
	}
	panic(fmt.Sprintf("quadrant: no priority for %v", q))
}

// Rating returns the rating for q, downgraded one notch when the position is borderline
func (q Quadrant) Rating(strength Strength) Rating {
	borderline := strength == StrengthBorderline
	switch q {
	case QuadrantStar:
		if borderline {
			return RatingBuy
		}
		return RatingStrongBuy
	case QuadrantGrowth:
		if borderline {
			return RatingHold
		}
		return RatingBuy
	case QuadrantValue:
		return RatingHold
	case QuadrantDog:
		if borderline {
			return RatingAvoid
		}
		return RatingSell
	}
	panic(fmt.Sprintf("quadrant: no rating for %v", q))
}

// TimeHorizon returns the recommended holding horizon
func (q Quadrant) TimeHorizon() string {
	switch q {
	case QuadrantStar:
		return "12-18 months"
	case QuadrantGrowth:
		return "6-12 months (monitor closely)"
	case QuadrantValue:
		return "18-24 months (wait for catalyst)"
	case QuadrantDog:
		return "Exit ASAP"
	}
	panic(fmt.Sprintf("quadrant: no time horizon for %v", q))
}

// PositionSizing returns the suggested portfolio weight, narrowed when borderline
func (q Quadrant) PositionSizing(strength Strength) string {
	borderline := strength == StrengthBorderline
	switch q {
	case QuadrantStar:
		if borderline {
			return "3-5%"
		}
		return "5-8%"
	case QuadrantGrowth:
		if borderline {
			return "2-3%"
		}
		return "3-5%"
	case QuadrantValue:
		if borderline {
			return "1-2%"
		}
		return "2-3%"
	case QuadrantDog:
		return "0%"
	}
	panic(fmt.Sprintf("quadrant: no position sizing for %v", q))
}

// PositionDetail describes where a (CS, SS) pair sits relative to the threshold
type PositionDetail struct {
	CSDistance float64  `json:"cs_distance"`
	SSDistance float64  `json:"ss_distance"`
	Strength   Strength `json:"strength"`
	CSCategory Category `json:"cs_category"`
	SSCategory Category `json:"ss_category"`
}

// QuadrantInfo is the result of classifying a score pair
type QuadrantInfo struct {
	Quadrant     Quadrant       `json:"quadrant"`
	Profile      Profile        `json:"profile"`
	CompanyScore float64        `json:"company_score"`
	StockScore   float64        `json:"stock_score"`
	Threshold    float64        `json:"threshold"`
	Position     PositionDetail `json:"position"`
}

// Recommendation is the investment guidance derived from a classification
type Recommendation struct {
	Rating         Rating   `json:"rating"`
	Quadrant       Quadrant `json:"quadrant"`
	Priority       int      `json:"priority"`
	TargetPrice    float64  `json:"target_price"`
	CurrentPrice   float64  `json:"current_price"`
	Upside         float64  `json:"upside"`
	RiskLevel      string   `json:"risk_level"`
	Action         string   `json:"action"`
	RiskFactors    []string `json:"risk_factors"`
	TimeHorizon    string   `json:"time_horizon"`
	PositionSizing string   `json:"position_sizing"`
}

// StockEntry is one row of input to CompareStocks
type StockEntry struct {
	Ticker       string  `json:"ticker" yaml:"ticker" validate:"required"`
	CompanyScore float64 `json:"company_score" yaml:"company_score" validate:"gte=1,lte=4"`
	StockScore   float64 `json:"stock_score" yaml:"stock_score" validate:"gte=1,lte=4"`
	TargetPrice  float64 `json:"target_price" yaml:"target_price" validate:"gt=0"`
	CurrentPrice float64 `json:"current_price" yaml:"current_price" validate:"gt=0"`
}

// RankedStock is one row of CompareStocks output
type RankedStock struct {
	Rank         int      `json:"rank"`
	Ticker       string   `json:"ticker"`
	CompanyScore float64  `json:"company_score"`
	StockScore   float64  `json:"stock_score"`
	Quadrant     Quadrant `json:"quadrant"`
	Rating       Rating   `json:"rating"`
	Priority     int      `json:"priority"`
	Upside       float64  `json:"upside"`
	RiskLevel    string   `json:"risk_level"`
}

// Classifier places score pairs into quadrants. It is immutable once built.
type Classifier struct {
	threshold float64
}

// NewClassifier creates a classifier using threshold on both axes
func NewClassifier(threshold float64) *Classifier {
	return &Classifier{
		threshold: threshold,
	}
}

// Threshold returns the High/Low boundary
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

// Classify maps (cs, ss) to a quadrant. Scores equal to the threshold count as High.
func (c *Classifier) Classify(cs, ss float64) QuadrantInfo {
	highCS := cs >= c.threshold
	highSS := ss >= c.threshold

	var q Quadrant
	switch {
	case highCS && highSS:
		q = QuadrantStar
	case !highCS && highSS:
		q = QuadrantGrowth
	case highCS && !highSS:
		q = QuadrantValue
	default:
		q = QuadrantDog
	}

	return QuadrantInfo{
		Quadrant:     q,
		Profile:      q.Profile(),
		CompanyScore: cs,
		StockScore:   ss,
		Threshold:    c.threshold,
		Position:     c.position(cs, ss),
	}
}

func (c *Classifier) position(cs, ss float64) PositionDetail {
	csDistance := cs - c.threshold
	ssDistance := ss - c.threshold

	strength := StrengthModerate
	switch {
	case math.Abs(csDistance) < borderlineBand || math.Abs(ssDistance) < borderlineBand:
		strength = StrengthBorderline
	case math.Abs(csDistance) > strongBand && math.Abs(ssDistance) > strongBand:
		strength = StrengthStrong
	}

	return PositionDetail{
		CSDistance: round2(csDistance),
		SSDistance: round2(ssDistance),
		Strength:   strength,
		CSCategory: c.category(cs),
		SSCategory: c.category(ss),
	}
}

func (c *Classifier) category(score float64) Category {
	if score >= c.threshold {
		return CategoryHigh
	}
	return CategoryLow
}

// Recommend derives the rating, risk factors and sizing guidance for a classification
func (c *Classifier) Recommend(info QuadrantInfo, targetPrice, currentPrice float64) Recommendation {
	q := info.Quadrant
	strength := info.Position.Strength
	upside := (targetPrice - currentPrice) / currentPrice * 100

	return Recommendation{
		Rating:         q.Rating(strength),
		Quadrant:       q,
		Priority:       q.Priority(),
		TargetPrice:    targetPrice,
		CurrentPrice:   currentPrice,
		Upside:         round2(upside),
		RiskLevel:      info.Profile.RiskLevel,
		Action:         info.Profile.Action,
		RiskFactors:    c.riskFactors(info),
		TimeHorizon:    q.TimeHorizon(),
		PositionSizing: q.PositionSizing(strength),
	}
}

func (c *Classifier) riskFactors(info QuadrantInfo) []string {
	var risks []string

	if info.CompanyScore < weakScore {
		risks = append(risks, RiskWeakFundamentals)
	}
	if info.StockScore < weakScore {
		risks = append(risks, RiskLimitedUpside)
	}
	if info.CompanyScore < c.threshold && info.StockScore < c.threshold {
		risks = append(risks, RiskBothWeak)
	}
	if info.Position.Strength == StrengthBorderline {
		risks = append(risks, RiskNearThreshold)
	}

	if len(risks) == 0 {
		return []string{RiskMinimal}
	}
	return risks
}

// CompareStocks classifies every entry and orders them best quadrant first,
// then by highest upside. Ties keep their input order.
func (c *Classifier) CompareStocks(entries []StockEntry) []RankedStock {
	ranked := make([]RankedStock, 0, len(entries))
	for _, e := range entries {
		info := c.Classify(e.CompanyScore, e.StockScore)
		rec := c.Recommend(info, e.TargetPrice, e.CurrentPrice)
		ranked = append(ranked, RankedStock{
			Ticker:       e.Ticker,
			CompanyScore: e.CompanyScore,
			StockScore:   e.StockScore,
			Quadrant:     info.Quadrant,
			Rating:       rec.Rating,
			Priority:     rec.Priority,
			Upside:       rec.Upside,
			RiskLevel:    rec.RiskLevel,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Priority != ranked[j].Priority {
			return ranked[i].Priority < ranked[j].Priority
		}
		return ranked[i].Upside > ranked[j].Upside
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}
