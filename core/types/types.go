// Package types defines the shared data model for the quote engine:
// borrower inputs, risk tiers, and quote results. All values here are
// plain records — inputs are constructed fresh per calculation and
// results are owned exclusively by one invocation.
package types

// Variant identifies one of the calculator products
type Variant string

const (
	VariantFusion      Variant = "fusion"
	VariantResidential Variant = "residential"
	VariantCommercial  Variant = "commercial"
	VariantPrime       Variant = "prime"
	VariantBridging    Variant = "bridging"
)

// Variants lists all supported calculators
var Variants = []Variant{
	VariantFusion,
	VariantResidential,
	VariantCommercial,
	VariantPrime,
	VariantBridging,
}

// Tier is a discrete borrower risk level. TierExcluded is the sentinel
// for profiles outside the product's eligibility envelope.
type Tier int

const (
	Tier1 Tier = 1
	Tier2 Tier = 2
	Tier3 Tier = 3

	// TierExcluded means no product is offered for this profile
	TierExcluded Tier = -1
)

// String returns the display label used throughout rate sheets
func (t Tier) String() string {
	switch t {
	case Tier1:
		return "Tier 1"
	case Tier2:
		return "Tier 2"
	case Tier3:
		return "Tier 3"
	case TierExcluded:
		return "Excluded"
	}
	return "Unknown"
}

// Excluded reports whether the tier is the exclusion sentinel
func (t Tier) Excluded() bool {
	return t == TierExcluded
}

// RiskFlags carries the raw risk-attribute option strings as selected
// on the input surface. Values are compared against known option labels;
// unrecognized strings contribute the lowest-risk level for their
// dimension.
type RiskFlags struct {
	HMO                 string `json:"hmo,omitempty"`
	MUFB                string `json:"mufb,omitempty"`
	HolidayLet          string `json:"holidayLet,omitempty"`
	FlatAboveCommercial string `json:"flatAboveCommercial,omitempty"`
	OwnerOccupied       string `json:"ownerOccupied,omitempty"`
	DevelopmentExit     string `json:"developmentExit,omitempty"`

	Expat             string `json:"expat,omitempty"`
	FirstTimeLandlord string `json:"firstTimeLandlord,omitempty"`
	FirstTimeBuyer    string `json:"firstTimeBuyer,omitempty"`
	OffshoreCompany   string `json:"offshoreCompany,omitempty"`

	AdverseCredit    string `json:"adverseCredit,omitempty"`
	MortgageArrears  string `json:"mortgageArrears,omitempty"`
	UnsecuredArrears string `json:"unsecuredArrears,omitempty"`
	CCJDefault       string `json:"ccjDefault,omitempty"`
	Bankruptcy       string `json:"bankruptcy,omitempty"`
}

// BorrowerInput is the flat record of one calculation request.
// Fields not used by a variant are left at their zero value.
type BorrowerInput struct {
	PropertyValue float64 `json:"propertyValue"`
	MonthlyRent   float64 `json:"monthlyRent,omitempty"`

	// GrossLoan is the requested gross loan. Mutually exclusive with
	// SpecificNetLoan via UseSpecificNet.
	GrossLoan       float64 `json:"grossLoan,omitempty"`
	UseSpecificNet  bool    `json:"useSpecificNet"`
	SpecificNetLoan float64 `json:"specificNetLoan,omitempty"`

	// ProductType selects the rate product for matrix variants,
	// e.g. "2yr Fix", "3yr Fix", "2yr Tracker"
	ProductType string `json:"productType,omitempty"`

	// PropertyClass selects the rate set where a variant distinguishes
	// property classes (Fusion, Commercial, Bridging)
	PropertyClass string `json:"propertyClass,omitempty"`

	// Bridging-only fields
	LoanProduct        string  `json:"loanProduct,omitempty"`
	ChargeType         string  `json:"chargeType,omitempty"`
	FirstChargeBalance float64 `json:"firstChargeBalance,omitempty"`
	TermMonths         int     `json:"termMonths,omitempty"`

	// Fusion and bridging rolled-months selection; matrix variants use
	// the table's maximum instead
	RolledMonths int `json:"rolledMonths,omitempty"`

	// Fusion deferred-interest selection (annual rate slice, 0..cap)
	DeferredRate float64 `json:"deferredRate,omitempty"`

	Risk RiskFlags `json:"risk"`
}

// ColumnQuote is one fully-derived loan illustration: a single fee
// column for matrix variants, the selected band for Fusion, or one rate
// type for bridging. Monetary amounts are unrounded floats; rounding
// happens only at display time.
type ColumnQuote struct {
	ProductName string `json:"productName"`
	FeeColumn   string `json:"feeColumn,omitempty"`

	FeePercent  float64 `json:"feePercent"`
	CouponRate  float64 `json:"couponRate"`
	FullRate    float64 `json:"fullRate"`
	PayRate     float64 `json:"payRate"`
	DeferredCap float64 `json:"deferredCap"`
	IsTracker   bool    `json:"isTracker"`

	FullRateText string `json:"fullRateText"`
	PayRateText  string `json:"payRateText"`

	GrossLoan          float64 `json:"grossLoan"`
	NetLoan            float64 `json:"netLoan"`
	FeeAmount          float64 `json:"feeAmount"`
	RolledInterest     float64 `json:"rolledInterest"`
	DeferredInterest   float64 `json:"deferredInterest"`
	TotalInterest      float64 `json:"totalInterest"`
	MonthlyDirectDebit float64 `json:"monthlyDirectDebit"`

	RolledMonths   int `json:"rolledMonths"`
	ServicedMonths int `json:"servicedMonths"`
	TermMonths     int `json:"termMonths"`

	// LTV is the achieved loan-to-value; MaxLTV the applicable cap
	LTV    float64 `json:"ltv"`
	MaxLTV float64 `json:"maxLtv"`

	// Soft flags: a gross loan at the product maximum is capped, not
	// rejected; one below the minimum is warned about, not blocked
	BelowMinLoan bool `json:"belowMinLoan"`
	CappedAtMax  bool `json:"cappedAtMax"`
}

// BestColumn summarises the fee column with the highest gross loan
type BestColumn struct {
	FeeColumn   string  `json:"feeColumn"`
	GrossLoan   float64 `json:"grossLoan"`
	GrossLTVPct int     `json:"grossLtvPct"`
	NetLoan     float64 `json:"netLoan"`
	NetLTVPct   int     `json:"netLtvPct"`
}

// BasicGross is the no-rolled, no-deferred gross figure per fee column
type BasicGross struct {
	FeeColumn string  `json:"feeColumn"`
	GrossLoan float64 `json:"grossLoan"`
	LTVPct    int     `json:"ltvPct"`
}

// QuoteResult is the output record of a successful calculation. A
// calculation yields either a QuoteResult or a typed rejection, never
// both.
type QuoteResult struct {
	Variant     Variant `json:"variant"`
	Tier        string  `json:"tier"`
	ProductType string  `json:"productType,omitempty"`

	// Columns holds the per-fee-column matrix for BTL variants
	Columns []ColumnQuote `json:"columns,omitempty"`
	Best    *BestColumn   `json:"best,omitempty"`
	Basic   []BasicGross  `json:"basicGross,omitempty"`

	// Single holds the one-product result for Fusion
	Single *ColumnQuote `json:"single,omitempty"`

	// Fixed and Variable hold the side-by-side bridging results
	Fixed    *ColumnQuote `json:"fixed,omitempty"`
	Variable *ColumnQuote `json:"variable,omitempty"`

	RevertRate     string `json:"revertRate,omitempty"`
	ERC            string `json:"erc,omitempty"`
	TermDescriptor string `json:"termDescriptor,omitempty"`

	StandardBBR float64 `json:"standardBbr,omitempty"`
	CurrentMVR  float64 `json:"currentMvr,omitempty"`
}

// Lead carries contact details attached to a delivered quote
type Lead struct {
	ClientName  string `json:"clientName"`
	ClientPhone string `json:"clientPhone"`
	ClientEmail string `json:"clientEmail"`
}
