package sim

// In-game calendar. A tick is the smallest simulation time unit; the
// driving loop feeds ticks in on a wall-clock cadence.
const (
	TicksPerDay   = 10
	DaysPerMonth  = 30
	TicksPerMonth = TicksPerDay * DaysPerMonth

	// PublishDurationTicks is how long a committed article sits pending
	// before it goes live: two in-game days.
	PublishDurationTicks = 2 * TicksPerDay
)

// Tuning holds the economy constants. Defaults match the shipped balance;
// a YAML tuning file can override individual values for playtesting.
type Tuning struct {
	// Costs
	CostWriterMonthly  float64 `yaml:"costWriterMonthly"`
	CostWriterHire     float64 `yaml:"costWriterHire"`
	CostArticlePublish float64 `yaml:"costArticlePublish"`

	// Reception projection
	BaseAudience             float64 `yaml:"baseAudience"`
	AudienceMultiplier       float64 `yaml:"audienceMultiplier"`
	BaseSubscriberReadRatio  float64 `yaml:"baseSubscriberReadRatio"`
	BonusSubscriberReadRatio float64 `yaml:"bonusSubscriberReadRatio"`
	MaxConversionRate        float64 `yaml:"maxConversionRate"`
	JitterHalfWidth          float64 `yaml:"jitterHalfWidth"`

	// Revenue
	RevenuePerSubscriber float64 `yaml:"revenuePerSubscriber"`
	RevenuePerView       float64 `yaml:"revenuePerView"`

	// Subscriber churn. Decay is rolled uniformly in [0, DecayMax] once
	// per crossed month, then dampened by recent output. The damping
	// divisor is a balance heuristic, not a law of nature.
	DecayMax            float64 `yaml:"decayMax"`
	DecayDampingDivisor float64 `yaml:"decayDampingDivisor"`

	// Initial snapshot
	StartingCash float64 `yaml:"startingCash"`
}

// DefaultTuning returns the shipped economy balance.
func DefaultTuning() Tuning {
	return Tuning{
		CostWriterMonthly:  5,
		CostWriterHire:     50,
		CostArticlePublish: 5,

		BaseAudience:             1000,
		AudienceMultiplier:       2.0,
		BaseSubscriberReadRatio:  0.4,
		BonusSubscriberReadRatio: 0.5,
		MaxConversionRate:        0.05,
		JitterHalfWidth:          0.10,

		RevenuePerSubscriber: 2.0,
		RevenuePerView:       0.01,

		DecayMax:            0.5,
		DecayDampingDivisor: 10,

		StartingCash: 10000,
	}
}
