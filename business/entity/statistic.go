package entity

// SchemeStatistic verdict counters of one scheme
type SchemeStatistic struct {
	Exchanges  uint64 `json:"exchanges"`
	Accepted   uint64 `json:"accepted"`
	Rejected   uint64 `json:"rejected"`
	Corrupted  uint64 `json:"corrupted"`
	Undetected uint64 `json:"undetected"`
}

// Statistic receiver counters since start
type Statistic struct {
	Malformed uint64                      `json:"malformed"`
	Schemes   map[string]*SchemeStatistic `json:"schemes"`
}

// VerdictEvent fields of the structured "verdict" log event
type VerdictEvent struct {
	ExchangeID string `mapstructure:"exchange_id"`
	Scheme     string `mapstructure:"scheme"`
	Option     string `mapstructure:"option"`
	Accepted   bool   `mapstructure:"accepted"`
	Corrupted  bool   `mapstructure:"corrupted"`
	Position   int    `mapstructure:"position"`
}

const (
	VerdictEventMessage = "verdict"

	VerdictFieldExchangeID = "exchange_id"
	VerdictFieldScheme     = "scheme"
	VerdictFieldOption     = "option"
	VerdictFieldAccepted   = "accepted"
	VerdictFieldCorrupted  = "corrupted"
	VerdictFieldPosition   = "position"
)

// Add counts one verdict
func (s *SchemeStatistic) Add(accepted, corrupted bool) {
	s.Exchanges++
	if accepted {
		s.Accepted++
	} else {
		s.Rejected++
	}
	if corrupted {
		s.Corrupted++
		if accepted {
			s.Undetected++
		}
	}
}
