package model

type OccupancyType string
type PaymentFrequency string

// ===== enum occupancy_type (mirror DB) =====
const (
	OccupancyOpenSpace OccupancyType = "open_space"
	OccupancyKiosk     OccupancyType = "kiosk"
	OccupancyShop      OccupancyType = "shop"
	OccupancyWarehouse OccupancyType = "warehouse"
)

// ===== enum payment_frequency (mirror DB) =====
const (
	FrequencyDaily      PaymentFrequency = "daily"
	FrequencyWeekly     PaymentFrequency = "weekly"
	FrequencyBiweekly   PaymentFrequency = "biweekly"
	FrequencyMonthly    PaymentFrequency = "monthly"
	FrequencyQuarterly  PaymentFrequency = "quarterly"
	FrequencyHalfYearly PaymentFrequency = "half_yearly"
	FrequencyYearly     PaymentFrequency = "yearly"
)

var frequencyDays = map[PaymentFrequency]int{
	FrequencyDaily:      1,
	FrequencyWeekly:     7,
	FrequencyBiweekly:   14,
	FrequencyMonthly:    30,
	FrequencyQuarterly:  90,
	FrequencyHalfYearly: 182,
	FrequencyYearly:     365,
}

// DayCount returns the compliance window length in days, 0 for unknown values.
func (f PaymentFrequency) DayCount() int {
	return frequencyDays[f]
}

func (f PaymentFrequency) Valid() bool {
	_, ok := frequencyDays[f]
	return ok
}

func (o OccupancyType) Valid() bool {
	switch o {
	case OccupancyOpenSpace, OccupancyKiosk, OccupancyShop, OccupancyWarehouse:
		return true
	}
	return false
}
