package booking

// Rules are the tunable business values, handed to the engine at
// construction time.
type Rules struct {
	EarnRatio            float64
	FreeCancelHours      int
	CoachFreeCancelHours *int
	CancelFeeRatio       float64
	NoShowPenaltyPoints  int
	AdvanceBookingDays   int
	SlotStepMinutes      int
	PeakStartTime        string
}

func DefaultRules() Rules {
	return Rules{
		EarnRatio:           1,
		FreeCancelHours:     24,
		CancelFeeRatio:      0,
		NoShowPenaltyPoints: 50,
		AdvanceBookingDays:  7,
		SlotStepMinutes:     30,
		PeakStartTime:       "18:00",
	}
}
