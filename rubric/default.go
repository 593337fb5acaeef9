package rubric

// Default returns the standard call-quality rubric. Criteria order is part
// of the contract: breakdowns are reported in this order.
//
// "Confirm information" deliberately matches booking-detail vocabulary only;
// the bare word "name" would otherwise fire on every agent introduction.
func Default() *Rubric {
	return MustNew(
		Criterion{
			Name:   "Agent readiness",
			Points: 2,
			Match:  Always(),
		},
		Criterion{
			Name:   "Correct introduction",
			Points: 4,
			Match:  ContainsAny("my name is", "i'm"),
		},
		Criterion{
			Name:   "Acknowledge request",
			Points: 4,
			Match:  Contains("how may i help you"),
		},
		Criterion{
			Name:   "Confirm information",
			Points: 10,
			Match:  ContainsAny("itinerary", "hotel", "dates", "reservation"),
		},
		Criterion{
			Name:   "Call efficiency",
			Points: 10,
			Match:  AllOf(Contains("hold"), Contains("update")),
		},
		Criterion{
			Name:   "Agent control",
			Points: 15,
			Match: AllOf(
				Contains("it is my pleasure to help you"),
				ContainsAny("alternative", "solution"),
			),
		},
		Criterion{
			Name:   "Clear communication",
			Points: 15,
			Match:  ContainsAny("mr.", "ms.", "mrs.", "sir", "ma'am"),
		},
	)
}
