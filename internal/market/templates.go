package market

// Event template catalogs. Mild events roll on the minute cadence, extreme
// events on the day cadence. Deltas are per-application pressure
// contributions; a template with Persistent set stays active for the rest of
// the game once spawned.

var MildEventTemplates = []Event{
	{
		Title:          "Earnings Beat",
		Description:    "A handful of companies posted quarterly numbers ahead of estimates.",
		EventType:      "Mild",
		AffectedFields: []string{"Technology", "Finance", "Retail"},
		DriftDelta:     0.3, TurbulenceDelta: 0.03, SentimentDelta: 0.4,
		DurationDays: 2,
	},
	{
		Title:          "Supply Chain Hiccup",
		Description:    "Component shipments are running late out of two major ports.",
		EventType:      "Mild",
		AffectedFields: []string{"Automotive", "Robotics", "Aerospace"},
		DriftDelta:     -0.25, TurbulenceDelta: 0.05, SentimentDelta: -0.3,
		DurationDays: 2,
	},
	{
		Title:          "Analyst Upgrade Wave",
		Description:    "Sell-side desks lifted ratings across the sector this morning.",
		EventType:      "Mild",
		AffectedFields: []string{"AI", "Cybersecurity", "Quantum Computing"},
		DriftDelta:     0.35, TurbulenceDelta: 0.02, SentimentDelta: 0.5,
		DurationDays: 1,
	},
	{
		Title:          "Profit Taking",
		Description:    "Funds trimmed winners into the close after a strong run.",
		EventType:      "Mild",
		AffectedFields: nil,
		DriftDelta:     -0.2, TurbulenceDelta: 0.04, SentimentDelta: -0.2,
		DurationDays: 1,
	},
	{
		Title:          "Clinical Trial Chatter",
		Description:    "Early-phase readouts are circulating ahead of the conference.",
		EventType:      "Mild",
		AffectedFields: []string{"Biotech", "Healthcare", "Neurotech"},
		DriftDelta:     0.2, TurbulenceDelta: 0.08, SentimentDelta: 0.3,
		DurationDays: 2,
	},
	{
		Title:          "Crop Futures Slip",
		Description:    "Favorable weather forecasts pushed soft commodity prices lower.",
		EventType:      "Mild",
		AffectedFields: []string{"Agritech", "Climate Engineering"},
		DriftDelta:     -0.2, TurbulenceDelta: 0.03, SentimentDelta: -0.25,
		DurationDays: 2,
	},
	{
		Title:          "Streaming Numbers Surprise",
		Description:    "Subscriber adds came in well above whisper numbers.",
		EventType:      "Mild",
		AffectedFields: []string{"Entertainment", "Telecom", "Virtual Reality"},
		DriftDelta:     0.3, TurbulenceDelta: 0.03, SentimentDelta: 0.4,
		DurationDays: 1,
	},
	{
		Title:          "Grid Maintenance Window",
		Description:    "Scheduled outages are pinching short-term output.",
		EventType:      "Mild",
		AffectedFields: []string{"Energy", "Nanotech"},
		DriftDelta:     -0.15, TurbulenceDelta: 0.04, SentimentDelta: -0.2,
		DurationDays: 2,
	},
	{
		Title:          "Launch Window Confirmed",
		Description:    "Regulators cleared the next cargo flight for this week.",
		EventType:      "Mild",
		AffectedFields: []string{"Space Mining", "Aerospace"},
		DriftDelta:     0.25, TurbulenceDelta: 0.05, SentimentDelta: 0.35,
		DurationDays: 2,
	},
	{
		Title:          "Options Expiry Pin",
		Description:    "Dealers hedging a large expiry are dampening moves.",
		EventType:      "Mild",
		AffectedFields: nil,
		DriftDelta:     0, TurbulenceDelta: -0.05, SentimentDelta: 0,
		DurationDays: 1,
	},
	{
		Title:          "Data Breach Rumor",
		Description:    "An unconfirmed intrusion report is making the rounds.",
		EventType:      "Mild",
		AffectedFields: []string{"Cybersecurity", "Finance", "Technology"},
		DriftDelta:     -0.3, TurbulenceDelta: 0.08, SentimentDelta: -0.4,
		DurationDays: 2,
	},
	{
		Title:          "Buyback Announcements",
		Description:    "Several boards authorized fresh repurchase programs.",
		EventType:      "Mild",
		AffectedFields: []string{"Finance", "Retail", "Telecom"},
		DriftDelta:     0.25, TurbulenceDelta: 0.02, SentimentDelta: 0.3,
		DurationDays: 3,
	},
}

var ExtremeEventTemplates = []Event{
	{
		Title:          "Rate Shock",
		Description:    "The central bank surprised with an out-of-cycle hike.",
		EventType:      "Extreme",
		AffectedFields: nil,
		DriftDelta:     -1.5, TurbulenceDelta: 0.4, SentimentDelta: -2.0,
		DurationDays: 5,
	},
	{
		Title:          "AI Breakthrough",
		Description:    "A frontier lab demonstrated a step-change in capability overnight.",
		EventType:      "Extreme",
		AffectedFields: []string{"AI", "Technology", "Robotics", "Quantum Computing"},
		DriftDelta:     2.0, TurbulenceDelta: 0.5, SentimentDelta: 2.5,
		DurationDays: 6,
	},
	{
		Title:          "Blockbuster Approval",
		Description:    "A flagship therapy cleared its final regulatory hurdle.",
		EventType:      "Extreme",
		AffectedFields: []string{"Biotech", "Healthcare"},
		DriftDelta:     1.8, TurbulenceDelta: 0.3, SentimentDelta: 2.0,
		DurationDays: 5,
	},
	{
		Title:          "Refinery Fire",
		Description:    "A major processing hub went offline after an explosion.",
		EventType:      "Extreme",
		AffectedFields: []string{"Energy", "Automotive", "Aerospace"},
		DriftDelta:     -1.2, TurbulenceDelta: 0.45, SentimentDelta: -1.8,
		DurationDays: 4,
	},
	{
		Title:          "Sovereign Default Scare",
		Description:    "A mid-size economy missed a coupon payment.",
		EventType:      "Extreme",
		AffectedFields: []string{"Finance", "Retail"},
		DriftDelta:     -2.0, TurbulenceDelta: 0.6, SentimentDelta: -2.5,
		DurationDays: 7,
	},
	{
		Title:          "Orbital Strike Find",
		Description:    "Assay results confirmed a platinum-rich asteroid capture.",
		EventType:      "Extreme",
		AffectedFields: []string{"Space Mining", "Nanotech"},
		DriftDelta:     2.2, TurbulenceDelta: 0.5, SentimentDelta: 2.2,
		DurationDays: 6,
	},
	{
		Title:          "Grid Cyberattack",
		Description:    "Coordinated intrusions knocked out power across three regions.",
		EventType:      "Extreme",
		AffectedFields: []string{"Cybersecurity", "Energy", "Telecom"},
		DriftDelta:     -1.8, TurbulenceDelta: 0.55, SentimentDelta: -2.2,
		DurationDays: 5,
	},
	{
		Title:          "Breakthrough Harvest",
		Description:    "Engineered crops doubled yields in their first full season.",
		EventType:      "Extreme",
		AffectedFields: []string{"Agritech", "Climate Engineering"},
		DriftDelta:     1.5, TurbulenceDelta: 0.25, SentimentDelta: 1.8,
		DurationDays: 5,
	},
	{
		Title:          "Neural Interface Recall",
		Description:    "A safety recall hit the entire consumer implant line.",
		EventType:      "Extreme",
		AffectedFields: []string{"Neurotech", "Healthcare", "Virtual Reality"},
		DriftDelta:     -1.6, TurbulenceDelta: 0.4, SentimentDelta: -2.0,
		DurationDays: 4,
	},
	{
		Title:          "Box Office Collapse",
		Description:    "The tentpole season wiped out across every franchise.",
		EventType:      "Extreme",
		AffectedFields: []string{"Entertainment", "Virtual Reality"},
		DriftDelta:     -1.3, TurbulenceDelta: 0.3, SentimentDelta: -1.5,
		DurationDays: 4,
	},
	{
		Title:          "Regulatory Regime Shift",
		Description:    "Sweeping new market rules take effect with no sunset clause.",
		EventType:      "Extreme",
		AffectedFields: []string{"Finance", "Technology", "AI"},
		DriftDelta:     -0.8, TurbulenceDelta: 0.2, SentimentDelta: -1.0,
		Persistent:   true,
	},
	{
		Title:          "Fusion Milestone",
		Description:    "Sustained net-positive output was verified by two independent labs.",
		EventType:      "Extreme",
		AffectedFields: []string{"Energy", "Quantum Computing", "Climate Engineering"},
		DriftDelta:     2.5, TurbulenceDelta: 0.45, SentimentDelta: 3.0,
		DurationDays: 7,
	},
}
