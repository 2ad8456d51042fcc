package market

import (
	"log/slog"
	"math"

	"github.com/google/uuid"

	"bourse/internal/randx"
)

const (
	baseSpawnChance      = 0.4
	spawnChancePerActive = 0.05
	minSpawnChance       = 0.05

	positiveEventColor = "#04d569"
	negativeEventColor = "#e2522e"
)

// EventEngine owns the active-event list and the per-field/per-stock
// pressure maps. It spawns mild events on the minute cadence and extreme
// events on the day cadence, and expires events whose duration runs out.
// Pressure already written by an expired event is deliberately left in
// place; only the event's ongoing per-tick contribution stops.
type EventEngine struct {
	rng       *randx.Source
	log       *slog.Logger
	announcer Announcer
	store     Store

	mild    []Event
	extreme []Event

	activeEvents   []Event
	fieldPressures map[string]*Pressure
	stockPressures map[string]*Pressure
}

func NewEventEngine(rng *randx.Source, logger *slog.Logger, announcer Announcer) *EventEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventEngine{
		rng:       rng,
		log:       logger,
		announcer: announcer,
		mild:      MildEventTemplates,
		extreme:   ExtremeEventTemplates,
	}
}

// AttachMarket wires the store and seeds neutral pressure for every sector
// field and every known stock. Call once, after the universe exists and
// before any tick.
func (e *EventEngine) AttachMarket(store Store) {
	e.store = store
	e.fieldPressures = make(map[string]*Pressure, len(StockFields))
	for _, field := range StockFields {
		p := NeutralPressure()
		e.fieldPressures[field] = &p
	}
	e.stockPressures = make(map[string]*Pressure)
	for _, stock := range store.GetStocks() {
		p := NeutralPressure()
		e.stockPressures[stock.Name] = &p
	}
}

func (e *EventEngine) ActiveEvents() []Event {
	return e.activeEvents
}

func (e *EventEngine) FieldPressures() map[string]*Pressure {
	return e.fieldPressures
}

func (e *EventEngine) StockPressures() map[string]*Pressure {
	return e.stockPressures
}

// PassMinute rolls a chance to spawn a mild event. Existing events do not
// decay on the minute cadence.
func (e *EventEngine) PassMinute() {
	e.spawnEventByChance(e.mild)
}

// PassDay ages every active event by one day, rolls a chance to spawn an
// extreme event, then drops events whose duration ran out.
func (e *EventEngine) PassDay() {
	e.decreaseActiveEventDurations(1)
	e.spawnEventByChance(e.extreme)
	e.filterActiveEvents()
}

// PassDays runs PassDay n times. Each day's spawn roll is independent.
func (e *EventEngine) PassDays(days int) {
	for i := 0; i < days; i++ {
		e.PassDay()
	}
}

// spawnEventByChance self-limits: every already-active event lowers the
// spawn probability, floored so something can always happen.
func (e *EventEngine) spawnEventByChance(templates []Event) {
	chance := math.Max(minSpawnChance, baseSpawnChance-float64(len(e.activeEvents))*spawnChancePerActive)
	if e.rng.Float64() <= chance {
		e.generateRandomEvent(templates)
	}
}

func (e *EventEngine) generateRandomEvent(templates []Event) {
	if e.store == nil || len(templates) == 0 {
		return
	}

	event := e.selectEventByPressure(templates)
	event.ID = uuid.NewString()

	e.assignStocksToEvent(&event)
	e.applyEventPressures(event)

	e.activeEvents = append(e.activeEvents, event)
	e.log.Info("market event spawned",
		"title", event.Title,
		"type", event.EventType,
		"stocks", event.AffectedStocks,
		"active", len(e.activeEvents))

	if e.announcer == nil {
		return
	}
	base := negativeEventColor
	if event.SentimentDelta > 0 {
		base = positiveEventColor
	}
	e.announcer.Announce(Announcement{
		Title:            "Market Event [" + event.EventType + "]",
		Description:      event.Title + " — " + event.Description,
		TitleColor:       e.rng.ShiftColor(base, 30),
		DescriptionColor: e.rng.ShiftColor(base, 30),
		BorderColor:      e.rng.ShiftColor(base, 30),
	})
}

// selectEventByPressure biases template choice toward sectors already under
// stress, falling back to the full catalog when nothing matches.
func (e *EventEngine) selectEventByPressure(templates []Event) Event {
	stressed := make(map[string]bool)
	for field, p := range e.fieldPressures {
		if p.Drift+p.Sentiment+(p.Turbulence-1)*10 > 0 {
			stressed[field] = true
		}
	}

	var relevant []Event
	for _, t := range templates {
		if len(t.AffectedFields) == 0 {
			relevant = append(relevant, t)
			continue
		}
		for _, f := range t.AffectedFields {
			if stressed[f] {
				relevant = append(relevant, t)
				break
			}
		}
	}

	if len(relevant) == 0 {
		relevant = templates
	}
	return randx.Pick(e.rng, relevant)
}

// assignStocksToEvent picks 1-5 instruments for the event, weighted by how
// stressed each candidate already is.
func (e *EventEngine) assignStocksToEvent(event *Event) {
	allStocks := e.store.GetStocks()

	var candidates []Stock
	for _, stock := range allStocks {
		for _, f := range event.AffectedFields {
			if stock.Field == f {
				candidates = append(candidates, stock)
				break
			}
		}
	}
	if len(candidates) == 0 {
		candidates = allStocks
	}
	if len(candidates) == 0 {
		return
	}

	names := make([]string, len(candidates))
	weights := make([]float64, len(candidates))
	for i, stock := range candidates {
		names[i] = stock.Name
		stress := 0.0
		if p, ok := e.stockPressures[stock.Name]; ok {
			stress = math.Max(0, p.Drift+p.Sentiment+(p.Turbulence-1)*10)
		}
		weights[i] = 1 + stress
	}

	count := 1 + e.rng.IntN(5)
	if count > len(candidates) {
		count = len(candidates)
	}
	event.AffectedStocks = randx.PickWeighted(e.rng, names, weights, count)
}

// applyEventPressures writes the event's deltas into every matching pressure
// record. These are raw accumulations; clamping happens at aggregation time.
func (e *EventEngine) applyEventPressures(event Event) {
	for _, field := range event.AffectedFields {
		p, ok := e.fieldPressures[field]
		if !ok {
			continue
		}
		p.Drift += event.DriftDelta
		p.Turbulence *= 1 + event.TurbulenceDelta
		p.Sentiment += event.SentimentDelta
	}
	for _, name := range event.AffectedStocks {
		p, ok := e.stockPressures[name]
		if !ok {
			continue
		}
		p.Drift += event.DriftDelta
		p.Turbulence *= 1 + event.TurbulenceDelta
		p.Sentiment += event.SentimentDelta
	}
}

func (e *EventEngine) decreaseActiveEventDurations(days int) {
	for i := range e.activeEvents {
		if !e.activeEvents[i].Persistent {
			e.activeEvents[i].DurationDays -= days
		}
	}
}

func (e *EventEngine) filterActiveEvents() {
	kept := e.activeEvents[:0]
	for _, event := range e.activeEvents {
		if event.Persistent || event.DurationDays > 0 {
			kept = append(kept, event)
		}
	}
	e.activeEvents = kept
}
