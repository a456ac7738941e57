package service

import (
	"fmt"
	"time"

	"github.com/wricardo/solitario/game/engine"
)

type cardSpot struct {
	ref      engine.PileRef
	faceDown bool
}

// locate indexes every card on the board by ID
func locate(state *engine.GameState) map[string]cardSpot {
	spots := make(map[string]cardSpot, engine.DeckSize)
	add := func(ref engine.PileRef, pile []engine.Card) {
		for _, c := range pile {
			spots[c.ID] = cardSpot{ref: ref, faceDown: c.FaceDown}
		}
	}
	for i, p := range state.Tableau {
		add(engine.PileRef{Kind: engine.Tableau, Index: i}, p)
	}
	for i, p := range state.Foundations {
		add(engine.PileRef{Kind: engine.Foundation, Index: i}, p)
	}
	add(engine.PileRef{Kind: engine.Stock}, state.Stock)
	add(engine.PileRef{Kind: engine.Waste}, state.Waste)
	return spots
}

func describe(ref engine.PileRef) string {
	if ref.Kind == engine.Stock || ref.Kind == engine.Waste {
		return string(ref.Kind)
	}
	return fmt.Sprintf("%s %d", ref.Kind, ref.Index)
}

// extractEvents compares the snapshots around a gesture and reports what
// changed. Cards are visited in deck order so the output is stable.
func extractEvents(action string, prev, next *engine.GameState, ok bool) []GameEvent {
	now := time.Now()
	events := []GameEvent{}

	if !ok {
		msg := next.Message
		if msg == "" {
			msg = fmt.Sprintf("%s rejected", action)
		}
		return append(events, GameEvent{Type: EventRejected, Message: msg, Timestamp: now})
	}

	switch action {
	case EventNewGame:
		return append(events, GameEvent{
			Type:      EventNewGame,
			Message:   fmt.Sprintf("New %s deal %s", next.Variant, next.DealID),
			Timestamp: now,
		})
	case EventSelect:
		if next.Selection == nil {
			msg := "Selection cleared"
			cardID := ""
			if prev.Selection != nil {
				cardID = prev.Selection.CardID
			}
			return append(events, GameEvent{Type: EventSelect, Message: msg, Timestamp: now, CardID: cardID})
		}
		origin := next.Selection.Origin
		return append(events, GameEvent{
			Type:      EventSelect,
			Message:   fmt.Sprintf("Selected %s from %s", next.Selection.CardID, describe(origin)),
			Timestamp: now,
			CardID:    next.Selection.CardID,
			From:      &origin,
		})
	}

	before, after := locate(prev), locate(next)
	recycled := 0
	var flips []GameEvent

	for _, card := range engine.BuildDeck() {
		was, is := before[card.ID], after[card.ID]

		if was.ref != is.ref {
			from, to := was.ref, is.ref
			ev := GameEvent{Timestamp: now, CardID: card.ID, From: &from, To: &to}
			switch {
			case from.Kind == engine.Stock && to.Kind == engine.Waste:
				ev.Type = EventDraw
				ev.Message = fmt.Sprintf("Drew %s", card.ID)
			case from.Kind == engine.Waste && to.Kind == engine.Stock:
				recycled++
				continue
			case to.Kind == engine.Foundation && action == EventPromote:
				ev.Type = EventPromote
				ev.Message = fmt.Sprintf("Promoted %s to %s", card.ID, describe(to))
			default:
				ev.Type = EventMove
				ev.Message = fmt.Sprintf("Moved %s from %s to %s", card.ID, describe(from), describe(to))
			}
			events = append(events, ev)
			continue
		}

		if was.ref.Kind == engine.Tableau && was.faceDown && !is.faceDown {
			ref := is.ref
			flips = append(flips, GameEvent{
				Type:      EventFlip,
				Message:   fmt.Sprintf("Turned up %s on %s", card.ID, describe(ref)),
				Timestamp: now,
				CardID:    card.ID,
				From:      &ref,
			})
		}
	}

	if recycled > 0 {
		events = append(events, GameEvent{
			Type:      EventRecycle,
			Message:   fmt.Sprintf("Recycled %d cards from the waste into the stock", recycled),
			Timestamp: now,
		})
	}
	events = append(events, flips...)

	if !prev.Won && next.Won {
		events = append(events, GameEvent{Type: EventVictory, Message: next.Message, Timestamp: now})
	}
	return events
}
