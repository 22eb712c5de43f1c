package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/Jimmyu2foru18/pookies-grand-casino/card"
	"github.com/Jimmyu2foru18/pookies-grand-casino/casino"
)

func cardString(c card.Card) string {
	s := c.Rank.String() + c.Suit.String()
	if c.Suit.Red() {
		return pterm.LightRed(s)
	}
	return s
}

func pileString(cards []card.Card) string {
	if len(cards) == 0 {
		return pterm.Gray("--")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = cardString(c)
	}
	return strings.Join(parts, " ")
}

// hiddenPile renders face-down cards as backs, everything else open.
func hiddenPile(cards []card.Card) string {
	if len(cards) == 0 {
		return pterm.Gray("--")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		if c.FaceUp {
			parts[i] = cardString(c)
		} else {
			parts[i] = pterm.Gray("??")
		}
	}
	return strings.Join(parts, " ")
}

func seatLine(seat casino.SeatSnapshot, snap casino.Snapshot) []string {
	hand := pileString(seat.Hand)
	if seat.Bot {
		hand = hiddenPile(seat.Hand)
	}
	name := seat.Name
	if seat.ID == snap.ActiveID {
		name = pterm.LightCyan("> " + name)
	}
	line := []string{
		name,
		hand,
		strconv.FormatInt(seat.Chips, 10),
		strconv.FormatInt(seat.Bet, 10),
		seat.Status.String(),
	}
	if seat.LastAction != "" {
		line[4] += " (" + seat.LastAction + ")"
	}
	return line
}

func renderTable(snap casino.Snapshot) {
	if snap.Variant == casino.VariantSolitaire {
		renderSolitaire(snap)
		return
	}

	pterm.DefaultSection.Printf("%s  |  %s  |  pot %d", snap.Variant, snap.Phase, snap.Pot)

	if len(snap.DealerHand) > 0 {
		pterm.Printfln("%s: %s", casino.DealerName, hiddenPile(snap.DealerHand))
	}
	if snap.Variant == casino.VariantHoldem {
		pterm.Printfln("Board [%s]: %s", snap.Street, pileString(snap.Community))
	}
	if snap.Variant == casino.VariantRummy && len(snap.Discard) > 0 {
		top := snap.Discard[len(snap.Discard)-1]
		pterm.Printfln("Stock: %d  Discard: %s", snap.DeckCount, cardString(top))
	}

	rows := [][]string{{"Seat", "Hand", "Chips", "Bet", "Status"}}
	for _, seat := range snap.Players {
		rows = append(rows, seatLine(seat, snap))
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	for _, seat := range snap.Players {
		for _, meld := range seat.Melds {
			pterm.Printfln("%s melds: %s", seat.Name, pileString(meld))
		}
	}

	if snap.Message != "" {
		pterm.Info.Println(snap.Message)
	}
}

func renderSolitaire(snap casino.Snapshot) {
	sol := snap.Solitaire
	if sol == nil {
		pterm.Info.Println(snap.Message)
		return
	}

	human := snap.Players[0]
	pterm.DefaultSection.Printf("Solitaire  |  bank %d", human.Chips)

	founds := make([]string, 0, 4)
	for _, f := range sol.Foundations {
		if len(f) == 0 {
			founds = append(founds, pterm.Gray("[  ]"))
			continue
		}
		founds = append(founds, "["+cardString(f[len(f)-1])+"]")
	}
	waste := pterm.Gray("--")
	if len(sol.Waste) > 0 {
		waste = cardString(sol.Waste[len(sol.Waste)-1])
	}
	pterm.Printfln("Stock: %d  Waste: %s  Foundations: %s", sol.StockCount, waste, strings.Join(founds, " "))

	for i, col := range sol.Tableau {
		pterm.Printfln("  %d: %s", i+1, hiddenPile(col))
	}

	if snap.Message != "" {
		pterm.Info.Println(snap.Message)
	}
}

func renderRoundEnd(snap casino.Snapshot) {
	box := pterm.DefaultBox.WithLeftPadding(2).WithRightPadding(2)
	title := "ROUND OVER"
	if snap.Phase == casino.PhaseVictory {
		title = pterm.LightGreen("YOU WIN")
	}
	pterm.Println(box.WithTitle(title).WithTitleTopCenter().Sprint(snap.Message))
}

func labelCards(cards []card.Card) ([]string, map[string]string) {
	labels := make([]string, 0, len(cards))
	ids := make(map[string]string, len(cards))
	for _, c := range cards {
		label := fmt.Sprintf("%s%s", c.Rank, c.Suit)
		labels = append(labels, label)
		ids[label] = c.ID
	}
	return labels, ids
}
