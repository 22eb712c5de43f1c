// Command casino-cli runs a table session against the house bots in the
// terminal, no server required.
package main

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/Jimmyu2foru18/pookies-grand-casino/card"
	"github.com/Jimmyu2foru18/pookies-grand-casino/casino"
	"github.com/Jimmyu2foru18/pookies-grand-casino/internal/codec"
	"github.com/Jimmyu2foru18/pookies-grand-casino/internal/ledger"
	"github.com/Jimmyu2foru18/pookies-grand-casino/internal/table"
)

const leaveLabel = "Leave the table"

func main() {
	slog.SetDefault(slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger)))

	_ = pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Pookie's ", pterm.FgLightMagenta.ToStyle()),
		putils.LettersFromStringWithStyle("Casino", pterm.FgLightYellow.ToStyle()),
	).Render()

	for {
		options := make([]string, 0, len(casino.VariantDictionary)+1)
		for _, v := range []casino.Variant{
			casino.VariantBlackjack, casino.VariantPoker, casino.VariantHoldem,
			casino.VariantRummy, casino.VariantSolitaire,
		} {
			options = append(options, v.String())
		}
		options = append(options, "Leave the casino")

		choice, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("Pick a table").
			WithOptions(options).
			Show()
		if err != nil || choice == "Leave the casino" {
			break
		}

		variant, err := casino.ParseVariant(choice)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		playSession(variant)
	}
	pterm.Info.Printfln("Goodbye, %s.", casino.HumanName)
}

func playSession(variant casino.Variant) {
	envelopes := make(chan codec.ServerEnvelope, 256)
	sess, err := table.New(0, variant, 0, ledger.NewNoop(), func(env codec.ServerEnvelope) {
		envelopes <- env
	})
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	sess.Start()
	renderTable(sess.Snapshot())

	for {
		select {
		case env := <-envelopes:
			switch env.Type {
			case codec.EnvelopeSessionEnd:
				pterm.Success.Printfln("You leave the table with %d chips.", env.FinalBalance)
				return
			case codec.EnvelopeError:
				pterm.Error.Println(env.Error)
			case codec.EnvelopeSnapshot:
				renderTable(*env.Snapshot)
				if env.Snapshot.Phase.Terminal() {
					renderRoundEnd(*env.Snapshot)
				}
			}

		case <-time.After(400 * time.Millisecond):
			snap := sess.Snapshot()
			if !humanToAct(snap) {
				continue
			}
			in, ok := promptIntent(snap)
			if !ok {
				continue
			}
			if err := submit(sess, in); err != nil {
				pterm.Error.Println(err)
			}
		}
	}
}

func submit(sess *table.Session, in codec.Intent) error {
	resp, err := sess.Submit(in)
	if err != nil {
		return err
	}
	return <-resp
}

// humanToAct reports whether the table is waiting on Pookie rather than
// on a scheduled dealer, bot, or reveal step.
func humanToAct(snap casino.Snapshot) bool {
	switch snap.Phase {
	case casino.PhaseBetting:
		return true
	case casino.PhasePlaying:
		return snap.Variant == casino.VariantSolitaire || snap.ActiveID == casino.HumanID
	case casino.PhaseSwapping, casino.PhaseRummyDraw, casino.PhaseRummyTurn:
		return snap.ActiveID == casino.HumanID
	case casino.PhaseRoundOver, casino.PhaseVictory:
		return true
	default:
		return false
	}
}

// promptIntent asks for the one input the current phase needs. ok is
// false when the prompt was abandoned.
func promptIntent(snap casino.Snapshot) (codec.Intent, bool) {
	switch snap.Phase {
	case casino.PhaseBetting:
		return promptBet(snap)
	case casino.PhasePlaying:
		if snap.Variant == casino.VariantSolitaire {
			return promptSolitaire(snap)
		}
		return promptAction(snap)
	case casino.PhaseSwapping:
		return promptExchange(snap)
	case casino.PhaseRummyDraw:
		return promptDraw(snap)
	case casino.PhaseRummyTurn:
		return promptRummyTurn(snap)
	case casino.PhaseRoundOver, casino.PhaseVictory:
		return promptRoundEnd(snap)
	}
	return codec.Intent{}, false
}

func promptBet(snap casino.Snapshot) (codec.Intent, bool) {
	stake := "Place a bet"
	switch snap.Variant {
	case casino.VariantRummy:
		stake = "Ante up"
	case casino.VariantSolitaire:
		stake = "Buy in (" + strconv.FormatInt(casino.SolitaireCost, 10) + ")"
	}

	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{stake, leaveLabel}).
		Show()
	if err != nil || choice == leaveLabel {
		return codec.Intent{Type: codec.IntentCloseSession}, err == nil
	}

	in := codec.Intent{Type: codec.IntentPlaceBet}
	switch snap.Variant {
	case casino.VariantBlackjack, casino.VariantPoker, casino.VariantHoldem:
		raw, err := pterm.DefaultInteractiveTextInput.
			WithDefaultText("Bet amount (" + strconv.FormatInt(casino.MinBet, 10) + "-" + strconv.FormatInt(casino.MaxBet, 10) + ")").
			WithDefaultValue("50").
			Show()
		if err != nil {
			return codec.Intent{}, false
		}
		amount, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			pterm.Error.Println("bets are numbers")
			return codec.Intent{}, false
		}
		in.Amount = amount
	}
	return in, true
}

func promptAction(snap casino.Snapshot) (codec.Intent, bool) {
	var labels []string
	actions := map[string]casino.ActionType{}

	if snap.Variant == casino.VariantBlackjack {
		labels = []string{"Hit", "Stand"}
		actions["Hit"] = casino.ActionHit
		actions["Stand"] = casino.ActionStand
	} else {
		toCall := snap.HighestBet - snap.Players[0].Bet
		if toCall > 0 {
			call := "Call (" + strconv.FormatInt(toCall, 10) + ")"
			labels = append(labels, call)
			actions[call] = casino.ActionCall
		} else {
			labels = append(labels, "Check")
			actions["Check"] = casino.ActionCheck
		}
		raise := "Raise (+" + strconv.FormatInt(casino.RaiseStep, 10) + ")"
		labels = append(labels, raise, "Fold")
		actions[raise] = casino.ActionRaise
		actions["Fold"] = casino.ActionFold
	}

	choice, err := pterm.DefaultInteractiveSelect.WithOptions(labels).Show()
	if err != nil {
		return codec.Intent{}, false
	}
	return codec.Intent{Type: codec.IntentAct, Action: actions[choice]}, true
}

func promptExchange(snap casino.Snapshot) (codec.Intent, bool) {
	labels, ids := labelCards(snap.Players[0].Hand)
	picked, err := pterm.DefaultInteractiveMultiselect.
		WithDefaultText("Swap up to 3 cards (none to stand pat)").
		WithOptions(labels).
		Show()
	if err != nil {
		return codec.Intent{}, false
	}
	cardIDs := make([]string, 0, len(picked))
	for _, label := range picked {
		cardIDs = append(cardIDs, ids[label])
	}
	return codec.Intent{Type: codec.IntentExchange, CardIDs: cardIDs}, true
}

func promptDraw(snap casino.Snapshot) (codec.Intent, bool) {
	stock := "Draw from the stock"
	options := []string{stock}
	if len(snap.Discard) > 0 {
		top := snap.Discard[len(snap.Discard)-1]
		options = append(options, "Take the "+top.Rank.String()+top.Suit.String())
	}

	choice, err := pterm.DefaultInteractiveSelect.WithOptions(options).Show()
	if err != nil {
		return codec.Intent{}, false
	}
	source := "discard"
	if choice == stock {
		source = "stock"
	}
	return codec.Intent{Type: codec.IntentDraw, Source: source}, true
}

func promptRummyTurn(snap casino.Snapshot) (codec.Intent, bool) {
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{"Lay down a meld", "Discard"}).
		Show()
	if err != nil {
		return codec.Intent{}, false
	}

	labels, ids := labelCards(snap.Players[0].Hand)
	if choice == "Discard" {
		label, err := pterm.DefaultInteractiveSelect.
			WithDefaultText("Discard which card").
			WithOptions(labels).
			Show()
		if err != nil {
			return codec.Intent{}, false
		}
		return codec.Intent{Type: codec.IntentDiscard, CardID: ids[label]}, true
	}

	picked, err := pterm.DefaultInteractiveMultiselect.
		WithDefaultText("Pick at least 3 cards of a set or run").
		WithOptions(labels).
		Show()
	if err != nil {
		return codec.Intent{}, false
	}
	cardIDs := make([]string, 0, len(picked))
	for _, label := range picked {
		cardIDs = append(cardIDs, ids[label])
	}
	return codec.Intent{Type: codec.IntentMeld, CardIDs: cardIDs}, true
}

func promptSolitaire(snap casino.Snapshot) (codec.Intent, bool) {
	const (
		drawLabel = "Draw from the stock"
		autoLabel = "Send a card to its foundation"
		moveLabel = "Move a card"
	)
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{drawLabel, autoLabel, moveLabel, leaveLabel}).
		Show()
	if err != nil {
		return codec.Intent{}, false
	}

	switch choice {
	case leaveLabel:
		return codec.Intent{Type: codec.IntentCloseSession}, true
	case drawLabel:
		return codec.Intent{Type: codec.IntentDrawStock}, true
	}

	labels, ids := labelCards(movableCards(snap.Solitaire))
	if len(labels) == 0 {
		pterm.Info.Println("Nothing to move.")
		return codec.Intent{}, false
	}
	label, err := pterm.DefaultInteractiveSelect.
		WithDefaultText("Which card").
		WithOptions(labels).
		Show()
	if err != nil {
		return codec.Intent{}, false
	}

	if choice == autoLabel {
		return codec.Intent{Type: codec.IntentAutoMove, CardID: ids[label]}, true
	}

	target, ok := promptTarget()
	if !ok {
		return codec.Intent{}, false
	}
	return codec.Intent{Type: codec.IntentMoveCard, CardID: ids[label], Target: target}, true
}

func promptTarget() (*codec.Target, bool) {
	options := make([]string, 0, 11)
	for i := 1; i <= 7; i++ {
		options = append(options, "Tableau "+strconv.Itoa(i))
	}
	for i := 1; i <= 4; i++ {
		options = append(options, "Foundation "+strconv.Itoa(i))
	}
	choice, err := pterm.DefaultInteractiveSelect.
		WithDefaultText("Move it where").
		WithOptions(options).
		Show()
	if err != nil {
		return nil, false
	}

	if rest, ok := strings.CutPrefix(choice, "Tableau "); ok {
		n, _ := strconv.Atoi(rest)
		return &codec.Target{Kind: "tableau", Index: n - 1}, true
	}
	rest, _ := strings.CutPrefix(choice, "Foundation ")
	n, _ := strconv.Atoi(rest)
	return &codec.Target{Kind: "foundation", Index: n - 1}, true
}

// movableCards lists the waste top and every face-up tableau card.
func movableCards(sol *casino.SolitaireSnapshot) []card.Card {
	if sol == nil {
		return nil
	}
	var out []card.Card
	if len(sol.Waste) > 0 {
		out = append(out, sol.Waste[len(sol.Waste)-1])
	}
	for _, col := range sol.Tableau {
		for _, c := range col {
			if c.FaceUp {
				out = append(out, c)
			}
		}
	}
	return out
}

func promptRoundEnd(snap casino.Snapshot) (codec.Intent, bool) {
	if snap.SessionOver {
		pterm.Warning.Println("The house thanks you for your chips.")
		return codec.Intent{Type: codec.IntentCloseSession}, true
	}

	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{"Next round", leaveLabel}).
		Show()
	if err != nil {
		return codec.Intent{}, false
	}
	if choice == leaveLabel {
		return codec.Intent{Type: codec.IntentCloseSession}, true
	}
	return codec.Intent{Type: codec.IntentNextRound}, true
}
