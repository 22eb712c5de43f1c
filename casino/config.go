package casino

import "fmt"

// Seat describes a bot joining the table.
type Seat struct {
	Name  string
	Chips int64
}

type Config struct {
	Variant Variant

	// Human bankroll at session start.
	StartingBalance int64

	// Bot roster. Ignored for Solitaire; required for every other variant.
	Bots []Seat

	// RNG seed (0 => time-based)
	Seed int64
}

func (c Config) validate() error {
	if _, ok := VariantDictionary[c.Variant]; !ok {
		return fmt.Errorf("unknown variant %d", c.Variant)
	}
	if c.StartingBalance <= 0 {
		return fmt.Errorf("StartingBalance must be > 0")
	}
	if c.Variant != VariantSolitaire && len(c.Bots) == 0 {
		return fmt.Errorf("%s needs at least one bot", c.Variant)
	}
	for _, b := range c.Bots {
		if b.Name == "" {
			return fmt.Errorf("bot seat with empty name")
		}
		if b.Chips <= 0 {
			return fmt.Errorf("bot %s must start with chips > 0", b.Name)
		}
	}
	return nil
}
