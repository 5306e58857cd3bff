package models

// Snapshot is the full ledger state as loaded from and saved to storage.
type Snapshot struct {
	Bets     []Bet     `json:"bets"`
	Payments []Payment `json:"payments"`
	Cards    []Card    `json:"cards"`
	Settings Settings  `json:"settings"`

	// MilestoneCounter is the number of target-profit multiples already
	// converted into payments. It only grows, and it is persisted rather
	// than derived: deleting a milestone payment does not un-fire it.
	MilestoneCounter int `json:"milestone_counter"`
}

// NewSnapshot returns an empty ledger with default settings.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Bets:     []Bet{},
		Payments: []Payment{},
		Cards:    []Card{},
		Settings: DefaultSettings(),
	}
}

// BetIndex returns the position of the bet with the given id, or -1.
func (s *Snapshot) BetIndex(id string) int {
	for i := range s.Bets {
		if s.Bets[i].ID == id {
			return i
		}
	}
	return -1
}

// PaymentIndex returns the position of the payment with the given id, or -1.
func (s *Snapshot) PaymentIndex(id string) int {
	for i := range s.Payments {
		if s.Payments[i].ID == id {
			return i
		}
	}
	return -1
}

// Card looks up a card by id.
func (s *Snapshot) Card(id string) (Card, bool) {
	return FindCard(s.Cards, id)
}

// FindCard looks up a card by id in cards.
func FindCard(cards []Card, id string) (Card, bool) {
	if id == "" {
		return Card{}, false
	}
	for _, c := range cards {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}
