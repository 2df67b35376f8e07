package game

// TeamKind is the tagged variant of per-hole team formation.
type TeamKind string

const (
	TeamPending        TeamKind = "pending"
	TeamPartners       TeamKind = "partners"
	TeamSolo           TeamKind = "solo"
	TeamAardvarkJoined TeamKind = "aardvark_joined"
)

// SideID names one of the two settling sides of a hole.
type SideID string

const (
	SideCaptain SideID = "captain" // the captain's side
	SideField   SideID = "field"   // everyone opposing the captain's side
)

// Other returns the opposing side.
func (s SideID) Other() SideID {
	if s == SideCaptain {
		return SideField
	}
	return SideCaptain
}

// PartnerRequest is an outstanding invitation from the captain.
type PartnerRequest struct {
	Captain PlayerID `json:"captain"`
	Target  PlayerID `json:"target"`
}

// Teams is the per-hole team formation. It is rebuilt every hole and
// discarded at settlement; HoleResult keeps a snapshot.
//
// CaptainSide and FieldSide are the two settling sides. Aardvarks that have
// not yet joined a side appear in UnassignedAardvarks and must be resolved
// (join, toss resolution, or Tunkarri solo) before the hole can settle.
type Teams struct {
	Kind    TeamKind `json:"kind"`
	Captain PlayerID `json:"captain"`
	Partner PlayerID `json:"partner,omitempty"`

	CaptainSide []PlayerID `json:"captain_side"`
	FieldSide   []PlayerID `json:"field_side"`

	Pending             *PartnerRequest `json:"pending,omitempty"`
	UnassignedAardvarks []PlayerID      `json:"unassigned_aardvarks,omitempty"`

	// TossCounts guards re-tossing: each Aardvark may be tossed at most
	// once per hole.
	TossCounts map[PlayerID]int `json:"toss_counts,omitempty"`
}

// Resolved reports whether both sides are final and no Aardvark is floating.
func (t *Teams) Resolved() bool {
	switch t.Kind {
	case TeamPartners, TeamSolo, TeamAardvarkJoined:
		return len(t.UnassignedAardvarks) == 0 && t.Pending == nil
	default:
		return false
	}
}

// SideOf returns which side a player settles on.
func (t *Teams) SideOf(id PlayerID) (SideID, bool) {
	for _, p := range t.CaptainSide {
		if p == id {
			return SideCaptain, true
		}
	}
	for _, p := range t.FieldSide {
		if p == id {
			return SideField, true
		}
	}
	return "", false
}

// Members returns the players on a side.
func (t *Teams) Members(side SideID) []PlayerID {
	if side == SideCaptain {
		return t.CaptainSide
	}
	return t.FieldSide
}

func (t *Teams) removeFromSide(side SideID, id PlayerID) {
	members := t.Members(side)
	out := members[:0]
	for _, p := range members {
		if p != id {
			out = append(out, p)
		}
	}
	if side == SideCaptain {
		t.CaptainSide = out
	} else {
		t.FieldSide = out
	}
}

func (t *Teams) addToSide(side SideID, id PlayerID) {
	if side == SideCaptain {
		t.CaptainSide = append(t.CaptainSide, id)
	} else {
		t.FieldSide = append(t.FieldSide, id)
	}
}

func (t *Teams) clone() *Teams {
	c := *t
	c.CaptainSide = append([]PlayerID(nil), t.CaptainSide...)
	c.FieldSide = append([]PlayerID(nil), t.FieldSide...)
	c.UnassignedAardvarks = append([]PlayerID(nil), t.UnassignedAardvarks...)
	if t.Pending != nil {
		p := *t.Pending
		c.Pending = &p
	}
	if t.TossCounts != nil {
		c.TossCounts = make(map[PlayerID]int, len(t.TossCounts))
		for k, v := range t.TossCounts {
			c.TossCounts[k] = v
		}
	}
	return &c
}
