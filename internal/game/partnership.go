package game

// Team formation. The captain invites a partner or goes solo inside the
// shot-sequence window; in 5- and 6-man games the Aardvarks then attach to a
// side, where they can be tossed (once each) at triple risk.

// eligiblePartners returns the non-captain, non-Aardvark players for the
// current hole in hitting order.
func (s *State) eligiblePartners() []PlayerID {
	var out []PlayerID
	for _, pid := range s.HittingOrder[:s.coreSize()] {
		if pid != s.Teams.Captain {
			out = append(out, pid)
		}
	}
	return out
}

// coreSize is how many players form the captain/partner pool; everyone
// hitting after them is an Aardvark.
func (s *State) coreSize() int {
	if len(s.Players) > 4 {
		return 4
	}
	return len(s.Players)
}

// partnershipWindowOpen reports whether the captain may still form a
// partnership: the window closes once every eligible partner has played the
// shot under evaluation (their tee shot).
func (s *State) partnershipWindowOpen() bool {
	for _, pid := range s.eligiblePartners() {
		if s.HoleProgress.ShotsTaken[pid] == 0 {
			return true
		}
	}
	return false
}

// RequestPartner records the captain's invitation. The invitation stays
// pending until the target responds.
func (s *State) RequestPartner(captain, target PlayerID) error {
	if captain != s.Teams.Captain {
		return ruleViolationf(CodeNotCaptain, "%s is not the captain on hole %d", captain, s.CurrentHole)
	}
	if s.Teams.Kind != TeamPending {
		return ruleViolationf(CodePartnershipAlreadyFormed, "teams already formed (%s)", s.Teams.Kind)
	}
	if s.Teams.Pending != nil {
		return ruleViolationf(CodePartnershipAlreadyFormed, "invitation to %s already outstanding", s.Teams.Pending.Target)
	}
	if !s.partnershipWindowOpen() {
		return ruleViolationf(CodeWindowClosed, "all eligible players have hit; partnership window closed on hole %d", s.CurrentHole)
	}
	valid := false
	for _, pid := range s.eligiblePartners() {
		if pid == target {
			valid = true
			break
		}
	}
	if !valid {
		return ruleViolationf(CodeInvalidTarget, "%s is not an eligible partner on hole %d", target, s.CurrentHole)
	}
	s.Teams.Pending = &PartnerRequest{Captain: captain, Target: target}
	return nil
}

// RespondPartner resolves the outstanding invitation. Accepting forms the
// partnership; declining forces the captain solo and doubles the wager
// (The Invitation).
func (s *State) RespondPartner(accept bool) error {
	req := s.Teams.Pending
	if req == nil {
		return ruleViolationf(CodeNoPendingOffer, "no partner invitation outstanding")
	}
	s.Teams.Pending = nil
	if accept {
		s.formPartners(req.Captain, req.Target)
		return nil
	}
	// The Invitation: a declined captain plays alone at double stake.
	if s.Betting.Multiplier*2 <= MaxMultiplier {
		s.Betting.Multiplier *= 2
	}
	s.formSolo(req.Captain)
	if len(s.Players) == 4 && s.Rules.InvisibleAardvark {
		// The invisible Aardvark joins the forcibly-formed field team. It
		// has no ball, so settlement sides are unchanged; the join is only
		// recorded for the hole narrative.
		s.HoleProgress.Notes = append(s.HoleProgress.Notes, "invisible aardvark joins the field")
	}
	s.publish(TeamsFormedEvent{Hole: s.CurrentHole, Kind: s.Teams.Kind, CaptainSide: s.Teams.CaptainSide, FieldSide: s.Teams.FieldSide})
	return nil
}

// DeclareSolo commits the captain to playing alone, doubling the wager.
// Declared before any tee shot it is The Duncan, which pays 3-for-2; after
// the tee shots it is a plain solo.
func (s *State) DeclareSolo(captain PlayerID) error {
	if captain != s.Teams.Captain {
		return ruleViolationf(CodeNotCaptain, "%s is not the captain on hole %d", captain, s.CurrentHole)
	}
	if s.Teams.Kind != TeamPending {
		return ruleViolationf(CodePartnershipAlreadyFormed, "teams already formed (%s)", s.Teams.Kind)
	}
	beforeFirstShot := len(s.HoleProgress.ShotsTaken) == 0
	if beforeFirstShot {
		if err := s.requireNoSpecial(); err != nil {
			return err
		}
		s.Betting.Special = SpecialBet{Kind: SpecialDuncan, Invoker: captain}
	}
	if s.Betting.Multiplier*2 <= MaxMultiplier {
		s.Betting.Multiplier *= 2
	}
	s.formSolo(captain)
	s.publish(TeamsFormedEvent{Hole: s.CurrentHole, Kind: s.Teams.Kind, CaptainSide: s.Teams.CaptainSide, FieldSide: s.Teams.FieldSide})
	return nil
}

func (s *State) formPartners(captain, partner PlayerID) {
	s.Teams.Kind = TeamPartners
	s.Teams.Partner = partner
	s.Teams.CaptainSide = []PlayerID{captain, partner}
	s.Teams.FieldSide = nil
	for _, pid := range s.HittingOrder[:s.coreSize()] {
		if pid != captain && pid != partner {
			s.Teams.FieldSide = append(s.Teams.FieldSide, pid)
		}
	}
	s.publish(TeamsFormedEvent{Hole: s.CurrentHole, Kind: s.Teams.Kind, CaptainSide: s.Teams.CaptainSide, FieldSide: s.Teams.FieldSide})
}

func (s *State) formSolo(soloist PlayerID) {
	s.Teams.Kind = TeamSolo
	s.Teams.Partner = ""
	s.Teams.CaptainSide = []PlayerID{soloist}
	s.Teams.FieldSide = nil
	for _, pid := range s.HittingOrder[:s.coreSize()] {
		if pid != soloist {
			s.Teams.FieldSide = append(s.Teams.FieldSide, pid)
		}
	}
	if soloist == s.Teams.Captain {
		if p := s.playerByID(soloist); p != nil {
			p.SoloCount++
		}
	}
}

// nextUnassignedAardvark enforces resolution order: in 6-man games the first
// Aardvark settles before the second may act.
func (s *State) nextUnassignedAardvark() (PlayerID, bool) {
	if len(s.Teams.UnassignedAardvarks) == 0 {
		return "", false
	}
	return s.Teams.UnassignedAardvarks[0], true
}

// AardvarkRequestJoin attaches an Aardvark to a side. The receiving side may
// answer with AardvarkToss before play moves on.
func (s *State) AardvarkRequestJoin(aardvark PlayerID, side SideID) error {
	if s.Teams.Kind == TeamPending {
		return ruleViolationf(CodeWindowClosed, "core teams are not formed yet on hole %d", s.CurrentHole)
	}
	next, ok := s.nextUnassignedAardvark()
	if !ok {
		return ruleViolationf(CodeInvalidTarget, "%s is not an unassigned Aardvark", aardvark)
	}
	if next != aardvark {
		return ruleViolationf(CodeInvalidTarget, "Aardvark %s must resolve before %s", next, aardvark)
	}
	s.Teams.UnassignedAardvarks = s.Teams.UnassignedAardvarks[1:]
	s.Teams.addToSide(side, aardvark)
	s.Teams.Kind = TeamAardvarkJoined
	s.publish(TeamsFormedEvent{Hole: s.CurrentHole, Kind: s.Teams.Kind, CaptainSide: s.Teams.CaptainSide, FieldSide: s.Teams.FieldSide})
	return nil
}

// AardvarkToss throws a just-joined Aardvark to the other side at triple
// risk. Each Aardvark can be tossed at most once per hole; the receiving
// side of a toss must keep them.
func (s *State) AardvarkToss(aardvark PlayerID) error {
	if err := s.requireOpenWindow(); err != nil {
		return err
	}
	side, ok := s.Teams.SideOf(aardvark)
	if !ok {
		return ruleViolationf(CodeInvalidTarget, "%s has not joined a side", aardvark)
	}
	if s.Teams.TossCounts == nil {
		s.Teams.TossCounts = make(map[PlayerID]int)
	}
	if s.Teams.TossCounts[aardvark] >= 1 {
		return ruleViolationf(CodeInvalidTarget, "%s was already tossed this hole; no ping-pong", aardvark)
	}
	s.Teams.TossCounts[aardvark]++
	s.Teams.removeFromSide(side, aardvark)
	s.Teams.addToSide(side.Other(), aardvark)
	if p := s.playerByID(aardvark); p != nil {
		p.AardvarkTossCount++
	}
	// Triple risk, clamped to the redouble cap like every other escalation.
	s.Betting.Multiplier *= 3
	if s.Betting.Multiplier > MaxMultiplier {
		s.Betting.Multiplier = MaxMultiplier
	}
	s.publish(WagerChangedEvent{Hole: s.CurrentHole, Multiplier: s.Betting.Multiplier, Detail: "aardvark tossed: triple risk"})
	return nil
}

// InvokeTunkarri is the Aardvark's Duncan: instead of joining a side the
// Aardvark plays alone against the field at double stake, paying 3-for-2 on
// a win.
func (s *State) InvokeTunkarri(aardvark PlayerID) error {
	if err := s.requireOpenWindow(); err != nil {
		return err
	}
	if err := s.requireNoSpecial(); err != nil {
		return err
	}
	next, ok := s.nextUnassignedAardvark()
	if !ok || next != aardvark {
		return ruleViolationf(CodeInvalidTarget, "%s is not the Aardvark to act", aardvark)
	}
	s.Teams.UnassignedAardvarks = s.Teams.UnassignedAardvarks[1:]
	s.Betting.Special = SpecialBet{Kind: SpecialTunkarri, Invoker: aardvark}
	if s.Betting.Multiplier*2 <= MaxMultiplier {
		s.Betting.Multiplier *= 2
	}
	// The Tunkarri Aardvark becomes the initiating side; everyone else,
	// prior team lines included, defends together.
	s.Teams.Kind = TeamSolo
	s.Teams.Partner = ""
	s.Teams.CaptainSide = []PlayerID{aardvark}
	s.Teams.FieldSide = nil
	for _, pid := range s.HittingOrder {
		if pid != aardvark {
			s.Teams.FieldSide = append(s.Teams.FieldSide, pid)
		}
	}
	s.Teams.FieldSide = withoutIDs(s.Teams.FieldSide, s.Teams.UnassignedAardvarks)
	s.publish(TeamsFormedEvent{Hole: s.CurrentHole, Kind: s.Teams.Kind, CaptainSide: s.Teams.CaptainSide, FieldSide: s.Teams.FieldSide})
	return nil
}

func withoutIDs(ids, drop []PlayerID) []PlayerID {
	if len(drop) == 0 {
		return ids
	}
	skip := make(map[PlayerID]struct{}, len(drop))
	for _, d := range drop {
		skip[d] = struct{}{}
	}
	out := ids[:0]
	for _, id := range ids {
		if _, drop := skip[id]; !drop {
			out = append(out, id)
		}
	}
	return out
}
