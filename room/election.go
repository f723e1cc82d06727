// room/election.go
//
// Role elections run inside the room mutex, so a disconnect of the
// current drawer and a correct guess can never both pick a drawer, and
// neither ever reads a roster mid-mutation.
package room

// electHostLocked picks the first connected player in roster order. An
// empty roster leaves the host explicitly unset; the room is destroyed
// by the roster-empty logic one step later, so the gap is never
// externally observable.
func (r *Room) electHostLocked() {
	r.hostID = r.roster.FirstConnected()
}

// electDrawerLocked uniformly samples a connected member of the active
// team and draws a fresh word for them. When the active team has no
// connected members the election skips to the opposing team; when
// neither team has one, the round pauses with drawer and word cleared
// until a later mutation re-elects. Returns whether a drawer was found.
func (r *Room) electDrawerLocked() bool {
	candidates := r.connectedMembersLocked(r.currentTeam)
	if len(candidates) == 0 {
		r.currentTeam = r.currentTeam.Other()
		candidates = r.connectedMembersLocked(r.currentTeam)
	}
	if len(candidates) == 0 {
		r.drawerID = ""
		r.currentWord = ""
		return false
	}

	r.drawerID = candidates[r.rng.Intn(len(candidates))]
	r.currentWord = r.bank.Draw()
	return true
}

func (r *Room) connectedMembersLocked(team Team) []string {
	var out []string
	for _, id := range r.teams[team] {
		if p, ok := r.roster.Get(id); ok && p.Connected {
			out = append(out, id)
		}
	}
	return out
}
