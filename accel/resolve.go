package accel

import (
	"sort"

	"globalaccel/keys"
)

// candidate is one request for a combo. Its priority is the triple
// (actionIdx, shortcutIdx, variantIdx), compared lexicographically.
type candidate struct {
	actionIdx   int
	shortcutIdx int
	variantIdx  int
	combo       keys.Combo
	action      *Action
}

func (c candidate) less(o candidate) bool {
	if c.actionIdx != o.actionIdx {
		return c.actionIdx < o.actionIdx
	}
	if c.shortcutIdx != o.shortcutIdx {
		return c.shortcutIdx < o.shortcutIdx
	}
	return c.variantIdx < o.variantIdx
}

// candidates lists every combo requested by an enabled action, sorted by
// priority. Only the first keystroke of each shortcut is requested; later
// keystrokes of a chord are grabbed once the chord starts.
func (r *Registry) candidates(exclude *Action) []candidate {
	var out []candidate
	for ai, a := range r.actions {
		if !a.enabled || a.label || a == exclude {
			continue
		}
		for si, sc := range a.shortcuts {
			for vi, c := range sc.First() {
				if c.IsZero() {
					continue
				}
				out = append(out, candidate{
					actionIdx:   ai,
					shortcutIdx: si,
					variantIdx:  vi,
					combo:       c,
					action:      a,
				})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].less(out[j]) })
	return out
}

// resolution is the outcome of walking the sorted candidate list.
type resolution struct {
	// winners in the order they were claimed
	order  []keys.Combo
	owners map[keys.Combo]*Action
	// combos requested by more than one action
	contested map[keys.Combo]struct{}
	lost      []candidate
}

func resolve(cands []candidate) resolution {
	res := resolution{
		owners:    make(map[keys.Combo]*Action),
		contested: make(map[keys.Combo]struct{}),
	}
	for _, c := range cands {
		owner, taken := res.owners[c.combo]
		if !taken {
			res.owners[c.combo] = c.action
			res.order = append(res.order, c.combo)
			continue
		}
		if owner != c.action {
			res.contested[c.combo] = struct{}{}
			res.lost = append(res.lost, c)
		}
	}
	return res
}

func sortedCombos(m map[keys.Combo]*Action) []keys.Combo {
	out := make([]keys.Combo, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
