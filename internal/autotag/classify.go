package autotag

// Recommend maps a distance-sorted candidate list to a confidence level.
//
// Thresholds decide the base level from the best candidate's score (and the
// gap to the runner-up). When the base level is not the terminal "none", it
// is then clamped by any configured per-category ceiling whose penalty
// applies to the best candidate, including, for album matches, penalties on
// its per-track distances. Ceilings are checked against the best candidate
// only; lower-ranked candidates never trigger a downgrade.
func (m *Matcher) Recommend(results []Match) Recommendation {
	if len(results) == 0 {
		return RecNone
	}

	best := results[0].Distance()
	minScore := best.Score()

	var rec Recommendation
	switch {
	case minScore < m.settings.StrongRecThresh:
		rec = RecStrong
	case minScore <= m.settings.MediumRecThresh:
		rec = RecMedium
	case len(results) == 1:
		// Only a single candidate.
		rec = RecLow
	case results[1].Distance().Score()-minScore >= m.settings.RecGapThresh:
		// Large gap between the first two candidates.
		rec = RecLow
	default:
		// No conclusion; cannot be downgraded further.
		return RecNone
	}

	if len(m.settings.MaxRec) == 0 {
		return rec
	}

	keys := make(map[string]struct{})
	for _, key := range best.Keys() {
		keys[key] = struct{}{}
	}
	if _, ok := results[0].(*AlbumMatch); ok {
		for _, trackDist := range best.Tracks {
			for _, key := range trackDist.Keys() {
				keys[key] = struct{}{}
			}
		}
	}
	for key := range keys {
		if ceiling, ok := m.settings.MaxRec[key]; ok && ceiling < rec {
			rec = ceiling
		}
	}
	return rec
}
