package autotag

import (
	"math"
	"sort"

	"cadenza/internal/metadata"
)

// Assignment is the optimal one-to-one pairing between items and canonical
// tracks. Items and tracks left over when the counts differ land in the
// Extra slices with a stable, reproducible order.
type Assignment struct {
	Mapping     map[*metadata.Item]*metadata.TrackInfo
	ExtraItems  []*metadata.Item
	ExtraTracks []*metadata.TrackInfo
}

// Padded rows and columns must cost more than any real pairing (track
// distances are normalized to [0, 1]) so the solver only leaves entries
// unmatched when the counts force it.
const assignmentPadCost = 2.0

// AssignItems computes the minimum-total-cost pairing between items and
// tracks, where cost is the track distance score without the artist
// component. An exact solver is used rather than greedy nearest-neighbor
// pairing, which can lock in locally good but globally worse orderings.
func (m *Matcher) AssignItems(items []*metadata.Item, tracks []*metadata.TrackInfo) (Assignment, error) {
	assignment := Assignment{Mapping: make(map[*metadata.Item]*metadata.TrackInfo, len(items))}

	n := len(items)
	mm := len(tracks)
	if n > 0 && mm > 0 {
		size := n
		if mm > size {
			size = mm
		}
		cost := make([][]float64, size)
		for i := range cost {
			cost[i] = make([]float64, size)
			for j := range cost[i] {
				cost[i][j] = assignmentPadCost
			}
		}
		for i, item := range items {
			for j, track := range tracks {
				dist, err := m.TrackDistance(item, track, false)
				if err != nil {
					return Assignment{}, err
				}
				cost[i][j] = dist.Score()
			}
		}

		for i, j := range hungarian(cost) {
			if i >= n || j < 0 || j >= mm {
				continue
			}
			assignment.Mapping[items[i]] = tracks[j]
		}
	}

	for _, item := range items {
		if _, ok := assignment.Mapping[item]; !ok {
			assignment.ExtraItems = append(assignment.ExtraItems, item)
		}
	}
	sort.SliceStable(assignment.ExtraItems, func(i, j int) bool {
		a, b := assignment.ExtraItems[i], assignment.ExtraItems[j]
		if a.Disc != b.Disc {
			return a.Disc < b.Disc
		}
		if a.Track != b.Track {
			return a.Track < b.Track
		}
		return a.Title < b.Title
	})

	mapped := make(map[*metadata.TrackInfo]struct{}, len(assignment.Mapping))
	for _, track := range assignment.Mapping {
		mapped[track] = struct{}{}
	}
	for _, track := range tracks {
		if _, ok := mapped[track]; !ok {
			assignment.ExtraTracks = append(assignment.ExtraTracks, track)
		}
	}
	sort.SliceStable(assignment.ExtraTracks, func(i, j int) bool {
		a, b := assignment.ExtraTracks[i], assignment.ExtraTracks[j]
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return a.Title < b.Title
	})

	return assignment, nil
}

// hungarian solves the assignment problem for a square cost matrix
// (minimization). Returns assignment[i] = column chosen for row i, or -1 if
// unassigned. Pure function of its input; safe for concurrent callers.
func hungarian(cost [][]float64) []int {
	n := len(cost)
	if n == 0 {
		return nil
	}
	if len(cost[0]) != n {
		return nil
	}

	u := make([]float64, n+1)
	v := make([]float64, n+1)
	p := make([]int, n+1)
	way := make([]int, n+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		minv := make([]float64, n+1)
		used := make([]bool, n+1)
		for j := 0; j <= n; j++ {
			minv[j] = math.Inf(1)
		}
		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		for {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
			if j0 == 0 {
				break
			}
		}
	}

	assign := make([]int, n)
	for i := range assign {
		assign[i] = -1
	}
	for j := 1; j <= n; j++ {
		if p[j] > 0 && p[j]-1 < n {
			assign[p[j]-1] = j - 1
		}
	}
	return assign
}
