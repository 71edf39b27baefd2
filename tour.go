package vrp

import "log"

// TourDiagnostics reports how a tour was recovered from an assignment
// matrix. Callers use it to tell a clean extraction from a repaired one.
type TourDiagnostics struct {
	Edges    int  `json:"edges"`
	Subtours int  `json:"subtours"`
	Repaired bool `json:"repaired"`
}

// ExtractTour rebuilds a closed tour from a directed 0/1 assignment matrix
// as produced by a MIP solve. The matrix is assumed, but not guaranteed, to
// encode a single Hamiltonian cycle through node 0: time-limited solves and
// incomplete subtour elimination both leave fragmented assignments behind.
// Walking the successor links from node 0 either covers all n nodes
// (success, the tour is closed with a final 0) or stops early on a revisit
// or a dead end, in which case the disjoint cycles are collected and the
// best of them is returned by RepairSubtours. A nil tour means no usable
// result; it is never a silently partial one.
func ExtractTour(assign [][]int) ([]int, TourDiagnostics) {
	n := len(assign)
	diag := TourDiagnostics{}

	next := make([]int, n)
	for i := 0; i < n; i++ {
		next[i] = -1
		for j := 0; j < n; j++ {
			if i != j && assign[i][j] == 1 {
				next[i] = j
				diag.Edges++
				break
			}
		}
	}

	if n == 0 || next[0] < 0 {
		log.Printf("No outgoing edge from the depot (%d edges total)\n", diag.Edges)
		return nil, diag
	}

	tour := make([]int, 0, n+1)
	seen := make([]bool, n)
	node := 0
	for len(tour) < n {
		if seen[node] {
			log.Printf("Cycle closed after %d of %d nodes\n", len(tour), n)
			break
		}
		tour = append(tour, node)
		seen[node] = true
		if next[node] < 0 {
			log.Printf("Dead end at node %d after %d of %d nodes\n", node, len(tour), n)
			break
		}
		node = next[node]
	}

	if len(tour) == n {
		return append(tour, 0), diag
	}

	repaired, subtours := RepairSubtours(next)
	diag.Subtours = subtours
	diag.Repaired = repaired != nil
	return repaired, diag
}

// RepairSubtours partitions a successor map into its disjoint cycles and
// picks one to report: the cycle through node 0, rotated to start and end
// there, or the longest cycle otherwise. The walk always starts at the
// smallest unvisited id, preferring node 0 - the tie-break order decides
// which partial tour gets reported, so it stays as-is. The result is a
// best-effort diagnostic for fragmented solves, not a feasible tour;
// callers still have to run CheckTour. Returns nil and the cycle count
// when no cycle longer than one node exists.
func RepairSubtours(next []int) ([]int, int) {
	n := len(next)
	unvisited := make([]bool, n)
	for i := 0; i < n; i++ {
		unvisited[i] = true
	}
	remaining := n

	var subtours [][]int
	for remaining > 0 {
		start := -1
		if unvisited[0] {
			start = 0
		} else {
			for i := 0; i < n; i++ {
				if unvisited[i] {
					start = i
					break
				}
			}
		}

		subtour := []int{}
		node := start
		for node >= 0 && unvisited[node] {
			subtour = append(subtour, node)
			unvisited[node] = false
			remaining--
			node = next[node]
			if node == start {
				break
			}
		}
		if len(subtour) > 1 {
			subtours = append(subtours, subtour)
		}
	}
	log.Printf("Found %d subtours\n", len(subtours))

	for _, subtour := range subtours {
		for idx, node := range subtour {
			if node == 0 {
				rotated := append([]int{}, subtour[idx:]...)
				rotated = append(rotated, subtour[:idx]...)
				return append(rotated, 0), len(subtours)
			}
		}
	}

	var longest []int
	for _, subtour := range subtours {
		if len(subtour) > len(longest) {
			longest = subtour
		}
	}
	if longest == nil {
		return nil, len(subtours)
	}
	return append(longest, longest[0]), len(subtours)
}

// TourLength sums the edge weights along a closed tour (first node repeated
// at the end).
func TourLength(tour []int, d [][]int) int {
	length := 0
	for i := 0; i+1 < len(tour); i++ {
		length += d[tour[i]][tour[i+1]]
	}
	return length
}

// CheckTour verifies that a tour is a proper closed cycle over n nodes and
// that its recomputed length matches the solver-reported cost. Extraction
// never validates its own output, so every consumer of a tour is expected
// to call this before trusting it.
func CheckTour(tour []int, n int, d [][]int, reportedCost int) bool {
	if len(tour) != n+1 || tour[0] != tour[len(tour)-1] {
		log.Printf("Tour is not a closed cycle over %d nodes: %v\n", n, tour)
		return false
	}
	seen := make([]bool, n)
	for _, node := range tour[:len(tour)-1] {
		if node < 0 || node >= n || seen[node] {
			log.Printf("Node %d out of range or visited twice!\n", node)
			return false
		}
		seen[node] = true
	}
	length := TourLength(tour, d)
	if length != reportedCost {
		log.Printf("Recomputed tour length %d does not match the reported cost %d!\n", length, reportedCost)
		return false
	}
	return true
}
