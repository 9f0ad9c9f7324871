package graph

// ---------------------------------------------------------------------------
// Geometric warnings
// ---------------------------------------------------------------------------

// coincidentEpsilon is the distance below which two points are treated as the
// same position by the geometric checks.
const coincidentEpsilon = 1e-9

func validateGeometry(g *Graph) []ValidationError {
	var warnings []ValidationError
	warnings = append(warnings, validateIsolatedNodes(g)...)
	warnings = append(warnings, validateZeroLength(g)...)
	warnings = append(warnings, validateDuplicateLines(g)...)
	return warnings
}

// validateIsolatedNodes warns about anchors with no incident edge. They are
// legal but never contribute to a region.
func validateIsolatedNodes(g *Graph) []ValidationError {
	var warnings []ValidationError
	for i, n := range g.nodes {
		if n != nil && len(n.Adjacent) == 0 {
			warnings = append(warnings, nodeFinding(NodeIndex(i), SeverityWarning, "isolated node"))
		}
	}
	return warnings
}

// validateZeroLength warns about straight edges whose endpoints coincide.
func validateZeroLength(g *Graph) []ValidationError {
	var warnings []ValidationError
	for i, e := range g.edges {
		if e == nil || e.Kind() != EdgeLine || !g.HasNode(e.Start) || !g.HasNode(e.End) {
			continue
		}
		a, b := g.nodes[e.Start].Position, g.nodes[e.End].Position
		if a.Sub(b).Length() < coincidentEpsilon {
			warnings = append(warnings, edgeFinding(EdgeIndex(i), SeverityWarning, "zero-length line"))
		}
	}
	return warnings
}

// lineKey is an undirected node pair used to spot duplicated straight edges.
type lineKey struct {
	lo, hi NodeIndex
}

func makeLineKey(a, b NodeIndex) lineKey {
	if a > b {
		a, b = b, a
	}
	return lineKey{lo: a, hi: b}
}

// validateDuplicateLines warns when two straight edges join the same pair of
// nodes. Such a pair encloses no area and produces a degenerate cycle.
func validateDuplicateLines(g *Graph) []ValidationError {
	var warnings []ValidationError
	seen := make(map[lineKey]EdgeIndex)
	for i, e := range g.edges {
		if e == nil || e.Kind() != EdgeLine {
			continue
		}
		key := makeLineKey(e.Start, e.End)
		if first, ok := seen[key]; ok {
			warnings = append(warnings, edgeFinding(EdgeIndex(i), SeverityWarning, "duplicates line %d", int(first)))
			continue
		}
		seen[key] = EdgeIndex(i)
	}
	return warnings
}
