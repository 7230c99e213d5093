package graph

// Weights stores link values by (source, target).
type Weights map[ID]map[ID]float64

// NewWeights builds the value matrix from links. Links without a value
// count as 1; repeated links accumulate.
func NewWeights(links []Link) Weights {
	w := make(Weights)
	for i := range links {
		l := &links[i]
		v := l.Value
		if v == 0 {
			v = 1
		}
		row, ok := w[l.Source]
		if !ok {
			row = make(map[ID]float64)
			w[l.Source] = row
		}
		row[l.Target] += v
	}
	return w
}

// Between returns the value stored for source→target, else target→source,
// else 1.
func (w Weights) Between(source, target ID) float64 {
	if v := w[source][target]; v != 0 {
		return v
	}
	if v := w[target][source]; v != 0 {
		return v
	}
	return 1
}

// Neighbors returns the ids connected to id in either direction.
func (w Weights) Neighbors(id ID) map[ID]bool {
	out := make(map[ID]bool)
	for t := range w[id] {
		out[t] = true
	}
	for s, row := range w {
		if _, ok := row[id]; ok {
			out[s] = true
		}
	}
	delete(out, id)
	return out
}
