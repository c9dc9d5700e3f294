package simulation

// moments accumulates the first two moments of a stream of run values.
// Raw sums feed the legacy variance; mean/m2 feed Welford's algorithm.
type moments struct {
	n     int
	sum   float64
	sumSq float64
	mean  float64
	m2    float64
}

func (m *moments) add(x float64) {
	m.n++
	m.sum += x
	m.sumSq += x * x
	delta := x - m.mean
	m.mean += delta / float64(m.n)
	m.m2 += delta * (x - m.mean)
}

// merge folds o into m using Chan et al.'s pairwise update.
func (m *moments) merge(o moments) {
	if o.n == 0 {
		return
	}
	if m.n == 0 {
		*m = o
		return
	}
	n := m.n + o.n
	delta := o.mean - m.mean
	m.mean += delta * float64(o.n) / float64(n)
	m.m2 += o.m2 + delta*delta*float64(m.n)*float64(o.n)/float64(n)
	m.sum += o.sum
	m.sumSq += o.sumSq
	m.n = n
}

func (m moments) variance(method VarianceMethod) float64 {
	if m.n < 2 {
		return 0
	}
	denom := float64(m.n - 1)
	if method == VarianceSample {
		return m.m2 / denom
	}
	mean := m.sum / float64(m.n)
	return m.sumSq/denom - mean*mean
}
