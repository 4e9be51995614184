package calculation

import "fmt"

// Recording limits used when settings leave them unset.
const (
	DefaultMaxRecordedPoints = 10_000_000
	DefaultMaxChartSteps     = 500
)

// RecordingPlan decides which steps are snapshotted so that each record
// buffer stays within the point budget.
type RecordingPlan struct {
	Frequency int
	Steps     []int // recorded step indices; Steps[0] is the starting state
	total     int
}

// NewRecordingPlan picks the stride for totalSteps across numPaths scenarios.
func NewRecordingPlan(totalSteps, numPaths, maxChartSteps, maxRecordedPoints int) RecordingPlan {
	if maxChartSteps <= 0 {
		maxChartSteps = DefaultMaxChartSteps
	}
	if maxRecordedPoints <= 0 {
		maxRecordedPoints = DefaultMaxRecordedPoints
	}
	target := min(maxChartSteps, maxRecordedPoints/max(numPaths, 1)-1)
	if target < 1 {
		target = 1
	}
	freq := (totalSteps + target - 1) / target
	if freq < 1 {
		freq = 1
	}

	plan := RecordingPlan{Frequency: freq, Steps: []int{0}, total: totalSteps}
	for s := freq; s < totalSteps; s += freq {
		plan.Steps = append(plan.Steps, s)
	}
	if totalSteps > 0 {
		plan.Steps = append(plan.Steps, totalSteps)
	}
	return plan
}

// Records is the number of snapshots per scenario.
func (p RecordingPlan) Records() int { return len(p.Steps) }

// RecordAt returns the record slot for step, if that step is recorded.
func (p RecordingPlan) RecordAt(step int) (int, bool) {
	switch {
	case step == p.total:
		return len(p.Steps) - 1, true
	case step < p.total && step%p.Frequency == 0:
		return step / p.Frequency, true
	}
	return 0, false
}

// Snapshot is one recorded point of a scenario.
type Snapshot struct {
	Step        int
	Net         float64
	Gross       float64
	Performance float64
}

// SnapshotSink receives a scenario's snapshots.
type SnapshotSink interface {
	Record(record int, snap Snapshot)
}

type bufferKind int

const (
	netBuffer bufferKind = iota
	grossBuffer
	perfBuffer
	bufferKinds
)

func (k bufferKind) String() string {
	switch k {
	case netBuffer:
		return "net"
	case grossBuffer:
		return "gross"
	case perfBuffer:
		return "performance"
	}
	return fmt.Sprintf("buffer(%d)", int(k))
}

// RecordBuffers holds every scenario's snapshots, one flat slice per metric
// laid out [record][path]. Scenario i only writes column i.
type RecordBuffers struct {
	records  int
	numPaths int
	data     [bufferKinds][]float64
}

// NewRecordBuffers acquires the three buffers for a run. Scenarios write every
// metric of a snapshot together, so all three stay live until the reducer
// consumes them; peak memory is three times records*numPaths float64s.
func NewRecordBuffers(records, numPaths int) *RecordBuffers {
	b := &RecordBuffers{records: records, numPaths: numPaths}
	for k := range b.data {
		b.data[k] = make([]float64, records*numPaths)
	}
	return b
}

// Column returns the sink for one scenario's slots.
func (b *RecordBuffers) Column(path int) SnapshotSink {
	return bufferColumn{b: b, path: path}
}

// Live reports how many buffers are still held.
func (b *RecordBuffers) Live() int {
	n := 0
	for _, d := range b.data {
		if d != nil {
			n++
		}
	}
	return n
}

// consume hands the rows of one buffer to fn and releases that buffer when fn
// returns. A consumed buffer cannot be read again.
func (b *RecordBuffers) consume(kind bufferKind, fn func(row func(record int) []float64)) error {
	data := b.data[kind]
	if data == nil {
		return fmt.Errorf("%s buffer already released", kind)
	}
	defer func() { b.data[kind] = nil }()

	fn(func(record int) []float64 {
		start := record * b.numPaths
		return data[start : start+b.numPaths]
	})
	return nil
}

type bufferColumn struct {
	b    *RecordBuffers
	path int
}

func (c bufferColumn) Record(record int, snap Snapshot) {
	i := record*c.b.numPaths + c.path
	c.b.data[netBuffer][i] = snap.Net
	c.b.data[grossBuffer][i] = snap.Gross
	c.b.data[perfBuffer][i] = snap.Performance
}

// discardSink drops snapshots; projections read the state directly.
type discardSink struct{}

func (discardSink) Record(int, Snapshot) {}
