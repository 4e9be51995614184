package calculation

import "github.com/rpgo/portfolio-simulator/internal/domain"

// DefaultParallelThreshold is the smallest path count run in parallel.
const DefaultParallelThreshold = 2000

// Options tune execution. They never change a run's statistical result.
type Options struct {
	Workers           int // 0 means one per CPU
	ParallelThreshold int
	MaxRecordedPoints int
	MaxChartSteps     int
}

// DefaultOptions returns the built-in execution options.
func DefaultOptions() Options {
	return Options{
		ParallelThreshold: DefaultParallelThreshold,
		MaxRecordedPoints: DefaultMaxRecordedPoints,
		MaxChartSteps:     DefaultMaxChartSteps,
	}
}

// Engine runs stochastic simulations, deterministic projections and
// sensitivity sweeps. It holds no per-run state and is safe for concurrent use.
type Engine struct {
	options  Options
	executor Executor // forced strategy; nil selects per run
	logger   Logger
}

// NewEngine creates an engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{options: opts, logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.logger = NopLogger{}
		return
	}
	e.logger = l
}

// SetExecutor forces an execution strategy. Nil restores automatic selection.
func (e *Engine) SetExecutor(x Executor) { e.executor = x }

// Options returns the engine's execution options.
func (e *Engine) Options() Options { return e.options }

// prepare applies defaults and validates, returning the runnable params.
func prepare(params domain.SimulationParams) (domain.SimulationParams, error) {
	p := params.WithDefaults()
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}
