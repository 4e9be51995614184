package domain

// ScenarioFile is the replayable description of a run: everything needed to
// reproduce a SimulationResult.
type ScenarioFile struct {
	Name        string           `yaml:"name" json:"name"`
	Description string           `yaml:"description,omitempty" json:"description,omitempty"`
	Mode        Mode             `yaml:"mode" json:"mode"`
	Seed        Seed             `yaml:"seed,omitempty" json:"seed,omitempty"`
	Params      SimulationParams `yaml:"params" json:"params"`
	// Sensitivity overrides the default cash-flow multipliers of a sweep.
	Sensitivity []float64 `yaml:"sensitivity,omitempty" json:"sensitivity,omitempty"`
}

// ProjectionState returns the deterministic input for this scenario.
func (sf *ScenarioFile) ProjectionState() ProjectionState {
	return NewProjectionState(sf.Mode, sf.Params)
}
