package calculation

// ScenarioOutcome is what one scenario contributes to the reducer.
type ScenarioOutcome struct {
	EndingValue       float64
	PreTaxEndingValue float64
	LowestValue       float64
	MaxDrawdown       float64
	TotalInvested     float64
	GoalReached       bool
	Profitable        bool
	Solvent           bool
	DepletedAtStep    int // -1 if the balance never reached zero
}

// RunScenario drives one trajectory through every step, snapshotting at the
// plan's recorded steps.
func RunScenario(sp *StepParams, plan RecordingPlan, src NormalSource, sink SnapshotSink) ScenarioOutcome {
	st := sp.NewPathState()
	sink.Record(0, snapshotOf(sp, &st))

	for st.Step < sp.TotalSteps {
		sp.Advance(&st, src.Normal())
		if rec, ok := plan.RecordAt(st.Step); ok {
			sink.Record(rec, snapshotOf(sp, &st))
		}
	}
	return outcomeOf(sp, &st)
}

func snapshotOf(sp *StepParams, st *PathState) Snapshot {
	return Snapshot{
		Step:        st.Step,
		Net:         sp.NetValue(st.Gross, st.Basis),
		Gross:       sp.PreTaxValue(st),
		Performance: st.Performance,
	}
}

func outcomeOf(sp *StepParams, st *PathState) ScenarioOutcome {
	ending := sp.NetValue(st.Gross, st.Basis)
	lowest := st.Lowest
	if lowest > ending {
		lowest = ending
	}
	return ScenarioOutcome{
		EndingValue:       ending,
		PreTaxEndingValue: sp.PreTaxValue(st),
		LowestValue:       lowest,
		MaxDrawdown:       st.MaxDrawdown,
		TotalInvested:     st.Invested,
		GoalReached:       sp.HasGoal && ending >= sp.Goal,
		Profitable:        ending > st.Invested,
		Solvent:           ending > 0,
		DepletedAtStep:    st.DepletedAt,
	}
}
