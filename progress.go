package moda

// Progress rules for a turn's stage list. Both entry points mutate the
// turn in place and are no-ops for signals the table does not recognize.
//
// The backend signals progress redundantly: a "step" event names the
// stage about to run (or a completion token), and a "step_complete"
// event names a finished stage. Neither channel is guaranteed complete
// or ordered, so progress signals also catch up any stages the network
// dropped completion events for.

// ApplyStep applies a step signal to the turn's stages.
//
// The first signal matching the table's short- or full-path marker pins
// the turn's workflow variant; once pinned it is never re-evaluated.
// Pinning the short path fast-forwards the turn: the backend skipped the
// search sub-pipeline, so everything before the final stage is completed
// and the final stage is running. On the short path subsequent progress
// signals are ignored; they can only belong to the path not taken.
func (t StageTable) ApplyStep(turn *Turn, signal string) {
	if turn.Variant == VariantUnknown {
		switch signal {
		case t.ShortPathSignal:
			turn.Variant = VariantShortPath
			t.fastForward(turn)
			return
		case t.FullPathSignal:
			turn.Variant = VariantFullPath
		}
	}

	if turn.Variant == VariantShortPath {
		// Variant is sticky. Completion tokens still apply: marking a
		// fast-forwarded stage completed is monotone and harmless.
		if id, ok := t.Completions[signal]; ok {
			t.complete(turn, id)
		}
		return
	}

	// Completion tokens mark exactly the matching stage and touch nothing else.
	if id, ok := t.Completions[signal]; ok {
		t.complete(turn, id)
		return
	}

	rank, ok := t.rank(signal)
	if !ok {
		return
	}

	// Progress signal: lower ranks catch up to completed, the target runs,
	// higher ranks stay pending. Exactly one stage runs at a time even when
	// completion events were dropped.
	for i := range turn.Stages {
		switch {
		case i < rank:
			turn.Stages[i].State = StageCompleted
		case i == rank:
			turn.Stages[i].State = StageRunning
		default:
			turn.Stages[i].State = StagePending
		}
	}
}

// ApplyStepComplete unconditionally marks the named stage completed,
// independent of rank. Unrecognized stage ids are ignored.
func (t StageTable) ApplyStepComplete(turn *Turn, stageID string) {
	rank, ok := t.rank(stageID)
	if !ok {
		return
	}
	turn.Stages[rank].State = StageCompleted
}

// fastForward completes every stage before the final one and marks the
// final stage running.
func (t StageTable) fastForward(turn *Turn) {
	last := len(turn.Stages) - 1
	for i := range turn.Stages {
		if i < last {
			turn.Stages[i].State = StageCompleted
		} else {
			turn.Stages[i].State = StageRunning
		}
	}
}

func (t StageTable) complete(turn *Turn, stageID string) {
	if rank, ok := t.rank(stageID); ok {
		turn.Stages[rank].State = StageCompleted
	}
}
