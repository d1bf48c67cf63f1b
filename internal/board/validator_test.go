package board

import "testing"

func TestValidateClassifiesTransitions(t *testing.T) {
	reg := testRegistry(t)

	tests := []struct {
		name    string
		current string
		target  string
		outcome Outcome
		reason  string
	}{
		{
			name: "forward by one is standard", current: "Universe", target: "Prospects",
			outcome: OutcomeStandard,
		},
		{
			name: "same stage is rejected", current: "Discovery", target: "Discovery",
			outcome: OutcomeRejected, reason: "already in this stage",
		},
		{
			name: "unknown current is rejected", current: "Purgatory", target: "Prospects",
			outcome: OutcomeRejected, reason: "invalid stage definition",
		},
		{
			name: "unknown target is rejected", current: "Universe", target: "Purgatory",
			outcome: OutcomeRejected, reason: "invalid stage definition",
		},
		{
			name: "skip one stage is forceable", current: "Universe", target: "Outreach",
			outcome: OutcomeForceable, reason: "skipping 1 stage(s)",
		},
		{
			name: "skip three stages is forceable", current: "Universe", target: "Execute",
			outcome: OutcomeForceable, reason: "skipping 3 stage(s)",
		},
		{
			name: "backward is forceable", current: "Live Deal", target: "Discovery",
			outcome: OutcomeForceable, reason: "backward transition detected",
		},
		{
			name: "backward to first is forceable", current: "Tracker", target: "Universe",
			outcome: OutcomeForceable, reason: "backward transition detected",
		},
		{
			name: "archive from anywhere is standard", current: "Universe", target: "Ocean",
			outcome: OutcomeStandard,
		},
		{
			name: "archive from late stage is standard", current: "Tracker", target: "Ocean",
			outcome: OutcomeStandard,
		},
		{
			name: "restore to restoration target is standard", current: "Ocean", target: "Prospects",
			outcome: OutcomeStandard,
		},
		{
			name: "restore elsewhere is forceable", current: "Ocean", target: "Execute",
			outcome: OutcomeForceable, reason: "non-standard restoration (archive only restores to Prospects)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decision := reg.Validate(tc.current, tc.target)
			if decision.Outcome != tc.outcome {
				t.Fatalf("Validate(%q, %q).Outcome = %s, want %s",
					tc.current, tc.target, decision.Outcome, tc.outcome)
			}
			if decision.Reason != tc.reason {
				t.Fatalf("Validate(%q, %q).Reason = %q, want %q",
					tc.current, tc.target, decision.Reason, tc.reason)
			}
		})
	}
}

func TestValidateIsPure(t *testing.T) {
	reg := testRegistry(t)
	before := reg.Names()
	for i := 0; i < 3; i++ {
		reg.Validate("Universe", "Ocean")
		reg.Validate("Ocean", "Universe")
	}
	after := reg.Names()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("registry mutated by Validate: %v -> %v", before, after)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	if OutcomeStandard.String() != "standard" ||
		OutcomeForceable.String() != "forceable" ||
		OutcomeRejected.String() != "rejected" {
		t.Fatal("unexpected Outcome string rendering")
	}
	if Outcome(99).String() != "unknown" {
		t.Fatal("out-of-range Outcome should render as unknown")
	}
}
