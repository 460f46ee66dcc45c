package ecosystem

import "testing"

func TestSetFloatParameterRebuildsMatrix(t *testing.T) {
	world, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}

	if !world.SetFloatParameter("predation", 0.2) {
		t.Fatal("expected predation strength to be adjustable")
	}
	m := world.Matrix()
	if m[1][0] != -0.2 {
		t.Fatalf("matrix must rebuild after an interaction change, got %g", m[1][0])
	}

	if world.SetFloatParameter("predation", -1) {
		t.Fatal("negative predation must be rejected")
	}
	if world.SetFloatParameter("decay", 1.5) {
		t.Fatal("decay above 1 must be rejected")
	}
	if world.SetFloatParameter("crowd_high", 0) {
		t.Fatal("crowd_high below crowd_low must be rejected")
	}
}

func TestParametersSnapshotIncludesSpeciesGroups(t *testing.T) {
	world, err := New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	snap := world.Parameters()
	// World, Interaction, Integration plus one group per channel.
	if len(snap.Groups) != 3+Channels {
		t.Fatalf("expected %d groups, got %d", 3+Channels, len(snap.Groups))
	}
}
