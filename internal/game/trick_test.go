package game

import (
	"math"
	"testing"
)

func TestTrickLedger_ChainGrowsOnDistinctTricks(t *testing.T) {
	cfg := DefaultConfig()
	l := NewTrickLedger()

	kinds := []TrickKind{TrickLeftHelicopter, TrickAirBrake, TrickRightHelicopter}
	wantChain := []int{0, 1, 2}
	for i, k := range kinds {
		payout, chain := l.Complete(k, float64(i)*1000, cfg)
		if chain != wantChain[i] {
			t.Fatalf("trick %d: expected chain %d, got %d", i, wantChain[i], chain)
		}
		want := cfg.TrickBaseValue * math.Pow(cfg.ChainBase, float64(wantChain[i]))
		if math.Abs(payout-want) > 1e-9 {
			t.Fatalf("trick %d: expected payout %v, got %v", i, want, payout)
		}
	}

	// Repeating the last trick breaks the chain.
	_, chain := l.Complete(TrickRightHelicopter, 10000, cfg)
	if chain != 0 {
		t.Fatalf("expected repeat to reset chain, got %d", chain)
	}
	if l.Completed != 4 {
		t.Fatalf("expected 4 completions, got %d", l.Completed)
	}
}

func TestTrickLedger_RepeatDecay(t *testing.T) {
	cfg := DefaultConfig()
	l := NewTrickLedger()
	l.Complete(TrickParachute, 0, cfg)
	l.Complete(TrickAirBrake, 100, cfg)

	// Parachute again 2500ms after it last fired: half the cooldown.
	payout, chain := l.Complete(TrickParachute, 2500, cfg)
	wantMult := cfg.TrickValueFloor + (1-cfg.TrickValueFloor)*0.5
	want := cfg.TrickBaseValue * math.Pow(cfg.ChainBase, float64(chain)) * wantMult
	if math.Abs(payout-want) > 1e-9 {
		t.Fatalf("expected decayed payout %v, got %v", want, payout)
	}
	if l.Earned <= 0 {
		t.Fatal("expected earnings to accumulate")
	}
}

func TestTrickValueMultiplier(t *testing.T) {
	cases := []struct {
		since, cooldown, floor, want float64
	}{
		{0, 5000, 0.2, 0.2},
		{-10, 5000, 0.2, 0.2},
		{2500, 5000, 0.2, 0.6},
		{5000, 5000, 0.2, 1},
		{9000, 5000, 0.2, 1},
		{100, 0, 0.2, 1},
	}
	for _, c := range cases {
		if got := TrickValueMultiplier(c.since, c.cooldown, c.floor); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("TrickValueMultiplier(%v, %v, %v): expected %v, got %v", c.since, c.cooldown, c.floor, c.want, got)
		}
	}
}

func TestChainMultiplier(t *testing.T) {
	if ChainMultiplier(1.5, 0) != 1 || ChainMultiplier(1.5, -3) != 1 {
		t.Fatal("expected chain 0 or below to multiply by 1")
	}
	if got := ChainMultiplier(1.5, 2); math.Abs(got-2.25) > 1e-12 {
		t.Fatalf("expected 2.25, got %v", got)
	}
}

func TestTrickFromEdges(t *testing.T) {
	cases := []struct {
		e    inputEdges
		want TrickKind
	}{
		{inputEdges{Left: true}, TrickLeftHelicopter},
		{inputEdges{Right: true}, TrickRightHelicopter},
		{inputEdges{Down: true}, TrickAirBrake},
		{inputEdges{Up: true}, TrickParachute},
		{inputEdges{}, TrickNone},
	}
	for _, c := range cases {
		if got := trickFromEdges(c.e); got != c.want {
			t.Errorf("expected %s, got %s", c.want, got)
		}
	}
}
