package matchbook

import "testing"

func TestOrderSide_Opposite(t *testing.T) {
	if SideBuy.Opposite() != SideSell || SideSell.Opposite() != SideBuy {
		t.Error("sides must be each other's opposite")
	}
}

func TestOrderSide_String(t *testing.T) {
	cases := map[OrderSide]string{SideBuy: "buy", SideSell: "sell", 0: "unknown"}
	for side, want := range cases {
		if got := side.String(); got != want {
			t.Errorf("side %d: expected %q, got %q", side, want, got)
		}
	}
}

func TestOrderType_String(t *testing.T) {
	cases := map[OrderType]string{TypeLimit: "limit", TypeMarket: "market", 0: "unknown"}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("type %d: expected %q, got %q", typ, want, got)
		}
	}
}
