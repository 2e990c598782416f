package alert

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestEvaluate_Above(t *testing.T) {
	a := Alert{Symbol: "BTCUSDT", Condition: ConditionAbove, Price: dec("26000")}

	tests := []struct {
		name      string
		current   string
		triggered bool
	}{
		{"current above target", "26000.00000001", true},
		{"current far above target", "30000", true},
		{"current equals target", "26000", false},
		{"current below target", "25999.99999999", false},
		{"zero sentinel", "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Evaluate(a, dec(tt.current))
			if out.Triggered != tt.triggered {
				t.Errorf("Triggered = %v, want %v", out.Triggered, tt.triggered)
			}
			if out.Flipped {
				t.Error("above must never flip")
			}
		})
	}
}

func TestEvaluate_Below(t *testing.T) {
	a := Alert{Symbol: "BTCUSDT", Condition: ConditionBelow, Price: dec("26000")}

	tests := []struct {
		name      string
		current   string
		triggered bool
	}{
		{"current below target", "25999.99999999", true},
		{"current equals target", "26000", false},
		{"current above target", "26000.00000001", false},
		{"zero sentinel satisfies below", "0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Evaluate(a, dec(tt.current))
			if out.Triggered != tt.triggered {
				t.Errorf("Triggered = %v, want %v", out.Triggered, tt.triggered)
			}
			if out.Flipped {
				t.Error("below must never flip")
			}
		})
	}
}

func TestEvaluate_Cross(t *testing.T) {
	a := Alert{Symbol: "ETHUSDT", Condition: ConditionCross, Price: dec("26000")}

	t.Run("current above target flips to below", func(t *testing.T) {
		out := Evaluate(a, dec("27000"))
		if !out.Triggered || !out.Flipped {
			t.Fatalf("expected triggered flip, got %+v", out)
		}
		if out.NewCondition != ConditionBelow {
			t.Errorf("NewCondition = %s, want below", out.NewCondition)
		}
		if out.Message != "ETHUSDT is below 26000" {
			t.Errorf("unexpected message: %q", out.Message)
		}
	})

	t.Run("current below target flips to above", func(t *testing.T) {
		out := Evaluate(a, dec("25000"))
		if !out.Triggered || !out.Flipped {
			t.Fatalf("expected triggered flip, got %+v", out)
		}
		if out.NewCondition != ConditionAbove {
			t.Errorf("NewCondition = %s, want above", out.NewCondition)
		}
		if out.Message != "ETHUSDT is above 26000" {
			t.Errorf("unexpected message: %q", out.Message)
		}
	})

	t.Run("current equals target is a no-op", func(t *testing.T) {
		out := Evaluate(a, dec("26000"))
		if out.Triggered || out.Flipped {
			t.Fatalf("expected no-op, got %+v", out)
		}
	})
}

func TestEvaluate_Message(t *testing.T) {
	a := Alert{Symbol: "BTCUSDT", Condition: ConditionAbove, Price: dec("100")}
	out := Evaluate(a, dec("25000"))
	if out.Message != "BTCUSDT is above 100" {
		t.Errorf("unexpected message: %q", out.Message)
	}

	// 小數目標價不應出現多餘的尾零
	a.Price = dec("0.07500000")
	out = Evaluate(a, dec("0.08"))
	if out.Message != "BTCUSDT is above 0.075" {
		t.Errorf("unexpected message: %q", out.Message)
	}
}
