package config

import (
	"testing"
	"time"
)

func TestEnvHelpersDefaults(t *testing.T) {
	if got := envStr("TRIBESTORE_UNSET_VAR", "fallback"); got != "fallback" {
		t.Fatalf("envStr = %q", got)
	}
	if got := envInt("TRIBESTORE_UNSET_VAR", 7); got != 7 {
		t.Fatalf("envInt = %d", got)
	}
	if got := envDur("TRIBESTORE_UNSET_VAR", time.Minute); got != time.Minute {
		t.Fatalf("envDur = %v", got)
	}
	if got := envBool("TRIBESTORE_UNSET_VAR", true); !got {
		t.Fatal("envBool default not honored")
	}
}

func TestEnvHelpersParsing(t *testing.T) {
	t.Setenv("TRIBESTORE_TEST_INT", "42")
	if got := envInt("TRIBESTORE_TEST_INT", 0); got != 42 {
		t.Fatalf("envInt = %d, want 42", got)
	}
	t.Setenv("TRIBESTORE_TEST_DUR", "250ms")
	if got := envDur("TRIBESTORE_TEST_DUR", 0); got != 250*time.Millisecond {
		t.Fatalf("envDur = %v", got)
	}
	t.Setenv("TRIBESTORE_TEST_BOOL", "off")
	if got := envBool("TRIBESTORE_TEST_BOOL", true); got {
		t.Fatal("envBool did not parse off")
	}
	t.Setenv("TRIBESTORE_TEST_BAD_INT", "x42")
	if got := envInt("TRIBESTORE_TEST_BAD_INT", 5); got != 5 {
		t.Fatalf("envInt on garbage = %d, want default 5", got)
	}
}

func TestRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "1s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 {
		t.Fatalf("Capacity = %d, want clamp to 1", cfg.Capacity)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Fatalf("TTL = %v, want at least 5x interval", cfg.TTL)
	}
}
