package model

import "testing"

func TestValidStatus(t *testing.T) {
	for _, s := range []string{StatusPlaying, StatusGachaTower, StatusAFK} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "PLAYING", "idle", "gacha", "tribelog"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true, want false", s)
		}
	}
}

func TestValidDinoCategory(t *testing.T) {
	for _, c := range []string{DinoCategoryPvP, DinoCategorySoaker, DinoCategoryFlyer, DinoCategoryWater, DinoCategoryAny} {
		if !ValidDinoCategory(c) {
			t.Errorf("ValidDinoCategory(%q) = false, want true", c)
		}
	}
	if ValidDinoCategory("pvp") || ValidDinoCategory("") {
		t.Error("lowercase or empty category accepted")
	}
}

func TestValidEggType(t *testing.T) {
	for _, e := range []string{EggTypeEgg, EggTypeEmbryo, EggTypeClone} {
		if !ValidEggType(e) {
			t.Errorf("ValidEggType(%q) = false, want true", e)
		}
	}
	if ValidEggType("egg") || ValidEggType("Seed") {
		t.Error("unknown egg type accepted")
	}
}
