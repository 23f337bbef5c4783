package vibe

import "testing"

func TestParseResponse(t *testing.T) {
	t.Run("well formed response", func(t *testing.T) {
		p := parseResponse("VIBING: YES\nCONFIDENCE: 85\nDESCRIPTION: Arms raised, clearly dancing")

		if !p.vibing {
			t.Error("expected vibing")
		}
		if p.confidence != 85 {
			t.Errorf("expected confidence 85, got %d", p.confidence)
		}
		if p.description != "Arms raised, clearly dancing" {
			t.Errorf("unexpected description %q", p.description)
		}
	})

	t.Run("temporal fields", func(t *testing.T) {
		p := parseResponse("VIBING: NO\nCONFIDENCE: 40\nMOVEMENT_DETECTED: YES\nENERGY_LEVEL: MEDIUM\nDESCRIPTION: Slight swaying")

		if p.vibing {
			t.Error("expected not vibing")
		}
		if !p.movement {
			t.Error("expected movement detected")
		}
		if p.energyLevel != EnergyMedium {
			t.Errorf("expected MEDIUM, got %s", p.energyLevel)
		}
	})

	t.Run("missing prefixes default deterministically", func(t *testing.T) {
		p := parseResponse("The model decided to freestyle instead of following the format.")

		if p.vibing {
			t.Error("missing VIBING must default to false")
		}
		if p.confidence != 50 {
			t.Errorf("missing CONFIDENCE must default to 50, got %d", p.confidence)
		}
		if p.movement {
			t.Error("missing MOVEMENT_DETECTED must default to false")
		}
		if p.energyLevel != EnergyUnknown {
			t.Errorf("missing ENERGY_LEVEL must default to UNKNOWN, got %s", p.energyLevel)
		}
		if p.description != "" {
			t.Errorf("expected empty description, got %q", p.description)
		}
	})

	t.Run("confidence without digits defaults to 50", func(t *testing.T) {
		p := parseResponse("CONFIDENCE: quite high")
		if p.confidence != 50 {
			t.Errorf("expected 50, got %d", p.confidence)
		}
	})

	t.Run("confidence digits are concatenated", func(t *testing.T) {
		p := parseResponse("CONFIDENCE: 85%")
		if p.confidence != 85 {
			t.Errorf("expected 85, got %d", p.confidence)
		}
	})

	t.Run("empty energy level keeps the sentinel", func(t *testing.T) {
		p := parseResponse("ENERGY_LEVEL:   ")
		if p.energyLevel != EnergyUnknown {
			t.Errorf("expected UNKNOWN, got %s", p.energyLevel)
		}
	})

	t.Run("answers are case insensitive", func(t *testing.T) {
		p := parseResponse("VIBING: yes\nMOVEMENT_DETECTED: Yes")
		if !p.vibing || !p.movement {
			t.Error("expected lowercase yes to be recognized")
		}
	})
}

func TestSummarize(t *testing.T) {
	t.Run("majority vote and mean confidence", func(t *testing.T) {
		s := Summarize([]Result{
			{IsVibing: true, Confidence: 80},
			{IsVibing: true, Confidence: 90},
			{IsVibing: false, Confidence: 40},
			{IsVibing: false, Confidence: 30},
		})

		if !s.OverallVibing {
			t.Error("50% positive must count as vibing")
		}
		if s.VibingImages != 2 {
			t.Errorf("expected 2 vibing images, got %d", s.VibingImages)
		}
		if s.VibingPercentage != 50 {
			t.Errorf("expected 50%%, got %.1f", s.VibingPercentage)
		}
		if s.AverageConfidence != 60 {
			t.Errorf("expected mean 60, got %.1f", s.AverageConfidence)
		}
	})

	t.Run("minority stays not vibing", func(t *testing.T) {
		s := Summarize([]Result{
			{IsVibing: true, Confidence: 95},
			{IsVibing: false, Confidence: 20},
			{IsVibing: false, Confidence: 25},
		})
		if s.OverallVibing {
			t.Error("one of three is not a majority")
		}
	})

	t.Run("empty input", func(t *testing.T) {
		s := Summarize(nil)
		if s.TotalImages != 0 || s.OverallVibing {
			t.Errorf("unexpected summary for empty input: %+v", s)
		}
	})
}
