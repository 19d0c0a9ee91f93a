// ABOUTME: Tests for the bio-age and CVD risk calculators.
// ABOUTME: Asserts structural behavior and plausibility bounds, not clinical values.
package biocalc

import (
	"math"
	"testing"
)

func ptr(v float64) *float64 { return &v }

func TestNormalizeCreatinine(t *testing.T) {
	got := normalizeCreatinine(1.0)
	if math.Abs(got.Value-88.4) > 0.001 {
		t.Errorf("1.0 mg/dL = %.2f umol/L, want 88.4", got.Value)
	}

	got = normalizeCreatinine(90)
	if got.Value != 90 {
		t.Errorf("90 umol/L should pass through, got %.2f", got.Value)
	}
}

func TestNormalizeGlucose(t *testing.T) {
	got := normalizeGlucose(90)
	if math.Abs(got.Value-5.0) > 0.001 {
		t.Errorf("90 mg/dL = %.2f mmol/L, want 5.0", got.Value)
	}

	got = normalizeGlucose(5.5)
	if got.Value != 5.5 {
		t.Errorf("5.5 mmol/L should pass through, got %.2f", got.Value)
	}
}

func TestNormalizeAlbuminPercent(t *testing.T) {
	// 60% of a 7.0 g/dL total protein = 42 g/L.
	got := normalizeAlbumin(60, ptr(7.0))
	if math.Abs(got.Value-42) > 0.001 {
		t.Errorf("60%% of TP 7.0 = %.2f g/L, want 42", got.Value)
	}
	if got.Warning != "" {
		t.Errorf("unexpected warning: %s", got.Warning)
	}
}

func TestNormalizeCRPClampsAtZero(t *testing.T) {
	got := normalizeCRP(0)
	want := math.Log(0.1)
	if math.Abs(got.Value-want) > 0.001 {
		t.Errorf("CRP 0 = %.3f, want ln(0.1) = %.3f", got.Value, want)
	}
}

func healthyPhenoInputs() PhenoAgeInputs {
	return PhenoAgeInputs{
		Age:           45,
		Albumin:       ptr(4.4), // g/dL
		Creatinine:    ptr(1.0), // mg/dL
		Glucose:       ptr(90),  // mg/dL
		CRP:           ptr(0.5),
		MCV:           ptr(90),
		RDW:           ptr(13.0),
		ALP:           ptr(70),
		WBC:           ptr(6.0),
		TotalProtein:  ptr(7.2),
		LymphocytePct: ptr(30.0),
	}
}

func TestPhenoAgeRequiresAge(t *testing.T) {
	if PhenoAge(PhenoAgeInputs{}) != nil {
		t.Error("expected nil without age")
	}
}

func TestPhenoAgeMissingBiomarkers(t *testing.T) {
	res := PhenoAge(PhenoAgeInputs{Age: 45})
	if res == nil {
		t.Fatal("expected a result echoing chronological age")
	}
	if res.BiologicalAge != 45 {
		t.Errorf("BiologicalAge = %.1f, want chronological 45", res.BiologicalAge)
	}
	if len(res.MissingMetrics) == 0 {
		t.Error("expected missing metrics to be listed")
	}
}

func TestPhenoAgeFullPanel(t *testing.T) {
	res := PhenoAge(healthyPhenoInputs())
	if res == nil {
		t.Fatal("expected a result")
	}
	if len(res.MissingMetrics) != 0 {
		t.Errorf("unexpected missing metrics: %v", res.MissingMetrics)
	}
	if res.BiologicalAge < 18 || res.BiologicalAge > 100 {
		t.Errorf("BiologicalAge = %.1f, outside plausible bounds", res.BiologicalAge)
	}
	if len(res.Factors) != 9 {
		t.Errorf("got %d factors, want 9", len(res.Factors))
	}
	if math.Abs(res.AgeDiff-(res.BiologicalAge-res.ChronologicalAge)) > 0.11 {
		t.Errorf("AgeDiff %.1f inconsistent with bio %.1f / chrono %.1f",
			res.AgeDiff, res.BiologicalAge, res.ChronologicalAge)
	}
}

func TestPhenoAgeDerivesLymphocytePct(t *testing.T) {
	in := healthyPhenoInputs()
	in.LymphocytePct = nil
	in.LymphocyteAbs = ptr(1.8)
	res := PhenoAge(in)
	if res == nil {
		t.Fatal("expected a result")
	}
	if len(res.MissingMetrics) != 0 {
		t.Errorf("lymphocyte %% should derive from abs/WBC, missing: %v", res.MissingMetrics)
	}
}

func TestKDMBioAge(t *testing.T) {
	res := KDMBioAge(KDMInputs{
		Age:              45,
		Sex:              ptr(1.0),
		Albumin:          ptr(4.4),
		Creatinine:       ptr(1.0),
		TotalCholesterol: ptr(190),
		Glucose:          ptr(90),
		CRP:              ptr(0.5),
		ALP:              ptr(70),
		SBP:              ptr(118),
		BMI:              ptr(23.5),
	})
	if res == nil {
		t.Fatal("expected a result")
	}
	if res.BiologicalAge < 18 || res.BiologicalAge > 100 {
		t.Errorf("BiologicalAge = %.1f, outside clamp range", res.BiologicalAge)
	}
	if len(res.Factors) != 8 {
		t.Errorf("got %d factors, want 8 (7 biomarkers + BMI)", len(res.Factors))
	}
}

func TestKDMSkipsImplausibleBMI(t *testing.T) {
	res := KDMBioAge(KDMInputs{
		Age:              45,
		Albumin:          ptr(4.4),
		Creatinine:       ptr(1.0),
		TotalCholesterol: ptr(190),
		Glucose:          ptr(90),
		CRP:              ptr(0.5),
		ALP:              ptr(70),
		SBP:              ptr(118),
		BMI:              ptr(75.0),
	})
	if res == nil {
		t.Fatal("expected a result")
	}
	if len(res.Factors) != 7 {
		t.Errorf("got %d factors, want 7 (implausible BMI excluded)", len(res.Factors))
	}
}

func TestCVDRiskValidation(t *testing.T) {
	valid := CVDRiskInputs{Age: 55, Sex: ptr(1.0), TC: 213, HDL: 50, SBP: 120}

	if _, err := CVDRisk(CVDRiskInputs{Age: 55, TC: 213, HDL: 50, SBP: 120}); err == nil {
		t.Error("expected error without sex")
	}

	young := valid
	young.Age = 18
	if _, err := CVDRisk(young); err == nil {
		t.Error("expected error for age below 20")
	}

	risk, err := CVDRisk(valid)
	if err != nil {
		t.Fatalf("CVDRisk error: %v", err)
	}
	if risk <= 0 || risk >= 100 {
		t.Errorf("risk = %.1f%%, outside (0, 100)", risk)
	}
}

func TestCVDRiskSmokerHigher(t *testing.T) {
	base := CVDRiskInputs{Age: 55, Sex: ptr(1.0), TC: 213, HDL: 50, SBP: 120}
	smoker := base
	smoker.Smoker = 1

	baseRisk, err := CVDRisk(base)
	if err != nil {
		t.Fatalf("CVDRisk error: %v", err)
	}
	smokerRisk, err := CVDRisk(smoker)
	if err != nil {
		t.Fatalf("CVDRisk error: %v", err)
	}
	if smokerRisk <= baseRisk {
		t.Errorf("smoker risk %.1f should exceed non-smoker %.1f", smokerRisk, baseRisk)
	}
}

func TestCVDFromValues(t *testing.T) {
	vals := map[string]float64{
		"age": 55, "sex": 1, "total_cholesterol": 213,
		"hdl": 50, "bp_systolic": 120, "smoking": 1,
	}
	in := CVDFromValues(vals)
	if in.Sex == nil || *in.Sex != 1 {
		t.Error("sex not mapped")
	}
	if in.Smoker != 1 {
		t.Error("smoking not mapped")
	}
	if _, err := CVDRisk(in); err != nil {
		t.Errorf("CVDRisk from values: %v", err)
	}
}
