// ABOUTME: Klemera-Doubal Method biological age calculator (Klemera & Doubal 2006).
// ABOUTME: Weighted regression of biomarker ages against NHANES III slopes.
package biocalc

import (
	"fmt"
	"math"
	"sort"
)

// KDMInputs are the biomarkers for the Klemera-Doubal model. Sex defaults to
// male when unset (1 = male, 2 = female); BMI is used only when plausible.
type KDMInputs struct {
	Age              float64
	Sex              *float64
	Albumin          *float64
	Creatinine       *float64
	TotalCholesterol *float64
	Glucose          *float64
	CRP              *float64
	ALP              *float64
	SBP              *float64
	BMI              *float64
	TotalProtein     *float64
}

type kdmBiomarker struct {
	name      string
	value     float64
	note      string
	slope     float64
	intercept float64
	sd        float64
}

// KDMBioAge computes biological age with the Klemera-Doubal method against
// NHANES III reference slopes (ages 30-75). Returns nil when age is absent;
// echoes chronological age with MissingMetrics populated when required
// biomarkers are missing.
func KDMBioAge(in KDMInputs) *BioAgeResult {
	if in.Age == 0 {
		return nil
	}

	var missing []string
	require := func(v *float64, name string) {
		if v == nil {
			missing = append(missing, name)
		}
	}
	require(in.Albumin, "Albumin")
	require(in.Creatinine, "Creatinine")
	require(in.TotalCholesterol, "Total Cholesterol")
	require(in.Glucose, "Glucose")
	require(in.CRP, "C-Reactive Protein")
	require(in.ALP, "Alkaline Phosphatase")
	require(in.SBP, "Systolic Blood Pressure")

	if len(missing) > 0 {
		return &BioAgeResult{
			ChronologicalAge: in.Age,
			BiologicalAge:    in.Age,
			Method:           "KDM Biological Age",
			MissingMetrics:   missing,
			Confidence:       "Cannot calculate - missing required biomarkers",
		}
	}

	var warnings []string
	collect := func(n normalized) normalized {
		if n.Warning != "" {
			warnings = append(warnings, n.Warning)
		}
		return n
	}

	alb := collect(normalizeAlbumin(*in.Albumin, in.TotalProtein))
	cre := collect(normalizeCreatinine(*in.Creatinine))
	glu := collect(normalizeGlucose(*in.Glucose))
	chol := collect(normalizeCholesterol(*in.TotalCholesterol))
	crp := collect(normalizeCRP(*in.CRP))
	sbp := collect(normalizeBloodPressure(*in.SBP))

	biomarkers := []kdmBiomarker{
		{"Albumin", alb.Value, alb.Note, -0.05, 45.5, 3.0},
		{"Creatinine", cre.Value, cre.Note, 0.25, 75.0, 15.0},
		{"Glucose", glu.Value, glu.Note, 0.025, 5.0, 1.2},
		{"Total Chol", chol.Value, chol.Note, 0.01, 5.2, 1.0},
		{"CRP (ln)", crp.Value, crp.Note, 0.012, 0.6, 1.1},
		{"Alk Phos", *in.ALP, fmt.Sprintf("%.4g U/L", *in.ALP), 0.2, 65, 20},
		{"SBP", sbp.Value, sbp.Note, 0.4, 115, 18},
	}
	if in.BMI != nil && *in.BMI > 10 && *in.BMI < 60 {
		biomarkers = append(biomarkers, kdmBiomarker{"BMI", *in.BMI, fmt.Sprintf("%.1f", *in.BMI), 0.03, 26, 5})
	}

	const se = 1.0 // assumed SE of chronological age

	var sumWeightedAges, sumWeights float64
	for _, bm := range biomarkers {
		biomarkerAge := (bm.value - bm.intercept) / bm.slope
		weight := math.Abs(bm.slope) / (bm.sd*bm.sd + se*se)
		sumWeightedAges += biomarkerAge * weight
		sumWeights += weight
	}

	caWeight := 1 / (se * se)
	sumWeightedAges += in.Age * caWeight
	sumWeights += caWeight

	kdmAge := sumWeightedAges / sumWeights
	kdmAge = math.Max(18, math.Min(100, kdmAge))

	// Each factor's impact is its weighted share of the final deviation, so
	// the impacts approximately sum to (kdmAge - age).
	factors := make([]AgeFactor, 0, len(biomarkers))
	for _, bm := range biomarkers {
		biomarkerAge := (bm.value - bm.intercept) / bm.slope
		weight := math.Abs(bm.slope) / (bm.sd*bm.sd + se*se)
		factors = append(factors, AgeFactor{
			Name:   bm.name,
			Impact: (biomarkerAge - in.Age) * (weight / sumWeights),
			Value:  bm.note,
		})
	}
	sort.SliceStable(factors, func(i, j int) bool {
		return math.Abs(factors[i].Impact) > math.Abs(factors[j].Impact)
	})

	var totalDeviation float64
	for _, f := range factors {
		totalDeviation += math.Abs(f.Impact)
	}
	avgDeviation := totalDeviation / float64(len(factors))

	confidence := "High"
	switch {
	case avgDeviation > 2.0:
		confidence = "Low - High Biomarker Disagreement"
	case avgDeviation > 1.0:
		confidence = "Medium"
	}

	return &BioAgeResult{
		ChronologicalAge: in.Age,
		BiologicalAge:    round1(kdmAge),
		AgeDiff:          round1(kdmAge - in.Age),
		Method:           "KDM Biological Age (Klemera-Doubal 2006)",
		Factors:          factors,
		Warnings:         warnings,
		Confidence:       confidence,
	}
}
