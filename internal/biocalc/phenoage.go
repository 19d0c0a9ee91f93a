// ABOUTME: Levine PhenoAge biological age calculator (Levine et al. 2018).
// ABOUTME: Estimates biological age from nine routine blood biomarkers.
package biocalc

import (
	"fmt"
	"math"
	"sort"
)

// AgeFactor is one biomarker's contribution to the age estimate, in years.
// Negative impact makes you younger, positive makes you older.
type AgeFactor struct {
	Name   string  `json:"name"`
	Impact float64 `json:"impact"`
	Value  string  `json:"value"`
}

// BioAgeResult is the outcome of a biological age calculation.
type BioAgeResult struct {
	ChronologicalAge float64     `json:"chronological_age"`
	BiologicalAge    float64     `json:"biological_age"`
	AgeDiff          float64     `json:"age_diff"`
	Method           string      `json:"method"`
	Factors          []AgeFactor `json:"factors"`
	MissingMetrics   []string    `json:"missing_metrics"`
	Warnings         []string    `json:"warnings,omitempty"`
	Confidence       string      `json:"confidence,omitempty"`
}

// PhenoAgeInputs are the biomarkers for the PhenoAge model. Pointers mark
// optional values; LymphocytePct is derived from the absolute count and WBC
// when absent.
type PhenoAgeInputs struct {
	Age           float64
	Albumin       *float64
	Creatinine    *float64
	Glucose       *float64
	CRP           *float64
	MCV           *float64
	RDW           *float64
	ALP           *float64
	WBC           *float64
	TotalProtein  *float64
	LymphocytePct *float64
	LymphocyteAbs *float64
}

// Levine 2018 coefficients.
const (
	phenoCAge = 0.0804
	phenoCAlb = -0.0336
	phenoCCre = 0.0095
	phenoCGlu = 0.1953
	phenoCCRP = 0.0954
	phenoCLym = -0.0120
	phenoCMCV = 0.0268
	phenoCRDW = 0.3306
	phenoCALP = 0.0019
	phenoCWBC = 0.0554
	phenoCInt = -19.9067
)

// PhenoAge computes the Levine 2018 phenotypic age. Returns nil when age is
// absent; returns a result echoing chronological age (with MissingMetrics
// populated) when required biomarkers are missing.
func PhenoAge(in PhenoAgeInputs) *BioAgeResult {
	if in.Age == 0 {
		return nil
	}

	lymph := in.LymphocytePct
	if lymph == nil && in.LymphocyteAbs != nil && in.WBC != nil && *in.WBC > 0 {
		pct := (*in.LymphocyteAbs / *in.WBC) * 100
		lymph = &pct
	}

	var missing []string
	require := func(v *float64, name string) {
		if v == nil {
			missing = append(missing, name)
		}
	}
	require(in.Albumin, "Albumin")
	require(in.Creatinine, "Creatinine")
	require(in.Glucose, "Glucose")
	require(in.CRP, "C-Reactive Protein")
	require(lymph, "Lymphocyte %")
	require(in.MCV, "MCV")
	require(in.RDW, "RDW")
	require(in.ALP, "Alkaline Phosphatase")
	require(in.WBC, "WBC")

	if len(missing) > 0 {
		return &BioAgeResult{
			ChronologicalAge: in.Age,
			BiologicalAge:    in.Age,
			Method:           "PhenoAge",
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
	crp := collect(normalizeCRP(*in.CRP))

	xb := phenoCInt +
		phenoCAlb*alb.Value +
		phenoCCre*cre.Value +
		phenoCGlu*glu.Value +
		phenoCCRP*crp.Value +
		phenoCLym**lymph +
		phenoCMCV**in.MCV +
		phenoCRDW**in.RDW +
		phenoCALP**in.ALP +
		phenoCWBC**in.WBC +
		phenoCAge*in.Age

	mortalityScore := 1 - math.Exp(-1.51714*math.Exp(xb))

	bioAge := in.Age
	logS := math.Log(1 - mortalityScore)
	if inner := -0.00553 * logS; inner > 0 {
		bioAge = 141.50225 + math.Log(inner)/0.09165
	}
	// The model is fit on adults; clamp exceptionally low estimates.
	if bioAge < 18 {
		bioAge = 18
		warnings = append(warnings, "Your PhenoAge is exceptionally low (<18). The algorithm is clamped to 18 years as this model is designed for adults.")
	}

	// NHANES III population means (Levine 2018).
	impact := func(coeff, val, ref float64) float64 {
		return coeff * (val - ref) / phenoCAge
	}
	factors := []AgeFactor{
		{Name: "Albumin", Impact: impact(phenoCAlb, alb.Value, 43), Value: alb.Note},
		{Name: "Creatinine", Impact: impact(phenoCCre, cre.Value, 88.4), Value: cre.Note},
		{Name: "Glucose", Impact: impact(phenoCGlu, glu.Value, 5.3), Value: glu.Note},
		{Name: "CRP", Impact: impact(phenoCCRP, crp.Value, 0.65), Value: crp.Note},
		{Name: "Lymphocytes", Impact: impact(phenoCLym, *lymph, 27), Value: fmt.Sprintf("%.1f%%", *lymph)},
		{Name: "MCV", Impact: impact(phenoCMCV, *in.MCV, 90), Value: fmt.Sprintf("%.4g fL", *in.MCV)},
		{Name: "RDW", Impact: impact(phenoCRDW, *in.RDW, 13.2), Value: fmt.Sprintf("%.4g%%", *in.RDW)},
		{Name: "Alk. Phos.", Impact: impact(phenoCALP, *in.ALP, 75), Value: fmt.Sprintf("%.4g U/L", *in.ALP)},
		{Name: "WBC", Impact: impact(phenoCWBC, *in.WBC, 7.0), Value: fmt.Sprintf("%.4g k/uL", *in.WBC)},
	}
	sort.SliceStable(factors, func(i, j int) bool {
		return math.Abs(factors[i].Impact) > math.Abs(factors[j].Impact)
	})

	confidence := "High"
	if len(warnings) > 0 {
		confidence = "Medium"
	}

	return &BioAgeResult{
		ChronologicalAge: in.Age,
		BiologicalAge:    round1(bioAge),
		AgeDiff:          round1(bioAge - in.Age),
		Method:           "PhenoAge (Levine 2018)",
		Factors:          factors,
		Warnings:         warnings,
		Confidence:       confidence,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
