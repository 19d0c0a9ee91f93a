// ABOUTME: Bridges metric value maps to calculator input structs.
// ABOUTME: Metric ids here must match the default registry in internal/models.
package biocalc

// opt returns a pointer to the value when the id is present.
func opt(vals map[string]float64, id string) *float64 {
	if v, ok := vals[id]; ok {
		return &v
	}
	return nil
}

func get(vals map[string]float64, id string) float64 {
	return vals[id]
}

// PhenoAgeFromValues builds PhenoAge inputs from the running metric context.
func PhenoAgeFromValues(vals map[string]float64) PhenoAgeInputs {
	return PhenoAgeInputs{
		Age:           get(vals, "age"),
		Albumin:       opt(vals, "albumin"),
		Creatinine:    opt(vals, "creatinine"),
		Glucose:       opt(vals, "glucose"),
		CRP:           opt(vals, "crp"),
		MCV:           opt(vals, "mcv"),
		RDW:           opt(vals, "rdw"),
		ALP:           opt(vals, "alp"),
		WBC:           opt(vals, "wbc"),
		TotalProtein:  opt(vals, "total_protein"),
		LymphocytePct: opt(vals, "lymphocyte_pct"),
		LymphocyteAbs: opt(vals, "lymphocytes"),
	}
}

// KDMFromValues builds Klemera-Doubal inputs from the running metric context.
func KDMFromValues(vals map[string]float64) KDMInputs {
	return KDMInputs{
		Age:              get(vals, "age"),
		Sex:              opt(vals, "sex"),
		Albumin:          opt(vals, "albumin"),
		Creatinine:       opt(vals, "creatinine"),
		TotalCholesterol: opt(vals, "total_cholesterol"),
		Glucose:          opt(vals, "glucose"),
		CRP:              opt(vals, "crp"),
		ALP:              opt(vals, "alp"),
		SBP:              opt(vals, "bp_systolic"),
		BMI:              opt(vals, "bmi"),
		TotalProtein:     opt(vals, "total_protein"),
	}
}

// CVDFromValues builds pooled-cohort-equation inputs from the running
// metric context.
func CVDFromValues(vals map[string]float64) CVDRiskInputs {
	return CVDRiskInputs{
		Age:       get(vals, "age"),
		Sex:       opt(vals, "sex"),
		TC:        get(vals, "total_cholesterol"),
		HDL:       get(vals, "hdl"),
		SBP:       get(vals, "bp_systolic"),
		Treatment: get(vals, "bp_meds"),
		Smoker:    get(vals, "smoking"),
		Diabetes:  get(vals, "diabetes"),
	}
}
