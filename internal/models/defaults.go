// ABOUTME: Default metric registry seeded into a fresh store.
// ABOUTME: Covers daily habits, weekly volume, body shape, labs, and derived scores.
package models

// DefaultCategories lists the built-in category names. Users may add more.
var DefaultCategories = []string{
	"daily", "weekly", "performance", "metabolic", "lipids", "cbc", "clinical", "shape",
}

// DefaultMetrics is the starter registry. Calculated metrics use the formula
// language documented in internal/formula: bare metric ids are variables,
// vals["..."] addresses ids that are not valid identifiers, and the helper
// library provides sum, pow, log, sqrt, exp plus the bio-age/risk calculators.
var DefaultMetrics = []MetricDefinition{
	// Daily logging
	{
		ID: "sleep", Name: "Sleep", RangeMin: 7, RangeMax: 8, Unit: "hours",
		Fact:     "7-8 hours of sleep minimizes mortality risk by 14-34%. Sleep regularity may be more important than duration.",
		Citation: "Gu et al. 2024; Windred et al. 2024",
		Step:     0.5, Category: CategoryDaily, Active: true, IncludeInChart: true, IsTimeBased: true,
	},
	{
		ID: "rhr", Name: "Resting HR", RangeMin: 50, RangeMax: 70, Unit: "bpm",
		Fact:     "RHR 60-70 bpm associated with lowest mortality. Each 10 bpm increase above 70 raises mortality risk 9%.",
		Citation: "Zhang et al. 2016; Reimers et al. 2021",
		Step:     1, Category: CategoryDaily, Active: true, IncludeInChart: true,
	},
	{
		ID: "hrr", Name: "HR recovery", RangeMin: 30, RangeMax: 40, Unit: "bpm/min",
		Fact:     "Heart rate recovery measures how quickly your heart rate returns to resting level after exercise.",
		Citation: "onepeloton, whoop",
		Step:     1, Category: CategoryDaily, Active: true, IncludeInChart: true,
	},
	{
		ID: "protein", Name: "Protein", RangeMin: 120, RangeMax: 170, Unit: "g/day",
		Step: 5, Category: CategoryDaily, Active: true, IncludeInChart: false,
	},
	{
		ID: "coffee", Name: "Caffeine", RangeMin: 100, RangeMax: 400, Unit: "mg",
		Step: 50, Category: CategoryDaily, Active: true, IncludeInChart: false,
	},
	{
		ID: "alcohol", Name: "Alcohol", RangeMin: 0, RangeMax: 3, Unit: "drinks/day",
		Step: 1, Category: CategoryDaily, Active: true, IncludeInChart: false,
	},
	{
		ID: "rowing_duration", Name: "Rowing", RangeMin: 20, RangeMax: 90, Unit: "min/day",
		Step: 5, Category: CategoryDaily, Active: true, IncludeInChart: false, IsTimeBased: true,
	},
	{
		ID: "running_duration", Name: "Running", RangeMin: 20, RangeMax: 120, Unit: "min/day",
		Step: 5, Category: CategoryDaily, Active: true, IncludeInChart: false, IsTimeBased: true,
	},
	{
		ID: "social_daily", Name: "Social Connection", RangeMin: 0, RangeMax: 1, Unit: "count",
		Step: 1, Category: CategoryDaily, Active: true, IncludeInChart: false,
	},

	// Weekly cumulative targets (derived from daily logs)
	{
		ID: "rowing_volume", Name: "Rowing Volume", RangeMin: 75, RangeMax: 150, Unit: "min/week",
		Category: CategoryWeekly, Active: true, IsCalculated: true,
		Formula: `sum("rowing_duration", "week")`,
	},
	{
		ID: "running_volume", Name: "Running Volume", RangeMin: 30, RangeMax: 90, Unit: "min/week",
		Category: CategoryWeekly, Active: true, IsCalculated: true,
		Formula: `sum("running_duration", "week")`,
	},
	{
		ID: "social_weekly", Name: "Social Connections", RangeMin: 3, RangeMax: 5, Unit: "per week",
		Fact:     "3-5 meaningful social interactions per week correlate with reduced all-cause mortality.",
		Category: CategoryWeekly, Active: true, IsCalculated: true,
		Formula: `sum("social_daily", "week")`,
	},

	// Body shape
	{
		ID: "weight", Name: "Weight", RangeMin: 50, RangeMax: 100, Unit: "kg",
		Step: 0.1, Category: "shape", Active: true, IncludeInChart: true,
	},
	{
		ID: "height", Name: "Height", RangeMin: 150, RangeMax: 200, Unit: "cm",
		Step: 1, Category: "shape", Active: true,
	},
	{
		ID: "waist", Name: "Waist", RangeMin: 70, RangeMax: 94, Unit: "cm",
		Step: 0.5, Category: "shape", Active: true,
	},
	{
		ID: "bmi", Name: "BMI", RangeMin: 20, RangeMax: 25, Unit: "",
		Category: "shape", Active: true, IncludeInChart: true, IsCalculated: true,
		Formula: `weight / pow(height / 100, 2)`,
	},

	// Clinical
	{
		ID: "bp_systolic", Name: "BP Systolic", RangeMin: 90, RangeMax: 120, Unit: "mmHg",
		Step: 1, Category: "clinical", Active: true, IncludeInChart: true,
	},
	{
		ID: "bp_diastolic", Name: "BP Diastolic", RangeMin: 60, RangeMax: 80, Unit: "mmHg",
		Step: 1, Category: "clinical", Active: true,
	},
	{
		ID: "map", Name: "Mean Arterial Pressure", RangeMin: 70, RangeMax: 100, Unit: "mmHg",
		Category: "clinical", Active: true, IsCalculated: true,
		Formula: `(bp_systolic + 2 * bp_diastolic) / 3`,
	},
	{
		ID: "age", Name: "Age", RangeMin: 20, RangeMax: 100, Unit: "years",
		Step: 1, Category: "clinical", Active: true,
	},
	{
		ID: "sex", Name: "Sex (0=F, 1=M)", RangeMin: 0, RangeMax: 1, Unit: "",
		Step: 1, Category: "clinical", Active: true,
	},
	{
		ID: "smoking", Name: "Smoker", RangeMin: 0, RangeMax: 1, Unit: "",
		Step: 1, Category: "clinical", Active: true,
	},
	{
		ID: "diabetes", Name: "Diabetes", RangeMin: 0, RangeMax: 1, Unit: "",
		Step: 1, Category: "clinical", Active: true,
	},
	{
		ID: "bp_meds", Name: "BP Medication", RangeMin: 0, RangeMax: 1, Unit: "",
		Step: 1, Category: "clinical", Active: true,
	},
	{
		ID: "whtr", Name: "Waist/Height Ratio", RangeMin: 0.4, RangeMax: 0.5, Unit: "",
		Fact:     "Waist-to-height ratio below 0.5 is a stronger mortality predictor than BMI.",
		Category: "clinical", Active: true, IsCalculated: true,
		Formula: `waist / height`,
	},
	{
		ID: "cvd_risk_score", Name: "10y CVD Risk", RangeMin: 0, RangeMax: 5, Unit: "%",
		Fact:     "ACC/AHA 2013 pooled cohort equations estimate 10-year atherosclerotic cardiovascular disease risk.",
		Citation: "Goff et al. 2013",
		Category: "clinical", Active: true, IsCalculated: true,
		Formula: `cvdRisk(vals)`,
	},
	{
		ID: "pheno_age", Name: "PhenoAge", RangeMin: 20, RangeMax: 90, Unit: "years",
		Fact:     "Levine PhenoAge estimates biological age from nine routine blood biomarkers.",
		Citation: "Levine et al. 2018",
		Category: "clinical", Active: true, IsCalculated: true,
		Formula: `phenoAge(vals)`,
	},

	// Metabolic and lipids
	{
		ID: "glucose", Name: "Fasting Glucose", RangeMin: 70, RangeMax: 100, Unit: "mg/dL",
		Step: 1, Category: "metabolic", Active: true, IncludeInChart: true,
	},
	{
		ID: "total_cholesterol", Name: "Total Cholesterol", RangeMin: 150, RangeMax: 200, Unit: "mg/dL",
		Step: 1, Category: "lipids", Active: true,
	},
	{
		ID: "hdl", Name: "HDL", RangeMin: 40, RangeMax: 80, Unit: "mg/dL",
		Step: 1, Category: "lipids", Active: true,
	},
	{
		ID: "ldl", Name: "LDL", RangeMin: 50, RangeMax: 100, Unit: "mg/dL",
		Step: 1, Category: "lipids", Active: true,
	},
	{
		ID: "triglycerides", Name: "Triglycerides", RangeMin: 0, RangeMax: 150, Unit: "mg/dL",
		Step: 1, Category: "lipids", Active: true,
	},
	{
		ID: "trig_hdl_ratio", Name: "Trig/HDL Ratio", RangeMin: 0, RangeMax: 2, Unit: "ratio",
		Category: "lipids", Active: true, IsCalculated: true,
		Formula: `triglycerides / hdl`,
	},
	{
		ID: "tyg", Name: "TyG Index", RangeMin: 7, RangeMax: 8.5, Unit: "",
		Fact:     "The triglyceride-glucose index is a surrogate marker of insulin resistance.",
		Category: "clinical", Active: true, IsCalculated: true,
		Formula: `log((triglycerides * glucose) / 2)`,
	},
	{
		ID: "albumin", Name: "Albumin", RangeMin: 55.8, RangeMax: 66.1, Unit: "%",
		Category: "metabolic", Active: true,
	},
	{
		ID: "total_protein", Name: "Total Protein", RangeMin: 6, RangeMax: 8.3, Unit: "g/dL",
		Category: "metabolic", Active: true,
	},
	{
		ID: "creatinine", Name: "Creatinine", RangeMin: 0.7, RangeMax: 1.3, Unit: "mg/dL",
		Category: "clinical", Active: true,
	},
	{
		ID: "crp", Name: "CRP", RangeMin: 0, RangeMax: 1, Unit: "mg/L",
		Category: "clinical", Active: true,
	},
	{
		ID: "alp", Name: "Alkaline Phosphatase", RangeMin: 44, RangeMax: 147, Unit: "IU/L",
		Category: "clinical", Active: true,
	},
	{
		ID: "lymphocytes", Name: "Lymphocytes", RangeMin: 1, RangeMax: 4, Unit: "g/L",
		Category: "cbc", Active: true,
	},
	{
		ID: "mcv", Name: "MCV", RangeMin: 80, RangeMax: 100, Unit: "fL",
		Category: "cbc", Active: true,
	},
	{
		ID: "rdw", Name: "RDW", RangeMin: 11, RangeMax: 15, Unit: "%",
		Category: "cbc", Active: true,
	},
	{
		ID: "wbc", Name: "Leukocytes", RangeMin: 4.5, RangeMax: 11, Unit: "k/cumm",
		Category: "cbc", Active: true,
	},

	// Performance
	{
		ID: "5k_run_time", Name: "5K Run Time", RangeMin: 18, RangeMax: 23, Unit: "min",
		Category: "performance", Active: true, IsTimeBased: true,
	},
	{
		ID: "2k_row_time", Name: "2K Row Time", RangeMin: 6.5, RangeMax: 7.5, Unit: "min",
		Category: "performance", Active: true, IsTimeBased: true,
	},
	{
		ID: "hang_time", Name: "Dead Hang", RangeMin: 60, RangeMax: 120, Unit: "s",
		Category: "performance", Active: true,
	},
	{
		ID: "hr_reserve", Name: "HR Reserve", RangeMin: 100, RangeMax: 150, Unit: "bpm",
		Category: "performance", Active: true, IsCalculated: true,
		Formula: `(220 - age) - rhr`,
	},
	{
		ID: "vo2max_rhr", Name: "VO2max (RHR)", RangeMin: 40, RangeMax: 60, Unit: "ml/kg/min",
		Fact:     "Estimated using the Uth-Sorensen-Overgaard-Pedersen formula from max-to-rest heart rate ratio.",
		Citation: "Uth et al. 2004",
		Category: "performance", Active: true, IsCalculated: true,
		Formula: `15.3 * ((220 - age) / rhr)`,
	},
	{
		ID: "vo2max_row", Name: "VO2max (Row)", RangeMin: 40, RangeMax: 60, Unit: "ml/kg/min",
		Category: "performance", Active: true, IsCalculated: true,
		Formula: `((2.8 / pow(vals["2k_row_time"] * 0.03, 3)) * 14.4 + 300) / weight`,
	},
	{
		ID: "vo2max_run", Name: "VO2max (Run)", RangeMin: 40, RangeMax: 60, Unit: "ml/kg/min",
		Fact:     "Estimated from 5K race pace using the Daniels-Gilbert VDOT formula.",
		Citation: "Daniels & Gilbert 1979",
		Category: "performance", Active: true, IsCalculated: true,
		Formula: `-4.6 + (0.1822 * (5000 / vals["5k_run_time"])) + (0.000104 * pow(5000 / vals["5k_run_time"], 2))`,
	},
	{
		ID: "kdm_bio_age", Name: "KDM Biological Age", RangeMin: 20, RangeMax: 90, Unit: "years",
		Fact:     "Klemera-Doubal biological age, the gold standard for biomarker-based age estimation.",
		Citation: "Klemera & Doubal 2006",
		Category: "performance", Active: true, IsCalculated: true,
		Formula: `kdmBioAge(vals)`,
	},
}
