// ABOUTME: 10-year ASCVD risk via the ACC/AHA 2013 pooled cohort equations.
// ABOUTME: White/other coefficients; handles mg/dL and mmol/L lipid inputs.
package biocalc

import (
	"fmt"
	"math"
)

// CVDRiskInputs are the pooled-cohort-equation inputs. Sex is 0 = female,
// 1 = male. Treatment/Smoker/Diabetes are 0/1 flags.
type CVDRiskInputs struct {
	Age       float64
	Sex       *float64
	TC        float64
	HDL       float64
	SBP       float64
	Treatment float64
	Smoker    float64
	Diabetes  float64
}

// CVDRisk returns the 10-year atherosclerotic cardiovascular disease risk as
// a percentage rounded to one decimal. The equations are validated for ages
// 20-79; anything outside that, or missing required inputs, is an error.
func CVDRisk(in CVDRiskInputs) (float64, error) {
	if in.Age == 0 || in.TC == 0 || in.HDL == 0 || in.SBP == 0 || in.Sex == nil {
		return 0, fmt.Errorf("cvd risk: missing required inputs")
	}
	if in.Age < 20 || in.Age > 79 {
		return 0, fmt.Errorf("cvd risk: age %.0f outside validated range 20-79", in.Age)
	}

	// Normalization yields mmol/L; the equations expect mg/dL.
	tcMg := normalizeCholesterol(in.TC).Value * 38.67
	hdlMg := normalizeCholesterol(in.HDL).Value * 38.67
	sbpVal := normalizeBloodPressure(in.SBP).Value

	lnAge := math.Log(in.Age)
	lnTC := math.Log(tcMg)
	lnHDL := math.Log(hdlMg)
	lnSBP := math.Log(sbpVal)

	var sum, meanXB, s10 float64
	if *in.Sex == 0 {
		// Female coefficients, 2013 guideline.
		sbpCoeff := 1.957
		if in.Treatment != 0 {
			sbpCoeff = 2.019
		}
		sum = -29.799*lnAge +
			4.884*lnAge*lnAge +
			13.540*lnTC +
			-3.114*lnAge*lnTC +
			-13.578*lnHDL +
			3.149*lnAge*lnHDL +
			sbpCoeff*lnSBP +
			7.574*in.Smoker +
			-1.665*lnAge*in.Smoker +
			0.661*in.Diabetes
		meanXB = -29.18
		s10 = 0.9665
	} else {
		// Male coefficients, 2013 guideline.
		sbpCoeff := 1.764
		if in.Treatment != 0 {
			sbpCoeff = 1.797
		}
		sum = 12.344*lnAge +
			11.853*lnTC +
			-2.664*lnAge*lnTC +
			-7.990*lnHDL +
			1.769*lnAge*lnHDL +
			sbpCoeff*lnSBP +
			7.837*in.Smoker +
			-1.795*lnAge*in.Smoker +
			0.658*in.Diabetes
		meanXB = 61.18
		s10 = 0.9144
	}

	risk := 1 - math.Pow(s10, math.Exp(sum-meanXB))
	return round1(risk * 100), nil
}
