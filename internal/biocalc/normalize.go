// ABOUTME: Unit normalization for blood biomarkers with mixed-unit inputs.
// ABOUTME: Heuristically detects mg/dL vs mmol/L, % vs g/L, kPa vs mmHg.
package biocalc

import (
	"fmt"
	"math"
)

// normalized carries a converted value plus a human-readable note and an
// optional plausibility warning.
type normalized struct {
	Value   float64
	Note    string
	Warning string
}

// normalizeAlbumin converts albumin to g/L. Accepts % of total protein
// (20-100), g/dL (2-20), or g/L (30-55); anything else falls back to the
// population mean of 43 g/L.
func normalizeAlbumin(albumin float64, totalProtein *float64) normalized {
	switch {
	case albumin >= 20 && albumin <= 100:
		tpGL := 73.0 // population mean, 7.3 g/dL
		if totalProtein != nil {
			if *totalProtein < 20 {
				tpGL = *totalProtein * 10
			} else {
				tpGL = *totalProtein
			}
		}
		v := (albumin / 100) * tpGL
		n := normalized{
			Value: v,
			Note:  fmt.Sprintf("%.4g%% -> %.1f g/L (using TP: %.1f g/dL)", albumin, v, tpGL/10),
		}
		if v < 30 || v > 55 {
			n.Warning = fmt.Sprintf("Calculated albumin (%.1f g/L) is outside normal range. Check total protein value.", v)
		}
		return n
	case albumin >= 2.0 && albumin < 20:
		v := albumin * 10
		return normalized{Value: v, Note: fmt.Sprintf("%.4g g/dL -> %.1f g/L", albumin, v)}
	default:
		return normalized{
			Value:   43,
			Note:    fmt.Sprintf("%.4g (invalid - using default 43 g/L)", albumin),
			Warning: fmt.Sprintf("Albumin value (%.4g) is out of expected range. Please verify units and value.", albumin),
		}
	}
}

// normalizeCreatinine converts creatinine to umol/L (mg/dL times 88.4).
func normalizeCreatinine(val float64) normalized {
	n := normalized{Value: val, Note: fmt.Sprintf("%.4g umol/L", val)}
	if val < 10 {
		n.Value = val * 88.4
		n.Note = fmt.Sprintf("%.4g mg/dL -> %.0f umol/L", val, n.Value)
	}
	if n.Value < 30 || n.Value > 300 {
		n.Warning = fmt.Sprintf("Creatinine (%.0f umol/L) is outside typical range.", n.Value)
	}
	return n
}

// normalizeGlucose converts glucose to mmol/L (mg/dL divided by 18).
func normalizeGlucose(val float64) normalized {
	n := normalized{Value: val, Note: fmt.Sprintf("%.4g mmol/L", val)}
	if val > 25 {
		n.Value = val / 18
		n.Note = fmt.Sprintf("%.4g mg/dL -> %.1f mmol/L", val, n.Value)
	}
	if n.Value < 2 || n.Value > 20 {
		n.Warning = fmt.Sprintf("Glucose (%.1f mmol/L) is outside typical range.", n.Value)
	}
	return n
}

// normalizeCRP log-transforms CRP, clamping at 0.1 mg/L to avoid log(0).
func normalizeCRP(val float64) normalized {
	n := normalized{Value: math.Log(math.Max(0.1, val)), Note: fmt.Sprintf("%.4g mg/L", val)}
	if val > 10 {
		n.Warning = fmt.Sprintf("CRP (%.4g mg/L) is elevated - may indicate acute inflammation.", val)
	}
	return n
}

// normalizeCholesterol converts cholesterol to mmol/L (mg/dL divided by 38.67).
func normalizeCholesterol(val float64) normalized {
	n := normalized{Value: val, Note: fmt.Sprintf("%.4g mmol/L", val)}
	if val > 25 {
		n.Value = val / 38.67
		n.Note = fmt.Sprintf("%.4g mg/dL -> %.1f mmol/L", val, n.Value)
	}
	if n.Value < 2 || n.Value > 12 {
		n.Warning = "Cholesterol outside typical range."
	}
	return n
}

// normalizeBloodPressure converts systolic pressure to mmHg (kPa times 7.50062).
func normalizeBloodPressure(val float64) normalized {
	n := normalized{Value: val, Note: fmt.Sprintf("%.4g mmHg", val)}
	if val < 50 {
		n.Value = val * 7.50062
		n.Note = fmt.Sprintf("%.4g kPa -> %.0f mmHg", val, n.Value)
	}
	if n.Value < 80 || n.Value > 200 {
		n.Warning = fmt.Sprintf("SBP (%.0f mmHg) is outside typical range.", n.Value)
	}
	return n
}
