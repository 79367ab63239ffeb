package mce

// Shape declares the audit-trail layout the MCE pipeline publishes into.
func Shape() map[string]any {
	return map[string]any{
		"cementitious_material": map[string]any{
			"cement": map[string]any{
				"design_cement_content":    nil,
				"correction_factor_1":      nil,
				"correction_factor_2":      nil,
				"corrected_cement_content": nil,
				"min_cement_content":       nil,
				"cement_content":           nil,
				"cement_abs_volume":        nil,
				"cement_volume":            nil,
			},
		},
		"water": map[string]any{
			"water_content":            nil,
			"water_content_correction": nil,
			"water_volume":             nil,
			"water_abs_volume":         nil,
		},
		"air": map[string]any{
			"entrapped_air_content": nil,
		},
		"fine_aggregate": map[string]any{
			"fine_content_ssd": nil,
			"fine_content_wet": nil,
			"fine_abs_volume":  nil,
			"fine_volume":      nil,
		},
		"coarse_aggregate": map[string]any{
			"coarse_content_ssd": nil,
			"coarse_content_wet": nil,
			"coarse_abs_volume":  nil,
			"coarse_volume":      nil,
		},
		"beta": map[string]any{
			"beta_min":      nil,
			"beta_max":      nil,
			"beta_mean":     nil,
			"beta_economic": nil,
			"beta":          nil,
		},
		"spec_strength": map[string]any{
			"target_strength": map[string]any{
				"target_strength_value": nil,
				"k_factor":              nil,
				"z_value":               nil,
				"f_cr_1":                nil,
				"f_cr_2":                nil,
				"margin":                nil,
			},
		},
		"water_cement_ratio": map[string]any{
			"used_alpha":          nil,
			"design_alpha":        nil,
			"correction_factor_1": nil,
			"correction_factor_2": nil,
			"corrected_alpha":     nil,
			"min_alpha":           nil,
			"final_alpha":         nil,
			"reduced_alpha":       nil,
			"m":                   nil,
			"n":                   nil,
		},
		"chemical_admixtures": map[string]any{
			"WRA": map[string]any{
				"WRA_content": nil,
				"WRA_volume":  nil,
			},
		},
		"summation": map[string]any{
			"total_abs_volume": nil,
			"total_content":    nil,
		},
	}
}
