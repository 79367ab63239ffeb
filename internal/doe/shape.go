package doe

// Shape declares the audit-trail layout the DoE pipeline publishes into.
// The concrete section grows dynamic leaves for the combined relative
// density and the total aggregate content while the run progresses.
func Shape() map[string]any {
	return map[string]any{
		"cementitious_material": map[string]any{
			"base_content": nil,
			"min_content":  nil,
			"cement": map[string]any{
				"cement_content":    nil,
				"cement_abs_volume": nil,
				"cement_volume":     nil,
			},
			"scm": map[string]any{
				"scm_content":    nil,
				"scm_abs_volume": nil,
				"scm_volume":     nil,
			},
		},
		"concrete": map[string]any{
			"wet_density": nil,
		},
		"water": map[string]any{
			"water_content": map[string]any{
				"base":           nil,
				"scm_correction": nil,
				"wra_correction": nil,
				"final_content":  nil,
			},
			"water_content_correction": nil,
			"water_volume":             nil,
			"water_abs_volume":         nil,
		},
		"air": map[string]any{
			"entrapped_air_content":            nil,
			"entrained_air_content":            nil,
			"air_entraining_admixture_content": nil,
		},
		"fine_aggregate": map[string]any{
			"fine_content_ssd": nil,
			"fine_content_wet": nil,
			"fine_abs_volume":  nil,
			"fine_volume":      nil,
			"fine_proportion":  nil,
		},
		"coarse_aggregate": map[string]any{
			"coarse_content_ssd": nil,
			"coarse_content_wet": nil,
			"coarse_abs_volume":  nil,
			"coarse_volume":      nil,
		},
		"spec_strength": map[string]any{
			"target_strength": map[string]any{
				"target_strength_value": nil,
				"std_dev_used":          nil,
				"z_value":               nil,
				"margin":                nil,
			},
		},
		"water_cementitious_materials_ratio": map[string]any{
			"w_cm":               nil,
			"w_cm_curve":         nil,
			"w_cm_by_strength":   nil,
			"w_cm_by_durability": nil,
		},
		"chemical_admixtures": map[string]any{
			"WRA": map[string]any{
				"WRA_content": nil,
				"WRA_volume":  nil,
			},
			"AEA": map[string]any{
				"AEA_content": nil,
				"AEA_volume":  nil,
			},
		},
		"summation": map[string]any{
			"total_abs_volume": nil,
			"total_content":    nil,
		},
	}
}
