package aci

// Shape declares the audit-trail layout the ACI pipeline publishes into.
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
		"water": map[string]any{
			"water_content": map[string]any{
				"base":                        nil,
				"coarse_aggregate_correction": nil,
				"fine_aggregate_correction":   nil,
				"scm_correction":              nil,
				"final_content":               nil,
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
		},
		"coarse_aggregate": map[string]any{
			"oven_dry_rodded_bulk_volume": nil,
			"coarse_content_oven_dry":     nil,
			"coarse_content_ssd":          nil,
			"coarse_content_wet":          nil,
			"coarse_abs_volume":           nil,
			"coarse_volume":               nil,
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
		"water_cementitious_materials_ratio": map[string]any{
			"w_cm":               nil,
			"w_cm_by_strength":   nil,
			"w_cm_by_durability": nil,
		},
		"summation": map[string]any{
			"total_abs_volume": nil,
			"total_content":    nil,
		},
	}
}
