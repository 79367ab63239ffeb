package doe

// Compressive strength in MPa at a free-water ratio of 0.5 by cement
// strength class, coarse aggregate type and test age, BRE "Design of Normal
// Concrete Mixes" Table 2.
var startingStrength = map[string]map[string]map[string]float64{
	"42.5": {
		"No triturada": {
			"3 días":  22,
			"7 días":  30,
			"28 días": 42,
			"91 días": 49,
		},
		"Triturada": {
			"3 días":  27,
			"7 días":  36,
			"28 días": 49,
			"91 días": 56,
		},
	},
	"52.5": {
		"No triturada": {
			"3 días":  29,
			"7 días":  37,
			"28 días": 48,
			"91 días": 54,
		},
		"Triturada": {
			"3 días":  34,
			"7 días":  43,
			"28 días": 55,
			"91 días": 61,
		},
	},
}

// Slump ranges of BRE Table 3, ordered: air entrainment shifts the demand
// one range down.
var slumpRanges = []string{
	"0 mm - 10 mm",
	"10 mm - 30 mm",
	"30 mm - 60 mm",
	"60 mm - 180 mm",
}

// Free-water demand in kg/m³ by maximum size, aggregate type and slump
// range, BRE Table 3.
var waterContent = map[string]map[string]map[string]float64{
	"N/A (10 mm)": {
		"No triturada": {
			"0 mm - 10 mm":   150,
			"10 mm - 30 mm":  180,
			"30 mm - 60 mm":  205,
			"60 mm - 180 mm": 225,
		},
		"Triturada": {
			"0 mm - 10 mm":   180,
			"10 mm - 30 mm":  205,
			"30 mm - 60 mm":  230,
			"60 mm - 180 mm": 250,
		},
	},
	"N/A (20 mm)": {
		"No triturada": {
			"0 mm - 10 mm":   135,
			"10 mm - 30 mm":  160,
			"30 mm - 60 mm":  180,
			"60 mm - 180 mm": 195,
		},
		"Triturada": {
			"0 mm - 10 mm":   170,
			"10 mm - 30 mm":  190,
			"30 mm - 60 mm":  210,
			"60 mm - 180 mm": 225,
		},
	},
	"N/A (40 mm)": {
		"No triturada": {
			"0 mm - 10 mm":   115,
			"10 mm - 30 mm":  140,
			"30 mm - 60 mm":  160,
			"60 mm - 180 mm": 175,
		},
		"Triturada": {
			"0 mm - 10 mm":   155,
			"10 mm - 30 mm":  175,
			"30 mm - 60 mm":  190,
			"60 mm - 180 mm": 205,
		},
	},
}

// Water reduction in kg/m³ by SCM replacement band and slump range.
// Replacements under 10% earn no reduction.
var scmWaterReduction = map[string]map[string]float64{
	"10-20": {
		"0 mm - 10 mm":   5,
		"10 mm - 30 mm":  5,
		"30 mm - 60 mm":  5,
		"60 mm - 180 mm": 10,
	},
	"20-30": {
		"0 mm - 10 mm":   10,
		"10 mm - 30 mm":  10,
		"30 mm - 60 mm":  10,
		"60 mm - 180 mm": 15,
	},
	"30-40": {
		"0 mm - 10 mm":   15,
		"10 mm - 30 mm":  15,
		"30 mm - 60 mm":  20,
		"60 mm - 180 mm": 20,
	},
	"40-50": {
		"0 mm - 10 mm":   20,
		"10 mm - 30 mm":  20,
		"30 mm - 60 mm":  25,
		"60 mm - 180 mm": 25,
	},
	"50": {
		"0 mm - 10 mm":   25,
		"10 mm - 30 mm":  25,
		"30 mm - 60 mm":  30,
		"60 mm - 180 mm": 30,
	},
}

// Maximum free-water ratio by exposure class, EN 206 Table F.1.
var maxRatioByExposure = map[string]float64{
	"XC1": 0.65, "XC2": 0.60, "XC3": 0.55, "XC4": 0.50,
	"XD1": 0.55, "XD2": 0.55, "XD3": 0.45,
	"XS1": 0.50, "XS2": 0.45, "XS3": 0.45,
	"XF1": 0.55, "XF2": 0.55, "XF3": 0.50, "XF4": 0.45,
	"XA1": 0.55, "XA2": 0.50, "XA3": 0.45,
}

// Minimum cementitious content in kg/m³ by exposure class, EN 206 Table F.1.
var minCementitiousByExposure = map[string]float64{
	"XC1": 260, "XC2": 280, "XC3": 280, "XC4": 300,
	"XD1": 300, "XD2": 300, "XD3": 320,
	"XS1": 300, "XS2": 320, "XS3": 340,
	"XF1": 300, "XF2": 300, "XF3": 320, "XF4": 340,
	"XA1": 300, "XA2": 320, "XA3": 360,
}

// Minimum entrained-air percentage by freeze-thaw exposure class, EN 206.
var entrainedAirPercent = map[string]float64{
	"XF2": 4,
	"XF3": 4,
	"XF4": 4,
}

// Wet-density regression lines by combined relative density of the
// aggregates, BRE Figure 5: density = intercept - free water. Densities
// between the tabulated lines interpolate; beyond them the end line holds.
var densityLines = []struct {
	RelativeDensity float64
	Intercept       float64
}{
	{2.4, 2410},
	{2.5, 2490},
	{2.6, 2560},
	{2.7, 2640},
	{2.8, 2710},
	{2.9, 2780},
}

// Fine-aggregate proportion lines by maximum size, slump range and percent
// of fines passing the 600 µm sieve, BRE Figure 6:
// proportion = intercept + slope·(w/c). Passing levels between the plotted
// curves interpolate; beyond them the end curve holds.
type proportionLine struct {
	Passing   float64
	Intercept float64
	Slope     float64
}

var fineProportion = map[string]map[string][]proportionLine{
	"N/A (10 mm)": {
		"0 mm - 10 mm": {
			{100, 20.8, 10},
			{80, 23.3, 12.5},
			{60, 28.7, 15},
			{40, 33.5, 20},
			{15, 43.4, 25},
		},
		"10 mm - 30 mm": {
			{100, 21.8, 10},
			{80, 25.3, 12.5},
			{60, 30.1, 15},
			{40, 35.4, 20},
			{15, 45.3, 25},
		},
		"30 mm - 60 mm": {
			{100, 23.7, 10},
			{80, 27.6, 12.5},
			{60, 33.2, 15},
			{40, 38.3, 20},
			{15, 49.9, 25},
		},
		"60 mm - 180 mm": {
			{100, 26.9, 10},
			{80, 30.8, 12.5},
			{60, 37.2, 15},
			{40, 44.8, 20},
			{15, 56.5, 25},
		},
	},
	"N/A (20 mm)": {
		"0 mm - 10 mm": {
			{100, 14.5, 10},
			{80, 16.8, 12.5},
			{60, 20.2, 15},
			{40, 22.8, 20},
			{15, 29.9, 25},
		},
		"10 mm - 30 mm": {
			{100, 16.4, 10},
			{80, 18.3, 12.5},
			{60, 21.6, 15},
			{40, 25.7, 20},
			{15, 32.8, 25},
		},
		"30 mm - 60 mm": {
			{100, 18.0, 10},
			{80, 20.4, 12.5},
			{60, 24.4, 15},
			{40, 28.0, 20},
			{15, 36.2, 25},
		},
		"60 mm - 180 mm": {
			{100, 21.1, 10},
			{80, 23.7, 12.5},
			{60, 28.2, 15},
			{40, 34.2, 20},
			{15, 43.1, 25},
		},
	},
	"N/A (40 mm)": {
		"0 mm - 10 mm": {
			{100, 11.0, 10},
			{80, 13.0, 12.5},
			{60, 15.4, 15},
			{40, 18.2, 20},
			{15, 23.4, 25},
		},
		"10 mm - 30 mm": {
			{100, 12.9, 10},
			{80, 14.2, 12.5},
			{60, 16.7, 15},
			{40, 20.0, 20},
			{15, 25.1, 25},
		},
		"30 mm - 60 mm": {
			{100, 14.9, 10},
			{80, 16.8, 12.5},
			{60, 19.9, 15},
			{40, 24.1, 20},
			{15, 29.5, 25},
		},
		"60 mm - 180 mm": {
			{100, 17.8, 10},
			{80, 20.5, 12.5},
			{60, 24.0, 15},
			{40, 28.9, 20},
			{15, 36.4, 25},
		},
	},
}
