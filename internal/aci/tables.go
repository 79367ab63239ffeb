package aci

// Mixing-water demand in kg/m³ by slump range and nominal maximum size for
// non-air-entrained concrete, ACI 211.1 Table 6.3.3.
var waterContent = map[string]map[string]float64{
	"25 mm - 50 mm": {
		`3/8" (9,5 mm)`:    207,
		`1/2" (12,5 mm)`:   199,
		`3/4" (19 mm)`:     190,
		`1" (25 mm)`:       179,
		`1-1/2" (37,5 mm)`: 166,
		`2" (50 mm)`:       154,
		`3" (75 mm)`:       130,
	},
	"75 mm - 100 mm": {
		`3/8" (9,5 mm)`:    228,
		`1/2" (12,5 mm)`:   216,
		`3/4" (19 mm)`:     205,
		`1" (25 mm)`:       193,
		`1-1/2" (37,5 mm)`: 181,
		`2" (50 mm)`:       169,
		`3" (75 mm)`:       145,
	},
	"125 mm - 150 mm": {
		`3/8" (9,5 mm)`:    237,
		`1/2" (12,5 mm)`:   222,
		`3/4" (19 mm)`:     208,
		`1" (25 mm)`:       196,
		`1-1/2" (37,5 mm)`: 183,
		`2" (50 mm)`:       172,
		`3" (75 mm)`:       151,
	},
	"150 mm - 175 mm": {
		`3/8" (9,5 mm)`:    243,
		`1/2" (12,5 mm)`:   228,
		`3/4" (19 mm)`:     216,
		`1" (25 mm)`:       202,
		`1-1/2" (37,5 mm)`: 190,
		`2" (50 mm)`:       178,
		`3" (75 mm)`:       160,
	},
}

// Mixing-water demand for air-entrained concrete, same table.
var waterContentAirEntrained = map[string]map[string]float64{
	"25 mm - 50 mm": {
		`3/8" (9,5 mm)`:    181,
		`1/2" (12,5 mm)`:   175,
		`3/4" (19 mm)`:     168,
		`1" (25 mm)`:       160,
		`1-1/2" (37,5 mm)`: 150,
		`2" (50 mm)`:       142,
		`3" (75 mm)`:       122,
	},
	"75 mm - 100 mm": {
		`3/8" (9,5 mm)`:    202,
		`1/2" (12,5 mm)`:   193,
		`3/4" (19 mm)`:     184,
		`1" (25 mm)`:       175,
		`1-1/2" (37,5 mm)`: 165,
		`2" (50 mm)`:       157,
		`3" (75 mm)`:       133,
	},
	"125 mm - 150 mm": {
		`3/8" (9,5 mm)`:    211,
		`1/2" (12,5 mm)`:   199,
		`3/4" (19 mm)`:     187,
		`1" (25 mm)`:       178,
		`1-1/2" (37,5 mm)`: 166,
		`2" (50 mm)`:       160,
		`3" (75 mm)`:       142,
	},
	"150 mm - 175 mm": {
		`3/8" (9,5 mm)`:    216,
		`1/2" (12,5 mm)`:   205,
		`3/4" (19 mm)`:     197,
		`1" (25 mm)`:       184,
		`1-1/2" (37,5 mm)`: 174,
		`2" (50 mm)`:       166,
		`3" (75 mm)`:       154,
	},
}

// Maximum water-cementitious ratio by exposure class, ACI 318 Table 19.3.2.1.
// Classes not listed impose no limit.
var maxRatioByExposure = map[string]float64{
	"S1": 0.50,
	"S2": 0.45,
	"S3": 0.40,
	"F1": 0.55,
	"F2": 0.45,
	"F3": 0.40,
	"W2": 0.50,
	"C2": 0.40,
}

// Minimum cementitious content in kg/m³ by nominal maximum size for
// floor-type placements, ACI 302.1R. Sizes not listed impose no floor.
var minCementitiousContent = map[string]float64{
	`3/8" (9,5 mm)`:    360,
	`1/2" (12,5 mm)`:   350,
	`3/4" (19 mm)`:     320,
	`1" (25 mm)`:       310,
	`1-1/2" (37,5 mm)`: 280,
}

// Total target air content in percent for air-entrained concrete by freeze
// exposure class and nominal maximum size, ACI 318 Table 19.3.3.1. F2 and F3
// share the severe-exposure column.
var entrainedAirPercent = map[string]map[string]float64{
	"F1": {
		`3-1/2" (90 mm)`:   3.43,
		`3" (75 mm)`:       3.5,
		`2-1/2" (63 mm)`:   3.74,
		`2" (50 mm)`:       4.0,
		`1-1/2" (37,5 mm)`: 4.5,
		`1" (25 mm)`:       4.5,
		`3/4" (19 mm)`:     5.0,
		`1/2" (12,5 mm)`:   5.5,
		`3/8" (9,5 mm)`:    6.0,
	},
	"F2": {
		`3-1/2" (90 mm)`:   4.35,
		`3" (75 mm)`:       4.5,
		`2-1/2" (63 mm)`:   4.74,
		`2" (50 mm)`:       5.0,
		`1-1/2" (37,5 mm)`: 5.5,
		`1" (25 mm)`:       6.0,
		`3/4" (19 mm)`:     6.0,
		`1/2" (12,5 mm)`:   7.0,
		`3/8" (9,5 mm)`:    7.5,
	},
	"F3": {
		`3-1/2" (90 mm)`:   4.35,
		`3" (75 mm)`:       4.5,
		`2-1/2" (63 mm)`:   4.74,
		`2" (50 mm)`:       5.0,
		`1-1/2" (37,5 mm)`: 5.5,
		`1" (25 mm)`:       6.0,
		`3/4" (19 mm)`:     6.0,
		`1/2" (12,5 mm)`:   7.0,
		`3/8" (9,5 mm)`:    7.5,
	},
}

// Dry-rodded bulk volume of coarse aggregate per unit volume of concrete as
// a line in the fineness modulus, ACI 211.1 Table 6.3.6: volume = a·FM + b.
var bulkVolumeCoefficients = map[string]struct{ A, B float64 }{
	`3-1/2" (90 mm)`:   {-0.1, 1.111},
	`3" (75 mm)`:       {-0.1, 1.06},
	`2-1/2" (63 mm)`:   {-0.1, 1.058},
	`2" (50 mm)`:       {-0.1, 1.02},
	`1-1/2" (37,5 mm)`: {-0.1, 0.99},
	`1" (25 mm)`:       {-0.1, 0.95},
	`3/4" (19 mm)`:     {-0.1, 0.90},
	`1/2" (12,5 mm)`:   {-0.1, 0.83},
	`3/8" (9,5 mm)`:    {-0.1, 0.74},
}

// SCM water reductions per 10% of replacement, applied as a fraction of the
// base demand.
const (
	flyAshReductionStep = 3 * 0.01
	slagReductionStep   = 5 * 0.01
)

// Aggregate shape adjustments to the base water demand.
const (
	roundedCoarseFactor    = -0.08
	manufacturedFineFactor = 0.05
)
