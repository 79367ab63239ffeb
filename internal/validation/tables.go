package validation

// sieveSeries lists the sieve designations each method works with, from the
// largest opening down.
type sieveSeries struct {
	Fine   []string
	Coarse []string
}

var sieves = map[string]sieveSeries{
	"MCE": {
		Fine: []string{
			`3/8" (9,5 mm)`, `No. 4 (4,75 mm)`, `No. 8 (2,36 mm)`, `No. 16 (1,18 mm)`,
			`No. 30 (0,600 mm)`, `No. 50 (0,300 mm)`, `No. 100 (0,150 mm)`, `No. 200 (0,075 mm)`,
		},
		Coarse: []string{
			`3" (75 mm)`, `2-1/2" (63 mm)`, `2" (50 mm)`, `1-1/2" (37,5 mm)`, `1" (25 mm)`,
			`3/4" (19 mm)`, `1/2" (12,5 mm)`, `3/8" (9,5 mm)`, `1/4" (6,3 mm)`, `No. 4 (4,75 mm)`,
			`No. 8 (2,36 mm)`, `No. 16 (1,18 mm)`, `No. 30 (0,600 mm)`, `No. 50 (0,300 mm)`,
		},
	},
	"ACI": {
		Fine: []string{
			`3/8" (9,5 mm)`, `No. 4 (4,75 mm)`, `No. 8 (2,36 mm)`, `No. 16 (1,18 mm)`,
			`No. 30 (0,600 mm)`, `No. 50 (0,300 mm)`, `No. 100 (0,150 mm)`, `No. 200 (0,075 mm)`,
		},
		Coarse: []string{
			`4" (100 mm)`, `3-1/2" (90 mm)`, `3" (75 mm)`, `2-1/2" (63 mm)`, `2" (50 mm)`,
			`1-1/2" (37,5 mm)`, `1" (25 mm)`, `3/4" (19 mm)`, `1/2" (12,5 mm)`, `3/8" (9,5 mm)`,
			`No. 4 (4,75 mm)`, `No. 8 (2,36 mm)`, `No. 16 (1,18 mm)`, `No. 50 (0,300 mm)`,
		},
	},
	"DoE": {
		Fine: []string{
			`5/16" (8 mm)`, `1/4" (6,3 mm)`, `No. 5 (4 mm)`, `No. 7 (2,8 mm)`, `No. 10 (2 mm)`,
			`No. 18 (1 mm)`, `No. 35 (0,500 mm)`, `No. 60 (0,250 mm)`, `No. 230 (0,063 mm)`,
		},
		Coarse: []string{
			`N/A (80 mm)`, `2-1/2" (63 mm)`, `N/A (40 mm)`, `1-1/4" (31,5 mm)`, `N/A (20 mm)`,
			`5/8" (16 mm)`, `N/A (14 mm)`, `N/A (10 mm)`, `5/16" (8 mm)`, `1/4" (6,3 mm)`,
			`No. 5 (4 mm)`, `No. 7 (2,8 mm)`, `No. 10 (2 mm)`, `No. 18 (1 mm)`,
		},
	},
}

// Specified-strength bounds accepted by each method, per unit system
// (kgf/cm² under MKS, MPa under SI).
var (
	minSpecStrength = map[string]map[string]float64{
		"MKS": {"MCE": 180, "ACI": 150, "DoE": 120},
		"SI":  {"MCE": 18, "ACI": 15, "DoE": 12},
	}
	maxSpecStrength = map[string]map[string]float64{
		"MKS": {"MCE": 430, "ACI": 450, "DoE": 750},
		"SI":  {"MCE": 43, "ACI": 45, "DoE": 75},
	}
)

// Minimum specified strength demanded by each exposure class, per method and
// unit system. ACI 318 Table 19.3.2.1, EN 206 indicative classes for DoE,
// Porrero's durability recommendations for MCE.
var minimumSpecStrength = map[string]map[string]map[string]float64{
	"MCE": {
		"MKS": {
			"Atmósfera común": 210, "Litoral": 250, "Ambiente marino": 300,
			"Atmósfera agresiva": 350, "Contacto con agua dulce": 250, "Contacto con sulfatos": 350,
		},
		"SI": {
			"Atmósfera común": 21, "Litoral": 25, "Ambiente marino": 30,
			"Atmósfera agresiva": 34, "Contacto con agua dulce": 25, "Contacto con sulfatos": 34,
		},
	},
	"ACI": {
		"MKS": {
			"F1": 245, "F2": 315, "F3": 355,
			"S1": 285, "S2": 315, "S3": 315,
			"W1": 175, "W2": 285,
			"C2": 355,
		},
		"SI": {
			"F1": 24, "F2": 31, "F3": 35,
			"S1": 28, "S2": 31, "S3": 31,
			"W1": 17, "W2": 28,
			"C2": 35,
		},
	},
	"DoE": {
		"MKS": {
			"XC1": 205, "XC2": 255, "XC3": 305, "XC4": 305,
			"XD1": 305, "XD2": 305, "XD3": 355,
			"XS1": 305, "XS2": 355, "XS3": 355,
			"XF1": 305, "XF2": 255, "XF3": 305, "XF4": 305,
			"XA1": 305, "XA2": 305, "XA3": 355,
		},
		"SI": {
			"XC1": 20, "XC2": 25, "XC3": 30, "XC4": 30,
			"XD1": 30, "XD2": 30, "XD3": 35,
			"XS1": 30, "XS2": 35, "XS3": 35,
			"XF1": 30, "XF2": 25, "XF3": 30, "XF4": 30,
			"XA1": 30, "XA2": 30, "XA3": 35,
		},
	},
}

// Sieve series over which the fineness modulus is accumulated.
var finenessModulusSieves = map[string][]string{
	"MCE": {
		`3/8" (9,5 mm)`, `No. 4 (4,75 mm)`, `No. 8 (2,36 mm)`, `No. 16 (1,18 mm)`,
		`No. 30 (0,600 mm)`, `No. 50 (0,300 mm)`, `No. 100 (0,150 mm)`,
	},
	"ACI": {
		`3/8" (9,5 mm)`, `No. 4 (4,75 mm)`, `No. 8 (2,36 mm)`, `No. 16 (1,18 mm)`,
		`No. 30 (0,600 mm)`, `No. 50 (0,300 mm)`, `No. 100 (0,150 mm)`,
	},
}

type fmLimits struct {
	Min float64
	Max float64
}

// ASTM C33 bounds the fineness modulus of concrete sand; the other methods
// carry no limit.
var finenessModulusLimits = map[string]fmLimits{
	"ACI": {Min: 2.3, Max: 3.1},
}

// Maximum supplementary cementitious material content (% of binder) by
// exposure class. ACI 318 Table 26.4.2.2(b); the DoE entry mirrors it for the
// severest freeze-thaw class.
var maximumSCM = map[string]map[string]map[string]float64{
	"ACI": {
		"F3": {"Cenizas volantes": 25, "Cemento de escoria": 50, "Humo de sílice": 10},
	},
	"DoE": {
		"XF4": {"Cenizas volantes": 25, "Cemento de escoria": 50},
	},
}

// Nominal maximum size pinned by a coarse-aggregate category, when the
// category alone settles it.
var nmsByCategory = map[string]map[string]string{
	"ACI": {
		"#467": `1-1/2" (37,5 mm)`,
		"#57":  `1" (25 mm)`,
		"#67":  `3/4" (19 mm)`,
		"#8":   `3/8" (9,5 mm)`,
	},
	"MCE": {
		`1-1/2" (37,5 mm)`: `1-1/2" (37,5 mm)`,
		`1" (25 mm)`:       `1" (25 mm)`,
		`3/4" (19 mm)`:     `3/4" (19 mm)`,
		`1/2" (12,5 mm)`:   `1/2" (12,5 mm)`,
	},
	"DoE": {
		"Graded 4/40":        `N/A (40 mm)`,
		"Graded 4/20":        `N/A (20 mm)`,
		"Single-sized 10 mm": `N/A (10 mm)`,
	},
}

// airRequirement is a minimum entrained-air demand: either a flat percentage
// or one resolved against the nominal maximum size.
type airRequirement struct {
	Flat  float64
	ByNMS map[string]float64
}

// Minimum entrained air (%) by exposure class. ACI 318 Table 19.3.3.1 scales
// with the maximum size; EN 206 asks a flat 4% for the wet freeze-thaw
// classes.
var entrainedAir = map[string]map[string]airRequirement{
	"ACI": {
		"F1": {ByNMS: map[string]float64{
			`3/8" (9,5 mm)`: 6.0, `1/2" (12,5 mm)`: 5.5, `3/4" (19 mm)`: 5.0,
			`1" (25 mm)`: 4.5, `1-1/2" (37,5 mm)`: 4.5, `2" (50 mm)`: 4.0, `3" (75 mm)`: 3.5,
		}},
		"F2": {ByNMS: map[string]float64{
			`3/8" (9,5 mm)`: 7.5, `1/2" (12,5 mm)`: 7.0, `3/4" (19 mm)`: 6.0,
			`1" (25 mm)`: 6.0, `1-1/2" (37,5 mm)`: 5.5, `2" (50 mm)`: 5.0, `3" (75 mm)`: 4.5,
		}},
		"F3": {ByNMS: map[string]float64{
			`3/8" (9,5 mm)`: 7.5, `1/2" (12,5 mm)`: 7.0, `3/4" (19 mm)`: 6.0,
			`1" (25 mm)`: 6.0, `1-1/2" (37,5 mm)`: 5.5, `2" (50 mm)`: 5.0, `3" (75 mm)`: 4.5,
		}},
	},
	"DoE": {
		"XF2": {Flat: 4.0},
		"XF3": {Flat: 4.0},
		"XF4": {Flat: 4.0},
	},
}

// rangeLimit is the allowed passing band on one sieve. Max == Min demands
// that exact value.
type rangeLimit struct {
	Max float64
	Min float64
}

// Coarse-aggregate grading envelopes per method: ASTM C33 size numbers for
// ACI, Porrero's combined charts split per size for MCE, BS 882 gradings for
// DoE.
var coarseRanges = map[string]map[string]map[string]rangeLimit{
	"ACI": {
		"#467": {
			`2" (50 mm)`:       {100, 100},
			`1-1/2" (37,5 mm)`: {100, 95},
			`3/4" (19 mm)`:     {70, 35},
			`3/8" (9,5 mm)`:    {30, 10},
			`No. 4 (4,75 mm)`:  {5, 0},
		},
		"#57": {
			`1-1/2" (37,5 mm)`: {100, 100},
			`1" (25 mm)`:       {100, 95},
			`1/2" (12,5 mm)`:   {60, 25},
			`No. 4 (4,75 mm)`:  {10, 0},
			`No. 8 (2,36 mm)`:  {5, 0},
		},
		"#67": {
			`1" (25 mm)`:      {100, 100},
			`3/4" (19 mm)`:    {100, 90},
			`3/8" (9,5 mm)`:   {55, 20},
			`No. 4 (4,75 mm)`: {10, 0},
			`No. 8 (2,36 mm)`: {5, 0},
		},
		"#8": {
			`1/2" (12,5 mm)`:  {100, 100},
			`3/8" (9,5 mm)`:   {100, 85},
			`No. 4 (4,75 mm)`: {30, 10},
			`No. 8 (2,36 mm)`: {10, 0},
			`No. 16 (1,18 mm)`: {5, 0},
		},
	},
	"MCE": {
		`1-1/2" (37,5 mm)`: {
			`2" (50 mm)`:       {100, 100},
			`1-1/2" (37,5 mm)`: {100, 95},
			`3/4" (19 mm)`:     {70, 35},
			`3/8" (9,5 mm)`:    {30, 10},
			`No. 4 (4,75 mm)`:  {5, 0},
		},
		`1" (25 mm)`: {
			`1-1/2" (37,5 mm)`: {100, 100},
			`1" (25 mm)`:       {100, 95},
			`1/2" (12,5 mm)`:   {60, 25},
			`No. 4 (4,75 mm)`:  {10, 0},
		},
		`3/4" (19 mm)`: {
			`1" (25 mm)`:      {100, 100},
			`3/4" (19 mm)`:    {100, 90},
			`3/8" (9,5 mm)`:   {55, 20},
			`No. 4 (4,75 mm)`: {10, 0},
		},
		`1/2" (12,5 mm)`: {
			`3/4" (19 mm)`:    {100, 100},
			`1/2" (12,5 mm)`:  {100, 90},
			`3/8" (9,5 mm)`:   {70, 40},
			`No. 4 (4,75 mm)`: {15, 0},
		},
	},
	"DoE": {
		"Graded 4/40": {
			`2-1/2" (63 mm)`: {100, 100},
			`N/A (40 mm)`:    {100, 90},
			`N/A (20 mm)`:    {70, 35},
			`N/A (10 mm)`:    {40, 10},
			`No. 5 (4 mm)`:   {5, 0},
		},
		"Graded 4/20": {
			`N/A (40 mm)`:  {100, 100},
			`N/A (20 mm)`:  {100, 90},
			`N/A (14 mm)`:  {80, 40},
			`N/A (10 mm)`:  {60, 30},
			`No. 5 (4 mm)`: {10, 0},
		},
		"Single-sized 10 mm": {
			`N/A (14 mm)`:    {100, 100},
			`N/A (10 mm)`:    {100, 85},
			`1/4" (6,3 mm)`:  {25, 0},
			`No. 5 (4 mm)`:   {5, 0},
		},
	},
}

// Fine-aggregate grading envelopes per method.
var fineRanges = map[string]map[string]map[string]rangeLimit{
	"ACI": {
		"C33": {
			`3/8" (9,5 mm)`:    {100, 100},
			`No. 4 (4,75 mm)`:  {100, 95},
			`No. 8 (2,36 mm)`:  {100, 80},
			`No. 16 (1,18 mm)`: {85, 50},
			`No. 30 (0,600 mm)`: {60, 25},
			`No. 50 (0,300 mm)`: {30, 5},
			`No. 100 (0,150 mm)`: {10, 0},
		},
	},
	"MCE": {
		"COVENIN 277": {
			`3/8" (9,5 mm)`:    {100, 100},
			`No. 4 (4,75 mm)`:  {100, 95},
			`No. 8 (2,36 mm)`:  {100, 80},
			`No. 16 (1,18 mm)`: {85, 50},
			`No. 30 (0,600 mm)`: {60, 25},
			`No. 50 (0,300 mm)`: {30, 10},
			`No. 100 (0,150 mm)`: {10, 2},
		},
	},
	"DoE": {
		"Gruesa": {
			`5/16" (8 mm)`:     {100, 100},
			`No. 5 (4 mm)`:     {100, 89},
			`No. 10 (2 mm)`:    {100, 60},
			`No. 18 (1 mm)`:    {100, 30},
			`No. 35 (0,500 mm)`: {54, 15},
			`No. 60 (0,250 mm)`: {40, 0},
		},
		"Media": {
			`5/16" (8 mm)`:     {100, 100},
			`No. 5 (4 mm)`:     {100, 89},
			`No. 10 (2 mm)`:    {100, 60},
			`No. 18 (1 mm)`:    {100, 30},
			`No. 35 (0,500 mm)`: {80, 25},
			`No. 60 (0,250 mm)`: {40, 0},
		},
		"Fina": {
			`5/16" (8 mm)`:     {100, 100},
			`No. 5 (4 mm)`:     {100, 89},
			`No. 10 (2 mm)`:    {100, 65},
			`No. 18 (1 mm)`:    {100, 45},
			`No. 35 (0,500 mm)`: {100, 55},
			`No. 60 (0,250 mm)`: {60, 0},
		},
	},
}
