package mce

// Target-strength margins in kgf/cm² by quality-control level and specified
// strength band, Porrero et al., "Manual del Concreto Estructural".
var strengthMargins = map[string][3]float64{
	// Bands: below 210, 210 to 350, above 350 kgf/cm².
	"Excelente":   {45, 60, 75},
	"Aceptable":   {80, 95, 110},
	"Sin control": {130, 170, 210},
}

// Abrams-law constants by test age: strength = M / N^alpha.
var abramsConstants = map[string]AbramsConstants{
	"7 días":  {M: 861.3, N: 13.1},
	"28 días": {M: 902.5, N: 8.69},
	"90 días": {M: 973.1, N: 7.71},
}

// Water-cement ratio correction by nominal maximum size, Porrero Table 6.9.
var alphaFactor1 = map[string]float64{
	`3" (75 mm)`:      0.74,
	`2-1/2" (63 mm)`:  0.78,
	`2" (50 mm)`:      0.82,
	`1-1/2" (37,5 mm)`: 0.91,
	`1" (25 mm)`:      1.00,
	`3/4" (19 mm)`:    1.05,
	`1/2" (12,5 mm)`:  1.10,
	`3/8" (9,5 mm)`:   1.30,
	`1/4" (6,3 mm)`:   1.60,
}

// Water-cement ratio correction by coarse and fine aggregate type.
var alphaFactor2 = map[string]map[string]float64{
	"Triturado":     {"Natural": 1.00, "Triturada": 1.14},
	"Semitriturado": {"Natural": 0.97, "Triturada": 1.10},
	"Grava natural": {"Natural": 0.91, "Triturada": 0.93},
}

// Maximum water-cement ratio by exposure condition.
var maxAlphaByExposure = map[string]float64{
	"Atmósfera común":         0.75,
	"Litoral":                 0.60,
	"Ambiente marino":         0.50,
	"Atmósfera agresiva":      0.45,
	"Contacto con agua dulce": 0.60,
	"Contacto con sulfatos":   0.45,
}

// Cement-content correction by nominal maximum size, Porrero Table 6.10.
var cementFactor1 = map[string]float64{
	`3" (75 mm)`:      0.82,
	`2-1/2" (63 mm)`:  0.85,
	`2" (50 mm)`:      0.88,
	`1-1/2" (37,5 mm)`: 0.93,
	`1" (25 mm)`:      1.00,
	`3/4" (19 mm)`:    1.05,
	`1/2" (12,5 mm)`:  1.14,
	`3/8" (9,5 mm)`:   1.20,
	`1/4" (6,3 mm)`:   1.33,
}

// Cement-content correction by coarse and fine aggregate type.
var cementFactor2 = map[string]map[string]float64{
	"Triturado":     {"Natural": 1.00, "Triturada": 1.28},
	"Semitriturado": {"Natural": 0.93, "Triturada": 1.23},
	"Grava natural": {"Natural": 0.90, "Triturada": 0.96},
}

// Minimum cement content in kgf/m³ by exposure condition.
var minCementByExposure = map[string]float64{
	"Atmósfera común":         270,
	"Litoral":                 330,
	"Ambiente marino":         380,
	"Atmósfera agresiva":      400,
	"Contacto con agua dulce": 330,
	"Contacto con sulfatos":   380,
}

// canonicalSieves is the full sieve series of the combined-grading charts,
// from the largest opening down.
var canonicalSieves = []string{
	`3-1/2" (90 mm)`,
	`3" (75 mm)`,
	`2-1/2" (63 mm)`,
	`2" (50 mm)`,
	`1-1/2" (37,5 mm)`,
	`1" (25 mm)`,
	`3/4" (19 mm)`,
	`1/2" (12,5 mm)`,
	`3/8" (9,5 mm)`,
	`1/4" (6,3 mm)`,
	`No. 4 (4,75 mm)`,
	`No. 8 (2,36 mm)`,
	`No. 16 (1,18 mm)`,
	`No. 30 (0,600 mm)`,
	`No. 50 (0,300 mm)`,
	`No. 100 (0,150 mm)`,
}

// gradingLimit is a recommended combined-grading band for one sieve:
// maximum and minimum percentage passing, in that order.
type gradingLimit struct {
	Max float64
	Min float64
}

// Recommended combined-grading envelopes by nominal maximum size, Porrero
// Figures 6.2 to 6.4.
var combinedGrading = map[string]map[string]gradingLimit{
	`1-1/2" (37,5 mm)`: {
		`1-1/2" (37,5 mm)`: {100, 95},
		`1" (25 mm)`:       {90, 67},
		`3/4" (19 mm)`:     {83, 55},
		`1/2" (12,5 mm)`:   {75, 45},
		`3/8" (9,5 mm)`:    {68, 38},
		`1/4" (6,3 mm)`:    {58, 30},
		`No. 4 (4,75 mm)`:  {50, 24},
		`No. 8 (2,36 mm)`:  {40, 16},
		`No. 16 (1,18 mm)`: {31, 9},
		`No. 30 (0,600 mm)`: {23, 4},
		`No. 50 (0,300 mm)`: {16, 2},
		`No. 100 (0,150 mm)`: {9, 0},
	},
	`1" (25 mm)`: {
		`1" (25 mm)`:       {100, 95},
		`3/4" (19 mm)`:     {92, 68},
		`1/2" (12,5 mm)`:   {85, 52},
		`3/8" (9,5 mm)`:    {78, 45},
		`1/4" (6,3 mm)`:    {70, 34},
		`No. 4 (4,75 mm)`:  {54, 27},
		`No. 8 (2,36 mm)`:  {44, 18},
		`No. 16 (1,18 mm)`: {34, 10},
		`No. 30 (0,600 mm)`: {26, 5},
		`No. 50 (0,300 mm)`: {18, 2},
		`No. 100 (0,150 mm)`: {10, 0},
	},
	`3/4" (19 mm)`: {
		`3/4" (19 mm)`:     {100, 95},
		`1/2" (12,5 mm)`:   {94, 70},
		`3/8" (9,5 mm)`:    {86, 56},
		`1/4" (6,3 mm)`:    {76, 42},
		`No. 4 (4,75 mm)`:  {62, 33},
		`No. 8 (2,36 mm)`:  {50, 22},
		`No. 16 (1,18 mm)`: {38, 13},
		`No. 30 (0,600 mm)`: {28, 7},
		`No. 50 (0,300 mm)`: {20, 3},
		`No. 100 (0,150 mm)`: {11, 0},
	},
}
