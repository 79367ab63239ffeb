package mce

import (
	"log/slog"

	"github.com/mfreitez/concremix/internal/audit"
	"github.com/mfreitez/concremix/internal/matcalc"
	"github.com/mfreitez/concremix/internal/mix"
	"github.com/mfreitez/concremix/internal/units"
)

// Inputs are the design-input values the MCE pipeline consumes, already in
// its native unit system (kgf/cm²).
type Inputs struct {
	Slump            float64
	ExposureClasses  []string
	SpecStrengthTime string

	SpecStrength float64
	SD           StdDev

	// Theta switches the cement sizing to the theta relationship when the
	// design document provides it.
	Theta *float64

	CementRelativeDensity float64

	FineType            string
	FineRelativeDensity float64
	FineLooseDensity    float64
	FineMoisture        float64
	FineAbsorption      float64
	FineGrading         map[string]float64

	CoarseType            string
	CoarseRelativeDensity float64
	CoarseLooseDensity    float64
	CoarseMoisture        float64
	CoarseAbsorption      float64
	CoarseGrading         map[string]float64
	NominalMaxSize        string

	WaterDensity float64

	WRAChecked         bool
	WRAWaterReducer    bool
	WRADosage          float64
	WRAEffectiveness   float64
	WRARelativeDensity float64
}

// Result is the full proportioning outcome, published to the audit trail
// only once the run succeeds.
type Result struct {
	Strength TargetStrength
	Alpha    Alpha
	Cement   Cement
	Beta     BetaBounds

	// ReducedAlpha is the ratio after a water-reducing admixture, applied
	// to the batch water only.
	ReducedAlpha float64
	UsedAlpha    float64

	WaterContent   float64
	WaterCorrected float64
	EntrappedAir   float64

	FineSSD   float64
	FineWet   float64
	CoarseSSD float64
	CoarseWet float64

	// Absolute volumes in m³ per m³ of concrete.
	WaterAbsVol  float64
	CementAbsVol float64
	FineAbsVol   float64
	CoarseAbsVol float64

	// Batching volumes in L.
	WaterVol  float64
	FineVol   float64
	CoarseVol float64

	WRAContent float64
	WRAVol     float64

	TotalAbsVolume float64
	TotalContent   float64
}

// Designer runs the MCE pipeline against an audit trail.
type Designer struct {
	trail *audit.Trail
	log   *slog.Logger
}

// NewDesigner wires the pipeline to its audit sink and logger.
func NewDesigner(trail *audit.Trail, log *slog.Logger) *Designer {
	return &Designer{trail: trail, log: log}
}

// LoadInputs reads the design document and converts strengths into kgf/cm²
// when the document is expressed in SI units.
func LoadInputs(store mix.Store, unitSystem string, log *slog.Logger) (Inputs, error) {
	var in Inputs
	var err error

	read := func(dst *float64, path string) {
		if err != nil {
			return
		}
		*dst, err = store.Float(path)
	}
	readStr := func(dst *string, path string) {
		if err != nil {
			return
		}
		*dst, err = store.Str(path)
	}

	read(&in.Slump, "field_requirements.slump")
	read(&in.SpecStrength, "field_requirements.strength.spec_strength")
	readStr(&in.SpecStrengthTime, "field_requirements.strength.spec_strength_time")
	read(&in.CementRelativeDensity, "cementitious_materials.relative_density")
	readStr(&in.FineType, "fine_aggregate.info.type")
	read(&in.FineRelativeDensity, "fine_aggregate.physical_prop.relative_density_SSD")
	read(&in.FineLooseDensity, "fine_aggregate.physical_prop.PUS")
	read(&in.FineMoisture, "fine_aggregate.moisture.moisture_content")
	read(&in.FineAbsorption, "fine_aggregate.moisture.absorption_content")
	readStr(&in.CoarseType, "coarse_aggregate.info.type")
	read(&in.CoarseRelativeDensity, "coarse_aggregate.physical_prop.relative_density_SSD")
	read(&in.CoarseLooseDensity, "coarse_aggregate.physical_prop.PUS")
	read(&in.CoarseMoisture, "coarse_aggregate.moisture.moisture_content")
	read(&in.CoarseAbsorption, "coarse_aggregate.moisture.absorption_content")
	readStr(&in.NominalMaxSize, "coarse_aggregate.NMS")
	read(&in.WaterDensity, "water.water_density")
	if err != nil {
		return Inputs{}, err
	}

	in.ExposureClasses, err = store.Strings("validation.exposure_classes")
	if err != nil {
		return Inputs{}, err
	}
	in.FineGrading, err = store.Grading("fine_aggregate.gradation.passing")
	if err != nil {
		return Inputs{}, err
	}
	in.CoarseGrading, err = store.Grading("coarse_aggregate.gradation.passing")
	if err != nil {
		return Inputs{}, err
	}

	in.SD.Known, _ = store.Bool("field_requirements.strength.std_dev_known.std_dev_known_enabled")
	in.SD.Unknown, _ = store.Bool("field_requirements.strength.std_dev_unknown.std_dev_unknown_enabled")
	if in.SD.Known {
		read(&in.SD.Value, "field_requirements.strength.std_dev_known.std_dev_value")
		if err == nil {
			in.SD.SampleSize, err = store.Int("field_requirements.strength.std_dev_known.test_nro")
		}
		readStr(&in.SD.DefectiveLevel, "field_requirements.strength.std_dev_known.defective_level")
	}
	if in.SD.Unknown {
		readStr(&in.SD.QualityControl, "field_requirements.strength.std_dev_unknown.quality_control")
	}

	if store.Has("field_requirements.theta") {
		var theta float64
		read(&theta, "field_requirements.theta")
		in.Theta = &theta
	}

	in.WRAChecked, _ = store.Bool("chemical_admixtures.WRA.WRA_checked")
	if in.WRAChecked {
		in.WRAWaterReducer, _ = store.Bool("chemical_admixtures.WRA.WRA_action.water_reducer")
		read(&in.WRADosage, "chemical_admixtures.WRA.WRA_dosage")
		read(&in.WRAEffectiveness, "chemical_admixtures.WRA.WRA_effectiveness")
		read(&in.WRARelativeDensity, "chemical_admixtures.WRA.WRA_relative_density")
	}
	if err != nil {
		return Inputs{}, err
	}

	if unitSystem == units.SI {
		if v, ok := units.Convert(in.SpecStrength, units.SI, "stress", log); ok {
			in.SpecStrength = v
		}
		if in.SD.Known {
			if v, ok := units.Convert(in.SD.Value, units.SI, "stress", log); ok {
				in.SD.Value = v
			}
		}
	}
	return in, nil
}

// Run executes the full procedure. It returns false when any stage fails;
// the failed section is then available from the trail's error registry.
func (d *Designer) Run(store mix.Store, unitSystem string) bool {
	in, err := LoadInputs(store, unitSystem, d.log)
	if err != nil {
		d.trail.AddError("data entry", err.Error())
		return false
	}
	res, ok := d.proportion(in)
	if !ok {
		return false
	}
	if err := d.publish(res); err != nil {
		d.trail.AddError("audit", err.Error())
		return false
	}
	return true
}

func (d *Designer) proportion(in Inputs) (Result, bool) {
	var res Result
	var err error

	res.Strength, err = RequiredStrength(in.SpecStrength, in.SD)
	if err != nil {
		d.trail.AddError("target strength", err.Error())
		return res, false
	}

	res.Beta, err = Beta(in.NominalMaxSize, FillAllSieves(in.CoarseGrading), FillAllSieves(in.FineGrading))
	if err != nil {
		d.trail.AddError("beta relationship", err.Error())
		return res, false
	}

	res.Alpha, err = WaterCementRatio(res.Strength.Value, in.SpecStrengthTime, in.NominalMaxSize,
		in.CoarseType, in.FineType, in.ExposureClasses, AbramsConstants{})
	if err != nil {
		d.trail.AddError("water-cement ratio", err.Error())
		return res, false
	}
	res.UsedAlpha = res.Alpha.Final
	res.ReducedAlpha = res.Alpha.Final
	if in.WRAChecked && in.WRAWaterReducer {
		// The admixture cuts the batch water; the cement keeps the
		// strength-governed ratio.
		res.ReducedAlpha = res.Alpha.Final * (1 - in.WRAEffectiveness/100)
	}

	res.Cement, err = CementContent(in.Slump, res.Alpha.Final, in.NominalMaxSize, in.CoarseType, in.FineType,
		in.ExposureClasses, in.Theta, DefaultCementConstants)
	if err != nil {
		d.trail.AddError("cement content", err.Error())
		return res, false
	}

	if in.WaterDensity <= 0 {
		d.trail.AddError("water content", "water density must be positive")
		return res, false
	}
	res.CementAbsVol, err = matcalc.AbsoluteVolume(res.Cement.Final, in.CementRelativeDensity, in.WaterDensity)
	if err != nil {
		d.trail.AddError("cement content", err.Error())
		return res, false
	}

	res.EntrappedAir, err = EntrappedAirVolume(in.NominalMaxSize, res.Cement.Final)
	if err != nil {
		d.trail.AddError("entrapped air", err.Error())
		return res, false
	}

	res.WaterContent = WaterContent(res.Cement.Final, res.ReducedAlpha)
	res.WaterAbsVol = res.WaterContent / in.WaterDensity

	res.FineSSD, err = FineContent(res.EntrappedAir, res.CementAbsVol, res.WaterAbsVol, in.WaterDensity,
		in.FineRelativeDensity, in.CoarseRelativeDensity, res.Beta.Value)
	if err != nil {
		d.trail.AddError("fine aggregate", err.Error())
		return res, false
	}
	res.CoarseSSD = CoarseContent(res.FineSSD, res.Beta.Value)

	res.FineAbsVol, err = matcalc.AbsoluteVolume(res.FineSSD, in.FineRelativeDensity, in.WaterDensity)
	if err == nil {
		res.CoarseAbsVol, err = matcalc.AbsoluteVolume(res.CoarseSSD, in.CoarseRelativeDensity, in.WaterDensity)
	}
	if err != nil {
		d.trail.AddError("fine aggregate", err.Error())
		return res, false
	}

	res.FineWet, err = matcalc.WetContent(res.FineSSD, in.FineMoisture, in.FineAbsorption)
	if err == nil {
		res.CoarseWet, err = matcalc.WetContent(res.CoarseSSD, in.CoarseMoisture, in.CoarseAbsorption)
	}
	if err != nil {
		d.trail.AddError("moisture correction", err.Error())
		return res, false
	}
	res.WaterCorrected = matcalc.WaterCorrection(res.WaterContent, res.FineSSD, res.FineWet, res.CoarseSSD, res.CoarseWet)

	res.WaterVol = res.WaterCorrected / in.WaterDensity * 1000
	res.FineVol, err = matcalc.ApparentVolume(res.FineWet, in.FineLooseDensity)
	if err == nil {
		res.CoarseVol, err = matcalc.ApparentVolume(res.CoarseWet, in.CoarseLooseDensity)
	}
	if err != nil {
		d.trail.AddError("moisture correction", err.Error())
		return res, false
	}

	if in.WRAChecked {
		res.WRAContent, err = matcalc.AdmixtureContent(res.Cement.Final, in.WRADosage)
		if err == nil {
			res.WRAVol, err = matcalc.AdmixtureVolume(res.WRAContent, in.WRARelativeDensity, in.WaterDensity)
		}
		if err != nil {
			d.trail.AddError("admixtures", err.Error())
			return res, false
		}
	}

	res.TotalAbsVolume = (res.WaterAbsVol + res.CementAbsVol + res.FineAbsVol + res.CoarseAbsVol + res.EntrappedAir) * 1000
	res.TotalContent = res.WaterCorrected + res.Cement.Final + res.FineWet + res.CoarseWet

	d.log.Info("proportioning complete",
		"method", "MCE",
		"target_strength", res.Strength.Value,
		"alpha", res.UsedAlpha,
		"total_content", res.TotalContent)
	return res, true
}

// publish serializes the typed result onto the audit trail's canonical
// dotted paths.
func (d *Designer) publish(res Result) error {
	updates := []struct {
		path  string
		value any
	}{
		{"spec_strength.target_strength.target_strength_value", res.Strength.Value},
		{"spec_strength.target_strength.k_factor", res.Strength.KFactor},
		{"spec_strength.target_strength.z_value", res.Strength.ZValue},
		{"spec_strength.target_strength.f_cr_1", res.Strength.FCr1},
		{"spec_strength.target_strength.f_cr_2", res.Strength.FCr2},
		{"spec_strength.target_strength.margin", res.Strength.Margin},

		{"water_cement_ratio.used_alpha", res.UsedAlpha},
		{"water_cement_ratio.design_alpha", res.Alpha.Design},
		{"water_cement_ratio.correction_factor_1", res.Alpha.Factor1},
		{"water_cement_ratio.correction_factor_2", res.Alpha.Factor2},
		{"water_cement_ratio.corrected_alpha", res.Alpha.Corrected},
		{"water_cement_ratio.min_alpha", res.Alpha.Min},
		{"water_cement_ratio.final_alpha", res.Alpha.Final},
		{"water_cement_ratio.reduced_alpha", res.ReducedAlpha},
		{"water_cement_ratio.m", res.Alpha.Constants.M},
		{"water_cement_ratio.n", res.Alpha.Constants.N},

		{"beta.beta_min", res.Beta.Min},
		{"beta.beta_max", res.Beta.Max},
		{"beta.beta_mean", res.Beta.Mean},
		{"beta.beta_economic", res.Beta.Economic},
		{"beta.beta", res.Beta.Value},

		{"cementitious_material.cement.design_cement_content", res.Cement.Design},
		{"cementitious_material.cement.correction_factor_1", res.Cement.Factor1},
		{"cementitious_material.cement.correction_factor_2", res.Cement.Factor2},
		{"cementitious_material.cement.corrected_cement_content", res.Cement.Corrected},
		{"cementitious_material.cement.min_cement_content", res.Cement.Min},
		{"cementitious_material.cement.cement_content", res.Cement.Final},
		{"cementitious_material.cement.cement_abs_volume", res.CementAbsVol * 1000},
		{"cementitious_material.cement.cement_volume", "-"},

		{"water.water_content", res.WaterContent},
		{"water.water_content_correction", res.WaterCorrected},
		{"water.water_abs_volume", res.WaterAbsVol * 1000},
		{"water.water_volume", res.WaterVol},

		{"air.entrapped_air_content", res.EntrappedAir * 1000},

		{"fine_aggregate.fine_content_ssd", res.FineSSD},
		{"fine_aggregate.fine_content_wet", res.FineWet},
		{"fine_aggregate.fine_abs_volume", res.FineAbsVol * 1000},
		{"fine_aggregate.fine_volume", res.FineVol},

		{"coarse_aggregate.coarse_content_ssd", res.CoarseSSD},
		{"coarse_aggregate.coarse_content_wet", res.CoarseWet},
		{"coarse_aggregate.coarse_abs_volume", res.CoarseAbsVol * 1000},
		{"coarse_aggregate.coarse_volume", res.CoarseVol},

		{"chemical_admixtures.WRA.WRA_content", res.WRAContent},
		{"chemical_admixtures.WRA.WRA_volume", res.WRAVol * 1000},

		{"summation.total_abs_volume", res.TotalAbsVolume},
		{"summation.total_content", res.TotalContent},
	}
	for _, u := range updates {
		if err := d.trail.Update(u.path, u.value); err != nil {
			return err
		}
	}
	return nil
}
