package doe

import (
	"log/slog"
	"math"

	"github.com/mfreitez/concremix/internal/audit"
	"github.com/mfreitez/concremix/internal/matcalc"
	"github.com/mfreitez/concremix/internal/mix"
	"github.com/mfreitez/concremix/internal/units"
)

// Inputs are the design-input values the DoE pipeline consumes, already in
// its native unit system (MPa).
type Inputs struct {
	SlumpRange       string
	ExposureClasses  []string
	SpecStrengthTime string

	AirEntrained       bool
	AirExposureDefined bool
	AirUserDefined     float64

	SpecStrength float64
	SD           StdDev
	UserMargin   float64

	CementClass           string
	CementRelativeDensity float64
	SCMChecked            bool
	SCMType               string
	SCMPercent            float64
	SCMRelativeDensity    float64

	FineType            string
	FineRelativeDensity float64
	FineLooseDensity    float64
	FineMoisture        float64
	FineAbsorption      float64
	FinePassing600      float64

	CoarseType            string
	CoarseRelativeDensity float64
	CoarseLooseDensity    float64
	CoarseMoisture        float64
	CoarseAbsorption      float64
	NominalMaxSize        string

	WaterDensity float64

	WRAChecked         bool
	WRAWaterReducer    bool
	WRAEconomizer      bool
	WRADosage          float64
	WRAEffectiveness   float64
	WRARelativeDensity float64

	AEAChecked         bool
	AEADosage          float64
	AEARelativeDensity float64
}

// Result is the full proportioning outcome, published to the audit trail
// only once the run succeeds.
type Result struct {
	Strength TargetStrength
	Water    Water
	Binder   Cementitious

	WCM              float64
	WCMByStrength    float64
	WCMByDurability  float64
	StartingStrength float64

	EntrappedAir float64
	EntrainedAir float64

	CombinedRelativeDensity float64
	WetDensity              float64
	TotalAggregate          float64
	FineProportion          float64

	FineSSD   float64
	FineWet   float64
	CoarseSSD float64
	CoarseWet float64

	WaterCorrected float64

	// Absolute volumes in m³ per m³ of concrete.
	WaterAbsVol  float64
	CementAbsVol float64
	SCMAbsVol    float64
	FineAbsVol   float64
	CoarseAbsVol float64
	AirVol       float64

	// Batching volumes in L.
	WaterVol  float64
	FineVol   float64
	CoarseVol float64

	WRAContent float64
	WRAVol     float64
	AEAContent float64
	AEAVol     float64

	TotalAbsVolume float64
	TotalContent   float64
}

// Designer runs the DoE pipeline against an audit trail.
type Designer struct {
	trail *audit.Trail
	log   *slog.Logger
}

// NewDesigner wires the pipeline to its audit sink and logger.
func NewDesigner(trail *audit.Trail, log *slog.Logger) *Designer {
	return &Designer{trail: trail, log: log}
}

// LoadInputs reads the design document and converts strengths into MPa when
// the document is expressed in the technical system.
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

	readStr(&in.SlumpRange, "field_requirements.slump_range")
	read(&in.SpecStrength, "field_requirements.strength.spec_strength")
	readStr(&in.SpecStrengthTime, "field_requirements.strength.spec_strength_time")
	readStr(&in.CementClass, "cementitious_materials.cement_class")
	read(&in.CementRelativeDensity, "cementitious_materials.cement_relative_density")
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

	// The fine-proportion chart enters by the fines passing the 600 µm
	// sieve.
	passing, err := store.Grading("fine_aggregate.gradation.passing")
	if err != nil {
		return Inputs{}, err
	}
	in.FinePassing600 = passing["No. 30 (0,600 mm)"]

	in.AirEntrained, _ = store.Bool("field_requirements.entrained_air_content.is_checked")
	if in.AirEntrained {
		in.AirExposureDefined, _ = store.Bool("field_requirements.entrained_air_content.exposure_defined")
		if !in.AirExposureDefined {
			read(&in.AirUserDefined, "field_requirements.entrained_air_content.user_defined")
		}
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
		read(&in.UserMargin, "field_requirements.strength.std_dev_unknown.margin")
	}

	in.SCMChecked, _ = store.Bool("cementitious_materials.SCM.SCM_checked")
	if in.SCMChecked {
		readStr(&in.SCMType, "cementitious_materials.SCM.SCM_type")
		read(&in.SCMPercent, "cementitious_materials.SCM.SCM_content")
		read(&in.SCMRelativeDensity, "cementitious_materials.SCM.SCM_relative_density")
	}

	in.WRAChecked, _ = store.Bool("chemical_admixtures.WRA.WRA_checked")
	if in.WRAChecked {
		in.WRAWaterReducer, _ = store.Bool("chemical_admixtures.WRA.WRA_action.water_reducer")
		in.WRAEconomizer, _ = store.Bool("chemical_admixtures.WRA.WRA_action.cement_economizer")
		read(&in.WRADosage, "chemical_admixtures.WRA.WRA_dosage")
		read(&in.WRAEffectiveness, "chemical_admixtures.WRA.WRA_effectiveness")
		read(&in.WRARelativeDensity, "chemical_admixtures.WRA.WRA_relative_density")
	}
	in.AEAChecked, _ = store.Bool("chemical_admixtures.AEA.AEA_checked")
	if in.AEAChecked {
		read(&in.AEADosage, "chemical_admixtures.AEA.AEA_dosage")
		read(&in.AEARelativeDensity, "chemical_admixtures.AEA.AEA_relative_density")
	}
	if err != nil {
		return Inputs{}, err
	}

	if unitSystem == units.MKS {
		if v, ok := units.Convert(in.SpecStrength, units.MKS, "stress", log); ok {
			in.SpecStrength = v
		}
		if in.SD.Known {
			if v, ok := units.Convert(in.SD.Value, units.MKS, "stress", log); ok {
				in.SD.Value = v
			}
		}
		if in.SD.Unknown {
			if v, ok := units.Convert(in.UserMargin, units.MKS, "stress", log); ok {
				in.UserMargin = v
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
	if err := d.publish(in, res); err != nil {
		d.trail.AddError("audit", err.Error())
		return false
	}
	return true
}

func (d *Designer) proportion(in Inputs) (Result, bool) {
	var res Result
	var err error

	if in.AirEntrained {
		if in.AirExposureDefined {
			res.EntrainedAir = RequiredAir(in.ExposureClasses)
		} else {
			res.EntrainedAir = in.AirUserDefined / 100
		}
		res.AirVol = res.EntrainedAir
	}

	res.Strength, err = RequiredStrength(in.SpecStrength, in.SD, in.UserMargin, res.EntrainedAir*100)
	if err != nil {
		d.trail.AddError("target strength", err.Error())
		return res, false
	}

	res.StartingStrength, err = StartingStrength(in.CementClass, in.CoarseType, in.FineType, in.SpecStrengthTime)
	if err != nil {
		d.trail.AddError("water-cement ratio", err.Error())
		return res, false
	}
	res.WCMByStrength, err = RatioByStrength(res.StartingStrength, res.Strength.Value)
	if err != nil {
		d.trail.AddError("water-cement ratio", err.Error())
		return res, false
	}
	res.WCMByDurability = RatioByDurability(in.ExposureClasses, in.SCMChecked)
	res.WCM = math.Min(res.WCMByStrength, res.WCMByDurability)

	res.Water, err = WaterDemand(WaterSpec{
		SlumpRange:       in.SlumpRange,
		NMS:              in.NominalMaxSize,
		CoarseType:       in.CoarseType,
		FineType:         in.FineType,
		AirEntrained:     in.AirEntrained,
		SCMChecked:       in.SCMChecked,
		SCMPercent:       in.SCMPercent,
		WRAReducesWater:  in.WRAChecked && (in.WRAWaterReducer || in.WRAEconomizer),
		WRAEffectiveness: in.WRAEffectiveness,
	})
	if err != nil {
		d.trail.AddError("water content", err.Error())
		return res, false
	}
	if res.Water.SCMBelowMinimum {
		// Registered as a warning; the run carries on without the
		// reduction.
		d.trail.AddError("water content", "SCM replacements under 10% earn no water reduction")
	}

	// A pure water reducer lowers the batch water, not the binder: sizing
	// works on the demand before the reduction.
	binderWater := res.Water.Final
	if in.WRAChecked && in.WRAWaterReducer {
		binderWater = res.Water.Final - res.Water.WRACorrection
	}
	res.Binder, err = CementitiousContent(binderWater, res.WCM, in.ExposureClasses, in.SCMChecked, in.SCMPercent)
	if err != nil {
		d.trail.AddError("cementitious content", err.Error())
		return res, false
	}

	// Review of the ratio once the binder is sized: a clamped binder or a
	// cement economizer moves the effective ratio, and an SCM binder takes
	// its deferred durability check here.
	recalculated := res.Water.Final / (res.Binder.Cement + res.Binder.SCM)
	if in.SCMChecked {
		res.WCMByDurability = MaxRatioByExposure(in.ExposureClasses)
		if res.WCMByDurability < recalculated {
			res.Binder, err = CementitiousContent(binderWater, res.WCMByDurability, in.ExposureClasses, in.SCMChecked, in.SCMPercent)
			if err != nil {
				d.trail.AddError("cementitious content", err.Error())
				return res, false
			}
			res.WCM = res.WCMByDurability
		} else {
			res.WCM = recalculated
		}
	} else if recalculated != res.WCM {
		res.WCM = recalculated
	}

	if in.WaterDensity <= 0 {
		d.trail.AddError("water content", "water density must be positive")
		return res, false
	}
	res.WaterAbsVol = res.Water.Final / in.WaterDensity
	res.CementAbsVol, err = matcalc.AbsoluteVolume(res.Binder.Cement, in.CementRelativeDensity, in.WaterDensity)
	if err == nil && in.SCMChecked {
		res.SCMAbsVol, err = matcalc.AbsoluteVolume(res.Binder.SCM, in.SCMRelativeDensity, in.WaterDensity)
	}
	if err != nil {
		d.trail.AddError("cementitious content", err.Error())
		return res, false
	}

	res.CombinedRelativeDensity = (in.FineRelativeDensity + in.CoarseRelativeDensity) / 2
	res.WetDensity = WetDensity(res.Water.Final, res.CombinedRelativeDensity, res.EntrainedAir)
	res.TotalAggregate = TotalAggregate(res.WetDensity, res.Binder.Cement, res.Binder.SCM, res.Water.Final)
	if res.TotalAggregate <= 0 {
		d.trail.AddError("fine aggregate", "no aggregate mass left within the wet density: "+matcalc.ErrInfeasibleMix.Error())
		return res, false
	}

	res.FineProportion, err = FineProportion(in.NominalMaxSize, in.SlumpRange, in.FinePassing600, res.WCM)
	if err != nil {
		d.trail.AddError("fine aggregate", err.Error())
		return res, false
	}
	res.FineSSD = res.TotalAggregate * res.FineProportion / 100
	res.CoarseSSD = res.TotalAggregate - res.FineSSD

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
	res.WaterCorrected = matcalc.WaterCorrection(res.Water.Final, res.FineSSD, res.FineWet, res.CoarseSSD, res.CoarseWet)

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
		res.WRAContent, err = matcalc.AdmixtureContent(res.Binder.Cement+res.Binder.SCM, in.WRADosage)
		if err == nil {
			res.WRAVol, err = matcalc.AdmixtureVolume(res.WRAContent, in.WRARelativeDensity, in.WaterDensity)
		}
		if err != nil {
			d.trail.AddError("admixtures", err.Error())
			return res, false
		}
	}
	if in.AEAChecked {
		res.AEAContent, err = matcalc.AdmixtureContent(res.Binder.Cement+res.Binder.SCM, in.AEADosage)
		if err == nil {
			res.AEAVol, err = matcalc.AdmixtureVolume(res.AEAContent, in.AEARelativeDensity, in.WaterDensity)
		}
		if err != nil {
			d.trail.AddError("admixtures", err.Error())
			return res, false
		}
	}

	res.TotalAbsVolume = (res.WaterAbsVol + res.CementAbsVol + res.SCMAbsVol + res.FineAbsVol + res.CoarseAbsVol + res.AirVol) * 1000
	res.TotalContent = res.WaterCorrected + res.Binder.Cement + res.Binder.SCM + res.FineWet + res.CoarseWet

	d.log.Info("proportioning complete",
		"method", "DoE",
		"target_strength", res.Strength.Value,
		"w_cm", res.WCM,
		"total_content", res.TotalContent)
	return res, true
}

// publish serializes the typed result onto the audit trail's canonical
// dotted paths. The combined relative density, the total aggregate content
// and the binder sizing intermediates land on leaves created on the fly.
func (d *Designer) publish(in Inputs, res Result) error {
	updates := []struct {
		path  string
		value any
	}{
		{"spec_strength.target_strength.target_strength_value", res.Strength.Value},
		{"spec_strength.target_strength.std_dev_used", res.Strength.StdDevUsed},
		{"spec_strength.target_strength.z_value", res.Strength.ZValue},
		{"spec_strength.target_strength.margin", res.Strength.Margin},

		{"water_cementitious_materials_ratio.w_cm", res.WCM},
		{"water_cementitious_materials_ratio.w_cm_curve", res.StartingStrength},
		{"water_cementitious_materials_ratio.w_cm_by_strength", res.WCMByStrength},
		{"water_cementitious_materials_ratio.w_cm_by_durability", res.WCMByDurability},

		{"water.water_content.base", res.Water.Base},
		{"water.water_content.scm_correction", res.Water.SCMCorrection},
		{"water.water_content.wra_correction", res.Water.WRACorrection},
		{"water.water_content.final_content", res.Water.Final},
		{"water.water_content_correction", res.WaterCorrected},
		{"water.water_abs_volume", res.WaterAbsVol * 1000},
		{"water.water_volume", res.WaterVol},

		{"air.entrapped_air_content", res.EntrappedAir * 1000},
		{"air.entrained_air_content", res.EntrainedAir * 1000},

		{"cementitious_material.base_content", res.Binder.Base},
		{"cementitious_material.min_content", res.Binder.Min},
		{"cementitious_material.final_content", res.Binder.Total},
		{"cementitious_material.cement.cement_content", res.Binder.Cement},
		{"cementitious_material.cement.cement_abs_volume", res.CementAbsVol * 1000},
		{"cementitious_material.cement.cement_volume", "-"},
		{"cementitious_material.scm.scm_content", res.Binder.SCM},
		{"cementitious_material.scm.scm_abs_volume", res.SCMAbsVol * 1000},
		{"cementitious_material.scm.scm_volume", "-"},

		{"concrete.wet_density", res.WetDensity},
		{"concrete.combined_relative_density", res.CombinedRelativeDensity},
		{"concrete.total_aggregate_content", res.TotalAggregate},

		{"fine_aggregate.fine_proportion", res.FineProportion},
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
		{"chemical_admixtures.AEA.AEA_content", res.AEAContent},
		{"chemical_admixtures.AEA.AEA_volume", res.AEAVol * 1000},

		{"summation.total_abs_volume", res.TotalAbsVolume},
		{"summation.total_content", res.TotalContent},
	}
	if in.WRAChecked && in.WRAWaterReducer {
		updates = append(updates, struct {
			path  string
			value any
		}{"water.water_content.without_wra_correction", res.Water.Final - res.Water.WRACorrection})
	}
	for _, u := range updates {
		if err := d.trail.Update(u.path, u.value); err != nil {
			return err
		}
	}
	return nil
}
