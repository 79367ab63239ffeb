package aci

import (
	"log/slog"
	"math"

	"github.com/mfreitez/concremix/internal/audit"
	"github.com/mfreitez/concremix/internal/matcalc"
	"github.com/mfreitez/concremix/internal/mix"
	"github.com/mfreitez/concremix/internal/units"
)

// Inputs are the design-input values the ACI pipeline consumes, already in
// its native unit system (MPa).
type Inputs struct {
	SlumpRange      string
	ExposureClasses []string

	AirEntrained       bool
	AirExposureDefined bool
	AirUserDefined     float64

	SpecStrength float64
	SD           StdDev

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
	FinenessModulus     float64

	CoarseType             string
	CoarseRelativeDensity  float64
	CoarseLooseDensity     float64
	CoarseCompactedDensity float64
	CoarseMoisture         float64
	CoarseAbsorption       float64
	NominalMaxSize         string

	WaterDensity float64

	AEAChecked bool
	AEADosage  float64
}

// Result is the full proportioning outcome, published to the audit trail
// only once the run succeeds.
type Result struct {
	Strength TargetStrength
	Water    Water
	Binder   Cementitious

	WCM             float64
	WCMByStrength   float64
	WCMByDurability float64

	EntrappedAir float64
	EntrainedAir float64
	AEAContent   float64

	BulkVolume    float64
	CoarseOvenDry float64
	CoarseSSD     float64
	CoarseWet     float64
	FineSSD       float64
	FineWet       float64

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

	TotalAbsVolume float64
	TotalContent   float64
}

// Designer runs the ACI pipeline against an audit trail.
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
	readStr(&in.FineType, "fine_aggregate.info.type")
	read(&in.FineRelativeDensity, "fine_aggregate.physical_prop.relative_density_SSD")
	read(&in.FineLooseDensity, "fine_aggregate.physical_prop.PUS")
	read(&in.FineMoisture, "fine_aggregate.moisture.moisture_content")
	read(&in.FineAbsorption, "fine_aggregate.moisture.absorption_content")
	read(&in.FinenessModulus, "fine_aggregate.fineness_modulus")
	readStr(&in.CoarseType, "coarse_aggregate.info.type")
	read(&in.CoarseRelativeDensity, "coarse_aggregate.physical_prop.relative_density_SSD")
	read(&in.CoarseLooseDensity, "coarse_aggregate.physical_prop.PUS")
	read(&in.CoarseCompactedDensity, "coarse_aggregate.physical_prop.PUC")
	read(&in.CoarseMoisture, "coarse_aggregate.moisture.moisture_content")
	read(&in.CoarseAbsorption, "coarse_aggregate.moisture.absorption_content")
	readStr(&in.NominalMaxSize, "coarse_aggregate.NMS")
	read(&in.WaterDensity, "water.water_density")
	read(&in.CementRelativeDensity, "cementitious_materials.cement_relative_density")
	if err != nil {
		return Inputs{}, err
	}

	in.ExposureClasses, err = store.Strings("validation.exposure_classes")
	if err != nil {
		return Inputs{}, err
	}

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

	in.SCMChecked, _ = store.Bool("cementitious_materials.SCM.SCM_checked")
	if in.SCMChecked {
		readStr(&in.SCMType, "cementitious_materials.SCM.SCM_type")
		read(&in.SCMPercent, "cementitious_materials.SCM.SCM_content")
		read(&in.SCMRelativeDensity, "cementitious_materials.SCM.SCM_relative_density")
	}

	in.AEAChecked, _ = store.Bool("chemical_admixtures.AEA.AEA_checked")
	if in.AEAChecked {
		read(&in.AEADosage, "chemical_admixtures.AEA.AEA_dosage")
	}
	if err != nil {
		return Inputs{}, err
	}

	// The pipeline works in MPa; technical-system strengths convert on
	// the way in. A missing factor degrades to the raw value.
	if unitSystem == units.MKS {
		if v, ok := units.Convert(in.SpecStrength, units.MKS, "stress", log); ok {
			in.SpecStrength = v
		}
		if in.SD.Known {
			if v, ok := units.Convert(in.SD.Value, units.MKS, "stress", log); ok {
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

	if in.AirEntrained {
		if in.AirExposureDefined {
			res.EntrainedAir, err = EntrainedAirVolume(in.NominalMaxSize, in.ExposureClasses)
			if err != nil {
				d.trail.AddError("air content", err.Error())
				return res, false
			}
		} else {
			res.EntrainedAir = in.AirUserDefined / 100
		}
		res.AirVol = res.EntrainedAir
	} else {
		res.EntrappedAir, err = matcalc.EntrappedAirVolume(in.NominalMaxSize)
		if err != nil {
			d.trail.AddError("air content", err.Error())
			return res, false
		}
		res.AirVol = res.EntrappedAir
	}

	scmType := ""
	if in.SCMChecked {
		scmType = in.SCMType
	}
	res.Water, err = WaterDemand(in.SlumpRange, in.NominalMaxSize, in.AirEntrained, in.CoarseType, in.FineType, scmType, in.SCMPercent)
	if err != nil {
		d.trail.AddError("water content", err.Error())
		return res, false
	}

	res.WCMByStrength = RatioByStrength(res.Strength.Value, in.AirEntrained)
	res.WCMByDurability = RatioByDurability(in.ExposureClasses)
	res.WCM = math.Min(res.WCMByStrength, res.WCMByDurability)

	res.Binder, err = CementitiousContent(res.Water.Final, res.WCM, in.NominalMaxSize, in.SCMChecked, in.SCMPercent)
	if err != nil {
		d.trail.AddError("cementitious content", err.Error())
		return res, false
	}
	// A clamped binder lowers the effective ratio.
	if res.Binder.Total > res.Binder.Base {
		res.WCM = res.Water.Final / res.Binder.Total
	}

	res.BulkVolume, res.CoarseOvenDry, res.CoarseSSD, err = CoarseContent(in.NominalMaxSize, in.FinenessModulus, in.CoarseCompactedDensity, in.CoarseAbsorption)
	if err != nil {
		d.trail.AddError("coarse aggregate", err.Error())
		return res, false
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
	if err == nil {
		res.CoarseAbsVol, err = matcalc.AbsoluteVolume(res.CoarseSSD, in.CoarseRelativeDensity, in.WaterDensity)
	}
	if err != nil {
		d.trail.AddError("cementitious content", err.Error())
		return res, false
	}

	res.FineAbsVol, res.FineSSD, err = FineContent(res.WaterAbsVol, res.AirVol, res.CementAbsVol, res.SCMAbsVol, res.CoarseAbsVol, in.FineRelativeDensity, in.WaterDensity)
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

	if in.AEAChecked && in.AirEntrained {
		res.AEAContent, err = matcalc.AdmixtureContent(res.Binder.Total, in.AEADosage)
		if err != nil {
			d.trail.AddError("admixtures", err.Error())
			return res, false
		}
	}

	res.TotalAbsVolume = (res.WaterAbsVol + res.CementAbsVol + res.SCMAbsVol + res.FineAbsVol + res.CoarseAbsVol + res.AirVol) * 1000
	res.TotalContent = math.Round(res.WaterCorrected) + math.Round(res.Binder.Cement) + math.Round(res.Binder.SCM) +
		math.Round(res.FineWet) + math.Round(res.CoarseWet)

	d.log.Info("proportioning complete",
		"method", "ACI",
		"target_strength", res.Strength.Value,
		"w_cm", res.WCM,
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

		{"water_cementitious_materials_ratio.w_cm", res.WCM},
		{"water_cementitious_materials_ratio.w_cm_by_strength", res.WCMByStrength},
		{"water_cementitious_materials_ratio.w_cm_by_durability", res.WCMByDurability},

		{"water.water_content.base", res.Water.Base},
		{"water.water_content.coarse_aggregate_correction", res.Water.CoarseCorrection},
		{"water.water_content.fine_aggregate_correction", res.Water.FineCorrection},
		{"water.water_content.scm_correction", res.Water.SCMCorrection},
		{"water.water_content.final_content", res.Water.Final},
		{"water.water_content_correction", res.WaterCorrected},
		{"water.water_abs_volume", res.WaterAbsVol * 1000},
		{"water.water_volume", res.WaterVol},

		{"air.entrapped_air_content", res.EntrappedAir * 1000},
		{"air.entrained_air_content", res.EntrainedAir * 1000},
		{"air.air_entraining_admixture_content", res.AEAContent},

		{"cementitious_material.base_content", res.Binder.Base},
		{"cementitious_material.min_content", res.Binder.Min},
		{"cementitious_material.cement.cement_content", res.Binder.Cement},
		{"cementitious_material.cement.cement_abs_volume", res.CementAbsVol * 1000},
		{"cementitious_material.cement.cement_volume", "-"},
		{"cementitious_material.scm.scm_content", res.Binder.SCM},
		{"cementitious_material.scm.scm_abs_volume", res.SCMAbsVol * 1000},
		{"cementitious_material.scm.scm_volume", "-"},

		{"fine_aggregate.fine_content_ssd", res.FineSSD},
		{"fine_aggregate.fine_content_wet", res.FineWet},
		{"fine_aggregate.fine_abs_volume", res.FineAbsVol * 1000},
		{"fine_aggregate.fine_volume", res.FineVol},

		{"coarse_aggregate.oven_dry_rodded_bulk_volume", res.BulkVolume},
		{"coarse_aggregate.coarse_content_oven_dry", res.CoarseOvenDry},
		{"coarse_aggregate.coarse_content_ssd", res.CoarseSSD},
		{"coarse_aggregate.coarse_content_wet", res.CoarseWet},
		{"coarse_aggregate.coarse_abs_volume", res.CoarseAbsVol * 1000},
		{"coarse_aggregate.coarse_volume", res.CoarseVol},

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
