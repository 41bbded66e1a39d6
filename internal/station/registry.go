package station

// dualMetbkTags is the element table for moorings with two met packages.
// Element order matches the legacy bulletin layout expected by NDBC.
// tp001/tp002 repeat the hull temperature under the subsurface sensor
// names; dp001/dp002 are the fixed sensor depths for those elements.
var dualMetbkTags = []Tag{
	{Name: "atmp1", Column: "METBK1 AIR_TEMPERATURE", Default: Missing},
	{Name: "atmp2", Column: "METBK2 AIR_TEMPERATURE", Default: Missing},
	{Name: "baro1", Column: "METBK1 SEA_LEVEL_PRESSURE", Default: Missing},
	{Name: "baro2", Column: "METBK2 SEA_LEVEL_PRESSURE", Default: Missing},
	{Name: "lwrad", Column: "METBK1 LONGWAVE_IRRADIANCE", Default: Missing},
	{Name: "rrh", Column: "METBK1 RELATIVE_HUMIDITY", Default: Missing},
	{Name: "srad1", Column: "METBK1 SHORTWAVE_IRRADIANCE", Default: Missing},
	{Name: "wspd1", Column: "METBK1 WIND_SPEED", Default: Missing},
	{Name: "wspd2", Column: "METBK2 WIND_SPEED", Default: Missing},
	{Name: "wdir1", Column: "METBK1 WIND_DIRECTION", Default: Missing},
	{Name: "wdir2", Column: "METBK2 WIND_DIRECTION", Default: Missing},
	{Name: "wtmp1", Column: "METBK1 SEA_SURFACE_TEMPERATURE", Default: Missing},
	{Name: "wtmp2", Column: "METBK2 SEA_SURFACE_TEMPERATURE", Default: Missing},
	{Name: "tp001", Column: "METBK1 SEA_SURFACE_TEMPERATURE", Default: Missing},
	{Name: "tp002", Column: "METBK2 SEA_SURFACE_TEMPERATURE", Default: Missing},
	{Name: "sp001", Column: "METBK1 SEA_SURFACE_PRACTICAL_SALINITY", Default: Missing},
	{Name: "sp002", Column: "METBK2 SEA_SURFACE_PRACTICAL_SALINITY", Default: Missing},
	{Name: "dompd", Column: "WAVSS SIGNIFICANT_PERIOD", Default: Missing},
	{Name: "mwdir", Column: "WAVSS MEAN_DIRECTION", Default: Missing},
	{Name: "wvhgt", Column: "WAVSS SIGNIFICANT_WAVE_HEIGHT", Default: Missing},
	{Name: "dp001", Default: 0.95},
	{Name: "dp002", Default: 1.15},
	{Name: "fm64iii", Default: 830},
	{Name: "fm64k1", Default: 7},
	{Name: "fm64k2", Default: 1},
}

// singleMetbkTags is the element table for moorings with one met package.
// These bulletins carry no wind speed element.
var singleMetbkTags = []Tag{
	{Name: "atmp1", Column: "METBK1 AIR_TEMPERATURE", Default: Missing},
	{Name: "baro1", Column: "METBK1 SEA_LEVEL_PRESSURE", Default: Missing},
	{Name: "lwrad", Column: "METBK1 LONGWAVE_IRRADIANCE", Default: Missing},
	{Name: "rrh", Column: "METBK1 RELATIVE_HUMIDITY", Default: Missing},
	{Name: "srad1", Column: "METBK1 SHORTWAVE_IRRADIANCE", Default: Missing},
	{Name: "wdir1", Column: "METBK1 WIND_DIRECTION", Default: Missing},
	{Name: "wtmp1", Column: "METBK1 SEA_SURFACE_TEMPERATURE", Default: Missing},
	{Name: "tp001", Column: "METBK1 SEA_SURFACE_TEMPERATURE", Default: Missing},
	{Name: "sp001", Column: "METBK1 SEA_SURFACE_PRACTICAL_SALINITY", Default: Missing},
	{Name: "dompd", Column: "WAVSS SIGNIFICANT_PERIOD", Default: Missing},
	{Name: "mwdir", Column: "WAVSS MEAN_DIRECTION", Default: Missing},
	{Name: "wvhgt", Column: "WAVSS SIGNIFICANT_WAVE_HEIGHT", Default: Missing},
	{Name: "dp001", Default: 0.95},
	{Name: "fm64iii", Default: 830},
	{Name: "fm64k1", Default: 7},
	{Name: "fm64k2", Default: 1},
}

// stations is the registry of reporting moorings. Sensor heights come
// from the deployment asset records for each buoy class.
var stations = []Station{
	{
		ID:           "GI01SUMO",
		Deployment:   "D00010",
		WMO:          "44078",
		SensorHeight: 5.05,
		HasMetbk2:    true,
		Tags:         dualMetbkTags,
	},
	{
		ID:           "CP10CNSM",
		Deployment:   "D00001",
		WMO:          "41082",
		SensorHeight: 4.05,
		HasMetbk2:    true,
		Tags:         dualMetbkTags,
	},
	{
		ID:           "CP11NOSM",
		Deployment:   "D00001",
		WMO:          "44079",
		SensorHeight: 4.05,
		HasMetbk2:    false,
		Tags:         singleMetbkTags,
	},
	{
		ID:           "CP11SOSM",
		Deployment:   "D00001",
		WMO:          "41083",
		SensorHeight: 4.05,
		HasMetbk2:    false,
		Tags:         singleMetbkTags,
	},
}
