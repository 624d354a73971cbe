package configuration

// LimitsConfig holds the hard safety limits of the power stage and workpiece coil.
type LimitsConfig struct {
	PowerKw     float64 `json:"powerKw"`
	CurrentA    float64 `json:"currentA"`
	CoilTempC   float64 `json:"coilTempC"`
	ModuleTempC float64 `json:"moduleTempC"`
	PcbTempC    float64 `json:"pcbTempC"`
}
