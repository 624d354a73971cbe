package configuration

import (
	"github.com/LucasPMagno/induction-shrink-fit/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"os"
	"time"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	Limits     LimitsConfig     `json:"limits"`
	Control    ControlConfig    `json:"control"`
	Fusion     FusionConfig     `json:"fusion"`
	Safety     SafetyConfig     `json:"safety"`
	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("shrinkfit")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/shrinkfit/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbpath", "/etc/shrinkfit/shrinkfit.db")

	viper.SetDefault("limits.powerKw", 10.0)
	viper.SetDefault("limits.currentA", 150.0)
	viper.SetDefault("limits.coilTempC", 80.0)
	viper.SetDefault("limits.moduleTempC", 35.0)
	viper.SetDefault("limits.pcbTempC", 85.0)

	viper.SetDefault("control.tickRate", 10*time.Millisecond)
	viper.SetDefault("control.deadtimeNs", 512)
	viper.SetDefault("control.baseFrequencyHz", 29_700.0)
	viper.SetDefault("control.minFrequencyHz", 26_000.0)
	viper.SetDefault("control.maxFrequencyHz", 32_000.0)
	viper.SetDefault("control.runDebounce", 80*time.Millisecond)
	viper.SetDefault("control.targetToleranceC", 2.0)
	viper.SetDefault("control.powerKp", 60.0)
	viper.SetDefault("control.powerKi", 8.0)
	viper.SetDefault("control.powerIntegratorLimit", 2000.0)
	viper.SetDefault("control.tempKp", 0.08)
	viper.SetDefault("control.tempKi", 0.03)
	viper.SetDefault("control.tempErrorFloorC", -20.0)

	viper.SetDefault("fusion.smoothingFactor", 0.2)
	viper.SetDefault("fusion.pairsPerWindow", 1024)
	viper.SetDefault("fusion.adcRefV", 3.3)
	viper.SetDefault("fusion.vdcGain", 0.0018615088)
	viper.SetDefault("fusion.currentCenterV", 1.25)
	viper.SetDefault("fusion.currentSensitivityAPerV", 1280.0)
	viper.SetDefault("fusion.maxVoltageV", 1000.0)
	viper.SetDefault("fusion.maxCurrentA", 900.0)
	viper.SetDefault("fusion.maxPowerKw", 20.0)

	viper.SetDefault("fusion.muxPollingRate", 50*time.Millisecond)
	viper.SetDefault("fusion.muxFullScaleV", 5.0)
	viper.SetDefault("fusion.coilTempChannel", 6)
	viper.SetDefault("fusion.pcbTempChannel", 3)
	viper.SetDefault("fusion.coilNtc.seriesResistance", 10_000.0)
	viper.SetDefault("fusion.coilNtc.beta", 3950.0)
	viper.SetDefault("fusion.coilNtc.r0", 10_000.0)
	viper.SetDefault("fusion.coilNtc.t0C", 25.0)
	viper.SetDefault("fusion.pcbSensor.offsetV", 0.5)
	viper.SetDefault("fusion.pcbSensor.voltsPerDegree", 0.01)
	viper.SetDefault("fusion.pcbSensor.minTempC", -40.0)
	viper.SetDefault("fusion.pcbSensor.maxTempC", 150.0)

	viper.SetDefault("fusion.irPollingRate", 100*time.Millisecond)

	viper.SetDefault("fusion.modulePollingRate", 50*time.Millisecond)
	viper.SetDefault("fusion.module.dutySamples", 128)
	viper.SetDefault("fusion.module.minDuty", 0.05)
	viper.SetDefault("fusion.module.maxDuty", 0.95)
	viper.SetDefault("fusion.module.lowDuty", 0.10)
	viper.SetDefault("fusion.module.lowDutyV", 4.5)
	viper.SetDefault("fusion.module.highDuty", 0.88)
	viper.SetDefault("fusion.module.highDutyV", 0.6)
	viper.SetDefault("fusion.module.sourceCurrentA", 0.000203)
	viper.SetDefault("fusion.module.seriesResistance", 0.0)
	viper.SetDefault("fusion.module.beta", 3468.0)
	viper.SetDefault("fusion.module.r0", 5_000.0)
	viper.SetDefault("fusion.module.t0C", 25.0)

	viper.SetDefault("safety.pollingRate", 25*time.Millisecond)
	viper.SetDefault("safety.powerOvershootMargin", 1.05)
	viper.SetDefault("safety.warningInterval", 2*time.Second)
	viper.SetDefault("safety.tempWarningMarginC", 5.0)
	viper.SetDefault("safety.powerWarningRatio", 0.9)

	viper.SetDefault("api.enabled", true)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9410)

	viper.SetDefault("statistics.enabled", true)
	viper.SetDefault("statistics.port", 9411)
}

// DetectConfigFile returns the path of the config file that is used, without reading it.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// running on defaults is fine, the bench simulator needs no config
			return "(defaults, no config file found)"
		}
		ui.Fatal("Error reading config file, %s", err)
	}
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	err := viper.Unmarshal(&CurrentConfig)
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
