package cmd

import (
	"bytes"
	"fmt"

	"github.com/LucasPMagno/induction-shrink-fit/cmd/global"
	"github.com/LucasPMagno/induction-shrink-fit/internal/configuration"
	"github.com/LucasPMagno/induction-shrink-fit/internal/fusion"
	"github.com/LucasPMagno/induction-shrink-fit/internal/ui"
	"github.com/guptarohit/asciigraph"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var sensorsCmd = &cobra.Command{
	Use:   "sensors",
	Short: "Print the configured sensor conversion curves to console",
	Run: func(cmd *cobra.Command, args []string) {
		setupUi()

		configPath := configuration.DetectConfigFile()
		ui.Info("Using configuration file at: %s", configPath)
		configuration.LoadConfig()

		fusionConfig := configuration.CurrentConfig.Fusion

		printCoilCurve(fusionConfig)
		ui.Printfln("")
		ui.Printfln("")
		printModuleCurve(fusionConfig)
	},
}

func printCoilCurve(config configuration.FusionConfig) {
	ntc := fusion.PullupNtc{
		Config:     config.CoilNtc,
		FullScaleV: config.MuxFullScaleV,
	}

	ui.Printfln("coil thermistor")
	printSensorTable([][]string{
		{"Series resistance", fmt.Sprintf("%.0f Ohm", config.CoilNtc.SeriesResistance)},
		{"Beta", fmt.Sprintf("%.0f K", config.CoilNtc.Beta)},
		{"R0", fmt.Sprintf("%.0f Ohm @ %.0f °C", config.CoilNtc.R0, config.CoilNtc.T0C)},
	})

	// sweep the sense voltage across the usable divider range
	var values []float64
	steps := 100
	for i := 1; i < steps; i++ {
		voltage := config.MuxFullScaleV * float64(i) / float64(steps)
		temp, disconnected := ntc.Convert(voltage)
		if disconnected {
			continue
		}
		values = append(values, temp)
	}

	caption := "Temperature / Sense voltage"
	graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
	ui.Printfln(graph)
}

func printModuleCurve(config configuration.FusionConfig) {
	decoder := fusion.DutyDecoder{Config: config.Module}

	ui.Printfln("module temperature sensor")
	printSensorTable([][]string{
		{"Duty range", fmt.Sprintf("%.2f .. %.2f", config.Module.MinDuty, config.Module.MaxDuty)},
		{"Calibration", fmt.Sprintf("%.2f -> %.2fV, %.2f -> %.2fV",
			config.Module.LowDuty, config.Module.LowDutyV,
			config.Module.HighDuty, config.Module.HighDutyV)},
		{"Beta", fmt.Sprintf("%.0f K", config.Module.Beta)},
	})

	var values []float64
	steps := 100
	span := config.Module.MaxDuty - config.Module.MinDuty
	for i := 0; i <= steps; i++ {
		duty := config.Module.MinDuty + span*float64(i)/float64(steps)
		values = append(values, decoder.TempFromDuty(duty))
	}

	caption := "Temperature / Duty cycle"
	graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
	ui.Printfln(graph)
}

func printSensorTable(rows [][]string) {
	tab := table.Table{
		Headers: []string{"", ""},
		Rows:    rows,
	}
	var buf bytes.Buffer
	tableErr := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           !global.NoColor,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if tableErr != nil {
		panic(tableErr)
	}
	ui.Printfln(buf.String())
}

func init() {
	rootCmd.AddCommand(sensorsCmd)
}
