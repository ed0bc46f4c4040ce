package sndisplay

import (
	"encoding/json"
	"fmt"
	"os"
)

type Configuration struct {
	FileIn           []string `json:"file_in"`
	RedPath          string   `json:"red_path"`
	Run              int      `json:"run"`
	Event            int      `json:"event"`
	Area             int      `json:"area"`
	Crate            int      `json:"crate"`
	OutputDir        string   `json:"output_dir"`
	RangeMin         *float64 `json:"range_min"`
	RangeMax         *float64 `json:"range_max"`
	MultiGroupPolicy string   `json:"multi_group_policy"`
	Verbosity        int      `json:"verbosity"`
	MaxEvents        int      `json:"max_events"`
	NumWorkers       int      `json:"num_workers"`
	Interactive      bool     `json:"interactive"`
	Dump             bool     `json:"dump"`
	NoDB             bool     `json:"no_db"`
	Host             string   `json:"host"`
	User             string   `json:"user"`
	Passwd           string   `json:"pass"`
	DBName           string   `json:"dbname"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

// DefaultInputFile derives the RED file of a run from the RED directory.
func DefaultInputFile(redPath string, run int) string {
	return fmt.Sprintf("%s/snemo_run-%d_red.data.h5", redPath, run)
}

// OutputFilename is the image name of a rendered event.
func OutputFilename(run int, event int) string {
	return fmt.Sprintf("run-%d_event-%d.png", run, event)
}

// LoadConfiguration returns the defaults overridden by the JSON file, if
// any. RED_PATH sets the default RED directory.
func LoadConfiguration(filename string) (Configuration, error) {
	var config Configuration

	// Set default values
	config.FileIn = nil
	config.RedPath = os.Getenv("RED_PATH")
	if config.RedPath == "" {
		config.RedPath = "."
	}
	config.Run = -1
	config.Event = -1
	config.Area = -1
	config.Crate = -1
	config.OutputDir = "."
	config.MultiGroupPolicy = LastWins.String()
	config.Verbosity = 0
	config.MaxEvents = 0
	config.NumWorkers = 1
	config.Interactive = false
	config.Dump = true
	config.NoDB = true
	config.Host = "localhost"
	config.User = "snemo"
	config.Passwd = "readonly"
	config.DBName = "SNCABLING"

	if filename == "" {
		return config, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return config, &ErrOpenFile{Filename: filename, Err: err}
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, fmt.Errorf("error parsing %s: %w", filename, err)
	}
	return config, nil
}

func formatRange(v *float64) string {
	if v == nil {
		return "auto"
	}
	return fmt.Sprintf("%g", *v)
}

func PrintConfiguration(config Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %v", config.FileIn), "config")
	logger.Info(fmt.Sprintf("RED path: %s", config.RedPath), "config")
	logger.Info(fmt.Sprintf("Run: %d", config.Run), "config")
	logger.Info(fmt.Sprintf("Event: %d", config.Event), "config")
	logger.Info(fmt.Sprintf("Commissioning area: %d", config.Area), "config")
	logger.Info(fmt.Sprintf("Crate: %d", config.Crate), "config")
	logger.Info(fmt.Sprintf("Output dir: %s", config.OutputDir), "config")
	logger.Info(fmt.Sprintf("Range: [%s, %s]", formatRange(config.RangeMin), formatRange(config.RangeMax)), "config")
	logger.Info(fmt.Sprintf("Multi group policy: %s", config.MultiGroupPolicy), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Num workers: %d", config.NumWorkers), "config")
	logger.Info(fmt.Sprintf("Interactive: %t", config.Interactive), "config")
	logger.Info(fmt.Sprintf("Dump: %t", config.Dump), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
}

// Inputs returns the RED files to read: the explicit ones, or the default
// file of the run.
func (c Configuration) Inputs() []string {
	if len(c.FileIn) > 0 {
		return c.FileIn
	}
	if c.Run < 0 {
		return nil
	}
	return []string{DefaultInputFile(c.RedPath, c.Run)}
}

// DisplayRange is the fixed or automatic value range of the renders.
func (c Configuration) DisplayRange() Range {
	r := Range{}
	if c.RangeMin != nil {
		r.Min = *c.RangeMin
		r.HasMin = true
	}
	if c.RangeMax != nil {
		r.Max = *c.RangeMax
		r.HasMax = true
	}
	return r
}
