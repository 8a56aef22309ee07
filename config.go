package solar

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _solarconfig{}
)

// _solarconfig is a "hidden" struct, just use `solarConfig`.
type _solarconfig struct {
	AUScale          float64
	AssetDir         string
	HeightmapPath    string
	HeightmapScale   float64
	BeltCount        int
	PathSegments     int
	IncrementalIters int
	ElementsIters    int
	outputDir        string
}

func defaultConfig() _solarconfig {
	return _solarconfig{
		AUScale:          DefaultAUScale,
		AssetDir:         "assets",
		HeightmapPath:    "textures/earthbump1k.jpg",
		HeightmapScale:   0.012,
		BeltCount:        260,
		PathSegments:     128,
		IncrementalIters: 5,
		ElementsIters:    6,
		outputDir:        ".",
	}
}

// solarConfig returns the simulation configuration. Unlike heavier setups the
// core must run with zero installation: when `SOLAR_CONFIG` is unset or the
// conf file is missing, compiled defaults are used.
func solarConfig() _solarconfig {
	if cfgLoaded {
		return config
	}
	config = defaultConfig()
	cfgLoaded = true
	confPath := os.Getenv("SOLAR_CONFIG")
	if confPath == "" {
		return config
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	if err := viper.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "%s/conf.toml not found, using defaults\n", confPath)
		return config
	}
	if v := viper.GetFloat64("world.au_scale"); v > 0 {
		config.AUScale = v
	}
	if v := viper.GetString("assets.directory"); v != "" {
		config.AssetDir = v
	}
	if v := viper.GetString("assets.heightmap"); v != "" {
		config.HeightmapPath = v
	}
	if v := viper.GetFloat64("assets.heightmap_scale"); v > 0 {
		config.HeightmapScale = v
	}
	if v := viper.GetInt("belt.count"); v > 0 {
		config.BeltCount = v
	}
	if v := viper.GetInt("geometry.path_segments"); v > 0 {
		config.PathSegments = v
	}
	if v := viper.GetInt("kepler.incremental_iterations"); v > 0 {
		config.IncrementalIters = v
	}
	if v := viper.GetInt("kepler.elements_iterations"); v > 0 {
		config.ElementsIters = v
	}
	if v := viper.GetString("general.output_path"); v != "" {
		config.outputDir = v
	}
	return config
}
