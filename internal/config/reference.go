package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// GSTRate is one slab of the GST rate schedule.
type GSTRate struct {
	Value float64 `json:"value" mapstructure:"value"`
	Label string  `json:"label" mapstructure:"label"`
}

// HSNCode is one entry of the HSN classification catalog.
type HSNCode struct {
	Code        string `json:"code" mapstructure:"code"`
	Description string `json:"description" mapstructure:"description"`
}

// ReferenceConfig holds the master-data catalogs served by the reference
// endpoints. The defaults cover the standard slabs and the knitted-garment
// HSN chapter; deployments can override both via reference.yml.
type ReferenceConfig struct {
	GSTRates []GSTRate `mapstructure:"gstRates"`
	HSNCodes []HSNCode `mapstructure:"hsnCodes"`
}

func DefaultReferenceConfig() ReferenceConfig {
	return ReferenceConfig{
		GSTRates: []GSTRate{
			{Value: 0, Label: "0%"},
			{Value: 5, Label: "5%"},
			{Value: 12, Label: "12%"},
			{Value: 18, Label: "18%"},
			{Value: 28, Label: "28%"},
		},
		HSNCodes: []HSNCode{
			{Code: "6101", Description: "Men's or boys' overcoats, anoraks, windcheaters"},
			{Code: "6102", Description: "Women's or girls' overcoats, anoraks, windcheaters"},
			{Code: "6103", Description: "Men's or boys' suits, ensembles, jackets, trousers"},
			{Code: "6104", Description: "Women's or girls' suits, ensembles, jackets, dresses, skirts"},
			{Code: "6105", Description: "Men's or boys' shirts, knitted or crocheted"},
			{Code: "6106", Description: "Women's or girls' blouses, shirts, knitted or crocheted"},
			{Code: "6109", Description: "T-shirts, singlets and other vests, knitted or crocheted"},
			{Code: "6110", Description: "Jerseys, pullovers, cardigans, waistcoats"},
			{Code: "6111", Description: "Babies' garments and clothing accessories"},
			{Code: "6112", Description: "Track suits, ski suits and swimwear, knitted"},
			{Code: "6114", Description: "Other garments, knitted or crocheted"},
			{Code: "6115", Description: "Panty hose, tights, stockings, socks"},
			{Code: "6116", Description: "Gloves, mittens and mitts, knitted or crocheted"},
			{Code: "6117", Description: "Other made up clothing accessories"},
		},
	}
}

// ReferenceHolder exposes the current reference catalogs and hot-reloads
// them when the config file changes.
type ReferenceHolder struct {
	current atomic.Value // holds ReferenceConfig
}

func NewReferenceHolder() (*ReferenceHolder, error) {
	v := viper.New()

	v.SetConfigName("reference")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/billbook")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BILLBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := DefaultReferenceConfig()
	fileFound := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileFound = false
	}
	if fileFound {
		if err := v.UnmarshalKey("reference", &cfg); err != nil {
			return nil, err
		}
		if err := validateReferenceConfig(cfg); err != nil {
			return nil, err
		}
	}

	holder := &ReferenceHolder{}
	holder.current.Store(cfg)

	if fileFound {
		v.WatchConfig()
		v.OnConfigChange(func(e fsnotify.Event) {
			updated := DefaultReferenceConfig()
			if err := v.UnmarshalKey("reference", &updated); err != nil {
				log.Printf("[reference-config] reload failed: %v", err)
				return
			}
			if err := validateReferenceConfig(updated); err != nil {
				log.Printf("[reference-config] invalid config ignored: %v", err)
				return
			}
			holder.current.Store(updated)
			log.Printf("[reference-config] reloaded from %s", e.Name)
		})
	}

	return holder, nil
}

func (h *ReferenceHolder) Get() ReferenceConfig {
	return h.current.Load().(ReferenceConfig)
}

func validateReferenceConfig(cfg ReferenceConfig) error {
	if len(cfg.GSTRates) == 0 {
		return errors.New("reference.gstRates cannot be empty")
	}
	if len(cfg.HSNCodes) == 0 {
		return errors.New("reference.hsnCodes cannot be empty")
	}
	return nil
}
