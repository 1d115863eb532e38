package pricing

import (
	"context"

	"github.com/de-tools/cost-lens/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// UnitPrices holds per-GB-month rates for the three backup storage tiers.
type UnitPrices struct {
	Standard         float64 `mapstructure:"standard"`
	InfrequentAccess float64 `mapstructure:"infrequent_access"`
	Archive          float64 `mapstructure:"archive"`
}

// Store resolves the tunable price inputs of the savings engine. Live pricing
// retrieval is out of scope; rates come from built-in defaults, optionally
// overridden by a config file.
type Store interface {
	UnitPrices(ctx context.Context, kind domain.ResourceType) UnitPrices
	DBInstanceMonthlyCost(class string) float64
}

type ratesConfig struct {
	EBS         UnitPrices         `mapstructure:"ebs"`
	RDS         UnitPrices         `mapstructure:"rds"`
	DBInstances map[string]float64 `mapstructure:"db_instances"`
}

var defaults = ratesConfig{
	EBS: UnitPrices{Standard: 0.05, InfrequentAccess: 0.0125, Archive: 0.004},
	RDS: UnitPrices{Standard: 0.095, InfrequentAccess: 0.024, Archive: 0.008},
	DBInstances: map[string]float64{
		"db.t3.micro": 15, "db.t3.small": 30, "db.t3.medium": 60,
		"db.t3.large": 120, "db.t3.xlarge": 240, "db.t3.2xlarge": 480,
		"db.r5.large": 180, "db.r5.xlarge": 360, "db.r5.2xlarge": 720,
		"db.r5.4xlarge": 1440, "db.r5.8xlarge": 2880,
	},
}

// defaultDBInstanceCost is used for instance classes absent from the table.
const defaultDBInstanceCost = 100.0

type store struct {
	rates ratesConfig
}

// NewStore returns a store backed by the built-in default rates.
func NewStore() Store {
	return &store{rates: defaults}
}

// NewStoreFromFile loads rate overrides from the given config file. A missing
// or unreadable file degrades to the built-in defaults; the degradation is
// logged so reduced estimate accuracy is never silent.
func NewStoreFromFile(ctx context.Context, path string) Store {
	logger := zerolog.Ctx(ctx)

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		logger.Warn().Err(err).Str("path", path).
			Msg("pricing overrides unavailable, falling back to default rates")
		return NewStore()
	}

	rates := defaults
	rates.DBInstances = make(map[string]float64, len(defaults.DBInstances))
	for class, cost := range defaults.DBInstances {
		rates.DBInstances[class] = cost
	}
	if err := v.Unmarshal(&rates); err != nil {
		logger.Warn().Err(err).Str("path", path).
			Msg("pricing overrides unparsable, falling back to default rates")
		return NewStore()
	}

	logger.Info().Str("path", path).Msg("loaded pricing overrides")
	return &store{rates: rates}
}

func (s *store) UnitPrices(_ context.Context, kind domain.ResourceType) UnitPrices {
	switch kind {
	case domain.ResourceTypeDBInstance, domain.ResourceTypeDBSnapshot:
		return s.rates.RDS
	default:
		return s.rates.EBS
	}
}

func (s *store) DBInstanceMonthlyCost(class string) float64 {
	if cost, ok := s.rates.DBInstances[class]; ok {
		return cost
	}
	return defaultDBInstanceCost
}
