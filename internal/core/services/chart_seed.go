package services

import (
	"fmt"
	"os"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// ParseChartSeed decodes a chart of accounts definition. YAML is a superset of JSON,
// so both encodings are accepted.
func ParseChartSeed(data []byte) (domain.ChartSeed, error) {
	var seed domain.ChartSeed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return seed, fmt.Errorf("%w: chart definition: %v", apperrors.ErrValidation, err)
	}
	if err := validateChartSeed(seed); err != nil {
		return seed, err
	}
	return seed, nil
}

// LoadChartSeed reads and parses a chart of accounts file.
func LoadChartSeed(path string) (domain.ChartSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.ChartSeed{}, fmt.Errorf("read chart %s: %w", path, err)
	}
	return ParseChartSeed(data)
}

func validateChartSeed(seed domain.ChartSeed) error {
	if err := validate.Struct(seed); err != nil {
		return fmt.Errorf("%w: chart definition: %v", apperrors.ErrValidation, err)
	}
	return seed.Validate()
}
