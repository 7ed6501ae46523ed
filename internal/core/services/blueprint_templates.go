package services

import (
	"fmt"
	"os"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// BlueprintTemplates is the document root of a blueprint template file.
type BlueprintTemplates struct {
	Blueprints []BlueprintTemplate `yaml:"blueprints" validate:"required,min=1,dive"`
}

// BlueprintTemplate declares a blueprint whose lines take their amounts from fixed
// values or from call parameters.
type BlueprintTemplate struct {
	Name        string                  `yaml:"name" validate:"required"`
	Description string                  `yaml:"description"`
	Lines       []BlueprintTemplateLine `yaml:"lines" validate:"required,min=2,dive"`
}

// BlueprintTemplateLine is one line of a template. Amount is a fixed decimal; Param names
// the call parameter holding the amount, optionally scaled by Ratio.
type BlueprintTemplateLine struct {
	Account     string                 `yaml:"account" validate:"required"`
	TxType      domain.TransactionType `yaml:"tx_type" validate:"required,oneof=debit credit"`
	Amount      string                 `yaml:"amount" validate:"required_without=Param"`
	Param       string                 `yaml:"param" validate:"required_without=Amount"`
	Ratio       string                 `yaml:"ratio"`
	Description string                 `yaml:"description"`
}

// ParseBlueprintTemplates decodes and validates a template document.
func ParseBlueprintTemplates(data []byte) ([]BlueprintTemplate, error) {
	var doc BlueprintTemplates
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: blueprint templates: %v", apperrors.ErrValidation, err)
	}
	if err := validate.Struct(doc); err != nil {
		return nil, fmt.Errorf("%w: blueprint templates: %v", apperrors.ErrValidation, err)
	}
	for _, t := range doc.Blueprints {
		for i, l := range t.Lines {
			for _, v := range []string{l.Amount, l.Ratio} {
				if v == "" {
					continue
				}
				if _, err := decimal.NewFromString(v); err != nil {
					return nil, fmt.Errorf("%w: blueprint %s line %d: %v", domain.ErrInvalidAmount, t.Name, i, err)
				}
			}
		}
	}
	return doc.Blueprints, nil
}

// LoadBlueprintTemplates reads and parses a template file.
func LoadBlueprintTemplates(path string) ([]BlueprintTemplate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blueprints %s: %w", path, err)
	}
	return ParseBlueprintTemplates(data)
}

// RegisterTemplates registers every template in the library.
func RegisterTemplates(lib portssvc.IOLibrarySvc, templates []BlueprintTemplate, precision int32) error {
	for _, t := range templates {
		if err := lib.Register(t.Name, t.Func(precision)); err != nil {
			return err
		}
	}
	return nil
}

// Func returns the blueprint function of the template.
func (t BlueprintTemplate) Func(precision int32) domain.BlueprintFunc {
	return func(params domain.BlueprintParams) (*domain.Blueprint, error) {
		bp := domain.NewBlueprint(t.Name, precision)
		for _, l := range t.Lines {
			amount, err := l.amount(params)
			if err != nil {
				return nil, err
			}
			desc := l.Description
			if desc == "" {
				desc = params.String("description")
			}
			if l.TxType == domain.Debit {
				err = bp.Debit(l.Account, amount, desc)
			} else {
				err = bp.Credit(l.Account, amount, desc)
			}
			if err != nil {
				return nil, err
			}
		}
		return bp, nil
	}
}

func (l BlueprintTemplateLine) amount(params domain.BlueprintParams) (decimal.Decimal, error) {
	var amount decimal.Decimal
	if l.Param != "" {
		v, err := params.Decimal(l.Param)
		if err != nil {
			return decimal.Zero, err
		}
		amount = v
	} else {
		v, err := decimal.NewFromString(l.Amount)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
		}
		amount = v
	}
	if l.Ratio != "" {
		ratio, err := decimal.NewFromString(l.Ratio)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: ratio: %v", domain.ErrInvalidAmount, err)
		}
		amount = amount.Mul(ratio)
	}
	return amount, nil
}
