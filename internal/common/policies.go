package common

import (
	"fmt"
	"os"
	"path/filepath"

	"banking-ledger-go/internal/ledger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
)

type policyEntry struct {
	Type          string `yaml:"type"`
	MaxWithdrawal string `yaml:"max_withdrawal"`
	MaxTransfer   string `yaml:"max_transfer"`
}

type policiesFile struct {
	Policies []policyEntry `yaml:"policies"`
}

// LoadLimitPolicies reads per-variant limit ceilings from a yaml file. A
// missing file is not an error: the built-in defaults apply. Ceilings are
// decimal strings; "0" or an omitted value means the operation is uncapped.
func LoadLimitPolicies(policyFile string) (map[ledger.AccountType]ledger.LimitPolicy, error) {
	var policyPath string
	if filepath.IsAbs(policyFile) {
		policyPath = policyFile
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		policyPath = filepath.Join(wd, policyFile)
	}

	data, err := os.ReadFile(policyPath)
	if err != nil {
		if os.IsNotExist(err) {
			zap.L().Info("No policy file found, using default account limits", zap.String("file", policyFile))
			return nil, nil
		}
		return nil, fmt.Errorf("unable to read %s: %w", policyFile, err)
	}

	var parsed policiesFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", policyFile, err)
	}

	policies := make(map[ledger.AccountType]ledger.LimitPolicy, len(parsed.Policies))
	for i, entry := range parsed.Policies {
		accountType, err := ledger.ParseAccountType(entry.Type)
		if err != nil {
			return nil, fmt.Errorf("policy at index %d: %w", i, err)
		}

		policy := ledger.LimitPolicy{MaxWithdrawal: decimal.Zero, MaxTransfer: decimal.Zero}
		if entry.MaxWithdrawal != "" {
			if policy.MaxWithdrawal, err = decimal.NewFromString(entry.MaxWithdrawal); err != nil {
				return nil, fmt.Errorf("policy for %s: invalid max_withdrawal %q: %w", entry.Type, entry.MaxWithdrawal, err)
			}
		}
		if entry.MaxTransfer != "" {
			if policy.MaxTransfer, err = decimal.NewFromString(entry.MaxTransfer); err != nil {
				return nil, fmt.Errorf("policy for %s: invalid max_transfer %q: %w", entry.Type, entry.MaxTransfer, err)
			}
		}
		if policy.MaxWithdrawal.IsNegative() || policy.MaxTransfer.IsNegative() {
			return nil, fmt.Errorf("policy for %s: ceilings cannot be negative", entry.Type)
		}

		policies[accountType] = policy
	}

	return policies, nil
}
