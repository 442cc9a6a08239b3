package main

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/quillium/salescope/internal/cli"
	"github.com/quillium/salescope/internal/common"
	"github.com/quillium/salescope/internal/model"
)

// gatherFilters resolves the filter options either from flags (unattended
// runs) or from the interactive prompt surface.
func gatherFilters(cmd *cobra.Command, parsed []model.Transaction, currency string) (model.FilterOptions, error) {
	flagged := cmd.Flags().Changed("region") ||
		cmd.Flags().Changed("min-amount") ||
		cmd.Flags().Changed("max-amount")
	noInput, _ := cmd.Flags().GetBool("no-input")

	if flagged || noInput {
		return filtersFromFlags(cmd)
	}

	prompter := cli.NewFilterPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if len(parsed) > 0 {
		minAmount, maxAmount := amountRange(parsed)
		prompter.ShowFilterOptions(distinctRegions(parsed), minAmount, maxAmount, currency)
	}

	return prompter.PromptFilters(cmd.Context())
}

func filtersFromFlags(cmd *cobra.Command) (model.FilterOptions, error) {
	var opts model.FilterOptions
	var err error

	opts.Region, _ = cmd.Flags().GetString("region")

	opts.MinAmount, err = amountFlag(cmd, "min-amount")
	if err != nil {
		return opts, err
	}
	opts.MaxAmount, err = amountFlag(cmd, "max-amount")
	if err != nil {
		return opts, err
	}

	return opts, nil
}

func amountFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil, nil
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("invalid --%s value %q", name, raw), err)
	}
	return &amount, nil
}

// distinctRegions returns the sorted distinct non-empty regions of the
// parsed set.
func distinctRegions(parsed []model.Transaction) []string {
	seen := make(map[string]struct{})
	var regions []string
	for _, tx := range parsed {
		if tx.Region == "" {
			continue
		}
		if _, ok := seen[tx.Region]; ok {
			continue
		}
		seen[tx.Region] = struct{}{}
		regions = append(regions, tx.Region)
	}
	sort.Strings(regions)
	return regions
}

// amountRange returns the smallest and largest transaction amounts in the
// parsed set. The caller guarantees a non-empty input.
func amountRange(parsed []model.Transaction) (minAmount, maxAmount decimal.Decimal) {
	minAmount = parsed[0].Amount()
	maxAmount = minAmount
	for _, tx := range parsed[1:] {
		amount := tx.Amount()
		if amount.LessThan(minAmount) {
			minAmount = amount
		}
		if amount.GreaterThan(maxAmount) {
			maxAmount = amount
		}
	}
	return minAmount, maxAmount
}
