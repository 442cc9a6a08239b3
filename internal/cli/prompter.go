package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quillium/salescope/internal/common"
	"github.com/quillium/salescope/internal/model"
)

// FilterPrompter gathers the optional region and amount filters from the
// operator over a plain line-oriented prompt surface.
type FilterPrompter struct {
	reader *LineReader
	writer io.Writer
}

// NewFilterPrompter creates a prompter over the given reader and writer,
// defaulting to stdin/stdout.
func NewFilterPrompter(reader io.Reader, writer io.Writer) *FilterPrompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &FilterPrompter{
		reader: NewLineReader(reader),
		writer: writer,
	}
}

// ShowFilterOptions prints the distinct regions present in the parsed set
// and the observed amount range, truncated to whole units.
func (p *FilterPrompter) ShowFilterOptions(regions []string, minAmount, maxAmount decimal.Decimal, currency string) {
	content := fmt.Sprintf("Regions: %s\nAmount Range: %s%s - %s%s",
		strings.Join(regions, ", "),
		currency, minAmount.Truncate(0),
		currency, maxAmount.Truncate(0))
	fmt.Fprintln(p.writer, RenderBox("Filter Options Available", content))
}

// PromptFilters asks whether to filter and, if so, gathers an optional
// region and optional inclusive amount bounds. Empty answers mean "no
// bound". A malformed amount aborts the run.
func (p *FilterPrompter) PromptFilters(ctx context.Context) (model.FilterOptions, error) {
	var opts model.FilterOptions

	answer, err := p.ask(ctx, "Do you want to filter data? (y/n)")
	if err != nil {
		return opts, err
	}
	if strings.ToLower(answer) != "y" {
		return opts, nil
	}

	opts.Region, err = p.ask(ctx, "Enter region (or press Enter to skip)")
	if err != nil {
		return opts, err
	}

	opts.MinAmount, err = p.askAmount(ctx, "Enter minimum amount (or press Enter to skip)")
	if err != nil {
		return opts, err
	}

	opts.MaxAmount, err = p.askAmount(ctx, "Enter maximum amount (or press Enter to skip)")
	if err != nil {
		return opts, err
	}

	return opts, nil
}

func (p *FilterPrompter) ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(p.writer, FormatPrompt(prompt))
	return p.reader.ReadLine(ctx)
}

func (p *FilterPrompter) askAmount(ctx context.Context, prompt string) (*decimal.Decimal, error) {
	answer, err := p.ask(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if answer == "" {
		return nil, nil
	}

	amount, err := decimal.NewFromString(answer)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("invalid amount %q", answer), err)
	}
	return &amount, nil
}
