package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ppmedit/pkg/errors"
	"github.com/matzehuels/ppmedit/pkg/ppm"
)

// checkCommand validates images without writing anything.
func (c *CLI) checkCommand() *cobra.Command {
	var full bool

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Validate PPM files",
		Long: `Validate the header of each file (magic "P3", positive dimensions,
maximum value 255). With --full every channel value is checked as well.`,
		Args:              usageArgs(cobra.MinimumNArgs(1)),
		ValidArgsFunction: completePPMFiles(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				h, err := c.checkFile(path, full)
				if err != nil {
					PrintError(c.Out, "%s: %s", path, errors.UserMessage(err))
					failed++
					continue
				}
				printSuccess(c.Out, "%s", path)
				printKeyValue(c.Out, "  size", fmt.Sprintf("%d×%d", h.Cols, h.Rows))
				printKeyValue(c.Out, "  max", strconv.Itoa(h.MaxValue))
			}
			if failed > 0 {
				return errors.New(errors.ErrCodeMalformed, "%d of %d files invalid", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "validate every channel value, not just the header")
	return cmd
}

// checkFile validates the header of path, or the whole image when full is set.
func (c *CLI) checkFile(path string, full bool) (ppm.Header, error) {
	f, err := openInput(path)
	if err != nil {
		return ppm.Header{}, err
	}
	defer f.Close()

	src := ppm.NewTokenizer(f)
	if !full {
		return ppm.ValidateHeader(src)
	}
	g, err := ppm.Parse(src)
	if err != nil {
		return ppm.Header{}, err
	}
	return ppm.Header{Cols: g.Cols(), Rows: g.Rows(), MaxValue: ppm.MaxValue}, nil
}
