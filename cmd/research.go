package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/snapshot/internal/research"
	"github.com/sells-group/snapshot/internal/session"
)

var (
	researchMode        string
	researchDives       []string
	researchCompetitors []string
	researchSources     bool
)

var researchCmd = &cobra.Command{
	Use:   "research <company>",
	Short: "Generate a company snapshot",
	Long:  "Runs the research flow for one company and prints the report as JSON. Deep-dive sections requested with --deep-dive run concurrently after the initial report.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		company := args[0]

		if researchMode != "" {
			cfg.Research.Mode = researchMode
		}
		if err := cfg.Validate("research"); err != nil {
			return err
		}
		mode, err := research.ParseMode(cfg.Research.Mode)
		if err != nil {
			return err
		}

		sections := make([]session.Section, 0, len(researchDives))
		for _, name := range researchDives {
			section, err := session.ParseSection(name)
			if err != nil {
				return err
			}
			sections = append(sections, section)
		}

		ctx := cmd.Context()
		primary, validator, err := buildProviders(ctx)
		if err != nil {
			return err
		}

		sess := session.New()
		o := research.New(primary, validator, sess, research.WithStageCallback(func(s research.Stage) {
			fmt.Fprintln(cmd.ErrOrStderr(), s.Message())
		}))

		if _, err := o.Run(ctx, company, mode); err != nil {
			return err
		}

		if len(sections) > 0 {
			g, gctx := errgroup.WithContext(ctx)
			for _, section := range sections {
				g.Go(func() error {
					var selected []string
					if section == session.SectionCompetitors {
						selected = researchCompetitors
					}
					_, err := o.DeepDive(gctx, section, selected)
					return err
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(sess.Report()); err != nil {
			return eris.Wrap(err, "cmd: encode report")
		}
		if researchSources {
			if err := enc.Encode(sess.Sources()); err != nil {
				return eris.Wrap(err, "cmd: encode sources")
			}
		}

		return nil
	},
}

func init() {
	researchCmd.Flags().StringVar(&researchMode, "mode", "", "research mode: strict or lenient (default from config)")
	researchCmd.Flags().StringSliceVar(&researchDives, "deep-dive", nil, "sections to enrich: competitors, funding, team")
	researchCmd.Flags().StringSliceVar(&researchCompetitors, "competitors", nil, "competitor names for the competitors deep dive (default: reported direct competitors)")
	researchCmd.Flags().BoolVar(&researchSources, "sources", false, "also print the source ledger")
	rootCmd.AddCommand(researchCmd)
}
