package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/komsit37/fscore/pkg/fscore/columns"
	"github.com/komsit37/fscore/pkg/fscore/config"
	"github.com/komsit37/fscore/pkg/fscore/locale"
	"github.com/komsit37/fscore/pkg/fscore/pipeline"
	"github.com/komsit37/fscore/pkg/fscore/render"
)

func newScoreCmd(conf func() *config.Config) *cobra.Command {
	var (
		format   string
		lang     string
		cols     []string
		sets     []string
		noColor  bool
		pretty   bool
		filterBy string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "score <name or ticker>",
		Short: "Resolve a company and print its fundamentals score",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := conf()
			query := strings.Join(args, " ")

			if !cmd.Flags().Changed("format") {
				format = cfg.Output.Format
			}
			if !cmd.Flags().Changed("lang") {
				lang = cfg.Output.Lang
			}
			cat := locale.Match(lang)

			renderer, err := render.ForFormat(format)
			if err != nil {
				return err
			}
			if err := checkOutput(format, outPath); err != nil {
				return err
			}

			selected := cols
			if len(sets) > 0 {
				expanded, err := columns.ExpandSets(sets)
				if err != nil {
					return err
				}
				selected = append(expanded, selected...)
			}
			if len(selected) == 0 {
				selected = cfg.Output.Columns
			}

			resolver, err := buildResolver(cfg, filterBy)
			if err != nil {
				return err
			}

			return runScore(cmd.Context(), resolver, renderer, query, outPath, cmd.OutOrStdout(), pipeline.ExecuteOptions{
				Columns:     selected,
				Color:       cfg.Output.Color && !noColor && outPath == "",
				PrettyJSON:  pretty,
				MaxColWidth: colWidth(cfg.Output.MaxColWidth, terminalWidth()),
				Catalog:     cat,
			})
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: "+strings.Join(render.Formats(), ", "))
	cmd.Flags().StringVar(&lang, "lang", "en", "label language (en, de)")
	cmd.Flags().StringSliceVarP(&cols, "columns", "c", nil, "columns to show (criterion, key, value, score, max, inputs)")
	cmd.Flags().StringSliceVar(&sets, "set", nil, "column sets to include (export, detail)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	cmd.Flags().StringVar(&filterBy, "filter", "", "candidate filter on exchange or quote type (glob, /regex/ or a,b,c)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write output to file instead of stdout")
	return cmd
}
