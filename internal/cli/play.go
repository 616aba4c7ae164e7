package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mcoot/shellgame-go/internal/dependencies/random"
	"github.com/mcoot/shellgame-go/internal/model"
	"github.com/mcoot/shellgame-go/internal/services/shuffle"
	"github.com/mcoot/shellgame-go/internal/tui"
)

func newPlayCmd() *cobra.Command {
	var (
		maxRounds int
		seed      uint64
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a shell game locally in the terminal",
		Long: `Play a shell game locally without a server.

Use --seed to replay the same token placement and shuffles.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var rnd random.Random = random.New()
			if cmd.Flags().Changed("seed") {
				rnd = random.NewSeeded(seed)
			}

			engine, err := shuffle.New(rnd, maxRounds)
			if err != nil {
				return err
			}

			program := tea.NewProgram(tui.New(engine),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&maxRounds, "max-rounds", model.DefaultMaxRounds, "Number of shuffles before guessing")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for a reproducible game")

	return cmd
}
