package cli

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/shellgame-go/internal/api/request"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameShuffleCmd())
	cmd.AddCommand(newGameGuessCmd())
	cmd.AddCommand(newGameResetCmd())
	cmd.AddCommand(newGameDeleteCmd())
	cmd.AddCommand(newGameWatchCmd())

	return cmd
}

func gamePath(id string, action string) string {
	if action == "" {
		return fmt.Sprintf("/api/v1/games/%s", id)
	}
	return fmt.Sprintf("/api/v1/games/%s/%s", id, action)
}

// asOwner attaches the saved owner token for a game
func asOwner(id string) *Client {
	client.SetToken(cfg.TokenFor(id))
	return client
}

func newGameCreateCmd() *cobra.Command {
	var maxRounds int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game and save its owner token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req request.CreateGameRequest
			if cmd.Flags().Changed("max-rounds") {
				req.MaxRounds = &maxRounds
			}

			var result CreateGameResult
			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.Game.ID, result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&maxRounds, "max-rounds", 0, "Number of shuffles before guessing (server default if unset)")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get the visible state of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Get(gamePath(args[0], ""), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Hide the token under a random cup and begin shuffling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Snapshot
			if err := asOwner(args[0]).Post(gamePath(args[0], "start"), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameShuffleCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "shuffle <id>",
		Short: "Apply one shuffle, or every remaining shuffle with --all",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := gamePath(args[0], "shuffle")
			if all {
				path += "?all=true"
			}

			var result ShuffleResult
			if err := asOwner(args[0]).Post(path, nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Run all remaining shuffles")

	return cmd
}

func newGameGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <id> <slot>",
		Short: "Guess which slot hides the token (0, 1 or 2)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid slot: %w", err)
			}

			req := request.GuessRequest{Slot: &slot}
			var result GuessResult
			if err := asOwner(args[0]).Post(gamePath(args[0], "guess"), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Return the game to its not-started state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Snapshot
			if err := asOwner(args[0]).Post(gamePath(args[0], "reset"), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := asOwner(args[0]).Delete(gamePath(args[0], "")); err != nil {
				return err
			}
			if err := cfg.ForgetToken(args[0]); err != nil {
				return fmt.Errorf("failed to update token file: %w", err)
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Game deleted")
			return nil
		},
	}
}

func newGameWatchCmd() *cobra.Command {
	var untilResolved bool

	cmd := &cobra.Command{
		Use:   "watch <id>",
		Short: "Follow a game's state as it changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output, cmd.OutOrStdout())

			// Ctrl+C disconnects cleanly
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			var decodeErr error
			err := client.Stream(ctx, gamePath(args[0], "events"), func(event string, data []byte) bool {
				switch event {
				case "state":
					var state Snapshot
					if decodeErr = json.Unmarshal(data, &state); decodeErr != nil {
						return false
					}
					out.Print(state)
					return !(untilResolved && state.Phase == "resolved")
				case "deleted":
					out.PrintMessage("Game deleted")
					return false
				}
				return true
			})
			if err != nil {
				return err
			}
			if decodeErr != nil {
				return fmt.Errorf("failed to parse event: %w", decodeErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&untilResolved, "until-resolved", false, "Stop once the game is resolved")

	return cmd
}
