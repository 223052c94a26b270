package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/taxgraph/internal/tui"
)

func tuiCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Explore the marginal rate interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := scenarioFromFlags(cmd)
			if err != nil {
				return err
			}
			engine, flush, err := newEngine(cmd)
			if err != nil {
				return err
			}
			defer flush()

			// wages default to the standard deduction
			if !cmd.Flags().Changed("wages") {
				if scenario.Wages, err = engine.DefaultWages(scenario.FilingStatus); err != nil {
					return err
				}
			}

			model, err := tui.NewModel(engine, scenario)
			if err != nil {
				return err
			}
			p := tea.NewProgram(
				model,
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	addScenarioFlags(cmd)
	return cmd
}
