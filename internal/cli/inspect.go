package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/fieldshape/mlca/pkg/complexity"
	apperrors "github.com/fieldshape/mlca/pkg/errors"
	"github.com/fieldshape/mlca/pkg/rtplan"
)

// inspectCommand creates the inspect command: a detailed single-plan view.
func (c *CLI) inspectCommand() *cobra.Command {
	scoring := c.Config.Scoring
	showBeams := false

	cmd := &cobra.Command{
		Use:   "inspect <plan-file>",
		Short: "Show the scored breakdown of one plan",
		Long: `Inspect parses a single plan export, scores it, and prints the plan
identity with a per-fraction-group breakdown. With --beams, every beam's
score is listed as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0], scoring, showBeams)
		},
	}

	cmd.Flags().Float64Var(&scoring.XWeight, "xw", scoring.XWeight, "complexity weight, x axis")
	cmd.Flags().Float64Var(&scoring.YWeight, "yw", scoring.YWeight, "complexity weight, y axis")
	cmd.Flags().Float64Var(&scoring.MaxFieldSizeX, "xs", scoring.MaxFieldSizeX, "maximum field size in mm, x axis")
	cmd.Flags().Float64Var(&scoring.MaxFieldSizeY, "ys", scoring.MaxFieldSizeY, "maximum field size in mm, y axis")
	cmd.Flags().BoolVar(&showBeams, "beams", false, "list per-beam scores")

	return cmd
}

func (c *CLI) runInspect(path string, scoring complexity.Options, showBeams bool) error {
	plan, class, err := rtplan.Classify(path)
	if err != nil {
		printError("%s: %s", class, apperrors.UserMessage(err))
		return err
	}

	result, err := complexity.EvaluatePlan(plan, scoring)
	if err != nil {
		return err
	}

	printKeyValue("Patient", plan.PatientName)
	printKeyValue("MRN", plan.PatientID)
	printKeyValue("Plan", plan.Name)
	printKeyValue("TPS", plan.TPS)
	printKeyValue("Study UID", plan.StudyUID)
	printKeyValue("SOP UID", plan.SOPUID)
	printKeyValue("Score", fmt.Sprintf("%0.3f", result.Score))
	printNewline()

	fmt.Println(fxGroupTable(plan, result).Render())
	if showBeams {
		printNewline()
		fmt.Println(beamTable(result).Render())
	}
	return nil
}

// fxGroupTable renders one row per fraction group.
func fxGroupTable(plan *rtplan.Plan, result *complexity.PlanResult) *table.Table {
	rows := [][]string{}
	for i, gr := range result.FxGroups {
		fractions := ""
		cps := ""
		if i < len(plan.FxGroups) {
			fractions = strconv.Itoa(plan.FxGroups[i].Fractions)
			cps = strconv.Itoa(plan.FxGroups[i].ControlPointCount())
		}
		rows = append(rows, []string{
			strconv.Itoa(gr.Number),
			fractions,
			fmt.Sprintf("%0.1f", gr.MU),
			strconv.Itoa(len(gr.Beams)),
			cps,
			fmt.Sprintf("%0.3f", gr.Score),
		})
	}
	return newTable().
		Headers("Fx Group", "Fractions", "MU", "Beams", "Control Points", "Score").
		Rows(rows...)
}

// beamTable renders one row per beam across all fraction groups.
func beamTable(result *complexity.PlanResult) *table.Table {
	rows := [][]string{}
	for _, gr := range result.FxGroups {
		for _, br := range gr.Beams {
			status := fmt.Sprintf("%0.3f", br.Score)
			if br.Failed() {
				status = StyleWarning.Render(br.Err)
			}
			rows = append(rows, []string{
				strconv.Itoa(gr.Number),
				strconv.Itoa(br.Number),
				br.Name,
				fmt.Sprintf("%0.1f", br.MeterSet),
				status,
			})
		}
	}
	return newTable().
		Headers("Fx Group", "Beam", "Name", "MU", "Score").
		Rows(rows...)
}

// newTable applies the shared table chrome.
func newTable() *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
}
