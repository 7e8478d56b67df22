package autotag

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kimono-rental/kimono/internal/application/tag/autotag"
	"github.com/kimono-rental/kimono/internal/application/tag/usecases"
	"github.com/kimono-rental/kimono/internal/infrastructure/database"
	"github.com/kimono-rental/kimono/internal/interfaces/cli/clienv"
	httpRouter "github.com/kimono-rental/kimono/internal/interfaces/http"
)

var (
	env       string
	rulesPath string
	actorID   string
	dryRun    bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autotag",
		Short: "Attach keyword-matched tags to every active plan",
		Long: `Scan every active plan's name and description against the keyword rules
and add the matching tags. Tags already on a plan are never removed.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&rulesPath, "rules", "r", "", "Path to the rules file (default: autotag.rules_path from config)")
	cmd.Flags().StringVar(&actorID, "actor", "system:autotag", "Recorded as the adder of every new plan tag")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := clienv.LoadWithDatabase(clienv.Resolve(env))
	if err != nil {
		return err
	}
	defer database.Close()

	path := rulesPath
	if path == "" {
		path = cfg.AutoTag.RulesPath
	}
	rules, err := autotag.LoadRules(path)
	if err != nil {
		return err
	}

	container, err := httpRouter.NewContainer(database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build container: %w", err)
	}
	defer container.Shutdown()

	log.Infow("running auto-tag", "rules", len(rules.Rules), "path", path, "dry_run", dryRun)

	result, err := container.AutoTagPlans().Execute(context.Background(), usecases.AutoTagCommand{
		Rules:   rules.Rules,
		ActorID: actorID,
		DryRun:  dryRun,
	})
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), result, dryRun)

	if len(result.Failed) > 0 {
		return fmt.Errorf("%d plan(s) failed to tag", len(result.Failed))
	}
	return nil
}

func printResult(out io.Writer, result *usecases.AutoTagResult, dryRun bool) {
	if dryRun {
		fmt.Fprintln(out, "Dry run: nothing was written.")
	}
	fmt.Fprintf(out, "Plans scanned: %d\nPlans changed: %d\nTags attached: %d\n\n",
		result.PlansScanned, result.PlansChanged, result.TagsAttached)

	if len(result.Changes) > 0 {
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PLAN\tNAME\tADDED")
		for _, c := range result.Changes {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", c.PlanID, c.PlanName, strings.Join(c.Added, ","))
		}
		_ = tw.Flush()
		fmt.Fprintln(out)
	}

	for _, r := range result.UnresolvedRules {
		fmt.Fprintf(out, "unresolved rule: category=%q tag=%q\n", r.Category, r.Tag)
	}

	ids := make([]string, 0, len(result.Failed))
	for id := range result.Failed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(out, "failed: %s: %v\n", id, result.Failed[id])
	}
}
