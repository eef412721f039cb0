package experiments

import (
	"encoding/json"
	"fmt"
	"path"

	"github.com/spf13/cobra"

	"github.com/zeu5/offline-subopt/train"
)

type trainFlags struct {
	args   *train.Args
	mixed  string
	entry  []string
	outDir string
	dryRun bool
}

func (f *trainFlags) add(cmd *cobra.Command) {
	f.args.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&f.mixed, "mixed", "", "Mixed dataset name (e.g. hopper-random-expert-0.1-v2), sets env, types and ratios")
	cmd.Flags().StringSliceVar(&f.entry, "entry", nil, "Custom python entry point receiving --plan <plan.json>, defaults to d3rlpy_impls/train_<algo>.py")
	cmd.Flags().StringVar(&f.outDir, "out", "", "Folder for the training plans, defaults to <LOCAL_STORAGE_PATH>/plans")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "Print the plan instead of training")
}

// resolve the --mixed shortcut
func (f *trainFlags) resolve() error {
	if f.mixed == "" {
		return nil
	}
	env, types, ratios, err := train.ParseMixedEnv(f.mixed)
	if err != nil {
		return err
	}
	f.args.Env = env
	f.args.DatasetTypes = types
	f.args.DatasetRatios = ratios
	return nil
}

func (f *trainFlags) run(cmd *cobra.Command, build func(*train.Args) (*train.Plan, error)) error {
	if err := f.resolve(); err != nil {
		return err
	}
	plan, err := build(f.args)
	if err != nil {
		return err
	}
	if f.dryRun {
		bs, err := json.MarshalIndent(plan, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(bs))
		return nil
	}

	env, err := loadEnv()
	if err != nil {
		return err
	}
	outDir := f.outDir
	if outDir == "" {
		outDir = path.Join(env.StoragePath, "plans")
	}
	runner := train.NewRunner(env.Python, outDir, f.entry...)
	runner.Stdout = cmd.OutOrStdout()
	runner.Stderr = cmd.ErrOrStderr()

	ctx, stop := interruptContext(cmd.Context())
	defer stop()
	fmt.Fprintf(cmd.OutOrStdout(), "Training %s, plan at %s\n", plan.Experiment, runner.PlanPath(plan))
	return runner.Run(ctx, plan)
}

func TrainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a single offline RL agent",
	}
	cmd.AddCommand(trainCQLCommand())
	cmd.AddCommand(trainIQLCommand())
	return cmd
}

func trainCQLCommand() *cobra.Command {
	f := &trainFlags{args: train.DefaultArgs()}
	cmd := &cobra.Command{
		Use:   "cql",
		Short: "Conservative Q-Learning on a mixed dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.run(cmd, train.NewCQLPlan)
		},
	}
	f.add(cmd)
	return cmd
}

func trainIQLCommand() *cobra.Command {
	f := &trainFlags{args: train.DefaultArgs()}
	var preset string
	cmd := &cobra.Command{
		Use:   "iql",
		Short: "Implicit Q-Learning on a mixed dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return f.run(cmd, func(a *train.Args) (*train.Plan, error) {
				return train.NewIQLPlan(a, preset)
			})
		},
	}
	f.add(cmd)
	cmd.Flags().StringVar(&preset, "preset", "", "implicit_q_learning config preset")
	return cmd
}

func PresetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "Print the IQL config presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range train.PresetNames() {
				p, err := train.GetPreset(name)
				if err != nil {
					return err
				}
				bs, err := json.MarshalIndent(p, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(bs))
			}
			return nil
		},
	}
}
