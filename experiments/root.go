package experiments

import (
	"github.com/spf13/cobra"

	"github.com/zeu5/offline-subopt/config"
)

var (
	envFiles   []string
	recordDir  string
	cpuprofile string
	memprofile string
)

func GetRootCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:           "offline-subopt",
		Short:         "Offline RL sweeps (CQL, IQL) over d3rlpy and JaxCQL",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCommand.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env"}, "Files to load environment variables from")
	rootCommand.PersistentFlags().StringVarP(&recordDir, "save", "s", "", "Folder for launch records, defaults to <LOCAL_STORAGE_PATH>/launches")
	rootCommand.PersistentFlags().StringVar(&cpuprofile, "cpuprofile", "", "Write a cpu profile of the launcher to this file (inside the record folder)")
	rootCommand.PersistentFlags().StringVar(&memprofile, "memprofile", "", "Write a heap profile of the launcher to this file (inside the record folder)")
	// adding the subcommands here
	rootCommand.AddCommand(SweepCommand())
	rootCommand.AddCommand(TrainCommand())
	rootCommand.AddCommand(WorkerCommand())
	rootCommand.AddCommand(PresetsCommand())
	return rootCommand
}

func loadEnv() (*config.Env, error) {
	return config.Load(envFiles...)
}
