/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xoviat/g85/lib"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile string
	logger  *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "g85",
	Short: "Align and merge SEMI G85 wafer maps.",
	Long: `g85 reads SEMI G85 wafer map files, aligns maps from different scan
passes or a control map and its defect scans, merges them and writes the
result back out as G85.

	Example:
		- g85 info wafer7.g85
		- g85 control control.g85 scan.g85 -o merged.g85 -z
		- g85 sequence passes.zip -o merged.g85
	`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if viper.GetBool("verbose") {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}

		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.g85.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log alignment and merge details")
	rootCmd.PersistentFlags().String("library", "", "library directory (default is $HOME/.g85)")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("library", rootCmd.PersistentFlags().Lookup("library"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	home, _ := os.UserHomeDir()

	viper.SetDefault("library", filepath.Join(home, ".g85"))
	viper.SetDefault("export", false)
	viper.SetDefault("jobs", 4)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(home)
		viper.SetConfigName(".g85")
	}

	viper.SetEnvPrefix("g85")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func merger() *lib.Merger {
	return lib.NewMerger(logger)
}

func openLibrary() (*lib.Library, error) {
	return lib.NewLibrary(viper.GetString("library"))
}

/*
	the export mutation is on when the flag is given or the config asks for it
*/
func exportIDs(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("export") {
		v, _ := cmd.Flags().GetBool("export")
		return v
	}

	return viper.GetBool("export")
}

/*
	Serialize m, check that the text parses again, and write it to dst or
	stdout when dst is empty or "-"
*/
func writeMap(out io.Writer, dst string, m *lib.WaferMap) error {
	text := lib.Serialize(m)
	if _, err := lib.Parse(text); err != nil {
		return fmt.Errorf("generated map does not parse: %w", err)
	}

	if dst == "" || dst == "-" {
		_, err := io.WriteString(out, text+"\n")
		return err
	}

	return os.WriteFile(dst, []byte(text), 0644)
}

func reportResult(r *lib.Result) {
	for _, step := range r.Steps {
		logger.Info("aligned",
			zap.Int("map", step.Index+1),
			zap.String("strategy", step.Strategy),
			zap.String("offset", step.Offset.String()),
		)
	}

	if r.Dropped > 0 {
		logger.Info("dropped dies outside the grid", zap.Int("dropped", r.Dropped))
	}
}
