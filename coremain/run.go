package coremain

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pmkol/dlist/mlog"
	"github.com/pmkol/dlist/pkg/scenario"
)

var version = "dev"

type runFlags struct {
	c      string
	dir    string
	watch  bool
	output string
}

var rootCmd = &cobra.Command{
	Use: "dlist",
}

func init() {
	rf := new(runFlags)
	runCmd := &cobra.Command{
		Use:   "run [-c config_file] [-d working_dir]",
		Short: "Run list scenarios from a config file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return StartRun(rf, cmd.OutOrStdout())
		},
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
	}
	fs := runCmd.Flags()
	fs.StringVarP(&rf.c, "config", "c", "", "config file")
	fs.StringVarP(&rf.dir, "dir", "d", "", "working dir")
	fs.BoolVarP(&rf.watch, "watch", "w", false, "rerun scenarios when config files change")
	fs.StringVarP(&rf.output, "output", "o", outputText, "report format, text or yaml")
	rootCmd.AddCommand(runCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print out version info and exit.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version)
		},
	})
}

func AddSubCmd(c *cobra.Command) {
	rootCmd.AddCommand(c)
}

func Run() error {
	return rootCmd.Execute()
}

func StartRun(rf *runFlags, out io.Writer) error {
	if len(rf.dir) > 0 {
		err := os.Chdir(rf.dir)
		if err != nil {
			return fmt.Errorf("failed to change the current working directory, %w", err)
		}
		mlog.L().Info("working directory changed", zap.String("path", rf.dir))
	}

	w, err := newReportWriter(rf.output, out)
	if err != nil {
		return err
	}

	load := func() (*Config, []string, error) {
		cfg, fileUsed, err := loadConfig(rf.c)
		if err != nil {
			return nil, nil, fmt.Errorf("fail to load config, %w", err)
		}
		files := []string{fileUsed}
		if err := mergeInclude(cfg, 0, []string{fileUsed}, &files); err != nil {
			return nil, nil, fmt.Errorf("failed to load sub config file, %w", err)
		}
		return cfg, files, nil
	}

	if err := RunDlist(load, w, rf.watch); err != nil {
		return fmt.Errorf("dlist exited, %w", err)
	}
	return nil
}

// loadConfig load a config from a file. If filePath is empty, it will
// automatically search and load a file which name start with "config".
func loadConfig(filePath string) (*Config, string, error) {
	v := viper.New()

	if len(filePath) > 0 {
		v.SetConfigFile(filePath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, "", fmt.Errorf("failed to read config: %w", err)
	}

	decoderOpt := func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
		cfg.TagName = "yaml"
		cfg.WeaklyTypedInput = true
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg, decoderOpt); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, v.ConfigFileUsed(), nil
}

// mergeInclude loads the files listed in cfg.Include recursively and puts
// their scenarios in front of cfg's own. Every file read is appended to files.
func mergeInclude(cfg *Config, depth int, paths []string, files *[]string) error {
	depth++
	if depth > 8 {
		return fmt.Errorf("maximum include depth reached, include path is %s", strings.Join(paths, " -> "))
	}

	var included []scenario.Config
	for _, subCfgFile := range cfg.Include {
		subPaths := append(paths[:len(paths):len(paths)], subCfgFile)
		mlog.L().Info("reading sub config", zap.String("file", subCfgFile))
		subCfg, fileUsed, err := loadConfig(subCfgFile)
		if err != nil {
			return fmt.Errorf("failed to load sub config, %w", err)
		}
		*files = append(*files, fileUsed)
		if err := mergeInclude(subCfg, depth, subPaths, files); err != nil {
			return err
		}
		included = append(included, subCfg.Scenarios...)
	}

	cfg.Scenarios = append(included, cfg.Scenarios...)
	return nil
}
