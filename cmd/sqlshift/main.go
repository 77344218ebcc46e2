package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sqlshift/sqlshift"
)

var (
	configPath string
	fromFlag   string
	toFlag     string
	outFlag    string
)

var rootCmd = &cobra.Command{
	Use:   "sqlshift",
	Short: "SQL dialect conversion tool for MySQL, PostgreSQL, Oracle and Tibero",
}

var convertCmd = &cobra.Command{
	Use:   "convert [input.sql]",
	Short: "Convert a SQL script between dialects",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConvert,
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and convert SQL files as they change",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the built-in function mapping rules for a dialect pair",
	Args:  cobra.NoArgs,
	RunE:  runRules,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to TOML config file")
	rootCmd.PersistentFlags().StringVar(&fromFlag, "from", "", "source dialect (mysql, postgresql, oracle, tibero)")
	rootCmd.PersistentFlags().StringVar(&toFlag, "to", "", "target dialect (mysql, postgresql, oracle, tibero)")
	convertCmd.Flags().StringVarP(&outFlag, "out", "o", "", "output file (default: stdout)")
	rootCmd.AddCommand(convertCmd, watchCmd, rulesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// resolveSetup merges flags over the optional config file and builds the
// engine. Flags win over config values.
func resolveSetup(extra ...sqlshift.Option) (*ToolConfig, *sqlshift.Engine, sqlshift.Dialect, sqlshift.Dialect, error) {
	cfg := &ToolConfig{}
	if configPath != "" {
		loaded, err := loadConfig(configPath)
		if err != nil {
			return nil, nil, "", "", err
		}
		cfg = loaded
	} else {
		cfg.Options.PreserveComments = true
		cfg.Options.IncludeWarnings = true
		cfg.Oracle.SeparatePrimaryKey = true
		cfg.Oracle.SeparateComments = true
		cfg.Oracle.GenerateIndex = true
		cfg.Watch.DebounceMs = 200
	}

	sourceName := cfg.Source
	if fromFlag != "" {
		sourceName = fromFlag
	}
	targetName := cfg.Target
	if toFlag != "" {
		targetName = toFlag
	}
	if sourceName == "" || targetName == "" {
		return nil, nil, "", "", fmt.Errorf("source and target dialects are required (--from/--to or config)")
	}
	source, err := sqlshift.ParseDialect(sourceName)
	if err != nil {
		return nil, nil, "", "", err
	}
	target, err := sqlshift.ParseDialect(targetName)
	if err != nil {
		return nil, nil, "", "", err
	}

	var engineOpts []sqlshift.Option
	if cfg.RulesFile != "" {
		rules, err := sqlshift.LoadRulesFile(cfg.resolvePath(cfg.RulesFile))
		if err != nil {
			return nil, nil, "", "", err
		}
		log.Printf("loaded %d custom mapping rules from %s", len(rules), cfg.RulesFile)
		engineOpts = append(engineOpts, sqlshift.WithFunctionRules(rules))
	}
	engineOpts = append(engineOpts, extra...)
	return cfg, sqlshift.NewEngine(engineOpts...), source, target, nil
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, engine, source, target, err := resolveSetup()
	if err != nil {
		return err
	}

	var input []byte
	if len(args) > 0 {
		input, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
	} else {
		input, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}

	start := time.Now()
	result := engine.Convert(string(input), source, target, cfg.conversionOptions())
	reportResult(result)

	if outFlag != "" {
		if err := os.WriteFile(outFlag, []byte(result.ConvertedSQL+"\n"), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		log.Printf("wrote %s in %s", outFlag, time.Since(start).Round(time.Millisecond))
	} else {
		fmt.Println(result.ConvertedSQL)
	}

	if !result.Success {
		return fmt.Errorf("conversion completed with failed statements")
	}
	return nil
}

func runRules(cmd *cobra.Command, args []string) error {
	_, engine, source, target, err := resolveSetup()
	if err != nil {
		return err
	}
	rules := engine.Functions().RulesFor(source, target)
	if len(rules) == 0 {
		fmt.Printf("no built-in rules for %s -> %s\n", source, target)
		return nil
	}
	for _, r := range rules {
		line := fmt.Sprintf("%-24s -> %s", r.SourceFunction, r.TargetFunction)
		if r.IsPartialSupport {
			line += "  (partial)"
		}
		fmt.Println(line)
	}
	return nil
}

// reportResult logs warnings and the applied-rule audit trail.
func reportResult(result *sqlshift.ConversionResult) {
	for _, w := range result.Warnings {
		log.Printf("  %s [%s] %s", w.Severity, w.Kind, w.Message)
		if w.Suggestion != "" {
			log.Printf("    suggestion: %s", w.Suggestion)
		}
	}
	if len(result.AppliedRules) > 0 {
		log.Printf("applied rules: %s", strings.Join(result.AppliedRules, ", "))
	}
}
