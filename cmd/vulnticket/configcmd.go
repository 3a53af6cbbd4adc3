package vulnticket

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vulnticket/vulnticket/internal/config"
	"github.com/vulnticket/vulnticket/internal/files"
	"github.com/vulnticket/vulnticket/internal/report"
	"github.com/vulnticket/vulnticket/internal/types"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput    string
	cfgForce     bool
	cfgGitignore bool
	cfgProject   string
	cfgEnvs      []string
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .vulnticket.yml with the built-in tables",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".vulnticket.yml", "output file path")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	initCmd.Flags().BoolVar(&cfgGitignore, "gitignore", true, "add the audit log and export cache to .gitignore")
	initCmd.Flags().StringVar(&cfgProject, "project", "", "Jira project key")
	initCmd.Flags().StringSliceVar(&cfgEnvs, "env", []string{"PRD"}, "default environments")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fc, err := loadConfig(".")
			if err != nil {
				return err
			}
			b, err := yaml.Marshal(&fc)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
	cfgCmd.AddCommand(showCmd)
}

// starterConfig is the file written by `config init`.
func starterConfig(project string, envs []string) config.FileConfig {
	fc := config.FileConfig{
		Version:             strPtr(fmt.Sprintf("%d.0", config.SupportedMajor)),
		Environments:        config.DefaultEnvironments(),
		Hosts:               map[string]string{},
		SeverityOrder:       types.DefaultSeverityLabels(),
		GroupKey:            strPtr(types.DefaultColumns().Synopsis),
		DefaultEnvironments: cleanList(envs),
		Format:              strPtr(string(report.FormatXLSX)),
		CodeBlock:           boolPtr(true),
		Jira: &config.JiraConfig{
			IssueType: strPtr(report.DefaultIssueType),
			Project:   optStrPtr(project),
		},
	}
	return fc
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	if _, err := os.Stat(cfgOutput); err == nil && !cfgForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgOutput)
	}
	fc := starterConfig(cfgProject, cfgEnvs)
	b, err := yaml.Marshal(&fc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfgOutput, b, 0644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)

	if cfgGitignore {
		dir := filepath.Dir(cfgOutput)
		for _, g := range files.GeneratedFiles() {
			if err := files.AppendIgnore(dir, g); err != nil {
				return err
			}
		}
		debugf("updated %s", filepath.Join(dir, ".gitignore"))
	}
	return nil
}

func strPtr(s string) *string { return &s }
func optStrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
func boolPtr(v bool) *bool { return &v }
