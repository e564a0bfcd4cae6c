package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/careerpilot/careerpilot/pkg/config"
	"github.com/careerpilot/careerpilot/pkg/logging"
	"github.com/careerpilot/careerpilot/pkg/profile"
)

// cli carries what PersistentPreRunE loads for the subcommands.
type cli struct {
	cfg     config.Config
	log     *zap.Logger
	verbose bool

	// prefill seeds the wizard of the interactive assessment.
	prefill      profile.Profile
	prefillStyle string
	prefillCV    string
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "careerpilot",
		Short:         "Personalised career paths, skill gaps and roadmaps from a short profile",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.cfg = cfg
			return c.initLogger(cmd.Name() == "careerpilot" || cmd.Name() == "tui")
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), c)
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log at debug level")
	addPrefillFlags(root, c)

	root.AddCommand(
		newTUICmd(c),
		newGenerateCmd(c),
		newReportsCmd(c),
		newLoginCmd(c),
		newLogoutCmd(c),
	)
	return root
}

func newTUICmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the interactive assessment (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), c)
		},
	}
	addPrefillFlags(cmd, c)
	return cmd
}

func addPrefillFlags(cmd *cobra.Command, c *cli) {
	f := cmd.Flags()
	f.StringVar(&c.prefill.Name, "name", "", "pre-fill the name")
	f.StringVar(&c.prefill.Education, "education", "", "pre-fill the education")
	f.StringVar(&c.prefill.Skills, "skills", "", "pre-fill the skills")
	f.StringVar(&c.prefillCV, "resume", "", "pre-fill the skills from a PDF or DOCX résumé")
	f.StringVar(&c.prefill.Interests, "interests", "", "pre-fill the interests")
	f.StringVar(&c.prefillStyle, "work-style", "", "pre-select the work style")
	f.StringVar(&c.prefill.Goal, "goal", "", "pre-fill the career goal")
}

// prefilledProfile returns the wizard seed and whether any flag was set.
func (c *cli) prefilledProfile() (profile.Profile, bool, error) {
	p := c.prefill
	p.WorkStyle = profile.WorkStyleRemote
	if c.prefillStyle != "" {
		ws, err := profile.ParseWorkStyle(c.prefillStyle)
		if err != nil {
			return p, false, err
		}
		p.WorkStyle = ws
	}
	if c.prefillCV != "" {
		skills, err := resumeSkills(c.prefillCV, p.Skills)
		if err != nil {
			return p, false, err
		}
		p.Skills = skills
	}
	set := p != profile.New() || c.prefillStyle != ""
	return p, set, nil
}

// initLogger builds the zap logger. The terminal UI owns the screen, so it
// only logs when LOG_FILE is set.
func (c *cli) initLogger(interactive bool) error {
	level := c.cfg.LogLevel
	if c.verbose {
		level = "debug"
	}
	path := c.cfg.LogFile
	if path == "" {
		if interactive {
			c.log = zap.NewNop()
			return nil
		}
		path = "stderr"
	}
	log, err := logging.New(level, c.cfg.LogJSON, path)
	if err != nil {
		return err
	}
	c.log = log
	return nil
}
