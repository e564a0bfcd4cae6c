package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/careerpilot/careerpilot/pkg/career"
	"github.com/careerpilot/careerpilot/pkg/profile"
	"github.com/careerpilot/careerpilot/pkg/report"
)

func newGenerateCmd(c *cli) *cobra.Command {
	var (
		p         = profile.New()
		workStyle string
		resumeCV  string
		save      bool
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate career recommendations for a profile and print them as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := profile.ParseWorkStyle(workStyle)
			if err != nil {
				return err
			}
			p.WorkStyle = ws
			if resumeCV != "" {
				if p.Skills, err = resumeSkills(resumeCV, p.Skills); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			d, err := setup(ctx, c.cfg, c.log)
			if err != nil {
				return err
			}
			defer d.Close()

			if save {
				// Fail before spending a model call.
				if err := d.requireSession(ctx); err != nil {
					return err
				}
			}

			recs, err := d.gen.Generate(ctx, p)
			if err != nil {
				c.log.Debug("generate failed", zap.Error(err))
				return fmt.Errorf("%s: %w", career.UserMessage(err), err)
			}

			out := any(recs)
			if save {
				uid, _ := d.session.UserID()
				saved, err := d.reports.Insert(ctx, report.New(uid, p, recs, time.Now()))
				if err != nil {
					return err
				}
				out = saved
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&p.Name, "name", "", "your name")
	f.StringVar(&p.Education, "education", "", "highest education, e.g. \"Bachelor's Degree\"")
	f.StringVar(&p.Skills, "skills", "", "comma separated skills")
	f.StringVar(&resumeCV, "resume", "", "PDF or DOCX résumé to take skills from")
	f.StringVar(&p.Interests, "interests", "", "comma separated interests")
	f.StringVar(&workStyle, "work-style", string(profile.WorkStyleRemote), "remote, office, creative, analytical or startup")
	f.StringVar(&p.Goal, "goal", "", "optional career goal")
	f.BoolVar(&save, "save", false, "save the result as a report for the signed-in user")
	for _, name := range []string{"name", "education", "interests"} {
		_ = cmd.MarkFlagRequired(name)
	}
	cmd.MarkFlagsOneRequired("skills", "resume")
	return cmd
}
