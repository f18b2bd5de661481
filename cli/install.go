package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"hrslides/i18n"
	"hrslides/skill"
)

func newInstallCmd(e *env) *cobra.Command {
	opts := skill.Options{}

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the assistant skill that drives hrslides",
		Long: `Write the hr-slides skill into the assistant's skills directory, pointing
it at this executable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.SkillsDir == "" {
				opts.SkillsDir = e.cfg.SkillsDir
			}
			path, err := skill.Install(opts)
			if errors.Is(err, skill.ErrAlreadyInstalled) {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), i18n.T("install.exists", path))
				return err
			}
			if err != nil {
				return err
			}
			e.log.Logf("[INSTALL] %s", path)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("install.done", path))
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.SkillsDir, "skills-dir", "", "skills directory (default from config)")
	cmd.Flags().StringVar(&opts.ModulePath, "module-path", "", "command written into the skill (default: this executable)")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "overwrite an existing install")
	return cmd
}
