package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"datemate/intake"
	"datemate/logger"
	"datemate/questionnaire"
	"datemate/tracing"
	"datemate/tui"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	serviceName    = "datemate-intake"
	defaultAPIBase = "http://localhost:8000/api"

	keyAPIBase = "api-base"
	keyLogFile = "log-file"
)

var errSubmissionFailed = errors.New("submission failed")

func rootCommand() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("DATEMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "intake",
		Short:         "Fill in the Datemate questionnaire",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd, v)
		},
	}

	cmd.PersistentFlags().String(keyAPIBase, defaultAPIBase, "base URL of the profile service (env DATEMATE_API_BASE)")
	cmd.PersistentFlags().String(keyLogFile, "", "write logs to this file (env DATEMATE_LOG_FILE)")
	_ = v.BindPFlags(cmd.PersistentFlags())

	cmd.AddCommand(submitCommand(v))
	cmd.AddCommand(labelsCommand())
	return cmd
}

func runForm(cmd *cobra.Command, v *viper.Viper) error {
	l, closer, err := logger.CreateFileLogger(serviceName, v.GetString(keyLogFile))
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	defer closer.Close()

	teardown := startTracer(l)
	defer teardown()

	c := intake.NewController(l, intake.NewForm(), intake.NewClient(l, v.GetString(keyAPIBase)))
	s, err := tui.Run(cmd.Context(), l, c)
	if err != nil {
		return err
	}
	l.WithField("state", s.String()).Info("Form closed.")
	return nil
}

func submitCommand(v *viper.Viper) *cobra.Command {
	answers := map[questionnaire.Field]*string{}

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the questionnaire once without the interactive form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l := logger.CreateLogger(serviceName)
			l.SetOutput(cmd.ErrOrStderr())
			if path := v.GetString(keyLogFile); path != "" {
				fl, closer, err := logger.CreateFileLogger(serviceName, path)
				if err != nil {
					return fmt.Errorf("unable to open log file: %w", err)
				}
				defer closer.Close()
				l = fl
			}

			f := intake.NewForm()
			for _, field := range questionnaire.Fields() {
				if !cmd.Flags().Changed(flagName(field)) {
					continue
				}
				if err := f.SetField(field, *answers[field]); err != nil {
					return fmt.Errorf("--%s: %w", flagName(field), err)
				}
			}

			teardown := startTracer(l)
			defer teardown()

			c := intake.NewController(l, f, intake.NewClient(l, v.GetString(keyAPIBase)))
			s := c.Submit(cmd.Context())
			return report(cmd.OutOrStdout(), s)
		},
	}

	for _, field := range questionnaire.Fields() {
		answers[field] = cmd.Flags().String(flagName(field), "", usage(field))
	}
	return cmd
}

func flagName(field questionnaire.Field) string {
	return strings.ReplaceAll(string(field), "_", "-")
}

func usage(field questionnaire.Field) string {
	switch field {
	case questionnaire.FieldDatingIntent:
		return "one of: " + strings.Join(questionnaire.DatingIntentLabels(), " | ")
	case questionnaire.FieldLoveLanguage:
		return "one of: " + strings.Join(questionnaire.LoveLanguageLabels(), " | ")
	}
	return strings.ReplaceAll(string(field), "_", " ")
}

func report(w io.Writer, s intake.State) error {
	switch {
	case s.IsSucceeded():
		_, _ = fmt.Fprintln(w, tui.Confirmation)
		return nil
	case s.IsFailed():
		_, _ = fmt.Fprintf(w, "Submission failed: %s\n", s.Message())
		return errSubmissionFailed
	}
	_, _ = fmt.Fprintf(w, "Submission %s\n", s.Phase())
	return nil
}

func labelsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "Print the accepted answers for the choice questions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			printLabels(w, "dating_intent", questionnaire.DatingIntentLabels())
			printLabels(w, "love_language", questionnaire.LoveLanguageLabels())
		},
	}
}

func printLabels(w io.Writer, title string, labels []string) {
	_, _ = fmt.Fprintf(w, "%s:\n", title)
	for _, label := range labels {
		_, _ = fmt.Fprintf(w, "  %s\n", label)
	}
}

func startTracer(l logrus.FieldLogger) func() {
	tc, err := tracing.InitTracer(l)(serviceName)
	if err != nil {
		l.WithError(err).Warn("Tracing disabled.")
		return func() {}
	}
	return tracing.Teardown(l)(tc)
}
