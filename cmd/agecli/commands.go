package main

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/agemaster/internal/domain/agecalc"
	apperrors "github.com/yanqian/agemaster/pkg/errors"
)

func newRootCmd(svc agecalc.Service) *cobra.Command {
	root := &cobra.Command{
		Use:           "agecli",
		Short:         "Offline age and calendar calculations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newCalculateCmd(svc),
		newCompareCmd(svc),
		newMilestonesCmd(svc),
	)
	return root
}

func newCalculateCmd(svc agecalc.Service) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "calculate BIRTH_DATE",
		Short: "Print the full age summary for a YYYY-MM-DD birth date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := svc.Calculate(cmd.Context(), agecalc.CalculateRequest{BirthDate: args[0], TargetDate: target})
			if err != nil {
				return userError(err)
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "target date (YYYY-MM-DD), defaults to today")
	return cmd
}

func newCompareCmd(svc agecalc.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "compare NAME=BIRTH_DATE...",
		Short: "Compare the ages of several people",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			persons := make([]agecalc.PersonInput, 0, len(args))
			for _, arg := range args {
				name, birth, ok := strings.Cut(arg, "=")
				if !ok {
					birth, name = name, ""
				}
				persons = append(persons, agecalc.PersonInput{Name: name, BirthDate: birth})
			}
			resp, err := svc.Compare(cmd.Context(), agecalc.CompareRequest{Persons: persons})
			if err != nil {
				return userError(err)
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func newMilestonesCmd(svc agecalc.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "milestones BIRTH_DATE",
		Short: "List life milestones for a birth date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := svc.Milestones(cmd.Context(), agecalc.MilestonesRequest{BirthDate: args[0]})
			if err != nil {
				return userError(err)
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// userError strips wrapping so the terminal shows the validation message.
func userError(err error) error {
	return errors.New(apperrors.MessageOf(err))
}
