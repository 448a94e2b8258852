package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/phrazzld/email-writer/internal/domain"
	"github.com/phrazzld/email-writer/internal/generation"
	"github.com/phrazzld/email-writer/internal/platform/gemini"
	"github.com/phrazzld/email-writer/internal/platform/logger"
)

type emailInput struct {
	file string
	tone string
}

func (in *emailInput) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&in.file, "file", "f", "", "Read the email from this file instead of stdin")
	cmd.Flags().StringVarP(&in.tone, "tone", "t", "", "Tone of the reply, e.g. professional or friendly")
}

func (in *emailInput) request(cmd *cobra.Command) (domain.EmailRequest, error) {
	content, err := readEmail(cmd.InOrStdin(), cmd.ErrOrStderr(), in.file)
	if err != nil {
		return domain.EmailRequest{}, err
	}
	return domain.NewEmailRequest(content, in.tone)
}

func readEmail(stdin io.Reader, stderr io.Writer, path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" || path == "-" {
		if isTerminal(stdin) {
			fmt.Fprintln(stderr, "Reading email from the terminal; finish with Ctrl-D.")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read email from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read email file: %w", err)
	}
	return string(data), nil
}

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var input emailInput

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a reply to an email",
		Long:  "Generate reads an email from --file or stdin, asks Gemini for a reply and prints it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			req, err := input.request(cmd)
			if err != nil {
				return err
			}

			log := logger.New(cmd.ErrOrStderr(), cfg.Server.LogLevel)
			gen, err := gemini.NewGenerator(log.With("component", "llm_generator"), cfg.LLM)
			if err != nil {
				return err
			}

			reply, err := gen.Generate(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("generate reply: %w", err)
			}
			if generation.IsErrorReply(reply) {
				return errors.New(reply)
			}

			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}
	input.bind(cmd)

	return cmd
}

func newPromptCommand() *cobra.Command {
	var input emailInput

	cmd := &cobra.Command{
		Use:         "prompt",
		Short:       "Print the prompt that would be sent for an email",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := input.request(cmd)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), generation.BuildPrompt(req))
			return nil
		},
	}
	input.bind(cmd)

	return cmd
}
