package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ziggle-dev/clanker-input/internal/color"
	"github.com/ziggle-dev/clanker-input/internal/config"
	"github.com/ziggle-dev/clanker-input/internal/formatter"
	"github.com/ziggle-dev/clanker-input/internal/request"
)

type askFlags struct {
	prompt    string
	def       string
	title     string
	password  bool
	kind      string
	options   []string
	questions []string
	file      string
	timeout   string
	output    string
	dryRun    bool
}

func newAskCmd(a *app) *cobra.Command {
	var f askFlags

	cmd := &cobra.Command{
		Use:   "ask [prompt]",
		Short: "Ask one question, or a chain of questions",
		Example: `  clanker-input ask "What is your name?"
  clanker-input ask --password "API token"
  clanker-input ask --type dropdown --option dev --option prod "Environment?"
  clanker-input ask --question "What is your name?" --question "What is your email?"
  clanker-input ask --file questions.yaml --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if f.prompt != "" {
					return fmt.Errorf("prompt given both as argument and --prompt")
				}
				f.prompt = args[0]
			}
			if f.output != formatter.FormatText && f.output != formatter.FormatJSON {
				return fmt.Errorf("invalid --output %q (must be text or json)", f.output)
			}

			req, err := f.request(cmd)
			if err != nil {
				return err
			}

			svc, _, log, _, err := a.setup()
			if err != nil {
				return err
			}
			defer log.Sync()

			out := formatter.New(formatter.Config{
				Output: a.stdout,
				Format: f.output,
				Color:  color.ShouldUseColors(a.colorMode, a.stdout),
			})

			if f.dryRun {
				plans, err := svc.Plan(req)
				if err != nil {
					return err
				}
				return out.Plans(plans)
			}

			resp := svc.Ask(cmd.Context(), req)
			if err := out.Response(resp); err != nil {
				return err
			}
			switch resp.Status {
			case request.StatusAnswered:
				return nil
			case request.StatusCancelled:
				return &exitError{code: exitCancelled}
			default:
				return &exitError{code: exitFailed}
			}
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.prompt, "prompt", "p", "", "Question to show")
	fl.StringVar(&f.def, "default", "", "Pre-filled answer")
	fl.StringVar(&f.title, "title", "", "Dialog title (default from config, then \"Input Required\")")
	fl.BoolVar(&f.password, "password", false, "Mask the input")
	fl.StringVar(&f.kind, "type", "", "Kind of input (text, password, dropdown)")
	fl.StringArrayVar(&f.options, "option", nil, "Dropdown choice; repeat for each option")
	fl.StringArrayVar(&f.questions, "question", nil, "Chain question; repeat to ask several in order")
	fl.StringVarP(&f.file, "file", "f", "", "Read the request from a YAML file (- for stdin)")
	fl.StringVar(&f.timeout, "timeout", "", "Give up after this long (seconds or a duration like 90s)")
	fl.StringVarP(&f.output, "output", "o", formatter.FormatText, "Output format (text, json)")
	fl.BoolVar(&f.dryRun, "dry-run", false, "Show which dialog would be used without showing it")
	return cmd
}

// request builds the request from the file, if any, then the flags.
func (f *askFlags) request(cmd *cobra.Command) (request.Request, error) {
	var req request.Request
	if f.file != "" {
		data, err := readInput(cmd.InOrStdin(), f.file)
		if err != nil {
			return request.Request{}, err
		}
		req, err = request.DecodeYAML(data)
		if err != nil {
			return request.Request{}, err
		}
	}

	if f.prompt != "" {
		req.Prompt = f.prompt
	}
	if cmd.Flags().Changed("default") {
		def := f.def
		req.DefaultValue = &def
	}
	if f.title != "" {
		req.Title = f.title
	}
	if f.password {
		req.Password = true
	}
	if f.kind != "" {
		req.Type = strings.ToLower(f.kind)
	}
	if len(f.options) > 0 {
		req.Options = f.options
	}
	for _, q := range f.questions {
		req.Questions = append(req.Questions, request.Question{Prompt: q, Title: f.title})
	}
	if f.timeout != "" {
		d, err := config.ParseTimeout(f.timeout)
		if err != nil {
			return request.Request{}, fmt.Errorf("invalid --timeout: %w", err)
		}
		req.TimeoutSeconds = d.Seconds()
	}
	return req, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}
	return data, nil
}
