package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	app "github.com/unitynest/nest-backend/internal/application/user"
	"github.com/unitynest/nest-backend/internal/bootstrap"
	"github.com/unitynest/nest-backend/internal/config"
	domain "github.com/unitynest/nest-backend/internal/domain/user"
	infrafile "github.com/unitynest/nest-backend/internal/infrastructure/file"
)

type usersOptions struct {
	file       string
	uploadedBy string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "importctl",
		Short:        "Operator tools for member data imports",
		SilenceUsage: true,
	}
	root.AddCommand(newUsersCmd())
	return root
}

func newUsersCmd() *cobra.Command {
	var opts usersOptions

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Import members from a CSV, XLSX or JSON file on local disk",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runUsers(ctx, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Path to the file, relative to IMPORT_BASE_DIR (required)")
	cmd.Flags().StringVar(&opts.uploadedBy, "uploaded-by", "importctl", "Operator name recorded on the import batch")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runUsers(ctx context.Context, out io.Writer, opts usersOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	upload, err := infrafile.NewLocalSource(cfg.ImportBaseDir).Open(ctx, opts.file)
	if err != nil {
		return err
	}
	defer upload.Close()

	a, err := bootstrap.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = a.Close(closeCtx)
	}()

	summary, err := a.ImportUsers().Execute(ctx, app.ImportUsersInput{
		Filename:   upload.Filename,
		Content:    upload,
		UploadedBy: opts.uploadedBy,
	})
	if err != nil && !errors.Is(err, app.ErrImportAborted) {
		return err
	}

	printSummary(out, upload.Filename, summary)
	return err
}

func printSummary(out io.Writer, filename string, s domain.BatchSummary) {
	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintf(out, "\nImport of %s\n", filename)

	counts := tablewriter.NewWriter(out)
	counts.SetHeader([]string{"Total", "Successful", "Failed", "Duplicates"})
	counts.Append([]string{
		strconv.Itoa(s.Total),
		strconv.Itoa(s.Successful),
		strconv.Itoa(s.Failed),
		strconv.Itoa(s.Duplicates),
	})
	counts.Render()

	if len(s.Errors) == 0 {
		color.New(color.FgGreen).Fprintln(out, "No row errors.")
		return
	}

	color.New(color.FgYellow).Fprintf(out, "\n%d row errors\n", len(s.Errors))
	errs := tablewriter.NewWriter(out)
	errs.SetHeader([]string{"Row", "Field", "Message"})
	errs.SetAutoWrapText(false)
	for _, e := range s.Errors {
		errs.Append([]string{fmt.Sprintf("%d", e.Row), e.Field, e.Message})
	}
	errs.Render()
}
