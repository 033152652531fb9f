package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bibbank/agricredit/internal/application/dto"
	"github.com/bibbank/agricredit/internal/application/usecase"
	"github.com/bibbank/agricredit/internal/domain/service"
	"github.com/bibbank/agricredit/internal/infrastructure/messaging"
	"github.com/bibbank/agricredit/internal/infrastructure/persistence/memory"
	"github.com/bibbank/agricredit/pkg/observability"
)

// app holds the offline wiring shared by the subcommands.
type app struct {
	assess *usecase.AssessFarmerUseCase
	export *usecase.ExportReportUseCase
}

func newApp(logger *slog.Logger) *app {
	repo := memory.NewAssessmentRepo()
	return &app{
		assess: usecase.NewAssessFarmerUseCase(repo, messaging.NewLogPublisher(logger), nil, service.NewScoringEngine(), logger),
		export: usecase.NewExportReportUseCase(repo, service.NewReportGenerator()),
	}
}

func newRootCmd() *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:           "agricredit",
		Short:         "Farmer credit scoring tools",
		Long:          "agricredit scores self-reported farmer records, computes loan EMIs, and renders credit reports and improvement plans without a running server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "error", "Log level for diagnostic output on stderr")

	newLogger := func(cmd *cobra.Command) *slog.Logger {
		return observability.InitLogger(observability.LogConfig{
			Output: cmd.ErrOrStderr(),
			Level:  logLevel,
			Format: "text",
		})
	}

	root.AddCommand(
		newScoreCmd(newLogger),
		newEMICmd(),
		newReportCmd(newLogger),
	)
	return root
}

func readFarmerRequest(path string) (dto.AssessFarmerRequest, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return dto.AssessFarmerRequest{}, fmt.Errorf("failed to read farmer file %s: %w", path, err)
	}

	var req dto.AssessFarmerRequest
	if err := json.Unmarshal(content, &req); err != nil {
		return dto.AssessFarmerRequest{}, fmt.Errorf("failed to unmarshal farmer JSON: %w", err)
	}
	if req.FarmerID == "" {
		req.FarmerID = "cli"
	}
	return req, nil
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}

func assessFile(ctx context.Context, a *app, path string) (dto.AssessmentResponse, error) {
	req, err := readFarmerRequest(path)
	if err != nil {
		return dto.AssessmentResponse{}, err
	}
	return a.assess.Execute(ctx, req)
}
