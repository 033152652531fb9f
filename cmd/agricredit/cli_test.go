package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/agricredit/internal/application/dto"
)

const farmerFixture = `{
	"farmer_id": "farmer-cli",
	"personal_info": {"first_name": "Ganesh", "surname": "Deshmukh", "experience_years": 12, "farm_size": 6},
	"farming_data": {
		"irrigation_type": "drip",
		"rainfall_dependency": "irrigated",
		"average_yield": 3.5,
		"soil_health_score": 8,
		"weather_risk_management": 7,
		"farm_mechanization": true
	},
	"financial_data": {"seasonal_income": 360000, "expenses_per_month": 12000, "existing_loans": 0, "requested_loan_amount": 200000},
	"community_data": {"cooperative_member": true, "training_programs": 3, "peer_rating": 9}
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "farmer.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScoreCommand(t *testing.T) {
	t.Run("prints credit score JSON", func(t *testing.T) {
		out, err := runCLI(t, "score", "-i", writeFixture(t, farmerFixture))
		require.NoError(t, err)

		var score dto.CreditScoreResponse
		require.NoError(t, json.Unmarshal([]byte(out), &score))
		assert.Equal(t, 100, score.Score)
		assert.Equal(t, "low", score.RiskLevel)
		assert.True(t, score.LoanEligibility.Eligible)
		assert.LessOrEqual(t, len(score.Factors), 6)
	})

	t.Run("writes to output file", func(t *testing.T) {
		outPath := filepath.Join(t.TempDir(), "nested", "score.json")
		out, err := runCLI(t, "score", "-i", writeFixture(t, farmerFixture), "-o", outPath)
		require.NoError(t, err)
		assert.Empty(t, out)

		content, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"score": 100`)
	})

	t.Run("requires input flag", func(t *testing.T) {
		_, err := runCLI(t, "score")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		_, err := runCLI(t, "score", "-i", writeFixture(t, "{not json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unmarshal")
	})

	t.Run("rejects invalid farmer record", func(t *testing.T) {
		_, err := runCLI(t, "score", "-i", writeFixture(t, `{"farmer_id": "x"}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, dto.ErrValidation))
	})
}

func TestEMICommand(t *testing.T) {
	t.Run("text summary", func(t *testing.T) {
		out, err := runCLI(t, "emi", "--principal", "70000", "--rate", "9", "--months", "18")
		require.NoError(t, err)
		assert.Contains(t, out, "₹4,172")
		assert.Contains(t, out, "₹75,093")
		assert.Contains(t, out, "18 months")
	})

	t.Run("JSON with schedule", func(t *testing.T) {
		out, err := runCLI(t, "emi", "-p", "70000", "-r", "9", "-m", "18", "--schedule", "--start", "2025-01-01", "--json")
		require.NoError(t, err)

		var resp dto.LoanCalculationResponse
		require.NoError(t, json.Unmarshal([]byte(out), &resp))
		assert.Equal(t, 4172.0, resp.EMI)
		require.Len(t, resp.Schedule, 18)
		assert.Equal(t, 1, resp.Schedule[0].Period)
		assert.True(t, resp.Schedule[17].RemainingBalance.IsZero())
	})

	t.Run("schedule table", func(t *testing.T) {
		out, err := runCLI(t, "emi", "-p", "12000", "-r", "0", "-m", "3", "--schedule", "--start", "2025-01-01")
		require.NoError(t, err)
		assert.Contains(t, out, "Period")
		assert.Contains(t, out, "2025-02-01")
	})

	t.Run("bad start date", func(t *testing.T) {
		_, err := runCLI(t, "emi", "-p", "1000", "--start", "01/02/2025")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--start")
	})

	t.Run("invalid tenure", func(t *testing.T) {
		_, err := runCLI(t, "emi", "-p", "1000", "-m", "0")
		require.Error(t, err)
		assert.True(t, errors.Is(err, dto.ErrValidation))
	})
}

func TestReportCommand(t *testing.T) {
	t.Run("credit report to stdout", func(t *testing.T) {
		out, err := runCLI(t, "report", "-i", writeFixture(t, farmerFixture), "-o", "-")
		require.NoError(t, err)
		assert.Contains(t, out, "AGRICREDIT SCORE REPORT")
		assert.Contains(t, out, "Ganesh Deshmukh")
	})

	t.Run("localised improvement plan to file", func(t *testing.T) {
		outPath := filepath.Join(t.TempDir(), "plan.txt")
		out, err := runCLI(t, "report", "-i", writeFixture(t, farmerFixture),
			"--kind", "improvement_plan", "--lang", "hi", "-o", outPath)
		require.NoError(t, err)
		assert.Contains(t, out, outPath)

		content, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "कृषि सुधार योजना")
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := runCLI(t, "report", "-i", writeFixture(t, farmerFixture), "--kind", "summary", "-o", "-")
		require.Error(t, err)
		assert.True(t, errors.Is(err, dto.ErrValidation))
	})
}
