package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/rent-engine/config"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv(config.EnvPath, "")
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const contractJSON = `{"start_date": "2025-01-01", "duration_months": 12, "rent": "1000.00", "payment_day": 5}`

func TestRun_Allocate(t *testing.T) {
	code, out, _ := runCLI(t, "allocate", "-previous", "1200", "-current", "1350", "-shared-total", "600", "-bill", "480")

	require.Equal(t, 0, code)
	assert.Equal(t, "consumo: 150.00 kWh\npercentual: 25.00%\nvalor: 120.00\n", out)
}

func TestRun_Allocate_Implausible(t *testing.T) {
	code, out, _ := runCLI(t, "allocate", "-previous", "1350", "-current", "1200", "-shared-total", "600", "-bill", "480")

	require.Equal(t, 0, code)
	assert.Contains(t, out, "atenção: leitura implausível")
}

func TestRun_Allocate_RejectsNegative(t *testing.T) {
	code, _, errOut := runCLI(t, "allocate", "-previous", "-5", "-current", "10", "-shared-total", "600", "-bill", "480")

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "negative amount")
}

func TestRun_Status(t *testing.T) {
	terms := writeFile(t, "contrato.json", contractJSON)

	code, out, _ := runCLI(t, "status", "-terms", terms, "-today", "2025-06-01")
	require.Equal(t, 0, code)
	assert.Equal(t, "Vigente\n", out)

	code, out, _ = runCLI(t, "status", "-terms", terms, "-today", "2026-02-01")
	require.Equal(t, 0, code)
	assert.Equal(t, "Vencido\n", out)
}

func TestRun_Penalty(t *testing.T) {
	terms := writeFile(t, "contrato.json", contractJSON)

	code, out, _ := runCLI(t, "penalty", "-terms", terms, "-days", "5")
	require.Equal(t, 0, code)
	assert.Equal(t, "R$ 116,50 (cento e dezesseis reais e cinquenta centavos)\n", out)

	code, out, _ = runCLI(t, "penalty", "-terms", terms, "-due", "2025-03-05", "-paid", "2025-03-10")
	require.Equal(t, 0, code)
	assert.Equal(t, "R$ 116,50 (cento e dezesseis reais e cinquenta centavos)\n", out)

	code, _, _ = runCLI(t, "penalty", "-terms", terms)
	assert.Equal(t, 2, code)
}

func TestRun_Terminate(t *testing.T) {
	terms := writeFile(t, "contrato.json", contractJSON)

	code, out, _ := runCLI(t, "terminate", "-terms", terms)
	require.Equal(t, 0, code)
	assert.Equal(t, "R$ 3.000,00 (três mil reais)\n", out)
}

func TestRun_Compound(t *testing.T) {
	code, out, _ := runCLI(t, "compound", "-amount", "1000", "-days", "2")
	require.Equal(t, 0, code)
	assert.Equal(t, "juros: R$ 6,61\ntotal: R$ 1.006,61\n", out)
}

func TestRun_Delinquency(t *testing.T) {
	bills := writeFile(t, "boletos.json", `[
		{"reference": "Aluguel ref. Março/2025", "tenant": "Ana", "due_date": "2025-03-10", "amount": "1000"},
		{"reference": "Aluguel ref. Março/2025", "tenant": "Bruno", "due_date": "2025-03-05", "amount": "800", "paid": true}
	]`)

	code, out, _ := runCLI(t, "delinquency", "-bills", bills, "-from", "2025-03-01", "-to", "2025-03-31", "-as-of", "2025-03-12")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "2025-03-10\tAna\tAluguel ref. Março/2025\t2 dias\tR$ 1.006,61\n")
	assert.Contains(t, out, "principal: R$ 1.000,00\n")
	assert.NotContains(t, out, "Bruno")
}

func TestRun_Spell(t *testing.T) {
	code, out, _ := runCLI(t, "spell", "1234.10")
	require.Equal(t, 0, code)
	assert.Equal(t, "mil e duzentos e trinta e quatro reais e dez centavos\n", out)

	code, _, _ = runCLI(t, "spell")
	assert.Equal(t, 2, code)
}

func TestRun_Receipt(t *testing.T) {
	code, out, _ := runCLI(t, "receipt", "-tenant", "Ana Lima", "-amount", "1800", "-reference", "Aluguel ref. Abril/2025")
	require.Equal(t, 0, code)
	assert.Equal(t, "Recebi de Ana Lima a importância de R$ 1.800,00 (mil e oitocentos reais), referente a Aluguel ref. Abril/2025.\n", out)
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, errOut := runCLI(t, "forecast")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown command "forecast"`)

	code, _, _ = runCLI(t)
	assert.Equal(t, 2, code)
}

func TestRun_ConfigDefaultsApply(t *testing.T) {
	cfg := writeFile(t, "rentcalc.yaml", "terms:\n  daily_interest_percent: \"1\"\n")

	code, out, _ := runCLI(t, "-config", cfg, "compound", "-amount", "100", "-days", "1")
	require.Equal(t, 0, code)
	assert.Equal(t, "juros: R$ 1,00\ntotal: R$ 101,00\n", out)
}

func TestRun_WritesMetricsTextfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rentcalc.prom")

	code, _, _ := runCLI(t, "-metrics-textfile", path, "spell", "10")
	require.Equal(t, 0, code)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `rentengine_calculations_total{operation="spell"} 1`)
}

func TestRun_ScheduleFeedsDelinquency(t *testing.T) {
	terms := writeFile(t, "contrato.json", contractJSON)

	code, out, _ := runCLI(t, "schedule", "-terms", terms)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "2025-03-05\tAluguel ref. Março/2025\tR$ 1.000,00\n")

	code, out, _ = runCLI(t, "schedule", "-terms", terms, "-tenant", "Ana", "-json")
	require.Equal(t, 0, code)
	bills := writeFile(t, "boletos.json", out)

	code, out, _ = runCLI(t, "delinquency", "-bills", bills, "-from", "2025-01-01", "-to", "2025-12-31", "-as-of", "2025-02-06")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "principal: R$ 2.000,00\n")
}

func TestRun_Tariff(t *testing.T) {
	code, out, _ := runCLI(t, "tariff", "-previous", "1200", "-current", "1350", "-price", "0.85")
	require.Equal(t, 0, code)
	assert.Equal(t, "consumo: 150.00 kWh\nvalor: 127.50\n", out)

	code, out, _ = runCLI(t, "tariff", "-previous", "1350", "-current", "1200", "-price", "0.85")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "atenção: leitura implausível")

	code, _, errOut := runCLI(t, "tariff", "-previous", "1200", "-current", "1350", "-price", "-1")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "negative amount")
}
