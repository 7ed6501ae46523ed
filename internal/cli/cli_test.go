package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/platform/metrics"
	"github.com/SscSPs/ledger_engine/internal/repositories/memory"
	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testChart = `
slug: default
accounts:
  - code: "1010"
    name: Cash
    role: asset_ca_cash
    balance_type: debit
  - code: "3010"
    name: Capital
    role: eq_capital
    balance_type: credit
  - code: "4010"
    name: Sales
    role: in_operational
    balance_type: credit
`

const testBlueprints = `
blueprints:
  - name: capital_contribution
    lines:
      - account: "1010"
        tx_type: debit
        param: amount
      - account: "3010"
        tx_type: credit
        param: amount
`

type CLITestSuite struct {
	suite.Suite
	dir      string
	out      *bytes.Buffer
	svc      *portssvc.ServiceContainer
	env      *Env
	entityID string
	ledgerID string
	migrated []database.Direction
}

func (s *CLITestSuite) SetupTest() {
	ctx := context.Background()
	s.dir = s.T().TempDir()
	s.out = new(bytes.Buffer)
	s.migrated = nil

	cfg := &config.Config{
		StoreDriver:          config.StoreDriverMemory,
		BalanceTolerance:     decimal.RequireFromString("0.02"),
		UseClosingEntries:    true,
		ClosingEntryCacheTTL: time.Minute,
		BlueprintPrecision:   domain.DefaultBlueprintPrecision,
		CursorMode:           domain.CursorPermissive,
	}
	s.svc = services.NewServiceContainer(cfg, memory.New().Provider(), metrics.NewMetrics())

	templates, err := services.ParseBlueprintTemplates([]byte(testBlueprints))
	s.Require().NoError(err)
	s.Require().NoError(services.RegisterTemplates(s.svc.Library, templates, domain.DefaultBlueprintPrecision))

	entity, err := s.svc.Entity.CreateEntity(ctx, dto.CreateEntityRequest{Name: "Acme"}, "tester")
	s.Require().NoError(err)
	s.entityID = entity.EntityID

	s.env = &Env{
		Ctx:        ctx,
		Out:        s.out,
		CursorMode: domain.CursorPermissive,
		Services:   func() (*portssvc.ServiceContainer, error) { return s.svc, nil },
		Migrate: func(dir database.Direction) error {
			s.migrated = append(s.migrated, dir)
			return nil
		},
	}
}

func TestCLITestSuite(t *testing.T) {
	suite.Run(t, new(CLITestSuite))
}

func (s *CLITestSuite) file(name, content string) string {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *CLITestSuite) run(args ...string) error {
	var cmds Commands
	parser, err := New(&cmds, s.env, kong.Exit(func(int) { s.FailNow("kong exited") }))
	s.Require().NoError(err)
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	s.out.Reset()
	return kctx.Run()
}

// seed loads the chart through the CLI and opens a posted general ledger.
func (s *CLITestSuite) seed() {
	s.Require().NoError(s.run("seed-chart", "--entity", s.entityID, "--file", s.file("chart.yaml", testChart)))
	ledger, err := s.svc.Ledger.CreateLedger(context.Background(), s.entityID,
		dto.CreateLedgerRequest{Name: "General", ExternalID: "gl", Posted: true}, "tester")
	s.Require().NoError(err)
	s.ledgerID = ledger.LedgerID
}

func (s *CLITestSuite) TestMigrate() {
	s.Require().NoError(s.run("migrate", "up"))
	s.Require().NoError(s.run("migrate", "down"))
	s.Equal([]database.Direction{database.Up, database.Down}, s.migrated)

	s.Error(s.run("migrate", "sideways"))

	s.env.Migrate = nil
	s.ErrorContains(s.run("migrate", "up"), "postgres")
}

func (s *CLITestSuite) TestSeedChart() {
	s.Require().NoError(s.run("seed-chart", "--entity", s.entityID, "--file", s.file("chart.yaml", testChart)))

	var accounts []dto.AccountResponse
	s.Require().NoError(json.Unmarshal(s.out.Bytes(), &accounts))
	codes := map[string]bool{}
	for _, a := range accounts {
		codes[a.Code] = true
	}
	s.True(codes["1010"])
	s.True(codes["3010"])
}

func (s *CLITestSuite) TestSeedChart_DefaultPath() {
	s.ErrorContains(s.run("seed-chart", "--entity", s.entityID), "CHART_SEED_PATH")

	s.env.ChartSeedPath = s.file("default.yaml", testChart)
	s.Require().NoError(s.run("seed-chart", "--entity", s.entityID))

	var accounts []dto.AccountResponse
	s.Require().NoError(json.Unmarshal(s.out.Bytes(), &accounts))
	s.NotEmpty(accounts)
}

func (s *CLITestSuite) TestSeedChart_MissingFile() {
	s.Error(s.run("seed-chart", "--entity", s.entityID, "--file", filepath.Join(s.dir, "nope.yaml")))
}

func (s *CLITestSuite) TestPostAndDigest() {
	s.seed()
	plan := `
timestamp: "2024-01-10"
ledgerID: ` + s.ledgerID + `
post: true
lines:
  - accountCode: "1010"
    amount: 100
    txType: debit
  - accountCode: "3010"
    amount: "100"
    txType: credit
`
	s.Require().NoError(s.run("post", "--entity", s.entityID, "--file", s.file("post.yaml", plan)))

	var posted dto.GetJournalEntryResponse
	s.Require().NoError(json.Unmarshal(s.out.Bytes(), &posted))
	s.True(posted.JournalEntry.IsPosted)
	s.Len(posted.Transactions, 2)

	s.Require().NoError(s.run("digest", "--entity", s.entityID, "--to", "2024-01-31", "--balance-sheet"))
	var res map[string]any
	s.Require().NoError(json.Unmarshal(s.out.Bytes(), &res))
	s.NotNil(res["balanceSheet"])

	rows, ok := res["accounts"].([]any)
	s.Require().True(ok)
	found := false
	for _, r := range rows {
		row := r.(map[string]any)
		if row["code"] == "1010" {
			found = true
			bal, err := decimal.NewFromString(row["balance"].(string))
			s.Require().NoError(err)
			s.True(bal.Equal(decimal.NewFromInt(100)), bal.String())
		}
	}
	s.True(found)
}

func (s *CLITestSuite) TestPost_UnbalancedIsRejected() {
	s.seed()
	plan := `{"timestamp":"2024-01-10","ledgerID":"` + s.ledgerID + `","lines":[
    {"accountCode":"1010","amount":"10.00","txType":"debit"},
    {"accountCode":"3010","amount":"10.50","txType":"credit"}]}`

	s.ErrorIs(s.run("post", "--entity", s.entityID, "--file", s.file("post.json", plan)), domain.ErrBalanceValidation)
}

func (s *CLITestSuite) TestGenerate() {
	s.seed()
	s.Require().NoError(s.run("generate", "--entity", s.entityID, "--ledger", s.ledgerID,
		"--from", "2024-03-01", "--days", "10", "--count", "6", "--seed", "7", "--post"))

	var summary generatedSummary
	s.Require().NoError(json.Unmarshal(s.out.Bytes(), &summary))
	s.Len(summary.JournalEntries, 6)

	for _, id := range summary.JournalEntries {
		je, txs, err := s.svc.Ledger.GetJournalEntry(context.Background(), id)
		s.Require().NoError(err)
		s.True(je.IsPosted)
		s.Equal(Origin, je.Origin)

		debits, credits := decimal.Zero, decimal.Zero
		for _, tx := range txs {
			s.True(tx.Amount.Equal(tx.Amount.Round(2)), tx.Amount.String())
			if tx.TxType == domain.Debit {
				debits = debits.Add(tx.Amount)
			} else {
				credits = credits.Add(tx.Amount)
			}
		}
		s.True(debits.Equal(credits), "%s != %s", debits, credits)
		s.False(je.Timestamp.Before(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
		s.True(je.Timestamp.Before(time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)))
	}
}

func (s *CLITestSuite) TestGenerate_SameSeedSameAmounts() {
	s.seed()
	amounts := func() []string {
		s.Require().NoError(s.run("generate", "--entity", s.entityID, "--ledger", s.ledgerID,
			"--from", "2024-03-01", "--count", "3", "--seed", "42"))
		var summary generatedSummary
		s.Require().NoError(json.Unmarshal(s.out.Bytes(), &summary))
		var out []string
		for _, id := range summary.JournalEntries {
			_, txs, err := s.svc.Ledger.GetJournalEntry(context.Background(), id)
			s.Require().NoError(err)
			for _, tx := range txs {
				out = append(out, tx.Amount.String())
			}
		}
		return out
	}
	s.Equal(amounts(), amounts())
}

func (s *CLITestSuite) TestGenerate_NeedsCashAccount() {
	ledger, err := s.svc.Ledger.CreateLedger(context.Background(), s.entityID, dto.CreateLedgerRequest{Name: "Empty"}, "tester")
	s.Require().NoError(err)
	s.ErrorIs(s.run("generate", "--entity", s.entityID, "--ledger", ledger.LedgerID, "--from", "2024-03-01"), domain.ErrAccountNotFound)
}

func (s *CLITestSuite) TestPost_InvalidPlan() {
	s.seed()
	err := s.run("post", "--entity", s.entityID, "--file",
		s.file("bad.yaml", "timestamp: \"2024-01-10\"\nlines:\n  - accountCode: \"1010\"\n    amount: 1\n    txType: sideways\n"))
	s.ErrorIs(err, domain.ErrInvalidLine)
}

func (s *CLITestSuite) TestCommitCursorPlan() {
	s.seed()
	plan := `
timestamp: "2024-01-12"
postNewLedgers: true
postJournalEntries: true
dispatches:
  - blueprint: capital_contribution
    externalID: store-1
    params:
      amount: 50
  - blueprint: capital_contribution
    ledgerID: ` + s.ledgerID + `
    params:
      amount: "25.50"
`
	s.Require().NoError(s.run("commit", "--entity", s.entityID, "--file", s.file("plan.yaml", plan)))

	var resp dto.CursorCommitResponse
	s.Require().NoError(json.Unmarshal(s.out.Bytes(), &resp))
	s.True(resp.Committed)
	s.Len(resp.Ledgers, 2)

	ledgers, err := s.svc.Ledger.ListLedgers(context.Background(), s.entityID)
	s.Require().NoError(err)
	s.Len(ledgers, 2)
}

func (s *CLITestSuite) TestCommit_StrictRefusesNewLedger() {
	s.seed()
	plan := "dispatches:\n  - blueprint: capital_contribution\n    externalID: store-9\n    params:\n      amount: 5\n"
	err := s.run("commit", "--strict", "--entity", s.entityID, "--file", s.file("plan.yaml", plan))
	s.Error(err)

	ledgers, lerr := s.svc.Ledger.ListLedgers(context.Background(), s.entityID)
	s.Require().NoError(lerr)
	s.Len(ledgers, 1)
}

func (s *CLITestSuite) TestClosePeriod() {
	s.seed()
	post := func(ts string) error {
		plan := `{"timestamp":"` + ts + `","ledgerID":"` + s.ledgerID + `","post":true,"lines":[
    {"accountCode":"1010","amount":"5","txType":"debit"},
    {"accountCode":"3010","amount":"5","txType":"credit"}]}`
		return s.run("post", "--entity", s.entityID, "--file", s.file("p.json", plan))
	}
	s.Require().NoError(post("2024-01-10"))

	s.Require().NoError(s.run("close-period", "--entity", s.entityID, "--date", "2024-01-31"))
	var entry domain.ClosingEntry
	s.Require().NoError(json.Unmarshal(s.out.Bytes(), &entry))
	s.Equal("2024-01-31", entry.ClosingDate.Format(time.DateOnly))

	s.ErrorIs(post("2024-01-15"), domain.ErrClosedPeriod)
	s.NoError(post("2024-02-01"))

	s.ErrorIs(s.run("close-period", "--entity", s.entityID, "--date", "soon"), domain.ErrInvalidTimestamp)
}

func (s *CLITestSuite) TestDigest_ScopeFlagsAreExclusive() {
	s.Error(s.run("digest", "--entity", s.entityID, "--ledger", "l1", "--unit", "u1"))
}

func (s *CLITestSuite) TestDigest_LedgerOfAnotherEntity() {
	s.seed()
	other, err := s.svc.Entity.CreateEntity(context.Background(), dto.CreateEntityRequest{Name: "Other"}, "tester")
	s.Require().NoError(err)

	s.ErrorIs(s.run("digest", "--entity", other.EntityID, "--ledger", s.ledgerID), domain.ErrCrossEntityReference)
}
